package scripts

// Script templates. Configuration values are substituted verbatim; rendering
// uses missingkey=error so an unset value referenced by a template is a hard
// failure, never a silent omission.

const orchestratorTemplate = `#!/bin/bash
set -e

echo "Deploying orchestrator..."

# Platform chart repository
helm repo add telcostack https://telcostack.github.io/helm-charts
helm repo update

# Self-signed TLS material unless certificates already exist at the
# configured path
if [[ ! -f "{{.Orchestrator.TLSCertPath}}" ]]; then
    echo "Generating TLS certificates..."
    mkdir -p "$(dirname "{{.Orchestrator.TLSCertPath}}")"
    openssl req -x509 -newkey rsa:4096 -keyout "{{.Orchestrator.TLSKeyPath}}" -out "{{.Orchestrator.TLSCertPath}}" -days 365 -nodes -subj "/CN={{.Domain}}"
fi

# Database
helm upgrade --install postgresql oci://registry-1.docker.io/bitnamicharts/postgresql \
    --namespace {{.Orchestrator.Namespace}} \
    --set auth.postgresPassword={{.Orchestrator.DBPassword}} \
    --set auth.database={{.Orchestrator.DBName}} \
    --set auth.username={{.Orchestrator.DBUser}} \
    --set primary.persistence.storageClass={{.Orchestrator.StorageClass}}

kubectl wait --for=condition=ready pod -l app.kubernetes.io/name=postgresql -n {{.Orchestrator.Namespace}} --timeout=300s

# Orchestrator chart
helm upgrade --install orchestrator telcostack/orchestrator \
    --namespace {{.Orchestrator.Namespace}} \
    --set global.domain={{.Domain}} \
    --set postgresql.host={{.Orchestrator.DBHost}} \
    --set postgresql.port={{.Orchestrator.DBPort}} \
    --set postgresql.user={{.Orchestrator.DBUser}} \
    --set postgresql.password={{.Orchestrator.DBPassword}} \
    --set postgresql.database={{.Orchestrator.DBName}} \
    --set-file tls.crt={{.Orchestrator.TLSCertPath}} \
    --set-file tls.key={{.Orchestrator.TLSKeyPath}}

echo "Orchestrator deployment completed"
`

const accessGatewayTemplate = `#!/bin/bash
set -e

echo "Deploying access gateway..."

if [[ ! -d "platform" ]]; then
    git clone https://github.com/telcostack/platform.git
fi

cd platform/access-gateway
make build

sudo mkdir -p /etc/telco
sudo tee /etc/telco/access_gateway.yml > /dev/null << EOF
---
agent_config:
  checkin_interval: 60
  checkin_timeout: 30
  autoupgrade_enabled: false
  autoupgrade_poll_interval: 300
  tier: "default"

mobility_config:
  ip_pool: "192.168.128.0/24"
  static_ip_enabled: false
  nat_enabled: true

mme_config:
  mcc: "{{.AccessGateway.MCC}}"
  mnc: "{{.AccessGateway.MNC}}"
  tac: {{.AccessGateway.TAC}}
  s1ap_ip: "{{.AccessGateway.S1APIP}}"
  s1ap_port: {{.AccessGateway.S1APPort}}

spgw_config:
  enable_nat: true
  sgi_interface: "{{.AccessGateway.Interface}}"
  gtpu_endpoint: "{{.AccessGateway.IPAddress}}"
EOF

sudo systemctl enable 'telco@*'
sudo systemctl start 'telco@*'

echo "Access gateway deployment completed"
`

const federatedGatewayTemplate = `#!/bin/bash
set -e

echo "Deploying federated gateway..."

if [[ ! -d "platform" ]]; then
    git clone https://github.com/telcostack/platform.git
fi

cd platform/federated-gateway
make build

sudo mkdir -p /etc/telco
sudo tee /etc/telco/federated_gateway.yml > /dev/null << EOF
---
federation_config:
  federation_id: "{{.FederatedGateway.FederationID}}"
  served_network_ids: [{{range $i, $id := .FederatedGateway.ServedNetworkIDs}}{{if $i}}, {{end}}"{{$id}}"{{end}}]

diameter_config:
  host: "{{.FederatedGateway.DiameterHost}}"
  realm: "{{.FederatedGateway.DiameterRealm}}"
  port: {{.FederatedGateway.DiameterPort}}

health_config:
  health_service_enabled: true
  update_interval_secs: 10
  cloud_disable_period_secs: 10
  local_disable_period_secs: 1

session_proxy_config:
  request_timeout: 30
  endpoint_timeout: 30
EOF

sudo systemctl enable 'telco@*'
sudo systemctl start 'telco@*'

echo "Federated gateway deployment completed"
`

const managementConsoleTemplate = `#!/bin/bash
set -e

echo "Deploying management console..."

helm repo add telcostack https://telcostack.github.io/helm-charts
helm repo update

helm upgrade --install console telcostack/console \
    --set global.domain={{.Domain}} \
    --set console.admin.email={{.AdminEmail}} \
    --set console.host={{.Domain}} \
    --set console.port=8080

echo "Management console deployment completed"
`
