// Package deploy drives the deployment wizard end to end: questionnaire,
// prerequisite gating, script generation, execution and the final summary.
package deploy

import (
	"fmt"
	"strings"

	"github.com/telcostack/telco-deploy/internal/common"
	"github.com/telcostack/telco-deploy/internal/config"
	"github.com/telcostack/telco-deploy/internal/ui"
)

// CollectConfig runs the interactive questionnaire and returns a validated
// deployment configuration.
func CollectConfig(p ui.Prompter, u *ui.UI) (*config.DeploymentConfig, error) {
	u.Step("Deployment configuration")

	components, err := selectComponents(p, u)
	if err != nil {
		return nil, err
	}

	cfg := &config.DeploymentConfig{Components: components}

	cfg.Domain, err = p.InputValidated("Domain name", "telco.local", common.ValidateDomain)
	if err != nil {
		return nil, err
	}
	cfg.AdminEmail, err = p.InputValidated("Admin email address", "", common.ValidateEmail)
	if err != nil {
		return nil, err
	}

	u.Step("Network configuration")
	cfg.Network.ExternalIP, err = p.InputValidated("External IP address", "", common.ValidateIP)
	if err != nil {
		return nil, err
	}

	if cfg.HasComponent(config.ComponentOrchestrator) {
		u.Step("Orchestrator configuration")
		cfg.Orchestrator, err = collectOrchestrator(p)
		if err != nil {
			return nil, err
		}
	}

	if cfg.HasComponent(config.ComponentAccessGateway) {
		u.Step("Access gateway configuration")
		cfg.AccessGateway, err = collectAccessGateway(p)
		if err != nil {
			return nil, err
		}
	}

	if cfg.HasComponent(config.ComponentFederatedGateway) {
		u.Step("Federated gateway configuration")
		cfg.FederatedGateway, err = collectFederatedGateway(p, cfg.Domain)
		if err != nil {
			return nil, err
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("collected configuration is invalid: %w", err)
	}
	return cfg, nil
}

// selectComponents asks which components to deploy, re-asking until at
// least one is chosen. All components are preselected.
func selectComponents(p ui.Prompter, u *ui.UI) ([]config.Component, error) {
	options := make([]string, 0, len(config.AllComponents))
	for _, comp := range config.AllComponents {
		options = append(options, string(comp))
	}

	for {
		selected, err := p.MultiSelect("Select components to deploy", options, options)
		if err != nil {
			return nil, err
		}
		if len(selected) == 0 {
			u.Warning("Select at least one component.")
			continue
		}

		components := make([]config.Component, 0, len(selected))
		for _, name := range selected {
			components = append(components, config.Component(name))
		}
		return components, nil
	}
}

func collectOrchestrator(p ui.Prompter) (*config.OrchestratorConfig, error) {
	o := &config.OrchestratorConfig{}
	var err error

	if o.Namespace, err = p.Input("Kubernetes namespace", "telco", true); err != nil {
		return nil, err
	}
	if o.StorageClass, err = p.Input("Storage class", "standard", true); err != nil {
		return nil, err
	}

	if o.DBHost, err = p.Input("Database host", "postgresql", true); err != nil {
		return nil, err
	}
	if o.DBPort, err = p.InputValidated("Database port", "5432", common.ValidatePort); err != nil {
		return nil, err
	}
	if o.DBUser, err = p.Input("Database user", "telco", true); err != nil {
		return nil, err
	}
	if o.DBPassword, err = p.Secret("Database password"); err != nil {
		return nil, err
	}
	if o.DBName, err = p.Input("Database name", "telco", true); err != nil {
		return nil, err
	}

	if o.TLSCertPath, err = p.Input("TLS certificate path", "/opt/telco/certs/tls.crt", true); err != nil {
		return nil, err
	}
	if o.TLSKeyPath, err = p.Input("TLS key path", "/opt/telco/certs/tls.key", true); err != nil {
		return nil, err
	}

	return o, nil
}

func collectAccessGateway(p ui.Prompter) (*config.AccessGatewayConfig, error) {
	a := &config.AccessGatewayConfig{}
	var err error

	if a.Interface, err = p.Input("Network interface", "eth0", true); err != nil {
		return nil, err
	}
	if a.IPAddress, err = p.InputValidated("Gateway IP address", "", common.ValidateIP); err != nil {
		return nil, err
	}

	if a.MCC, err = p.Input("Mobile Country Code (MCC)", "001", true); err != nil {
		return nil, err
	}
	if a.MNC, err = p.Input("Mobile Network Code (MNC)", "01", true); err != nil {
		return nil, err
	}
	if a.TAC, err = p.Input("Tracking Area Code (TAC)", "1", true); err != nil {
		return nil, err
	}

	// S1AP terminates on the gateway address unless told otherwise
	if a.S1APIP, err = p.InputValidated("S1AP IP address", a.IPAddress, common.ValidateIP); err != nil {
		return nil, err
	}
	if a.S1APPort, err = p.InputValidated("S1AP port", "36412", common.ValidatePort); err != nil {
		return nil, err
	}

	return a, nil
}

func collectFederatedGateway(p ui.Prompter, domain string) (*config.FederatedGatewayConfig, error) {
	f := &config.FederatedGatewayConfig{}
	var err error

	if f.FederationID, err = p.Input("Federation ID", "fgw01", true); err != nil {
		return nil, err
	}

	served, err := p.Input("Served network IDs (comma-separated)", "network1,network2", true)
	if err != nil {
		return nil, err
	}
	for _, id := range strings.Split(served, ",") {
		if id = strings.TrimSpace(id); id != "" {
			f.ServedNetworkIDs = append(f.ServedNetworkIDs, id)
		}
	}

	if f.DiameterHost, err = p.Input("Diameter host", "fgw."+domain, true); err != nil {
		return nil, err
	}
	if f.DiameterRealm, err = p.Input("Diameter realm", domain, true); err != nil {
		return nil, err
	}
	if f.DiameterPort, err = p.InputValidated("Diameter port", "3868", common.ValidatePort); err != nil {
		return nil, err
	}

	return f, nil
}
