// Package config defines the deployment configuration model collected by the
// wizard and its YAML persistence. Each deployable component has a typed
// sub-record that is present exactly when the component is selected.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/telcostack/telco-deploy/internal/common"
)

// Component identifies a deployable platform component
type Component string

const (
	ComponentOrchestrator      Component = "orchestrator"
	ComponentAccessGateway     Component = "access-gateway"
	ComponentFederatedGateway  Component = "federated-gateway"
	ComponentManagementConsole Component = "management-console"
)

// AllComponents lists components in deployment order
var AllComponents = []Component{
	ComponentOrchestrator,
	ComponentAccessGateway,
	ComponentFederatedGateway,
	ComponentManagementConsole,
}

// Valid reports whether c names a known component
func (c Component) Valid() bool {
	switch c {
	case ComponentOrchestrator, ComponentAccessGateway, ComponentFederatedGateway, ComponentManagementConsole:
		return true
	}
	return false
}

// NetworkConfig holds shared network settings
type NetworkConfig struct {
	ExternalIP string `yaml:"external_ip"`
}

// OrchestratorConfig holds orchestrator deployment settings
type OrchestratorConfig struct {
	Namespace    string `yaml:"namespace"`
	StorageClass string `yaml:"storage_class"`
	DBHost       string `yaml:"db_host"`
	DBPort       string `yaml:"db_port"`
	DBUser       string `yaml:"db_user"`
	DBPassword   string `yaml:"db_password"`
	DBName       string `yaml:"db_name"`
	TLSCertPath  string `yaml:"tls_cert_path"`
	TLSKeyPath   string `yaml:"tls_key_path"`
}

// AccessGatewayConfig holds access gateway deployment settings
type AccessGatewayConfig struct {
	Interface string `yaml:"interface"`
	IPAddress string `yaml:"ip_address"`
	MCC       string `yaml:"mcc"`
	MNC       string `yaml:"mnc"`
	TAC       string `yaml:"tac"`
	S1APIP    string `yaml:"s1ap_ip"`
	S1APPort  string `yaml:"s1ap_port"`
}

// FederatedGatewayConfig holds federated gateway deployment settings
type FederatedGatewayConfig struct {
	FederationID     string   `yaml:"federation_id"`
	ServedNetworkIDs []string `yaml:"served_network_ids"`
	DiameterHost     string   `yaml:"diameter_host"`
	DiameterRealm    string   `yaml:"diameter_realm"`
	DiameterPort     string   `yaml:"diameter_port"`
}

// DeploymentConfig is the aggregate collected by the questionnaire (or
// loaded verbatim from a file) and consumed read-only afterward.
type DeploymentConfig struct {
	Components       []Component             `yaml:"components"`
	Domain           string                  `yaml:"domain"`
	AdminEmail       string                  `yaml:"admin_email"`
	Network          NetworkConfig           `yaml:"network"`
	Orchestrator     *OrchestratorConfig     `yaml:"orchestrator,omitempty"`
	AccessGateway    *AccessGatewayConfig    `yaml:"access_gateway,omitempty"`
	FederatedGateway *FederatedGatewayConfig `yaml:"federated_gateway,omitempty"`
}

// HasComponent reports whether the component is selected for deployment
func (c *DeploymentConfig) HasComponent(comp Component) bool {
	for _, selected := range c.Components {
		if selected == comp {
			return true
		}
	}
	return false
}

// Validate checks the aggregate invariants: at least one known component is
// selected, shared fields are well-formed, and each component sub-record is
// present exactly when its component is selected.
func (c *DeploymentConfig) Validate() error {
	if len(c.Components) == 0 {
		return fmt.Errorf("no components selected")
	}
	for _, comp := range c.Components {
		if !comp.Valid() {
			return fmt.Errorf("unknown component: %s", comp)
		}
	}

	if err := common.ValidateDomain(c.Domain); err != nil {
		return fmt.Errorf("domain: %w", err)
	}
	if err := common.ValidateEmail(c.AdminEmail); err != nil {
		return fmt.Errorf("admin_email: %w", err)
	}
	if err := common.ValidateIP(c.Network.ExternalIP); err != nil {
		return fmt.Errorf("network.external_ip: %w", err)
	}

	if c.HasComponent(ComponentOrchestrator) != (c.Orchestrator != nil) {
		return componentRecordMismatch(ComponentOrchestrator, c.Orchestrator != nil)
	}
	if c.HasComponent(ComponentAccessGateway) != (c.AccessGateway != nil) {
		return componentRecordMismatch(ComponentAccessGateway, c.AccessGateway != nil)
	}
	if c.HasComponent(ComponentFederatedGateway) != (c.FederatedGateway != nil) {
		return componentRecordMismatch(ComponentFederatedGateway, c.FederatedGateway != nil)
	}

	return nil
}

func componentRecordMismatch(comp Component, hasRecord bool) error {
	if hasRecord {
		return fmt.Errorf("%s settings present but component not selected", comp)
	}
	return fmt.Errorf("%s selected but its settings are missing", comp)
}

// Load reads and validates a deployment configuration file
func Load(path string) (*DeploymentConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg DeploymentConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration in %s: %w", path, err)
	}

	return &cfg, nil
}

// Save writes the configuration using a temp-file + rename so a failed
// write never leaves a truncated config behind.
func (c *DeploymentConfig) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	tmpFile, err := os.CreateTemp(dir, ".deployment.yaml.tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmpFile.Name()
	defer os.Remove(tmpPath) // Cleanup on error

	if err := tmpFile.Chmod(0600); err != nil {
		tmpFile.Close()
		return fmt.Errorf("failed to set permissions on temp file: %w", err)
	}

	fmt.Fprintln(tmpFile, "# telco-deploy deployment configuration")
	fmt.Fprintf(tmpFile, "# Generated: %s\n", time.Now().Format(time.RFC3339))
	if _, err := tmpFile.Write(data); err != nil {
		tmpFile.Close()
		return fmt.Errorf("failed to write temp file: %w", err)
	}

	if err := tmpFile.Sync(); err != nil {
		tmpFile.Close()
		return fmt.Errorf("failed to sync temp file: %w", err)
	}
	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("failed to rename temp file to config: %w", err)
	}

	return nil
}
