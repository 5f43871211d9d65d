package deploy

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/telcostack/telco-deploy/internal/config"
)

var titleCaser = cases.Title(language.English)

// DisplayName returns the human-readable name of a component
func DisplayName(comp config.Component) string {
	return titleCaser.String(strings.ReplaceAll(string(comp), "-", " "))
}

// printSummary reports access endpoints for every deployed component plus
// the configuration and log locations. Read-only over the config.
func (d *Deployer) printSummary(cfg *config.DeploymentConfig) {
	d.UI.Header("Deployment summary")

	if cfg.HasComponent(config.ComponentOrchestrator) {
		d.UI.Printf("Orchestrator:       https://%s", cfg.Domain)
		d.UI.Printf("  Namespace:        %s", cfg.Orchestrator.Namespace)
	}

	if cfg.HasComponent(config.ComponentManagementConsole) {
		d.UI.Printf("Management Console: https://%s:8080", cfg.Domain)
		d.UI.Printf("  Admin email:      %s", cfg.AdminEmail)
	}

	if cfg.HasComponent(config.ComponentAccessGateway) {
		d.UI.Printf("Access Gateway:     %s", cfg.AccessGateway.IPAddress)
		d.UI.Printf("  Network:          %s-%s", cfg.AccessGateway.MCC, cfg.AccessGateway.MNC)
	}

	if cfg.HasComponent(config.ComponentFederatedGateway) {
		d.UI.Printf("Federated Gateway:  %s", cfg.FederatedGateway.FederationID)
		d.UI.Printf("  Diameter:         %s:%s", cfg.FederatedGateway.DiameterHost, cfg.FederatedGateway.DiameterPort)
	}

	d.UI.Print("")
	d.UI.Print("Next steps:")
	d.UI.Print("  1. Verify all services are running")
	d.UI.Print("  2. Point your network devices at the gateways")
	d.UI.Print("  3. Open the management console to manage the network")

	d.UI.Print("")
	d.UI.Printf("Configuration saved in: %s", d.Paths.ConfigFile())
	d.UI.Printf("Command log:            %s", d.Paths.LogFile())
}
