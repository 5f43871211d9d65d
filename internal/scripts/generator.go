// Package scripts renders per-component deployment shell scripts from the
// collected configuration. Generation is pure string substitution; nothing
// is executed here.
package scripts

import (
	"bytes"
	"fmt"
	"os"
	"text/template"

	"github.com/telcostack/telco-deploy/internal/config"
)

var componentTemplates = map[config.Component]string{
	config.ComponentOrchestrator:      orchestratorTemplate,
	config.ComponentAccessGateway:     accessGatewayTemplate,
	config.ComponentFederatedGateway:  federatedGatewayTemplate,
	config.ComponentManagementConsole: managementConsoleTemplate,
}

// Generator renders deployment scripts into the scripts directory
type Generator struct {
	paths *config.Paths
}

// NewGenerator creates a Generator
func NewGenerator(paths *config.Paths) *Generator {
	return &Generator{paths: paths}
}

// Generate renders one script per selected component, overwriting any
// previous run's output, and returns the written paths in deployment order.
func (g *Generator) Generate(cfg *config.DeploymentConfig) ([]string, error) {
	if err := g.paths.EnsureDirs(); err != nil {
		return nil, err
	}

	data := templateData(cfg)

	var written []string
	for _, comp := range config.AllComponents {
		if !cfg.HasComponent(comp) {
			continue
		}

		content, err := Render(comp, data)
		if err != nil {
			return nil, err
		}

		path := g.paths.ScriptFile(comp)
		if err := os.WriteFile(path, []byte(content), 0755); err != nil {
			return nil, fmt.Errorf("failed to write %s script: %w", comp, err)
		}
		written = append(written, path)
	}

	return written, nil
}

// Render substitutes configuration values into the component's template.
// A value the template references but the data does not carry is an error.
func Render(comp config.Component, data map[string]interface{}) (string, error) {
	text, ok := componentTemplates[comp]
	if !ok {
		return "", fmt.Errorf("no script template for component: %s", comp)
	}

	tmpl, err := template.New(string(comp)).Option("missingkey=error").Parse(text)
	if err != nil {
		return "", fmt.Errorf("failed to parse %s template: %w", comp, err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to render %s script: %w", comp, err)
	}
	return buf.String(), nil
}

// templateData converts the typed configuration into the map the templates
// consume. Empty values are left out so that missingkey=error surfaces them
// instead of rendering blanks into a script.
func templateData(cfg *config.DeploymentConfig) map[string]interface{} {
	data := map[string]interface{}{}
	putNonEmpty(data, "Domain", cfg.Domain)
	putNonEmpty(data, "AdminEmail", cfg.AdminEmail)
	putNonEmpty(data, "ExternalIP", cfg.Network.ExternalIP)

	if o := cfg.Orchestrator; o != nil {
		sub := map[string]interface{}{}
		putNonEmpty(sub, "Namespace", o.Namespace)
		putNonEmpty(sub, "StorageClass", o.StorageClass)
		putNonEmpty(sub, "DBHost", o.DBHost)
		putNonEmpty(sub, "DBPort", o.DBPort)
		putNonEmpty(sub, "DBUser", o.DBUser)
		putNonEmpty(sub, "DBPassword", o.DBPassword)
		putNonEmpty(sub, "DBName", o.DBName)
		putNonEmpty(sub, "TLSCertPath", o.TLSCertPath)
		putNonEmpty(sub, "TLSKeyPath", o.TLSKeyPath)
		data["Orchestrator"] = sub
	}

	if a := cfg.AccessGateway; a != nil {
		sub := map[string]interface{}{}
		putNonEmpty(sub, "Interface", a.Interface)
		putNonEmpty(sub, "IPAddress", a.IPAddress)
		putNonEmpty(sub, "MCC", a.MCC)
		putNonEmpty(sub, "MNC", a.MNC)
		putNonEmpty(sub, "TAC", a.TAC)
		putNonEmpty(sub, "S1APIP", a.S1APIP)
		putNonEmpty(sub, "S1APPort", a.S1APPort)
		data["AccessGateway"] = sub
	}

	if f := cfg.FederatedGateway; f != nil {
		sub := map[string]interface{}{}
		putNonEmpty(sub, "FederationID", f.FederationID)
		putNonEmpty(sub, "DiameterHost", f.DiameterHost)
		putNonEmpty(sub, "DiameterRealm", f.DiameterRealm)
		putNonEmpty(sub, "DiameterPort", f.DiameterPort)
		if len(f.ServedNetworkIDs) > 0 {
			sub["ServedNetworkIDs"] = f.ServedNetworkIDs
		}
		data["FederatedGateway"] = sub
	}

	return data
}

func putNonEmpty(m map[string]interface{}, key, value string) {
	if value != "" {
		m[key] = value
	}
}
