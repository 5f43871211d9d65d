// Package prereq verifies that the external tools the deployment depends on
// are present, and can install missing ones unattended on Debian-like and
// RHEL-like systems.
package prereq

import (
	"errors"
	"fmt"
	"strings"

	"github.com/telcostack/telco-deploy/internal/system"
	"github.com/telcostack/telco-deploy/internal/ui"
)

// ErrMissingTools indicates required tools are absent and the user declined
// automatic installation.
var ErrMissingTools = errors.New("missing required tools")

// Tool describes a required external binary
type Tool struct {
	Name        string
	Description string
}

// RequiredTools lists every external binary the deployment scripts invoke
var RequiredTools = []Tool{
	{Name: "docker", Description: "container engine for gateway builds"},
	{Name: "docker-compose", Description: "multi-container deployment tool"},
	{Name: "kubectl", Description: "Kubernetes CLI for orchestrator deployment"},
	{Name: "helm", Description: "Kubernetes package manager for platform charts"},
	{Name: "git", Description: "version control for cloning gateway sources"},
}

// ToolStatus is the probe result for a single tool
type ToolStatus struct {
	Name  string
	Found bool
}

// Checker probes for required tools and installs missing ones
type Checker struct {
	exec *system.Executor
	ui   *ui.UI

	// seams for tests
	lookPath    func(string) bool
	releasePath string
}

// New creates a Checker
func New(exec *system.Executor, u *ui.UI) *Checker {
	return &Checker{
		exec:        exec,
		ui:          u,
		lookPath:    system.CommandExists,
		releasePath: system.OSReleasePath,
	}
}

// Check probes every required tool and reports its presence
func (c *Checker) Check() []ToolStatus {
	statuses := make([]ToolStatus, 0, len(RequiredTools))
	for _, tool := range RequiredTools {
		statuses = append(statuses, ToolStatus{
			Name:  tool.Name,
			Found: c.lookPath(tool.Name),
		})
	}
	return statuses
}

// EnsureInstalled checks all required tools and, with the user's consent,
// installs the missing ones. Declined consent, an unsupported OS or a failed
// install command all abort; no partial-state rollback is attempted.
func (c *Checker) EnsureInstalled(p ui.Prompter) error {
	c.ui.Step("Checking prerequisites")

	var missing []string
	for _, status := range c.Check() {
		if status.Found {
			c.ui.Successf("%s found", status.Name)
		} else {
			c.ui.Errorf("%s not found", status.Name)
			missing = append(missing, status.Name)
		}
	}

	if len(missing) == 0 {
		c.ui.Success("All prerequisites are available")
		return nil
	}

	c.ui.Warningf("Missing tools: %s", strings.Join(missing, ", "))
	install, err := p.Confirm("Install missing tools automatically?")
	if err != nil {
		return err
	}
	if !install {
		c.ui.Info("Please install the missing tools manually and re-run the wizard.")
		return fmt.Errorf("%w: %s", ErrMissingTools, strings.Join(missing, ", "))
	}

	family, err := system.DetectOSFamily(c.releasePath)
	if err != nil {
		return err
	}
	c.ui.Infof("Detected %s-family system", family)

	for _, name := range missing {
		c.ui.Infof("Installing %s...", name)
		if err := c.install(name, family); err != nil {
			return fmt.Errorf("failed to install %s: %w", name, err)
		}
		c.ui.Successf("%s installed", name)
	}

	return nil
}
