package deploy

import (
	"errors"
	"fmt"

	"github.com/telcostack/telco-deploy/internal/config"
	"github.com/telcostack/telco-deploy/internal/prereq"
	"github.com/telcostack/telco-deploy/internal/scripts"
	"github.com/telcostack/telco-deploy/internal/system"
	"github.com/telcostack/telco-deploy/internal/ui"
)

// ErrDeclined is returned when the operator declines the initial continue
// prompt. Nothing has been written at that point; the process exits cleanly.
var ErrDeclined = errors.New("deployment declined")

// ErrCancelled is returned when the operator cancels after the run has
// started (declined final confirmation or an interrupt).
var ErrCancelled = errors.New("deployment cancelled")

// Options are the command-line switches that shape a run
type Options struct {
	ConfigPath        string
	SkipPrerequisites bool
	DryRun            bool
}

// Deployer wires the wizard's collaborators together for one run
type Deployer struct {
	UI        *ui.UI
	Prompter  ui.Prompter
	Paths     *config.Paths
	Executor  *system.Executor
	Prereq    *prereq.Checker
	Generator *scripts.Generator
	Options   Options
}

// Run executes the full deployment flow: welcome, prerequisites,
// questionnaire (or config load), confirmation, script generation,
// execution, summary.
func (d *Deployer) Run() error {
	err := d.run()
	if errors.Is(err, ui.ErrInterrupted) {
		d.UI.Print("")
		d.UI.Warning("Deployment interrupted by user.")
		return ErrCancelled
	}
	return err
}

func (d *Deployer) run() error {
	d.welcome()

	proceed, err := d.Prompter.Confirm("Do you want to continue with the deployment?")
	if err != nil {
		return err
	}
	if !proceed {
		d.UI.Info("Deployment cancelled.")
		return ErrDeclined
	}

	if d.Options.SkipPrerequisites {
		d.UI.Warning("Skipping prerequisite checks")
	} else {
		if err := d.Prereq.EnsureInstalled(d.Prompter); err != nil {
			return err
		}
	}

	cfg, err := d.loadOrCollect()
	if err != nil {
		return err
	}

	if err := d.Paths.EnsureDirs(); err != nil {
		return err
	}
	if err := cfg.Save(d.Paths.ConfigFile()); err != nil {
		return err
	}
	d.UI.Successf("Configuration saved to %s", d.Paths.ConfigFile())

	confirmed, err := d.Prompter.Confirm("Do you want to proceed with the deployment?")
	if err != nil {
		return err
	}
	if !confirmed {
		d.UI.Info("Deployment cancelled by user.")
		return ErrCancelled
	}

	if err := d.deployComponents(cfg); err != nil {
		return err
	}

	if d.Options.DryRun {
		d.UI.Success("Dry run complete; no commands were executed.")
		return nil
	}

	d.printSummary(cfg)
	return nil
}

func (d *Deployer) welcome() {
	d.UI.Header("TELCO CORE DEPLOYMENT TOOL")
	d.UI.Print("This tool will guide you through deploying the core platform components:")
	for _, comp := range config.AllComponents {
		d.UI.Printf("  - %s", DisplayName(comp))
	}
	d.UI.Print("")
	d.UI.Print("Prerequisites:")
	d.UI.Print("  - Docker and Docker Compose installed")
	d.UI.Print("  - A Kubernetes cluster (for the orchestrator and console)")
	d.UI.Print("  - Sufficient system resources (8GB+ RAM recommended)")
	d.UI.Print("  - Network connectivity for downloading images")
	d.UI.Separator()
}

func (d *Deployer) loadOrCollect() (*config.DeploymentConfig, error) {
	if d.Options.ConfigPath != "" {
		cfg, err := config.Load(d.Options.ConfigPath)
		if err != nil {
			return nil, err
		}
		d.UI.Successf("Configuration loaded from %s", d.Options.ConfigPath)
		return cfg, nil
	}
	return CollectConfig(d.Prompter, d.UI)
}

// deployComponents generates every selected component's script and runs
// them in deployment order. In dry-run mode the scripts are generated and
// reported but nothing executes.
func (d *Deployer) deployComponents(cfg *config.DeploymentConfig) error {
	written, err := d.Generator.Generate(cfg)
	if err != nil {
		return err
	}
	d.UI.Successf("Generated %d deployment script(s) in %s", len(written), d.Paths.ScriptsDir())

	for _, comp := range config.AllComponents {
		if !cfg.HasComponent(comp) {
			continue
		}

		script := d.Paths.ScriptFile(comp)
		if d.Options.DryRun {
			d.UI.Infof("[dry-run] would execute %s", script)
			continue
		}

		d.UI.Step(fmt.Sprintf("Deploying %s", DisplayName(comp)))

		// Namespace creation is idempotent; "already exists" is fine
		if comp == config.ComponentOrchestrator {
			d.Executor.RunTolerated("kubectl", "create", "namespace", cfg.Orchestrator.Namespace)
		}

		if err := d.Executor.RunScript(script); err != nil {
			return fmt.Errorf("%s deployment failed: %w", comp, err)
		}
		d.UI.Successf("%s deployment completed", DisplayName(comp))
	}

	return nil
}
