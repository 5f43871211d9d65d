package main

import (
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/telcostack/telco-deploy/internal/config"
	"github.com/telcostack/telco-deploy/internal/deploy"
	"github.com/telcostack/telco-deploy/internal/prereq"
	"github.com/telcostack/telco-deploy/internal/scripts"
	"github.com/telcostack/telco-deploy/internal/system"
	"github.com/telcostack/telco-deploy/internal/ui"
	"github.com/telcostack/telco-deploy/pkg/version"
)

var (
	configPath        string
	skipPrerequisites bool
	dryRun            bool
	workDir           string
)

var rootCmd = &cobra.Command{
	Use:   "telco-deploy",
	Short: "Interactive deployment wizard for the telco core platform",
	Long: `An interactive wizard that deploys the telco core platform components:

- Orchestrator: central management plane
- Access Gateway: radio access network gateway
- Federated Gateway: federation with external networks over Diameter
- Management Console: web-based operator interface

The wizard collects deployment parameters, checks (and optionally installs)
the required tools, generates per-component deployment scripts and runs
them. Every external command and its output is appended to deploy.log.`,
	SilenceUsage:  true, // We handle errors manually, but silence usage on error
	SilenceErrors: true, // We format errors ourselves for consistent output
	RunE:          runDeploy,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println(version.Info())
	},
}

func init() {
	rootCmd.Flags().StringVar(&configPath, "config", "", "Load deployment configuration from a file, skipping the questionnaire")
	rootCmd.Flags().BoolVar(&skipPrerequisites, "skip-prerequisites", false, "Skip the prerequisite check and install step")
	rootCmd.Flags().BoolVar(&dryRun, "dry-run", false, "Generate configuration and scripts without executing anything")
	rootCmd.Flags().StringVar(&workDir, "workdir", "", "Directory for configuration, scripts and logs (default: current directory)")

	rootCmd.AddCommand(versionCmd)
}

func runDeploy(cmd *cobra.Command, args []string) error {
	paths, err := config.NewPaths(workDir)
	if err != nil {
		return err
	}

	logFile, err := system.OpenLogFile(paths.LogFile())
	if err != nil {
		return err
	}
	defer logFile.Close()

	u := ui.New()
	exec := system.NewExecutor(system.NewCommandRunner(), system.NewLogger(logFile))

	// An interrupt during script execution becomes a clean abort, not a
	// stack dump. Interrupts during prompts surface through the prompter.
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigCh)
	go func() {
		<-sigCh
		u.Print("")
		u.Warning("Deployment interrupted by user.")
		os.Exit(1)
	}()

	d := &deploy.Deployer{
		UI:        u,
		Prompter:  ui.NewPrompter(u),
		Paths:     paths,
		Executor:  exec,
		Prereq:    prereq.New(exec, u),
		Generator: scripts.NewGenerator(paths),
		Options: deploy.Options{
			ConfigPath:        configPath,
			SkipPrerequisites: skipPrerequisites,
			DryRun:            dryRun,
		},
	}

	return d.Run()
}

func main() {
	err := rootCmd.Execute()
	if err == nil || errors.Is(err, deploy.ErrDeclined) {
		return
	}
	if !errors.Is(err, deploy.ErrCancelled) {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	}
	os.Exit(1)
}
