package deploy

import (
	"bytes"
	"errors"
	"os"
	"strings"
	"testing"

	"github.com/telcostack/telco-deploy/internal/config"
	"github.com/telcostack/telco-deploy/internal/prereq"
	"github.com/telcostack/telco-deploy/internal/scripts"
	"github.com/telcostack/telco-deploy/internal/system"
	"github.com/telcostack/telco-deploy/internal/ui"
)

// recordingRunner records every command line handed to it
type recordingRunner struct {
	calls []string
	fail  map[string]error
}

func (r *recordingRunner) Run(name string, args ...string) (string, error) {
	cmd := strings.Join(append([]string{name}, args...), " ")
	r.calls = append(r.calls, cmd)
	if r.fail != nil {
		if err, ok := r.fail[cmd]; ok {
			return "", err
		}
	}
	return "", nil
}

func (r *recordingRunner) scriptCalls() []string {
	var out []string
	for _, call := range r.calls {
		if strings.HasPrefix(call, "bash ") {
			out = append(out, call)
		}
	}
	return out
}

func newTestDeployer(t *testing.T, input string, opts Options) (*Deployer, *recordingRunner, *bytes.Buffer) {
	t.Helper()

	var out bytes.Buffer
	u := ui.NewWithWriter(&out)
	runner := &recordingRunner{}
	exec := system.NewExecutor(runner, system.NewLogger(&out))

	paths, err := config.NewPaths(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}

	d := &Deployer{
		UI:        u,
		Prompter:  ui.NewLinePrompter(strings.NewReader(input), &out),
		Paths:     paths,
		Executor:  exec,
		Prereq:    prereq.New(exec, u),
		Generator: scripts.NewGenerator(paths),
		Options:   opts,
	}
	return d, runner, &out
}

func skipPrereqs(opts Options) Options {
	opts.SkipPrerequisites = true
	return opts
}

// consoleOnlyInput walks the questionnaire selecting only the management
// console: continue, pick option 4, domain, email, external IP, final
// confirm.
const consoleOnlyInput = "y\n4\nexample.org\nops@example.org\n203.0.113.10\ny\n"

func TestRunDeclinedInitialPromptWritesNothing(t *testing.T) {
	d, runner, _ := newTestDeployer(t, "n\n", skipPrereqs(Options{}))

	err := d.Run()
	if !errors.Is(err, ErrDeclined) {
		t.Fatalf("Run() = %v, want ErrDeclined", err)
	}

	if _, err := os.Stat(d.Paths.ConfigFile()); !os.IsNotExist(err) {
		t.Error("config file must not be written after an initial decline")
	}
	if _, err := os.Stat(d.Paths.ScriptsDir()); !os.IsNotExist(err) {
		t.Error("scripts must not be written after an initial decline")
	}
	if len(runner.calls) != 0 {
		t.Errorf("no commands should run, got: %v", runner.calls)
	}
}

func TestRunConsoleOnlyEndToEnd(t *testing.T) {
	d, runner, out := newTestDeployer(t, consoleOnlyInput, skipPrereqs(Options{}))

	if err := d.Run(); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	// Exactly one script, for the console
	entries, err := os.ReadDir(d.Paths.ScriptsDir())
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 || entries[0].Name() != "deploy_management_console.sh" {
		t.Fatalf("expected only the console script, got: %v", entries)
	}

	data, err := os.ReadFile(d.Paths.ScriptFile(config.ComponentManagementConsole))
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"example.org", "ops@example.org", "console.port=8080"} {
		if !strings.Contains(string(data), want) {
			t.Errorf("console script missing %q", want)
		}
	}

	// The script was executed
	scriptCalls := runner.scriptCalls()
	if len(scriptCalls) != 1 || !strings.Contains(scriptCalls[0], "deploy_management_console.sh") {
		t.Errorf("expected one script execution, got: %v", runner.calls)
	}

	// Configuration persisted and loadable
	loaded, err := config.Load(d.Paths.ConfigFile())
	if err != nil {
		t.Fatalf("saved config does not load: %v", err)
	}
	if loaded.Domain != "example.org" || loaded.AdminEmail != "ops@example.org" {
		t.Errorf("saved config mismatch: %+v", loaded)
	}

	// Summary prints the console URL
	if !strings.Contains(out.String(), "https://example.org:8080") {
		t.Error("summary missing console URL https://example.org:8080")
	}
}

func TestRunFinalDeclineCancels(t *testing.T) {
	input := "y\n4\nexample.org\nops@example.org\n203.0.113.10\nn\n"
	d, runner, _ := newTestDeployer(t, input, skipPrereqs(Options{}))

	err := d.Run()
	if !errors.Is(err, ErrCancelled) {
		t.Fatalf("Run() = %v, want ErrCancelled", err)
	}

	// Collection finished, so the config is persisted for reuse
	if _, err := os.Stat(d.Paths.ConfigFile()); err != nil {
		t.Errorf("config should be saved before the final confirmation: %v", err)
	}
	if len(runner.scriptCalls()) != 0 {
		t.Errorf("no scripts should run after a declined confirmation, got: %v", runner.calls)
	}
}

func TestRunDryRunExecutesNothing(t *testing.T) {
	d, runner, out := newTestDeployer(t, consoleOnlyInput, skipPrereqs(Options{DryRun: true}))

	if err := d.Run(); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if len(runner.calls) != 0 {
		t.Errorf("dry run must execute nothing, got: %v", runner.calls)
	}
	if _, err := os.Stat(d.Paths.ScriptFile(config.ComponentManagementConsole)); err != nil {
		t.Errorf("dry run should still generate scripts: %v", err)
	}
	if !strings.Contains(out.String(), "[dry-run]") {
		t.Error("dry run should report what it would execute")
	}
}

func TestRunLoadsConfigFileSkippingQuestionnaire(t *testing.T) {
	cfg := &config.DeploymentConfig{
		Components: []config.Component{config.ComponentManagementConsole},
		Domain:     "example.org",
		AdminEmail: "ops@example.org",
		Network:    config.NetworkConfig{ExternalIP: "203.0.113.10"},
	}
	path := t.TempDir() + "/deployment.yaml"
	if err := cfg.Save(path); err != nil {
		t.Fatal(err)
	}

	// Only the two confirmations are answered; any questionnaire prompt
	// would exhaust the input and fail
	d, runner, _ := newTestDeployer(t, "y\ny\n", skipPrereqs(Options{ConfigPath: path}))

	if err := d.Run(); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if len(runner.scriptCalls()) != 1 {
		t.Errorf("expected one script execution, got: %v", runner.calls)
	}
}

func TestRunBadConfigFileAborts(t *testing.T) {
	path := t.TempDir() + "/deployment.yaml"
	if err := os.WriteFile(path, []byte("components: [::bad"), 0644); err != nil {
		t.Fatal(err)
	}

	d, _, _ := newTestDeployer(t, "y\n", skipPrereqs(Options{ConfigPath: path}))
	if err := d.Run(); err == nil {
		t.Fatal("Run() = nil, want config load error")
	}
}

func TestRunOrchestratorNamespaceTolerated(t *testing.T) {
	cfg := &config.DeploymentConfig{
		Components: []config.Component{config.ComponentOrchestrator},
		Domain:     "example.org",
		AdminEmail: "ops@example.org",
		Network:    config.NetworkConfig{ExternalIP: "203.0.113.10"},
		Orchestrator: &config.OrchestratorConfig{
			Namespace:    "telco",
			StorageClass: "standard",
			DBHost:       "postgresql",
			DBPort:       "5432",
			DBUser:       "telco",
			DBPassword:   "pw",
			DBName:       "telco",
			TLSCertPath:  "/opt/telco/certs/tls.crt",
			TLSKeyPath:   "/opt/telco/certs/tls.key",
		},
	}
	path := t.TempDir() + "/deployment.yaml"
	if err := cfg.Save(path); err != nil {
		t.Fatal(err)
	}

	d, runner, _ := newTestDeployer(t, "y\ny\n", skipPrereqs(Options{ConfigPath: path}))
	runner.fail = map[string]error{
		"kubectl create namespace telco": errors.New("exit status 1"),
	}

	if err := d.Run(); err != nil {
		t.Fatalf("Run() error = %v; existing namespace must be tolerated", err)
	}

	var sawNamespace bool
	for _, call := range runner.calls {
		if call == "kubectl create namespace telco" {
			sawNamespace = true
		}
	}
	if !sawNamespace {
		t.Errorf("namespace creation not attempted, calls: %v", runner.calls)
	}
	if len(runner.scriptCalls()) != 1 {
		t.Errorf("orchestrator script should still run, got: %v", runner.calls)
	}
}

func TestRunScriptFailureAborts(t *testing.T) {
	d, runner, _ := newTestDeployer(t, consoleOnlyInput, skipPrereqs(Options{}))
	runner.fail = map[string]error{
		"bash " + d.Paths.ScriptFile(config.ComponentManagementConsole): errors.New("exit status 1"),
	}

	err := d.Run()
	if err == nil {
		t.Fatal("Run() = nil, want error from failed script")
	}
	if !strings.Contains(err.Error(), "management-console") {
		t.Errorf("error should name the failed component, got: %v", err)
	}
}

func TestRunInterruptedPromptCancels(t *testing.T) {
	// Empty input: the first prompt hits EOF, which stands in for Ctrl-C
	d, _, _ := newTestDeployer(t, "", skipPrereqs(Options{}))

	err := d.Run()
	if !errors.Is(err, ErrCancelled) {
		t.Fatalf("Run() = %v, want ErrCancelled", err)
	}
}
