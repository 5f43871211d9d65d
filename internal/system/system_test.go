package system

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// fakeRunner records command invocations and plays back scripted results
type fakeRunner struct {
	calls   []string
	outputs map[string]string
	fail    map[string]error
}

func newFakeRunner() *fakeRunner {
	return &fakeRunner{
		outputs: make(map[string]string),
		fail:    make(map[string]error),
	}
}

func (r *fakeRunner) Run(name string, args ...string) (string, error) {
	cmd := strings.Join(append([]string{name}, args...), " ")
	r.calls = append(r.calls, cmd)
	if err, ok := r.fail[cmd]; ok {
		return r.outputs[cmd], err
	}
	return r.outputs[cmd], nil
}

func newTestExecutor(runner CommandRunner, logBuf *bytes.Buffer) *Executor {
	return NewExecutor(runner, NewLogger(logBuf))
}

func TestExecutorRunLogsCommand(t *testing.T) {
	runner := newFakeRunner()
	runner.outputs["echo hello"] = "hello\n"

	var logBuf bytes.Buffer
	e := newTestExecutor(runner, &logBuf)

	output, err := e.Run("echo", "hello")
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if output != "hello\n" {
		t.Errorf("Run() output = %q, want %q", output, "hello\n")
	}

	log := logBuf.String()
	if !strings.Contains(log, "executing command") || !strings.Contains(log, "echo hello") {
		t.Errorf("log missing command line, got: %s", log)
	}
	if !strings.Contains(log, "command output") {
		t.Errorf("log missing captured output, got: %s", log)
	}
}

func TestExecutorRunQuotesArguments(t *testing.T) {
	runner := newFakeRunner()
	var logBuf bytes.Buffer
	e := newTestExecutor(runner, &logBuf)

	if _, err := e.Run("kubectl", "create", "namespace", "my ns"); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if !strings.Contains(logBuf.String(), "'my ns'") {
		t.Errorf("log should quote argument with spaces, got: %s", logBuf.String())
	}
}

func TestExecutorRunFailure(t *testing.T) {
	runner := newFakeRunner()
	runner.fail["helm repo update"] = errors.New("exit status 1")
	runner.outputs["helm repo update"] = "no repositories found"

	var logBuf bytes.Buffer
	e := newTestExecutor(runner, &logBuf)

	_, err := e.Run("helm", "repo", "update")
	if err == nil {
		t.Fatal("Run() = nil, want error on non-zero exit")
	}
	if !strings.Contains(err.Error(), "helm repo update") {
		t.Errorf("error should name the command, got: %v", err)
	}
	if !strings.Contains(logBuf.String(), "command failed") {
		t.Errorf("log missing failure entry, got: %s", logBuf.String())
	}
}

func TestExecutorRunTolerated(t *testing.T) {
	runner := newFakeRunner()
	runner.fail["kubectl create namespace core"] = errors.New("exit status 1")
	runner.outputs["kubectl create namespace core"] = "namespace already exists"

	var logBuf bytes.Buffer
	e := newTestExecutor(runner, &logBuf)

	output := e.RunTolerated("kubectl", "create", "namespace", "core")
	if !strings.Contains(output, "already exists") {
		t.Errorf("RunTolerated() output = %q", output)
	}
	if !strings.Contains(logBuf.String(), "tolerated") {
		t.Errorf("log missing tolerated entry, got: %s", logBuf.String())
	}
	if len(runner.calls) != 1 {
		t.Errorf("expected exactly one invocation, got %d", len(runner.calls))
	}
}

func TestOpenLogFileAppends(t *testing.T) {
	path := filepath.Join(t.TempDir(), "deploy.log")

	for _, line := range []string{"first\n", "second\n"} {
		f, err := OpenLogFile(path)
		if err != nil {
			t.Fatalf("OpenLogFile() error = %v", err)
		}
		if _, err := f.WriteString(line); err != nil {
			t.Fatal(err)
		}
		f.Close()
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "first\nsecond\n" {
		t.Errorf("log file not append-only, got: %q", string(data))
	}
}

func TestDetectOSFamily(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    OSFamily
		wantErr bool
	}{
		{"ubuntu", "NAME=\"Ubuntu\"\nID=ubuntu\n", FamilyDebian, false},
		{"debian", "NAME=\"Debian GNU/Linux\"\nID=debian\n", FamilyDebian, false},
		{"centos", "NAME=\"CentOS Linux\"\nID=\"centos\"\n", FamilyRHEL, false},
		{"rhel", "NAME=\"Red Hat Enterprise Linux\"\nID=\"rhel\"\n", FamilyRHEL, false},
		{"unsupported", "NAME=\"Arch Linux\"\nID=arch\n", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "os-release")
			if err := os.WriteFile(path, []byte(tt.content), 0644); err != nil {
				t.Fatal(err)
			}

			got, err := DetectOSFamily(path)
			if (err != nil) != tt.wantErr {
				t.Fatalf("DetectOSFamily() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr && !errors.Is(err, ErrUnsupportedOS) {
				t.Errorf("error should wrap ErrUnsupportedOS, got: %v", err)
			}
			if got != tt.want {
				t.Errorf("DetectOSFamily() = %v, want %v", got, tt.want)
			}
		})
	}

	if _, err := DetectOSFamily(filepath.Join(t.TempDir(), "missing")); err == nil {
		t.Error("DetectOSFamily(missing file) = nil, want error")
	}
}
