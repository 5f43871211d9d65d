package system

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/kballard/go-shellquote"
)

// Executor runs external commands through a CommandRunner, logging every
// command line and its output to the deployment log. Failures abort unless
// the caller explicitly tolerates them.
type Executor struct {
	runner CommandRunner
	log    *slog.Logger
}

// NewExecutor creates an Executor writing to the given logger
func NewExecutor(runner CommandRunner, log *slog.Logger) *Executor {
	return &Executor{
		runner: runner,
		log:    log,
	}
}

// OpenLogFile opens the append-only deployment log
func OpenLogFile(path string) (*os.File, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}
	return f, nil
}

// NewLogger constructs the deployment logger on the given writer
func NewLogger(w io.Writer) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelInfo}))
}

// Run executes a command, returning its combined output. A non-zero exit is
// logged with the captured output and returned as an error.
func (e *Executor) Run(name string, args ...string) (string, error) {
	cmdLine := shellquote.Join(append([]string{name}, args...)...)
	e.log.Info("executing command", "cmd", cmdLine)

	output, err := e.runner.Run(name, args...)
	if trimmed := strings.TrimSpace(output); trimmed != "" {
		e.log.Info("command output", "cmd", cmdLine, "output", trimmed)
	}

	if err != nil {
		e.log.Error("command failed", "cmd", cmdLine, "error", err.Error())
		return output, fmt.Errorf("command failed: %s: %w", cmdLine, err)
	}
	return output, nil
}

// RunTolerated executes a command but treats a non-zero exit as acceptable,
// logging it and moving on. Used for idempotent operations such as namespace
// creation where "already exists" is fine.
func (e *Executor) RunTolerated(name string, args ...string) string {
	cmdLine := shellquote.Join(append([]string{name}, args...)...)
	e.log.Info("executing command (failure tolerated)", "cmd", cmdLine)

	output, err := e.runner.Run(name, args...)
	if trimmed := strings.TrimSpace(output); trimmed != "" {
		e.log.Info("command output", "cmd", cmdLine, "output", trimmed)
	}
	if err != nil {
		e.log.Warn("command failed (tolerated)", "cmd", cmdLine, "error", err.Error())
	}
	return output
}

// RunShell executes a shell pipeline via "bash -c". Some installer steps
// need redirection and substitution that a plain argv cannot express.
func (e *Executor) RunShell(script string) (string, error) {
	return e.Run("bash", "-c", script)
}

// RunScript marks a generated script executable and runs it
func (e *Executor) RunScript(path string) error {
	if err := os.Chmod(path, 0755); err != nil {
		return fmt.Errorf("failed to mark script executable: %w", err)
	}
	if _, err := e.Run("bash", path); err != nil {
		return err
	}
	return nil
}
