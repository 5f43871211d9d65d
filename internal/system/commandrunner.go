// Package system wraps external command execution and host inspection for
// the deployment wizard. All side effects on the host machine go through the
// CommandRunner seam so tests can assert on exact command lines without
// touching a real system.
package system

import "os/exec"

// CommandRunner defines an interface for running system commands.
type CommandRunner interface {
	Run(name string, args ...string) (string, error)
}

// ExecCommandRunner executes commands on the local system.
type ExecCommandRunner struct{}

// NewCommandRunner returns the default command runner implementation.
func NewCommandRunner() CommandRunner {
	return &ExecCommandRunner{}
}

// Run executes a command and returns its combined output.
func (r *ExecCommandRunner) Run(name string, args ...string) (string, error) {
	cmd := exec.Command(name, args...)
	output, err := cmd.CombinedOutput()
	return string(output), err
}

// CommandExists checks if a command is available in PATH
func CommandExists(command string) bool {
	_, err := exec.LookPath(command)
	return err == nil
}
