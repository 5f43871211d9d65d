package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Paths lays out the fixed on-disk locations under a working directory:
// config/deployment.yaml, scripts/deploy_<component>.sh and deploy.log.
type Paths struct {
	WorkDir string
}

// NewPaths creates a path layout rooted at workDir, defaulting to the
// current directory.
func NewPaths(workDir string) (*Paths, error) {
	if workDir == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to determine working directory: %w", err)
		}
		workDir = cwd
	}
	return &Paths{WorkDir: workDir}, nil
}

// ConfigDir returns the configuration directory
func (p *Paths) ConfigDir() string {
	return filepath.Join(p.WorkDir, "config")
}

// ConfigFile returns the deployment configuration file path
func (p *Paths) ConfigFile() string {
	return filepath.Join(p.ConfigDir(), "deployment.yaml")
}

// ScriptsDir returns the generated-scripts directory
func (p *Paths) ScriptsDir() string {
	return filepath.Join(p.WorkDir, "scripts")
}

// ScriptFile returns the generated script path for a component
func (p *Paths) ScriptFile(comp Component) string {
	name := fmt.Sprintf("deploy_%s.sh", strings.ReplaceAll(string(comp), "-", "_"))
	return filepath.Join(p.ScriptsDir(), name)
}

// LogFile returns the append-only command log path
func (p *Paths) LogFile() string {
	return filepath.Join(p.WorkDir, "deploy.log")
}

// EnsureDirs creates the config and scripts directories
func (p *Paths) EnsureDirs() error {
	for _, dir := range []string{p.ConfigDir(), p.ScriptsDir()} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create %s: %w", dir, err)
		}
	}
	return nil
}
