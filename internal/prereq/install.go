package prereq

import (
	"fmt"
	"strings"

	"github.com/telcostack/telco-deploy/internal/system"
)

// install runs the fixed installation sequence for one tool. The first
// failing command aborts the whole sequence.
func (c *Checker) install(name string, family system.OSFamily) error {
	switch name {
	case "docker":
		return c.installDocker(family)
	case "docker-compose":
		return c.installDockerCompose()
	case "kubectl":
		return c.installKubectl()
	case "helm":
		return c.installHelm()
	case "git":
		return c.installGit(family)
	}
	return fmt.Errorf("no installer for tool: %s", name)
}

func (c *Checker) installDocker(family system.OSFamily) error {
	var commands []string
	switch family {
	case system.FamilyDebian:
		commands = []string{
			"sudo apt-get update",
			"sudo apt-get install -y apt-transport-https ca-certificates curl gnupg lsb-release",
			"curl -fsSL https://download.docker.com/linux/ubuntu/gpg | sudo gpg --dearmor -o /usr/share/keyrings/docker-archive-keyring.gpg",
			`echo "deb [arch=amd64 signed-by=/usr/share/keyrings/docker-archive-keyring.gpg] https://download.docker.com/linux/ubuntu $(lsb_release -cs) stable" | sudo tee /etc/apt/sources.list.d/docker.list > /dev/null`,
			"sudo apt-get update",
			"sudo apt-get install -y docker-ce docker-ce-cli containerd.io",
		}
	case system.FamilyRHEL:
		commands = []string{
			"sudo yum install -y yum-utils",
			"sudo yum-config-manager --add-repo https://download.docker.com/linux/centos/docker-ce.repo",
			"sudo yum install -y docker-ce docker-ce-cli containerd.io",
		}
	}

	for _, cmd := range commands {
		if _, err := c.exec.RunShell(cmd); err != nil {
			return err
		}
	}

	if _, err := c.exec.Run("sudo", "systemctl", "start", "docker"); err != nil {
		return err
	}
	if _, err := c.exec.Run("sudo", "systemctl", "enable", "docker"); err != nil {
		return err
	}

	// Group membership only applies to new login sessions
	username, err := c.exec.Run("whoami")
	if err != nil {
		return err
	}
	if _, err := c.exec.Run("sudo", "usermod", "-aG", "docker", strings.TrimSpace(username)); err != nil {
		return err
	}
	c.ui.Warning("Log out and back in to use docker without sudo")

	return nil
}

func (c *Checker) installDockerCompose() error {
	commands := []string{
		`sudo curl -L "https://github.com/docker/compose/releases/download/1.29.2/docker-compose-$(uname -s)-$(uname -m)" -o /usr/local/bin/docker-compose`,
		"sudo chmod +x /usr/local/bin/docker-compose",
	}
	for _, cmd := range commands {
		if _, err := c.exec.RunShell(cmd); err != nil {
			return err
		}
	}
	return nil
}

func (c *Checker) installKubectl() error {
	commands := []string{
		`curl -LO "https://dl.k8s.io/release/$(curl -L -s https://dl.k8s.io/release/stable.txt)/bin/linux/amd64/kubectl"`,
		"sudo install -o root -g root -m 0755 kubectl /usr/local/bin/kubectl",
	}
	for _, cmd := range commands {
		if _, err := c.exec.RunShell(cmd); err != nil {
			return err
		}
	}
	return nil
}

func (c *Checker) installHelm() error {
	_, err := c.exec.RunShell("curl https://raw.githubusercontent.com/helm/helm/main/scripts/get-helm-3 | bash")
	return err
}

func (c *Checker) installGit(family system.OSFamily) error {
	var cmd string
	switch family {
	case system.FamilyDebian:
		cmd = "sudo apt-get update && sudo apt-get install -y git"
	case system.FamilyRHEL:
		cmd = "sudo yum install -y git"
	}
	_, err := c.exec.RunShell(cmd)
	return err
}
