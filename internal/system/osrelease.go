package system

import (
	"errors"
	"fmt"
	"os"
	"strings"
)

// OSFamily identifies a supported distribution family
type OSFamily string

const (
	FamilyDebian OSFamily = "debian"
	FamilyRHEL   OSFamily = "rhel"
)

// OSReleasePath is the standard release-identification file
const OSReleasePath = "/etc/os-release"

// ErrUnsupportedOS indicates the host distribution is not supported for
// automatic prerequisite installation.
var ErrUnsupportedOS = errors.New("unsupported operating system")

// DetectOSFamily inspects a release-identification file for known
// distribution markers. Only Debian-like and RHEL-like systems are
// supported.
func DetectOSFamily(releasePath string) (OSFamily, error) {
	data, err := os.ReadFile(releasePath)
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", releasePath, err)
	}

	content := strings.ToLower(string(data))
	switch {
	case strings.Contains(content, "ubuntu"), strings.Contains(content, "debian"):
		return FamilyDebian, nil
	case strings.Contains(content, "centos"), strings.Contains(content, "rhel"),
		strings.Contains(content, "red hat"):
		return FamilyRHEL, nil
	}

	return "", fmt.Errorf("%w: no known distribution marker in %s", ErrUnsupportedOS, releasePath)
}
