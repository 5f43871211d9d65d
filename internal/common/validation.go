package common

import (
	"fmt"
	"net"
	"strconv"
	"strings"
)

// ValidateIP validates an IPv4 or IPv6 address in textual form.
func ValidateIP(ip string) error {
	if net.ParseIP(ip) == nil {
		return fmt.Errorf("invalid IP address: %s", ip)
	}
	return nil
}

// ValidateEmail performs basic email validation: exactly one "@" with a "."
// somewhere in the domain part. Deliberately permissive, not RFC-complete.
func ValidateEmail(email string) error {
	if strings.Count(email, "@") != 1 {
		return fmt.Errorf("invalid email address: %s", email)
	}
	at := strings.Index(email, "@")
	local, domain := email[:at], email[at+1:]
	if local == "" {
		return fmt.Errorf("invalid email address: %s", email)
	}
	if !strings.Contains(domain, ".") {
		return fmt.Errorf("invalid email address (no dot in domain): %s", email)
	}
	return nil
}

// ValidatePort validates a port number (1-65535)
func ValidatePort(port string) error {
	p, err := strconv.Atoi(port)
	if err != nil {
		return fmt.Errorf("invalid port number: %s", port)
	}

	if p < 1 || p > 65535 {
		return fmt.Errorf("port must be between 1 and 65535, got: %d", p)
	}

	return nil
}

// ValidateNotEmpty validates that a string is not empty
func ValidateNotEmpty(value string) error {
	if strings.TrimSpace(value) == "" {
		return fmt.Errorf("value cannot be empty")
	}
	return nil
}

// ValidateDomain validates a domain name (basic validation)
func ValidateDomain(domain string) error {
	if domain == "" {
		return fmt.Errorf("domain cannot be empty")
	}

	if len(domain) > 253 {
		return fmt.Errorf("domain name too long: %s", domain)
	}

	parts := strings.Split(domain, ".")
	for _, part := range parts {
		if part == "" {
			return fmt.Errorf("invalid domain (empty label): %s", domain)
		}
		if len(part) > 63 {
			return fmt.Errorf("domain label too long: %s", part)
		}

		for i, c := range part {
			if !((c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9') || c == '-') {
				return fmt.Errorf("invalid character in domain: %s", domain)
			}
			// Hyphen cannot be at start or end
			if c == '-' && (i == 0 || i == len(part)-1) {
				return fmt.Errorf("domain label cannot start or end with hyphen: %s", part)
			}
		}
	}

	return nil
}
