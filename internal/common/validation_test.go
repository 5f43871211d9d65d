package common

import "testing"

func TestValidateIP(t *testing.T) {
	tests := []struct {
		name    string
		ip      string
		wantErr bool
	}{
		{"valid IPv4", "192.168.1.1", false},
		{"valid IPv4 with zeros", "10.0.0.1", false},
		{"valid IPv4 broadcast", "255.255.255.255", false},
		{"valid IPv6", "2001:0db8:85a3::8a2e:0370:7334", false},
		{"valid IPv6 loopback", "::1", false},
		{"invalid - octet too high", "256.1.1.1", true},
		{"invalid - three octets", "10.0.1", true},
		{"invalid - not numeric", "not-an-ip", true},
		{"invalid - trailing dot", "10.0.0.1.", true},
		{"invalid - empty", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateIP(tt.ip)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateIP() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidateEmail(t *testing.T) {
	tests := []struct {
		name    string
		email   string
		wantErr bool
	}{
		{"valid", "user@domain.tld", false},
		{"valid subdomain", "ops@nms.example.org", false},
		{"valid plus tag", "ops+alerts@example.org", false},
		{"invalid - no at sign", "userdomain.tld", true},
		{"invalid - no dot after at", "user@domain", true},
		{"invalid - two at signs", "user@host@domain.tld", true},
		{"invalid - empty local part", "@domain.tld", true},
		{"invalid - empty", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateEmail(tt.email)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateEmail() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidatePort(t *testing.T) {
	tests := []struct {
		name    string
		port    string
		wantErr bool
	}{
		{"valid port", "8080", false},
		{"valid port - min", "1", false},
		{"valid port - max", "65535", false},
		{"valid port - diameter", "3868", false},
		{"invalid - zero", "0", true},
		{"invalid - too high", "65536", true},
		{"invalid - negative", "-1", true},
		{"invalid - not numeric", "abc", true},
		{"invalid - empty", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePort(tt.port)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidatePort() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidateDomain(t *testing.T) {
	tests := []struct {
		name    string
		domain  string
		wantErr bool
	}{
		{"valid domain", "example.org", false},
		{"valid single label", "localhost", false},
		{"valid with hyphen", "core-net.example.org", false},
		{"invalid - empty", "", true},
		{"invalid - empty label", "example..org", true},
		{"invalid - leading hyphen", "-example.org", true},
		{"invalid - space", "exa mple.org", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateDomain(tt.domain)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateDomain() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidateNotEmpty(t *testing.T) {
	if err := ValidateNotEmpty("value"); err != nil {
		t.Errorf("ValidateNotEmpty(value) = %v, want nil", err)
	}
	if err := ValidateNotEmpty("   "); err == nil {
		t.Error("ValidateNotEmpty(whitespace) = nil, want error")
	}
	if err := ValidateNotEmpty(""); err == nil {
		t.Error("ValidateNotEmpty(empty) = nil, want error")
	}
}
