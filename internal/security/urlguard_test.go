// Socialscope - Social Media Insights API Gateway
// Copyright 2026 Socialscope contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package security

import (
	"testing"
	"time"
)

func TestValidateURL(t *testing.T) {
	tests := []struct {
		name    string
		url     string
		wantErr bool
	}{
		{"public profile url", "https://www.instagram.com/therock/", false},
		{"plain http", "http://example.com/page", false},
		{"public IP", "https://93.184.216.34/", false},
		{"empty", "", true},
		{"no scheme", "www.instagram.com/therock", true},
		{"ftp scheme", "ftp://example.com/file", true},
		{"file scheme", "file:///etc/passwd", true},
		{"localhost", "http://localhost/admin", true},
		{"localhost mixed case", "http://LocalHost/admin", true},
		{"loopback IP", "http://127.0.0.1/admin", true},
		{"private IP", "http://10.0.0.5/", true},
		{"private 172 range", "http://172.16.0.1/", true},
		{"private 192 range", "http://192.168.1.1/", true},
		{"cloud metadata IP", "http://169.254.169.254/latest/meta-data/", true},
		{"ipv6 loopback", "http://[::1]/", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateURL(tt.url)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateURL(%q) error = %v, wantErr %v", tt.url, err, tt.wantErr)
			}
		})
	}
}

func TestNewOutboundClientHasGuardedTransport(t *testing.T) {
	client := NewOutboundClient(5 * time.Second)
	if client == nil {
		t.Fatal("NewOutboundClient() returned nil")
	}
	// The guard lives in a dial-time control hook, so the transport must not
	// be the shared default one.
	if client.Transport == nil {
		t.Error("client transport not set, address validation would be skipped")
	}
}
