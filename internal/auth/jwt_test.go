// Socialscope - Social Media Insights API Gateway
// Copyright 2026 Socialscope contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package auth

import (
	"errors"
	"testing"
	"time"
)

func newTestManager(t *testing.T) *JWTManager {
	t.Helper()
	m, err := NewJWTManager("test-secret", 2*time.Hour)
	if err != nil {
		t.Fatalf("NewJWTManager() error = %v", err)
	}
	return m
}

func TestNewJWTManagerRequiresSecret(t *testing.T) {
	if _, err := NewJWTManager("", time.Hour); err == nil {
		t.Error("NewJWTManager() with empty secret should return error")
	}
}

func TestIssueAndVerify(t *testing.T) {
	m := newTestManager(t)

	token, expiresAt, err := m.Issue("admin")
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}
	if token == "" {
		t.Fatal("Issue() returned empty token")
	}
	if remaining := time.Until(expiresAt); remaining < time.Hour {
		t.Errorf("expiresAt too soon, remaining = %v", remaining)
	}

	principal, err := m.Verify(token)
	if err != nil {
		t.Fatalf("Verify() error = %v", err)
	}
	if principal.Subject != "admin" {
		t.Errorf("Subject = %q, want %q", principal.Subject, "admin")
	}
}

func TestVerifyExpired(t *testing.T) {
	m := newTestManager(t)

	issuedAt := time.Now().Add(-3 * time.Hour)
	m.now = func() time.Time { return issuedAt }
	token, _, err := m.Issue("admin")
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}

	// Lifetime is 2h, so a token issued 3h ago is expired.
	m.now = time.Now
	if _, err := m.Verify(token); !errors.Is(err, ErrTokenExpired) {
		t.Errorf("Verify() error = %v, want ErrTokenExpired", err)
	}
}

func TestVerifyFailures(t *testing.T) {
	m := newTestManager(t)

	other, err := NewJWTManager("other-secret", 2*time.Hour)
	if err != nil {
		t.Fatalf("NewJWTManager() error = %v", err)
	}
	foreign, _, err := other.Issue("admin")
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}

	tests := []struct {
		name    string
		token   string
		wantErr error
	}{
		{"empty token", "", ErrTokenMissing},
		{"garbage token", "not-a-jwt", ErrTokenMalformed},
		{"wrong secret", foreign, ErrTokenMalformed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := m.Verify(tt.token); !errors.Is(err, tt.wantErr) {
				t.Errorf("Verify() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestCredentialTableAuthenticate(t *testing.T) {
	table := NewCredentialTable(map[string]string{
		"admin": "admin123",
		"user":  "password123",
	})

	tests := []struct {
		name     string
		username string
		password string
		want     bool
	}{
		{"valid admin", "admin", "admin123", true},
		{"valid user", "user", "password123", true},
		{"wrong password", "admin", "wrong", false},
		{"unknown user", "nobody", "admin123", false},
		{"empty credentials", "", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := table.Authenticate(tt.username, tt.password); got != tt.want {
				t.Errorf("Authenticate(%q, %q) = %v, want %v", tt.username, tt.password, got, tt.want)
			}
		})
	}
}
