// Socialscope - Social Media Insights API Gateway
// Copyright 2026 Socialscope contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"testing"
	"time"
)

func TestCredentialTable(t *testing.T) {
	tests := []struct {
		name  string
		users []string
		want  map[string]string
	}{
		{
			"default table",
			[]string{"admin:admin123", "user:password123"},
			map[string]string{"admin": "admin123", "user": "password123"},
		},
		{
			"malformed entries skipped",
			[]string{"admin:admin123", "nopassword", ":orphan", ""},
			map[string]string{"admin": "admin123"},
		},
		{
			"password containing colon",
			[]string{"svc:p:a:s:s"},
			map[string]string{"svc": "p:a:s:s"},
		},
		{
			"empty list",
			nil,
			map[string]string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := SecurityConfig{Users: tt.users}
			got := s.CredentialTable()
			if len(got) != len(tt.want) {
				t.Fatalf("CredentialTable() has %d entries, want %d", len(got), len(tt.want))
			}
			for user, pass := range tt.want {
				if got[user] != pass {
					t.Errorf("table[%q] = %q, want %q", user, got[user], pass)
				}
			}
		})
	}
}

func validConfig() *Config {
	return &Config{
		Server: ServerConfig{Host: "0.0.0.0", Port: 5000},
		Security: SecurityConfig{
			JWTSecret:     "secret",
			TokenLifetime: 2 * time.Hour,
			Users:         []string{"admin:admin123"},
		},
		RateLimit: RateLimitConfig{Window: time.Minute},
		Cache:     CacheConfig{TTL: 5 * time.Minute},
	}
}

func TestValidate(t *testing.T) {
	if err := validConfig().Validate(); err != nil {
		t.Fatalf("Validate() error = %v, want nil", err)
	}

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"bad port", func(c *Config) { c.Server.Port = 0 }},
		{"port too large", func(c *Config) { c.Server.Port = 70000 }},
		{"missing secret", func(c *Config) { c.Security.JWTSecret = "" }},
		{"zero lifetime", func(c *Config) { c.Security.TokenLifetime = 0 }},
		{"no users", func(c *Config) { c.Security.Users = nil }},
		{"only malformed users", func(c *Config) { c.Security.Users = []string{"nopassword"} }},
		{"zero window", func(c *Config) { c.RateLimit.Window = 0 }},
		{"zero cache ttl", func(c *Config) { c.Cache.TTL = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("Validate() error = nil, want failure")
			}
		})
	}
}

func TestAddr(t *testing.T) {
	cfg := validConfig()
	if got := cfg.Addr(); got != "0.0.0.0:5000" {
		t.Errorf("Addr() = %q, want 0.0.0.0:5000", got)
	}
}

func TestEnvTransform(t *testing.T) {
	tests := []struct {
		env  string
		want string
	}{
		{"JWT_SECRET", "security.jwt_secret"},
		{"JWT_SECRET_KEY", "security.jwt_secret"},
		{"JWT_EXPIRATION", "security.token_lifetime"},
		{"AUTH_USERS", "security.users"},
		{"YOUTUBE_API_KEY", "youtube.api_key"},
		{"RAPIDAPI_KEY", "linkedin.api_key"},
		{"LINKEDIN_RAPIDAPI_HOST", "linkedin.host"},
		{"REDDIT_BASE_URL", "reddit.base_url"},
		{"REDIS_URL", "cache.redis_url"},
		{"RATE_LIMIT_DISABLED", "rate_limit.disabled"},
		{"PATH", ""},
		{"HOME", ""},
	}

	for _, tt := range tests {
		if got := envTransformFunc(tt.env); got != tt.want {
			t.Errorf("envTransformFunc(%q) = %q, want %q", tt.env, got, tt.want)
		}
	}
}

func TestDefaultsMatchLegacyService(t *testing.T) {
	cfg := defaultConfig()

	if cfg.Server.Port != 5000 {
		t.Errorf("default port = %d, want 5000", cfg.Server.Port)
	}
	if cfg.Security.TokenLifetime != 2*time.Hour {
		t.Errorf("default token lifetime = %v, want 2h", cfg.Security.TokenLifetime)
	}
	table := cfg.Security.CredentialTable()
	if table["admin"] != "admin123" || table["user"] != "password123" {
		t.Errorf("default credential table = %v, want legacy pairs", table)
	}
	if cfg.Cache.TTL != 5*time.Minute {
		t.Errorf("default cache TTL = %v, want 5m", cfg.Cache.TTL)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config invalid: %v", err)
	}
}
