// Socialscope - Social Media Insights API Gateway
// Copyright 2026 Socialscope contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config provides layered configuration loading via Koanf v2.
// Precedence, lowest to highest: struct defaults, optional YAML config file,
// environment variables.
package config

import (
	"fmt"
	"strings"
	"time"
)

// Config is the root configuration for the gateway.
type Config struct {
	Server    ServerConfig    `koanf:"server"`
	Security  SecurityConfig  `koanf:"security"`
	RateLimit RateLimitConfig `koanf:"rate_limit"`
	Reddit    RedditConfig    `koanf:"reddit"`
	YouTube   YouTubeConfig   `koanf:"youtube"`
	LinkedIn  LinkedInConfig  `koanf:"linkedin"`
	Instagram InstagramConfig `koanf:"instagram"`
	Cache     CacheConfig     `koanf:"cache"`
	Logging   LoggingConfig   `koanf:"logging"`
}

// Addr returns the host:port the HTTP server listens on.
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

// ServerConfig holds HTTP listener settings.
type ServerConfig struct {
	Host            string        `koanf:"host"`
	Port            int           `koanf:"port"`
	ReadTimeout     time.Duration `koanf:"read_timeout"`
	WriteTimeout    time.Duration `koanf:"write_timeout"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
	CORSOrigins     []string      `koanf:"cors_origins"`
}

// SecurityConfig holds token signing and the fixed credential table.
type SecurityConfig struct {
	// JWTSecret signs issued tokens (HS256).
	JWTSecret string `koanf:"jwt_secret"`

	// TokenLifetime is how long issued tokens remain valid.
	TokenLifetime time.Duration `koanf:"token_lifetime"`

	// Users is the fixed credential table as "username:password" pairs.
	// There is no persistent user store; this is loaded once at startup.
	Users []string `koanf:"users"`
}

// CredentialTable parses the configured user list into a username->password map.
// Malformed entries (no colon) are skipped.
func (s *SecurityConfig) CredentialTable() map[string]string {
	table := make(map[string]string, len(s.Users))
	for _, pair := range s.Users {
		username, password, ok := strings.Cut(pair, ":")
		if !ok || username == "" {
			continue
		}
		table[username] = password
	}
	return table
}

// RateLimitConfig holds admission control settings. Per-route limits are
// fixed-window request counts over Window.
type RateLimitConfig struct {
	Disabled bool          `koanf:"disabled"`
	Window   time.Duration `koanf:"window"`

	// Default applies to protected routes without a dedicated limit.
	Default int `koanf:"default"`
	Login   int `koanf:"login"`
	Search  int `koanf:"search"`

	// GlobalRequests/GlobalWindow bound total per-IP traffic ahead of the
	// per-route admission (go-chi/httprate).
	GlobalRequests int           `koanf:"global_requests"`
	GlobalWindow   time.Duration `koanf:"global_window"`
}

// RedditConfig holds the forum platform settings. Reddit's public JSON
// listings need no API key, only a descriptive User-Agent.
type RedditConfig struct {
	BaseURL   string        `koanf:"base_url"`
	UserAgent string        `koanf:"user_agent"`
	Timeout   time.Duration `koanf:"timeout"`
}

// YouTubeConfig holds the video platform settings.
type YouTubeConfig struct {
	BaseURL string        `koanf:"base_url"`
	APIKey  string        `koanf:"api_key"`
	Timeout time.Duration `koanf:"timeout"`
}

// LinkedInConfig holds the professional-network settings (RapidAPI).
type LinkedInConfig struct {
	Host    string        `koanf:"host"`
	APIKey  string        `koanf:"api_key"`
	Timeout time.Duration `koanf:"timeout"`
}

// InstagramConfig holds the photo platform settings (RapidAPI).
type InstagramConfig struct {
	Host         string        `koanf:"host"`
	StatsHost    string        `koanf:"stats_host"`
	APIKey       string        `koanf:"api_key"`
	Timeout      time.Duration `koanf:"timeout"`
	PostsTimeout time.Duration `koanf:"posts_timeout"`
}

// CacheConfig holds the optional read-through result cache settings.
// When RedisURL is set the Redis backend is used; otherwise an in-memory
// TTL cache.
type CacheConfig struct {
	RedisURL string        `koanf:"redis_url"`
	TTL      time.Duration `koanf:"ttl"`
}

// LoggingConfig holds log output settings.
type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
}

// Validate checks invariants that would otherwise surface as confusing
// runtime failures.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be in [1, 65535], got %d", c.Server.Port)
	}
	if c.Security.JWTSecret == "" {
		return fmt.Errorf("security.jwt_secret is required")
	}
	if c.Security.TokenLifetime <= 0 {
		return fmt.Errorf("security.token_lifetime must be positive")
	}
	if len(c.Security.CredentialTable()) == 0 {
		return fmt.Errorf("security.users must contain at least one username:password pair")
	}
	if c.RateLimit.Window <= 0 {
		return fmt.Errorf("rate_limit.window must be positive")
	}
	if c.Cache.TTL <= 0 {
		return fmt.Errorf("cache.ttl must be positive")
	}
	return nil
}
