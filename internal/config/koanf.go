// Socialscope - Social Media Insights API Gateway
// Copyright 2026 Socialscope contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// DefaultConfigPaths lists the paths where config files are searched in order
// of priority. The first file found wins.
var DefaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
	"/etc/socialscope/config.yaml",
	"/etc/socialscope/config.yml",
}

// ConfigPathEnvVar overrides the config file path.
const ConfigPathEnvVar = "CONFIG_PATH"

// defaultConfig returns a Config with all default values. Defaults mirror the
// original service: a two-hour token lifetime, a fixed two-user credential
// table, and the public upstream hosts.
func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host:            "0.0.0.0",
			Port:            5000,
			ReadTimeout:     15 * time.Second,
			WriteTimeout:    60 * time.Second,
			ShutdownTimeout: 10 * time.Second,
			CORSOrigins:     []string{},
		},
		Security: SecurityConfig{
			JWTSecret:     "supersecretkey",
			TokenLifetime: 2 * time.Hour,
			Users: []string{
				"admin:admin123",
				"user:password123",
			},
		},
		RateLimit: RateLimitConfig{
			Disabled:       false,
			Window:         time.Minute,
			Default:        20,
			Login:          5,
			Search:         10,
			GlobalRequests: 100,
			GlobalWindow:   time.Minute,
		},
		Reddit: RedditConfig{
			BaseURL:   "https://www.reddit.com",
			UserAgent: "Socialscope/1.0",
			Timeout:   10 * time.Second,
		},
		YouTube: YouTubeConfig{
			BaseURL: "https://www.googleapis.com/youtube/v3",
			APIKey:  "",
			Timeout: 10 * time.Second,
		},
		LinkedIn: LinkedInConfig{
			Host:    "linkedin-api15.p.rapidapi.com",
			APIKey:  "",
			Timeout: 15 * time.Second,
		},
		Instagram: InstagramConfig{
			Host:         "instagram120.p.rapidapi.com",
			StatsHost:    "instagram-statistics-api.p.rapidapi.com",
			APIKey:       "",
			Timeout:      15 * time.Second,
			PostsTimeout: 20 * time.Second,
		},
		Cache: CacheConfig{
			RedisURL: "",
			TTL:      5 * time.Minute,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
	}
}

// sliceConfigPaths lists config paths that accept comma-separated strings
// from environment variables.
var sliceConfigPaths = []string{
	"server.cors_origins",
	"security.users",
}

// Load builds the configuration from defaults, an optional YAML file, and
// environment variables, then validates it.
func Load() (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	if configPath := findConfigFile(); configPath != "" {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
	}

	envProvider := env.Provider("", ".", envTransformFunc)
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	if err := processSliceFields(k); err != nil {
		return nil, fmt.Errorf("failed to process slice fields: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	// The RapidAPI key is shared between LinkedIn and Instagram unless an
	// Instagram-specific key is provided.
	if cfg.Instagram.APIKey == "" {
		cfg.Instagram.APIKey = cfg.LinkedIn.APIKey
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// findConfigFile returns the first existing config file path, or "".
func findConfigFile() string {
	if path := os.Getenv(ConfigPathEnvVar); path != "" {
		return path
	}
	for _, path := range DefaultConfigPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// envTransformFunc maps environment variable names to koanf config paths.
// Unrecognized variables are dropped so unrelated environment noise cannot
// override configuration.
//
// Examples:
//   - JWT_SECRET -> security.jwt_secret
//   - YOUTUBE_API_KEY -> youtube.api_key
//   - REDIS_URL -> cache.redis_url
func envTransformFunc(key string) string {
	key = strings.ToLower(key)

	envMappings := map[string]string{
		"server_host":      "server.host",
		"server_port":      "server.port",
		"shutdown_timeout": "server.shutdown_timeout",
		"cors_origins":     "server.cors_origins",

		// Legacy names from the original deployment are kept working.
		"jwt_secret_key": "security.jwt_secret",
		"jwt_secret":     "security.jwt_secret",
		"jwt_expiration": "security.token_lifetime",
		"token_lifetime": "security.token_lifetime",
		"auth_users":     "security.users",

		"rate_limit_disabled":        "rate_limit.disabled",
		"rate_limit_window":          "rate_limit.window",
		"rate_limit_default":         "rate_limit.default",
		"rate_limit_login":           "rate_limit.login",
		"rate_limit_search":          "rate_limit.search",
		"rate_limit_global_requests": "rate_limit.global_requests",
		"rate_limit_global_window":   "rate_limit.global_window",

		"reddit_base_url":   "reddit.base_url",
		"reddit_user_agent": "reddit.user_agent",

		"youtube_api_key":  "youtube.api_key",
		"youtube_base_url": "youtube.base_url",

		"rapidapi_key":           "linkedin.api_key",
		"linkedin_rapidapi_host": "linkedin.host",

		"instagram_rapidapi_key":  "instagram.api_key",
		"instagram_rapidapi_host": "instagram.host",
		"instagram_stats_host":    "instagram.stats_host",

		"redis_url": "cache.redis_url",
		"cache_ttl": "cache.ttl",

		"log_level":  "logging.level",
		"log_format": "logging.format",
	}

	if path, ok := envMappings[key]; ok {
		return path
	}

	// Everything else is ignored.
	return ""
}

// processSliceFields converts comma-separated env strings into string slices
// for the paths listed in sliceConfigPaths.
func processSliceFields(k *koanf.Koanf) error {
	for _, path := range sliceConfigPaths {
		val := k.Get(path)
		if val == nil {
			continue
		}

		// Already a slice (struct defaults or YAML).
		if _, ok := val.([]interface{}); ok {
			continue
		}
		if _, ok := val.([]string); ok {
			continue
		}

		strVal, ok := val.(string)
		if !ok || strVal == "" {
			continue
		}

		parts := strings.Split(strVal, ",")
		trimmed := make([]string, 0, len(parts))
		for _, p := range parts {
			p = strings.TrimSpace(p)
			if p != "" {
				trimmed = append(trimmed, p)
			}
		}
		if len(trimmed) > 0 {
			if err := k.Set(path, trimmed); err != nil {
				return fmt.Errorf("failed to set %s: %w", path, err)
			}
		}
	}
	return nil
}
