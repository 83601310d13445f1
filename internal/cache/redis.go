// Socialscope - Social Media Insights API Gateway
// Copyright 2026 Socialscope contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/socialscope/socialscope/internal/logging"
	"github.com/socialscope/socialscope/internal/metrics"
)

// Redis is a Store backed by a Redis server. Operations are best-effort:
// backend errors are logged and treated as misses.
type Redis struct {
	client *redis.Client
	ttl    time.Duration
	prefix string
}

// NewRedis connects to the Redis server at url (redis:// form) and verifies
// the connection with a ping.
func NewRedis(ctx context.Context, url string, ttl time.Duration) (*Redis, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("invalid redis url: %w", err)
	}

	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}

	return &Redis{
		client: client,
		ttl:    ttl,
		prefix: "socialscope:",
	}, nil
}

// Get implements Store.
func (r *Redis) Get(ctx context.Context, key string) ([]byte, bool) {
	data, err := r.client.Get(ctx, r.prefix+key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			logging.Warn().Err(err).Str("key", key).Msg("Redis get failed")
		}
		metrics.CacheMisses.Inc()
		return nil, false
	}

	metrics.CacheHits.Inc()
	return data, true
}

// Set implements Store.
func (r *Redis) Set(ctx context.Context, key string, value []byte) {
	if err := r.client.Set(ctx, r.prefix+key, value, r.ttl).Err(); err != nil {
		logging.Warn().Err(err).Str("key", key).Msg("Redis set failed")
	}
}

// Close implements Store.
func (r *Redis) Close() error {
	return r.client.Close()
}
