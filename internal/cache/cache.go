// Socialscope - Social Media Insights API Gateway
// Copyright 2026 Socialscope contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package cache provides the optional read-through result cache consulted by
// the insight routes before calling upstream.
//
// Two backends implement Store: an in-memory TTL cache (default) and Redis
// (when cache.redis_url is configured). Values are JSON-encoded bytes; both
// backends are best-effort: a cache failure never fails a request, and two
// concurrent misses populating the same key simply overwrite each other.
package cache

import (
	"context"
	"crypto/sha256"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/socialscope/socialscope/internal/metrics"
)

// Store is the read-through cache capability.
type Store interface {
	// Get returns the cached bytes for key and whether they were present.
	Get(ctx context.Context, key string) ([]byte, bool)

	// Set stores value under key with the backend's configured TTL.
	Set(ctx context.Context, key string, value []byte)

	// Close releases backend resources.
	Close() error
}

// Key builds a cache key from namespace parts. Long parts are hashed so
// caller-supplied strings (queries, URLs) cannot produce unbounded keys.
func Key(parts ...string) string {
	for i, p := range parts {
		if len(p) > 64 {
			parts[i] = fmt.Sprintf("%x", sha256.Sum256([]byte(p)))
		}
	}
	return strings.Join(parts, ":")
}

// entry is one in-memory cached value.
type entry struct {
	data      []byte
	expiresAt time.Time
}

// Memory is a thread-safe in-memory TTL cache.
type Memory struct {
	mu      sync.RWMutex
	entries map[string]entry
	ttl     time.Duration
	stop    chan struct{}
}

// NewMemory creates an in-memory cache with the given TTL and starts its
// cleanup goroutine.
func NewMemory(ttl time.Duration) *Memory {
	m := &Memory{
		entries: make(map[string]entry),
		ttl:     ttl,
		stop:    make(chan struct{}),
	}
	go m.cleanupLoop(5 * time.Minute)
	return m
}

// Get implements Store.
func (m *Memory) Get(_ context.Context, key string) ([]byte, bool) {
	m.mu.RLock()
	e, ok := m.entries[key]
	m.mu.RUnlock()

	if !ok || time.Now().After(e.expiresAt) {
		metrics.CacheMisses.Inc()
		return nil, false
	}

	metrics.CacheHits.Inc()
	return e.data, true
}

// Set implements Store.
func (m *Memory) Set(_ context.Context, key string, value []byte) {
	m.mu.Lock()
	m.entries[key] = entry{data: value, expiresAt: time.Now().Add(m.ttl)}
	m.mu.Unlock()
}

// Close implements Store.
func (m *Memory) Close() error {
	close(m.stop)
	return nil
}

func (m *Memory) cleanupLoop(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			m.evictExpired()
		case <-m.stop:
			return
		}
	}
}

func (m *Memory) evictExpired() {
	now := time.Now()

	m.mu.Lock()
	defer m.mu.Unlock()

	for key, e := range m.entries {
		if now.After(e.expiresAt) {
			delete(m.entries, key)
		}
	}
}
