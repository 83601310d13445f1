// Socialscope - Social Media Insights API Gateway
// Copyright 2026 Socialscope contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package cache

import (
	"context"
	"strings"
	"testing"
	"time"
)

func TestMemoryGetSet(t *testing.T) {
	m := NewMemory(time.Minute)
	t.Cleanup(func() { _ = m.Close() })
	ctx := context.Background()

	if _, ok := m.Get(ctx, "missing"); ok {
		t.Error("Get() on empty cache reported a hit")
	}

	m.Set(ctx, "reddit:posts:technology:10", []byte(`{"posts_count":3}`))
	got, ok := m.Get(ctx, "reddit:posts:technology:10")
	if !ok {
		t.Fatal("Get() after Set() reported a miss")
	}
	if string(got) != `{"posts_count":3}` {
		t.Errorf("Get() = %s, want stored value", got)
	}
}

func TestMemoryExpiry(t *testing.T) {
	m := NewMemory(10 * time.Millisecond)
	t.Cleanup(func() { _ = m.Close() })
	ctx := context.Background()

	m.Set(ctx, "key", []byte("value"))
	time.Sleep(30 * time.Millisecond)

	if _, ok := m.Get(ctx, "key"); ok {
		t.Error("Get() after TTL reported a hit")
	}
}

func TestMemoryOverwrite(t *testing.T) {
	m := NewMemory(time.Minute)
	t.Cleanup(func() { _ = m.Close() })
	ctx := context.Background()

	m.Set(ctx, "key", []byte("first"))
	m.Set(ctx, "key", []byte("second"))

	got, ok := m.Get(ctx, "key")
	if !ok || string(got) != "second" {
		t.Errorf("Get() = %q, %v; want %q", got, ok, "second")
	}
}

func TestKey(t *testing.T) {
	if got := Key("reddit", "posts", "technology", "10"); got != "reddit:posts:technology:10" {
		t.Errorf("Key() = %q, want plain joined key", got)
	}

	long := strings.Repeat("x", 100)
	got := Key("instagram", "community", long)
	if strings.Contains(got, long) {
		t.Error("Key() should hash parts longer than 64 characters")
	}
	if got != Key("instagram", "community", strings.Repeat("x", 100)) {
		t.Error("Key() should be deterministic for equal inputs")
	}
}
