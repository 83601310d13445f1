// Socialscope - Social Media Insights API Gateway
// Copyright 2026 Socialscope contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package ratelimit provides per-client, per-route admission control using
// fixed-window counting.
//
// Fixed windows are deliberately imprecise at boundaries: a burst straddling
// a window edge can admit up to 2x the limit across the two windows. That is
// the accepted tradeoff versus a sliding window; the admission counts inside
// any single window are exact, which is the property the per-route limits
// are specified in terms of.
package ratelimit

import (
	"sync"
	"time"
)

// Rule is one route's admission limit: at most Limit requests per Window.
type Rule struct {
	Limit  int
	Window time.Duration
}

// window is the counter for one (client, route) pair.
type window struct {
	start time.Time
	count int
}

// Admission is the shared fixed-window counter store. A single mutex guards
// the map; increment-and-compare happens entirely under the lock so
// concurrent bursts cannot undercount.
type Admission struct {
	mu      sync.Mutex
	windows map[string]*window
	now     func() time.Time
	stop    chan struct{}
}

// NewAdmission creates an admission store and starts its janitor goroutine,
// which drops windows that ended more than an hour ago.
func NewAdmission() *Admission {
	a := &Admission{
		windows: make(map[string]*window),
		now:     time.Now,
		stop:    make(chan struct{}),
	}
	go a.janitor(5 * time.Minute)
	return a
}

// Admit decides whether one more request from clientKey on routeKey fits in
// the current window under rule. A new or expired window starts at count 1
// and admits; otherwise the count is incremented and compared to the limit.
func (a *Admission) Admit(clientKey, routeKey string, rule Rule) bool {
	key := clientKey + "|" + routeKey
	now := a.now()

	a.mu.Lock()
	defer a.mu.Unlock()

	w, ok := a.windows[key]
	if !ok || now.Sub(w.start) >= rule.Window {
		a.windows[key] = &window{start: now, count: 1}
		return true
	}

	w.count++
	return w.count <= rule.Limit
}

// Close stops the janitor goroutine.
func (a *Admission) Close() {
	close(a.stop)
}

func (a *Admission) janitor(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			a.cleanup(time.Hour)
		case <-a.stop:
			return
		}
	}
}

// cleanup removes windows whose start is older than maxAge. Window durations
// in this service are at most a minute, so anything that old is long expired.
func (a *Admission) cleanup(maxAge time.Duration) {
	cutoff := a.now().Add(-maxAge)

	a.mu.Lock()
	defer a.mu.Unlock()

	for key, w := range a.windows {
		if w.start.Before(cutoff) {
			delete(a.windows, key)
		}
	}
}
