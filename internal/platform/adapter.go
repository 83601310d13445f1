// Socialscope - Social Media Insights API Gateway
// Copyright 2026 Socialscope contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package platform implements the four upstream platform adapters behind one
// capability interface.
//
// Every adapter operation produces a models.PlatformResult: successes carry a
// projection of the upstream payload (never the raw payload, except where the
// route contract is an explicit pass-through), and every failure path (bad
// configuration, transport errors, timeouts, upstream status codes) is
// converted into a normalized error kind before it leaves the adapter. No
// retries happen at this layer; a transient upstream failure surfaces once,
// immediately.
package platform

import (
	"context"
	"fmt"
	"time"

	"github.com/socialscope/socialscope/internal/metrics"
	"github.com/socialscope/socialscope/internal/models"
)

// Operation names understood by the adapters.
const (
	OpCommunityPosts   = "community_posts"
	OpCommunityInfo    = "community_info"
	OpChannelStats     = "channel_stats"
	OpSearchVideos     = "search_videos"
	OpSearchChannels   = "search_channels"
	OpCompanyByName    = "company_by_name"
	OpProfileCommunity = "profile_community"
	OpProfilePosts     = "profile_posts"
)

// Args carries the validated, normalized parameters for one upstream call.
// The gateway constructs it after validation; it is consumed once and not
// retained.
type Args struct {
	Community   string
	Limit       int
	ChannelID   string
	Query       string
	MaxResults  int
	Sort        string
	Order       string
	CompanyName string
	ProfileURL  string
	Username    string
	MaxID       string
}

// Operation is one platform query: an operation name plus its arguments.
type Operation struct {
	Name string
	Args Args
}

// Adapter is the uniform capability every platform integration satisfies.
// Callers never branch on a platform-specific shape; Execute always returns
// a PlatformResult, never an error.
type Adapter interface {
	// Name returns the platform name used in responses and metrics.
	Name() string

	// Execute runs one operation against the upstream API.
	Execute(ctx context.Context, op Operation) models.PlatformResult
}

// ErrUnknownPlatform is returned by the registry for a platform with no
// registered adapter. It is a structural fault of the gateway, not an
// upstream failure, and is never folded into a PlatformResult.
var ErrUnknownPlatform = fmt.Errorf("unknown platform")

// Registry holds the registered adapters and centralizes per-call metrics.
type Registry struct {
	adapters map[string]Adapter
}

// NewRegistry builds a registry over the given adapters, keyed by Name().
func NewRegistry(adapters ...Adapter) *Registry {
	m := make(map[string]Adapter, len(adapters))
	for _, a := range adapters {
		m[a.Name()] = a
	}
	return &Registry{adapters: m}
}

// Get returns the adapter for platform.
func (r *Registry) Get(platform string) (Adapter, bool) {
	a, ok := r.adapters[platform]
	return a, ok
}

// Execute dispatches op to the named platform's adapter, recording upstream
// metrics. The returned error is only ever ErrUnknownPlatform.
func (r *Registry) Execute(ctx context.Context, platform string, op Operation) (models.PlatformResult, error) {
	adapter, ok := r.adapters[platform]
	if !ok {
		return models.PlatformResult{}, fmt.Errorf("%w: %s", ErrUnknownPlatform, platform)
	}

	start := time.Now()
	result := adapter.Execute(ctx, op)
	metrics.RecordUpstreamRequest(platform, outcome(result), time.Since(start))

	return result, nil
}

func outcome(result models.PlatformResult) string {
	if result.OK {
		return "success"
	}
	return string(result.Error.Kind)
}

// unsupported is the result for an operation name an adapter does not
// implement. This indicates a gateway wiring bug, not an upstream fault, but
// it still honors the envelope invariant.
func unsupported(platform, op string) models.PlatformResult {
	return models.Failure(models.ErrorUpstream, fmt.Sprintf("operation %q is not supported by %s", op, platform))
}
