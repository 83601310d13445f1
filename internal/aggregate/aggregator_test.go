// Socialscope - Social Media Insights API Gateway
// Copyright 2026 Socialscope contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package aggregate

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/socialscope/socialscope/internal/models"
	"github.com/socialscope/socialscope/internal/platform"
)

// fakeAdapter satisfies platform.Adapter with a canned response function.
type fakeAdapter struct {
	name string
	fn   func(ctx context.Context, op platform.Operation) models.PlatformResult
}

func (f *fakeAdapter) Name() string { return f.name }

func (f *fakeAdapter) Execute(ctx context.Context, op platform.Operation) models.PlatformResult {
	return f.fn(ctx, op)
}

func TestAggregatePartialFailure(t *testing.T) {
	reddit := &fakeAdapter{name: "reddit", fn: func(context.Context, platform.Operation) models.PlatformResult {
		return models.Success(models.RedditPosts{Subreddit: "technology", PostsCount: 3})
	}}
	youtube := &fakeAdapter{name: "youtube", fn: func(context.Context, platform.Operation) models.PlatformResult {
		return models.Failure(models.ErrorUpstream, "youtube request timed out")
	}}

	agg := New(platform.NewRegistry(reddit, youtube))

	result, err := agg.Aggregate(context.Background(), []Request{
		{Platform: "reddit", Operation: platform.Operation{Name: platform.OpCommunityPosts}},
		{Platform: "youtube", Operation: platform.Operation{Name: platform.OpChannelStats}},
	})
	if err != nil {
		t.Fatalf("Aggregate() error = %v, want nil on partial failure", err)
	}

	if len(result.Platforms) != 2 {
		t.Fatalf("Platforms has %d entries, want 2", len(result.Platforms))
	}
	if !result.Platforms["reddit"].OK {
		t.Errorf("reddit entry = %+v, want success", result.Platforms["reddit"])
	}
	yt := result.Platforms["youtube"]
	if yt.OK || yt.Error.Kind != models.ErrorUpstream {
		t.Errorf("youtube entry = %+v, want upstream_error", yt)
	}
	if result.AggregatedAt.IsZero() {
		t.Error("AggregatedAt not stamped")
	}
}

func TestAggregateRunsConcurrently(t *testing.T) {
	// Two branches each sleeping 50ms should join well under 100ms.
	slow := func(context.Context, platform.Operation) models.PlatformResult {
		time.Sleep(50 * time.Millisecond)
		return models.Success("ok")
	}
	agg := New(platform.NewRegistry(
		&fakeAdapter{name: "reddit", fn: slow},
		&fakeAdapter{name: "youtube", fn: slow},
	))

	start := time.Now()
	if _, err := agg.Aggregate(context.Background(), []Request{
		{Platform: "reddit"},
		{Platform: "youtube"},
	}); err != nil {
		t.Fatalf("Aggregate() error = %v", err)
	}
	if elapsed := time.Since(start); elapsed > 95*time.Millisecond {
		t.Errorf("Aggregate() took %v, want concurrent fan-out", elapsed)
	}
}

func TestAggregateStructuralFaults(t *testing.T) {
	agg := New(platform.NewRegistry(&fakeAdapter{name: "reddit", fn: func(context.Context, platform.Operation) models.PlatformResult {
		return models.Success("ok")
	}}))

	tests := []struct {
		name     string
		requests []Request
	}{
		{"no requests", nil},
		{"unknown platform", []Request{{Platform: "myspace"}}},
		{"duplicate platform", []Request{{Platform: "reddit"}, {Platform: "reddit"}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := agg.Aggregate(context.Background(), tt.requests)
			if !errors.Is(err, ErrAggregationFault) {
				t.Errorf("Aggregate() error = %v, want ErrAggregationFault", err)
			}
			if result != nil {
				t.Errorf("Aggregate() result = %+v, want nil (no partial result)", result)
			}
		})
	}
}
