// Socialscope - Social Media Insights API Gateway
// Copyright 2026 Socialscope contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package aggregate fans one insights request out to multiple platforms
// concurrently and merges the per-platform envelopes into a single result.
//
// Partial failure is the normal case, not an error: a platform that times
// out, is misconfigured, or returns an upstream failure contributes its
// normalized error envelope while the other platforms' data stands. Only a
// structural fault of the gateway itself, such as a request naming a platform
// with no registered adapter, aborts the whole aggregation.
package aggregate

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/socialscope/socialscope/internal/logging"
	"github.com/socialscope/socialscope/internal/models"
	"github.com/socialscope/socialscope/internal/platform"
)

// defaultTimeout bounds one whole fan-out. Individual adapters carry their
// own shorter per-call timeouts; this is the supervising deadline.
const defaultTimeout = 30 * time.Second

// Request names one platform operation to include in an aggregation.
type Request struct {
	Platform  string
	Operation platform.Operation
}

// ErrAggregationFault reports a structural fault: the aggregation could not
// be assembled at all. It is distinct from per-platform failures, which are
// folded into the result.
var ErrAggregationFault = errors.New("aggregation fault")

// Aggregator runs fan-out queries over the adapter registry.
type Aggregator struct {
	registry *platform.Registry
	timeout  time.Duration
}

// New builds an aggregator over registry with the default supervising timeout.
func New(registry *platform.Registry) *Aggregator {
	return &Aggregator{registry: registry, timeout: defaultTimeout}
}

// Aggregate executes all requests concurrently and returns the merged result.
// Every requested platform gets exactly one entry in the result, success or
// not. AggregatedAt is stamped after all branches have finished.
//
// An unknown platform in requests returns ErrAggregationFault and no partial
// result: the request itself was malformed, so serving a fragment would be
// misleading.
func (a *Aggregator) Aggregate(ctx context.Context, requests []Request) (*models.AggregateResult, error) {
	if len(requests) == 0 {
		return nil, fmt.Errorf("%w: no platforms requested", ErrAggregationFault)
	}

	// Validate the whole request before launching anything.
	seen := make(map[string]bool, len(requests))
	for _, req := range requests {
		if _, ok := a.registry.Get(req.Platform); !ok {
			return nil, fmt.Errorf("%w: unknown platform %q", ErrAggregationFault, req.Platform)
		}
		if seen[req.Platform] {
			return nil, fmt.Errorf("%w: duplicate platform %q", ErrAggregationFault, req.Platform)
		}
		seen[req.Platform] = true
	}

	ctx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	var (
		mu      sync.Mutex
		results = make(map[string]*models.PlatformResult, len(requests))
	)

	g, gctx := errgroup.WithContext(ctx)
	for _, req := range requests {
		g.Go(func() error {
			result, err := a.registry.Execute(gctx, req.Platform, req.Operation)
			if err != nil {
				// Registry membership was checked above; reaching this
				// means the registry changed underneath us.
				return fmt.Errorf("%w: %v", ErrAggregationFault, err)
			}
			mu.Lock()
			results[req.Platform] = &result
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		logging.Err(err).Msg("Aggregation aborted")
		return nil, err
	}

	return &models.AggregateResult{
		Platforms:    results,
		AggregatedAt: time.Now().UTC(),
	}, nil
}
