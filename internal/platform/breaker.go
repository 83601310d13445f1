// Socialscope - Social Media Insights API Gateway
// Copyright 2026 Socialscope contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package platform

import (
	"context"
	"errors"
	"fmt"
	"time"

	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/socialscope/socialscope/internal/logging"
	"github.com/socialscope/socialscope/internal/metrics"
	"github.com/socialscope/socialscope/internal/models"
)

// errUpstreamFailure marks results the breaker should count as failures.
// Only upstream_error results trip the breaker: not_found and rate_limited
// are answers about the resource or quota, not signs the provider is down,
// and configuration_missing never reaches the network.
var errUpstreamFailure = errors.New("upstream failure")

// Breaker wraps an Adapter with circuit breaker protection. When the circuit
// is open, Execute short-circuits with a normalized upstream failure instead
// of hitting a provider that is already known to be unhealthy.
//
// The breaker uses real time for its interval and timeout calculations. Tests
// exercise the wrapped adapter directly; the breaker decorator is covered by
// its own state-transition tests.
type Breaker struct {
	inner Adapter
	cb    *gobreaker.CircuitBreaker[models.PlatformResult]
}

// NewBreaker decorates adapter with a circuit breaker:
// opens after a 60% failure rate over at least 10 requests in a 1 minute
// window, waits 2 minutes before probing with up to 3 half-open requests.
func NewBreaker(adapter Adapter) *Breaker {
	name := adapter.Name()
	metrics.CircuitBreakerState.WithLabelValues(name).Set(0) // 0 = closed

	cb := gobreaker.NewCircuitBreaker[models.PlatformResult](gobreaker.Settings{
		Name:        name,
		MaxRequests: 3,
		Interval:    time.Minute,
		Timeout:     2 * time.Minute,

		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < 10 {
				return false
			}
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			if failureRatio >= 0.6 {
				logging.Warn().Str("platform", name).Float64("failure_rate", failureRatio*100).Msg("Opening circuit")
				return true
			}
			return false
		},

		OnStateChange: func(name string, from, to gobreaker.State) {
			fromStr, toStr := stateToString(from), stateToString(to)
			logging.Info().Str("platform", name).Str("from", fromStr).Str("to", toStr).Msg("Circuit breaker state transition")
			metrics.CircuitBreakerState.WithLabelValues(name).Set(stateToFloat(to))
			metrics.CircuitBreakerTransitions.WithLabelValues(name, fromStr, toStr).Inc()
		},
	})

	return &Breaker{inner: adapter, cb: cb}
}

func (b *Breaker) Name() string { return b.inner.Name() }

func (b *Breaker) Execute(ctx context.Context, op Operation) models.PlatformResult {
	result, err := b.cb.Execute(func() (models.PlatformResult, error) {
		res := b.inner.Execute(ctx, op)
		if !res.OK && res.Error.Kind == models.ErrorUpstream {
			return res, errUpstreamFailure
		}
		return res, nil
	})

	switch {
	case err == nil:
		return result
	case errors.Is(err, errUpstreamFailure):
		// The wrapped adapter already normalized the failure.
		return result
	case errors.Is(err, gobreaker.ErrOpenState), errors.Is(err, gobreaker.ErrTooManyRequests):
		logging.Warn().Str("platform", b.Name()).Msg("Circuit open, request rejected")
		return models.Failure(models.ErrorUpstream, fmt.Sprintf("%s temporarily unavailable", b.Name()))
	default:
		return models.Failure(models.ErrorUpstream, fmt.Sprintf("%s request failed", b.Name()))
	}
}

func stateToString(s gobreaker.State) string {
	switch s {
	case gobreaker.StateClosed:
		return "closed"
	case gobreaker.StateHalfOpen:
		return "half-open"
	case gobreaker.StateOpen:
		return "open"
	default:
		return "unknown"
	}
}

func stateToFloat(s gobreaker.State) float64 {
	switch s {
	case gobreaker.StateClosed:
		return 0
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	default:
		return -1
	}
}
