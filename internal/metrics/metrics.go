// Socialscope - Social Media Insights API Gateway
// Copyright 2026 Socialscope contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package metrics provides Prometheus instrumentation for the gateway:
// API request latency and throughput, upstream platform calls, cache
// efficiency, rate-limit rejections, and circuit breaker state.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// API metrics
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "socialscope_api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "path", "status"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "socialscope_api_request_duration_seconds",
			Help:    "Duration of API requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "socialscope_api_active_requests",
			Help: "Number of API requests currently being served",
		},
	)

	// Upstream platform metrics
	UpstreamRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "socialscope_upstream_requests_total",
			Help: "Total number of upstream platform calls by outcome",
		},
		[]string{"platform", "outcome"}, // outcome: success, not_found, rate_limited, upstream_error, configuration_missing
	)

	UpstreamRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "socialscope_upstream_request_duration_seconds",
			Help:    "Duration of upstream platform calls in seconds",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 20},
		},
		[]string{"platform"},
	)

	// Cache metrics
	CacheHits = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "socialscope_cache_hits_total",
			Help: "Total number of result cache hits",
		},
	)

	CacheMisses = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "socialscope_cache_misses_total",
			Help: "Total number of result cache misses",
		},
	)

	// Admission metrics
	RateLimitRejections = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "socialscope_rate_limit_rejections_total",
			Help: "Total number of requests rejected by rate limiting",
		},
		[]string{"route"},
	)

	// Circuit breaker state: 0 = closed, 1 = half-open, 2 = open
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "socialscope_circuit_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"platform"},
	)

	CircuitBreakerTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "socialscope_circuit_breaker_transitions_total",
			Help: "Total number of circuit breaker state transitions",
		},
		[]string{"platform", "from", "to"},
	)
)

// RecordAPIRequest records one completed API request.
func RecordAPIRequest(method, path, status string, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, path, status).Inc()
	APIRequestDuration.WithLabelValues(method, path).Observe(duration.Seconds())
}

// TrackActiveRequest adjusts the active request gauge.
func TrackActiveRequest(start bool) {
	if start {
		APIActiveRequests.Inc()
	} else {
		APIActiveRequests.Dec()
	}
}

// RecordUpstreamRequest records one upstream platform call.
func RecordUpstreamRequest(platform, outcome string, duration time.Duration) {
	UpstreamRequestsTotal.WithLabelValues(platform, outcome).Inc()
	UpstreamRequestDuration.WithLabelValues(platform).Observe(duration.Seconds())
}
