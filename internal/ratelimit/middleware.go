// Socialscope - Social Media Insights API Gateway
// Copyright 2026 Socialscope contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package ratelimit

import (
	"net"
	"net/http"

	"github.com/goccy/go-json"

	"github.com/socialscope/socialscope/internal/logging"
	"github.com/socialscope/socialscope/internal/metrics"
	"github.com/socialscope/socialscope/internal/models"
)

// Limiter builds per-route chi middleware over a shared Admission store.
type Limiter struct {
	admission *Admission
	disabled  bool
}

// NewLimiter creates a middleware factory. When disabled is true every
// returned middleware is a no-op (used in tests and development).
func NewLimiter(admission *Admission, disabled bool) *Limiter {
	return &Limiter{admission: admission, disabled: disabled}
}

// Route returns middleware admitting at most rule.Limit requests per client
// per rule.Window on the named route. Rejections are 429 with the stable
// body {"error": "Rate limit exceeded"}.
func (l *Limiter) Route(routeKey string, rule Rule) func(http.Handler) http.Handler {
	if l.disabled {
		return func(next http.Handler) http.Handler {
			return next
		}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			clientKey := clientIP(r)
			if !l.admission.Admit(clientKey, routeKey, rule) {
				metrics.RateLimitRejections.WithLabelValues(routeKey).Inc()
				logging.Warn().
					Str("route", routeKey).
					Str("client", clientKey).
					Int("limit", rule.Limit).
					Msg("Request rejected: rate limit exceeded")

				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusTooManyRequests)
				if err := json.NewEncoder(w).Encode(models.ErrorResponse{Error: "Rate limit exceeded"}); err != nil {
					logging.Error().Err(err).Msg("Failed to write rate limit response")
				}
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// clientIP derives the admission client key from the request's network
// origin. chi's RealIP middleware runs first, so RemoteAddr already reflects
// X-Forwarded-For when present.
func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
