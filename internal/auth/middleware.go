// Socialscope - Social Media Insights API Gateway
// Copyright 2026 Socialscope contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package auth

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/goccy/go-json"

	"github.com/socialscope/socialscope/internal/logging"
	"github.com/socialscope/socialscope/internal/models"
)

type contextKey string

// principalContextKey stores the authenticated Principal in the request
// context.
const principalContextKey contextKey = "principal"

// PrincipalFromContext returns the Principal stored by RequireToken, or nil
// when the request was not authenticated.
func PrincipalFromContext(ctx context.Context) *Principal {
	p, _ := ctx.Value(principalContextKey).(*Principal)
	return p
}

// RequireToken returns middleware enforcing Bearer-token authentication.
// The 401 bodies use the stable messages clients match on: "Token missing",
// "Token expired", "Invalid token".
func RequireToken(manager *JWTManager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := bearerToken(r)

			principal, err := manager.Verify(token)
			if err != nil {
				respondUnauthorized(w, err)
				return
			}

			ctx := context.WithValue(r.Context(), principalContextKey, principal)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// bearerToken extracts the token from the Authorization header. A bare token
// without the Bearer prefix is accepted for compatibility with the original
// service.
func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if header == "" {
		return ""
	}
	if token, ok := strings.CutPrefix(header, "Bearer "); ok {
		return token
	}
	return header
}

func respondUnauthorized(w http.ResponseWriter, err error) {
	message := "Invalid token"
	switch {
	case errors.Is(err, ErrTokenMissing):
		message = "Token missing"
	case errors.Is(err, ErrTokenExpired):
		message = "Token expired"
	}

	logging.Debug().Str("reason", err.Error()).Msg("Request rejected: authentication failed")

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	if encodeErr := json.NewEncoder(w).Encode(models.ErrorResponse{Error: message}); encodeErr != nil {
		logging.Error().Err(encodeErr).Msg("Failed to write auth error response")
	}
}
