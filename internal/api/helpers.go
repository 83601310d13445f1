// Socialscope - Social Media Insights API Gateway
// Copyright 2026 Socialscope contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package api

import (
	"net/http"
	"strconv"

	"github.com/goccy/go-json"

	"github.com/socialscope/socialscope/internal/logging"
	"github.com/socialscope/socialscope/internal/models"
)

// respondJSON writes v as a JSON response with the given status.
func respondJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logging.Err(err).Msg("Failed to write response")
	}
}

// respondRaw writes pre-encoded JSON bytes. Used on cache hits, where the
// payload was stored already encoded.
func respondRaw(w http.ResponseWriter, status int, body []byte) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := w.Write(body); err != nil {
		logging.Err(err).Msg("Failed to write response")
	}
}

// respondError writes a gateway rejection with the uniform error body.
func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, models.ErrorResponse{Error: message})
}

// queryInt reads an integer query parameter, returning def when the
// parameter is absent or not an integer.
func queryInt(r *http.Request, name string, def int) int {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}
	return n
}

// clampOrDefault applies the lenient page-size policy: values outside
// [lo, hi] silently fall back to def rather than rejecting the request.
func clampOrDefault(n, lo, hi, def int) int {
	if n < lo || n > hi {
		return def
	}
	return n
}
