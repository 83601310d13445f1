// Socialscope - Social Media Insights API Gateway
// Copyright 2026 Socialscope contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package ratelimit

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/socialscope/socialscope/internal/models"
)

func newTestAdmission(t *testing.T) *Admission {
	t.Helper()
	a := NewAdmission()
	t.Cleanup(a.Close)
	return a
}

func TestAdmitExactlyLimitPerWindow(t *testing.T) {
	a := newTestAdmission(t)
	rule := Rule{Limit: 5, Window: time.Minute}

	for i := 0; i < 5; i++ {
		if !a.Admit("10.0.0.1", "reddit", rule) {
			t.Fatalf("request %d rejected, want admitted", i+1)
		}
	}
	if a.Admit("10.0.0.1", "reddit", rule) {
		t.Error("request 6 admitted, want rejected")
	}
	if a.Admit("10.0.0.1", "reddit", rule) {
		t.Error("request 7 admitted, want rejected")
	}
}

func TestAdmitWindowReset(t *testing.T) {
	a := newTestAdmission(t)
	rule := Rule{Limit: 2, Window: time.Minute}

	current := time.Now()
	a.now = func() time.Time { return current }

	if !a.Admit("10.0.0.1", "login", rule) || !a.Admit("10.0.0.1", "login", rule) {
		t.Fatal("initial requests rejected, want admitted")
	}
	if a.Admit("10.0.0.1", "login", rule) {
		t.Fatal("over-limit request admitted, want rejected")
	}

	// A whole window has passed; counting starts over.
	current = current.Add(time.Minute)
	if !a.Admit("10.0.0.1", "login", rule) {
		t.Error("request after window reset rejected, want admitted")
	}
}

func TestAdmitIsolatesClientsAndRoutes(t *testing.T) {
	a := newTestAdmission(t)
	rule := Rule{Limit: 1, Window: time.Minute}

	if !a.Admit("10.0.0.1", "reddit", rule) {
		t.Fatal("first request rejected")
	}
	if a.Admit("10.0.0.1", "reddit", rule) {
		t.Fatal("same client+route admitted over limit")
	}

	if !a.Admit("10.0.0.2", "reddit", rule) {
		t.Error("different client rejected, want admitted")
	}
	if !a.Admit("10.0.0.1", "youtube", rule) {
		t.Error("different route rejected, want admitted")
	}
}

func TestRouteMiddlewareRejectsWith429(t *testing.T) {
	a := newTestAdmission(t)
	limiter := NewLimiter(a, false)

	handler := limiter.Route("reddit", Rule{Limit: 1, Window: time.Minute})(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
		}))

	request := func() *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, "/api/insights/reddit", nil)
		req.RemoteAddr = "10.0.0.1:54321"
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		return rec
	}

	if rec := request(); rec.Code != http.StatusOK {
		t.Fatalf("first request status = %d, want 200", rec.Code)
	}

	rec := request()
	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("second request status = %d, want 429", rec.Code)
	}
	var body models.ErrorResponse
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decoding error body: %v", err)
	}
	if body.Error != "Rate limit exceeded" {
		t.Errorf("error message = %q, want %q", body.Error, "Rate limit exceeded")
	}
}

func TestRouteMiddlewareDisabled(t *testing.T) {
	a := newTestAdmission(t)
	limiter := NewLimiter(a, true)

	handler := limiter.Route("reddit", Rule{Limit: 1, Window: time.Minute})(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
		}))

	for i := 0; i < 10; i++ {
		req := httptest.NewRequest(http.MethodGet, "/api/insights/reddit", nil)
		req.RemoteAddr = "10.0.0.1:54321"
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Fatalf("request %d status = %d, want 200 with limiter disabled", i+1, rec.Code)
		}
	}
}
