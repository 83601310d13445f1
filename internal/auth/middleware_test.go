// Socialscope - Social Media Insights API Gateway
// Copyright 2026 Socialscope contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package auth

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/socialscope/socialscope/internal/models"
)

func TestRequireToken(t *testing.T) {
	m := newTestManager(t)

	valid, _, err := m.Issue("admin")
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}

	expiredManager := newTestManager(t)
	expiredManager.now = func() time.Time { return time.Now().Add(-3 * time.Hour) }
	expired, _, err := expiredManager.Issue("admin")
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}

	tests := []struct {
		name        string
		header      string
		wantStatus  int
		wantMessage string
	}{
		{"missing token", "", http.StatusUnauthorized, "Token missing"},
		{"garbage token", "Bearer not-a-jwt", http.StatusUnauthorized, "Invalid token"},
		{"expired token", "Bearer " + expired, http.StatusUnauthorized, "Token expired"},
		{"valid token", "Bearer " + valid, http.StatusOK, ""},
		{"bare token without prefix", valid, http.StatusOK, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gotSubject string
			handler := RequireToken(m)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if p := PrincipalFromContext(r.Context()); p != nil {
					gotSubject = p.Subject
				}
				w.WriteHeader(http.StatusOK)
			}))

			req := httptest.NewRequest(http.MethodGet, "/api/insights/reddit", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			if rec.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
			if tt.wantStatus == http.StatusOK {
				if gotSubject != "admin" {
					t.Errorf("principal subject = %q, want %q", gotSubject, "admin")
				}
				return
			}

			var body models.ErrorResponse
			if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
				t.Fatalf("decoding error body: %v", err)
			}
			if body.Error != tt.wantMessage {
				t.Errorf("error message = %q, want %q", body.Error, tt.wantMessage)
			}
		})
	}
}
