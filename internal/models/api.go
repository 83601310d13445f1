// Socialscope - Social Media Insights API Gateway
// Copyright 2026 Socialscope contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package models

// LoginRequest is the credential-issuance request body.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginResponse is returned on successful credential issuance. ExpiresIn is
// the token lifetime in seconds.
type LoginResponse struct {
	Token     string `json:"token"`
	User      string `json:"user"`
	ExpiresIn int64  `json:"expires_in"`
}

// ErrorResponse is the uniform gateway rejection body. Every 4xx/5xx carries
// at least the Error field with a stable, machine-checkable message.
type ErrorResponse struct {
	Error string `json:"error"`
}
