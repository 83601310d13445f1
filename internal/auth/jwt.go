// Socialscope - Social Media Insights API Gateway
// Copyright 2026 Socialscope contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package auth provides credential issuance and verification: a JWT manager
// (HS256, time-limited), the fixed in-memory credential table, and the
// Bearer-token middleware protecting the insights routes.
//
// Verification is stateless: everything needed to verify a token is encoded
// in the token itself, and expiry is the only termination path (no
// revocation list).
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Verification failures. The middleware maps these onto the stable
// user-visible 401 messages.
var (
	// ErrTokenMissing means no token was supplied at all.
	ErrTokenMissing = errors.New("token missing")

	// ErrTokenExpired means the token's expiry has passed, even when the
	// signature is otherwise valid.
	ErrTokenExpired = errors.New("token expired")

	// ErrTokenMalformed covers every other verification failure: bad
	// signature, wrong structure, wrong signing algorithm.
	ErrTokenMalformed = errors.New("invalid token")
)

// Claims are the claims encoded into issued tokens.
type Claims struct {
	User string `json:"user"`
	jwt.RegisteredClaims
}

// Principal is the authenticated identity resolved from a valid token. It
// exists only for the duration of one request and is never persisted.
type Principal struct {
	Subject string
}

// JWTManager issues and verifies signed, time-limited credentials.
type JWTManager struct {
	secret   []byte
	lifetime time.Duration
	now      func() time.Time
}

// NewJWTManager creates a JWT manager with the given signing secret and token
// lifetime. The secret must be non-empty.
func NewJWTManager(secret string, lifetime time.Duration) (*JWTManager, error) {
	if secret == "" {
		return nil, fmt.Errorf("jwt secret is required but was empty")
	}
	return &JWTManager{
		secret:   []byte(secret),
		lifetime: lifetime,
		now:      time.Now,
	}, nil
}

// Issue creates a signed token for username, valid for the configured
// lifetime. Returns the token and its expiry.
func (m *JWTManager) Issue(username string) (string, time.Time, error) {
	now := m.now()
	expiresAt := now.Add(m.lifetime)

	claims := &Claims{
		User: username,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(m.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to sign token: %w", err)
	}

	return signed, expiresAt, nil
}

// Lifetime returns the configured token lifetime.
func (m *JWTManager) Lifetime() time.Duration {
	return m.lifetime
}

// Verify validates tokenString and resolves the Principal. Failures are one
// of ErrTokenMissing, ErrTokenExpired, or ErrTokenMalformed.
func (m *JWTManager) Verify(tokenString string) (*Principal, error) {
	if tokenString == "" {
		return nil, ErrTokenMissing
	}

	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return m.secret, nil
	}, jwt.WithTimeFunc(m.now))

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrTokenMalformed
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.User == "" {
		return nil, ErrTokenMalformed
	}

	return &Principal{Subject: claims.User}, nil
}
