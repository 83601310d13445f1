// Socialscope - Social Media Insights API Gateway
// Copyright 2026 Socialscope contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package validation provides the input predicates used by route handlers and
// struct validation via go-playground/validator v10.
//
// The predicates are pure and total: they accept any string and return a
// boolean, never panicking. Identifier checks are strict; numeric page-size
// clamping is deliberately NOT here; it is gateway policy (lenient on page
// size, strict on identifiers) and lives in the API layer.
package validation

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	identifierRe = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)
	communityRe  = regexp.MustCompile(`^[A-Za-z0-9_]+$`)
)

// ValidIdentifier reports whether s is a well-formed account identifier:
// 3-50 characters of [A-Za-z0-9_-].
func ValidIdentifier(s string) bool {
	if len(s) < 3 || len(s) > 50 {
		return false
	}
	return identifierRe.MatchString(s)
}

// ValidCommunityName reports whether s is a well-formed community (subreddit)
// name: 2-50 characters of [A-Za-z0-9_].
func ValidCommunityName(s string) bool {
	if len(s) < 2 || len(s) > 50 {
		return false
	}
	return communityRe.MatchString(s)
}

// ValidPlatformID reports whether s looks like a platform-issued identifier.
// Length >= 20 is a heuristic lower bound; YouTube channel IDs are 24 chars.
func ValidPlatformID(s string) bool {
	return len(s) >= 20
}

// singleton validator instance
var (
	validate     *validator.Validate
	validateOnce sync.Once
)

// GetValidator returns the singleton go-playground validator. Thread-safe;
// the instance caches struct metadata across calls.
func GetValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
	})
	return validate
}

// RequestError is a request validation failure with a user-facing message.
type RequestError struct {
	messages []string
}

// Error implements the error interface.
func (e *RequestError) Error() string {
	if len(e.messages) == 0 {
		return "validation failed"
	}
	return strings.Join(e.messages, "; ")
}

// ValidateStruct validates s using the singleton validator. Returns nil on
// success or a *RequestError with translated, user-facing messages.
func ValidateStruct(s interface{}) *RequestError {
	err := GetValidator().Struct(s)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return &RequestError{messages: []string{err.Error()}}
	}

	messages := make([]string, len(fieldErrs))
	for i, fe := range fieldErrs {
		messages[i] = translateError(fe)
	}
	return &RequestError{messages: messages}
}

// translateError converts a field error into a human-readable message.
func translateError(fe validator.FieldError) string {
	field := fe.Field()
	param := fe.Param()

	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, param)
	case "min":
		if fe.Kind().String() == "string" {
			return fmt.Sprintf("%s must be at least %s characters", field, param)
		}
		return fmt.Sprintf("%s must be at least %s", field, param)
	case "max":
		if fe.Kind().String() == "string" {
			return fmt.Sprintf("%s must be at most %s characters", field, param)
		}
		return fmt.Sprintf("%s must be at most %s", field, param)
	default:
		return fmt.Sprintf("%s failed %s validation", field, fe.Tag())
	}
}
