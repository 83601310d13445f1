// Socialscope - Social Media Insights API Gateway
// Copyright 2026 Socialscope contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package api

// channelSearchParams is the validated shape of a channel search. Sort and
// Order are deliberately not constrained here: unknown sort keys fall back to
// name and anything other than "asc" sorts descending, preserving the lenient
// legacy contract.
type channelSearchParams struct {
	Query string `validate:"required,min=2,max=100"`
	Sort  string
	Order string
}

// videoSearchParams is the validated shape of a video text search.
type videoSearchParams struct {
	Query string `validate:"required,min=2,max=100"`
}
