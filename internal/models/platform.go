// Socialscope - Social Media Insights API Gateway
// Copyright 2026 Socialscope contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package models defines the shared request/response shapes of the gateway:
// the uniform PlatformResult envelope every adapter produces, the projected
// upstream payloads, and the auth API types.
package models

import "time"

// ErrorKind classifies a normalized upstream failure. Callers never see a
// platform-specific error shape; adapters map everything into one of these.
type ErrorKind string

const (
	// ErrorNotFound covers upstream 403/404: the resource does not exist or
	// is not accessible. Treated as "no such resource", not a hard failure.
	ErrorNotFound ErrorKind = "not_found"

	// ErrorRateLimited covers upstream 429.
	ErrorRateLimited ErrorKind = "rate_limited"

	// ErrorUpstream covers every other upstream failure: transport errors,
	// timeouts, unexpected status codes, undecodable bodies.
	ErrorUpstream ErrorKind = "upstream_error"

	// ErrorConfigMissing means the platform's API key or host is not
	// configured. Adapters short-circuit with this before any network call.
	ErrorConfigMissing ErrorKind = "configuration_missing"
)

// PlatformError is the normalized error carried inside a PlatformResult.
type PlatformError struct {
	Kind    ErrorKind `json:"kind"`
	Message string    `json:"message"`
}

// PlatformResult is the uniform envelope produced by every platform adapter.
//
// Invariant: OK implies Data is set and Error is nil; !OK implies Error is
// set with a non-empty Message. Adapters never return a raw transport error
// past their own boundary.
type PlatformResult struct {
	OK    bool           `json:"ok"`
	Data  interface{}    `json:"data,omitempty"`
	Error *PlatformError `json:"error,omitempty"`
}

// Success wraps data in a successful PlatformResult.
func Success(data interface{}) PlatformResult {
	return PlatformResult{OK: true, Data: data}
}

// Failure builds a failed PlatformResult with the given kind and message.
func Failure(kind ErrorKind, message string) PlatformResult {
	return PlatformResult{OK: false, Error: &PlatformError{Kind: kind, Message: message}}
}

// AggregateResult combines the per-platform results of one fan-out request.
// Partial failure in one platform never voids the others' entries. A key may
// map to a null entry when the caller did not request that platform but the
// response shape still carries it.
type AggregateResult struct {
	Platforms    map[string]*PlatformResult `json:"platforms"`
	AggregatedAt time.Time                  `json:"aggregated_at"`
}

// RedditPost is the projection of one forum post. Everything else in the
// upstream payload is discarded.
type RedditPost struct {
	Title    string  `json:"title"`
	Score    int     `json:"score"`
	Comments int     `json:"comments"`
	Author   string  `json:"author"`
	URL      string  `json:"url"`
	Created  float64 `json:"created"`
}

// RedditPosts is the payload for a community-posts lookup.
type RedditPosts struct {
	Subreddit  string       `json:"subreddit"`
	PostsCount int          `json:"posts_count"`
	Posts      []RedditPost `json:"posts"`
	Message    string       `json:"message,omitempty"`
}

// RedditCommunity is the projection of a subreddit's about data.
type RedditCommunity struct {
	Name        string  `json:"name"`
	Subscribers int64   `json:"subscribers"`
	Description string  `json:"description"`
	Created     float64 `json:"created"`
}

// YouTubeChannelStats is the projection of one channel's statistics.
type YouTubeChannelStats struct {
	ChannelID   string `json:"channel_id"`
	ChannelName string `json:"channel_name"`
	Description string `json:"description"`
	Thumbnail   string `json:"thumbnail"`
	Subscribers int64  `json:"subscribers"`
	TotalViews  int64  `json:"total_views"`
	TotalVideos int64  `json:"total_videos"`
	Created     string `json:"created"`
}

// YouTubeVideo is the projection of one video search hit.
type YouTubeVideo struct {
	VideoID     string `json:"video_id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Thumbnail   string `json:"thumbnail"`
	Channel     string `json:"channel"`
	PublishedAt string `json:"published_at"`
}

// YouTubeVideoSearch is the payload for a video text search.
type YouTubeVideoSearch struct {
	Query        string         `json:"query"`
	ResultsCount int            `json:"results_count"`
	Videos       []YouTubeVideo `json:"videos"`
}

// YouTubeChannelSearch is the payload for a channel-by-name search with
// sorted statistics.
type YouTubeChannelSearch struct {
	Query        string                `json:"query"`
	ResultsCount int                   `json:"results_count"`
	Sort         string                `json:"sort"`
	Order        string                `json:"order"`
	Channels     []YouTubeChannelStats `json:"channels"`
}

// LinkedInCompany is the payload for a company lookup. The upstream payload
// is passed through under Data; the gateway contract only promises the query
// echo plus whatever the professional-network API returned.
type LinkedInCompany struct {
	Query string      `json:"query"`
	Data  interface{} `json:"data"`
}

// InstagramCommunity is the payload for a profile community lookup.
type InstagramCommunity struct {
	ProfileURL string      `json:"profile_url"`
	Data       interface{} `json:"data"`
	Message    string      `json:"message,omitempty"`
}

// InstagramPosts is the payload for a posts-by-username lookup.
type InstagramPosts struct {
	Username string      `json:"username"`
	Data     interface{} `json:"data"`
	Message  string      `json:"message,omitempty"`
}
