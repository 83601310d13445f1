// Socialscope - Social Media Insights API Gateway
// Copyright 2026 Socialscope contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package platform

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/socialscope/socialscope/internal/config"
	"github.com/socialscope/socialscope/internal/models"
)

// Instagram reads profile statistics and posts through two RapidAPI
// providers: a statistics host keyed by profile URL and a posts host keyed by
// username. A nonexistent profile is an answer (a payload with a message),
// not an error.
type Instagram struct {
	host         string
	statsHost    string
	apiKey       string
	timeout      time.Duration
	postsTimeout time.Duration
	client       *http.Client
}

// NewInstagram builds the Instagram adapter. client may be nil, in which case
// a default client is used; per-operation deadlines come from the
// configuration either way.
func NewInstagram(cfg config.InstagramConfig, client *http.Client) *Instagram {
	if client == nil {
		client = &http.Client{}
	}
	return &Instagram{
		host:         cfg.Host,
		statsHost:    cfg.StatsHost,
		apiKey:       cfg.APIKey,
		timeout:      cfg.Timeout,
		postsTimeout: cfg.PostsTimeout,
		client:       client,
	}
}

func (i *Instagram) Name() string { return "instagram" }

func (i *Instagram) Execute(ctx context.Context, op Operation) models.PlatformResult {
	if i.apiKey == "" {
		return models.Failure(models.ErrorConfigMissing, "RAPIDAPI_KEY not configured")
	}
	switch op.Name {
	case OpProfileCommunity:
		return i.profileCommunity(ctx, op.Args.ProfileURL)
	case OpProfilePosts:
		return i.profilePosts(ctx, op.Args.Username, op.Args.MaxID)
	default:
		return unsupported(i.Name(), op.Name)
	}
}

func (i *Instagram) rapidHeaders(host string) map[string]string {
	return map[string]string{
		"x-rapidapi-key":  i.apiKey,
		"x-rapidapi-host": host,
	}
}

func (i *Instagram) profileCommunity(ctx context.Context, profileURL string) models.PlatformResult {
	ctx, cancel := context.WithTimeout(ctx, i.timeout)
	defer cancel()

	endpoint := fmt.Sprintf("%s/community?url=%s", baseURL(i.statsHost), url.QueryEscape(profileURL))

	var data interface{}
	status, err := doJSON(ctx, i.client, upstreamRequest{
		Method:  http.MethodGet,
		URL:     endpoint,
		Headers: i.rapidHeaders(i.statsHost),
	}, &data)
	if err != nil {
		return failureFromTransport(i.Name(), err)
	}
	if status == http.StatusNotFound {
		return models.Success(models.InstagramCommunity{
			ProfileURL: profileURL,
			Message:    "Profile not found",
		})
	}
	if status != http.StatusOK {
		return failureFromStatus(i.Name(), status)
	}

	return models.Success(models.InstagramCommunity{ProfileURL: profileURL, Data: data})
}

func (i *Instagram) profilePosts(ctx context.Context, username, maxID string) models.PlatformResult {
	ctx, cancel := context.WithTimeout(ctx, i.postsTimeout)
	defer cancel()

	endpoint := fmt.Sprintf("%s/api/instagram/posts", baseURL(i.host))

	var data interface{}
	status, err := doJSON(ctx, i.client, upstreamRequest{
		Method:  http.MethodPost,
		URL:     endpoint,
		Headers: i.rapidHeaders(i.host),
		Body: map[string]string{
			"username": username,
			"maxId":    maxID,
		},
	}, &data)
	if err != nil {
		return failureFromTransport(i.Name(), err)
	}
	if status == http.StatusNotFound {
		return models.Success(models.InstagramPosts{
			Username: username,
			Message:  "User not found",
		})
	}
	if status != http.StatusOK {
		return failureFromStatus(i.Name(), status)
	}

	return models.Success(models.InstagramPosts{Username: username, Data: data})
}
