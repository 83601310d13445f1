// Socialscope - Social Media Insights API Gateway
// Copyright 2026 Socialscope contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package platform

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/socialscope/socialscope/internal/config"
	"github.com/socialscope/socialscope/internal/models"
)

// Reddit reads public subreddit listings. It needs no API key, only a
// descriptive User-Agent, which the forum API requires for unauthenticated
// clients.
type Reddit struct {
	baseURL   string
	userAgent string
	client    *http.Client
}

// NewReddit builds the Reddit adapter from configuration.
func NewReddit(cfg config.RedditConfig) *Reddit {
	return &Reddit{
		baseURL:   cfg.BaseURL,
		userAgent: cfg.UserAgent,
		client:    &http.Client{Timeout: cfg.Timeout},
	}
}

func (r *Reddit) Name() string { return "reddit" }

func (r *Reddit) Execute(ctx context.Context, op Operation) models.PlatformResult {
	switch op.Name {
	case OpCommunityPosts:
		return r.communityPosts(ctx, op.Args.Community, op.Args.Limit)
	case OpCommunityInfo:
		return r.communityInfo(ctx, op.Args.Community)
	default:
		return unsupported(r.Name(), op.Name)
	}
}

// redditListing mirrors the subset of the listing payload the projection
// needs.
type redditListing struct {
	Data struct {
		Children []struct {
			Data struct {
				Title       string  `json:"title"`
				Score       int     `json:"score"`
				NumComments int     `json:"num_comments"`
				Author      string  `json:"author"`
				URL         string  `json:"url"`
				CreatedUTC  float64 `json:"created_utc"`
			} `json:"data"`
		} `json:"children"`
	} `json:"data"`
}

type redditAbout struct {
	Data struct {
		DisplayName       string  `json:"display_name"`
		Subscribers       int64   `json:"subscribers"`
		PublicDescription string  `json:"public_description"`
		CreatedUTC        float64 `json:"created_utc"`
	} `json:"data"`
}

func (r *Reddit) communityPosts(ctx context.Context, community string, limit int) models.PlatformResult {
	endpoint := fmt.Sprintf("%s/r/%s/hot.json?limit=%d", r.baseURL, url.PathEscape(community), limit)

	var listing redditListing
	status, err := doJSON(ctx, r.client, upstreamRequest{
		Method:  http.MethodGet,
		URL:     endpoint,
		Headers: map[string]string{"User-Agent": r.userAgent},
	}, &listing)
	if err != nil {
		return failureFromTransport(r.Name(), err)
	}

	// Private and nonexistent subreddits both come back as 403 or 404.
	// That is an answer, not a failure: the caller gets an empty listing
	// with an explanatory message.
	if status == http.StatusForbidden || status == http.StatusNotFound {
		return models.Success(models.RedditPosts{
			Subreddit:  community,
			PostsCount: 0,
			Posts:      []models.RedditPost{},
			Message:    "No subreddit found or access forbidden",
		})
	}
	if status != http.StatusOK {
		return failureFromStatus(r.Name(), status)
	}

	posts := make([]models.RedditPost, 0, len(listing.Data.Children))
	for _, child := range listing.Data.Children {
		posts = append(posts, models.RedditPost{
			Title:    child.Data.Title,
			Score:    child.Data.Score,
			Comments: child.Data.NumComments,
			Author:   child.Data.Author,
			URL:      child.Data.URL,
			Created:  child.Data.CreatedUTC,
		})
	}

	payload := models.RedditPosts{
		Subreddit:  community,
		PostsCount: len(posts),
		Posts:      posts,
	}
	if len(posts) == 0 {
		payload.Message = "No posts found"
	}
	return models.Success(payload)
}

func (r *Reddit) communityInfo(ctx context.Context, community string) models.PlatformResult {
	endpoint := fmt.Sprintf("%s/r/%s/about.json", r.baseURL, url.PathEscape(community))

	var about redditAbout
	status, err := doJSON(ctx, r.client, upstreamRequest{
		Method:  http.MethodGet,
		URL:     endpoint,
		Headers: map[string]string{"User-Agent": r.userAgent},
	}, &about)
	if err != nil {
		return failureFromTransport(r.Name(), err)
	}
	if status == http.StatusForbidden || status == http.StatusNotFound {
		return models.Failure(models.ErrorNotFound, fmt.Sprintf("subreddit %q not found or access forbidden", community))
	}
	if status != http.StatusOK {
		return failureFromStatus(r.Name(), status)
	}

	return models.Success(models.RedditCommunity{
		Name:        about.Data.DisplayName,
		Subscribers: about.Data.Subscribers,
		Description: about.Data.PublicDescription,
		Created:     about.Data.CreatedUTC,
	})
}
