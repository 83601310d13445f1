// Socialscope - Social Media Insights API Gateway
// Copyright 2026 Socialscope contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package api implements the HTTP surface of the gateway: credential
// issuance, the per-platform insights routes, trending, and the concurrent
// aggregation route.
//
// Status code policy: 4xx and 429 are gateway rejections (bad input, bad
// credentials, admission denied). A platform adapter failure is NOT a gateway
// rejection; it is reported as 200 with the normalized error body. 500 is
// reserved for structural faults of the gateway itself.
package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/goccy/go-json"

	"github.com/socialscope/socialscope/internal/aggregate"
	"github.com/socialscope/socialscope/internal/auth"
	"github.com/socialscope/socialscope/internal/cache"
	"github.com/socialscope/socialscope/internal/logging"
	"github.com/socialscope/socialscope/internal/models"
	"github.com/socialscope/socialscope/internal/platform"
	"github.com/socialscope/socialscope/internal/security"
	"github.com/socialscope/socialscope/internal/validation"
)

// Handlers carries the gateway's route dependencies.
type Handlers struct {
	credentials *auth.CredentialTable
	tokens      *auth.JWTManager
	registry    *platform.Registry
	aggregator  *aggregate.Aggregator
	cache       cache.Store
}

// NewHandlers wires the route handlers. All dependencies are required.
func NewHandlers(credentials *auth.CredentialTable, tokens *auth.JWTManager, registry *platform.Registry, aggregator *aggregate.Aggregator, store cache.Store) *Handlers {
	return &Handlers{
		credentials: credentials,
		tokens:      tokens,
		registry:    registry,
		aggregator:  aggregator,
		cache:       store,
	}
}

// failureBody is the response body for a normalized platform failure. The
// envelope's message lands in the uniform "error" field; the kind lets
// clients distinguish a missing resource from a degraded provider.
type failureBody struct {
	Error string           `json:"error"`
	Kind  models.ErrorKind `json:"kind"`
}

// dispatch runs one platform operation and writes the response. Successful
// payloads are cached under cacheKey when it is non-empty; failures are never
// cached.
func (h *Handlers) dispatch(w http.ResponseWriter, r *http.Request, platformName string, op platform.Operation, cacheKey string) {
	ctx := r.Context()

	if cacheKey != "" {
		if body, ok := h.cache.Get(ctx, cacheKey); ok {
			respondRaw(w, http.StatusOK, body)
			return
		}
	}

	result, err := h.registry.Execute(ctx, platformName, op)
	if err != nil {
		logging.Err(err).Str("platform", platformName).Msg("Dispatch failed")
		respondError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	if !result.OK {
		respondJSON(w, http.StatusOK, failureBody{Error: result.Error.Message, Kind: result.Error.Kind})
		return
	}

	body, err := json.Marshal(result.Data)
	if err != nil {
		logging.Err(err).Str("platform", platformName).Msg("Failed to encode payload")
		respondError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	if cacheKey != "" {
		h.cache.Set(ctx, cacheKey, body)
	}
	respondRaw(w, http.StatusOK, body)
}

// Home returns the service banner with the endpoint map.
func (h *Handlers) Home(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"service": "Socialscope Insights API",
		"version": "1.0",
		"endpoints": map[string]string{
			"login":            "POST /api/auth/login",
			"reddit":           "GET /api/insights/reddit?subreddit=&limit=",
			"reddit_community": "GET /api/insights/reddit/community?subreddit=",
			"youtube":          "GET /api/insights/youtube?channel_id=",
			"youtube_channels": "GET /api/insights/youtube/channels?q=&max_results=&sort=&order=",
			"youtube_search":   "GET /api/insights/youtube/search?q=&max_results=",
			"linkedin_company": "GET /api/insights/linkedin/company?name=",
			"instagram":        "GET /api/insights/instagram/community?url=",
			"instagram_posts":  "GET /api/insights/instagram/posts?username=&max_id=",
			"trending":         "GET /api/trending?platform=",
			"aggregated":       "GET /api/insights/all?subreddit=&channel_id=",
			"health":           "GET /health",
			"metrics":          "GET /metrics",
		},
	})
}

// Health reports liveness.
func (h *Handlers) Health(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

// Login authenticates against the fixed credential table and issues a token.
func (h *Handlers) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Username == "" || req.Password == "" {
		respondError(w, http.StatusBadRequest, "Missing username or password")
		return
	}

	if !h.credentials.Authenticate(req.Username, req.Password) {
		logging.Warn().Str("username", req.Username).Msg("Login rejected: invalid credentials")
		respondError(w, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	token, _, err := h.tokens.Issue(req.Username)
	if err != nil {
		logging.Err(err).Msg("Token issuance failed")
		respondError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	respondJSON(w, http.StatusOK, models.LoginResponse{
		Token:     token,
		User:      req.Username,
		ExpiresIn: int64(h.tokens.Lifetime().Seconds()),
	})
}

// RedditInsights serves hot posts for a subreddit. Subreddit defaults to
// "technology"; limit outside [1,100] falls back to 10.
func (h *Handlers) RedditInsights(w http.ResponseWriter, r *http.Request) {
	subreddit := r.URL.Query().Get("subreddit")
	if subreddit == "" {
		subreddit = "technology"
	}
	if !validation.ValidCommunityName(subreddit) {
		respondError(w, http.StatusBadRequest, "Invalid subreddit name")
		return
	}
	limit := clampOrDefault(queryInt(r, "limit", 10), 1, 100, 10)

	h.dispatch(w, r, "reddit", platform.Operation{
		Name: platform.OpCommunityPosts,
		Args: platform.Args{Community: subreddit, Limit: limit},
	}, cache.Key("reddit", "posts", subreddit, strconv.Itoa(limit)))
}

// RedditCommunity serves the about projection for a subreddit.
func (h *Handlers) RedditCommunity(w http.ResponseWriter, r *http.Request) {
	subreddit := r.URL.Query().Get("subreddit")
	if !validation.ValidCommunityName(subreddit) {
		respondError(w, http.StatusBadRequest, "Invalid subreddit name")
		return
	}

	h.dispatch(w, r, "reddit", platform.Operation{
		Name: platform.OpCommunityInfo,
		Args: platform.Args{Community: subreddit},
	}, cache.Key("reddit", "about", subreddit))
}

// YouTubeStats serves statistics for one channel by ID.
func (h *Handlers) YouTubeStats(w http.ResponseWriter, r *http.Request) {
	channelID := r.URL.Query().Get("channel_id")
	if channelID == "" {
		respondError(w, http.StatusBadRequest, "channel_id parameter required")
		return
	}
	if !validation.ValidPlatformID(channelID) {
		respondError(w, http.StatusBadRequest, "Invalid channel ID format")
		return
	}

	h.dispatch(w, r, "youtube", platform.Operation{
		Name: platform.OpChannelStats,
		Args: platform.Args{ChannelID: channelID},
	}, cache.Key("youtube", "channel", channelID))
}

// YouTubeSearch serves a video text search. max_results outside [1,50] falls
// back to 5.
func (h *Handlers) YouTubeSearch(w http.ResponseWriter, r *http.Request) {
	params := videoSearchParams{Query: r.URL.Query().Get("q")}
	if err := validation.ValidateStruct(params); err != nil {
		respondError(w, http.StatusBadRequest, "Search query too short")
		return
	}
	maxResults := clampOrDefault(queryInt(r, "max_results", 5), 1, 50, 5)

	h.dispatch(w, r, "youtube", platform.Operation{
		Name: platform.OpSearchVideos,
		Args: platform.Args{Query: params.Query, MaxResults: maxResults},
	}, cache.Key("youtube", "search", params.Query, strconv.Itoa(maxResults)))
}

// YouTubeChannels serves a channel-by-name search with sorted statistics.
// max_results outside [1,50] falls back to 10.
func (h *Handlers) YouTubeChannels(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	params := channelSearchParams{
		Query: q.Get("q"),
		Sort:  q.Get("sort"),
		Order: q.Get("order"),
	}
	if params.Query == "" || len(params.Query) < 2 {
		respondError(w, http.StatusBadRequest, "Search query too short")
		return
	}
	if err := validation.ValidateStruct(params); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	maxResults := clampOrDefault(queryInt(r, "max_results", 10), 1, 50, 10)

	h.dispatch(w, r, "youtube", platform.Operation{
		Name: platform.OpSearchChannels,
		Args: platform.Args{
			Query:      params.Query,
			MaxResults: maxResults,
			Sort:       params.Sort,
			Order:      params.Order,
		},
	}, cache.Key("youtube", "channels", params.Query, strconv.Itoa(maxResults), params.Sort, params.Order))
}

// LinkedInCompany serves a company lookup by name.
func (h *Handlers) LinkedInCompany(w http.ResponseWriter, r *http.Request) {
	name := r.URL.Query().Get("name")
	if name == "" {
		name = r.URL.Query().Get("linkedinName")
	}
	if name == "" {
		respondError(w, http.StatusBadRequest, "Missing required parameter: name")
		return
	}

	h.dispatch(w, r, "linkedin", platform.Operation{
		Name: platform.OpCompanyByName,
		Args: platform.Args{CompanyName: name},
	}, cache.Key("linkedin", "company", name))
}

// InstagramCommunity serves profile statistics for a profile URL. The URL is
// client-supplied and forwarded upstream, so it is SSRF-checked first.
func (h *Handlers) InstagramCommunity(w http.ResponseWriter, r *http.Request) {
	profileURL := r.URL.Query().Get("url")
	if profileURL == "" {
		respondError(w, http.StatusBadRequest, "Missing required parameter: url")
		return
	}
	if err := security.ValidateURL(profileURL); err != nil {
		logging.Warn().Err(err).Msg("Rejected profile URL")
		respondError(w, http.StatusBadRequest, "Invalid profile URL")
		return
	}

	h.dispatch(w, r, "instagram", platform.Operation{
		Name: platform.OpProfileCommunity,
		Args: platform.Args{ProfileURL: profileURL},
	}, cache.Key("instagram", "community", profileURL))
}

// InstagramPosts serves recent posts for a username.
func (h *Handlers) InstagramPosts(w http.ResponseWriter, r *http.Request) {
	username := r.URL.Query().Get("username")
	if !validation.ValidIdentifier(username) {
		respondError(w, http.StatusBadRequest, "Invalid username")
		return
	}
	maxID := r.URL.Query().Get("max_id")

	h.dispatch(w, r, "instagram", platform.Operation{
		Name: platform.OpProfilePosts,
		Args: platform.Args{Username: username, MaxID: maxID},
	}, cache.Key("instagram", "posts", username, maxID))
}

// Trending serves a fixed trending snapshot per platform: hot posts across
// all subreddits, or a "trending" video search.
func (h *Handlers) Trending(w http.ResponseWriter, r *http.Request) {
	platformName := r.URL.Query().Get("platform")
	if platformName == "" {
		platformName = "reddit"
	}

	switch platformName {
	case "reddit":
		h.dispatch(w, r, "reddit", platform.Operation{
			Name: platform.OpCommunityPosts,
			Args: platform.Args{Community: "all", Limit: 5},
		}, cache.Key("trending", "reddit"))
	case "youtube":
		h.dispatch(w, r, "youtube", platform.Operation{
			Name: platform.OpSearchVideos,
			Args: platform.Args{Query: "trending", MaxResults: 5},
		}, cache.Key("trending", "youtube"))
	default:
		respondError(w, http.StatusBadRequest, "Unsupported platform")
	}
}

// AggregateInsights fans out to Reddit and, when channel_id is present,
// YouTube, and returns the merged per-platform envelopes. Partial upstream
// failure is still a 200; only a structural fault is a 500.
func (h *Handlers) AggregateInsights(w http.ResponseWriter, r *http.Request) {
	subreddit := r.URL.Query().Get("subreddit")
	if subreddit == "" {
		subreddit = "technology"
	}
	if !validation.ValidCommunityName(subreddit) {
		respondError(w, http.StatusBadRequest, "Invalid subreddit name")
		return
	}

	requests := []aggregate.Request{{
		Platform: "reddit",
		Operation: platform.Operation{
			Name: platform.OpCommunityPosts,
			Args: platform.Args{Community: subreddit, Limit: 10},
		},
	}}

	channelID := r.URL.Query().Get("channel_id")
	if channelID != "" {
		if !validation.ValidPlatformID(channelID) {
			respondError(w, http.StatusBadRequest, "Invalid channel ID format")
			return
		}
		requests = append(requests, aggregate.Request{
			Platform: "youtube",
			Operation: platform.Operation{
				Name: platform.OpChannelStats,
				Args: platform.Args{ChannelID: channelID},
			},
		})
	}

	result, err := h.aggregator.Aggregate(r.Context(), requests)
	if err != nil {
		if errors.Is(err, aggregate.ErrAggregationFault) {
			logging.Err(err).Msg("Aggregation fault")
		}
		respondError(w, http.StatusInternalServerError, "Failed to aggregate insights")
		return
	}
	// The response shape always carries a youtube key so callers can key on
	// it; it is null when no channel was requested.
	if channelID == "" {
		result.Platforms["youtube"] = nil
	}
	respondJSON(w, http.StatusOK, result)
}
