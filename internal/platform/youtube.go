// Socialscope - Social Media Insights API Gateway
// Copyright 2026 Socialscope contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package platform

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"strings"

	"github.com/socialscope/socialscope/internal/config"
	"github.com/socialscope/socialscope/internal/models"
)

// YouTube talks to the Google Data API v3. All operations short-circuit with
// a configuration_missing failure when no API key is set.
type YouTube struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

// NewYouTube builds the YouTube adapter from configuration.
func NewYouTube(cfg config.YouTubeConfig) *YouTube {
	return &YouTube{
		baseURL: cfg.BaseURL,
		apiKey:  cfg.APIKey,
		client:  &http.Client{Timeout: cfg.Timeout},
	}
}

func (y *YouTube) Name() string { return "youtube" }

func (y *YouTube) Execute(ctx context.Context, op Operation) models.PlatformResult {
	if y.apiKey == "" {
		return models.Failure(models.ErrorConfigMissing, "YouTube API key not configured")
	}
	switch op.Name {
	case OpChannelStats:
		return y.channelStats(ctx, op.Args.ChannelID)
	case OpSearchVideos:
		return y.searchVideos(ctx, op.Args.Query, op.Args.MaxResults)
	case OpSearchChannels:
		return y.searchChannels(ctx, op.Args.Query, op.Args.MaxResults, op.Args.Sort, op.Args.Order)
	default:
		return unsupported(y.Name(), op.Name)
	}
}

// The Data API returns statistics counters as decimal strings. Missing or
// hidden counters project to zero.
type youtubeChannelList struct {
	Items []struct {
		ID      string `json:"id"`
		Snippet struct {
			Title       string `json:"title"`
			Description string `json:"description"`
			PublishedAt string `json:"publishedAt"`
			Thumbnails  struct {
				Default struct {
					URL string `json:"url"`
				} `json:"default"`
			} `json:"thumbnails"`
		} `json:"snippet"`
		Statistics struct {
			SubscriberCount string `json:"subscriberCount"`
			ViewCount       string `json:"viewCount"`
			VideoCount      string `json:"videoCount"`
		} `json:"statistics"`
	} `json:"items"`
}

type youtubeSearchList struct {
	Items []struct {
		ID struct {
			VideoID   string `json:"videoId"`
			ChannelID string `json:"channelId"`
		} `json:"id"`
		Snippet struct {
			Title        string `json:"title"`
			Description  string `json:"description"`
			ChannelTitle string `json:"channelTitle"`
			PublishedAt  string `json:"publishedAt"`
			Thumbnails   struct {
				Default struct {
					URL string `json:"url"`
				} `json:"default"`
			} `json:"thumbnails"`
		} `json:"snippet"`
	} `json:"items"`
}

func parseCount(s string) int64 {
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0
	}
	return n
}

func (y *YouTube) channelStats(ctx context.Context, channelID string) models.PlatformResult {
	endpoint := fmt.Sprintf("%s/channels?part=snippet,statistics&id=%s&key=%s",
		y.baseURL, url.QueryEscape(channelID), url.QueryEscape(y.apiKey))

	var list youtubeChannelList
	status, err := doJSON(ctx, y.client, upstreamRequest{Method: http.MethodGet, URL: endpoint}, &list)
	if err != nil {
		return failureFromTransport(y.Name(), err)
	}
	if status != http.StatusOK {
		return failureFromStatus(y.Name(), status)
	}
	if len(list.Items) == 0 {
		return models.Failure(models.ErrorNotFound, fmt.Sprintf("channel %q not found", channelID))
	}

	return models.Success(projectChannel(list, 0))
}

func projectChannel(list youtubeChannelList, i int) models.YouTubeChannelStats {
	item := list.Items[i]
	return models.YouTubeChannelStats{
		ChannelID:   item.ID,
		ChannelName: item.Snippet.Title,
		Description: item.Snippet.Description,
		Thumbnail:   item.Snippet.Thumbnails.Default.URL,
		Subscribers: parseCount(item.Statistics.SubscriberCount),
		TotalViews:  parseCount(item.Statistics.ViewCount),
		TotalVideos: parseCount(item.Statistics.VideoCount),
		Created:     item.Snippet.PublishedAt,
	}
}

func (y *YouTube) searchVideos(ctx context.Context, query string, maxResults int) models.PlatformResult {
	endpoint := fmt.Sprintf("%s/search?part=snippet&type=video&q=%s&maxResults=%d&key=%s",
		y.baseURL, url.QueryEscape(query), maxResults, url.QueryEscape(y.apiKey))

	var list youtubeSearchList
	status, err := doJSON(ctx, y.client, upstreamRequest{Method: http.MethodGet, URL: endpoint}, &list)
	if err != nil {
		return failureFromTransport(y.Name(), err)
	}
	if status != http.StatusOK {
		return failureFromStatus(y.Name(), status)
	}

	videos := make([]models.YouTubeVideo, 0, len(list.Items))
	for _, item := range list.Items {
		videos = append(videos, models.YouTubeVideo{
			VideoID:     item.ID.VideoID,
			Title:       item.Snippet.Title,
			Description: item.Snippet.Description,
			Thumbnail:   item.Snippet.Thumbnails.Default.URL,
			Channel:     item.Snippet.ChannelTitle,
			PublishedAt: item.Snippet.PublishedAt,
		})
	}

	return models.Success(models.YouTubeVideoSearch{
		Query:        query,
		ResultsCount: len(videos),
		Videos:       videos,
	})
}

// searchChannels resolves a channel name to stats in two phases: a text
// search for channel IDs, then a batch statistics lookup. Results are sorted
// locally because the search endpoint orders by relevance only.
func (y *YouTube) searchChannels(ctx context.Context, query string, maxResults int, sortBy, order string) models.PlatformResult {
	searchURL := fmt.Sprintf("%s/search?part=snippet&type=channel&q=%s&maxResults=%d&key=%s",
		y.baseURL, url.QueryEscape(query), maxResults, url.QueryEscape(y.apiKey))

	var search youtubeSearchList
	status, err := doJSON(ctx, y.client, upstreamRequest{Method: http.MethodGet, URL: searchURL}, &search)
	if err != nil {
		return failureFromTransport(y.Name(), err)
	}
	if status != http.StatusOK {
		return failureFromStatus(y.Name(), status)
	}

	ids := make([]string, 0, len(search.Items))
	for _, item := range search.Items {
		if item.ID.ChannelID != "" {
			ids = append(ids, item.ID.ChannelID)
		}
	}

	sortBy, order = normalizeChannelSort(sortBy, order)
	if len(ids) == 0 {
		return models.Success(models.YouTubeChannelSearch{
			Query: query, ResultsCount: 0, Sort: sortBy, Order: order,
			Channels: []models.YouTubeChannelStats{},
		})
	}

	statsURL := fmt.Sprintf("%s/channels?part=snippet,statistics&id=%s&key=%s",
		y.baseURL, url.QueryEscape(strings.Join(ids, ",")), url.QueryEscape(y.apiKey))

	var list youtubeChannelList
	status, err = doJSON(ctx, y.client, upstreamRequest{Method: http.MethodGet, URL: statsURL}, &list)
	if err != nil {
		return failureFromTransport(y.Name(), err)
	}
	if status != http.StatusOK {
		return failureFromStatus(y.Name(), status)
	}

	channels := make([]models.YouTubeChannelStats, 0, len(list.Items))
	for i := range list.Items {
		channels = append(channels, projectChannel(list, i))
	}
	sortChannels(channels, sortBy, order)

	return models.Success(models.YouTubeChannelSearch{
		Query:        query,
		ResultsCount: len(channels),
		Sort:         sortBy,
		Order:        order,
		Channels:     channels,
	})
}

// normalizeChannelSort applies the lenient parameter contract: missing and
// unknown sort keys fall back to name, and any order other than "asc" means
// descending.
func normalizeChannelSort(sortBy, order string) (string, string) {
	switch sortBy {
	case "subscribers", "total_views", "name":
	default:
		sortBy = "name"
	}
	if order != "asc" {
		order = "desc"
	}
	return sortBy, order
}

func sortChannels(channels []models.YouTubeChannelStats, sortBy, order string) {
	cmp := func(i, j int) int {
		switch sortBy {
		case "name":
			return strings.Compare(strings.ToLower(channels[i].ChannelName), strings.ToLower(channels[j].ChannelName))
		case "total_views":
			return compareInt64(channels[i].TotalViews, channels[j].TotalViews)
		default:
			return compareInt64(channels[i].Subscribers, channels[j].Subscribers)
		}
	}
	asc := order == "asc"
	sort.SliceStable(channels, func(i, j int) bool {
		if asc {
			return cmp(i, j) < 0
		}
		return cmp(i, j) > 0
	})
}

func compareInt64(a, b int64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}
