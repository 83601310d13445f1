// Socialscope - Social Media Insights API Gateway
// Copyright 2026 Socialscope contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package platform

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/socialscope/socialscope/internal/config"
	"github.com/socialscope/socialscope/internal/models"
)

func newTestYouTube(baseURL, apiKey string) *YouTube {
	return NewYouTube(config.YouTubeConfig{
		BaseURL: baseURL,
		APIKey:  apiKey,
		Timeout: 2 * time.Second,
	})
}

// newChannelSearchServer serves a channel text search followed by a batch
// statistics lookup. One channel hides its subscriber count.
func newChannelSearchServer() *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/search":
			_, _ = w.Write([]byte(`{"items": [
				{"id": {"channelId": "UCaaaaaaaaaaaaaaaaaaaaaa"}, "snippet": {"title": "Alpha"}},
				{"id": {"channelId": "UCbbbbbbbbbbbbbbbbbbbbbb"}, "snippet": {"title": "Beta"}},
				{"id": {"channelId": "UCcccccccccccccccccccccc"}, "snippet": {"title": "Gamma"}}
			]}`))
		case "/channels":
			_, _ = w.Write([]byte(`{"items": [
				{"id": "UCaaaaaaaaaaaaaaaaaaaaaa", "snippet": {"title": "Alpha"}, "statistics": {"subscriberCount": "100", "viewCount": "1000", "videoCount": "10"}},
				{"id": "UCbbbbbbbbbbbbbbbbbbbbbb", "snippet": {"title": "Beta"}, "statistics": {"viewCount": "5000", "videoCount": "50"}},
				{"id": "UCcccccccccccccccccccccc", "snippet": {"title": "Gamma"}, "statistics": {"subscriberCount": "200", "viewCount": "2000", "videoCount": "20"}}
			]}`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
}

func TestYouTubeConfigMissingShortCircuits(t *testing.T) {
	var calls atomic.Int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
	}))
	defer ts.Close()

	adapter := newTestYouTube(ts.URL, "")
	for _, op := range []string{OpChannelStats, OpSearchVideos, OpSearchChannels} {
		result := adapter.Execute(context.Background(), Operation{Name: op, Args: Args{Query: "go", ChannelID: "UCaaaaaaaaaaaaaaaaaaaaaa", MaxResults: 5}})
		if result.OK || result.Error.Kind != models.ErrorConfigMissing {
			t.Errorf("%s: result = %+v, want configuration_missing", op, result)
		}
		if result.Error != nil && result.Error.Message != "YouTube API key not configured" {
			t.Errorf("%s: message = %q", op, result.Error.Message)
		}
	}
	if calls.Load() != 0 {
		t.Errorf("upstream called %d times, want 0", calls.Load())
	}
}

func TestYouTubeChannelStats(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("id"); got != "UC_x5XG1OV2P6uZZ5FSM9Ttw" {
			t.Errorf("id = %q, want channel id", got)
		}
		_, _ = w.Write([]byte(`{"items": [{"id": "UC_x5XG1OV2P6uZZ5FSM9Ttw", "snippet": {"title": "Google Developers", "publishedAt": "2007-08-23T00:34:43Z"}, "statistics": {"subscriberCount": "2340000", "viewCount": "998877", "videoCount": "5600"}}]}`))
	}))
	defer ts.Close()

	result := newTestYouTube(ts.URL, "key").Execute(context.Background(), Operation{
		Name: OpChannelStats,
		Args: Args{ChannelID: "UC_x5XG1OV2P6uZZ5FSM9Ttw"},
	})
	if !result.OK {
		t.Fatalf("result not OK: %+v", result.Error)
	}
	stats := result.Data.(models.YouTubeChannelStats)
	if stats.ChannelName != "Google Developers" || stats.Subscribers != 2340000 || stats.TotalViews != 998877 {
		t.Errorf("stats = %+v, want projected fixture values", stats)
	}
}

func TestYouTubeChannelStatsNotFound(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"items": []}`))
	}))
	defer ts.Close()

	result := newTestYouTube(ts.URL, "key").Execute(context.Background(), Operation{
		Name: OpChannelStats,
		Args: Args{ChannelID: "UC_x5XG1OV2P6uZZ5FSM9Ttw"},
	})
	if result.OK || result.Error.Kind != models.ErrorNotFound {
		t.Errorf("result = %+v, want not_found for empty items", result)
	}
}

func TestYouTubeSearchChannelsSorting(t *testing.T) {
	tests := []struct {
		name      string
		sort      string
		order     string
		wantNames []string
		wantSort  string
		wantOrder string
	}{
		{"name desc default", "", "", []string{"Gamma", "Beta", "Alpha"}, "name", "desc"},
		{"unknown sort falls back to name", "popularity", "asc", []string{"Alpha", "Beta", "Gamma"}, "name", "asc"},
		// Beta's subscriber count is hidden and sorts as zero.
		{"subscribers asc", "subscribers", "asc", []string{"Beta", "Alpha", "Gamma"}, "subscribers", "asc"},
		{"views desc", "total_views", "desc", []string{"Beta", "Gamma", "Alpha"}, "total_views", "desc"},
		{"name asc", "name", "asc", []string{"Alpha", "Beta", "Gamma"}, "name", "asc"},
		{"unknown order means desc", "subscribers", "banana", []string{"Gamma", "Alpha", "Beta"}, "subscribers", "desc"},
	}

	ts := newChannelSearchServer()
	defer ts.Close()
	adapter := newTestYouTube(ts.URL, "key")

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := adapter.Execute(context.Background(), Operation{
				Name: OpSearchChannels,
				Args: Args{Query: "go", MaxResults: 10, Sort: tt.sort, Order: tt.order},
			})
			if !result.OK {
				t.Fatalf("result not OK: %+v", result.Error)
			}
			payload := result.Data.(models.YouTubeChannelSearch)
			if payload.Sort != tt.wantSort || payload.Order != tt.wantOrder {
				t.Errorf("sort/order = %s/%s, want %s/%s", payload.Sort, payload.Order, tt.wantSort, tt.wantOrder)
			}
			if payload.ResultsCount != len(tt.wantNames) {
				t.Fatalf("ResultsCount = %d, want %d", payload.ResultsCount, len(tt.wantNames))
			}
			for i, want := range tt.wantNames {
				if payload.Channels[i].ChannelName != want {
					t.Errorf("channel[%d] = %q, want %q", i, payload.Channels[i].ChannelName, want)
				}
			}
		})
	}
}

func TestYouTubeSearchVideos(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("type"); got != "video" {
			t.Errorf("type = %q, want video", got)
		}
		_, _ = w.Write([]byte(`{"items": [
			{"id": {"videoId": "abc123"}, "snippet": {"title": "Go Tutorial", "channelTitle": "Alpha", "publishedAt": "2024-01-01T00:00:00Z"}},
			{"id": {"videoId": "def456"}, "snippet": {"title": "Go Talk", "channelTitle": "Beta", "publishedAt": "2024-02-01T00:00:00Z"}}
		]}`))
	}))
	defer ts.Close()

	result := newTestYouTube(ts.URL, "key").Execute(context.Background(), Operation{
		Name: OpSearchVideos,
		Args: Args{Query: "golang", MaxResults: 5},
	})
	if !result.OK {
		t.Fatalf("result not OK: %+v", result.Error)
	}
	payload := result.Data.(models.YouTubeVideoSearch)
	if payload.Query != "golang" || payload.ResultsCount != 2 {
		t.Errorf("payload = %+v, want 2 results for golang", payload)
	}
	if payload.Videos[0].VideoID != "abc123" {
		t.Errorf("first video = %+v, want abc123", payload.Videos[0])
	}
}
