// Socialscope - Social Media Insights API Gateway
// Copyright 2026 Socialscope contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/socialscope/socialscope/internal/auth"
	"github.com/socialscope/socialscope/internal/config"
	"github.com/socialscope/socialscope/internal/middleware"
	"github.com/socialscope/socialscope/internal/ratelimit"
)

// NewRouter assembles the gateway's route tree.
//
// Middleware order per protected route: RealIP, panic recovery, CORS, and a
// coarse global per-IP limiter apply everywhere; then token verification,
// then the route's fixed-window admission, then metrics around the handler.
func NewRouter(cfg *config.Config, handlers *Handlers, tokens *auth.JWTManager, limiter *ratelimit.Limiter) http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.Server.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))
	if cfg.RateLimit.GlobalRequests > 0 {
		r.Use(httprate.LimitByIP(cfg.RateLimit.GlobalRequests, cfg.RateLimit.GlobalWindow))
	}
	r.Use(middleware.Prometheus)

	window := cfg.RateLimit.Window
	rule := func(limit int) ratelimit.Rule {
		return ratelimit.Rule{Limit: limit, Window: window}
	}

	r.Get("/", handlers.Home)
	r.Get("/health", handlers.Health)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(limiter.Route("login", rule(cfg.RateLimit.Login)))
			r.Post("/auth/login", handlers.Login)
		})

		r.Group(func(r chi.Router) {
			r.Use(auth.RequireToken(tokens))

			route := func(r chi.Router, pattern, key string, limit int, h http.HandlerFunc) {
				r.With(limiter.Route(key, rule(limit))).Get(pattern, h)
			}

			route(r, "/insights/reddit", "reddit", 10, handlers.RedditInsights)
			route(r, "/insights/reddit/community", "reddit_community", 10, handlers.RedditCommunity)
			route(r, "/insights/youtube", "youtube", 10, handlers.YouTubeStats)
			route(r, "/insights/youtube/channels", "youtube_channels", cfg.RateLimit.Search, handlers.YouTubeChannels)
			route(r, "/insights/youtube/search", "youtube_search", cfg.RateLimit.Search, handlers.YouTubeSearch)
			route(r, "/insights/linkedin/company", "linkedin", cfg.RateLimit.Search, handlers.LinkedInCompany)
			route(r, "/insights/instagram/community", "instagram", 10, handlers.InstagramCommunity)
			route(r, "/insights/instagram/posts", "instagram_posts", 10, handlers.InstagramPosts)
			route(r, "/insights/all", "aggregate", 10, handlers.AggregateInsights)
			route(r, "/trending", "trending", 10, handlers.Trending)
		})
	})

	return r
}

// NewServer builds the HTTP server around the router with the configured
// listener timeouts.
func NewServer(cfg *config.Config, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              cfg.Addr(),
		Handler:           handler,
		ReadTimeout:       cfg.Server.ReadTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
		ReadHeaderTimeout: 10 * time.Second,
	}
}
