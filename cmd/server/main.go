// Socialscope - Social Media Insights API Gateway
// Copyright 2026 Socialscope contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

// Command server runs the social media insights API gateway.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/socialscope/socialscope/internal/aggregate"
	"github.com/socialscope/socialscope/internal/api"
	"github.com/socialscope/socialscope/internal/auth"
	"github.com/socialscope/socialscope/internal/cache"
	"github.com/socialscope/socialscope/internal/config"
	"github.com/socialscope/socialscope/internal/logging"
	"github.com/socialscope/socialscope/internal/platform"
	"github.com/socialscope/socialscope/internal/ratelimit"
	"github.com/socialscope/socialscope/internal/security"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(logging.Config{Level: cfg.Logging.Level, Format: cfg.Logging.Format})
	logging.Info().Str("addr", cfg.Addr()).Msg("Starting Socialscope gateway")

	if err := run(cfg); err != nil {
		logging.Fatal().Err(err).Msg("Gateway exited with error")
	}
}

func run(cfg *config.Config) error {
	tokens, err := auth.NewJWTManager(cfg.Security.JWTSecret, cfg.Security.TokenLifetime)
	if err != nil {
		return err
	}
	credentials := auth.NewCredentialTable(cfg.Security.CredentialTable())

	// Result cache: Redis when configured, in-memory otherwise. A Redis
	// that cannot be reached at startup falls back to memory rather than
	// refusing to start; the cache is an optimization, not a dependency.
	store := newStore(cfg)
	defer store.Close()

	admission := ratelimit.NewAdmission()
	defer admission.Close()
	limiter := ratelimit.NewLimiter(admission, cfg.RateLimit.Disabled)

	// The RapidAPI adapters forward client-supplied values upstream, so
	// their outbound clients validate dialed addresses.
	registry := platform.NewRegistry(
		platform.NewBreaker(platform.NewReddit(cfg.Reddit)),
		platform.NewBreaker(platform.NewYouTube(cfg.YouTube)),
		platform.NewBreaker(platform.NewLinkedIn(cfg.LinkedIn, security.NewOutboundClient(cfg.LinkedIn.Timeout))),
		platform.NewBreaker(platform.NewInstagram(cfg.Instagram, security.NewOutboundClient(cfg.Instagram.PostsTimeout))),
	)
	aggregator := aggregate.New(registry)

	handlers := api.NewHandlers(credentials, tokens, registry, aggregator, store)
	router := api.NewRouter(cfg, handlers, tokens, limiter)
	server := api.NewServer(cfg, router)

	errCh := make(chan error, 1)
	go func() {
		logging.Info().Str("addr", server.Addr).Msg("HTTP server listening")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-stop:
		logging.Info().Str("signal", sig.String()).Msg("Shutting down")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return err
	}

	logging.Info().Msg("Shutdown complete")
	return nil
}

func newStore(cfg *config.Config) cache.Store {
	if cfg.Cache.RedisURL == "" {
		return cache.NewMemory(cfg.Cache.TTL)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	store, err := cache.NewRedis(ctx, cfg.Cache.RedisURL, cfg.Cache.TTL)
	if err != nil {
		logging.Warn().Err(err).Msg("Redis unavailable, using in-memory cache")
		return cache.NewMemory(cfg.Cache.TTL)
	}
	logging.Info().Msg("Using Redis result cache")
	return store
}
