package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/tripdesk/travio-gateway/internal/api"
	"github.com/tripdesk/travio-gateway/internal/core/ports"
	"github.com/tripdesk/travio-gateway/internal/infrastructure/config"
	"github.com/tripdesk/travio-gateway/internal/infrastructure/db/redis"
	"github.com/tripdesk/travio-gateway/internal/infrastructure/travio"
	"github.com/tripdesk/travio-gateway/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg := config.Load()
	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	ctx := context.Background()

	// The Redis token cache is optional: without it tokens live in process
	// memory only and a restart re-authenticates.
	var rdb *goredis.Client
	var tokenStore ports.TokenStore
	if cfg.Redis.TokenCache {
		client, err := redis.Connect(ctx, redis.Config{Addr: cfg.Redis.Addr, DB: cfg.Redis.DB})
		if err != nil {
			log.Fatal().Err(err).Msg("redis connection failed")
		}
		rdb = client
		tokenStore = redis.NewTokenStore(client)
		defer rdb.Close()
	}

	var upstream ports.Upstream
	if cfg.Travio.UseMock {
		log.Warn().Msg("running with mock upstream data")
		upstream = travio.NewMockClient(cfg.Travio.Language)
	} else {
		upstream = travio.NewClient(travio.Options{
			BaseURL:    cfg.Travio.BaseURL,
			ID:         cfg.Travio.ID,
			Key:        cfg.Travio.Key,
			Language:   cfg.Travio.Language,
			TokenStore: tokenStore,
			Logger:     log,
		})
	}
	defer upstream.Close()

	e := api.NewRouter(cfg, upstream, rdb, log)

	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("starting gateway")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server stopped unexpectedly")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(ctx, shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}
