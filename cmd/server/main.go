package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	goredis "github.com/redis/go-redis/v9"

	_ "github.com/geoprumo/route-service/docs"
	"github.com/geoprumo/route-service/internal/api"
	"github.com/geoprumo/route-service/internal/infrastructure/config"
	"github.com/geoprumo/route-service/internal/infrastructure/db/redis"
	"github.com/geoprumo/route-service/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

// @title        Route Service API
// @version      1.0
// @description  Ingests waypoint sources, optimizes visiting order and exports routes.
// @BasePath     /
func main() {
	cfg := config.Load()
	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.LogPretty,
		Service: "route-service",
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var rdb *goredis.Client
	redisCfg := redis.Config{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	}
	if redisCfg.Enabled() {
		client, err := redis.Connect(ctx, redisCfg)
		if err != nil {
			log.Warn().Err(err).Msg("geocode cache unavailable, continuing without it")
		} else {
			rdb = client
			defer func() { _ = rdb.Close() }()
		}
	}

	if cfg.ORS.APIKey == "" {
		log.Warn().Msg("ORS_API_KEY not set: online optimization and geocoding are disabled")
	}

	e := api.NewRouter(cfg, rdb, log)

	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("server starting")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error().Err(err).Msg("server failed")
			stop()
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
		return
	}
	log.Info().Msg("server stopped")
}
