// Command api is the rikka-data API server.
//
// Usage:
//
//	rikka-api
//	API_PORT=8080 rikka-api

// @title Rikka Data API
// @version 1.0.0
// @description Backend for the rikka chat-bot plugin: score-tracker account binding, normalized Best 50 / AP 50 / recent score views, and song metadata lookup.
// @host localhost:8000
// @BasePath /api/v1
// @schemes http https
// @license.name MIT
package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/joho/godotenv"

	"github.com/rikka-bot/rikka-data/internal/aggregate"
	"github.com/rikka-bot/rikka-data/internal/api"
	"github.com/rikka-bot/rikka-data/internal/binding"
	"github.com/rikka-bot/rikka-data/internal/cache"
	"github.com/rikka-bot/rikka-data/internal/config"
	"github.com/rikka-bot/rikka-data/internal/db"
	"github.com/rikka-bot/rikka-data/internal/provider"
	"github.com/rikka-bot/rikka-data/internal/provider/divingfish"
	"github.com/rikka-bot/rikka-data/internal/provider/lxns"
	"github.com/rikka-bot/rikka-data/internal/song"

	_ "github.com/rikka-bot/rikka-data/docs" // swagger docs
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	// Load .env if present
	_ = godotenv.Load(".env")

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logger.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}
	if cfg.LXNSDeveloperKey == "" {
		logger.Error("LXNS_DEVELOPER_API_KEY must be set")
		os.Exit(1)
	}

	// Context with signal handling
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	// Connect to database
	logger.Info("Connecting to database...")
	pool, err := db.New(ctx, cfg)
	if err != nil {
		logger.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer pool.Close()
	logger.Info("Database connected",
		"min_conns", cfg.DBPoolMinConns,
		"max_conns", cfg.DBPoolMaxConns)

	// Provider registry — built once, released on shutdown.
	lxnsProvider := lxns.New(cfg.LXNSBaseURL, cfg.LXNSDeveloperKey, logger)
	dfProvider := divingfish.New(cfg.DivingFishBaseURL, logger)
	registry := provider.NewRegistry(lxnsProvider, dfProvider)
	defer registry.Close()
	logger.Info("Providers registered", "providers", registry.Names())

	// Stores and services
	bindings := binding.NewStore(pool.Pool)
	songs := song.NewStore(pool.Pool, cfg.CurrentVersion)
	resolver := provider.NewResolver(registry, bindings, logger)
	scores := aggregate.NewService(resolver, songs, logger)

	// Initialize cache
	appCache := cache.New(cfg.CacheEnabled)
	logger.Info("Cache initialized", "enabled", cfg.CacheEnabled)

	// Router and server
	router := api.NewRouter(api.Deps{
		Pool:     pool,
		Cache:    appCache,
		Config:   cfg,
		Scores:   scores,
		Bindings: bindings,
		Songs:    songs,
		Registry: registry,
		LXNS:     lxnsProvider,
		Logger:   logger,
	})

	addr := fmt.Sprintf("%s:%d", cfg.APIHost, cfg.APIPort)
	server := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("API server listening", "addr", addr, "environment", cfg.Environment)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("Server failed", "error", err)
			cancel()
		}
	}()

	<-ctx.Done()
	logger.Info("Shutting down...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("Graceful shutdown failed", "error", err)
	}
	logger.Info("Shutdown complete")
}
