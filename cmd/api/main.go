// Command api serves the live Aragón election results.
//
// It polls the five published spreadsheet exports in the background and
// serves the normalized model over a read-only JSON API.
//
// Usage:
//
//	elecciones-api
//	API_PORT=8080 POLL_INTERVAL_SECONDS=60 elecciones-api

// @title Elecciones Aragón API
// @version 1.0.0
// @description Live results of the Aragón regional election: seats, vote shares, count progress, turnout and per-municipality leaders.
// @host localhost:8000
// @BasePath /api/v1
// @schemes http https
// @contact.name Elecciones Aragón
// @license.name MIT
package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/albapepper/elecciones-aragon/docs"
	"github.com/albapepper/elecciones-aragon/internal/api"
	"github.com/albapepper/elecciones-aragon/internal/cache"
	"github.com/albapepper/elecciones-aragon/internal/config"
	"github.com/albapepper/elecciones-aragon/internal/poller"
	"github.com/albapepper/elecciones-aragon/internal/sheets"
)

func main() {
	// Load .env if present
	_ = godotenv.Load(".env")

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	level := slog.LevelInfo
	if cfg.Debug {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	docs.SwaggerInfo.Host = fmt.Sprintf("localhost:%d", cfg.APIPort)
	docs.SwaggerInfo.BasePath = cfg.BasePath + "/api/v1"

	// Context with signal handling
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	// Sheets client and poller
	client := sheets.NewClient(
		&http.Client{Timeout: cfg.FetchTimeout},
		sheets.NewLimiter(cfg.FetchRequestsPerMinute, len(cfg.Sources().All())),
		logger,
	)
	p := poller.New(client, poller.Config{
		Sources:  cfg.Sources(),
		Interval: cfg.PollInterval,
		Logger:   logger,
	})

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		p.Run(ctx)
	}()

	// Initialize cache
	appCache := cache.New(cfg.CacheEnabled)
	logger.Info("Cache initialized", "enabled", cfg.CacheEnabled)

	// Create router
	router := api.NewRouter(p, appCache, cfg, logger)

	// Create HTTP server
	addr := fmt.Sprintf("%s:%d", cfg.APIHost, cfg.APIPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in background
	go func() {
		logger.Info("Starting Elecciones Aragón API",
			"addr", addr,
			"environment", cfg.Environment,
			"poll_interval", cfg.PollInterval,
			"docs", fmt.Sprintf("http://localhost:%d%s/docs/", cfg.APIPort, cfg.BasePath))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("Server failed", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt
	<-ctx.Done()
	logger.Info("Shutting down...")

	// Graceful shutdown with timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Shutdown error", "error", err)
	}
	wg.Wait()
	logger.Info("Server stopped")
}
