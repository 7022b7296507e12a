// Command api is the Scoracle Baseball API server.
//
// Usage:
//
//	scoracle-baseball-api
//	API_PORT=8080 scoracle-baseball-api

// @title Scoracle Baseball API
// @version 1.0.0
// @description Read-only baseball statistics API: active franchises, team batting and pitching splits from Baseball-Reference, and career batting and pitching lines from the Lahman database.
// @host localhost:8000
// @BasePath /api/v1
// @schemes http https
// @contact.name Scoracle
// @license.name MIT
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/albapepper/scoracle-baseball/internal/api"
	"github.com/albapepper/scoracle-baseball/internal/baseball"
	"github.com/albapepper/scoracle-baseball/internal/config"
	"github.com/albapepper/scoracle-baseball/internal/db"
	"github.com/albapepper/scoracle-baseball/internal/lahman"
	"github.com/albapepper/scoracle-baseball/internal/logging"
	"github.com/albapepper/scoracle-baseball/internal/provider/bref"

	_ "github.com/albapepper/scoracle-baseball/docs" // swagger docs
)

func main() {
	// Load .env if present
	_ = godotenv.Load(".env")

	logger := logging.NewSlogLogger()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logger.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	logging.Init(logging.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})
	logger = logging.NewSlogLogger()

	// Context with signal handling
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	// Connect to database
	logger.Info("Connecting to database...")
	pool, err := db.New(ctx, cfg, lahman.Statements())
	if err != nil {
		logger.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer pool.Close()
	logger.Info("Database connected",
		"min_conns", cfg.DBPoolMinConns,
		"max_conns", cfg.DBPoolMaxConns)

	store := lahman.NewStore(pool.Pool)
	brefClient := bref.NewClient(cfg.BRefBaseURL, cfg.BRefUserAgent, cfg.BRefRequestsPerMinute, cfg.BRefTimeout(), logger)
	logger.Info("Baseball-Reference client ready",
		"base_url", cfg.BRefBaseURL,
		"requests_per_minute", cfg.BRefRequestsPerMinute)

	svc := baseball.NewService(baseball.Sources{
		Registry:   store,
		Franchises: store,
		Teams:      brefClient,
		Players:    store,
		People:     store,
	}, logger)

	if cfg.IsProduction() && cfg.OpenCORS() {
		logger.Warn("CORS allows credentialed requests from any origin",
			"origins", cfg.CORSAllowOrigins)
	}

	// Create router
	router := api.NewRouter(svc, pool, cfg, logger)

	// Create HTTP server
	addr := cfg.Addr()
	srv := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: cfg.RequestTimeout() + 10*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in background
	go func() {
		logger.Info("Starting Scoracle Baseball API",
			"addr", addr,
			"environment", cfg.Environment,
			"docs", fmt.Sprintf("http://localhost:%d/docs/", cfg.APIPort))
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
	logger.Info("Server stopped")
}
