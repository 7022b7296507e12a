// Package handler provides HTTP handlers for all API endpoints.
// Handlers parse parameters, call the baseball service and write JSON;
// error classification lives in writeServiceError.
package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/albapepper/scoracle-baseball/internal/api/respond"
	"github.com/albapepper/scoracle-baseball/internal/baseball"
	"github.com/albapepper/scoracle-baseball/internal/config"
	"github.com/albapepper/scoracle-baseball/internal/table"
)

// Service is the set of operations the handlers expose.
type Service interface {
	Franchises(ctx context.Context) (*table.Table, error)
	TeamBatting(ctx context.Context, franchiseID string, start, end int) (*table.Table, error)
	TeamPitching(ctx context.Context, franchiseID string, start, end int) (*table.Table, error)
	TeamName(ctx context.Context, franchiseID string, year int) (baseball.TeamName, error)
	PlayerName(ctx context.Context, playerID string) (string, error)
	PlayerID(ctx context.Context, name string) (string, error)
	PlayerBatting(ctx context.Context, playerID string) (*table.Table, error)
	PlayerPitching(ctx context.Context, playerID string) (*table.Table, error)
}

// HealthChecker verifies database connectivity.
type HealthChecker interface {
	HealthCheck(ctx context.Context) error
}

var _ Service = (*baseball.Service)(nil)

// Handler holds shared dependencies for all endpoint handlers.
type Handler struct {
	svc    Service
	db     HealthChecker
	cfg    *config.Config
	logger *slog.Logger
	now    func() time.Time
}

// New creates a Handler with shared dependencies.
func New(svc Service, db HealthChecker, cfg *config.Config, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{
		svc:    svc,
		db:     db,
		cfg:    cfg,
		logger: logger,
		now:    time.Now,
	}
}

// Root serves API info at /.
// @Summary API root info
// @Description Returns API name, version, status, and the docs location.
// @Tags meta
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router / [get]
func (h *Handler) Root(w http.ResponseWriter, r *http.Request) {
	info := map[string]interface{}{
		"name":    "Scoracle Baseball API",
		"version": "1.0.0",
		"status":  "running",
		"docs":    "/docs",
		"sources": []string{
			"lahman_postgres",
			"baseball_reference",
		},
	}
	if h.cfg != nil {
		info["environment"] = h.cfg.Environment
	}
	respond.WriteJSONObject(w, http.StatusOK, info)
}

// HealthCheck returns basic health status.
// @Summary Health check
// @Description Returns basic health status and timestamp.
// @Tags health
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /health [get]
func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	respond.WriteJSONObject(w, http.StatusOK, map[string]interface{}{
		"status":    "healthy",
		"timestamp": h.now().UTC().Format(time.RFC3339),
	})
}

// HealthCheckDB verifies database connectivity.
// @Summary Database health check
// @Description Verifies Postgres connectivity.
// @Tags health
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 503 {object} map[string]interface{}
// @Router /health/db [get]
func (h *Handler) HealthCheckDB(w http.ResponseWriter, r *http.Request) {
	if err := h.db.HealthCheck(r.Context()); err != nil {
		h.logger.Warn("Database health check failed", "error", err)
		respond.WriteJSONObject(w, http.StatusServiceUnavailable, map[string]interface{}{
			"status":    "unhealthy",
			"database":  "disconnected",
			"error":     "Database connection check failed",
			"timestamp": h.now().UTC().Format(time.RFC3339),
		})
		return
	}
	respond.WriteJSONObject(w, http.StatusOK, map[string]interface{}{
		"status":    "healthy",
		"database":  "connected",
		"timestamp": h.now().UTC().Format(time.RFC3339),
	})
}
