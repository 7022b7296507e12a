package api

import (
	"log/slog"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	corslib "github.com/rs/cors"
	httpSwagger "github.com/swaggo/http-swagger/v2"

	"github.com/albapepper/scoracle-baseball/internal/api/handler"
	"github.com/albapepper/scoracle-baseball/internal/config"
)

// NewRouter creates and configures the Chi router with all middleware and routes.
func NewRouter(svc handler.Service, db handler.HealthChecker, cfg *config.Config, logger *slog.Logger) *chi.Mux {
	if logger == nil {
		logger = slog.Default()
	}
	r := chi.NewRouter()

	// --- Middleware stack ---
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(RequestLogger(logger))
	r.Use(middleware.Recoverer)
	r.Use(TimingMiddleware)
	r.Use(RequestTimeout(cfg.RequestTimeout()))
	if cfg.MetricsEnabled {
		r.Use(MetricsMiddleware)
	}
	r.Use(middleware.Compress(5)) // gzip

	// CORS
	c := corslib.New(corslib.Options{
		AllowedOrigins:   cfg.CORSAllowOrigins,
		AllowedMethods:   []string{"GET", "HEAD", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		ExposedHeaders:   []string{"X-Process-Time", "X-Request-Id", "ETag"},
		AllowCredentials: cfg.CORSAllowCredentials,
	})
	r.Use(c.Handler)

	// --- Handler dependencies ---
	h := handler.New(svc, db, cfg, logger)

	// --- Routes ---

	// Root
	r.Get("/", h.Root)

	// Health checks
	r.Route("/health", func(r chi.Router) {
		r.Get("/", h.HealthCheck)
		r.Get("/db", h.HealthCheckDB)
	})

	if cfg.MetricsEnabled {
		r.Handle("/metrics", promhttp.Handler())
	}

	// Swagger UI
	r.Get("/docs/*", httpSwagger.Handler(httpSwagger.URL("/docs/doc.json")))

	// API v1 routes
	r.Route("/api/v1", func(r chi.Router) {
		// Teams
		r.Get("/franchises", h.GetFranchises)
		r.Get("/teambatting/{team_id}", h.GetTeamBatting)
		r.Get("/teampitching/{team_id}", h.GetTeamPitching)
		r.Get("/teamname/{team_id}", h.GetTeamName)

		// Players
		r.Get("/playername/{player_id}", h.GetPlayerName)
		r.Get("/playerid/{player_name}", h.GetPlayerID)
		r.Get("/playerbatting/{player_id}", h.GetPlayerBatting)
		r.Get("/playerpitching/{player_id}", h.GetPlayerPitching)
	})

	return r
}
