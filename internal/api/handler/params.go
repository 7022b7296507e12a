package handler

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"

	"github.com/albapepper/scoracle-baseball/internal/api/respond"
	"github.com/albapepper/scoracle-baseball/internal/baseball"
	"github.com/albapepper/scoracle-baseball/internal/config"
	"github.com/albapepper/scoracle-baseball/internal/provider"
	"github.com/albapepper/scoracle-baseball/internal/table"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// idParam is a franchise or player id taken from the path.
type idParam struct {
	ID string `validate:"required,max=16,alphanum"`
}

// nameParam is a "First Last" player name taken from the path.
type nameParam struct {
	Name string `validate:"required,max=100"`
}

// pathID reads and validates an id path parameter. It writes a 400 and
// returns false when the id is unusable.
func pathID(w http.ResponseWriter, r *http.Request, key string) (string, bool) {
	p := idParam{ID: strings.TrimSpace(chi.URLParam(r, key))}
	if err := validate.Struct(p); err != nil {
		respond.WriteErrorDetail(w, http.StatusBadRequest, "INVALID_ID", "Invalid "+key, err.Error())
		return "", false
	}
	return p.ID, true
}

func pathName(w http.ResponseWriter, r *http.Request, key string) (string, bool) {
	p := nameParam{Name: strings.TrimSpace(chi.URLParam(r, key))}
	if err := validate.Struct(p); err != nil {
		respond.WriteErrorDetail(w, http.StatusBadRequest, "INVALID_NAME", "Invalid "+key, err.Error())
		return "", false
	}
	return p.Name, true
}

// queryYear parses an optional integer year. Missing means def.
func queryYear(w http.ResponseWriter, r *http.Request, key string, def int) (int, bool) {
	raw := strings.TrimSpace(r.URL.Query().Get(key))
	if raw == "" {
		return def, true
	}
	year, err := strconv.Atoi(raw)
	if err != nil {
		respond.WriteError(w, http.StatusBadRequest, "INVALID_SEASON", key+" must be an integer year")
		return 0, false
	}
	return year, true
}

// seasonRange reads start_year (default: current year) and end_year
// (default: 0, the start season only). Spans longer than the configured
// maximum are rejected.
func (h *Handler) seasonRange(w http.ResponseWriter, r *http.Request) (start, end int, ok bool) {
	start, ok = queryYear(w, r, "start_year", h.now().Year())
	if !ok {
		return 0, 0, false
	}
	end, ok = queryYear(w, r, "end_year", 0)
	if !ok {
		return 0, 0, false
	}
	if limit := h.maxSeasons(); end != 0 && end-start+1 > limit {
		respond.WriteErrorDetail(w, http.StatusBadRequest, "INVALID_SEASON", "Season range too long",
			fmt.Sprintf("at most %d seasons per request, got %d-%d", limit, start, end))
		return 0, 0, false
	}
	return start, end, true
}

func (h *Handler) maxSeasons() int {
	if h.cfg != nil && h.cfg.BRefMaxSeasons > 0 {
		return h.cfg.BRefMaxSeasons
	}
	return config.DefaultMaxSeasons
}

// writeServiceError maps service and provider errors to HTTP responses.
// Player pitching answers 400 on an empty result while batting answers 404;
// clients depend on the difference.
func (h *Handler) writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, context.Canceled):
		return
	case errors.Is(err, context.DeadlineExceeded):
		respond.WriteError(w, http.StatusGatewayTimeout, "UPSTREAM_TIMEOUT", "Statistics source did not answer in time")
	case errors.Is(err, provider.ErrUnavailable):
		w.Header().Set("Retry-After", "60")
		respond.WriteError(w, http.StatusServiceUnavailable, "UPSTREAM_UNAVAILABLE", "Statistics source temporarily unavailable")
	case errors.Is(err, provider.ErrUpstream):
		respond.WriteErrorDetail(w, http.StatusBadGateway, "UPSTREAM_ERROR", "Statistics source failed", err.Error())
	case errors.Is(err, table.ErrCoercion):
		respond.WriteErrorDetail(w, http.StatusInternalServerError, "COERCION_FAILED", "Source data has an unexpected format", err.Error())
	case errors.Is(err, baseball.ErrEmptyPitching):
		respond.WriteError(w, http.StatusBadRequest, "NO_DATA", "No data for given player")
		return
	case errors.Is(err, baseball.ErrEmptyBatting):
		respond.WriteError(w, http.StatusNotFound, "NOT_FOUND", "No data for given player")
		return
	case errors.Is(err, baseball.ErrInvalidName):
		respond.WriteError(w, http.StatusBadRequest, "INVALID_NAME", err.Error())
		return
	case errors.Is(err, provider.ErrNoData):
		respond.WriteError(w, http.StatusNotFound, "NOT_FOUND", "No data for given year")
		return
	case errors.Is(err, provider.ErrNotFound):
		respond.WriteError(w, http.StatusNotFound, "NOT_FOUND", "Not found")
		return
	default:
		respond.WriteError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error")
	}

	h.logger.Error("Request failed",
		"request_id", middleware.GetReqID(r.Context()),
		"path", r.URL.Path,
		"error", err)
}
