// Package bref fetches team season tables from Baseball-Reference.
//
// Team pages live at /teams/{team}/{season}.shtml. Requests go through a
// token bucket limiter (the site blocks clients that exceed roughly twenty
// requests a minute) and a circuit breaker so a struggling upstream fails
// fast instead of tying up every request.
package bref

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	gobreaker "github.com/sony/gobreaker/v2"
	"golang.org/x/time/rate"

	"github.com/albapepper/scoracle-baseball/internal/metrics"
	"github.com/albapepper/scoracle-baseball/internal/provider"
)

const (
	DefaultBaseURL   = "https://www.baseball-reference.com"
	DefaultUserAgent = "scoracle-baseball/1.0"

	breakerName = "baseball-reference"
	sourceName  = "bref"
)

// Client is the HTTP client for Baseball-Reference team pages.
type Client struct {
	httpClient *http.Client
	baseURL    string
	userAgent  string
	limiter    *rate.Limiter
	breaker    *gobreaker.CircuitBreaker[[]byte]
	logger     *slog.Logger
}

// NewClient creates a rate-limited client. requestsPerMinute <= 0 disables
// the limiter.
func NewClient(baseURL, userAgent string, requestsPerMinute int, timeout time.Duration, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if userAgent == "" {
		userAgent = DefaultUserAgent
	}
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	limit := rate.Inf
	if requestsPerMinute > 0 {
		limit = rate.Limit(float64(requestsPerMinute) / 60.0)
	}

	c := &Client{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    baseURL,
		userAgent:  userAgent,
		limiter:    rate.NewLimiter(limit, 1),
		logger:     logger,
	}
	c.breaker = newBreaker(logger)
	return c
}

func newBreaker(logger *slog.Logger) *gobreaker.CircuitBreaker[[]byte] {
	metrics.CircuitBreakerState.WithLabelValues(breakerName).Set(0)

	return gobreaker.NewCircuitBreaker[[]byte](gobreaker.Settings{
		Name:        breakerName,
		MaxRequests: 1,
		Interval:    time.Minute,
		Timeout:     2 * time.Minute,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
		// A missing page is an answer, not an outage.
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, provider.ErrNoData) || errors.Is(err, context.Canceled)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("Circuit breaker state change", "name", name, "from", from.String(), "to", to.String())
			metrics.CircuitBreakerState.WithLabelValues(name).Set(stateValue(to))
			metrics.CircuitBreakerTransitions.WithLabelValues(name, from.String(), to.String()).Inc()
		},
	})
}

func stateValue(s gobreaker.State) float64 {
	switch s {
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	default:
		return 0
	}
}

// get performs a rate-limited GET and returns the body. A 404 maps to
// provider.ErrNoData.
func (c *Client) get(ctx context.Context, operation, path string) ([]byte, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, fmt.Errorf("rate limit wait: %w", ctxErr)
		}
		// The wait would outlast the context deadline.
		return nil, fmt.Errorf("rate limit wait: %w: %w", context.DeadlineExceeded, err)
	}

	start := time.Now()
	body, err := c.breaker.Execute(func() ([]byte, error) {
		return c.fetch(ctx, path)
	})
	elapsed := time.Since(start)

	switch {
	case err == nil:
		metrics.RecordProviderCall(sourceName, operation, "ok", elapsed)
		return body, nil
	case errors.Is(err, gobreaker.ErrOpenState), errors.Is(err, gobreaker.ErrTooManyRequests):
		metrics.RecordProviderCall(sourceName, operation, "rejected", elapsed)
		return nil, fmt.Errorf("%s: %w: %w", path, provider.ErrUnavailable, err)
	case errors.Is(err, provider.ErrNoData):
		metrics.RecordProviderCall(sourceName, operation, "no_data", elapsed)
		return nil, err
	default:
		metrics.RecordProviderCall(sourceName, operation, "error", elapsed)
		return nil, err
	}
}

func (c *Client) fetch(ctx context.Context, path string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "text/html")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, fmt.Errorf("http request %s: %w: %w", path, provider.ErrUpstream, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response body: %w: %w", provider.ErrUpstream, err)
	}

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, fmt.Errorf("%s: %w", path, provider.ErrNoData)
	case resp.StatusCode != http.StatusOK:
		c.logger.Warn("Baseball-Reference request failed", "path", path, "status", resp.StatusCode)
		return nil, fmt.Errorf("%s returned %d: %s: %w", path, resp.StatusCode, truncate(body, 200), provider.ErrUpstream)
	}
	return body, nil
}

// truncate returns a truncated string representation for error messages.
func truncate(b []byte, maxLen int) string {
	if len(b) <= maxLen {
		return string(b)
	}
	return string(b[:maxLen]) + "..."
}
