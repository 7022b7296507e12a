package handler

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	json "github.com/goccy/go-json"

	"github.com/albapepper/scoracle-baseball/internal/baseball"
	"github.com/albapepper/scoracle-baseball/internal/config"
	"github.com/albapepper/scoracle-baseball/internal/provider"
	"github.com/albapepper/scoracle-baseball/internal/table"
)

// fakeService returns canned tables and records the arguments it saw.
type fakeService struct {
	table *table.Table
	err   error

	franchiseID string
	start, end  int
	playerID    string
}

func (f *fakeService) Franchises(context.Context) (*table.Table, error) {
	return f.table, f.err
}

func (f *fakeService) TeamBatting(_ context.Context, id string, start, end int) (*table.Table, error) {
	f.franchiseID, f.start, f.end = id, start, end
	return f.table, f.err
}

func (f *fakeService) TeamPitching(_ context.Context, id string, start, end int) (*table.Table, error) {
	f.franchiseID, f.start, f.end = id, start, end
	return f.table, f.err
}

func (f *fakeService) TeamName(_ context.Context, id string, year int) (baseball.TeamName, error) {
	f.franchiseID, f.start = id, year
	if f.err != nil {
		return baseball.TeamName{}, f.err
	}
	return baseball.TeamName{Name: "New York Highlanders", Current: "New York Yankees"}, nil
}

func (f *fakeService) PlayerName(_ context.Context, id string) (string, error) {
	f.playerID = id
	return "Babe Ruth", f.err
}

func (f *fakeService) PlayerID(_ context.Context, name string) (string, error) {
	f.playerID = name
	return "ruthba01", f.err
}

func (f *fakeService) PlayerBatting(_ context.Context, id string) (*table.Table, error) {
	f.playerID = id
	return f.table, f.err
}

func (f *fakeService) PlayerPitching(_ context.Context, id string) (*table.Table, error) {
	f.playerID = id
	return f.table, f.err
}

type fakeDB struct{ err error }

func (f fakeDB) HealthCheck(context.Context) error { return f.err }

func newTestRouter(svc Service, db HealthChecker) http.Handler {
	return newConfiguredRouter(svc, db, nil)
}

func newConfiguredRouter(svc Service, db HealthChecker, cfg *config.Config) http.Handler {
	h := New(svc, db, cfg, nil)
	h.now = func() time.Time { return time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC) }

	r := chi.NewRouter()
	r.Get("/health/db", h.HealthCheckDB)
	r.Get("/franchises", h.GetFranchises)
	r.Get("/teambatting/{team_id}", h.GetTeamBatting)
	r.Get("/teampitching/{team_id}", h.GetTeamPitching)
	r.Get("/teamname/{team_id}", h.GetTeamName)
	r.Get("/playername/{player_id}", h.GetPlayerName)
	r.Get("/playerid/{player_name}", h.GetPlayerID)
	r.Get("/playerbatting/{player_id}", h.GetPlayerBatting)
	r.Get("/playerpitching/{player_id}", h.GetPlayerPitching)
	return r
}

func get(t *testing.T, h http.Handler, target string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func errorCode(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode error body %q: %v", rec.Body.String(), err)
	}
	return body.Error.Code
}

func TestGetFranchisesWritesTable(t *testing.T) {
	tbl := table.New("franchID", "franchName", "active", "NAassoc")
	tbl.Rows = []table.Row{{"NYY", "New York Yankees", "Y", nil}}
	r := newTestRouter(&fakeService{table: tbl}, fakeDB{})

	rec := get(t, r, "/franchises")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
	want := `[{"franchID":"NYY","franchName":"New York Yankees","active":"Y","NAassoc":null}]`
	if got := rec.Body.String(); got != want {
		t.Errorf("body = %s, want %s", got, want)
	}
	if rec.Header().Get("ETag") == "" {
		t.Error("missing ETag")
	}
}

func TestGetTeamBattingSeasonParams(t *testing.T) {
	tests := []struct {
		target     string
		start, end int
	}{
		{"/teambatting/NYY", 2024, 0},
		{"/teambatting/NYY?start_year=2019", 2019, 0},
		{"/teambatting/NYY?start_year=2019&end_year=2021", 2019, 2021},
		{"/teambatting/NYY?start_year=2015&end_year=2024", 2015, 2024},
		{"/teambatting/NYY?start_year=2021&end_year=2019", 2021, 2019},
	}
	for _, tt := range tests {
		t.Run(tt.target, func(t *testing.T) {
			svc := &fakeService{table: table.New("Name")}
			rec := get(t, newTestRouter(svc, fakeDB{}), tt.target)
			if rec.Code != http.StatusOK {
				t.Fatalf("status = %d", rec.Code)
			}
			if svc.franchiseID != "NYY" || svc.start != tt.start || svc.end != tt.end {
				t.Errorf("called with %s %d-%d, want NYY %d-%d", svc.franchiseID, svc.start, svc.end, tt.start, tt.end)
			}
		})
	}
}

func TestBadParameters(t *testing.T) {
	r := newTestRouter(&fakeService{table: table.New("Name")}, fakeDB{})

	tests := []struct {
		target string
		code   string
	}{
		{"/teambatting/NYY?start_year=abc", "INVALID_SEASON"},
		{"/teampitching/NYY?end_year=20x1", "INVALID_SEASON"},
		{"/teamname/NYY?year=last", "INVALID_SEASON"},
		{"/playerbatting/ruth%20ba01", "INVALID_ID"},
		{"/playername/" + strings.Repeat("a", 40), "INVALID_ID"},
	}
	for _, tt := range tests {
		t.Run(tt.target, func(t *testing.T) {
			rec := get(t, r, tt.target)
			if rec.Code != http.StatusBadRequest {
				t.Fatalf("status = %d, want 400", rec.Code)
			}
			if got := errorCode(t, rec); got != tt.code {
				t.Errorf("code = %s, want %s", got, tt.code)
			}
		})
	}
}

func TestSeasonSpanLimit(t *testing.T) {
	tests := []struct {
		name   string
		cfg    *config.Config
		target string
		ok     bool
	}{
		{"default span", nil, "/teambatting/NYY?start_year=2015&end_year=2024", true},
		{"default span exceeded", nil, "/teambatting/NYY?start_year=1990&end_year=2024", false},
		{"pitching exceeded", nil, "/teampitching/NYY?start_year=1871&end_year=2024", false},
		{"configured span", &config.Config{BRefMaxSeasons: 3}, "/teampitching/NYY?start_year=2019&end_year=2021", true},
		{"configured span exceeded", &config.Config{BRefMaxSeasons: 3}, "/teampitching/NYY?start_year=2019&end_year=2022", false},
		{"single season ignores span", &config.Config{BRefMaxSeasons: 1}, "/teambatting/NYY?start_year=1905", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &fakeService{table: table.New("Name")}
			rec := get(t, newConfiguredRouter(svc, fakeDB{}, tt.cfg), tt.target)
			if tt.ok {
				if rec.Code != http.StatusOK {
					t.Fatalf("status = %d, want 200 (body %s)", rec.Code, rec.Body.String())
				}
				return
			}
			if rec.Code != http.StatusBadRequest {
				t.Fatalf("status = %d, want 400", rec.Code)
			}
			if got := errorCode(t, rec); got != "INVALID_SEASON" {
				t.Errorf("code = %s, want INVALID_SEASON", got)
			}
			if svc.franchiseID != "" {
				t.Errorf("service called for %s despite the rejected range", svc.franchiseID)
			}
		})
	}
}

func TestServiceErrorMapping(t *testing.T) {
	tests := []struct {
		name   string
		target string
		err    error
		status int
		code   string
	}{
		{"team no data", "/teambatting/NYY?start_year=1800", fmt.Errorf("team batting: %w", provider.ErrNoData), http.StatusNotFound, "NOT_FOUND"},
		{"upstream failure", "/teampitching/NYY", fmt.Errorf("fetch: %w", provider.ErrUpstream), http.StatusBadGateway, "UPSTREAM_ERROR"},
		{"breaker open", "/teampitching/NYY", fmt.Errorf("fetch: %w", provider.ErrUnavailable), http.StatusServiceUnavailable, "UPSTREAM_UNAVAILABLE"},
		{"coercion", "/teambatting/NYY", &table.CoercionError{Column: "HR", Value: "x", Type: table.Integer}, http.StatusInternalServerError, "COERCION_FAILED"},
		{"batting empty", "/playerbatting/nobody01", fmt.Errorf("wrap: %w", baseball.ErrEmptyBatting), http.StatusNotFound, "NOT_FOUND"},
		{"pitching empty", "/playerpitching/nobody01", fmt.Errorf("wrap: %w", baseball.ErrEmptyPitching), http.StatusBadRequest, "NO_DATA"},
		{"unknown player", "/playername/nobody01", provider.ErrNotFound, http.StatusNotFound, "NOT_FOUND"},
		{"bad name", "/playerid/Ruth", baseball.ErrInvalidName, http.StatusBadRequest, "INVALID_NAME"},
		{"unknown team name", "/teamname/XXX", provider.ErrNotFound, http.StatusNotFound, "NOT_FOUND"},
		{"deadline", "/teambatting/NYY?start_year=2015&end_year=2024", fmt.Errorf("rate limit wait: %w", context.DeadlineExceeded), http.StatusGatewayTimeout, "UPSTREAM_TIMEOUT"},
		{"anything else", "/franchises", errors.New("connection reset"), http.StatusInternalServerError, "INTERNAL_ERROR"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := get(t, newTestRouter(&fakeService{err: tt.err}, fakeDB{}), tt.target)
			if rec.Code != tt.status {
				t.Fatalf("status = %d, want %d (body %s)", rec.Code, tt.status, rec.Body.String())
			}
			if got := errorCode(t, rec); got != tt.code {
				t.Errorf("code = %s, want %s", got, tt.code)
			}
		})
	}
}

func TestPlayerLookups(t *testing.T) {
	svc := &fakeService{}
	r := newTestRouter(svc, fakeDB{})

	rec := get(t, r, "/playername/ruthba01")
	if got, want := rec.Body.String(), `{"name":"Babe Ruth"}`; got != want {
		t.Errorf("playername body = %s, want %s", got, want)
	}

	rec = get(t, r, "/playerid/Babe%20Ruth")
	if got, want := rec.Body.String(), `{"id":"ruthba01"}`; got != want {
		t.Errorf("playerid body = %s, want %s", got, want)
	}
	if svc.playerID != "Babe Ruth" {
		t.Errorf("name passed = %q, want Babe Ruth", svc.playerID)
	}

	rec = get(t, r, "/teamname/NYY?year=1905")
	if got, want := rec.Body.String(), `{"name":"New York Highlanders","current":"New York Yankees"}`; got != want {
		t.Errorf("teamname body = %s, want %s", got, want)
	}
	if svc.start != 1905 {
		t.Errorf("year passed = %d, want 1905", svc.start)
	}
}

func TestHealthCheckDB(t *testing.T) {
	rec := get(t, newTestRouter(&fakeService{}, fakeDB{}), "/health/db")
	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", rec.Code)
	}

	rec = get(t, newTestRouter(&fakeService{}, fakeDB{err: errors.New("down")}), "/health/db")
	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("status = %d, want 503", rec.Code)
	}
}
