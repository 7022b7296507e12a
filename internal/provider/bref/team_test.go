package bref

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"reflect"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/albapepper/scoracle-baseball/internal/provider"
	"github.com/albapepper/scoracle-baseball/internal/table"
)

const battingPage = `<html><body>
<table class="sortable stats_table" id="players_standard_batting">
<thead>
<tr><th>Rk</th><th>Pos</th><th>Name</th><th>Age</th><th>G</th><th>HR</th><th>BA</th></tr>
</thead>
<tbody>
<tr><th>1</th><td>C</td><td>Jose Trevino</td><td>29</td><td>115</td><td>11</td><td>.248</td></tr>
<tr class="thead"><th>Rk</th><td>Pos</td><td>Name</td><td>Age</td><td>G</td><td>HR</td><td>BA</td></tr>
<tr><th>2</th><td>RF</td><td>Aaron Judge*</td><td>30</td><td>157</td><td>62</td><td>.311</td></tr>
<tr><th>3</th><td>DH</td><td>Giancarlo Stanton#</td><td>32</td><td>110</td><td>31</td><td></td></tr>
</tbody>
<tfoot>
<tr><th></th><td></td><td>Team Totals</td><td>29.8</td><td>162</td><td>254</td><td>.241</td></tr>
</tfoot>
</table>
</body></html>`

const pitchingPage = `<html><body>
<div id="all_players_standard_pitching">
<!--
<table class="sortable stats_table" id="players_standard_pitching">
<thead><tr><th>Rk</th><th>Pos</th><th>Name</th><th>Age</th><th>W</th><th>L</th><th>IP</th></tr></thead>
<tbody>
<tr><th>1</th><td>SP</td><td>Gerrit Cole</td><td>31</td><td>13</td><td>8</td><td>200.2</td></tr>
</tbody>
</table>
-->
</div>
</body></html>`

func TestParseTeamTable(t *testing.T) {
	raw, err := parseTeamTable([]byte(battingPage), Batting)
	if err != nil {
		t.Fatalf("parseTeamTable: %v", err)
	}

	if want := []string{"Pos", "Name", "Age", "G", "HR", "BA"}; !reflect.DeepEqual(raw.Columns, want) {
		t.Errorf("columns = %v, want %v", raw.Columns, want)
	}
	if len(raw.Rows) != 3 {
		t.Fatalf("rows = %d, want 3 (%v)", len(raw.Rows), raw.Rows)
	}
	if raw.Rows[1][1] != "Aaron Judge" || raw.Rows[2][1] != "Giancarlo Stanton" {
		t.Errorf("footnote markers not stripped: %v / %v", raw.Rows[1][1], raw.Rows[2][1])
	}
}

func TestParseTeamTableInsideComment(t *testing.T) {
	raw, err := parseTeamTable([]byte(pitchingPage), Pitching)
	if err != nil {
		t.Fatalf("parseTeamTable: %v", err)
	}
	if len(raw.Rows) != 1 || raw.Rows[0][1] != "Gerrit Cole" {
		t.Errorf("rows = %v", raw.Rows)
	}
}

func TestParseTeamTableMissing(t *testing.T) {
	_, err := parseTeamTable([]byte("<html><body><p>nothing</p></body></html>"), Pitching)
	if !errors.Is(err, provider.ErrNoData) {
		t.Errorf("err = %v, want ErrNoData", err)
	}
}

func newTestClient(t *testing.T, handler http.HandlerFunc) (*Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(srv.URL, "test-agent", 0, 5*time.Second, nil), srv
}

func TestTeamBattingSeasonRange(t *testing.T) {
	var paths []string
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		paths = append(paths, r.URL.Path)
		if ua := r.Header.Get("User-Agent"); ua != "test-agent" {
			t.Errorf("User-Agent = %q", ua)
		}
		fmt.Fprint(w, battingPage)
	})

	got, err := c.TeamBatting(context.Background(), "NYY", 2021, 2022)
	if err != nil {
		t.Fatalf("TeamBatting: %v", err)
	}

	if want := []string{"/teams/NYY/2021.shtml", "/teams/NYY/2022.shtml"}; !reflect.DeepEqual(paths, want) {
		t.Errorf("paths = %v, want %v", paths, want)
	}
	if want := []string{"Pos", "Name", "Year", "Age", "G", "HR", "BA"}; !reflect.DeepEqual(got.Columns, want) {
		t.Errorf("columns = %v, want %v", got.Columns, want)
	}
	if got.Len() != 6 {
		t.Fatalf("rows = %d, want 6", got.Len())
	}
	years, _ := got.Column("Year")
	if years[0] != int64(2021) {
		t.Errorf("row 0 Year = %#v, want 2021", years[0])
	}
	if years[5] != int64(2022) {
		t.Errorf("row 5 Year = %#v, want 2022", years[5])
	}

	if err := table.Normalize(got, table.BattingTypes); err != nil {
		t.Fatalf("Normalize: %v", err)
	}
	if got.Len() != 4 {
		t.Errorf("rows after Normalize = %d, want 4", got.Len())
	}
}

func TestTeamBattingDefaultsEndToStart(t *testing.T) {
	var calls int32
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		fmt.Fprint(w, battingPage)
	})

	if _, err := c.TeamBatting(context.Background(), "NYY", 2022, 0); err != nil {
		t.Fatalf("TeamBatting: %v", err)
	}
	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}
}

func TestTeamStatsErrors(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch {
		case strings.Contains(r.URL.Path, "/1800."):
			http.NotFound(w, r)
		case strings.Contains(r.URL.Path, "/BOOM/"):
			http.Error(w, "boom", http.StatusInternalServerError)
		default:
			fmt.Fprint(w, "<html></html>")
		}
	})
	ctx := context.Background()

	if _, err := c.TeamBatting(ctx, "NYY", 1800, 0); !errors.Is(err, provider.ErrNoData) {
		t.Errorf("404 page err = %v, want ErrNoData", err)
	}
	if _, err := c.TeamPitching(ctx, "NYY", 2022, 0); !errors.Is(err, provider.ErrNoData) {
		t.Errorf("missing table err = %v, want ErrNoData", err)
	}
	if _, err := c.TeamBatting(ctx, "", 2022, 0); !errors.Is(err, provider.ErrNoData) {
		t.Errorf("empty team err = %v, want ErrNoData", err)
	}
	if _, err := c.TeamBatting(ctx, "NYY", 2022, 2021); !errors.Is(err, provider.ErrNoData) {
		t.Errorf("reversed range err = %v, want ErrNoData", err)
	}
	if _, err := c.TeamBatting(ctx, "BOOM", 2022, 0); !errors.Is(err, provider.ErrUpstream) {
		t.Errorf("500 err = %v, want ErrUpstream", err)
	}
}

func TestBreakerOpensAfterFailures(t *testing.T) {
	var calls int32
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		http.Error(w, "down", http.StatusBadGateway)
	})
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		if _, err := c.TeamBatting(ctx, "NYY", 2022, 0); !errors.Is(err, provider.ErrUpstream) {
			t.Fatalf("call %d err = %v, want ErrUpstream", i, err)
		}
	}
	_, err := c.TeamBatting(ctx, "NYY", 2022, 0)
	if !errors.Is(err, provider.ErrUnavailable) {
		t.Errorf("err = %v, want ErrUnavailable", err)
	}
	if calls != 5 {
		t.Errorf("upstream calls = %d, want 5", calls)
	}
}

func TestThrottleWaitPastDeadline(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		fmt.Fprint(w, battingPage)
	}))
	t.Cleanup(srv.Close)
	c := NewClient(srv.URL, "test-agent", 1, 5*time.Second, nil)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	// One request per minute: the second season cannot start before the deadline.
	_, err := c.TeamBatting(ctx, "NYY", 2021, 2022)
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("err = %v, want DeadlineExceeded", err)
	}
	if errors.Is(err, provider.ErrUpstream) {
		t.Errorf("err = %v, should not read as an upstream failure", err)
	}
	if calls != 1 {
		t.Errorf("upstream calls = %d, want 1", calls)
	}
}
