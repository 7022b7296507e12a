// Package provider defines the contracts the API expects from its statistics
// sources and the records they return.
//
// Two sources back the API: the Lahman database (team registry, franchises,
// historical player tables, people) and Baseball-Reference team pages
// (season batting and pitching splits). Both report failures through the
// sentinel errors below so callers can tell "no data" apart from "source
// unavailable".
package provider

import (
	"context"
	"errors"

	"github.com/albapepper/scoracle-baseball/internal/table"
)

var (
	// ErrNoData means the source answered but holds nothing for the request
	// (no team page for the season, no table on the page).
	ErrNoData = errors.New("no data for request")

	// ErrNotFound means an identifier could not be resolved.
	ErrNotFound = errors.New("not found")

	// ErrUpstream means the source could not be reached or answered with
	// something unusable.
	ErrUpstream = errors.New("upstream failure")

	// ErrUnavailable means calls to the source are being short-circuited.
	ErrUnavailable = errors.New("upstream unavailable")
)

// TeamSeason is one row of the team registry.
type TeamSeason struct {
	TeamID      string
	BRefTeamID  string
	FranchiseID string
	Year        int
	Name        string
}

// Franchise is one row of the franchise list.
type Franchise struct {
	FranchiseID string
	Name        string
	Active      string
	NAAssoc     string
}

// Person is a player identity record.
type Person struct {
	PlayerID  string
	BRefID    string
	FirstName string
	LastName  string
}

// TeamRegistry lists every team season.
type TeamRegistry interface {
	TeamSeasons(ctx context.Context) ([]TeamSeason, error)
}

// FranchiseSource lists franchises.
type FranchiseSource interface {
	Franchises(ctx context.Context) ([]Franchise, error)
}

// TeamStatsSource returns per-player team splits for a season range. An
// end of 0 means the start season only.
type TeamStatsSource interface {
	TeamBatting(ctx context.Context, teamRefID string, start, end int) (*table.Table, error)
	TeamPitching(ctx context.Context, teamRefID string, start, end int) (*table.Table, error)
}

// PlayerStatsSource returns a player's rows from the historical tables.
type PlayerStatsSource interface {
	PlayerBatting(ctx context.Context, playerID string) (*table.Table, error)
	PlayerPitching(ctx context.Context, playerID string) (*table.Table, error)
}

// PeopleSource looks players up by id or name.
type PeopleSource interface {
	PersonByBRefID(ctx context.Context, id string) (*Person, error)
	PeopleByLastName(ctx context.Context, last string) ([]Person, error)
}
