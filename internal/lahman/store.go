package lahman

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/albapepper/scoracle-baseball/internal/metrics"
	"github.com/albapepper/scoracle-baseball/internal/provider"
	"github.com/albapepper/scoracle-baseball/internal/table"
)

// Prepared statement names, registered on every pool connection.
const (
	stmtTeamSeasons    = "lahman_team_seasons"
	stmtFranchises     = "lahman_franchises"
	stmtPlayerBatting  = "lahman_player_batting"
	stmtPlayerPitching = "lahman_player_pitching"
	stmtPersonByBRef   = "lahman_person_by_bbref"
	stmtPeopleByLast   = "lahman_people_by_last"

	sourceName = "lahman"
)

var (
	_ provider.TeamRegistry      = (*Store)(nil)
	_ provider.FranchiseSource   = (*Store)(nil)
	_ provider.PlayerStatsSource = (*Store)(nil)
	_ provider.PeopleSource      = (*Store)(nil)
)

// Store reads the Lahman tables. The pool must have Statements() prepared.
type Store struct {
	pool *pgxpool.Pool
}

// NewStore wraps a connection pool.
func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

// TeamSeasons returns the whole team registry.
func (s *Store) TeamSeasons(ctx context.Context) (out []provider.TeamSeason, err error) {
	defer record("team_seasons", time.Now(), &err)

	rows, err := s.pool.Query(ctx, stmtTeamSeasons)
	if err != nil {
		return nil, fmt.Errorf("query team seasons: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var t provider.TeamSeason
		if err := rows.Scan(&t.TeamID, &t.BRefTeamID, &t.FranchiseID, &t.Year, &t.Name); err != nil {
			return nil, fmt.Errorf("scan team season: %w", err)
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

// Franchises returns every franchise, active or not.
func (s *Store) Franchises(ctx context.Context) (out []provider.Franchise, err error) {
	defer record("franchises", time.Now(), &err)

	rows, err := s.pool.Query(ctx, stmtFranchises)
	if err != nil {
		return nil, fmt.Errorf("query franchises: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var f provider.Franchise
		if err := rows.Scan(&f.FranchiseID, &f.Name, &f.Active, &f.NAAssoc); err != nil {
			return nil, fmt.Errorf("scan franchise: %w", err)
		}
		out = append(out, f)
	}
	return out, rows.Err()
}

// PlayerBatting returns the player's Batting rows in season order.
func (s *Store) PlayerBatting(ctx context.Context, playerID string) (t *table.Table, err error) {
	defer record("player_batting", time.Now(), &err)
	return s.queryTable(ctx, stmtPlayerBatting, playerID)
}

// PlayerPitching returns the player's Pitching rows in season order.
func (s *Store) PlayerPitching(ctx context.Context, playerID string) (t *table.Table, err error) {
	defer record("player_pitching", time.Now(), &err)
	return s.queryTable(ctx, stmtPlayerPitching, playerID)
}

// PersonByBRefID looks a player up by Baseball-Reference id.
func (s *Store) PersonByBRefID(ctx context.Context, id string) (p *provider.Person, err error) {
	defer record("person_by_bbref", time.Now(), &err)

	var out provider.Person
	err = s.pool.QueryRow(ctx, stmtPersonByBRef, id).Scan(&out.PlayerID, &out.BRefID, &out.FirstName, &out.LastName)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("player %s: %w", id, provider.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("query person %s: %w", id, err)
	}
	return &out, nil
}

// PeopleByLastName returns players with the given last name, most recent
// debut first.
func (s *Store) PeopleByLastName(ctx context.Context, last string) (out []provider.Person, err error) {
	defer record("people_by_last", time.Now(), &err)

	rows, err := s.pool.Query(ctx, stmtPeopleByLast, last)
	if err != nil {
		return nil, fmt.Errorf("query people %s: %w", last, err)
	}
	defer rows.Close()

	for rows.Next() {
		var p provider.Person
		if err := rows.Scan(&p.PlayerID, &p.BRefID, &p.FirstName, &p.LastName); err != nil {
			return nil, fmt.Errorf("scan person: %w", err)
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// queryTable reads a result set into a table, keeping column labels.
func (s *Store) queryTable(ctx context.Context, stmt string, args ...any) (*table.Table, error) {
	rows, err := s.pool.Query(ctx, stmt, args...)
	if err != nil {
		return nil, fmt.Errorf("query %s: %w", stmt, err)
	}
	defer rows.Close()

	fields := rows.FieldDescriptions()
	names := make([]string, len(fields))
	for i, f := range fields {
		names[i] = f.Name
	}

	t := table.New(names...)
	for rows.Next() {
		vals, err := rows.Values()
		if err != nil {
			return nil, fmt.Errorf("read %s row: %w", stmt, err)
		}
		row := make(table.Row, len(vals))
		for i, v := range vals {
			row[i] = provider.ExtractValue(v)
		}
		t.Rows = append(t.Rows, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate %s: %w", stmt, err)
	}
	return t, nil
}

func record(operation string, start time.Time, err *error) {
	outcome := "ok"
	switch {
	case *err == nil:
	case errors.Is(*err, provider.ErrNotFound):
		outcome = "no_data"
	default:
		outcome = "error"
	}
	metrics.RecordProviderCall(sourceName, operation, outcome, time.Since(start))
}
