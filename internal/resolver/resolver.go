// Package resolver maps franchise and team identifiers across seasons.
//
// Team ids and franchise-to-team mappings change as clubs move and rename,
// and the registry can lag a season behind. Lookups by franchise therefore
// try the exact year and then the year before; lookups by team id are exact.
package resolver

import (
	"fmt"

	"github.com/albapepper/scoracle-baseball/internal/provider"
	"github.com/albapepper/scoracle-baseball/internal/table"
)

type seasonKey struct {
	id   string
	year int
}

// Resolver indexes one snapshot of the team registry.
type Resolver struct {
	byFranchise map[seasonKey]provider.TeamSeason
	byTeam      map[seasonKey]provider.TeamSeason
}

// New indexes the registry. When several rows share a key the first wins.
func New(records []provider.TeamSeason) *Resolver {
	r := &Resolver{
		byFranchise: make(map[seasonKey]provider.TeamSeason, len(records)),
		byTeam:      make(map[seasonKey]provider.TeamSeason, len(records)),
	}
	for _, rec := range records {
		fk := seasonKey{rec.FranchiseID, rec.Year}
		if _, ok := r.byFranchise[fk]; !ok {
			r.byFranchise[fk] = rec
		}
		tk := seasonKey{rec.TeamID, rec.Year}
		if _, ok := r.byTeam[tk]; !ok {
			r.byTeam[tk] = rec
		}
	}
	return r
}

// Season returns the franchise's registry row for year, falling back to
// year-1.
func (r *Resolver) Season(franchiseID string, year int) (provider.TeamSeason, error) {
	if rec, ok := r.byFranchise[seasonKey{franchiseID, year}]; ok {
		return rec, nil
	}
	if rec, ok := r.byFranchise[seasonKey{franchiseID, year - 1}]; ok {
		return rec, nil
	}
	return provider.TeamSeason{}, fmt.Errorf("franchise %s in %d: %w", franchiseID, year, provider.ErrNotFound)
}

// TeamRefID returns the Baseball-Reference team id for a franchise season.
func (r *Resolver) TeamRefID(franchiseID string, year int) (string, error) {
	rec, err := r.Season(franchiseID, year)
	if err != nil {
		return "", err
	}
	return rec.BRefTeamID, nil
}

// TeamName returns the team's display name for a franchise season, or "".
func (r *Resolver) TeamName(franchiseID string, year int) string {
	rec, err := r.Season(franchiseID, year)
	if err != nil {
		return ""
	}
	return rec.Name
}

// FranchiseID returns the franchise a team id belonged to in year.
func (r *Resolver) FranchiseID(teamID string, year int) (string, error) {
	rec, ok := r.byTeam[seasonKey{teamID, year}]
	if !ok {
		return "", fmt.Errorf("team %s in %d: %w", teamID, year, provider.ErrNotFound)
	}
	return rec.FranchiseID, nil
}

// FranchiseColumn derives a franchise id for every row of t from its team
// and year columns.
func (r *Resolver) FranchiseColumn(t *table.Table, teamCol, yearCol string) ([]any, error) {
	ti, yi := t.Index(teamCol), t.Index(yearCol)
	if ti < 0 || yi < 0 {
		return nil, fmt.Errorf("columns %q and %q are required", teamCol, yearCol)
	}
	out := make([]any, len(t.Rows))
	for i, row := range t.Rows {
		team, _ := row[ti].(string)
		year, ok := table.Int64(row[yi])
		if !ok {
			return nil, fmt.Errorf("row %d: year %v: %w", i, row[yi], provider.ErrNotFound)
		}
		id, err := r.FranchiseID(team, int(year))
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i, err)
		}
		out[i] = id
	}
	return out, nil
}
