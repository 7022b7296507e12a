package bref

import (
	"context"
	"fmt"
	"net/url"
	"slices"

	"github.com/albapepper/scoracle-baseball/internal/provider"
	"github.com/albapepper/scoracle-baseball/internal/table"
)

var _ provider.TeamStatsSource = (*Client)(nil)

// TeamBatting returns the team's player batting lines for every season in
// [start, end]. end == 0 means start only.
func (c *Client) TeamBatting(ctx context.Context, teamRefID string, start, end int) (*table.Table, error) {
	return c.teamSeasons(ctx, Batting, teamRefID, start, end)
}

// TeamPitching returns the team's player pitching lines for every season in
// [start, end]. end == 0 means start only.
func (c *Client) TeamPitching(ctx context.Context, teamRefID string, start, end int) (*table.Table, error) {
	return c.teamSeasons(ctx, Pitching, teamRefID, start, end)
}

func (c *Client) teamSeasons(ctx context.Context, kind Kind, teamRefID string, start, end int) (*table.Table, error) {
	if end == 0 {
		end = start
	}
	if teamRefID == "" {
		return nil, fmt.Errorf("team %s: empty team id: %w", kind, provider.ErrNoData)
	}
	if end < start {
		return nil, fmt.Errorf("team %s %s: seasons %d-%d: %w", kind, teamRefID, start, end, provider.ErrNoData)
	}

	var out *table.Table
	for season := start; season <= end; season++ {
		path := fmt.Sprintf("/teams/%s/%d.shtml", url.PathEscape(teamRefID), season)
		page, err := c.get(ctx, "team_"+kind.String(), path)
		if err != nil {
			return nil, fmt.Errorf("team %s %s %d: %w", kind, teamRefID, season, err)
		}

		raw, err := parseTeamTable(page, kind)
		if err != nil {
			return nil, fmt.Errorf("team %s %s %d: %w", kind, teamRefID, season, err)
		}

		t := withSeason(raw, season)
		if out == nil {
			out = t
			continue
		}
		if !slices.Equal(out.Columns, t.Columns) {
			c.logger.Warn("Team table layout changed between seasons",
				"team", teamRefID, "kind", kind.String(), "season", season)
			t = align(t, out.Columns)
		}
		out.Rows = append(out.Rows, t.Rows...)
	}

	c.logger.Debug("Fetched team table", "team", teamRefID, "kind", kind.String(),
		"start", start, "end", end, "rows", out.Len())
	return out, nil
}

// withSeason converts a parsed table and inserts a Year column after Name.
func withSeason(raw *rawTable, season int) *table.Table {
	at := slices.Index(raw.Columns, "Name") + 1
	if at <= 0 {
		at = min(2, len(raw.Columns))
	}

	cols := slices.Insert(slices.Clone(raw.Columns), at, "Year")
	t := table.New(cols...)
	for _, r := range raw.Rows {
		row := make(table.Row, 0, len(cols))
		for _, cell := range r[:at] {
			row = append(row, provider.ExtractValue(cell))
		}
		row = append(row, int64(season))
		for _, cell := range r[at:] {
			row = append(row, provider.ExtractValue(cell))
		}
		t.Rows = append(t.Rows, row)
	}
	return t
}

// align reorders t's cells to match columns; unknown columns become empty.
func align(t *table.Table, columns []string) *table.Table {
	out := table.New(columns...)
	for _, r := range t.Rows {
		row := make(table.Row, len(columns))
		for i, c := range columns {
			if j := t.Index(c); j >= 0 {
				row[i] = r[j]
			}
		}
		out.Rows = append(out.Rows, row)
	}
	return out
}
