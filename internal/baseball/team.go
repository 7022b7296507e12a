package baseball

import (
	"context"
	"errors"
	"fmt"

	"github.com/albapepper/scoracle-baseball/internal/provider"
	"github.com/albapepper/scoracle-baseball/internal/table"
)

// TeamName is a franchise's name in a given season and today.
type TeamName struct {
	Name    string `json:"name"`
	Current string `json:"current,omitempty"`
}

// TeamBatting returns the franchise's player batting lines for seasons
// start..end, cleaned and typed. end == 0 means start only.
func (s *Service) TeamBatting(ctx context.Context, franchiseID string, start, end int) (*table.Table, error) {
	refID, err := s.teamRefID(ctx, franchiseID, start)
	if err != nil {
		return nil, err
	}

	t, err := s.teams.TeamBatting(ctx, refID, start, end)
	if err != nil {
		return nil, fmt.Errorf("team batting %s: %w", franchiseID, err)
	}
	if err := table.Normalize(t, table.BattingTypes); err != nil {
		return nil, fmt.Errorf("team batting %s: %w", franchiseID, err)
	}
	return t, nil
}

// TeamPitching returns the franchise's player pitching lines for seasons
// start..end, cleaned and typed. end == 0 means start only.
func (s *Service) TeamPitching(ctx context.Context, franchiseID string, start, end int) (*table.Table, error) {
	refID, err := s.teamRefID(ctx, franchiseID, start)
	if err != nil {
		return nil, err
	}

	t, err := s.teams.TeamPitching(ctx, refID, start, end)
	if err != nil {
		return nil, fmt.Errorf("team pitching %s: %w", franchiseID, err)
	}
	if err := table.Normalize(t, table.PitchingTypes); err != nil {
		return nil, fmt.Errorf("team pitching %s: %w", franchiseID, err)
	}
	return t, nil
}

// teamRefID resolves the Baseball-Reference team id for the start season.
// An unknown franchise resolves to "" and the source reports no data.
func (s *Service) teamRefID(ctx context.Context, franchiseID string, year int) (string, error) {
	r, err := s.resolver(ctx)
	if err != nil {
		return "", err
	}
	refID, err := r.TeamRefID(franchiseID, year)
	if errors.Is(err, provider.ErrNotFound) {
		s.logger.Debug("Franchise not in registry", "franchise", franchiseID, "year", year)
		return "", nil
	}
	return refID, err
}

// TeamName returns the franchise's name for year, falling back to the
// season before.
func (s *Service) TeamName(ctx context.Context, franchiseID string, year int) (TeamName, error) {
	r, err := s.resolver(ctx)
	if err != nil {
		return TeamName{}, err
	}
	name := r.TeamName(franchiseID, year)
	if name == "" {
		return TeamName{}, fmt.Errorf("team name %s %d: %w", franchiseID, year, provider.ErrNotFound)
	}
	return TeamName{Name: name, Current: table.CurrentTeamNames[franchiseID]}, nil
}
