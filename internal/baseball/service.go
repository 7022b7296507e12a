// Package baseball implements the API operations: it resolves identifiers,
// calls the statistics sources and shapes their tables for the wire.
package baseball

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/albapepper/scoracle-baseball/internal/provider"
	"github.com/albapepper/scoracle-baseball/internal/resolver"
	"github.com/albapepper/scoracle-baseball/internal/table"
)

var (
	// ErrEmptyBatting means the player has no batting rows.
	ErrEmptyBatting = errors.New("no batting data for player")

	// ErrEmptyPitching means the player has no pitching rows.
	ErrEmptyPitching = errors.New("no pitching data for player")

	// ErrInvalidName means a player name could not be split into first and
	// last name.
	ErrInvalidName = errors.New("player name must be \"First Last\"")
)

// Sources bundles the statistics sources a Service reads from.
type Sources struct {
	Registry   provider.TeamRegistry
	Franchises provider.FranchiseSource
	Teams      provider.TeamStatsSource
	Players    provider.PlayerStatsSource
	People     provider.PeopleSource
}

// Service runs the API operations. It holds no per-request state and is
// safe for concurrent use.
type Service struct {
	registry   provider.TeamRegistry
	franchises provider.FranchiseSource
	teams      provider.TeamStatsSource
	players    provider.PlayerStatsSource
	people     provider.PeopleSource
	logger     *slog.Logger
}

// NewService constructs a Service.
func NewService(src Sources, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		registry:   src.Registry,
		franchises: src.Franchises,
		teams:      src.Teams,
		players:    src.Players,
		people:     src.People,
		logger:     logger,
	}
}

// resolver indexes a fresh snapshot of the team registry.
func (s *Service) resolver(ctx context.Context) (*resolver.Resolver, error) {
	seasons, err := s.registry.TeamSeasons(ctx)
	if err != nil {
		return nil, fmt.Errorf("load team registry: %w", err)
	}
	return resolver.New(seasons), nil
}

// Franchises returns the active franchises.
func (s *Service) Franchises(ctx context.Context) (*table.Table, error) {
	all, err := s.franchises.Franchises(ctx)
	if err != nil {
		return nil, fmt.Errorf("franchises: %w", err)
	}

	t := table.New("franchID", "franchName", "active", "NAassoc")
	for _, f := range all {
		if f.Active != "Y" {
			continue
		}
		var assoc any
		if f.NAAssoc != "" {
			assoc = f.NAAssoc
		}
		t.Rows = append(t.Rows, table.Row{f.FranchiseID, f.Name, f.Active, assoc})
	}
	return t, nil
}
