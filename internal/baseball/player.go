package baseball

import (
	"context"
	"fmt"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/albapepper/scoracle-baseball/internal/provider"
	"github.com/albapepper/scoracle-baseball/internal/table"
)

var (
	playerRenames = map[string]string{
		"yearID": "Year",
		"teamID": "Team",
		"lgID":   "LG",
	}
	pitchingRenames = map[string]string{
		"yearID": "Year",
		"teamID": "Team",
		"lgID":   "LG",
		"IPouts": "IP",
	}
	playerDrops = []string{"playerID", "stint"}
)

// PlayerName returns "First Last" for a Baseball-Reference player id.
func (s *Service) PlayerName(ctx context.Context, playerID string) (string, error) {
	p, err := s.people.PersonByBRefID(ctx, playerID)
	if err != nil {
		return "", fmt.Errorf("player name %s: %w", playerID, err)
	}
	return titleCase(p.FirstName) + " " + titleCase(p.LastName), nil
}

// titleCase upper-cases the first letter of every run of letters and
// lower-cases the rest, so any non-letter starts a new word: "o'neill"
// becomes "O'Neill" and "d'arnaud" becomes "D'Arnaud".
func titleCase(s string) string {
	// Casers keep state and are not shared between goroutines.
	upper, lower := cases.Upper(language.English), cases.Lower(language.English)

	var b strings.Builder
	b.Grow(len(s))
	runes := []rune(s)
	for i := 0; i < len(runes); {
		if !unicode.IsLetter(runes[i]) {
			b.WriteRune(runes[i])
			i++
			continue
		}
		j := i + 1
		for j < len(runes) && unicode.IsLetter(runes[j]) {
			j++
		}
		b.WriteString(upper.String(string(runes[i])))
		b.WriteString(lower.String(string(runes[i+1 : j])))
		i = j
	}
	return b.String()
}

// PlayerID finds the Baseball-Reference id for "First Last". Names are
// matched case-insensitively; when no first name matches exactly, the
// most recent player whose first name starts with the given one (or the
// other way round, "Mike" for "Michael") wins.
func (s *Service) PlayerID(ctx context.Context, name string) (string, error) {
	fields := strings.Fields(name)
	if len(fields) < 2 {
		return "", fmt.Errorf("player id %q: %w", name, ErrInvalidName)
	}
	first := strings.ToLower(fields[0])
	last := strings.Join(fields[1:], " ")

	people, err := s.people.PeopleByLastName(ctx, last)
	if err != nil {
		return "", fmt.Errorf("player id %q: %w", name, err)
	}

	var fuzzy string
	for _, p := range people {
		if p.BRefID == "" {
			continue
		}
		given := strings.ToLower(p.FirstName)
		if given == first {
			return p.BRefID, nil
		}
		if fuzzy == "" && given != "" && (strings.HasPrefix(given, first) || strings.HasPrefix(first, given)) {
			fuzzy = p.BRefID
		}
	}
	if fuzzy != "" {
		return fuzzy, nil
	}
	return "", fmt.Errorf("player id %q: %w", name, provider.ErrNotFound)
}

// PlayerBatting returns every season of the player's batting, one row per
// stint, with the franchise each team belonged to.
func (s *Service) PlayerBatting(ctx context.Context, playerID string) (*table.Table, error) {
	t, err := s.players.PlayerBatting(ctx, playerID)
	if err != nil {
		return nil, fmt.Errorf("player batting %s: %w", playerID, err)
	}
	if t.Len() == 0 {
		return nil, fmt.Errorf("player batting %s: %w", playerID, ErrEmptyBatting)
	}

	t.Rename(playerRenames)
	t.Drop(playerDrops...)

	if err := s.addFranchise(ctx, t); err != nil {
		return nil, fmt.Errorf("player batting %s: %w", playerID, err)
	}
	return t, nil
}

// PlayerPitching returns every season of the player's pitching with innings
// pitched in scorebook notation and the franchise.
func (s *Service) PlayerPitching(ctx context.Context, playerID string) (*table.Table, error) {
	t, err := s.players.PlayerPitching(ctx, playerID)
	if err != nil {
		return nil, fmt.Errorf("player pitching %s: %w", playerID, err)
	}
	if t.Len() == 0 {
		return nil, fmt.Errorf("player pitching %s: %w", playerID, ErrEmptyPitching)
	}

	t.Rename(pitchingRenames)
	t.Drop(playerDrops...)

	if t.Has("IP") {
		if err := t.Apply("IP", table.FixIPCell); err != nil {
			return nil, fmt.Errorf("player pitching %s: %w", playerID, err)
		}
	}

	if err := s.addFranchise(ctx, t); err != nil {
		return nil, fmt.Errorf("player pitching %s: %w", playerID, err)
	}
	return t, nil
}

// addFranchise appends franchID from the Team and Year columns using one
// registry snapshot for the whole table.
func (s *Service) addFranchise(ctx context.Context, t *table.Table) error {
	r, err := s.resolver(ctx)
	if err != nil {
		return err
	}
	ids, err := r.FranchiseColumn(t, "Team", "Year")
	if err != nil {
		return err
	}
	return t.AddColumn("franchID", ids)
}
