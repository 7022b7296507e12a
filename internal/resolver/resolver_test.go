package resolver

import (
	"errors"
	"reflect"
	"testing"

	"github.com/albapepper/scoracle-baseball/internal/provider"
	"github.com/albapepper/scoracle-baseball/internal/table"
)

var registry = []provider.TeamSeason{
	{TeamID: "NYA", BRefTeamID: "NYY", FranchiseID: "NYY", Year: 2022, Name: "New York Yankees"},
	{TeamID: "NYA", BRefTeamID: "NYY", FranchiseID: "NYY", Year: 2023, Name: "New York Yankees"},
	{TeamID: "CLE", BRefTeamID: "CLE", FranchiseID: "CLE", Year: 2021, Name: "Cleveland Indians"},
	{TeamID: "CLE", BRefTeamID: "CLG", FranchiseID: "CLE", Year: 2022, Name: "Cleveland Guardians"},
	{TeamID: "MON", BRefTeamID: "MON", FranchiseID: "WSN", Year: 2004, Name: "Montreal Expos"},
	{TeamID: "WAS", BRefTeamID: "WSN", FranchiseID: "WSN", Year: 2005, Name: "Washington Nationals"},
}

func TestTeamRefIDExactYear(t *testing.T) {
	r := New(registry)

	got, err := r.TeamRefID("CLE", 2022)
	if err != nil {
		t.Fatalf("TeamRefID: %v", err)
	}
	if got != "CLG" {
		t.Errorf("TeamRefID(CLE, 2022) = %q, want CLG", got)
	}
}

func TestTeamRefIDFallsBackOneYear(t *testing.T) {
	r := New(registry)

	got, err := r.TeamRefID("NYY", 2024)
	if err != nil {
		t.Fatalf("TeamRefID: %v", err)
	}
	if got != "NYY" {
		t.Errorf("TeamRefID(NYY, 2024) = %q, want NYY", got)
	}

	_, err = r.TeamRefID("NYY", 2025)
	if !errors.Is(err, provider.ErrNotFound) {
		t.Errorf("TeamRefID(NYY, 2025) err = %v, want ErrNotFound", err)
	}
}

func TestTeamRefIDOnlyPreviousYear(t *testing.T) {
	r := New([]provider.TeamSeason{
		{TeamID: "SEA", BRefTeamID: "SEA", FranchiseID: "SEA", Year: 2019},
	})

	if got, err := r.TeamRefID("SEA", 2020); err != nil || got != "SEA" {
		t.Errorf("TeamRefID(SEA, Y) = %q, %v; want SEA", got, err)
	}
	if _, err := r.TeamRefID("SEA", 2018); !errors.Is(err, provider.ErrNotFound) {
		t.Errorf("TeamRefID(SEA, Y-2) err = %v, want ErrNotFound", err)
	}
}

func TestTeamName(t *testing.T) {
	r := New(registry)

	tests := []struct {
		franchise string
		year      int
		want      string
	}{
		{"CLE", 2021, "Cleveland Indians"},
		{"CLE", 2023, "Cleveland Guardians"},
		{"WSN", 2004, "Montreal Expos"},
		{"WSN", 2006, "Washington Nationals"},
		{"WSN", 2007, ""},
		{"XXX", 2022, ""},
	}
	for _, tt := range tests {
		if got := r.TeamName(tt.franchise, tt.year); got != tt.want {
			t.Errorf("TeamName(%s, %d) = %q, want %q", tt.franchise, tt.year, got, tt.want)
		}
	}
}

func TestFranchiseIDNoFallback(t *testing.T) {
	r := New(registry)

	if got, err := r.FranchiseID("MON", 2004); err != nil || got != "WSN" {
		t.Errorf("FranchiseID(MON, 2004) = %q, %v; want WSN", got, err)
	}
	if _, err := r.FranchiseID("MON", 2005); !errors.Is(err, provider.ErrNotFound) {
		t.Errorf("FranchiseID(MON, 2005) err = %v, want ErrNotFound", err)
	}
}

func TestFranchiseColumn(t *testing.T) {
	r := New(registry)
	tbl := &table.Table{
		Columns: []string{"Year", "Team"},
		Rows: []table.Row{
			{int64(2004), "MON"},
			{int64(2005), "WAS"},
			{int64(2022), "NYA"},
		},
	}

	got, err := r.FranchiseColumn(tbl, "Team", "Year")
	if err != nil {
		t.Fatalf("FranchiseColumn: %v", err)
	}
	if want := []any{"WSN", "WSN", "NYY"}; !reflect.DeepEqual(got, want) {
		t.Errorf("FranchiseColumn = %v, want %v", got, want)
	}

	tbl.Rows = append(tbl.Rows, table.Row{int64(1900), "ZZZ"})
	if _, err := r.FranchiseColumn(tbl, "Team", "Year"); !errors.Is(err, provider.ErrNotFound) {
		t.Errorf("unresolved team err = %v, want ErrNotFound", err)
	}
}
