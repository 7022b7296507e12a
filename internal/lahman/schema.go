// Package lahman stores the Lahman baseball database in Postgres and serves
// the team registry, franchise list, historical player tables and people
// lookups the API needs.
//
// Column names keep the Lahman CSV spelling (yearID, teamIDBR, 2B, ...) so
// rows read back out carry the same labels the API has always returned.
package lahman

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type colType int

const (
	colText colType = iota
	colInt
	colFloat
)

func (c colType) sql() string {
	switch c {
	case colInt:
		return "INTEGER"
	case colFloat:
		return "DOUBLE PRECISION"
	default:
		return "TEXT"
	}
}

type column struct {
	Name string
	Type colType
}

// tableDef describes one Lahman table and the CSV it is loaded from.
type tableDef struct {
	Name    string
	File    string
	Columns []column
	Indexes [][]string
}

func (d tableDef) columnNames() []string {
	names := make([]string, len(d.Columns))
	for i, c := range d.Columns {
		names[i] = c.Name
	}
	return names
}

func ints(names ...string) []column {
	out := make([]column, len(names))
	for i, n := range names {
		out[i] = column{n, colInt}
	}
	return out
}

func texts(names ...string) []column {
	out := make([]column, len(names))
	for i, n := range names {
		out[i] = column{n, colText}
	}
	return out
}

func cols(groups ...[]column) []column {
	var out []column
	for _, g := range groups {
		out = append(out, g...)
	}
	return out
}

// Table names.
const (
	TeamsTable          = "teams"
	TeamsFranchiseTable = "teams_franchises"
	PeopleTable         = "people"
	BattingTable        = "batting"
	PitchingTable       = "pitching"
)

var (
	teamsDef = tableDef{
		Name: TeamsTable,
		File: "Teams.csv",
		Columns: cols(
			ints("yearID"),
			texts("lgID", "teamID", "franchID", "divID"),
			ints("Rank", "G", "W", "L"),
			texts("name", "park", "teamIDBR", "teamIDlahman45", "teamIDretro"),
		),
		Indexes: [][]string{{"franchID", "yearID"}, {"teamID", "yearID"}},
	}

	franchisesDef = tableDef{
		Name:    TeamsFranchiseTable,
		File:    "TeamsFranchises.csv",
		Columns: texts("franchID", "franchName", "active", "NAassoc"),
	}

	peopleDef = tableDef{
		Name:    PeopleTable,
		File:    "People.csv",
		Columns: texts("playerID", "nameFirst", "nameLast", "nameGiven", "debut", "finalGame", "retroID", "bbrefID"),
		Indexes: [][]string{{"bbrefID"}, {"nameLast"}},
	}

	battingDef = tableDef{
		Name: BattingTable,
		File: "Batting.csv",
		Columns: cols(
			texts("playerID"),
			ints("yearID", "stint"),
			texts("teamID", "lgID"),
			ints("G", "AB", "R", "H", "2B", "3B", "HR", "RBI", "SB", "CS", "BB", "SO",
				"IBB", "HBP", "SH", "SF", "GIDP"),
		),
		Indexes: [][]string{{"playerID"}},
	}

	pitchingDef = tableDef{
		Name: PitchingTable,
		File: "Pitching.csv",
		Columns: cols(
			texts("playerID"),
			ints("yearID", "stint"),
			texts("teamID", "lgID"),
			ints("W", "L", "G", "GS", "CG", "SHO", "SV", "IPouts", "H", "ER", "HR", "BB", "SO"),
			[]column{{"BAOpp", colFloat}, {"ERA", colFloat}},
			ints("IBB", "WP", "HBP", "BK", "BFP", "GF", "R", "SH", "SF", "GIDP"),
		),
		Indexes: [][]string{{"playerID"}},
	}

	// tables lists every table in load order.
	tables = []tableDef{teamsDef, franchisesDef, peopleDef, battingDef, pitchingDef}
)

func ident(name string) string {
	return pgx.Identifier{name}.Sanitize()
}

func identList(names []string) string {
	quoted := make([]string, len(names))
	for i, n := range names {
		quoted[i] = ident(n)
	}
	return strings.Join(quoted, ", ")
}

func createTableSQL(d tableDef) string {
	defs := make([]string, len(d.Columns))
	for i, c := range d.Columns {
		defs[i] = ident(c.Name) + " " + c.Type.sql()
	}
	return fmt.Sprintf("CREATE TABLE IF NOT EXISTS %s (\n\t%s\n)", ident(d.Name), strings.Join(defs, ",\n\t"))
}

func createIndexSQL(d tableDef, cols []string) string {
	name := d.Name + "_" + strings.ToLower(strings.Join(cols, "_")) + "_idx"
	return fmt.Sprintf("CREATE INDEX IF NOT EXISTS %s ON %s (%s)", ident(name), ident(d.Name), identList(cols))
}

// CreateSchema creates every Lahman table and index that does not exist.
func CreateSchema(ctx context.Context, pool *pgxpool.Pool) error {
	for _, d := range tables {
		if _, err := pool.Exec(ctx, createTableSQL(d)); err != nil {
			return fmt.Errorf("create table %s: %w", d.Name, err)
		}
		for _, idx := range d.Indexes {
			if _, err := pool.Exec(ctx, createIndexSQL(d, idx)); err != nil {
				return fmt.Errorf("create index on %s: %w", d.Name, err)
			}
		}
	}
	return nil
}

// Statements returns the prepared statements the store issues.
func Statements() map[string]string {
	return map[string]string{
		stmtTeamSeasons: fmt.Sprintf(
			`SELECT COALESCE("teamID", ''), COALESCE("teamIDBR", ''), COALESCE("franchID", ''), COALESCE("yearID", 0), COALESCE("name", '')
			 FROM %s ORDER BY "yearID", "teamID"`, ident(TeamsTable)),
		stmtFranchises: fmt.Sprintf(
			`SELECT COALESCE("franchID", ''), COALESCE("franchName", ''), COALESCE("active", ''), COALESCE("NAassoc", '')
			 FROM %s ORDER BY "franchID"`, ident(TeamsFranchiseTable)),
		stmtPlayerBatting: fmt.Sprintf(`SELECT %s FROM %s WHERE "playerID" = $1 ORDER BY "yearID", "stint"`,
			identList(battingDef.columnNames()), ident(BattingTable)),
		stmtPlayerPitching: fmt.Sprintf(`SELECT %s FROM %s WHERE "playerID" = $1 ORDER BY "yearID", "stint"`,
			identList(pitchingDef.columnNames()), ident(PitchingTable)),
		stmtPersonByBRef: fmt.Sprintf(
			`SELECT "playerID", COALESCE("bbrefID", ''), COALESCE("nameFirst", ''), COALESCE("nameLast", '')
			 FROM %s WHERE "bbrefID" = $1 LIMIT 1`, ident(PeopleTable)),
		stmtPeopleByLast: fmt.Sprintf(
			`SELECT "playerID", COALESCE("bbrefID", ''), COALESCE("nameFirst", ''), COALESCE("nameLast", '')
			 FROM %s WHERE lower("nameLast") = lower($1) ORDER BY "debut" DESC NULLS LAST`, ident(PeopleTable)),
	}
}
