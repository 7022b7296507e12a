package table

// ColumnType is the semantic type a column is coerced to.
type ColumnType int

const (
	Integer ColumnType = iota + 1
	Float
)

func (c ColumnType) String() string {
	switch c {
	case Integer:
		return "integer"
	case Float:
		return "float"
	}
	return "unknown"
}

// TypeMap maps column names to their semantic type. Columns absent from the
// map are passed through untouched.
type TypeMap map[string]ColumnType

func typeMap(ints, floats []string) TypeMap {
	m := make(TypeMap, len(ints)+len(floats))
	for _, c := range ints {
		m[c] = Integer
	}
	for _, c := range floats {
		m[c] = Float
	}
	return m
}

// BattingTypes types the Baseball-Reference team batting table.
var BattingTypes = typeMap(
	[]string{"Year", "Age", "G", "PA", "AB", "R", "H", "2B", "3B", "HR", "RBI", "SB", "CS", "BB", "SO",
		"OPS+", "TB", "GDP", "HBP", "SH", "SF", "IBB"},
	[]string{"BA", "OBP", "SLG", "OPS"},
)

// PitchingTypes types the Baseball-Reference team pitching table.
var PitchingTypes = typeMap(
	[]string{"Year", "Age", "W", "L", "G", "GS", "GF", "CG", "SHO", "SV", "H", "R", "ER", "HR", "BB",
		"IBB", "SO", "HBP", "BK", "WP", "BF", "ERA+"},
	[]string{"IP", "FIP", "WHIP", "H9", "HR9", "BB9", "SO9", "SO/W"},
)

// CurrentTeamNames maps active franchise ids to the club's present-day name.
var CurrentTeamNames = map[string]string{
	"ARI": "Arizona Diamondbacks",
	"ATL": "Atlanta Braves",
	"BAL": "Baltimore Orioles",
	"BOS": "Boston Red Sox",
	"CHC": "Chicago Cubs",
	"CHW": "Chicago White Sox",
	"CIN": "Cincinnati Reds",
	"CLE": "Cleveland Guardians",
	"DET": "Detroit Tigers",
	"HOU": "Houston Astros",
	"KCR": "Kansas City Royals",
	"ANA": "Los Angeles Angels",
	"LAD": "Los Angeles Dodgers",
	"FLA": "Miami Marlins",
	"MIL": "Milwaukee Brewers",
	"MIN": "Minnesota Twins",
	"NYM": "New York Mets",
	"NYY": "New York Yankees",
	"OAK": "Oakland Athletics",
	"PHI": "Philadelphia Phillies",
	"PIT": "Pittsburgh Pirates",
	"SDP": "San Diego Padres",
	"SEA": "Seattle Mariners",
	"SFG": "San Francisco Giants",
	"STL": "St Louis Cardinals",
	"TBD": "Tampa Bay Rays",
	"TEX": "Texas Rangers",
	"TOR": "Toronto Blue Jays",
	"WSN": "Washington Nationals",
}
