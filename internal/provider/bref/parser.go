package bref

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/albapepper/scoracle-baseball/internal/provider"
)

// Kind selects the batting or pitching table on a team page.
type Kind int

const (
	Batting Kind = iota
	Pitching
)

func (k Kind) String() string {
	if k == Pitching {
		return "pitching"
	}
	return "batting"
}

// tableIDs lists the element ids the site has used for each table, newest
// layout first.
var tableIDs = map[Kind][]string{
	Batting:  {"players_standard_batting", "team_batting"},
	Pitching: {"players_standard_pitching", "team_pitching"},
}

// rawTable is a parsed stats table before it is turned into a table.Table.
type rawTable struct {
	Columns []string
	Rows    [][]string
}

// parseTeamTable extracts the batting or pitching table from a team page.
// Tables the site ships inside HTML comments are found as well. A page
// without the table yields provider.ErrNoData.
func parseTeamTable(page []byte, kind Kind) (*rawTable, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(page))
	if err != nil {
		return nil, fmt.Errorf("parse page: %w: %w", provider.ErrUpstream, err)
	}

	sel := findTable(doc, tableIDs[kind])
	if sel == nil {
		sel = findCommentedTable(doc, tableIDs[kind])
	}
	if sel == nil {
		return nil, fmt.Errorf("%s table: %w", kind, provider.ErrNoData)
	}
	return readTable(sel), nil
}

func findTable(doc *goquery.Document, ids []string) *goquery.Selection {
	for _, id := range ids {
		if s := doc.Find("table#" + id); s.Length() > 0 {
			return s.First()
		}
	}
	return nil
}

// findCommentedTable re-parses any HTML comment that mentions one of the ids.
func findCommentedTable(doc *goquery.Document, ids []string) *goquery.Selection {
	var found *goquery.Selection
	doc.Find("*").Contents().EachWithBreak(func(_ int, s *goquery.Selection) bool {
		if goquery.NodeName(s) != "#comment" {
			return true
		}
		text := s.Nodes[0].Data
		for _, id := range ids {
			if !strings.Contains(text, `id="`+id+`"`) {
				continue
			}
			inner, err := goquery.NewDocumentFromReader(strings.NewReader(text))
			if err != nil {
				continue
			}
			if t := findTable(inner, []string{id}); t != nil {
				found = t
				return false
			}
		}
		return true
	})
	return found
}

func readTable(sel *goquery.Selection) *rawTable {
	t := &rawTable{}

	// Last header row holds the column labels; the first cell is the rank.
	sel.Find("thead tr").Last().Find("th").Each(func(i int, th *goquery.Selection) {
		if i == 0 {
			return
		}
		label := strings.TrimSpace(th.Text())
		if label == "" {
			label, _ = th.Attr("data-stat")
		}
		t.Columns = append(t.Columns, label)
	})

	sel.Find("tbody tr").Each(func(_ int, tr *goquery.Selection) {
		if tr.HasClass("thead") || tr.HasClass("spacer") || tr.HasClass("over_header") {
			return
		}
		cells := tr.Find("td")
		if cells.Length() != len(t.Columns) {
			return
		}
		row := make([]string, 0, len(t.Columns))
		cells.Each(func(_ int, td *goquery.Selection) {
			row = append(row, provider.CleanName(td.Text()))
		})
		if isSummaryRow(row) {
			return
		}
		t.Rows = append(t.Rows, row)
	})
	return t
}

func isSummaryRow(row []string) bool {
	for _, c := range row {
		if strings.Contains(c, "Totals") || strings.Contains(c, "NL teams") || strings.Contains(c, "AL teams") {
			return true
		}
	}
	return false
}
