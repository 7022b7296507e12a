// Package table holds the in-memory stat table shared by every endpoint and
// the cleaning rules applied to provider data before it is serialized.
//
// A Table is column-oriented in its header and row-oriented in its data:
// Columns names the cells of every Row by position. Cells hold string, int64,
// float64 or nil. Operations mutate the table in place and never re-order
// rows.
package table

import (
	"fmt"
	"slices"
)

// Row is one record aligned with Table.Columns.
type Row []any

// Table is an ordered sequence of rows sharing one header.
type Table struct {
	Columns []string
	Rows    []Row
}

// New creates an empty table with the given header.
func New(columns ...string) *Table {
	return &Table{Columns: slices.Clone(columns)}
}

// Append adds a row. The row must have one cell per column.
func (t *Table) Append(cells ...any) error {
	if len(cells) != len(t.Columns) {
		return fmt.Errorf("row has %d cells, table has %d columns", len(cells), len(t.Columns))
	}
	t.Rows = append(t.Rows, Row(cells))
	return nil
}

// Len returns the number of rows.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.Rows)
}

// Index returns the position of a column, or -1.
func (t *Table) Index(name string) int {
	return slices.Index(t.Columns, name)
}

// Has reports whether the column exists.
func (t *Table) Has(name string) bool {
	return t.Index(name) >= 0
}

// Column returns a copy of every cell in the named column.
func (t *Table) Column(name string) ([]any, bool) {
	i := t.Index(name)
	if i < 0 {
		return nil, false
	}
	out := make([]any, len(t.Rows))
	for r, row := range t.Rows {
		out[r] = row[i]
	}
	return out, true
}

// Rename changes column labels. Names missing from the table are ignored.
func (t *Table) Rename(names map[string]string) {
	for i, c := range t.Columns {
		if to, ok := names[c]; ok {
			t.Columns[i] = to
		}
	}
}

// Drop removes the named columns. Names missing from the table are ignored.
func (t *Table) Drop(names ...string) {
	keep := make([]int, 0, len(t.Columns))
	for i, c := range t.Columns {
		if !slices.Contains(names, c) {
			keep = append(keep, i)
		}
	}
	t.keepColumns(keep)
}

// AddColumn appends a column. values must have one entry per row. An
// existing column with the same name is overwritten in place.
func (t *Table) AddColumn(name string, values []any) error {
	if len(values) != len(t.Rows) {
		return fmt.Errorf("column %q has %d values, table has %d rows", name, len(values), len(t.Rows))
	}
	if i := t.Index(name); i >= 0 {
		for r := range t.Rows {
			t.Rows[r][i] = values[r]
		}
		return nil
	}
	t.Columns = append(t.Columns, name)
	for r := range t.Rows {
		t.Rows[r] = append(t.Rows[r], values[r])
	}
	return nil
}

// Apply replaces every cell of the named column with fn(cell).
func (t *Table) Apply(name string, fn func(any) (any, error)) error {
	i := t.Index(name)
	if i < 0 {
		return fmt.Errorf("column %q not found", name)
	}
	for r, row := range t.Rows {
		v, err := fn(row[i])
		if err != nil {
			return fmt.Errorf("column %q row %d: %w", name, r, err)
		}
		row[i] = v
	}
	return nil
}

// Filter keeps the rows for which keep returns true.
func (t *Table) Filter(keep func(Row) bool) {
	out := t.Rows[:0]
	for _, row := range t.Rows {
		if keep(row) {
			out = append(out, row)
		}
	}
	clear(t.Rows[len(out):])
	t.Rows = out
}

func (t *Table) keepColumns(keep []int) {
	if len(keep) == len(t.Columns) {
		return
	}
	cols := make([]string, len(keep))
	for j, i := range keep {
		cols[j] = t.Columns[i]
	}
	t.Columns = cols
	for r, row := range t.Rows {
		out := make(Row, len(keep))
		for j, i := range keep {
			out[j] = row[i]
		}
		t.Rows[r] = out
	}
}
