package table

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ErrCoercion is returned when a non-empty cell cannot be converted to the
// type its column declares.
var ErrCoercion = errors.New("cell coercion failed")

// CoercionError identifies the cell that failed to convert.
type CoercionError struct {
	Column string
	Row    int
	Value  any
	Type   ColumnType
}

func (e *CoercionError) Error() string {
	return fmt.Sprintf("column %q row %d: cannot convert %v to %s", e.Column, e.Row, e.Value, e.Type)
}

func (e *CoercionError) Unwrap() error { return ErrCoercion }

// Normalize cleans a provider table in place:
//
//  1. empty strings and nils are missing values
//  2. columns missing in every row are dropped
//  3. rows with any remaining missing value are dropped
//  4. columns listed in types are coerced to int64 or float64
//
// Column drop runs before row drop so an always-empty column cannot remove
// every row. Coercion runs last and aborts on the first unparseable cell.
func Normalize(t *Table, types TypeMap) error {
	if t == nil {
		return nil
	}

	keep := make([]int, 0, len(t.Columns))
	for i := range t.Columns {
		for _, row := range t.Rows {
			if !IsMissing(row[i]) {
				keep = append(keep, i)
				break
			}
		}
	}
	t.keepColumns(keep)

	t.Filter(func(row Row) bool {
		for _, v := range row {
			if IsMissing(v) {
				return false
			}
		}
		return true
	})

	for i, col := range t.Columns {
		typ, ok := types[col]
		if !ok {
			continue
		}
		for r, row := range t.Rows {
			v, err := coerce(row[i], typ)
			if err != nil {
				return &CoercionError{Column: col, Row: r, Value: row[i], Type: typ}
			}
			row[i] = v
		}
	}
	return nil
}

// IsMissing reports whether a cell counts as absent.
func IsMissing(v any) bool {
	switch x := v.(type) {
	case nil:
		return true
	case string:
		return x == ""
	case float64:
		return math.IsNaN(x)
	}
	return false
}

func coerce(v any, typ ColumnType) (any, error) {
	switch typ {
	case Integer:
		return toInt(v)
	case Float:
		return toFloat(v)
	}
	return v, nil
}

func toInt(v any) (int64, error) {
	switch x := v.(type) {
	case int64:
		return x, nil
	case int:
		return int64(x), nil
	case int32:
		return int64(x), nil
	case float64:
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return 0, ErrCoercion
		}
		return int64(x), nil
	case string:
		return strconv.ParseInt(strings.TrimSpace(x), 10, 64)
	}
	return 0, ErrCoercion
}

func toFloat(v any) (float64, error) {
	switch x := v.(type) {
	case float64:
		return x, nil
	case float32:
		return float64(x), nil
	case int64:
		return float64(x), nil
	case int:
		return float64(x), nil
	case int32:
		return float64(x), nil
	case string:
		return strconv.ParseFloat(strings.TrimSpace(x), 64)
	}
	return 0, ErrCoercion
}
