package provider

import (
	"fmt"
	"strings"
)

// ExtractValue normalizes a raw value from a source into a table cell.
//
// Postgres hands back int16/int32/int64/float32/float64, strings and byte
// slices; scraped pages hand back strings. Cells only ever hold string,
// int64, float64 or nil.
func ExtractValue(val interface{}) interface{} {
	switch v := val.(type) {
	case nil:
		return nil
	case string:
		return strings.TrimSpace(v)
	case []byte:
		return strings.TrimSpace(string(v))
	case int:
		return int64(v)
	case int16:
		return int64(v)
	case int32:
		return int64(v)
	case int64:
		return v
	case float32:
		return float64(v)
	case float64:
		return v
	case bool:
		if v {
			return "Y"
		}
		return "N"
	case fmt.Stringer:
		return v.String()
	default:
		return fmt.Sprint(v)
	}
}

// CleanName strips the footnote markers Baseball-Reference appends to player
// names (* left-handed, # switch hitter, ? unknown).
func CleanName(s string) string {
	return strings.TrimSpace(strings.NewReplacer("*", "", "#", "", "?", "").Replace(s))
}
