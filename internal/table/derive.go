package table

import (
	"fmt"
	"math"
)

// FixIP converts outs recorded into innings pitched written the scorebook
// way: whole innings plus the leftover outs as tenths (100 outs -> 33.1).
func FixIP(outs int64) float64 {
	return float64(outs/3*10+outs%3) / 10
}

// WinLoss returns the win percentage rounded to three decimals, or 0 when
// no decisions were recorded.
func WinLoss(wins, losses int64) float64 {
	if wins+losses == 0 {
		return 0
	}
	p := float64(wins) / float64(wins+losses)
	return math.Round(p*1000) / 1000
}

// FixIPCell applies FixIP to a cell, keeping missing cells missing.
func FixIPCell(v any) (any, error) {
	if IsMissing(v) {
		return nil, nil
	}
	outs, err := toInt(v)
	if err != nil {
		return nil, fmt.Errorf("outs %v: %w", v, ErrCoercion)
	}
	return FixIP(outs), nil
}

// Int64 reads an integer cell.
func Int64(v any) (int64, bool) {
	if IsMissing(v) {
		return 0, false
	}
	n, err := toInt(v)
	return n, err == nil
}
