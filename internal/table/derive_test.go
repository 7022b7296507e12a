package table

import (
	"testing"
)

func TestFixIP(t *testing.T) {
	tests := []struct {
		outs int64
		want float64
	}{
		{0, 0.0},
		{1, 0.1},
		{2, 0.2},
		{3, 1.0},
		{4, 1.1},
		{5, 1.2},
		{6, 2.0},
		{100, 33.1},
	}

	for _, tt := range tests {
		if got := FixIP(tt.outs); got != tt.want {
			t.Errorf("FixIP(%d) = %v, want %v", tt.outs, got, tt.want)
		}
	}
}

func TestFixIPCell(t *testing.T) {
	if v, err := FixIPCell(nil); err != nil || v != nil {
		t.Errorf("FixIPCell(nil) = %v, %v", v, err)
	}
	if v, err := FixIPCell(int64(4)); err != nil || v != 1.1 {
		t.Errorf("FixIPCell(4) = %v, %v", v, err)
	}
	if _, err := FixIPCell("x"); err == nil {
		t.Error("FixIPCell(\"x\") should fail")
	}
}

func TestWinLoss(t *testing.T) {
	tests := []struct {
		name         string
		wins, losses int64
		want         float64
	}{
		{"no decisions", 0, 0, 0.0},
		{"two thirds", 10, 5, 0.667},
		{"winless", 0, 10, 0.0},
		{"perfect", 7, 0, 1.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := WinLoss(tt.wins, tt.losses); got != tt.want {
				t.Errorf("WinLoss(%d, %d) = %v, want %v", tt.wins, tt.losses, got, tt.want)
			}
		})
	}
}
