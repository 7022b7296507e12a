package table

import (
	"math"
	"testing"

	"github.com/goccy/go-json"
)

func TestMarshalJSONKeepsColumnOrder(t *testing.T) {
	tbl := &Table{
		Columns: []string{"Year", "Team", "IP", "franchID"},
		Rows: []Row{
			{int64(1927), "NYA", 33.1, "NYY"},
			{int64(1928), "NYA", math.NaN(), nil},
		},
	}

	b, err := json.Marshal(tbl)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}

	want := `[{"Year":1927,"Team":"NYA","IP":33.1,"franchID":"NYY"},{"Year":1928,"Team":"NYA","IP":null,"franchID":null}]`
	if string(b) != want {
		t.Errorf("json = %s\nwant   %s", b, want)
	}
}

func TestMarshalJSONEmpty(t *testing.T) {
	b, err := json.Marshal(New("Year"))
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if string(b) != "[]" {
		t.Errorf("json = %s, want []", b)
	}
}
