package lahman

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// LoadResult tracks counts and errors from a load.
type LoadResult struct {
	Rows    map[string]int64
	Skipped []string
	Errors  []string
}

// AddErrorf records a formatted error message.
func (r *LoadResult) AddErrorf(format string, args ...interface{}) {
	r.Errors = append(r.Errors, fmt.Sprintf(format, args...))
}

// Summary returns a human-readable summary of the load.
func (r *LoadResult) Summary() string {
	parts := make([]string, 0, len(tables)+2)
	for _, d := range tables {
		if n, ok := r.Rows[d.Name]; ok {
			parts = append(parts, fmt.Sprintf("%s=%d", d.Name, n))
		}
	}
	parts = append(parts, fmt.Sprintf("skipped=%d", len(r.Skipped)), fmt.Sprintf("errors=%d", len(r.Errors)))
	return strings.Join(parts, " ")
}

// LoadDir replaces the contents of every Lahman table with the matching CSV
// in dir. Missing files are skipped; a failing table does not stop the rest.
func LoadDir(ctx context.Context, pool *pgxpool.Pool, dir string, logger *slog.Logger) *LoadResult {
	result := &LoadResult{Rows: make(map[string]int64)}

	for _, d := range tables {
		path := filepath.Join(dir, d.File)
		f, err := os.Open(path)
		if errors.Is(err, os.ErrNotExist) {
			logger.Warn("Lahman file missing, skipping", "file", path)
			result.Skipped = append(result.Skipped, d.File)
			continue
		}
		if err != nil {
			result.AddErrorf("open %s: %v", path, err)
			continue
		}

		start := time.Now()
		n, err := loadTable(ctx, pool, d, f)
		f.Close()
		if err != nil {
			result.AddErrorf("load %s: %v", d.Name, err)
			continue
		}
		result.Rows[d.Name] = n
		logger.Info("Loaded Lahman table", "table", d.Name, "rows", n, "duration", time.Since(start).Round(time.Millisecond))
	}
	return result
}

// loadTable truncates the table and copies the CSV into it in one
// transaction.
func loadTable(ctx context.Context, pool *pgxpool.Pool, d tableDef, r io.Reader) (int64, error) {
	src, err := newCSVSource(r, d)
	if err != nil {
		return 0, err
	}

	tx, err := pool.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, "TRUNCATE "+ident(d.Name)); err != nil {
		return 0, fmt.Errorf("truncate: %w", err)
	}
	n, err := tx.CopyFrom(ctx, pgx.Identifier{d.Name}, d.columnNames(), src)
	if err != nil {
		return 0, fmt.Errorf("copy: %w", err)
	}
	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("commit: %w", err)
	}
	return n, nil
}

// csvSource streams CSV records into pgx.CopyFrom. Schema columns missing
// from the file are loaded as NULL; extra file columns are ignored.
type csvSource struct {
	r      *csv.Reader
	def    tableDef
	index  []int
	values []any
	line   int
	err    error
}

var _ pgx.CopyFromSource = (*csvSource)(nil)

func newCSVSource(r io.Reader, d tableDef) (*csvSource, error) {
	cr := csv.NewReader(r)
	cr.ReuseRecord = true
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	pos := make(map[string]int, len(header))
	for i, h := range header {
		pos[strings.TrimPrefix(strings.TrimSpace(h), "\ufeff")] = i
	}

	index := make([]int, len(d.Columns))
	found := 0
	for i, c := range d.Columns {
		if p, ok := pos[c.Name]; ok {
			index[i] = p
			found++
		} else {
			index[i] = -1
		}
	}
	if found == 0 {
		return nil, fmt.Errorf("%s: header shares no columns with table %s", d.File, d.Name)
	}
	return &csvSource{r: cr, def: d, index: index, line: 1}, nil
}

func (s *csvSource) Next() bool {
	if s.err != nil {
		return false
	}
	rec, err := s.r.Read()
	if err == io.EOF {
		return false
	}
	s.line++
	if err != nil {
		s.err = fmt.Errorf("line %d: %w", s.line, err)
		return false
	}

	s.values = make([]any, len(s.def.Columns))
	for i, c := range s.def.Columns {
		p := s.index[i]
		if p < 0 || p >= len(rec) {
			continue
		}
		v, err := parseCell(rec[p], c.Type)
		if err != nil {
			s.err = fmt.Errorf("line %d column %s: %w", s.line, c.Name, err)
			return false
		}
		s.values[i] = v
	}
	return true
}

func (s *csvSource) Values() ([]any, error) { return s.values, nil }

func (s *csvSource) Err() error { return s.err }

func parseCell(raw string, typ colType) (any, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	// "NA" is a real league id, so it only means missing in numeric columns.
	if raw == "NA" && typ != colText {
		return nil, nil
	}
	switch typ {
	case colInt:
		n, err := strconv.ParseInt(raw, 10, 32)
		if err != nil {
			return nil, err
		}
		return int32(n), nil
	case colFloat:
		return strconv.ParseFloat(raw, 64)
	default:
		return raw, nil
	}
}
