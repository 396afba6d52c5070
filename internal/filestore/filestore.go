// Package filestore reads and writes score tables as CSV files, one file
// per table.
package filestore

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/vijay-prabhu/empscore/internal/model"
)

var nameRE = regexp.MustCompile(`^[A-Za-z0-9_.-]+$`)

// Store keeps tables as <dir>/<name>.csv
type Store struct {
	dir string
}

// New returns a Store rooted at dir, creating it if needed
func New(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create %s: %w", dir, err)
	}
	return &Store{dir: dir}, nil
}

// Dir returns the folder the store writes to
func (s *Store) Dir() string {
	return s.dir
}

// Path returns the file backing table name
func (s *Store) Path(name string) string {
	return filepath.Join(s.dir, name+".csv")
}

// WriteTable replaces the file of t with its current rows. Files hold the
// latest run only, so batchID is not stored.
func (s *Store) WriteTable(ctx context.Context, batchID int, t model.Table) error {
	if !nameRE.MatchString(t.Name) {
		return fmt.Errorf("invalid table name %q", t.Name)
	}

	tmp, err := os.CreateTemp(s.dir, t.Name+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", t.Name, err)
	}
	defer os.Remove(tmp.Name())

	w := csv.NewWriter(tmp)
	if err := w.Write(t.Columns); err != nil {
		tmp.Close()
		return err
	}
	record := make([]string, len(t.Columns))
	for i, row := range t.Rows {
		if err := ctx.Err(); err != nil {
			tmp.Close()
			return err
		}
		if len(row) != len(t.Columns) {
			tmp.Close()
			return fmt.Errorf("table %s row %d: expected %d values, got %d", t.Name, i, len(t.Columns), len(row))
		}
		for j, v := range row {
			record[j] = format(v)
		}
		if err := w.Write(record); err != nil {
			tmp.Close()
			return err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write %s: %w", t.Name, err)
	}
	if err := tmp.Close(); err != nil {
		return err
	}

	return os.Rename(tmp.Name(), s.Path(t.Name))
}

// ReadScores returns emp_id -> column from the file of table. Empty cells
// read as 0. A file lacking either column yields a *model.MissingColumnError.
func (s *Store) ReadScores(ctx context.Context, batchID int, table, column string) (map[string]int, error) {
	f, err := os.Open(s.Path(table))
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", table, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	header, err := r.Read()
	if errors.Is(err, io.EOF) {
		return nil, &model.MissingColumnError{Table: table, Column: "emp_id"}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s header: %w", table, err)
	}
	if err := model.RequireColumns(table, header, "emp_id", column); err != nil {
		return nil, err
	}
	empIdx, valIdx := indexOf(header, "emp_id"), indexOf(header, column)

	scores := make(map[string]int)
	for line := 2; ; line++ {
		rec, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", table, err)
		}
		v, err := parseInt(rec[valIdx])
		if err != nil {
			return nil, fmt.Errorf("%s line %d: %s: %w", table, line, column, err)
		}
		scores[rec[empIdx]] = v
	}
	return scores, nil
}

func indexOf(header []string, name string) int {
	for i, h := range header {
		if h == name {
			return i
		}
	}
	return -1
}

// parseInt accepts integers and integral floats such as "80.0"
func parseInt(s string) (int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}
	if n, err := strconv.Atoi(s); err == nil {
		return n, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, err
	}
	return int(f), nil
}

func format(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case *string:
		if x == nil {
			return ""
		}
		return *x
	case int:
		return strconv.Itoa(x)
	case *int:
		if x == nil {
			return ""
		}
		return strconv.Itoa(*x)
	case time.Time:
		return x.Format(time.RFC3339)
	case *time.Time:
		if x == nil {
			return ""
		}
		return x.Format(time.RFC3339)
	default:
		return fmt.Sprint(v)
	}
}
