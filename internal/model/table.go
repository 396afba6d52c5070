package model

import "fmt"

// Table is a named row-set written to a sink
type Table struct {
	Name    string
	Columns []string
	Rows    [][]any
}

// Len returns the number of rows
func (t Table) Len() int {
	return len(t.Rows)
}

// MissingColumnError reports a required column absent from an input table
type MissingColumnError struct {
	Table  string
	Column string
}

func (e *MissingColumnError) Error() string {
	return fmt.Sprintf("table %s: missing column %q", e.Table, e.Column)
}

// RequireColumns returns a *MissingColumnError for the first required
// column not present in have
func RequireColumns(table string, have []string, required ...string) error {
	seen := make(map[string]bool, len(have))
	for _, c := range have {
		seen[c] = true
	}
	for _, c := range required {
		if !seen[c] {
			return &MissingColumnError{Table: table, Column: c}
		}
	}
	return nil
}
