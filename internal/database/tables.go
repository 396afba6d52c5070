package database

import (
	"context"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/vijay-prabhu/empscore/internal/model"
)

// WriteTable stores the rows of a per-dimension table under batchID.
// Rewriting the same batch replaces its earlier rows.
func (db *DB) WriteTable(ctx context.Context, batchID int, t model.Table) error {
	if !calcTables[t.Name] {
		return fmt.Errorf("unknown score table %q", t.Name)
	}
	for _, c := range t.Columns {
		if !identRE.MatchString(c) {
			return fmt.Errorf("table %s: invalid column name %q", t.Name, c)
		}
	}

	placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(t.Columns)+1), ", ")
	insert := db.Rebind(fmt.Sprintf("INSERT INTO %s (batch_id, %s) VALUES (%s)",
		t.Name, strings.Join(t.Columns, ", "), placeholders))

	return db.Transaction(ctx, func(tx *sqlx.Tx) error {
		if _, err := tx.ExecContext(ctx, db.Rebind(fmt.Sprintf("DELETE FROM %s WHERE batch_id = ?", t.Name)), batchID); err != nil {
			return fmt.Errorf("failed to clear %s: %w", t.Name, err)
		}

		stmt, err := tx.PreparexContext(ctx, insert)
		if err != nil {
			return fmt.Errorf("failed to prepare %s insert: %w", t.Name, err)
		}
		defer stmt.Close()

		for i, row := range t.Rows {
			if len(row) != len(t.Columns) {
				return fmt.Errorf("table %s row %d: expected %d values, got %d", t.Name, i, len(t.Columns), len(row))
			}
			args := append([]any{batchID}, row...)
			if _, err := stmt.ExecContext(ctx, args...); err != nil {
				return fmt.Errorf("failed to write %s row %d: %w", t.Name, i, err)
			}
		}
		return nil
	})
}

// ReadScores returns emp_id -> column from the rows of table written for
// batchID. A table lacking the column yields a *model.MissingColumnError.
func (db *DB) ReadScores(ctx context.Context, batchID int, table, column string) (map[string]int, error) {
	if !calcTables[table] {
		return nil, fmt.Errorf("unknown score table %q", table)
	}
	have, err := db.columns(ctx, table)
	if err != nil {
		return nil, err
	}
	if err := model.RequireColumns(table, have, "emp_id", column); err != nil {
		return nil, err
	}

	rows, err := db.QueryxContext(ctx,
		db.Rebind(fmt.Sprintf("SELECT emp_id, %s FROM %s WHERE batch_id = ?", column, table)), batchID)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", table, err)
	}
	defer rows.Close()

	scores := make(map[string]int)
	for rows.Next() {
		var emp string
		var v int
		if err := rows.Scan(&emp, &v); err != nil {
			return nil, fmt.Errorf("failed to scan %s: %w", table, err)
		}
		scores[emp] = v
	}
	return scores, rows.Err()
}

// LatestBatchID returns the highest batch number, or 0 when none exist
func (db *DB) LatestBatchID(ctx context.Context) (int, error) {
	var id *int
	if err := db.GetContext(ctx, &id, fmt.Sprintf("SELECT MAX(batch_id) FROM %s", batchTable)); err != nil {
		return 0, err
	}
	if id == nil {
		return 0, nil
	}
	return *id, nil
}
