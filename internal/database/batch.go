package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/vijay-prabhu/empscore/internal/model"
)

// StartBatch opens a new batch numbered one past the existing batches
func (db *DB) StartBatch(ctx context.Context, requestedBy string) (*model.Batch, error) {
	var b *model.Batch
	err := db.Transaction(ctx, func(tx *sqlx.Tx) error {
		var count int
		if err := tx.GetContext(ctx, &count, fmt.Sprintf("SELECT COUNT(*) FROM %s", batchTable)); err != nil {
			return err
		}

		now := time.Now()
		b = &model.Batch{
			ID:          uuid.New().String(),
			BatchID:     count + 1,
			RequestedBy: requestedBy,
			Status:      model.BatchDataPullStarted,
			CreatedTime: now,
			UpdatedTime: now,
		}
		_, err := tx.NamedExecContext(ctx, fmt.Sprintf(`
			INSERT INTO %s (id, batch_id, requested_by, status, created_time, updated_time)
			VALUES (:id, :batch_id, :requested_by, :status, :created_time, :updated_time)
		`, batchTable), b)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to start batch: %w", err)
	}
	return b, nil
}

// UpdateBatchStatus moves a batch to a new status
func (db *DB) UpdateBatchStatus(ctx context.Context, id string, status model.BatchStatus) error {
	res, err := db.ExecContext(ctx,
		fmt.Sprintf("UPDATE %s SET status = ?, updated_time = ? WHERE id = ?", batchTable),
		string(status), time.Now(), id)
	if err != nil {
		return fmt.Errorf("failed to update batch: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("batch %s not found", id)
	}
	return nil
}

// GetBatch retrieves a batch by its sequence number
func (db *DB) GetBatch(ctx context.Context, batchID int) (*model.Batch, error) {
	b := &model.Batch{}
	err := db.GetContext(ctx, b, fmt.Sprintf(`
		SELECT id, batch_id, requested_by, status, created_time, updated_time
		FROM %s WHERE batch_id = ?
	`, batchTable), batchID)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return b, nil
}

// ListBatches returns the most recent batches first
func (db *DB) ListBatches(ctx context.Context, limit int) ([]model.Batch, error) {
	query := fmt.Sprintf(`
		SELECT id, batch_id, requested_by, status, created_time, updated_time
		FROM %s ORDER BY batch_id DESC
	`, batchTable)
	var args []any
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	var batches []model.Batch
	if err := db.SelectContext(ctx, &batches, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list batches: %w", err)
	}
	return batches, nil
}
