package database

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/vijay-prabhu/empscore/internal/model"
)

// NotEligibleFlag is written once an employee's score is persisted
const NotEligibleFlag = "N"

var (
	detailColumnList = strings.Join(scoreDetailColumns(), ", ")
	detailNamedList  = ":" + strings.Join(scoreDetailColumns(), ", :")
)

// ListOptions configures score detail listing
type ListOptions struct {
	Limit  int
	Offset int
}

// ListScoreDetails returns every persisted score detail ordered by emp_id
func (db *DB) ListScoreDetails(ctx context.Context) ([]model.ScoreDetail, error) {
	return db.ListScoreDetailsWithOptions(ctx, ListOptions{})
}

// ListScoreDetailsWithOptions returns a page of score details ordered by
// prscore then emp_id when a limit is set, by emp_id otherwise
func (db *DB) ListScoreDetailsWithOptions(ctx context.Context, opts ListOptions) ([]model.ScoreDetail, error) {
	query := fmt.Sprintf("SELECT %s FROM %s", detailColumnList, scoreDetailTable)
	var args []any
	if opts.Limit > 0 {
		query += " ORDER BY prscore DESC, emp_id LIMIT ? OFFSET ?"
		args = append(args, opts.Limit, opts.Offset)
	} else {
		query += " ORDER BY emp_id"
	}

	var details []model.ScoreDetail
	if err := db.SelectContext(ctx, &details, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list score details: %w", err)
	}
	return details, nil
}

// GetScoreDetail retrieves the score detail of an employee
func (db *DB) GetScoreDetail(ctx context.Context, empID string) (*model.ScoreDetail, error) {
	d := &model.ScoreDetail{}
	err := db.GetContext(ctx, d,
		fmt.Sprintf("SELECT %s FROM %s WHERE emp_id = ?", detailColumnList, scoreDetailTable), empID)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return d, nil
}

// InsertScoreDetail inserts a new score detail. It returns
// model.ErrScoreDetailExists if the employee already has one.
func (db *DB) InsertScoreDetail(ctx context.Context, d *model.ScoreDetail) error {
	_, err := db.NamedExecContext(ctx,
		fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)", scoreDetailTable, detailColumnList, detailNamedList), d)
	if isDuplicateKey(err) {
		return fmt.Errorf("%s: %w", d.EmpID, model.ErrScoreDetailExists)
	}
	return err
}

// namedExecer is satisfied by both *sqlx.DB and *sqlx.Tx
type namedExecer interface {
	NamedExecContext(ctx context.Context, query string, arg interface{}) (sql.Result, error)
}

// UpdateScoreDetail overwrites the score detail of d.EmpID
func (db *DB) UpdateScoreDetail(ctx context.Context, d *model.ScoreDetail) error {
	return updateScoreDetail(ctx, db.DB, d)
}

// AppendScoreHistory archives a prior score detail. History rows are never
// updated or deleted.
func (db *DB) AppendScoreHistory(ctx context.Context, h *model.ScoreHistory) error {
	return appendScoreHistory(ctx, db.DB, h)
}

// ReplaceScoreDetail archives h and overwrites the detail with d in one
// transaction, so a failed update leaves no orphan history row
func (db *DB) ReplaceScoreDetail(ctx context.Context, h *model.ScoreHistory, d *model.ScoreDetail) error {
	return db.Transaction(ctx, func(tx *sqlx.Tx) error {
		if err := appendScoreHistory(ctx, tx, h); err != nil {
			return fmt.Errorf("failed to archive score detail: %w", err)
		}
		return updateScoreDetail(ctx, tx, d)
	})
}

func updateScoreDetail(ctx context.Context, ex namedExecer, d *model.ScoreDetail) error {
	var sets []string
	for _, c := range scoreDetailColumns()[1:] {
		sets = append(sets, c+" = :"+c)
	}

	res, err := ex.NamedExecContext(ctx,
		fmt.Sprintf("UPDATE %s SET %s WHERE emp_id = :emp_id", scoreDetailTable, strings.Join(sets, ", ")), d)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("no score detail for %s", d.EmpID)
	}
	return nil
}

func appendScoreHistory(ctx context.Context, ex namedExecer, h *model.ScoreHistory) error {
	_, err := ex.NamedExecContext(ctx,
		fmt.Sprintf("INSERT INTO %s (history_id, archived_time, %s) VALUES (:history_id, :archived_time, %s)",
			scoreHistoryTable, detailColumnList, detailNamedList), h)
	return err
}

// ListScoreHistory returns the archived states of an employee, newest first
func (db *DB) ListScoreHistory(ctx context.Context, empID string) ([]model.ScoreHistory, error) {
	var history []model.ScoreHistory
	err := db.SelectContext(ctx, &history,
		fmt.Sprintf("SELECT history_id, archived_time, %s FROM %s WHERE emp_id = ? ORDER BY archived_time DESC",
			detailColumnList, scoreHistoryTable), empID)
	if err != nil {
		return nil, fmt.Errorf("failed to list score history: %w", err)
	}
	return history, nil
}

// CountScoreHistory returns the number of archived states
func (db *DB) CountScoreHistory(ctx context.Context) (int, error) {
	var n int
	err := db.GetContext(ctx, &n, fmt.Sprintf("SELECT COUNT(*) FROM %s", scoreHistoryTable))
	return n, err
}

// ClearRecalculateFlag marks an employee as no longer eligible for scoring
func (db *DB) ClearRecalculateFlag(ctx context.Context, empID string) error {
	_, err := db.ExecContext(ctx,
		fmt.Sprintf("UPDATE %s SET recalculate_score_eligible = ? WHERE emp_id = ?", db.tables.PersonalInfo),
		NotEligibleFlag, empID)
	return err
}

// Stats summarises the persisted scores and the latest batch
type Stats struct {
	ScoreDetails int               `json:"score_details"`
	HistoryRows  int               `json:"history_rows"`
	AvgPRScore   float64           `json:"avg_prscore"`
	AvgVRScore   float64           `json:"avg_vrscore"`
	MaxPRScore   int               `json:"max_prscore"`
	MaxVRScore   int               `json:"max_vrscore"`
	LatestBatch  int               `json:"latest_batch,omitempty"`
	LatestStatus model.BatchStatus `json:"latest_status,omitempty"`
}

// GetStats computes aggregate statistics over the score tables
func (db *DB) GetStats(ctx context.Context) (*Stats, error) {
	stats := &Stats{}
	err := db.QueryRowxContext(ctx, fmt.Sprintf(`
		SELECT COUNT(*),
			COALESCE(AVG(prscore), 0), COALESCE(AVG(vrscore), 0),
			COALESCE(MAX(prscore), 0), COALESCE(MAX(vrscore), 0)
		FROM %s
	`, scoreDetailTable)).Scan(&stats.ScoreDetails,
		&stats.AvgPRScore, &stats.AvgVRScore, &stats.MaxPRScore, &stats.MaxVRScore)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate score details: %w", err)
	}

	stats.HistoryRows, err = db.CountScoreHistory(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count score history: %w", err)
	}

	batches, err := db.ListBatches(ctx, 1)
	if err != nil {
		return nil, err
	}
	if len(batches) > 0 {
		stats.LatestBatch = batches[0].BatchID
		stats.LatestStatus = batches[0].Status
	}

	return stats, nil
}
