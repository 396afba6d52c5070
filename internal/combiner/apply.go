package combiner

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/vijay-prabhu/empscore/internal/model"
)

// DefaultSpecialRating is written to every score detail
const DefaultSpecialRating = 10

// Store persists score details. Insert, update and history append are
// distinct write modes and never stand in for one another.
type Store interface {
	ListScoreDetails(ctx context.Context) ([]model.ScoreDetail, error)
	GetScoreDetail(ctx context.Context, empID string) (*model.ScoreDetail, error)
	// InsertScoreDetail returns model.ErrScoreDetailExists when a detail
	// for the employee is already stored.
	InsertScoreDetail(ctx context.Context, d *model.ScoreDetail) error
	// ReplaceScoreDetail appends h and overwrites the detail with d as one
	// unit. On error neither is written.
	ReplaceScoreDetail(ctx context.Context, h *model.ScoreHistory, d *model.ScoreDetail) error
	ClearRecalculateFlag(ctx context.Context, empID string) error
}

// Options configures how composites are written
type Options struct {
	RequestedBy   string
	SpecialRating int
	Now           func() time.Time
	NewID         func() string
	Logger        *zap.Logger
}

func (o Options) withDefaults() Options {
	if o.Now == nil {
		o.Now = time.Now
	}
	if o.NewID == nil {
		o.NewID = uuid.NewString
	}
	if o.Logger == nil {
		o.Logger = zap.NewNop()
	}
	return o
}

// RecordError is a persistence failure for one employee
type RecordError struct {
	EmpID string
	Op    string
	Err   error
}

func (e *RecordError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.EmpID, e.Err)
}

func (e *RecordError) Unwrap() error {
	return e.Err
}

// Result summarises an Apply pass
type Result struct {
	Inserted  int
	Updated   int
	Conflicts int // inserts re-routed to the update path
	Stale     []string
	Failures  []error
}

// Err joins every per-record failure, or returns nil
func (r *Result) Err() error {
	return errors.Join(r.Failures...)
}

// Apply writes the plan one record at a time in emp_id order. A failed
// record is collected in Result.Failures and the pass moves on.
func Apply(ctx context.Context, store Store, plan Plan, opts Options) *Result {
	opts = opts.withDefaults()
	log := opts.Logger
	result := &Result{}

	for _, d := range plan.Stale {
		result.Stale = append(result.Stale, d.EmpID)
	}
	if len(plan.Stale) > 0 {
		log.Warn("persisted scores without a fresh computation left untouched",
			zap.Int("count", len(plan.Stale)))
	}

	total := len(plan.Inserts) + len(plan.Updates)
	done := 0

	for _, c := range plan.Inserts {
		if err := ctx.Err(); err != nil {
			result.Failures = append(result.Failures, &RecordError{EmpID: c.EmpID, Op: "insert", Err: err})
			continue
		}
		done++

		err := store.InsertScoreDetail(ctx, c.Detail(opts, opts.Now()))
		if errors.Is(err, model.ErrScoreDetailExists) {
			prior, getErr := store.GetScoreDetail(ctx, c.EmpID)
			if getErr != nil || prior == nil {
				if getErr == nil {
					getErr = err
				}
				result.Failures = append(result.Failures, &RecordError{EmpID: c.EmpID, Op: "insert", Err: getErr})
				continue
			}
			log.Info("score detail appeared since classification, updating instead",
				zap.String("emp_id", c.EmpID))
			result.Conflicts++
			if err := update(ctx, store, Update{Composite: c, Prior: *prior}, opts); err != nil {
				result.Failures = append(result.Failures, err)
				continue
			}
			result.Updated++
			continue
		}
		if err != nil {
			result.Failures = append(result.Failures, &RecordError{EmpID: c.EmpID, Op: "insert", Err: err})
			continue
		}
		if err := store.ClearRecalculateFlag(ctx, c.EmpID); err != nil {
			result.Failures = append(result.Failures, &RecordError{EmpID: c.EmpID, Op: "clear flag", Err: err})
			continue
		}
		result.Inserted++
		log.Debug("score detail inserted", zap.String("emp_id", c.EmpID), zap.Int("done", done), zap.Int("total", total))
	}

	for _, u := range plan.Updates {
		if err := ctx.Err(); err != nil {
			result.Failures = append(result.Failures, &RecordError{EmpID: u.EmpID, Op: "update", Err: err})
			continue
		}
		done++

		if err := update(ctx, store, u, opts); err != nil {
			result.Failures = append(result.Failures, err)
			continue
		}
		result.Updated++
		log.Debug("score detail updated", zap.String("emp_id", u.EmpID), zap.Int("done", done), zap.Int("total", total))
	}

	return result
}

// update archives the prior detail, overwrites it and clears the flag
func update(ctx context.Context, store Store, u Update, opts Options) error {
	now := opts.Now()
	history := model.NewScoreHistory(opts.NewID(), u.Prior, now)
	if err := store.ReplaceScoreDetail(ctx, history, u.Detail(opts, now)); err != nil {
		return &RecordError{EmpID: u.EmpID, Op: "update", Err: err}
	}
	if err := store.ClearRecalculateFlag(ctx, u.EmpID); err != nil {
		return &RecordError{EmpID: u.EmpID, Op: "clear flag", Err: err}
	}
	return nil
}
