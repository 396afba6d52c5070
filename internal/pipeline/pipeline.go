// Package pipeline runs a scoring batch end to end: pull the source
// tables, compute every market and personal dimension, write the
// per-dimension tables and persist the composite scores.
package pipeline

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/vijay-prabhu/empscore/internal/combiner"
	"github.com/vijay-prabhu/empscore/internal/config"
	"github.com/vijay-prabhu/empscore/internal/lock"
	"github.com/vijay-prabhu/empscore/internal/model"
	"github.com/vijay-prabhu/empscore/internal/notify"
)

// Source fetches every input table
type Source interface {
	Pull(ctx context.Context) (*model.Snapshot, error)
}

// Sink receives the per-dimension tables of a batch
type Sink interface {
	WriteTable(ctx context.Context, batchID int, t model.Table) error
}

// Batches records the lifecycle of each run
type Batches interface {
	StartBatch(ctx context.Context, requestedBy string) (*model.Batch, error)
	UpdateBatchStatus(ctx context.Context, id string, status model.BatchStatus) error
}

// ScoreReader reads one dimension column back from a written table
type ScoreReader interface {
	ReadScores(ctx context.Context, batchID int, table, column string) (map[string]int, error)
}

// Deps are the collaborators of a Pipeline. Locker and Publisher default
// to no-ops.
type Deps struct {
	Source    Source
	Store     combiner.Store
	Batches   Batches
	Sinks     []Sink
	Locker    lock.Locker
	Publisher notify.Publisher
	Logger    *zap.Logger
	// LockKey defaults to lock.RunKey
	LockKey string
	Now     func() time.Time
}

// Pipeline orchestrates scoring runs
type Pipeline struct {
	source    Source
	store     combiner.Store
	batches   Batches
	sinks     []Sink
	locker    lock.Locker
	publisher notify.Publisher
	logger    *zap.Logger
	lockKey   string
	now       func() time.Time
	cfg       config.ScoringConfig
}

// New creates a new Pipeline
func New(cfg config.ScoringConfig, deps Deps) *Pipeline {
	p := &Pipeline{
		source:    deps.Source,
		store:     deps.Store,
		batches:   deps.Batches,
		sinks:     deps.Sinks,
		locker:    deps.Locker,
		publisher: deps.Publisher,
		logger:    deps.Logger,
		lockKey:   deps.LockKey,
		now:       deps.Now,
		cfg:       cfg,
	}
	if p.locker == nil {
		p.locker = &lock.Dummy{}
	}
	if p.publisher == nil {
		p.publisher = &notify.Dummy{}
	}
	if p.logger == nil {
		p.logger = zap.NewNop()
	}
	if p.lockKey == "" {
		p.lockKey = lock.RunKey
	}
	if p.now == nil {
		p.now = time.Now
	}
	return p
}

// RunOptions configures a run
type RunOptions struct {
	// DryRun computes and writes dimension tables but leaves score
	// details untouched
	DryRun   bool
	Progress ProgressCallback
}

// RunResult contains the results of a run
type RunResult struct {
	BatchID    int
	Eligible   int
	Population int
	// Tables maps each written dimension table to its row count
	Tables map[string]int
	// Apply is nil on a dry run
	Apply *combiner.Result
	// Errors are non-fatal: skipped dimensions, a failed publish
	Errors []error
}

// Run executes one scoring batch
func (p *Pipeline) Run(ctx context.Context, opts RunOptions) (result *RunResult, err error) {
	result = &RunResult{Tables: make(map[string]int)}
	started := p.now()

	report := func(phase ProgressPhase, current, total int, desc string) {
		if opts.Progress != nil {
			opts.Progress(Progress{
				Phase:       phase,
				Current:     current,
				Total:       total,
				Description: desc,
				StartedAt:   started,
			})
		}
	}

	release, err := p.locker.Acquire(ctx, p.lockKey)
	if err != nil {
		return nil, err
	}
	defer func() {
		if rerr := release(context.WithoutCancel(ctx)); rerr != nil {
			p.logger.Warn("failed to release run lock", zap.Error(rerr))
		}
	}()

	batch, err := p.batches.StartBatch(ctx, p.cfg.RequestedBy)
	if err != nil {
		return nil, fmt.Errorf("failed to start batch: %w", err)
	}
	result.BatchID = batch.BatchID
	log := p.logger.With(zap.Int("batch_id", batch.BatchID))
	log.Info("batch started", zap.String("requested_by", p.cfg.RequestedBy))

	defer func() {
		if err != nil {
			if serr := p.batches.UpdateBatchStatus(context.WithoutCancel(ctx), batch.ID, model.BatchFailed); serr != nil {
				log.Warn("failed to mark batch failed", zap.Error(serr))
			}
			log.Error("batch failed", zap.Error(err))
		}
	}()

	report(PhasePulling, 0, 1, "Pulling source tables")
	snap, err := p.source.Pull(ctx)
	if err != nil {
		return result, fmt.Errorf("failed to pull source tables: %w", err)
	}
	report(PhasePulling, 1, 1, "Pulling source tables")
	if err := p.setStatus(ctx, batch, model.BatchDataPullCompleted); err != nil {
		return result, err
	}
	log.Info("data pull completed",
		zap.Int("profiles", len(snap.PersonalInfo)),
		zap.Int("work_rows", len(snap.WorkInfo)))

	now := p.now()
	report(PhasePreparing, 0, 1, "Joining eligible and population profiles")
	facts, err := BuildFacts(snap, FactOptions{
		ActiveProfileDays: p.cfg.ActiveProfileDays,
		CertTrendDays:     p.cfg.CertTrendDays,
	}, now)
	if err != nil {
		return result, fmt.Errorf("failed to prepare facts: %w", err)
	}
	result.Eligible = len(facts.Eligible)
	result.Population = len(snap.PersonalInfo)
	log.Info("score eligible profiles", zap.Int("eligible", result.Eligible), zap.Int("population", result.Population))

	dims, skipped, err := p.computeScores(facts, snap.ScoreMeta, now, report)
	if err != nil {
		return result, err
	}
	result.Errors = append(result.Errors, skipped...)

	for i, d := range dims {
		report(PhaseWriting, i+1, len(dims), d.table.Name)
		for _, sink := range p.sinks {
			if err := sink.WriteTable(ctx, batch.BatchID, d.table); err != nil {
				return result, fmt.Errorf("failed to write %s: %w", d.table.Name, err)
			}
		}
		result.Tables[d.table.Name] = d.table.Len()
	}
	if err := p.setStatus(ctx, batch, model.BatchScoreCalcCompleted); err != nil {
		return result, err
	}
	log.Info("score calculation completed", zap.Int("tables", len(dims)), zap.Int("skipped", len(skipped)))

	status := model.BatchScoreCalcCompleted
	if !opts.DryRun {
		in := make(combiner.Input, len(dims))
		for _, d := range dims {
			in.Set(d.dim, d.scores)
		}

		report(PhaseCombining, 0, 1, "Updating score details")
		apply, err := p.combine(ctx, in, log)
		if err != nil {
			return result, err
		}
		report(PhaseCombining, 1, 1, "Updating score details")
		result.Apply = apply

		if err := p.setStatus(ctx, batch, model.BatchScoreUpdated); err != nil {
			return result, err
		}
		status = model.BatchScoreUpdated
	}

	report(PhasePublishing, 0, 1, "Publishing run event")
	if perr := p.publisher.Publish(ctx, p.runEvent(result, status)); perr != nil {
		log.Warn("failed to publish run event", zap.Error(perr))
		result.Errors = append(result.Errors, perr)
	}

	log.Info("batch finished", zap.Duration("elapsed", p.now().Sub(started)))
	return result, nil
}

// combine merges the dimension scores and persists them
func (p *Pipeline) combine(ctx context.Context, in combiner.Input, log *zap.Logger) (*combiner.Result, error) {
	composites := combiner.Combine(in)

	existing, err := p.store.ListScoreDetails(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list score details: %w", err)
	}

	plan := combiner.Classify(composites, existing)
	log.Info("insert and update records",
		zap.Int("insert", len(plan.Inserts)),
		zap.Int("update", len(plan.Updates)),
		zap.Int("stale", len(plan.Stale)))

	apply := combiner.Apply(ctx, p.store, plan, combiner.Options{
		RequestedBy:   p.cfg.RequestedBy,
		SpecialRating: p.cfg.SpecialRatingPoint,
		Now:           p.now,
		Logger:        log,
	})
	if len(apply.Failures) > 0 {
		log.Warn("score records failed", zap.Int("failures", len(apply.Failures)), zap.Error(apply.Err()))
	}
	return apply, nil
}

func (p *Pipeline) setStatus(ctx context.Context, batch *model.Batch, status model.BatchStatus) error {
	if err := p.batches.UpdateBatchStatus(ctx, batch.ID, status); err != nil {
		return fmt.Errorf("failed to set batch status %q: %w", status, err)
	}
	return nil
}

func (p *Pipeline) runEvent(r *RunResult, status model.BatchStatus) notify.RunEvent {
	e := notify.RunEvent{
		BatchID:    r.BatchID,
		Status:     string(status),
		FinishedAt: p.now(),
	}
	if r.Apply != nil {
		e.Inserted = r.Apply.Inserted
		e.Updated = r.Apply.Updated
		e.Stale = len(r.Apply.Stale)
		e.Failures = len(r.Apply.Failures)
	}
	return e
}

// CombineFrom reads every dimension of batchID back from reader and
// persists the composites. It is the combine step of Run on its own, for
// tables written by an earlier run.
func (p *Pipeline) CombineFrom(ctx context.Context, reader ScoreReader, batchID int) (*combiner.Result, error) {
	release, err := p.locker.Acquire(ctx, p.lockKey)
	if err != nil {
		return nil, err
	}
	defer func() {
		if rerr := release(context.WithoutCancel(ctx)); rerr != nil {
			p.logger.Warn("failed to release run lock", zap.Error(rerr))
		}
	}()

	in := make(combiner.Input, len(ScoreTables))
	for _, t := range ScoreTables {
		scores, err := reader.ReadScores(ctx, batchID, t.Name, string(t.Dimension))
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", t.Name, err)
		}
		in.Set(t.Dimension, scores)
	}

	return p.combine(ctx, in, p.logger.With(zap.Int("batch_id", batchID)))
}
