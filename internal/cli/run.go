package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/vijay-prabhu/empscore/internal/filestore"
	"github.com/vijay-prabhu/empscore/internal/notify"
	"github.com/vijay-prabhu/empscore/internal/output"
	"github.com/vijay-prabhu/empscore/internal/pipeline"
)

var (
	runDryRun     bool
	runNoFiles    bool
	runNoDBTables bool
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Score every eligible profile",
	Long: `Run pulls the employee tables, computes every market and personal
score dimension for profiles flagged for recalculation, and persists the
composite scores.

Examples:
  empscore run                  # Full run
  empscore run --dry-run        # Compute and write score tables, leave score details untouched
  empscore run --no-files       # Skip the CSV score files
  empscore run --no-db-tables   # Skip the calc tables`,
	RunE: runRun,
}

func init() {
	rootCmd.AddCommand(runCmd)
	runCmd.Flags().BoolVar(&runDryRun, "dry-run", false, "Compute scores without updating score details")
	runCmd.Flags().BoolVar(&runNoFiles, "no-files", false, "Do not write CSV score files")
	runCmd.Flags().BoolVar(&runNoDBTables, "no-db-tables", false, "Do not write calc tables")
}

func runRun(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	// Load configuration
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	// Ensure directories exist
	if err := cfg.EnsureDirectories(); err != nil {
		return err
	}

	logger, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer logger.Sync()

	// Open database
	db, err := openDB(ctx, cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	var sinks []pipeline.Sink
	if cfg.Output.WriteFiles && !runNoFiles {
		files, err := filestore.New(cfg.Output.ScoreFolder)
		if err != nil {
			return err
		}
		sinks = append(sinks, files)
	}
	if cfg.Output.WriteDBTables && !runNoDBTables {
		sinks = append(sinks, db)
	}

	locker, closeLocker, err := openLocker(cfg)
	if err != nil {
		return err
	}
	defer closeLocker()

	p := pipeline.New(cfg.Scoring, pipeline.Deps{
		Source:    db,
		Store:     db,
		Batches:   db,
		Sinks:     sinks,
		Locker:    locker,
		Publisher: notify.New(cfg.RabbitMQ, logger),
		Logger:    logger,
		LockKey:   lockKey(cfg, db),
	})

	if runDryRun {
		fmt.Println("Scoring profiles (dry run)...")
	} else {
		fmt.Println("Scoring profiles...")
	}

	// Set up progress callback with terminal utilities
	var lastPhase pipeline.ProgressPhase
	var phaseStartTime time.Time
	terminal := NewTerminal()

	progress := func(p pipeline.Progress) {
		// Track phase start time for ETA
		if p.Phase != lastPhase {
			phaseStartTime = time.Now()
		}
		p.StartedAt = phaseStartTime

		var msg string
		switch p.Phase {
		case pipeline.PhasePulling, pipeline.PhasePreparing, pipeline.PhasePublishing, pipeline.PhaseCombining:
			msg = fmt.Sprintf("%s %s...", terminal.Spinner(), p.Description)
		case pipeline.PhaseMarket, pipeline.PhasePersonal:
			msg = fmt.Sprintf("Scoring %s: %d/%d (%d%%)", p.Description, p.Current, p.Total, p.Percentage())
		case pipeline.PhaseWriting:
			eta := ""
			if etaDur := p.ETA(); etaDur > 0 {
				eta = fmt.Sprintf(" (ETA: %s)", FormatETA(etaDur))
			}
			msg = fmt.Sprintf("Writing %s: %d/%d%s", p.Description, p.Current, p.Total, eta)
		}

		terminal.Render(string(p.Phase), msg, p.Phase != lastPhase)
		lastPhase = p.Phase
	}

	result, err := p.Run(ctx, pipeline.RunOptions{
		DryRun:   runDryRun,
		Progress: progress,
	})

	// Clear progress line
	terminal.ClearLine()

	if err != nil {
		return fmt.Errorf("run failed: %w", err)
	}

	fmt.Println()
	if err := output.Output(outputFmt, result); err != nil {
		return err
	}

	if result.Apply != nil && len(result.Apply.Failures) > 0 {
		return fmt.Errorf("%d score records failed", len(result.Apply.Failures))
	}
	return nil
}
