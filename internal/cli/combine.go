package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vijay-prabhu/empscore/internal/filestore"
	"github.com/vijay-prabhu/empscore/internal/output"
	"github.com/vijay-prabhu/empscore/internal/pipeline"
)

var (
	combineFromDB bool
	combineBatch  int
)

var combineCmd = &cobra.Command{
	Use:   "combine",
	Short: "Update score details from previously written score tables",
	Long: `Combine reads the per-dimension score tables of an earlier run and
inserts or updates the composite score details.

By default the CSV files in the score folder are read. With --from-db the
calc tables of a batch are read instead.

Examples:
  empscore combine                       # From the CSV score files
  empscore combine --from-db             # From the latest batch's calc tables
  empscore combine --from-db --batch=12  # From batch 12`,
	RunE: runCombine,
}

func init() {
	rootCmd.AddCommand(combineCmd)
	combineCmd.Flags().BoolVar(&combineFromDB, "from-db", false, "Read calc tables instead of CSV files")
	combineCmd.Flags().IntVar(&combineBatch, "batch", 0, "Batch to read with --from-db (default: latest)")
}

func runCombine(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	logger, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer logger.Sync()

	db, err := openDB(ctx, cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	var reader pipeline.ScoreReader
	batchID := combineBatch
	if combineFromDB {
		if batchID == 0 {
			batchID, err = db.LatestBatchID(ctx)
			if err != nil {
				return fmt.Errorf("failed to find latest batch: %w", err)
			}
			if batchID == 0 {
				return fmt.Errorf("no batches found; run 'empscore run' first")
			}
		}
		reader = db
		fmt.Printf("Combining calc tables of batch %d...\n", batchID)
	} else {
		files, err := filestore.New(cfg.Output.ScoreFolder)
		if err != nil {
			return err
		}
		reader = files
		fmt.Printf("Combining score files in %s...\n", files.Dir())
	}

	locker, closeLocker, err := openLocker(cfg)
	if err != nil {
		return err
	}
	defer closeLocker()

	p := pipeline.New(cfg.Scoring, pipeline.Deps{
		Store:   db,
		Batches: db,
		Locker:  locker,
		Logger:  logger,
		LockKey: lockKey(cfg, db),
	})

	result, err := p.CombineFrom(ctx, reader, batchID)
	if err != nil {
		return fmt.Errorf("combine failed: %w", err)
	}

	if err := output.Output(outputFmt, result); err != nil {
		return err
	}
	if len(result.Failures) > 0 {
		return fmt.Errorf("%d score records failed", len(result.Failures))
	}
	return nil
}
