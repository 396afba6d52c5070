package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/vijay-prabhu/empscore/internal/model"
	"github.com/vijay-prabhu/empscore/internal/output"
)

var batchesLimit int

var batchesCmd = &cobra.Command{
	Use:   "batches [batch_id]",
	Short: "List scoring runs",
	Long: `List scoring runs, newest first, with their last status.

Examples:
  empscore batches
  empscore batches --limit=5 -o json
  empscore batches 12`,
	Args: cobra.MaximumNArgs(1),
	RunE: runBatches,
}

func init() {
	rootCmd.AddCommand(batchesCmd)
	batchesCmd.Flags().IntVar(&batchesLimit, "limit", 20, "Maximum number of batches")
}

func runBatches(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	db, err := openDB(ctx, cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	if len(args) == 1 {
		batchID, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid batch id %q", args[0])
		}
		b, err := db.GetBatch(ctx, batchID)
		if err != nil {
			return fmt.Errorf("database error: %w", err)
		}
		if b == nil {
			return fmt.Errorf("batch %d not found", batchID)
		}
		return output.Output(outputFmt, []model.Batch{*b})
	}

	batches, err := db.ListBatches(ctx, batchesLimit)
	if err != nil {
		return fmt.Errorf("failed to list batches: %w", err)
	}

	return output.Output(outputFmt, batches)
}
