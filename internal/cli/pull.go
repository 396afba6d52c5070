package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vijay-prabhu/empscore/internal/filestore"
	"github.com/vijay-prabhu/empscore/internal/pipeline"
)

var pullCmd = &cobra.Command{
	Use:   "pull",
	Short: "Dump the source tables to CSV files",
	Long: `Pull reads every source table and writes it to the data folder, one
CSV file per table. Useful to inspect exactly what a run would score.

Examples:
  empscore pull`,
	RunE: runPull,
}

func init() {
	rootCmd.AddCommand(pullCmd)
}

func runPull(cmd *cobra.Command, args []string) error {
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

	files, err := filestore.New(cfg.Output.DataFolder)
	if err != nil {
		return err
	}

	snap, err := db.Pull(ctx)
	if err != nil {
		return fmt.Errorf("pull failed: %w", err)
	}

	for _, t := range pipeline.SnapshotTables(snap) {
		if err := files.WriteTable(ctx, 0, t); err != nil {
			return err
		}
		fmt.Printf("  %-28s %d rows\n", t.Name, t.Len())
	}
	fmt.Printf("Source tables written to %s\n", files.Dir())
	return nil
}
