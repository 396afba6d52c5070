package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vijay-prabhu/empscore/internal/database"
	"github.com/vijay-prabhu/empscore/internal/output"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List score details",
	Long: `List the persisted composite scores.

Examples:
  empscore list                 # List all score details
  empscore list --limit=20      # Top 20 by prscore
  empscore list -o json         # Output as JSON`,
	RunE: runList,
}

var (
	listLimit  int
	listOffset int
)

func init() {
	rootCmd.AddCommand(listCmd)

	listCmd.Flags().IntVar(&listLimit, "limit", 0, "Maximum number of results")
	listCmd.Flags().IntVar(&listOffset, "offset", 0, "Number of results to skip (with --limit)")
}

func runList(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	// Load configuration
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	// Open database
	db, err := openDB(ctx, cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	// Query database
	details, err := db.ListScoreDetailsWithOptions(ctx, database.ListOptions{
		Limit:  listLimit,
		Offset: listOffset,
	})
	if err != nil {
		return fmt.Errorf("failed to list score details: %w", err)
	}

	// Output
	return output.Output(outputFmt, details)
}
