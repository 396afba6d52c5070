package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vijay-prabhu/empscore/internal/output"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show score statistics",
	Long: `Display aggregate statistics over the persisted scores and runs.

Examples:
  empscore stats
  empscore stats -o json`,
	RunE: runStats,
}

func init() {
	rootCmd.AddCommand(statsCmd)
}

func runStats(cmd *cobra.Command, args []string) error {
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

	stats, err := db.GetStats(ctx)
	if err != nil {
		return err
	}

	if outputFmt == "json" {
		return output.JSON(stats)
	}

	fmt.Println("Score Statistics")
	fmt.Println(strings.Repeat("-", 30))
	fmt.Printf("Score details:          %d\n", stats.ScoreDetails)
	fmt.Printf("Archived states:        %d\n", stats.HistoryRows)
	if stats.ScoreDetails > 0 {
		fmt.Printf("Avg prscore:            %.1f (max %d)\n", stats.AvgPRScore, stats.MaxPRScore)
		fmt.Printf("Avg vrscore:            %.1f (max %d)\n", stats.AvgVRScore, stats.MaxVRScore)
	}
	if stats.LatestBatch > 0 {
		fmt.Printf("Latest batch:           %d (%s)\n", stats.LatestBatch, stats.LatestStatus)
	}
	return nil
}
