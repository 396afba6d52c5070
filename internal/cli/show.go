package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vijay-prabhu/empscore/internal/output"
)

var showHistory bool

var showCmd = &cobra.Command{
	Use:   "show <emp_id>",
	Short: "Show an employee's score detail",
	Long: `Show every point of an employee's composite score, followed by the
archived states it replaced.

Examples:
  empscore show E1001
  empscore show E1001 --history=false
  empscore show E1001 -o json`,
	Args: cobra.ExactArgs(1),
	RunE: runShow,
}

func init() {
	rootCmd.AddCommand(showCmd)
	showCmd.Flags().BoolVar(&showHistory, "history", true, "Include archived scores")
}

func runShow(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	empID := args[0]

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

	detail, err := db.GetScoreDetail(ctx, empID)
	if err != nil {
		return fmt.Errorf("database error: %w", err)
	}
	if detail == nil {
		return fmt.Errorf("no score detail for %s", empID)
	}

	report := &output.ScoreReport{Detail: detail}
	if showHistory {
		report.History, err = db.ListScoreHistory(ctx, empID)
		if err != nil {
			return fmt.Errorf("database error: %w", err)
		}
	}

	return output.Output(outputFmt, report)
}
