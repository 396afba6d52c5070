package cli

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/vijay-prabhu/empscore/internal/model"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export score details to CSV or JSON",
	Long: `Export every persisted score detail to stdout.

Supported formats:
  - csv: Comma-separated values (spreadsheet-compatible)
  - json: JSON array of score details

Examples:
  empscore export --format=csv > scores.csv
  empscore export --format=json > scores.json`,
	RunE: runExport,
}

var exportFormat string

func init() {
	rootCmd.AddCommand(exportCmd)

	exportCmd.Flags().StringVar(&exportFormat, "format", "csv", "Export format (csv, json)")
}

func runExport(cmd *cobra.Command, args []string) error {
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

	details, err := db.ListScoreDetails(ctx)
	if err != nil {
		return err
	}

	switch exportFormat {
	case "csv":
		return exportCSV(details)
	case "json":
		return exportJSON(details)
	default:
		return fmt.Errorf("unknown format: %s (use csv or json)", exportFormat)
	}
}

var exportHeader = []string{
	"emp_id", "prscore", "vrscore",
	"certification_point", "certification_population_point",
	"domain_point", "domain_population_point",
	"education_point", "experience_point", "experience_population_point",
	"interview_point", "job_longevity_point", "niche_skill_point",
	"noofoffers_point", "referrals_point", "reporting_point",
	"skillset_population_point", "special_rating_point",
	"status", "created_by", "created_time",
}

func exportRecord(d model.ScoreDetail) []string {
	ints := []int{
		d.PRScore, d.VRScore,
		d.CertificationPoint, d.CertificationPopulationPoint,
		d.DomainPoint, d.DomainPopulationPoint,
		d.EducationPoint, d.ExperiencePoint, d.ExperiencePopulationPoint,
		d.InterviewPoint, d.JobLongevityPoint, d.NicheSkillPoint,
		d.NoOfOffersPoint, d.ReferralsPoint, d.ReportingPoint,
		d.SkillsetPopulationPoint, d.SpecialRatingPoint,
	}

	record := make([]string, 0, len(exportHeader))
	record = append(record, d.EmpID)
	for _, v := range ints {
		record = append(record, strconv.Itoa(v))
	}
	return append(record, d.Status, d.CreatedBy, d.CreatedTime.Format(time.RFC3339))
}

func exportCSV(details []model.ScoreDetail) error {
	w := csv.NewWriter(os.Stdout)
	defer w.Flush()

	// Write header
	if err := w.Write(exportHeader); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	// Write rows
	for _, d := range details {
		if err := w.Write(exportRecord(d)); err != nil {
			return fmt.Errorf("failed to write CSV row: %w", err)
		}
	}

	return nil
}

func exportJSON(details []model.ScoreDetail) error {
	if details == nil {
		details = []model.ScoreDetail{}
	}

	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(details); err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}
	return nil
}
