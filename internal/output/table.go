package output

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/olekukonko/tablewriter"

	"github.com/vijay-prabhu/empscore/internal/combiner"
	"github.com/vijay-prabhu/empscore/internal/model"
	"github.com/vijay-prabhu/empscore/internal/pipeline"
)

// ScoreReport is one employee's score detail with its archived states
type ScoreReport struct {
	Detail  *model.ScoreDetail   `json:"detail"`
	History []model.ScoreHistory `json:"history"`
}

// Table writes data as a formatted table to stdout
func Table(data interface{}) error {
	return TableTo(os.Stdout, data)
}

// TableTo writes data as a formatted table to the given writer
func TableTo(w io.Writer, data interface{}) error {
	switch v := data.(type) {
	case []model.ScoreDetail:
		return scoreDetailsTable(w, v)
	case *model.ScoreDetail:
		return scoreDetail(w, v)
	case *ScoreReport:
		return scoreReport(w, v)
	case []model.Batch:
		return batchesTable(w, v)
	case *pipeline.RunResult:
		return runSummary(w, v)
	case *combiner.Result:
		return applySummary(w, v)
	default:
		return fmt.Errorf("unsupported data type for table output: %T", data)
	}
}

func scoreDetailsTable(w io.Writer, details []model.ScoreDetail) error {
	if len(details) == 0 {
		fmt.Fprintln(w, "No score details found.")
		return nil
	}

	table := tablewriter.NewWriter(w)
	table.Header("EMP ID", "PRSCORE", "VRSCORE", "STATUS", "CREATED BY", "UPDATED")
	for _, d := range details {
		err := table.Append([]string{
			d.EmpID,
			strconv.Itoa(d.PRScore),
			strconv.Itoa(d.VRScore),
			d.Status,
			d.CreatedBy,
			formatTime(d),
		})
		if err != nil {
			return err
		}
	}
	return table.Render()
}

func formatTime(d model.ScoreDetail) string {
	if d.CreatedTime.IsZero() {
		return "-"
	}
	return d.CreatedTime.Format("Jan 02, 2006 15:04")
}

func scoreDetail(w io.Writer, d *model.ScoreDetail) error {
	fmt.Fprintf(w, "Employee:    %s\n", d.EmpID)
	fmt.Fprintf(w, "Personal:    %d (%s)\n", d.PRScore, d.ProficiencyScoreID)
	fmt.Fprintf(w, "Market:      %d (%s)\n", d.VRScore, d.VariableScoreID)
	fmt.Fprintf(w, "Status:      %s\n", d.Status)
	fmt.Fprintf(w, "Updated:     %s by %s\n", formatTime(*d), d.CreatedBy)
	fmt.Fprintln(w)

	table := tablewriter.NewWriter(w)
	table.Header("POINT", "VALUE")
	for _, p := range points(d) {
		if err := table.Append([]string{p.name, strconv.Itoa(p.value)}); err != nil {
			return err
		}
	}
	return table.Render()
}

type point struct {
	name  string
	value int
}

func points(d *model.ScoreDetail) []point {
	return []point{
		{"certification", d.CertificationPoint},
		{"certification population", d.CertificationPopulationPoint},
		{"domain", d.DomainPoint},
		{"domain population", d.DomainPopulationPoint},
		{"education", d.EducationPoint},
		{"experience", d.ExperiencePoint},
		{"experience population", d.ExperiencePopulationPoint},
		{"interview", d.InterviewPoint},
		{"job longevity", d.JobLongevityPoint},
		{"niche skill", d.NicheSkillPoint},
		{"offers", d.NoOfOffersPoint},
		{"referrals", d.ReferralsPoint},
		{"reporting", d.ReportingPoint},
		{"skillset population", d.SkillsetPopulationPoint},
		{"special rating", d.SpecialRatingPoint},
	}
}

func scoreReport(w io.Writer, r *ScoreReport) error {
	if err := scoreDetail(w, r.Detail); err != nil {
		return err
	}

	if len(r.History) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, "History:")

		for i, h := range r.History {
			marker := ""
			if i == 0 {
				marker = " <- latest"
			}
			fmt.Fprintf(w, "  %s  prscore %-5d vrscore %-5d%s\n",
				h.ArchivedTime.Format("Jan 02, 2006 15:04"), h.PRScore, h.VRScore, marker)
		}
	}

	return nil
}

func batchesTable(w io.Writer, batches []model.Batch) error {
	if len(batches) == 0 {
		fmt.Fprintln(w, "No batches found.")
		return nil
	}

	table := tablewriter.NewWriter(w)
	table.Header("BATCH", "STATUS", "REQUESTED BY", "STARTED", "LAST UPDATE")
	for _, b := range batches {
		err := table.Append([]string{
			strconv.Itoa(b.BatchID),
			string(b.Status),
			b.RequestedBy,
			b.CreatedTime.Format("Jan 02 15:04:05"),
			b.UpdatedTime.Format("Jan 02 15:04:05"),
		})
		if err != nil {
			return err
		}
	}
	return table.Render()
}

func runSummary(w io.Writer, r *pipeline.RunResult) error {
	fmt.Fprintf(w, "Batch %d\n", r.BatchID)
	fmt.Fprintln(w, strings.Repeat("-", 30))
	fmt.Fprintf(w, "Eligible profiles:      %d\n", r.Eligible)
	fmt.Fprintf(w, "Population profiles:    %d\n", r.Population)
	fmt.Fprintf(w, "Tables written:         %d\n", len(r.Tables))

	names := make([]string, 0, len(r.Tables))
	for name := range r.Tables {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Fprintf(w, "  %-22s%d rows\n", name, r.Tables[name])
	}

	if r.Apply != nil {
		if err := applySummary(w, r.Apply); err != nil {
			return err
		}
	} else {
		fmt.Fprintln(w, "Score details:          unchanged (dry run)")
	}

	if len(r.Errors) > 0 {
		fmt.Fprintf(w, "\nWarnings (%d):\n", len(r.Errors))
		for _, err := range r.Errors {
			fmt.Fprintf(w, "  - %v\n", err)
		}
	}
	return nil
}

func applySummary(w io.Writer, r *combiner.Result) error {
	fmt.Fprintf(w, "Inserted:               %d\n", r.Inserted)
	fmt.Fprintf(w, "Updated:                %d\n", r.Updated)
	if r.Conflicts > 0 {
		fmt.Fprintf(w, "Insert conflicts:       %d\n", r.Conflicts)
	}
	if len(r.Stale) > 0 {
		fmt.Fprintf(w, "Stale (untouched):      %d\n", len(r.Stale))
	}
	if len(r.Failures) > 0 {
		fmt.Fprintf(w, "\nFailed records (%d):\n", len(r.Failures))
		for _, err := range r.Failures {
			fmt.Fprintf(w, "  - %v\n", err)
		}
	}
	return nil
}
