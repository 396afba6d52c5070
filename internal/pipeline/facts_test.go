package pipeline

import (
	"testing"

	"github.com/vijay-prabhu/empscore/internal/model"
)

func TestBuildFacts(t *testing.T) {
	f, err := BuildFacts(testSnapshot(), FactOptions{CertTrendDays: 730}, testNow)
	if err != nil {
		t.Fatalf("BuildFacts() error: %v", err)
	}

	tests := []struct {
		name string
		got  int
		want int
	}{
		{"eligible", len(f.Eligible), 2},
		{"eligible work", len(f.EligibleWork), 3},
		{"population work", len(f.PopulationWork), 4},
		{"eligible work agg", len(f.EligibleWorkAgg), 2},
		{"population work agg", len(f.PopulationWorkAgg), 3},
		{"eligible domains", len(f.EligibleDomains), 3},
		{"population domains", len(f.PopulationDomains), 4},
		{"eligible tech (deduplicated)", len(f.EligibleTech), 2},
		{"population tech", len(f.PopulationTech), 3},
		{"cert trend", len(f.CertTrend), 1},
		{"eligible certs", len(f.EligibleCerts), 1},
		{"eligible education (latest only)", len(f.EligibleEducation), 1},
		{"eligible interviews", len(f.EligibleInterviews), 2},
		{"eligible offers", len(f.EligibleOffers), 2},
		{"eligible referrals", len(f.EligibleReferrals), 1},
		{"eligible reportings", len(f.EligibleReportings), 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.want {
				t.Errorf("got %d, want %d", tt.got, tt.want)
			}
		})
	}

	if f.EligibleEducation[0].EducationID != 2 {
		t.Errorf("expected latest education id 2, got %d", f.EligibleEducation[0].EducationID)
	}
}

func TestBuildFactsNullCategories(t *testing.T) {
	snap := &model.Snapshot{
		PersonalInfo: []model.PersonalInfo{{EmpID: "E1", RecalculateScoreEligible: "Y"}},
		WorkInfo: []model.WorkInfo{
			{EmpID: "E1", Domain: nil},
			{EmpID: "E1", Domain: str("")},
			{EmpID: "E1", Domain: nil},
		},
		TechnologyStack: []model.TechnologyStack{
			{EmpID: "E1", TechnologyDescription: nil},
			{EmpID: "E1", TechnologyDescription: str("")},
		},
	}

	f, err := BuildFacts(snap, FactOptions{CertTrendDays: 730}, testNow)
	if err != nil {
		t.Fatalf("BuildFacts() error: %v", err)
	}
	// A null category and an empty one stay distinct
	if len(f.EligibleDomains) != 2 {
		t.Errorf("expected 2 distinct domains, got %d", len(f.EligibleDomains))
	}
	if len(f.EligibleTech) != 2 {
		t.Errorf("expected 2 distinct technologies, got %d", len(f.EligibleTech))
	}
}

func TestProgress(t *testing.T) {
	p := Progress{Current: 3, Total: 12}
	if got := p.Percentage(); got != 25 {
		t.Errorf("Percentage() = %d, want 25", got)
	}
	if got := (Progress{}).Percentage(); got != 0 {
		t.Errorf("Percentage() of empty = %d, want 0", got)
	}
	if got := p.ETA(); got != 0 {
		t.Errorf("ETA() without start = %v, want 0", got)
	}
}

func TestSnapshotTables(t *testing.T) {
	tables := SnapshotTables(testSnapshot())

	if len(tables) != 10 {
		t.Fatalf("expected 10 tables, got %d", len(tables))
	}

	rows := map[string]int{}
	for _, tbl := range tables {
		for i, r := range tbl.Rows {
			if len(r) != len(tbl.Columns) {
				t.Errorf("%s row %d: %d values for %d columns", tbl.Name, i, len(r), len(tbl.Columns))
			}
		}
		rows[tbl.Name] = tbl.Len()
	}

	if rows["employee_work_info"] != 4 || rows["employee_offer_info"] != 3 || rows["employee_office_reporting"] != 0 {
		t.Errorf("unexpected row counts %v", rows)
	}
}
