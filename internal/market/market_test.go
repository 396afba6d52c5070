package market

import (
	"testing"

	"github.com/vijay-prabhu/empscore/internal/aggregate"
	"github.com/vijay-prabhu/empscore/internal/model"
)

func TestTotalExpWithPopulation(t *testing.T) {
	workAgg := []model.WorkAggregate{
		{EmpID: "E1", TotalExp: 5, TotalSwitch: 1, SwitchRel: 1, NoOfDomain: 1},
		{EmpID: "E2", TotalExp: 12},
	}
	ratios := []aggregate.Ratio[int]{{Value: 5, Count: 1, Ratio: 20}}

	got := TotalExpWithPopulation(workAgg, ratios)
	if len(got) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(got))
	}
	if got[0].TotalExpRatio != 80 {
		t.Errorf("expected E1 total_exp_ratio=80, got %d", got[0].TotalExpRatio)
	}
	if got[1].TotalExpRatio != 0 {
		t.Errorf("expected unmatched E2 total_exp_ratio=0, got %d", got[1].TotalExpRatio)
	}
	if ratios[0].Ratio != 20 {
		t.Errorf("input ratios were modified: %+v", ratios[0])
	}
}

func TestTotalExpInversionHolds(t *testing.T) {
	for r := 0; r <= 100; r += 7 {
		ratios := []aggregate.Ratio[int]{{Value: 3, Ratio: r}}
		got := TotalExpWithPopulation([]model.WorkAggregate{{EmpID: "E1", TotalExp: 3}}, ratios)
		if got[0].TotalExpRatio != 100-r {
			t.Errorf("ratio %d: expected %d, got %d", r, 100-r, got[0].TotalExpRatio)
		}
	}
}

func TestExperienceRatioFromPopulation(t *testing.T) {
	population := []model.WorkAggregate{
		{EmpID: "E1", TotalExp: 5},
		{EmpID: "E2", TotalExp: 3},
		{EmpID: "E3", TotalExp: 3},
		{EmpID: "E4", TotalExp: 3},
		{EmpID: "E5", TotalExp: 8},
	}

	got := TotalExpWithPopulation(population[:1], ExperienceRatio(population))
	if got[0].TotalExpRatio != 80 {
		t.Errorf("expected 80, got %d", got[0].TotalExpRatio)
	}
}

func TestDomainWithPopulation(t *testing.T) {
	population := []model.WorkInfo{
		{EmpID: "E1", Domain: model.StrPtr("Banking")},
		{EmpID: "E2", Domain: model.StrPtr("Banking")},
		{EmpID: "E3", Domain: model.StrPtr("Retail")},
		{EmpID: "E4", Domain: model.StrPtr("Health")},
		{EmpID: "E5"},
	}
	person := []model.WorkInfo{
		{EmpID: "E1", Domain: model.StrPtr("Banking")},
		{EmpID: "E1", Domain: model.StrPtr("Retail")},
		{EmpID: "E1", Domain: model.StrPtr("Space")},
		{EmpID: "E1"},
	}

	scores := DomainWithPopulation(person, DomainRatio(population))
	wantRatios := []int{50, 25, 0, 0}
	for i, want := range wantRatios {
		if scores[i].Ratio != want {
			t.Errorf("row %d: expected ratio %d, got %d", i, want, scores[i].Ratio)
		}
	}

	sums, err := SumByEmployee(scores)
	if err != nil {
		t.Fatalf("SumByEmployee failed: %v", err)
	}
	if len(sums) != 1 || sums[0].Score != 75 {
		t.Errorf("expected E1 ms_domain_score=75, got %+v", sums)
	}
}

func TestSkillSetAndCertificate(t *testing.T) {
	tech := []model.TechnologyStack{
		{EmpID: "E1", TechnologyDescription: model.StrPtr("Go")},
		{EmpID: "E2", TechnologyDescription: model.StrPtr("Go")},
		{EmpID: "E2", TechnologyDescription: model.StrPtr("SQL")},
		{EmpID: "E3", TechnologyDescription: model.StrPtr("SQL")},
	}
	skills := SkillSetWithPopulation(tech, SkillSetRatio(tech))
	sums, err := SumByEmployee(skills)
	if err != nil {
		t.Fatalf("SumByEmployee failed: %v", err)
	}
	want := map[string]int{"E1": 50, "E2": 100, "E3": 50}
	for _, s := range sums {
		if want[s.EmpID] != s.Score {
			t.Errorf("%s: expected %d, got %d", s.EmpID, want[s.EmpID], s.Score)
		}
	}

	trend := []model.Certificate{
		{EmpID: "E9", CertificateName: model.StrPtr("CKA")},
	}
	certs := CertificateWithTrend([]model.Certificate{
		{EmpID: "E1", CertificateName: model.StrPtr("CKA")},
		{EmpID: "E1", CertificateName: model.StrPtr("PMP")},
	}, CertificateTrendRatio(trend))
	if certs[0].Ratio != 100 || certs[1].Ratio != 0 {
		t.Errorf("unexpected certificate ratios: %+v", certs)
	}
}
