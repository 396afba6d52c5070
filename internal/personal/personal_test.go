package personal

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/vijay-prabhu/empscore/internal/model"
)

var now = time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

func day(y int, m time.Month, d int) *time.Time {
	t := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return &t
}

func testMeta() []model.ScoreMeta {
	return []model.ScoreMeta{
		{ScoreName: MetaEducationType, Category: model.StrPtr("Phd"), Score: 90},
		{ScoreName: MetaEducationType, Category: model.StrPtr("High School"), Score: 25},
		{ScoreName: MetaEducationType, Category: model.StrPtr("Phd"), Score: 1},
		{ScoreName: MetaExperienceYear, RangeStart: model.IntPtr(0), RangeEnd: model.IntPtr(2), Score: 10},
		{ScoreName: MetaExperienceYear, RangeStart: model.IntPtr(3), RangeEnd: model.IntPtr(7), Score: 30},
		{ScoreName: MetaExperienceYear, RangeStart: model.IntPtr(7), RangeEnd: model.IntPtr(10), Score: 50},
	}
}

func TestLatestEducation(t *testing.T) {
	rows := []model.Education{
		{EmpID: "E2", EducationID: 4, EducationTypeDesc: model.StrPtr("High School")},
		{EmpID: "E1", EducationID: 1, EducationTypeDesc: model.StrPtr("High School")},
		{EmpID: "E1", EducationID: 3, EducationTypeDesc: model.StrPtr("Phd")},
		{EmpID: "E1", EducationID: 3, EducationTypeDesc: model.StrPtr("Phd")},
	}

	got, err := LatestEducation(rows)
	if err != nil {
		t.Fatalf("LatestEducation failed: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(got))
	}
	if got[0].EmpID != "E1" || got[0].EducationID != 3 {
		t.Errorf("expected E1 education 3, got %+v", got[0])
	}
	if got[1].EmpID != "E2" || got[1].EducationID != 4 {
		t.Errorf("expected E2 education 4, got %+v", got[1])
	}
}

func TestEducationTypeScore(t *testing.T) {
	edu := []model.Education{
		{EmpID: "E1", EducationID: 3, EducationTypeDesc: model.StrPtr("Phd")},
		{EmpID: "E2", EducationID: 1, EducationTypeDesc: model.StrPtr("Diploma")},
		{EmpID: "E3", EducationID: 2},
	}

	got, err := EducationTypeScore(edu, testMeta())
	if err != nil {
		t.Fatalf("EducationTypeScore failed: %v", err)
	}
	if got[0].Score == nil || *got[0].Score != 90 {
		t.Errorf("expected E1 score 90 from the first Phd rule, got %v", got[0].Score)
	}
	if got[1].Score != nil {
		t.Errorf("expected nil score for unmatched type, got %d", *got[1].Score)
	}
	if got[2].Score != nil {
		t.Errorf("expected nil score for null type, got %d", *got[2].Score)
	}
}

func TestExpYearScore(t *testing.T) {
	workAgg := []model.WorkAggregate{
		{EmpID: "E1", TotalExp: 0},
		{EmpID: "E2", TotalExp: 5},
		{EmpID: "E3", TotalExp: 7},
		{EmpID: "E4", TotalExp: 25},
	}

	got, err := ExpYearScore(workAgg, testMeta())
	if err != nil {
		t.Fatalf("ExpYearScore failed: %v", err)
	}

	want := []*int{model.IntPtr(10), model.IntPtr(30), model.IntPtr(30), nil}
	for i, w := range want {
		switch {
		case w == nil && got[i].Score != nil:
			t.Errorf("%s: expected nil score, got %d", got[i].EmpID, *got[i].Score)
		case w != nil && (got[i].Score == nil || *got[i].Score != *w):
			t.Errorf("%s: expected %d, got %v", got[i].EmpID, *w, got[i].Score)
		}
	}
}

func TestExpYearScoreOpenEndedRange(t *testing.T) {
	meta := []model.ScoreMeta{
		{ScoreName: MetaExperienceYear, RangeStart: model.IntPtr(0), RangeEnd: model.IntPtr(4), Score: 10},
		{ScoreName: MetaExperienceYear, RangeStart: model.IntPtr(3), RangeEnd: model.IntPtr(math.MaxInt), Score: 50},
	}
	workAgg := []model.WorkAggregate{
		{EmpID: "E1", TotalExp: 3},
		{EmpID: "E2", TotalExp: 40},
		{EmpID: "E3", TotalExp: -1},
	}

	got, err := ExpYearScore(workAgg, meta)
	if err != nil {
		t.Fatalf("ExpYearScore failed: %v", err)
	}

	// Overlapping ranges: the first rule wins
	if got[0].Score == nil || *got[0].Score != 10 {
		t.Errorf("E1: expected 10, got %v", got[0].Score)
	}
	if got[1].Score == nil || *got[1].Score != 50 {
		t.Errorf("E2: expected 50, got %v", got[1].Score)
	}
	if got[2].Score != nil {
		t.Errorf("E3: expected nil score, got %d", *got[2].Score)
	}
}

func TestStaleMeta(t *testing.T) {
	meta := []model.ScoreMeta{
		{ScoreName: MetaEducationType, Category: model.StrPtr("Phd"), Score: 90},
	}

	_, err := ExpYearScore([]model.WorkAggregate{{EmpID: "E1"}}, meta)
	var stale *StaleMetaError
	if !errors.As(err, &stale) {
		t.Fatalf("expected StaleMetaError, got %v", err)
	}
	if stale.ScoreName != MetaExperienceYear {
		t.Errorf("expected %s, got %s", MetaExperienceYear, stale.ScoreName)
	}

	if _, err := EducationTypeScore(nil, meta); err != nil {
		t.Errorf("education rules present, unexpected error: %v", err)
	}
}

func TestValidCertificateScore(t *testing.T) {
	certs := []model.Certificate{
		{EmpID: "E1", CertificateID: model.StrPtr("C1"), CompletionDate: model.TimePtr(now.AddDate(-1, 0, 0))},
		{EmpID: "E1", CertificateID: model.StrPtr("C2"), CompletionDate: model.TimePtr(now.AddDate(-6, 0, 0))},
		{EmpID: "E2", CertificateID: model.StrPtr("C3")},
		{EmpID: "E3", CertificateID: model.StrPtr("C4"), CompletionDate: model.TimePtr(now.AddDate(-2, 0, 0))},
		{EmpID: "E3", CertificateID: model.StrPtr("C4"), CompletionDate: model.TimePtr(now.AddDate(-3, 0, 0))},
		{EmpID: "E3", CertificateID: model.StrPtr("C5"), CompletionDate: model.TimePtr(now.AddDate(-5, 0, 0))},
	}

	got, err := ValidCertificateScore(certs, DefaultValidCertYears, now)
	if err != nil {
		t.Fatalf("ValidCertificateScore failed: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 employees, got %+v", got)
	}
	if got[0].EmpID != "E1" || got[0].Score != 10 {
		t.Errorf("expected E1 cert_score=10, got %+v", got[0])
	}
	if got[1].EmpID != "E3" || got[1].Count != 2 || got[1].Score != 20 {
		t.Errorf("expected E3 two distinct certificates, got %+v", got[1])
	}
}

func TestDomainAndSkillSetScore(t *testing.T) {
	domains := DomainScore([]model.WorkAggregate{{EmpID: "E1", NoOfDomain: 3}})
	if domains[0].Score != 30 {
		t.Errorf("expected domain_score=30, got %d", domains[0].Score)
	}

	skills, err := SkillSetScore([]model.TechnologyStack{
		{EmpID: "E1", TechnologyDescription: model.StrPtr("Go")},
		{EmpID: "E1", TechnologyDescription: model.StrPtr("Go")},
		{EmpID: "E1", TechnologyDescription: model.StrPtr("SQL")},
		{EmpID: "E1"},
	})
	if err != nil {
		t.Fatalf("SkillSetScore failed: %v", err)
	}
	if skills[0].Count != 2 || skills[0].Score != 20 {
		t.Errorf("expected 2 skills scoring 20, got %+v", skills[0])
	}
}

func TestReliabilityScore(t *testing.T) {
	tests := []struct {
		name     string
		agg      model.WorkAggregate
		wantRel1 int
		wantRel2 int
	}{
		{"single job", model.WorkAggregate{EmpID: "E1", TotalExp: 5, TotalSwitch: 1, SwitchRel: 1}, 50, 25},
		{"floors", model.WorkAggregate{EmpID: "E2", TotalExp: 7, TotalSwitch: 3, SwitchRel: 2}, 23, 23},
		{"no switches", model.WorkAggregate{EmpID: "E3", TotalExp: 4}, 0, 40},
		{"negative span floors down", model.WorkAggregate{EmpID: "E4", TotalExp: -1, TotalSwitch: 3}, -4, -10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ReliabilityScore([]model.WorkAggregate{tt.agg})[0]
			if got.SwitchRelCount != tt.agg.SwitchRel+1 {
				t.Errorf("switch_rel_count = %d, want %d", got.SwitchRelCount, tt.agg.SwitchRel+1)
			}
			if got.RelScore1 != tt.wantRel1 {
				t.Errorf("rel_score1 = %d, want %d", got.RelScore1, tt.wantRel1)
			}
			if got.RelScore2 != tt.wantRel2 {
				t.Errorf("rel_score2 = %d, want %d", got.RelScore2, tt.wantRel2)
			}
		})
	}
}

func TestInterviewScore(t *testing.T) {
	interviews := []model.Interview{
		{EmpID: "E1", IntDate: day(2021, 6, 1), IntStatusDesc: StatusSelected},
		{EmpID: "E1", IntDate: day(2021, 1, 1), IntStatusDesc: StatusRejected},
		{EmpID: "E1", IntDate: day(2020, 1, 1), IntStatusDesc: "Scheduled"},
		{EmpID: "E2", IntDate: day(2022, 1, 1), IntStatusDesc: StatusSelected},
		{EmpID: "E2", IntDate: day(2022, 1, 1), IntStatusDesc: StatusSelected},
		{EmpID: "E2", IntDate: day(2022, 3, 1), IntStatusDesc: StatusRejected},
		{EmpID: "E3", IntStatusDesc: StatusSelected},
		{EmpID: "E4", IntDate: day(2022, 1, 1), IntStatusDesc: "Scheduled"},
	}

	got := InterviewScore(interviews, nil)
	want := map[string]int{
		"E1": 10,           // -10 + 20
		"E2": 10 + 10 - 20, // tied dates share rank 1
		"E3": 0,
	}
	if len(got) != len(want) {
		t.Fatalf("expected %d employees, got %+v", len(want), got)
	}
	for _, s := range got {
		w, ok := want[s.EmpID]
		if !ok {
			t.Errorf("unexpected employee %s", s.EmpID)
			continue
		}
		if s.Score != w {
			t.Errorf("%s: expected %d, got %d", s.EmpID, w, s.Score)
		}
	}
}

func TestCountScore(t *testing.T) {
	offers := []model.Activity{
		{EmpID: "E1", ID: model.StrPtr("O1")},
		{EmpID: "E1", ID: model.StrPtr("O2")},
		{EmpID: "E2"},
	}

	got, err := CountScore(offers)
	if err != nil {
		t.Fatalf("CountScore failed: %v", err)
	}
	if got[0].EmpID != "E1" || got[0].Score != 20 {
		t.Errorf("expected E1 score 20, got %+v", got[0])
	}
	if got[1].EmpID != "E2" || got[1].Score != 0 {
		t.Errorf("expected E2 score 0, got %+v", got[1])
	}
}
