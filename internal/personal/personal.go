// Package personal computes the rule-based scores that depend only on an
// employee's own records.
package personal

import (
	"sort"
	"time"

	"github.com/vijay-prabhu/empscore/internal/aggregate"
	"github.com/vijay-prabhu/empscore/internal/model"
)

// Interview outcomes that carry a score
const (
	StatusSelected = "Selected"
	StatusRejected = "Rejected"
)

// DefaultInterviewStatuses are the outcomes scored when none are configured
var DefaultInterviewStatuses = []string{StatusSelected, StatusRejected}

// DefaultValidCertYears is how long a certificate keeps counting
const DefaultValidCertYears = 5

// pointsPerItem is the flat score of each counted item
const pointsPerItem = 10

// LatestEducation keeps one row per employee: the one with the highest
// education_id
func LatestEducation(rows []model.Education) ([]model.Education, error) {
	maxIDs, err := aggregate.GroupAggregate(rows,
		func(e model.Education) string { return e.EmpID },
		func(e model.Education) (any, bool) { return e.EducationID, true },
		aggregate.Max)
	if err != nil {
		return nil, err
	}
	latest := aggregate.GroupIndex(maxIDs)

	seen := make(map[string]bool, len(latest))
	var out []model.Education
	for _, e := range rows {
		if seen[e.EmpID] || e.EducationID != latest[e.EmpID] {
			continue
		}
		seen[e.EmpID] = true
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].EmpID < out[j].EmpID })
	return out, nil
}

// EducationTypeScore scores each education row by the education_type rule
// matching its type. Rows without a rule keep a nil score.
func EducationTypeScore(edu []model.Education, meta []model.ScoreMeta) ([]model.EducationScore, error) {
	eduRules, err := rules(meta, MetaEducationType)
	if err != nil {
		return nil, err
	}
	idx := categoryScores(eduRules)

	out := make([]model.EducationScore, 0, len(edu))
	for _, e := range edu {
		s := model.EducationScore{
			EmpID:             e.EmpID,
			EducationID:       e.EducationID,
			EducationTypeDesc: e.EducationTypeDesc,
		}
		if e.EducationTypeDesc != nil {
			if score, ok := idx[*e.EducationTypeDesc]; ok {
				s.Score = model.IntPtr(score)
			}
		}
		out = append(out, s)
	}
	return out, nil
}

// ExpYearScore buckets each employee's total experience into the
// experience_year ranges. Years outside every range keep a nil score.
func ExpYearScore(workAgg []model.WorkAggregate, meta []model.ScoreMeta) ([]model.ExpYearScore, error) {
	expRules, err := rules(meta, MetaExperienceYear)
	if err != nil {
		return nil, err
	}

	out := make([]model.ExpYearScore, 0, len(workAgg))
	for _, w := range workAgg {
		s := model.ExpYearScore{EmpID: w.EmpID, TotalExp: w.TotalExp}
		if score, ok := rangeScore(expRules, w.TotalExp); ok {
			s.Score = model.IntPtr(score)
		}
		out = append(out, s)
	}
	return out, nil
}

// ValidCertificateScore counts the distinct certificates completed no more
// than validYears whole years before now. Certificates without a
// completion date never count.
func ValidCertificateScore(certs []model.Certificate, validYears int, now time.Time) ([]model.CountScore, error) {
	var valid []model.Certificate
	for _, c := range certs {
		if c.CompletionDate == nil {
			continue
		}
		if aggregate.Years(*c.CompletionDate, now) <= validYears {
			valid = append(valid, c)
		}
	}

	return countScores(valid,
		func(c model.Certificate) string { return c.EmpID },
		func(c model.Certificate) (any, bool) { return deref(c.CertificateID) },
		aggregate.NUnique)
}

// DomainScore scores ten points per distinct domain
func DomainScore(workAgg []model.WorkAggregate) []model.CountScore {
	out := make([]model.CountScore, 0, len(workAgg))
	for _, w := range workAgg {
		out = append(out, model.CountScore{
			EmpID: w.EmpID,
			Count: w.NoOfDomain,
			Score: w.NoOfDomain * pointsPerItem,
		})
	}
	return out
}

// SkillSetScore scores ten points per distinct technology
func SkillSetScore(tech []model.TechnologyStack) ([]model.CountScore, error) {
	return countScores(tech,
		func(t model.TechnologyStack) string { return t.EmpID },
		func(t model.TechnologyStack) (any, bool) { return deref(t.TechnologyDescription) },
		aggregate.NUnique)
}

// ReliabilityScore rewards long tenures. rel_score1 divides by every
// switch and is 0 when there are none; rel_score2 divides by the
// non-short-contract switches plus one.
func ReliabilityScore(workAgg []model.WorkAggregate) []model.ReliabilityScore {
	out := make([]model.ReliabilityScore, 0, len(workAgg))
	for _, w := range workAgg {
		s := model.ReliabilityScore{
			WorkAggregate:  w,
			SwitchRelCount: w.SwitchRel + 1,
		}
		if w.TotalSwitch != 0 {
			s.RelScore1 = floorDiv(w.TotalExp*10, w.TotalSwitch)
		}
		s.RelScore2 = floorDiv(w.TotalExp*10, s.SwitchRelCount)
		out = append(out, s)
	}
	return out
}

// InterviewScore weighs each interview outcome by its chronological
// position: +1 for Selected, -1 for Rejected, times 10, times the dense
// rank of its date among the employee's interviews. Only interviews whose
// status is in validStatuses are considered; a considered interview with
// no date adds nothing but still yields a row for the employee.
func InterviewScore(interviews []model.Interview, validStatuses []string) []model.EmployeeScore {
	if validStatuses == nil {
		validStatuses = DefaultInterviewStatuses
	}
	valid := make(map[string]bool, len(validStatuses))
	for _, s := range validStatuses {
		valid[s] = true
	}

	byEmp := make(map[string][]model.Interview)
	for _, iv := range interviews {
		if valid[iv.IntStatusDesc] {
			byEmp[iv.EmpID] = append(byEmp[iv.EmpID], iv)
		}
	}

	out := make([]model.EmployeeScore, 0, len(byEmp))
	for emp, rows := range byEmp {
		rank := denseRank(rows)
		total := 0
		for _, iv := range rows {
			if iv.IntDate == nil {
				continue
			}
			total += statusValue(iv.IntStatusDesc) * pointsPerItem * rank[iv.IntDate.UnixNano()]
		}
		out = append(out, model.EmployeeScore{EmpID: emp, Score: total})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].EmpID < out[j].EmpID })
	return out
}

// CountScore scores ten points per activity with a non-null id. It serves
// offers, referrals and office reporting alike.
func CountScore(activities []model.Activity) ([]model.CountScore, error) {
	return countScores(activities,
		func(a model.Activity) string { return a.EmpID },
		func(a model.Activity) (any, bool) { return deref(a.ID) },
		aggregate.Count)
}

func countScores[T any](rows []T, emp func(T) string, value func(T) (any, bool), fn aggregate.AggFunc) ([]model.CountScore, error) {
	groups, err := aggregate.GroupAggregate(rows, emp, value, fn)
	if err != nil {
		return nil, err
	}
	out := make([]model.CountScore, len(groups))
	for i, g := range groups {
		out[i] = model.CountScore{EmpID: g.Key, Count: g.Value, Score: g.Value * pointsPerItem}
	}
	return out, nil
}

// denseRank ranks the distinct interview dates from 1, earliest first
func denseRank(rows []model.Interview) map[int64]int {
	var dates []int64
	seen := make(map[int64]bool)
	for _, iv := range rows {
		if iv.IntDate == nil {
			continue
		}
		k := iv.IntDate.UnixNano()
		if !seen[k] {
			seen[k] = true
			dates = append(dates, k)
		}
	}
	sort.Slice(dates, func(i, j int) bool { return dates[i] < dates[j] })

	rank := make(map[int64]int, len(dates))
	for i, d := range dates {
		rank[d] = i + 1
	}
	return rank
}

func statusValue(status string) int {
	switch status {
	case StatusSelected:
		return 1
	case StatusRejected:
		return -1
	default:
		return 0
	}
}

func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

func deref(s *string) (any, bool) {
	if s == nil {
		return nil, false
	}
	return *s, true
}
