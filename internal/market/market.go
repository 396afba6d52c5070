// Package market scores employees against the population: how rare their
// experience is and how well their domains, skills and certificates align
// with what the population holds.
package market

import (
	"github.com/vijay-prabhu/empscore/internal/aggregate"
	"github.com/vijay-prabhu/empscore/internal/model"
)

// ExperienceRatio is the population share of every total_exp value
func ExperienceRatio(population []model.WorkAggregate) []aggregate.Ratio[int] {
	return aggregate.CategoryRatio(population, func(w model.WorkAggregate) (int, bool) {
		return w.TotalExp, true
	})
}

// DomainRatio is the population share of every domain
func DomainRatio(population []model.WorkInfo) []aggregate.Ratio[string] {
	return aggregate.CategoryRatio(population, func(w model.WorkInfo) (string, bool) {
		return nullable(w.Domain)
	})
}

// SkillSetRatio is the population share of every technology
func SkillSetRatio(population []model.TechnologyStack) []aggregate.Ratio[string] {
	return aggregate.CategoryRatio(population, func(t model.TechnologyStack) (string, bool) {
		return nullable(t.TechnologyDescription)
	})
}

// CertificateTrendRatio is the share of every certificate name among
// recently completed certificates
func CertificateTrendRatio(trend []model.Certificate) []aggregate.Ratio[string] {
	return aggregate.CategoryRatio(trend, func(c model.Certificate) (string, bool) {
		return nullable(c.CertificateName)
	})
}

// TotalExpWithPopulation joins each employee's total experience to the
// inverted population ratio (100 - ratio), so rarer experience scores
// higher. Unmatched values score 0. The ratio slice is not modified.
func TotalExpWithPopulation(workAgg []model.WorkAggregate, expRatio []aggregate.Ratio[int]) []model.ExperienceRatioScore {
	inverted := make(map[int]int, len(expRatio))
	for _, r := range expRatio {
		inverted[r.Value] = 100 - r.Ratio
	}

	out := make([]model.ExperienceRatioScore, 0, len(workAgg))
	for _, w := range workAgg {
		out = append(out, model.ExperienceRatioScore{
			WorkAggregate: w,
			TotalExpRatio: inverted[w.TotalExp],
		})
	}
	return out
}

// DomainWithPopulation joins each employee/domain row to the domain ratio
func DomainWithPopulation(personWork []model.WorkInfo, domainRatio []aggregate.Ratio[string]) []model.CategoryScore {
	return withPopulation(personWork, func(w model.WorkInfo) (string, *string) {
		return w.EmpID, w.Domain
	}, domainRatio)
}

// SkillSetWithPopulation joins each employee/technology row to the skill ratio
func SkillSetWithPopulation(personTech []model.TechnologyStack, skillRatio []aggregate.Ratio[string]) []model.CategoryScore {
	return withPopulation(personTech, func(t model.TechnologyStack) (string, *string) {
		return t.EmpID, t.TechnologyDescription
	}, skillRatio)
}

// CertificateWithTrend joins each employee/certificate row to the
// certificate trend ratio
func CertificateWithTrend(personCert []model.Certificate, trendRatio []aggregate.Ratio[string]) []model.CategoryScore {
	return withPopulation(personCert, func(c model.Certificate) (string, *string) {
		return c.EmpID, c.CertificateName
	}, trendRatio)
}

// SumByEmployee adds up the joined ratios into one market score per employee
func SumByEmployee(scores []model.CategoryScore) ([]model.EmployeeScore, error) {
	groups, err := aggregate.GroupAggregate(scores,
		func(s model.CategoryScore) string { return s.EmpID },
		func(s model.CategoryScore) (any, bool) { return s.Ratio, true },
		aggregate.Sum)
	if err != nil {
		return nil, err
	}

	out := make([]model.EmployeeScore, len(groups))
	for i, g := range groups {
		out[i] = model.EmployeeScore{EmpID: g.Key, Score: g.Value}
	}
	return out, nil
}

// withPopulation left-joins rows to ratios on a nullable category.
// Null categories never match.
func withPopulation[T any](rows []T, key func(T) (string, *string), ratios []aggregate.Ratio[string]) []model.CategoryScore {
	idx := aggregate.RatioIndex(ratios)

	out := make([]model.CategoryScore, 0, len(rows))
	for _, r := range rows {
		emp, cat := key(r)
		s := model.CategoryScore{EmpID: emp}
		if cat != nil {
			s.Category = *cat
			s.Ratio = idx[*cat]
		}
		out = append(out, s)
	}
	return out
}

func nullable(s *string) (string, bool) {
	if s == nil {
		return "", false
	}
	return *s, true
}
