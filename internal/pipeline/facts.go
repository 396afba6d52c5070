package pipeline

import (
	"time"

	"github.com/vijay-prabhu/empscore/internal/aggregate"
	"github.com/vijay-prabhu/empscore/internal/model"
	"github.com/vijay-prabhu/empscore/internal/personal"
)

// Facts are the joined inputs of the score engines. Eligible rows belong
// to profiles flagged for recalculation; population rows belong to every
// profile in the personal info table.
type Facts struct {
	Eligible []model.PersonalInfo

	EligibleWork   []model.WorkInfo
	PopulationWork []model.WorkInfo

	EligibleWorkAgg   []model.WorkAggregate
	PopulationWorkAgg []model.WorkAggregate

	// Distinct (emp_id, domain) pairs
	EligibleDomains   []model.WorkInfo
	PopulationDomains []model.WorkInfo

	// Distinct (emp_id, technology_description) pairs
	EligibleTech   []model.TechnologyStack
	PopulationTech []model.TechnologyStack

	// CertTrend holds every certificate completed inside the trend window,
	// whoever holds it
	CertTrend     []model.Certificate
	EligibleCerts []model.Certificate

	// EligibleEducation keeps the latest education row per employee
	EligibleEducation []model.Education

	EligibleInterviews []model.Interview
	EligibleOffers     []model.Activity
	EligibleReferrals  []model.Activity
	EligibleReportings []model.Activity
}

// FactOptions tunes BuildFacts
type FactOptions struct {
	// ActiveProfileDays drops eligible profiles not updated within the
	// window. 0 keeps every eligible profile.
	ActiveProfileDays int
	CertTrendDays     int
}

// BuildFacts joins the snapshot tables to the eligible and population
// profile sets
func BuildFacts(snap *model.Snapshot, opts FactOptions, now time.Time) (*Facts, error) {
	eligible := make([]model.PersonalInfo, 0, len(snap.PersonalInfo))
	for _, p := range snap.PersonalInfo {
		if p.Eligible() {
			eligible = append(eligible, p)
		}
	}
	if opts.ActiveProfileDays > 0 {
		eligible = aggregate.FilterByRecency(eligible,
			func(p model.PersonalInfo) *time.Time { return p.UpdatedTime },
			opts.ActiveProfileDays, now)
	}

	isEligible := empSet(eligible, func(p model.PersonalInfo) string { return p.EmpID })
	inPopulation := empSet(snap.PersonalInfo, func(p model.PersonalInfo) string { return p.EmpID })

	f := &Facts{Eligible: eligible}

	f.EligibleWork = semiJoin(snap.WorkInfo, isEligible, workEmp)
	f.PopulationWork = semiJoin(snap.WorkInfo, inPopulation, workEmp)
	f.EligibleWorkAgg = aggregate.AggregateWorkHistory(f.EligibleWork)
	f.PopulationWorkAgg = aggregate.AggregateWorkHistory(f.PopulationWork)

	domainKey := func(w model.WorkInfo) string { return w.EmpID + "\x00" + model.Str(w.Domain) + nullMark(w.Domain == nil) }
	f.EligibleDomains = distinct(f.EligibleWork, domainKey)
	f.PopulationDomains = distinct(f.PopulationWork, domainKey)

	techKey := func(t model.TechnologyStack) string {
		return t.EmpID + "\x00" + model.Str(t.TechnologyDescription) + nullMark(t.TechnologyDescription == nil)
	}
	techEmp := func(t model.TechnologyStack) string { return t.EmpID }
	f.EligibleTech = distinct(semiJoin(snap.TechnologyStack, isEligible, techEmp), techKey)
	f.PopulationTech = distinct(semiJoin(snap.TechnologyStack, inPopulation, techEmp), techKey)

	f.CertTrend = aggregate.FilterByRecency(snap.Certificates,
		func(c model.Certificate) *time.Time { return c.CompletionDate },
		opts.CertTrendDays, now)
	f.EligibleCerts = semiJoin(snap.Certificates, isEligible, func(c model.Certificate) string { return c.EmpID })

	latest, err := personal.LatestEducation(snap.Education)
	if err != nil {
		return nil, err
	}
	f.EligibleEducation = semiJoin(latest, isEligible, func(e model.Education) string { return e.EmpID })

	f.EligibleInterviews = semiJoin(snap.Interviews, isEligible, func(i model.Interview) string { return i.EmpID })

	activityEmp := func(a model.Activity) string { return a.EmpID }
	f.EligibleOffers = semiJoin(snap.Offers, isEligible, activityEmp)
	f.EligibleReferrals = semiJoin(snap.Referrals, isEligible, activityEmp)
	f.EligibleReportings = semiJoin(snap.Reportings, isEligible, activityEmp)

	return f, nil
}

func workEmp(w model.WorkInfo) string { return w.EmpID }

func nullMark(null bool) string {
	if null {
		return "\x00null"
	}
	return ""
}

func empSet[T any](rows []T, emp func(T) string) map[string]bool {
	set := make(map[string]bool, len(rows))
	for _, r := range rows {
		set[emp(r)] = true
	}
	return set
}

// semiJoin keeps the rows whose employee is in set, in input order
func semiJoin[T any](rows []T, set map[string]bool, emp func(T) string) []T {
	var out []T
	for _, r := range rows {
		if set[emp(r)] {
			out = append(out, r)
		}
	}
	return out
}

// distinct keeps the first row of every key, in input order
func distinct[T any](rows []T, key func(T) string) []T {
	seen := make(map[string]bool, len(rows))
	var out []T
	for _, r := range rows {
		k := key(r)
		if seen[k] {
			continue
		}
		seen[k] = true
		out = append(out, r)
	}
	return out
}
