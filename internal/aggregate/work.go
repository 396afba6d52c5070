package aggregate

import (
	"sort"

	"github.com/vijay-prabhu/empscore/internal/model"
)

// ContractingType is the employment type treated as short-term work
const ContractingType = "Contracting"

// shortTermYears is the longest contract still counted as short-term
const shortTermYears = 2

type workAcc struct {
	agg     model.WorkAggregate
	domains map[string]struct{}
}

// AggregateWorkHistory summarises work rows into one WorkAggregate per
// employee, ordered by emp_id.
//
// A row missing either date contributes zero years and is never counted
// as a short-term contract.
func AggregateWorkHistory(rows []model.WorkInfo) []model.WorkAggregate {
	byEmp := make(map[string]*workAcc)
	for _, r := range rows {
		acc, ok := byEmp[r.EmpID]
		if !ok {
			acc = &workAcc{
				agg:     model.WorkAggregate{EmpID: r.EmpID},
				domains: make(map[string]struct{}),
			}
			byEmp[r.EmpID] = acc
		}

		shortContract := false
		if r.StartDate != nil && r.EndDate != nil {
			years := Years(*r.StartDate, *r.EndDate)
			acc.agg.TotalExp += years
			shortContract = model.Str(r.EmploymentType) == ContractingType && years <= shortTermYears
		}
		if !shortContract {
			acc.agg.SwitchRel++
		}
		if r.WorkExpID != nil {
			acc.agg.TotalSwitch++
		}
		if r.Domain != nil {
			acc.domains[*r.Domain] = struct{}{}
		}
	}

	out := make([]model.WorkAggregate, 0, len(byEmp))
	for _, acc := range byEmp {
		acc.agg.NoOfDomain = len(acc.domains)
		out = append(out, acc.agg)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].EmpID < out[j].EmpID })
	return out
}
