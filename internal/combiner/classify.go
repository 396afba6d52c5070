package combiner

import (
	"sort"

	"github.com/vijay-prabhu/empscore/internal/model"
)

// Update pairs a fresh composite with the persisted detail it replaces
type Update struct {
	Composite
	Prior model.ScoreDetail
}

// Plan partitions the composites against persisted details
type Plan struct {
	Inserts []Composite
	Updates []Update
	// Stale are persisted details with no fresh composite. They are
	// reported and left untouched.
	Stale []model.ScoreDetail
}

// Classify matches composites to existing details by emp_id. Every
// composite lands in exactly one of Inserts or Updates.
func Classify(composites []Composite, existing []model.ScoreDetail) Plan {
	prior := make(map[string]model.ScoreDetail, len(existing))
	for _, d := range existing {
		prior[d.EmpID] = d
	}

	var plan Plan
	fresh := make(map[string]bool, len(composites))
	for _, c := range composites {
		fresh[c.EmpID] = true
		if d, ok := prior[c.EmpID]; ok {
			plan.Updates = append(plan.Updates, Update{Composite: c, Prior: d})
		} else {
			plan.Inserts = append(plan.Inserts, c)
		}
	}
	for _, d := range existing {
		if !fresh[d.EmpID] {
			plan.Stale = append(plan.Stale, d)
		}
	}

	sort.Slice(plan.Inserts, func(i, j int) bool { return plan.Inserts[i].EmpID < plan.Inserts[j].EmpID })
	sort.Slice(plan.Updates, func(i, j int) bool { return plan.Updates[i].EmpID < plan.Updates[j].EmpID })
	sort.Slice(plan.Stale, func(i, j int) bool { return plan.Stale[i].EmpID < plan.Stale[j].EmpID })
	return plan
}
