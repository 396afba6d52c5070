package personal

import (
	"fmt"

	"github.com/vijay-prabhu/empscore/internal/model"
)

// Rule sets of the static score meta table
const (
	MetaEducationType  = "education_type"
	MetaExperienceYear = "experience_year"
)

// StaleMetaError is returned when the score meta table carries no rules
// for a score name the engine needs
type StaleMetaError struct {
	ScoreName string
}

func (e *StaleMetaError) Error() string {
	return fmt.Sprintf("static score meta has no %q rules", e.ScoreName)
}

// rules returns the meta rows for name, or a *StaleMetaError when none exist
func rules(meta []model.ScoreMeta, name string) ([]model.ScoreMeta, error) {
	var out []model.ScoreMeta
	for _, m := range meta {
		if m.ScoreName == name {
			out = append(out, m)
		}
	}
	if len(out) == 0 {
		return nil, &StaleMetaError{ScoreName: name}
	}
	return out, nil
}

// categoryScores maps each category to its score. The first rule for a
// category wins.
func categoryScores(meta []model.ScoreMeta) map[string]int {
	idx := make(map[string]int, len(meta))
	for _, m := range meta {
		if m.Category == nil {
			continue
		}
		if _, ok := idx[*m.Category]; !ok {
			idx[*m.Category] = m.Score
		}
	}
	return idx
}

// rangeScore returns the score of the first inclusive
// [range_start, range_end] rule containing v. Rules are compared rather than
// expanded, so open-ended bounds cost nothing.
func rangeScore(meta []model.ScoreMeta, v int) (int, bool) {
	for _, m := range meta {
		if m.RangeStart == nil || m.RangeEnd == nil {
			continue
		}
		if *m.RangeStart <= v && v <= *m.RangeEnd {
			return m.Score, true
		}
	}
	return 0, false
}
