// Package combiner merges the per-dimension scores into composite scores
// and persists them as score details, archiving prior states to history.
package combiner

import (
	"sort"
	"time"

	"github.com/vijay-prabhu/empscore/internal/model"
)

// Dimension names one per-employee score column fed into the composites
type Dimension string

// Market dimensions
const (
	MSTotalExp Dimension = "total_exp_ratio"
	MSDomain   Dimension = "ms_domain_score"
	MSSkillSet Dimension = "ms_skill_set_score"
	MSCert     Dimension = "ms_cert_score"
)

// Personal dimensions
const (
	PSEducation   Dimension = "education_score"
	PSCert        Dimension = "cert_score"
	PSDomain      Dimension = "domain_score"
	PSReliability Dimension = "rel_score2"
	PSSkillSet    Dimension = "skill_set_score"
	PSInterview   Dimension = "interview_score"
	PSOffers      Dimension = "no_of_offers_score"
	PSReferral    Dimension = "referral_score"
	PSReporting   Dimension = "reporting_score"
	PSExpYear     Dimension = "exp_year_score"
)

// MarketDimensions sum into vrscore
var MarketDimensions = []Dimension{MSCert, MSDomain, MSTotalExp, MSSkillSet}

// PersonalDimensions sum into prscore
var PersonalDimensions = []Dimension{
	PSCert, PSDomain, PSEducation, PSInterview, PSReliability,
	PSSkillSet, PSReporting, PSReferral, PSOffers, PSExpYear,
}

// AllDimensions lists every dimension, market first
func AllDimensions() []Dimension {
	return append(append([]Dimension{}, MarketDimensions...), PersonalDimensions...)
}

// Input holds each dimension's score per emp_id. A missing dimension or a
// missing employee within one counts as 0.
type Input map[Dimension]map[string]int

// Set stores the scores of one dimension
func (in Input) Set(d Dimension, scores map[string]int) {
	in[d] = scores
}

// Composite is the merged score row of one employee
type Composite struct {
	EmpID   string            `json:"emp_id"`
	Scores  map[Dimension]int `json:"scores"`
	PRScore int               `json:"prscore"`
	VRScore int               `json:"vrscore"`
}

// Score returns the value of d, 0 when absent
func (c Composite) Score(d Dimension) int {
	return c.Scores[d]
}

// Combine outer-merges every dimension on emp_id, fills gaps with 0 and
// computes prscore and vrscore. The result is ordered by emp_id.
func Combine(in Input) []Composite {
	emps := make(map[string]struct{})
	for _, scores := range in {
		for emp := range scores {
			emps[emp] = struct{}{}
		}
	}

	out := make([]Composite, 0, len(emps))
	for emp := range emps {
		c := Composite{EmpID: emp, Scores: make(map[Dimension]int, len(MarketDimensions)+len(PersonalDimensions))}
		for _, d := range PersonalDimensions {
			v := in[d][emp]
			c.Scores[d] = v
			c.PRScore += v
		}
		for _, d := range MarketDimensions {
			v := in[d][emp]
			c.Scores[d] = v
			c.VRScore += v
		}
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].EmpID < out[j].EmpID })
	return out
}

// Detail builds the score detail persisted for c
func (c Composite) Detail(opts Options, now time.Time) *model.ScoreDetail {
	return &model.ScoreDetail{
		EmpID:                        c.EmpID,
		ProficiencyScoreID:           model.ProficiencyPrefix + c.EmpID,
		VariableScoreID:              model.VariableScorePrefix + c.EmpID,
		CertificationPoint:           c.Score(PSCert),
		CertificationPopulationPoint: c.Score(MSCert),
		DomainPoint:                  c.Score(PSDomain),
		DomainPopulationPoint:        c.Score(MSDomain),
		EducationPoint:               c.Score(PSEducation),
		ExperiencePoint:              c.Score(PSExpYear),
		ExperiencePopulationPoint:    c.Score(MSTotalExp),
		InterviewPoint:               c.Score(PSInterview),
		JobLongevityPoint:            c.Score(PSReliability),
		NicheSkillPoint:              c.Score(PSSkillSet),
		NoOfOffersPoint:              c.Score(PSOffers),
		ReferralsPoint:               c.Score(PSReferral),
		ReportingPoint:               c.Score(PSReporting),
		SkillsetPopulationPoint:      c.Score(MSSkillSet),
		SpecialRatingPoint:           opts.SpecialRating,
		PRScore:                      c.PRScore,
		VRScore:                      c.VRScore,
		Status:                       model.ScoreStatusActive,
		CreatedBy:                    opts.RequestedBy,
		CreatedTime:                  now,
	}
}
