package pipeline

import (
	"github.com/vijay-prabhu/empscore/internal/combiner"
	"github.com/vijay-prabhu/empscore/internal/model"
)

// ScoreTable ties a dimension to the table its scores are written to
type ScoreTable struct {
	Name      string
	Dimension combiner.Dimension
}

// ScoreTables lists every per-dimension table in write order
var ScoreTables = []ScoreTable{
	{"ms_calc_total_exp", combiner.MSTotalExp},
	{"ms_calc_domain", combiner.MSDomain},
	{"ms_calc_skillset", combiner.MSSkillSet},
	{"ms_calc_cert_trend", combiner.MSCert},
	{"ps_calc_education", combiner.PSEducation},
	{"ps_calc_cert", combiner.PSCert},
	{"ps_calc_domain", combiner.PSDomain},
	{"ps_calc_reliability", combiner.PSReliability},
	{"ps_calc_skillset", combiner.PSSkillSet},
	{"ps_calc_interview", combiner.PSInterview},
	{"ps_calc_offers", combiner.PSOffers},
	{"ps_calc_referral", combiner.PSReferral},
	{"ps_calc_reporting", combiner.PSReporting},
	{"ps_calc_exp", combiner.PSExpYear},
}

// scored is one computed dimension: the table written to sinks and the
// column fed to the combiner
type scored struct {
	table  model.Table
	dim    combiner.Dimension
	scores map[string]int
}

func newScored(name string, dim combiner.Dimension, columns []string) *scored {
	return &scored{
		table:  model.Table{Name: name, Columns: columns},
		dim:    dim,
		scores: make(map[string]int),
	}
}

// emptyScored is the header-only table of a skipped dimension. Writing it
// replaces whatever an earlier run left in the sink.
func emptyScored(name string) *scored {
	for _, t := range ScoreTables {
		if t.Name == name {
			return newScored(name, t.Dimension, []string{"emp_id", string(t.Dimension)})
		}
	}
	return newScored(name, "", []string{"emp_id"})
}

// add appends a row whose dimension value is score
func (s *scored) add(emp string, score int, row ...any) {
	s.table.Rows = append(s.table.Rows, row)
	s.scores[emp] = score
}

func totalExpTable(rows []model.ExperienceRatioScore) *scored {
	s := newScored("ms_calc_total_exp", combiner.MSTotalExp,
		[]string{"emp_id", "total_exp", "total_switch", "switch_rel", string(combiner.MSTotalExp)})
	for _, r := range rows {
		s.add(r.EmpID, r.TotalExpRatio, r.EmpID, r.TotalExp, r.TotalSwitch, r.SwitchRel, r.TotalExpRatio)
	}
	return s
}

func employeeTable(name string, dim combiner.Dimension, rows []model.EmployeeScore) *scored {
	s := newScored(name, dim, []string{"emp_id", string(dim)})
	for _, r := range rows {
		s.add(r.EmpID, r.Score, r.EmpID, r.Score)
	}
	return s
}

func countTable(name string, dim combiner.Dimension, rows []model.CountScore) *scored {
	s := newScored(name, dim, []string{"emp_id", string(dim)})
	for _, r := range rows {
		s.add(r.EmpID, r.Score, r.EmpID, r.Score)
	}
	return s
}

// educationTable writes unscored education as 0
func educationTable(rows []model.EducationScore) *scored {
	s := newScored("ps_calc_education", combiner.PSEducation, []string{"emp_id", string(combiner.PSEducation)})
	for _, r := range rows {
		v := orZero(r.Score)
		s.add(r.EmpID, v, r.EmpID, v)
	}
	return s
}

func reliabilityTable(rows []model.ReliabilityScore) *scored {
	s := newScored("ps_calc_reliability", combiner.PSReliability,
		[]string{"emp_id", "total_exp", "total_switch", "switch_rel", "switch_rel_count", "rel_score1", string(combiner.PSReliability)})
	for _, r := range rows {
		s.add(r.EmpID, r.RelScore2,
			r.EmpID, r.TotalExp, r.TotalSwitch, r.SwitchRel, r.SwitchRelCount, r.RelScore1, r.RelScore2)
	}
	return s
}

// expYearTable writes experience outside every range as 0
func expYearTable(rows []model.ExpYearScore) *scored {
	s := newScored("ps_calc_exp", combiner.PSExpYear, []string{"emp_id", string(combiner.PSExpYear)})
	for _, r := range rows {
		v := orZero(r.Score)
		s.add(r.EmpID, v, r.EmpID, v)
	}
	return s
}

func orZero(p *int) int {
	if p == nil {
		return 0
	}
	return *p
}
