package model

// WorkAggregate is the per-employee summary of work history
type WorkAggregate struct {
	EmpID       string `json:"emp_id"`
	TotalExp    int    `json:"total_exp"`
	TotalSwitch int    `json:"total_switch"`
	SwitchRel   int    `json:"switch_rel"`
	NoOfDomain  int    `json:"no_of_domain"`
}

// ExperienceRatioScore is the market score for total experience
type ExperienceRatioScore struct {
	WorkAggregate
	TotalExpRatio int `json:"total_exp_ratio"`
}

// CategoryScore is one employee/category pair joined to its population ratio
type CategoryScore struct {
	EmpID    string `json:"emp_id"`
	Category string `json:"category"`
	Ratio    int    `json:"ratio"`
}

// EmployeeScore is a single score per employee
type EmployeeScore struct {
	EmpID string `json:"emp_id"`
	Score int    `json:"score"`
}

// EducationScore is the rule-table score of the latest education.
// Score is nil when the education type has no rule.
type EducationScore struct {
	EmpID             string  `json:"emp_id"`
	EducationID       int     `json:"education_id"`
	EducationTypeDesc *string `json:"education_type_desc,omitempty"`
	Score             *int    `json:"education_score,omitempty"`
}

// ExpYearScore is the range-bucketed score of total experience.
// Score is nil when no bucket covers TotalExp.
type ExpYearScore struct {
	EmpID    string `json:"emp_id"`
	TotalExp int    `json:"total_exp"`
	Score    *int   `json:"exp_year_score,omitempty"`
}

// CountScore is a count-based personal score (certificates, domains, skills, offers...)
type CountScore struct {
	EmpID string `json:"emp_id"`
	Count int    `json:"count"`
	Score int    `json:"score"`
}

// ReliabilityScore scores job longevity from switches
type ReliabilityScore struct {
	WorkAggregate
	SwitchRelCount int `json:"switch_rel_count"`
	RelScore1      int `json:"rel_score1"`
	RelScore2      int `json:"rel_score2"`
}
