package model

import "time"

// EligibleFlag marks a profile whose scores must be recalculated this run
const EligibleFlag = "Y"

// PersonalInfo is one row of the employee personal info table
type PersonalInfo struct {
	EmpID                    string     `db:"emp_id" json:"emp_id"`
	RecalculateScoreEligible string     `db:"recalculate_score_eligible" json:"recalculate_score_eligible"`
	UpdatedTime              *time.Time `db:"updated_time" json:"updated_time,omitempty"`
}

// Eligible reports whether the profile is flagged for scoring
func (p PersonalInfo) Eligible() bool {
	return p.RecalculateScoreEligible == EligibleFlag
}

// WorkInfo is one employment record of an employee
type WorkInfo struct {
	EmpID          string     `db:"emp_id" json:"emp_id"`
	WorkExpID      *string    `db:"work_exp_id" json:"work_exp_id,omitempty"`
	StartDate      *time.Time `db:"start_date" json:"start_date,omitempty"`
	EndDate        *time.Time `db:"end_date" json:"end_date,omitempty"`
	EmploymentType *string    `db:"employment_type" json:"employment_type,omitempty"`
	Domain         *string    `db:"domain" json:"domain,omitempty"`
}

// TechnologyStack names one technology an employee works with
type TechnologyStack struct {
	EmpID                 string  `db:"emp_id" json:"emp_id"`
	TechnologyDescription *string `db:"technology_description" json:"technology_description,omitempty"`
}

// Certificate is one certification held by an employee
type Certificate struct {
	EmpID           string     `db:"emp_id" json:"emp_id"`
	CertificateID   *string    `db:"certificate_id" json:"certificate_id,omitempty"`
	CertificateName *string    `db:"certificate_name" json:"certificate_name,omitempty"`
	CompletionDate  *time.Time `db:"certificate_completion_date" json:"certificate_completion_date,omitempty"`
}

// Education is one education record; the highest EducationID is the latest
type Education struct {
	EmpID             string  `db:"emp_id" json:"emp_id"`
	EducationID       int     `db:"education_id" json:"education_id"`
	EducationTypeDesc *string `db:"education_type_desc" json:"education_type_desc,omitempty"`
}

// Interview is one scheduled interview and its outcome
type Interview struct {
	EmpID         string     `db:"emp_id" json:"emp_id"`
	IntDate       *time.Time `db:"int_date" json:"int_date,omitempty"`
	IntStatusDesc string     `db:"int_status_desc" json:"int_status_desc"`
}

// Activity is a countable event (offer, referral, office reporting)
type Activity struct {
	EmpID string  `db:"emp_id" json:"emp_id"`
	ID    *string `db:"id" json:"id,omitempty"`
}

// ScoreMeta is one rule of the static score meta table
type ScoreMeta struct {
	ScoreName  string  `db:"score_name" json:"score_name"`
	Category   *string `db:"category" json:"category,omitempty"`
	RangeStart *int    `db:"range_start" json:"range_start,omitempty"`
	RangeEnd   *int    `db:"range_end" json:"range_end,omitempty"`
	Score      int     `db:"score" json:"score"`
}

// Snapshot holds every source table pulled for a run
type Snapshot struct {
	PersonalInfo    []PersonalInfo
	WorkInfo        []WorkInfo
	TechnologyStack []TechnologyStack
	Certificates    []Certificate
	Education       []Education
	Interviews      []Interview
	Offers          []Activity
	Referrals       []Activity
	Reportings      []Activity
	ScoreMeta       []ScoreMeta
}

// Str returns the value of a nullable string, or "" when null
func Str(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// StrPtr returns a pointer to s
func StrPtr(s string) *string {
	return &s
}

// TimePtr returns a pointer to t
func TimePtr(t time.Time) *time.Time {
	return &t
}

// IntPtr returns a pointer to i
func IntPtr(i int) *int {
	return &i
}
