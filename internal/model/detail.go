package model

import (
	"errors"
	"time"
)

// ErrScoreDetailExists is returned when inserting a score detail for an
// employee that already has one
var ErrScoreDetailExists = errors.New("score detail already exists")

// Default values written on every score detail
const (
	ScoreStatusActive   = "Y"
	ProficiencyPrefix   = "PR_"
	VariableScorePrefix = "VR_"
)

// ScoreDetail is the persisted composite score of one employee
type ScoreDetail struct {
	EmpID                        string    `db:"emp_id" json:"emp_id"`
	ProficiencyScoreID           string    `db:"proficiency_score_id" json:"proficiency_score_id"`
	VariableScoreID              string    `db:"variable_score_id" json:"variable_score_id"`
	CertificationPoint           int       `db:"certification_point" json:"certification_point"`
	CertificationPopulationPoint int       `db:"certification_population_point" json:"certification_population_point"`
	DomainPoint                  int       `db:"domain_point" json:"domain_point"`
	DomainPopulationPoint        int       `db:"domain_population_point" json:"domain_population_point"`
	EducationPoint               int       `db:"education_point" json:"education_point"`
	ExperiencePoint              int       `db:"experience_point" json:"experience_point"`
	ExperiencePopulationPoint    int       `db:"experience_population_point" json:"experience_population_point"`
	InterviewPoint               int       `db:"interview_point" json:"interview_point"`
	JobLongevityPoint            int       `db:"job_longevity_point" json:"job_longevity_point"`
	NicheSkillPoint              int       `db:"niche_skill_point" json:"niche_skill_point"`
	NoOfOffersPoint              int       `db:"noofoffers_point" json:"noofoffers_point"`
	ReferralsPoint               int       `db:"referrals_point" json:"referrals_point"`
	ReportingPoint               int       `db:"reporting_point" json:"reporting_point"`
	SkillsetPopulationPoint      int       `db:"skillset_population_point" json:"skillset_population_point"`
	SpecialRatingPoint           int       `db:"special_rating_point" json:"special_rating_point"`
	PRScore                      int       `db:"prscore" json:"prscore"`
	VRScore                      int       `db:"vrscore" json:"vrscore"`
	Status                       string    `db:"status" json:"status"`
	CreatedBy                    string    `db:"created_by" json:"created_by"`
	CreatedTime                  time.Time `db:"created_time" json:"created_time"`
}

// ScoreHistory is an archived prior state of a ScoreDetail
type ScoreHistory struct {
	HistoryID    string    `db:"history_id" json:"history_id"`
	ArchivedTime time.Time `db:"archived_time" json:"archived_time"`
	ScoreDetail
}

// NewScoreHistory archives d
func NewScoreHistory(id string, d ScoreDetail, at time.Time) *ScoreHistory {
	return &ScoreHistory{HistoryID: id, ArchivedTime: at, ScoreDetail: d}
}

// BatchStatus is the lifecycle state of a scoring batch
type BatchStatus string

const (
	BatchDataPullStarted    BatchStatus = "DATA PULL STARTED"
	BatchDataPullCompleted  BatchStatus = "DATA PULL COMPLETED"
	BatchScoreCalcCompleted BatchStatus = "SCORE CALCULATION COMPLETED"
	BatchScoreUpdated       BatchStatus = "SCORE UPDATE COMPLETED"
	BatchFailed             BatchStatus = "FAILED"
)

// Batch tracks one scoring run
type Batch struct {
	ID          string      `db:"id" json:"id"`
	BatchID     int         `db:"batch_id" json:"batch_id"`
	RequestedBy string      `db:"requested_by" json:"requested_by"`
	Status      BatchStatus `db:"status" json:"status"`
	CreatedTime time.Time   `db:"created_time" json:"created_time"`
	UpdatedTime time.Time   `db:"updated_time" json:"updated_time"`
}
