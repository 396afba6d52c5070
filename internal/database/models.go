package database

// Tables names the source tables read by Pull
type Tables struct {
	PersonalInfo    string
	WorkInfo        string
	TechnologyStack string
	Certificates    string
	Education       string
	Interviews      string
	Offers          string
	Referrals       string
	Reportings      string
	ScoreMeta       string
}

// DefaultTables returns the table names created by the initial migration
func DefaultTables() Tables {
	return Tables{
		PersonalInfo:    "employee_personal_info",
		WorkInfo:        "employee_work_info",
		TechnologyStack: "employee_technology_stack",
		Certificates:    "employee_certificate_info",
		Education:       "employee_education_info",
		Interviews:      "interview_schedule",
		Offers:          "employee_offer_info",
		Referrals:       "employee_req_referral_info",
		Reportings:      "employee_office_reporting",
		ScoreMeta:       "static_score_meta",
	}
}

// Score tables
const (
	scoreDetailTable  = "score_detail_info"
	scoreHistoryTable = "score_history_detail_info"
	batchTable        = "batch_process"
)

// Id columns of the activity tables, selected as "id"
const (
	offerIDColumn     = "offer_id"
	referralIDColumn  = "referral_req_id"
	reportingIDColumn = "office_repo_id"
)

// calcTables are the per-dimension tables WriteTable accepts
var calcTables = map[string]bool{
	"ms_calc_total_exp":   true,
	"ms_calc_domain":      true,
	"ms_calc_skillset":    true,
	"ms_calc_cert_trend":  true,
	"ps_calc_education":   true,
	"ps_calc_cert":        true,
	"ps_calc_domain":      true,
	"ps_calc_reliability": true,
	"ps_calc_skillset":    true,
	"ps_calc_interview":   true,
	"ps_calc_offers":      true,
	"ps_calc_referral":    true,
	"ps_calc_reporting":   true,
	"ps_calc_exp":         true,
}

// scoreDetailColumns lists the score detail columns in table order
func scoreDetailColumns() []string {
	return []string{
		"emp_id", "proficiency_score_id", "variable_score_id",
		"certification_point", "certification_population_point",
		"domain_point", "domain_population_point",
		"education_point", "experience_point", "experience_population_point",
		"interview_point", "job_longevity_point", "niche_skill_point",
		"noofoffers_point", "referrals_point", "reporting_point",
		"skillset_population_point", "special_rating_point",
		"prscore", "vrscore", "status", "created_by", "created_time",
	}
}
