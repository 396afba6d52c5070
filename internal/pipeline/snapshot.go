package pipeline

import "github.com/vijay-prabhu/empscore/internal/model"

// SnapshotTables flattens a snapshot into one table per source, named
// after the default source tables
func SnapshotTables(snap *model.Snapshot) []model.Table {
	tables := []model.Table{
		{Name: "employee_personal_info", Columns: []string{"emp_id", "recalculate_score_eligible", "updated_time"}},
		{Name: "employee_work_info", Columns: []string{"emp_id", "work_exp_id", "start_date", "end_date", "employment_type", "domain"}},
		{Name: "employee_technology_stack", Columns: []string{"emp_id", "technology_description"}},
		{Name: "employee_certificate_info", Columns: []string{"emp_id", "certificate_id", "certificate_name", "certificate_completion_date"}},
		{Name: "employee_education_info", Columns: []string{"emp_id", "education_id", "education_type_desc"}},
		{Name: "interview_schedule", Columns: []string{"emp_id", "int_date", "int_status_desc"}},
		{Name: "employee_offer_info", Columns: []string{"emp_id", "offer_id"}},
		{Name: "employee_req_referral_info", Columns: []string{"emp_id", "referral_req_id"}},
		{Name: "employee_office_reporting", Columns: []string{"emp_id", "office_repo_id"}},
		{Name: "static_score_meta", Columns: []string{"score_name", "category", "range_start", "range_end", "score"}},
	}

	for _, r := range snap.PersonalInfo {
		tables[0].Rows = append(tables[0].Rows, []any{r.EmpID, r.RecalculateScoreEligible, r.UpdatedTime})
	}
	for _, r := range snap.WorkInfo {
		tables[1].Rows = append(tables[1].Rows, []any{r.EmpID, r.WorkExpID, r.StartDate, r.EndDate, r.EmploymentType, r.Domain})
	}
	for _, r := range snap.TechnologyStack {
		tables[2].Rows = append(tables[2].Rows, []any{r.EmpID, r.TechnologyDescription})
	}
	for _, r := range snap.Certificates {
		tables[3].Rows = append(tables[3].Rows, []any{r.EmpID, r.CertificateID, r.CertificateName, r.CompletionDate})
	}
	for _, r := range snap.Education {
		tables[4].Rows = append(tables[4].Rows, []any{r.EmpID, r.EducationID, r.EducationTypeDesc})
	}
	for _, r := range snap.Interviews {
		tables[5].Rows = append(tables[5].Rows, []any{r.EmpID, r.IntDate, r.IntStatusDesc})
	}
	for i, acts := range [][]model.Activity{snap.Offers, snap.Referrals, snap.Reportings} {
		for _, r := range acts {
			tables[6+i].Rows = append(tables[6+i].Rows, []any{r.EmpID, r.ID})
		}
	}
	for _, r := range snap.ScoreMeta {
		tables[9].Rows = append(tables[9].Rows, []any{r.ScoreName, r.Category, r.RangeStart, r.RangeEnd, r.Score})
	}

	return tables
}
