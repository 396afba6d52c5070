package pipeline

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/vijay-prabhu/empscore/internal/model"
	"github.com/vijay-prabhu/empscore/internal/notify"
)

type fakeSource struct {
	snap *model.Snapshot
	err  error
}

func (s *fakeSource) Pull(ctx context.Context) (*model.Snapshot, error) {
	return s.snap, s.err
}

type memSink struct {
	tables map[string]model.Table
	err    error
}

func newMemSink() *memSink {
	return &memSink{tables: make(map[string]model.Table)}
}

func (s *memSink) WriteTable(ctx context.Context, batchID int, t model.Table) error {
	if s.err != nil {
		return s.err
	}
	s.tables[t.Name] = t
	return nil
}

type fakeBatches struct {
	next     int
	statuses []model.BatchStatus
}

func (b *fakeBatches) StartBatch(ctx context.Context, requestedBy string) (*model.Batch, error) {
	b.next++
	b.statuses = append(b.statuses, model.BatchDataPullStarted)
	return &model.Batch{ID: fmt.Sprintf("batch-%d", b.next), BatchID: b.next, RequestedBy: requestedBy, Status: model.BatchDataPullStarted}, nil
}

func (b *fakeBatches) UpdateBatchStatus(ctx context.Context, id string, status model.BatchStatus) error {
	b.statuses = append(b.statuses, status)
	return nil
}

func (b *fakeBatches) last() model.BatchStatus {
	if len(b.statuses) == 0 {
		return ""
	}
	return b.statuses[len(b.statuses)-1]
}

type fakeStore struct {
	details map[string]model.ScoreDetail
	history []model.ScoreHistory
	cleared []string
}

func newFakeStore(existing ...model.ScoreDetail) *fakeStore {
	s := &fakeStore{details: make(map[string]model.ScoreDetail)}
	for _, d := range existing {
		s.details[d.EmpID] = d
	}
	return s
}

func (s *fakeStore) ListScoreDetails(ctx context.Context) ([]model.ScoreDetail, error) {
	var out []model.ScoreDetail
	for _, d := range s.details {
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].EmpID < out[j].EmpID })
	return out, nil
}

func (s *fakeStore) GetScoreDetail(ctx context.Context, empID string) (*model.ScoreDetail, error) {
	d, ok := s.details[empID]
	if !ok {
		return nil, nil
	}
	return &d, nil
}

func (s *fakeStore) InsertScoreDetail(ctx context.Context, d *model.ScoreDetail) error {
	if _, ok := s.details[d.EmpID]; ok {
		return model.ErrScoreDetailExists
	}
	s.details[d.EmpID] = *d
	return nil
}

func (s *fakeStore) ReplaceScoreDetail(ctx context.Context, h *model.ScoreHistory, d *model.ScoreDetail) error {
	if _, ok := s.details[d.EmpID]; !ok {
		return errors.New("no such detail")
	}
	s.history = append(s.history, *h)
	s.details[d.EmpID] = *d
	return nil
}

func (s *fakeStore) ClearRecalculateFlag(ctx context.Context, empID string) error {
	s.cleared = append(s.cleared, empID)
	return nil
}

type fakeLocker struct {
	held     bool
	released int
}

func (l *fakeLocker) Acquire(ctx context.Context, key string) (func(context.Context) error, error) {
	if l.held {
		return nil, errors.New("locked")
	}
	l.held = true
	return func(context.Context) error {
		l.held = false
		l.released++
		return nil
	}, nil
}

type fakePublisher struct {
	events []notify.RunEvent
	err    error
}

func (p *fakePublisher) Publish(ctx context.Context, e notify.RunEvent) error {
	if p.err != nil {
		return p.err
	}
	p.events = append(p.events, e)
	return nil
}

var testNow = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

func date(y int, m time.Month, d int) *time.Time {
	t := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return &t
}

func str(s string) *string { return &s }

func intp(i int) *int { return &i }

// testSnapshot has two eligible employees (E1, E2) and one profile that
// only counts toward the population (E3)
func testSnapshot() *model.Snapshot {
	return &model.Snapshot{
		PersonalInfo: []model.PersonalInfo{
			{EmpID: "E1", RecalculateScoreEligible: "Y", UpdatedTime: date(2023, 12, 20)},
			{EmpID: "E2", RecalculateScoreEligible: "Y", UpdatedTime: date(2023, 6, 1)},
			{EmpID: "E3", RecalculateScoreEligible: "N"},
		},
		WorkInfo: []model.WorkInfo{
			{EmpID: "E1", WorkExpID: str("w1"), StartDate: date(2015, 1, 1), EndDate: date(2020, 1, 1), EmploymentType: str("FullTime"), Domain: str("Banking")},
			{EmpID: "E2", WorkExpID: str("w2"), StartDate: date(2018, 1, 1), EndDate: date(2020, 1, 1), EmploymentType: str("Contracting"), Domain: str("Retail")},
			{EmpID: "E2", WorkExpID: str("w3"), StartDate: date(2020, 1, 1), EndDate: date(2023, 1, 1), EmploymentType: str("FullTime"), Domain: str("Banking")},
			{EmpID: "E3", WorkExpID: str("w4"), StartDate: date(2010, 1, 1), EndDate: date(2020, 1, 1), EmploymentType: str("FullTime"), Domain: str("Banking")},
		},
		TechnologyStack: []model.TechnologyStack{
			{EmpID: "E1", TechnologyDescription: str("Go")},
			{EmpID: "E1", TechnologyDescription: str("Go")},
			{EmpID: "E2", TechnologyDescription: str("Java")},
			{EmpID: "E3", TechnologyDescription: str("Go")},
		},
		Certificates: []model.Certificate{
			{EmpID: "E1", CertificateID: str("C1"), CertificateName: str("AWS"), CompletionDate: date(2023, 6, 1)},
			{EmpID: "E3", CertificateID: str("C2"), CertificateName: str("AWS"), CompletionDate: date(2019, 1, 1)},
		},
		Education: []model.Education{
			{EmpID: "E1", EducationID: 1, EducationTypeDesc: str("Bachelors")},
			{EmpID: "E1", EducationID: 2, EducationTypeDesc: str("Masters")},
		},
		Interviews: []model.Interview{
			{EmpID: "E2", IntDate: date(2023, 1, 1), IntStatusDesc: "Selected"},
			{EmpID: "E2", IntDate: date(2023, 2, 1), IntStatusDesc: "Rejected"},
		},
		Offers: []model.Activity{
			{EmpID: "E1", ID: str("o1")},
			{EmpID: "E1", ID: str("o2")},
			{EmpID: "E3", ID: str("o3")},
		},
		Referrals: []model.Activity{
			{EmpID: "E2", ID: str("r1")},
		},
		ScoreMeta: []model.ScoreMeta{
			{ScoreName: "education_type", Category: str("Masters"), Score: 30},
			{ScoreName: "education_type", Category: str("Bachelors"), Score: 20},
			{ScoreName: "experience_year", RangeStart: intp(0), RangeEnd: intp(4), Score: 10},
			{ScoreName: "experience_year", RangeStart: intp(5), RangeEnd: intp(9), Score: 20},
		},
	}
}
