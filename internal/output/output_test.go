package output

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/vijay-prabhu/empscore/internal/combiner"
	"github.com/vijay-prabhu/empscore/internal/model"
	"github.com/vijay-prabhu/empscore/internal/pipeline"
)

func TestTableScoreDetails(t *testing.T) {
	var buf bytes.Buffer
	details := []model.ScoreDetail{
		{EmpID: "E1", PRScore: 125, VRScore: 275, Status: "Y", CreatedBy: "empscore"},
	}

	if err := TableTo(&buf, details); err != nil {
		t.Fatalf("TableTo() error: %v", err)
	}

	out := buf.String()
	for _, want := range []string{"E1", "125", "275"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in output:\n%s", want, out)
		}
	}
}

func TestTableEmpty(t *testing.T) {
	var buf bytes.Buffer

	if err := TableTo(&buf, []model.ScoreDetail{}); err != nil {
		t.Fatalf("TableTo() error: %v", err)
	}
	if !strings.Contains(buf.String(), "No score details found") {
		t.Errorf("unexpected output %q", buf.String())
	}
}

func TestTableScoreReport(t *testing.T) {
	var buf bytes.Buffer
	at := time.Date(2024, 1, 2, 3, 4, 0, 0, time.UTC)
	report := &ScoreReport{
		Detail: &model.ScoreDetail{EmpID: "E1", PRScore: 125, EducationPoint: 30},
		History: []model.ScoreHistory{
			{HistoryID: "h1", ArchivedTime: at, ScoreDetail: model.ScoreDetail{PRScore: 90}},
		},
	}

	if err := TableTo(&buf, report); err != nil {
		t.Fatalf("TableTo() error: %v", err)
	}

	out := buf.String()
	for _, want := range []string{"education", "30", "History:", "Jan 02, 2024", "latest"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in output:\n%s", want, out)
		}
	}
}

func TestTableRunSummary(t *testing.T) {
	var buf bytes.Buffer
	r := &pipeline.RunResult{
		BatchID: 3,
		Tables:  map[string]int{"ps_calc_cert": 2},
		Apply:   &combiner.Result{Inserted: 1, Stale: []string{"E9"}},
		Errors:  []error{errors.New("ps_calc_exp: no rules")},
	}

	if err := TableTo(&buf, r); err != nil {
		t.Fatalf("TableTo() error: %v", err)
	}

	out := buf.String()
	for _, want := range []string{"Batch 3", "ps_calc_cert", "Inserted:", "Stale", "Warnings (1)"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in output:\n%s", want, out)
		}
	}
}

func TestTableUnsupported(t *testing.T) {
	if err := TableTo(&bytes.Buffer{}, 42); err == nil {
		t.Fatal("expected error for unsupported type")
	}
}

func TestJSONTo(t *testing.T) {
	var buf bytes.Buffer
	if err := JSONTo(&buf, model.Batch{BatchID: 2, Status: model.BatchFailed}); err != nil {
		t.Fatalf("JSONTo() error: %v", err)
	}
	if !strings.Contains(buf.String(), `"status": "FAILED"`) {
		t.Errorf("unexpected json %s", buf.String())
	}
}

func TestJSONRunResultErrors(t *testing.T) {
	result := &pipeline.RunResult{
		BatchID: 3,
		Tables:  map[string]int{"ms_calc_total_exp": 2},
		Apply: &combiner.Result{
			Inserted: 1,
			Failures: []error{errors.New("E7: disk full")},
		},
		Errors: []error{errors.New("publish failed")},
	}

	var buf bytes.Buffer
	if err := JSONTo(&buf, result); err != nil {
		t.Fatalf("JSONTo() error: %v", err)
	}

	var got struct {
		BatchID int      `json:"batch_id"`
		Errors  []string `json:"errors"`
		Apply   struct {
			Inserted int      `json:"inserted"`
			Failures []string `json:"failures"`
		} `json:"apply"`
	}
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("invalid json %s: %v", buf.String(), err)
	}
	if got.BatchID != 3 || len(got.Errors) != 1 || got.Errors[0] != "publish failed" {
		t.Errorf("unexpected run json %s", buf.String())
	}
	if got.Apply.Inserted != 1 || len(got.Apply.Failures) != 1 || got.Apply.Failures[0] != "E7: disk full" {
		t.Errorf("unexpected apply json %s", buf.String())
	}
}
