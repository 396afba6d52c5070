package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/vijay-prabhu/empscore/internal/combiner"
	"github.com/vijay-prabhu/empscore/internal/pipeline"
)

// JSON writes data as JSON to stdout
func JSON(data interface{}) error {
	return JSONTo(os.Stdout, data)
}

// JSONTo writes data as indented JSON to the given writer. Run and apply
// results are flattened first so their errors encode as messages.
func JSONTo(w io.Writer, data interface{}) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(jsonView(data))
}

type applyJSON struct {
	Inserted  int      `json:"inserted"`
	Updated   int      `json:"updated"`
	Conflicts int      `json:"conflicts"`
	Stale     []string `json:"stale"`
	Failures  []string `json:"failures"`
}

type runJSON struct {
	BatchID    int            `json:"batch_id"`
	Eligible   int            `json:"eligible"`
	Population int            `json:"population"`
	Tables     map[string]int `json:"tables"`
	Apply      *applyJSON     `json:"apply,omitempty"`
	Errors     []string       `json:"errors"`
}

func jsonView(data interface{}) interface{} {
	switch v := data.(type) {
	case *pipeline.RunResult:
		if v == nil {
			return nil
		}
		return runJSON{
			BatchID:    v.BatchID,
			Eligible:   v.Eligible,
			Population: v.Population,
			Tables:     v.Tables,
			Apply:      applyView(v.Apply),
			Errors:     messages(v.Errors),
		}
	case *combiner.Result:
		if v == nil {
			return nil
		}
		return applyView(v)
	default:
		return data
	}
}

func applyView(r *combiner.Result) *applyJSON {
	if r == nil {
		return nil
	}
	stale := r.Stale
	if stale == nil {
		stale = []string{}
	}
	return &applyJSON{
		Inserted:  r.Inserted,
		Updated:   r.Updated,
		Conflicts: r.Conflicts,
		Stale:     stale,
		Failures:  messages(r.Failures),
	}
}

func messages(errs []error) []string {
	out := make([]string, 0, len(errs))
	for _, err := range errs {
		out = append(out, err.Error())
	}
	return out
}

// Output writes data in the specified format
func Output(format string, data interface{}) error {
	switch format {
	case "json":
		return JSON(data)
	case "table", "":
		return Table(data)
	default:
		return fmt.Errorf("unknown output format: %s", format)
	}
}
