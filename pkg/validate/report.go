package validate

import (
	"sort"

	"github.com/lahtis/glfm/pkg/errors"
	glfm "github.com/lahtis/glfm/pkg/language"
)

// ReportFile is the file name of a persisted report.
const ReportFile = "validation_errors.json"

// Report holds the diagnostics of one validation run.
type Report struct {
	RunID   string                 `json:"run_id,omitempty"`
	Records int                    `json:"records"`
	Total   int                    `json:"total"`
	Results map[string]errors.List `json:"results"`
}

// Run applies validators to c.
func Run(runID string, c glfm.Catalog, validators []Validator) *Report {
	r := &Report{
		RunID:   runID,
		Records: len(c),
		Results: make(map[string]errors.List, len(validators)),
	}
	for _, v := range validators {
		diags := v.Check(c)
		if diags == nil {
			diags = errors.List{}
		}
		r.Results[v.Name] = diags
		r.Total += diags.Len()
	}
	return r
}

// OK reports whether no validator found a defect.
func (r *Report) OK() bool { return r.Total == 0 }

// Names returns the validator names of the report, sorted.
func (r *Report) Names() []string {
	return sortedKeys(r.Results)
}

// All returns every diagnostic of the report, grouped by validator name.
func (r *Report) All() errors.List {
	var out errors.List
	for _, name := range r.Names() {
		out = append(out, r.Results[name]...)
	}
	return out
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
