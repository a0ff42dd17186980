package output

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/yasi76/namesift/internal/entity"
)

// Confidence bucket boundaries for the aggregate report.
const (
	highConfidence   = 0.8
	mediumConfidence = 0.5
)

// Report is the aggregate summary of one batch run.
type Report struct {
	RunID       string    `json:"run_id"`
	GeneratedAt time.Time `json:"generated_at"`

	TotalURLs      int            `json:"total_urls"`
	URLsWithResult int            `json:"urls_with_result"`
	TotalEntities  int            `json:"total_entities"`
	FailuresByKind map[string]int `json:"failures_by_kind,omitempty"`

	// Entity counts by confidence bucket: high >= 0.8, medium >= 0.5.
	HighConfidence   int `json:"high_confidence"`
	MediumConfidence int `json:"medium_confidence"`
	LowConfidence    int `json:"low_confidence"`

	MethodYield      map[string]int `json:"method_yield,omitempty"`
	FilterRejections map[string]int `json:"filter_rejections,omitempty"`

	// Ground-truth accuracy, present when a mapping was supplied.
	GroundTruthURLs   int     `json:"ground_truth_urls,omitempty"`
	GroundTruthFound  int     `json:"ground_truth_found,omitempty"`
	GroundTruthMissed int     `json:"ground_truth_missed,omitempty"`
	AccuracyPercent   float64 `json:"accuracy_percent,omitempty"`
}

// BuildReport aggregates results into a Report. rejections may be nil.
func BuildReport(results []*entity.ExtractionResult, rejections map[string]int) *Report {
	r := &Report{
		RunID:            uuid.NewString(),
		GeneratedAt:      time.Now().UTC(),
		TotalURLs:        len(results),
		FailuresByKind:   make(map[string]int),
		MethodYield:      make(map[string]int),
		FilterRejections: rejections,
	}

	for _, res := range results {
		if res.Failure != entity.FailureNone {
			r.FailuresByKind[string(res.Failure)]++
		}
		if len(res.Entities) > 0 {
			r.URLsWithResult++
		}

		for _, e := range res.Entities {
			r.TotalEntities++
			r.MethodYield[string(e.Method)]++
			switch {
			case e.Confidence >= highConfidence:
				r.HighConfidence++
			case e.Confidence >= mediumConfidence:
				r.MediumConfidence++
			default:
				r.LowConfidence++
			}
		}

		covered := len(res.GroundTruthFound) + len(res.GroundTruthMiss)
		if covered > 0 {
			r.GroundTruthURLs++
			r.GroundTruthFound += len(res.GroundTruthFound)
			r.GroundTruthMissed += len(res.GroundTruthMiss)
		}
	}

	if total := r.GroundTruthFound + r.GroundTruthMissed; total > 0 {
		r.AccuracyPercent = 100 * float64(r.GroundTruthFound) / float64(total)
	}

	return r
}

// Render writes the report as a human-readable table.
func (r *Report) Render(w io.Writer) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetTitle("Extraction report %s", r.RunID)

	t.AppendRow(table.Row{"URLs processed", r.TotalURLs})
	t.AppendRow(table.Row{"URLs with entities", r.URLsWithResult})
	t.AppendRow(table.Row{"Entities extracted", r.TotalEntities})
	t.AppendSeparator()
	t.AppendRow(table.Row{"High confidence (>= 0.8)", r.HighConfidence})
	t.AppendRow(table.Row{"Medium confidence (>= 0.5)", r.MediumConfidence})
	t.AppendRow(table.Row{"Low confidence", r.LowConfidence})

	if len(r.MethodYield) > 0 {
		t.AppendSeparator()
		for _, kv := range sortedCounts(r.MethodYield) {
			t.AppendRow(table.Row{"Method " + kv.key, kv.count})
		}
	}
	if len(r.FailuresByKind) > 0 {
		t.AppendSeparator()
		for _, kv := range sortedCounts(r.FailuresByKind) {
			t.AppendRow(table.Row{"Failed: " + kv.key, kv.count})
		}
	}
	if r.GroundTruthURLs > 0 {
		t.AppendSeparator()
		t.AppendRow(table.Row{"Ground-truth URLs", r.GroundTruthURLs})
		t.AppendRow(table.Row{"Names found", r.GroundTruthFound})
		t.AppendRow(table.Row{"Names missed", r.GroundTruthMissed})
		t.AppendRow(table.Row{"Accuracy", fmt.Sprintf("%.1f%%", r.AccuracyPercent)})
	}

	t.Render()
}

// WriteJSONReport writes the report as indented JSON.
func (r *Report) WriteJSONReport(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(r)
}

type keyCount struct {
	key   string
	count int
}

// sortedCounts orders a counter map by descending count, then key, for
// stable rendering.
func sortedCounts(m map[string]int) []keyCount {
	out := make([]keyCount, 0, len(m))
	for k, v := range m {
		out = append(out, keyCount{key: k, count: v})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].count != out[j].count {
			return out[i].count > out[j].count
		}
		return out[i].key < out[j].key
	})
	return out
}
