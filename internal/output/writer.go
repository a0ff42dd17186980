// Package output serializes per-URL extraction results to flat files and
// renders the aggregate batch report.
package output

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/yasi76/namesift/internal/entity"
)

// maxCSVEntities caps how many ranked entities a CSV row carries; the JSON
// output holds the full list.
const maxCSVEntities = 5

// WriteJSON writes the full results as a JSON array.
func WriteJSON(w io.Writer, results []*entity.ExtractionResult) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(results); err != nil {
		return fmt.Errorf("encode results: %w", err)
	}
	return nil
}

// WriteCSV writes one flat row per URL: the ranked (name, confidence,
// method) tuples joined into a cell, plus ground-truth columns when
// present.
func WriteCSV(w io.Writer, results []*entity.ExtractionResult) error {
	writer := csv.NewWriter(w)

	header := []string{
		"url", "status", "entities", "top_name", "top_confidence",
		"top_method", "ground_truth_found", "ground_truth_missed",
	}
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}

	for _, r := range results {
		row := []string{
			r.URL,
			status(r),
			joinEntities(r.Entities),
			"", "", "",
			strings.Join(r.GroundTruthFound, "; "),
			strings.Join(r.GroundTruthMiss, "; "),
		}
		if len(r.Entities) > 0 {
			top := r.Entities[0]
			row[3] = top.Text
			row[4] = strconv.FormatFloat(top.Confidence, 'f', 2, 64)
			row[5] = string(top.Method)
		}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("write csv row: %w", err)
		}
	}

	writer.Flush()
	return writer.Error()
}

// WriteFile writes results to path in the format implied by fmtName
// ("json" or "csv").
func WriteFile(path, fmtName string, results []*entity.ExtractionResult) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create output: %w", err)
	}
	defer f.Close()

	switch strings.ToLower(fmtName) {
	case "csv":
		return WriteCSV(f, results)
	case "json", "":
		return WriteJSON(f, results)
	default:
		return fmt.Errorf("unsupported output format %q", fmtName)
	}
}

func status(r *entity.ExtractionResult) string {
	if r.Failure != entity.FailureNone {
		return string(r.Failure)
	}
	return "ok"
}

func joinEntities(entities []entity.Candidate) string {
	parts := make([]string, 0, min(len(entities), maxCSVEntities))
	for i, e := range entities {
		if i == maxCSVEntities {
			break
		}
		parts = append(parts, fmt.Sprintf("%s (%.2f, %s)", e.Text, e.Confidence, e.Method))
	}
	return strings.Join(parts, "; ")
}
