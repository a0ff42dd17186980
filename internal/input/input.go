// Package input loads the ordered URL records a batch run processes.
// Supported formats: plain text (one URL per line), CSV with a url/website
// column, and JSON (a list of URL strings or of objects carrying url and
// optional prior metadata).
package input

import (
	"bufio"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// ErrNoURLs indicates the input file held no usable URLs.
var ErrNoURLs = errors.New("no URLs found in input")

// Record is one URL to process with whatever prior metadata came with it.
type Record struct {
	URL  string `json:"url"`
	Name string `json:"name,omitempty"`
}

// Load reads records from path, dispatching on the file extension.
// Duplicate URLs are dropped, first occurrence wins, order is preserved.
func Load(path string) ([]Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open input: %w", err)
	}
	defer f.Close()

	var records []Record
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		records, err = parseCSV(f)
	case ".json":
		records, err = parseJSON(f)
	default:
		records, err = parseLines(f)
	}
	if err != nil {
		return nil, fmt.Errorf("parse input %s: %w", path, err)
	}

	records = dedupe(records)
	if len(records) == 0 {
		return nil, ErrNoURLs
	}

	return records, nil
}

// URLs extracts the URL column from records.
func URLs(records []Record) []string {
	out := make([]string, len(records))
	for i, r := range records {
		out[i] = r.URL
	}
	return out
}

func parseLines(r io.Reader) ([]Record, error) {
	var records []Record

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if !strings.HasPrefix(line, "http") {
			continue
		}
		records = append(records, Record{URL: line})
	}

	return records, scanner.Err()
}

func parseCSV(r io.Reader) ([]Record, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header := map[string]int{}
	var records []Record

	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}

		if len(header) == 0 {
			for i, col := range row {
				header[strings.ToLower(strings.TrimSpace(col))] = i
			}
			if _, ok := header["url"]; ok {
				continue
			}
			if _, ok := header["website"]; ok {
				continue
			}
			// No header row; treat the first column as the URL.
			header = map[string]int{"url": 0}
		}

		rec := Record{URL: columnValue(row, header, "url", "website")}
		rec.Name = columnValue(row, header, "name", "company_name")
		if strings.HasPrefix(rec.URL, "http") {
			records = append(records, rec)
		}
	}

	return records, nil
}

func columnValue(row []string, header map[string]int, keys ...string) string {
	for _, key := range keys {
		if idx, ok := header[key]; ok && idx < len(row) {
			if v := strings.TrimSpace(row[idx]); v != "" {
				return v
			}
		}
	}
	return ""
}

func parseJSON(r io.Reader) ([]Record, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	// A list of plain URL strings.
	var urls []string
	if err := json.Unmarshal(raw, &urls); err == nil {
		records := make([]Record, 0, len(urls))
		for _, u := range urls {
			if strings.HasPrefix(u, "http") {
				records = append(records, Record{URL: u})
			}
		}
		return records, nil
	}

	// A list of objects with url/website fields.
	var objects []map[string]any
	if err := json.Unmarshal(raw, &objects); err != nil {
		return nil, err
	}

	var records []Record
	for _, obj := range objects {
		rec := Record{
			URL:  stringField(obj, "url", "website"),
			Name: stringField(obj, "name", "company_name"),
		}
		if strings.HasPrefix(rec.URL, "http") {
			records = append(records, rec)
		}
	}

	return records, nil
}

func stringField(obj map[string]any, keys ...string) string {
	for _, key := range keys {
		if v, ok := obj[key].(string); ok && v != "" {
			return v
		}
	}
	return ""
}

func dedupe(records []Record) []Record {
	seen := make(map[string]struct{}, len(records))
	out := records[:0]
	for _, r := range records {
		key := strings.TrimRight(r.URL, "/")
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, r)
	}
	return out
}
