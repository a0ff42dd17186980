package groundtruth

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"

	"github.com/yasi76/namesift/internal/entity"
)

// ErrNoEntries indicates the ground-truth file held no usable entries.
var ErrNoEntries = errors.New("no ground-truth entries found")

// fileEntry is the flexible per-URL value in YAML/JSON ground-truth files:
// a single name, a list of names, or an object with names and a kind.
type fileEntry struct {
	Names []string `mapstructure:"names"`
	Kind  string   `mapstructure:"kind"`
}

// LoadFile reads ground truth from a YAML, JSON, or CSV file. YAML/JSON
// files map a URL to a name, a list of names, or {names: [...], kind: ...};
// CSV files carry url,name[,kind] columns.
func LoadFile(path string) ([]entity.GroundTruthEntry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open ground truth: %w", err)
	}
	defer f.Close()

	var entries []entity.GroundTruthEntry
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		entries, err = parseCSV(f)
	case ".json":
		entries, err = parseMapping(f, json.Unmarshal)
	default:
		entries, err = parseMapping(f, yaml.Unmarshal)
	}
	if err != nil {
		return nil, fmt.Errorf("parse ground truth %s: %w", path, err)
	}
	if len(entries) == 0 {
		return nil, ErrNoEntries
	}

	return entries, nil
}

// parseMapping decodes a URL-to-value map using the given unmarshal
// function, then normalizes each flexible value through mapstructure.
func parseMapping(r io.Reader, unmarshal func([]byte, any) error) ([]entity.GroundTruthEntry, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	var mapping map[string]any
	if err := unmarshal(raw, &mapping); err != nil {
		return nil, err
	}

	var entries []entity.GroundTruthEntry
	for url, value := range mapping {
		fe, err := decodeEntry(value)
		if err != nil {
			return nil, fmt.Errorf("entry %q: %w", url, err)
		}
		for _, name := range fe.Names {
			if name = strings.TrimSpace(name); name == "" {
				continue
			}
			entries = append(entries, entity.GroundTruthEntry{
				NormalizedURL: url,
				CanonicalName: name,
				Kind:          entity.Kind(fe.Kind),
			})
		}
	}

	return entries, nil
}

// decodeEntry accepts a string, a list of strings, or an object.
func decodeEntry(value any) (fileEntry, error) {
	switch v := value.(type) {
	case string:
		return fileEntry{Names: []string{v}}, nil
	case []any:
		var fe fileEntry
		for _, item := range v {
			s, ok := item.(string)
			if !ok {
				return fe, fmt.Errorf("list entry %v is not a string", item)
			}
			fe.Names = append(fe.Names, s)
		}
		return fe, nil
	default:
		var fe fileEntry
		if err := mapstructure.Decode(value, &fe); err != nil {
			return fe, err
		}
		return fe, nil
	}
}

// parseCSV reads url,name[,kind] rows, tolerating a header row.
func parseCSV(r io.Reader) ([]entity.GroundTruthEntry, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	var entries []entity.GroundTruthEntry
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		if len(record) < 2 {
			continue
		}

		url := strings.TrimSpace(record[0])
		name := strings.TrimSpace(record[1])
		if url == "" || name == "" || strings.EqualFold(url, "url") {
			continue
		}

		e := entity.GroundTruthEntry{NormalizedURL: url, CanonicalName: name}
		if len(record) > 2 {
			e.Kind = entity.Kind(strings.TrimSpace(record[2]))
		}
		entries = append(entries, e)
	}

	return entries, nil
}
