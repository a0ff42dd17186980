// Package groundtruth compares merged extraction results against an
// externally supplied, trusted URL-to-name mapping for offline accuracy
// evaluation.
package groundtruth

import (
	"fmt"

	"github.com/yasi76/namesift/internal/entity"
	"github.com/yasi76/namesift/internal/normalize"
	"github.com/yasi76/namesift/internal/similarity"
)

// Matcher holds ground-truth entries indexed by normalized URL.
type Matcher struct {
	entries   map[string][]entity.GroundTruthEntry
	threshold float64
}

// NewMatcher indexes the entries. threshold is the minimum token-set
// similarity for a name match.
func NewMatcher(entries []entity.GroundTruthEntry, threshold float64) (*Matcher, error) {
	if threshold <= 0 || threshold > 1 {
		return nil, fmt.Errorf("ground-truth threshold %.2f outside (0,1]", threshold)
	}

	index := make(map[string][]entity.GroundTruthEntry)
	for _, e := range entries {
		key := normalize.URL(e.NormalizedURL)
		e.NormalizedURL = key
		if e.Kind == "" {
			e.Kind = entity.KindCompany
		}
		index[key] = append(index[key], e)
	}

	return &Matcher{entries: index, threshold: threshold}, nil
}

// Has reports whether ground truth exists for the URL.
func (m *Matcher) Has(url string) bool {
	_, ok := m.entries[normalize.URL(url)]
	return ok
}

// Len returns the number of URLs covered.
func (m *Matcher) Len() int { return len(m.entries) }

// Evaluate cross-checks merged candidates for a URL against ground truth.
// Each ground-truth name is matched by token-set similarity against the
// candidates; a matched candidate is consumed so it cannot satisfy two
// entries, and its kind is overridden by the canonical one, since ground
// truth is authoritative. Returns the found and missed canonical
// names; both nil when the URL has no ground truth.
func (m *Matcher) Evaluate(url string, merged []entity.Candidate) (found, missed []string) {
	entries, ok := m.entries[normalize.URL(url)]
	if !ok {
		return nil, nil
	}

	consumed := make([]bool, len(merged))

	for _, e := range entries {
		idx := m.bestMatch(e.CanonicalName, merged, consumed)
		if idx < 0 {
			missed = append(missed, e.CanonicalName)
			continue
		}

		consumed[idx] = true
		merged[idx].Kind = e.Kind
		found = append(found, e.CanonicalName)
	}

	return found, missed
}

// bestMatch returns the index of the unconsumed candidate most similar to
// name, or -1 when none reaches the threshold. Alternate texts count too:
// a merged candidate matches under any of its surface forms.
func (m *Matcher) bestMatch(name string, merged []entity.Candidate, consumed []bool) int {
	best, bestSim := -1, 0.0

	for i := range merged {
		if consumed[i] {
			continue
		}

		sim := similarity.TokenSet(name, merged[i].Text)
		for _, alt := range merged[i].AlternateTexts {
			if altSim := similarity.TokenSet(name, alt); altSim > sim {
				sim = altSim
			}
		}

		if sim >= m.threshold && sim > bestSim {
			best, bestSim = i, sim
		}
	}

	return best
}
