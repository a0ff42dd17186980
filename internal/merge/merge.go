// Package merge fuzzy-groups near-duplicate candidates per entity kind,
// keeping the highest-confidence representative and recording alternates.
package merge

import (
	"sort"

	"github.com/yasi76/namesift/internal/config"
	"github.com/yasi76/namesift/internal/entity"
	"github.com/yasi76/namesift/internal/score"
	"github.com/yasi76/namesift/internal/similarity"
)

// mergeBoost is added to the representative's confidence per absorbed
// near-duplicate.
const mergeBoost = 0.05

// Merger groups candidates by fuzzy text similarity.
type Merger struct {
	mergeThreshold float64
	dupThreshold   float64
}

// New builds a Merger from pipeline configuration.
func New(cfg config.Pipeline) *Merger {
	return &Merger{
		mergeThreshold: cfg.MergeThreshold,
		dupThreshold:   cfg.DuplicateThreshold,
	}
}

// slot tracks one surviving candidate and its arrival order.
type slot struct {
	cand  entity.Candidate
	order int
}

// Merge collapses near-duplicates within each entity kind and returns the
// survivors sorted by descending confidence, ties broken by first-seen
// order.
func (m *Merger) Merge(candidates []entity.Candidate) []entity.Candidate {
	var slots []*slot

	for i := range candidates {
		c := candidates[i]
		if home := m.findSlot(slots, c); home != nil {
			continue
		}
		slots = append(slots, &slot{cand: c, order: len(slots)})
	}

	sort.SliceStable(slots, func(i, j int) bool {
		if slots[i].cand.Confidence != slots[j].cand.Confidence {
			return slots[i].cand.Confidence > slots[j].cand.Confidence
		}
		return slots[i].order < slots[j].order
	})

	out := make([]entity.Candidate, 0, len(slots))
	for _, s := range slots {
		out = append(out, s.cand)
	}

	return out
}

// findSlot tries to place c into an existing slot and returns that slot, or
// nil when c starts a group of its own.
func (m *Merger) findSlot(slots []*slot, c entity.Candidate) *slot {
	for _, s := range slots {
		if s.cand.Kind != c.Kind {
			continue
		}

		ratio := similarity.Ratio(s.cand.Text, c.Text)
		switch {
		case ratio >= m.dupThreshold:
			// Near-identical surface forms are plain duplicates: keep the
			// stronger instance, no combination bookkeeping.
			if c.Confidence > s.cand.Confidence {
				alts := s.cand.AlternateTexts
				s.cand = c
				s.cand.AlternateTexts = nil
				for _, alt := range alts {
					s.cand.AddAlternate(alt)
				}
			}
			return s
		case ratio > m.mergeThreshold,
			ratio < m.mergeThreshold && similarity.PrefixOverlap(s.cand.Text, c.Text):
			// A pair sitting exactly at the threshold does not merge;
			// losing distinct names is worse than keeping a near-double.
			s.merge(c)
			return s
		}
	}

	return nil
}

// merge absorbs c into the slot, keeping the higher-confidence candidate as
// representative and boosting it for the agreement.
func (s *slot) merge(c entity.Candidate) {
	rep, other := s.cand, c
	if other.Confidence > rep.Confidence {
		rep, other = other, rep
		rep.AlternateTexts = nil
		for _, alt := range s.cand.AlternateTexts {
			rep.AddAlternate(alt)
		}
	}

	rep.AddAlternate(other.Text)
	for _, alt := range other.AlternateTexts {
		rep.AddAlternate(alt)
	}
	rep.Confidence = score.Clamp(rep.Confidence + mergeBoost)

	s.cand = rep
}
