package merge_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yasi76/namesift/internal/config"
	"github.com/yasi76/namesift/internal/entity"
	"github.com/yasi76/namesift/internal/merge"
	"github.com/yasi76/namesift/internal/similarity"
)

func newMerger() *merge.Merger {
	return merge.New(config.Default().Pipeline)
}

func cand(text string, kind entity.Kind, conf float64) entity.Candidate {
	return entity.Candidate{Text: text, Kind: kind, Method: entity.MethodHeading, Confidence: conf}
}

func TestMergeExactDuplicatesKeepStronger(t *testing.T) {
	t.Parallel()

	got := newMerger().Merge([]entity.Candidate{
		cand("HealthApp", entity.KindProduct, 0.70),
		cand("HealthApp", entity.KindProduct, 0.85),
	})

	require.Len(t, got, 1)
	assert.Equal(t, "HealthApp", got[0].Text)
	// Plain duplicates pick the stronger instance without a boost.
	assert.InDelta(t, 0.85, got[0].Confidence, 1e-9)
	assert.Empty(t, got[0].AlternateTexts)
}

func TestMergeNearDuplicatesBoostAndRecordAlternate(t *testing.T) {
	t.Parallel()

	got := newMerger().Merge([]entity.Candidate{
		cand("HealthApp Pro", entity.KindProduct, 0.85),
		cand("Health App Pro", entity.KindProduct, 0.60),
	})

	require.Len(t, got, 1)
	assert.Equal(t, "HealthApp Pro", got[0].Text)
	assert.InDelta(t, 0.90, got[0].Confidence, 1e-9)
	assert.Contains(t, got[0].AlternateTexts, "Health App Pro")
}

func TestMergeRepresentativeIsHigherConfidence(t *testing.T) {
	t.Parallel()

	got := newMerger().Merge([]entity.Candidate{
		cand("Health App Pro", entity.KindProduct, 0.60),
		cand("HealthApp Pro", entity.KindProduct, 0.85),
	})

	require.Len(t, got, 1)
	assert.Equal(t, "HealthApp Pro", got[0].Text, "later but stronger candidate should represent the group")
	assert.Contains(t, got[0].AlternateTexts, "Health App Pro")
}

func TestMergeKindsNeverCross(t *testing.T) {
	t.Parallel()

	got := newMerger().Merge([]entity.Candidate{
		cand("Acme Health", entity.KindCompany, 0.90),
		cand("Acme Health", entity.KindProduct, 0.80),
	})

	assert.Len(t, got, 2, "same text under different kinds must stay separate")
}

func TestMergeDistinctProductsSurvive(t *testing.T) {
	t.Parallel()

	// Shared stem, different tails: these name different products and the
	// character ratio sits below the merge threshold.
	a, b := "fyzo Assistant", "fyzo Coach"
	if r := similarity.Ratio(a, b); r > 0.85 {
		t.Fatalf("fixture invalid: Ratio(%q, %q) = %.3f, want <= 0.85", a, b, r)
	}

	got := newMerger().Merge([]entity.Candidate{
		cand(a, entity.KindProduct, 0.80),
		cand(b, entity.KindProduct, 0.75),
	})

	assert.Len(t, got, 2)
}

func TestMergeSortsByConfidenceThenOrder(t *testing.T) {
	t.Parallel()

	got := newMerger().Merge([]entity.Candidate{
		cand("Alpha Med", entity.KindCompany, 0.60),
		cand("Beta Care", entity.KindCompany, 0.90),
		cand("Gamma Labs", entity.KindCompany, 0.60),
	})

	require.Len(t, got, 3)
	assert.Equal(t, "Beta Care", got[0].Text)
	assert.Equal(t, "Alpha Med", got[1].Text, "ties keep first-seen order")
	assert.Equal(t, "Gamma Labs", got[2].Text)
}

func TestMergeLeavesNoResidualNearDuplicates(t *testing.T) {
	t.Parallel()
	m := newMerger()

	got := m.Merge([]entity.Candidate{
		cand("HealthApp", entity.KindProduct, 0.85),
		cand("Health-App", entity.KindProduct, 0.70),
		cand("health app", entity.KindProduct, 0.60),
		cand("CareKit", entity.KindProduct, 0.80),
	})

	for i := range got {
		for j := i + 1; j < len(got); j++ {
			if got[i].Kind != got[j].Kind {
				continue
			}
			r := similarity.Ratio(got[i].Text, got[j].Text)
			if r > 0.85 && !math.IsNaN(r) {
				t.Errorf("residual near-duplicates %q / %q (ratio %.3f)", got[i].Text, got[j].Text, r)
			}
		}
	}
}

func TestMergeConfidenceStaysClamped(t *testing.T) {
	t.Parallel()

	got := newMerger().Merge([]entity.Candidate{
		cand("HealthApp", entity.KindProduct, 0.98),
		cand("Health-App", entity.KindProduct, 0.90),
		cand("Health App", entity.KindProduct, 0.88),
	})

	for _, c := range got {
		assert.LessOrEqual(t, c.Confidence, 1.0)
		assert.GreaterOrEqual(t, c.Confidence, 0.0)
	}
}

func TestMergeEmptyInput(t *testing.T) {
	t.Parallel()

	assert.Empty(t, newMerger().Merge(nil))
}
