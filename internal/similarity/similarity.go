// Package similarity abstracts fuzzy string comparison behind two scores in
// [0,1], so merge and ground-truth logic never depend on a concrete
// string-distance algorithm.
package similarity

import (
	"sort"
	"strings"

	"github.com/adrg/strutil"
	"github.com/adrg/strutil/metrics"

	"github.com/yasi76/namesift/internal/normalize"
)

// Ratio returns a character-level similarity between a and b in [0,1].
// Comparison is case-insensitive and whitespace-normalized.
func Ratio(a, b string) float64 {
	ka, kb := normalize.Key(a), normalize.Key(b)
	if ka == "" || kb == "" {
		if ka == kb {
			return 1
		}
		return 0
	}
	if ka == kb {
		return 1
	}

	lev := metrics.NewLevenshtein()
	return strutil.Similarity(ka, kb, lev)
}

// TokenSet returns a word-order-insensitive similarity between a and b in
// [0,1]. One side's tokens forming a subset of the other's counts as a full
// match, so "Example" still matches "Example GmbH".
func TokenSet(a, b string) float64 {
	ta, tb := tokens(a), tokens(b)
	if len(ta) == 0 || len(tb) == 0 {
		if len(ta) == len(tb) {
			return 1
		}
		return 0
	}

	if subset(ta, tb) || subset(tb, ta) {
		return 1
	}

	return Ratio(strings.Join(ta, " "), strings.Join(tb, " "))
}

// tokens splits normalized text into sorted, unique lower-case words.
func tokens(s string) []string {
	seen := map[string]struct{}{}
	for _, w := range strings.Fields(normalize.Key(s)) {
		seen[w] = struct{}{}
	}

	out := make([]string, 0, len(seen))
	for w := range seen {
		out = append(out, w)
	}
	sort.Strings(out)

	return out
}

func subset(small, large []string) bool {
	in := make(map[string]struct{}, len(large))
	for _, w := range large {
		in[w] = struct{}{}
	}
	for _, w := range small {
		if _, ok := in[w]; !ok {
			return false
		}
	}
	return true
}

// PrefixOverlap reports whether one normalized text is a prefix or suffix
// of the other once whitespace and hyphens are ignored. "Health App" and
// "HealthApp" overlap this way; "fyzo Assistant" and "fyzo Coach" do not.
func PrefixOverlap(a, b string) bool {
	ca, cb := collapse(a), collapse(b)
	if ca == "" || cb == "" {
		return false
	}

	return strings.HasPrefix(ca, cb) || strings.HasPrefix(cb, ca) ||
		strings.HasSuffix(ca, cb) || strings.HasSuffix(cb, ca)
}

func collapse(s string) string {
	s = normalize.Key(s)
	s = strings.ReplaceAll(s, " ", "")
	return strings.ReplaceAll(s, "-", "")
}
