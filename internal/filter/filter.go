// Package filter rejects structurally invalid candidates before scoring.
// The checks run as an ordered list of named stages so every rejection is
// attributable to exactly one rule.
package filter

import (
	"strings"
	"unicode"

	"github.com/yasi76/namesift/internal/config"
	"github.com/yasi76/namesift/internal/entity"
	"github.com/yasi76/namesift/internal/normalize"
)

// Stage names reported on rejection.
const (
	StageLength   = "length"
	StageJunk     = "junk_phrase"
	StageStopword = "stopword_only"
	StageKeyword  = "keyword_required"
)

// maxBrandWords caps how many words a bare brand token may have.
const maxBrandWords = 3

// Filter validates candidates against the configured heuristics.
type Filter struct {
	cfg config.Pipeline
	// keywords are pre-lowered entity-indicating words.
	keywords []string
	// stopsets are pre-built per-language stopword lookups.
	stopsets map[string]map[string]struct{}
}

// New builds a Filter from pipeline configuration.
func New(cfg config.Pipeline) *Filter {
	f := &Filter{
		cfg:      cfg,
		keywords: make([]string, 0, len(cfg.EntityKeywords)),
		stopsets: make(map[string]map[string]struct{}, len(cfg.Stopwords)),
	}

	for _, kw := range cfg.EntityKeywords {
		f.keywords = append(f.keywords, strings.ToLower(kw))
	}
	for lang, words := range cfg.Stopwords {
		set := make(map[string]struct{}, len(words))
		for _, w := range words {
			set[strings.ToLower(w)] = struct{}{}
		}
		f.stopsets[lang] = set
	}

	return f
}

// Validate reports whether the candidate survives all stages. On rejection
// the second return value names the rejecting stage ("junk_phrase:generic_nav"
// for pattern stages).
func (f *Filter) Validate(c entity.Candidate) (bool, string) {
	text := normalize.Text(c.Text)
	key := strings.ToLower(text)

	if n := len([]rune(text)); n < f.cfg.MinLength || n > f.cfg.MaxLength {
		return false, StageLength
	}

	for _, jp := range f.cfg.JunkPatterns {
		if jp.Pattern.MatchString(key) {
			return false, StageJunk + ":" + jp.Name
		}
	}

	if f.stopwordOnly(key) {
		return false, StageStopword
	}

	// High-trust strategies have earned a bypass; everything else must
	// carry entity vocabulary or look like a bare brand token.
	if c.Method.Trusted() {
		return true, ""
	}
	if f.hasEntityKeyword(key) || isBrandToken(text) {
		return true, ""
	}

	return false, StageKeyword
}

// stopwordOnly reports whether every token belongs to one language's
// stopword set. Checking each set separately stands in for language
// detection: a candidate that exhausts any single set carries no signal.
func (f *Filter) stopwordOnly(key string) bool {
	tokens := strings.Fields(key)
	if len(tokens) == 0 {
		return true
	}

	for _, set := range f.stopsets {
		all := true
		for _, tok := range tokens {
			if _, ok := set[strings.Trim(tok, ".,!?")]; !ok {
				all = false
				break
			}
		}
		if all {
			return true
		}
	}

	return false
}

// hasEntityKeyword reports whether the lower-cased text contains one of the
// configured entity-indicating words.
func (f *Filter) hasEntityKeyword(key string) bool {
	for _, kw := range f.keywords {
		if containsWord(key, kw) {
			return true
		}
	}
	return false
}

// containsWord matches kw as a whole word inside key.
func containsWord(key, kw string) bool {
	idx := 0
	for {
		i := strings.Index(key[idx:], kw)
		if i < 0 {
			return false
		}
		start := idx + i
		end := start + len(kw)
		beforeOK := start == 0 || !isWordRune(rune(key[start-1]))
		afterOK := end == len(key) || !isWordRune(rune(key[end]))
		if beforeOK && afterOK {
			return true
		}
		idx = start + 1
	}
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}

// isBrandToken reports whether text independently looks like a brand name:
// capitalized, one to three words, free of sentence punctuation.
func isBrandToken(text string) bool {
	if strings.ContainsAny(text, ".!?,;:") {
		return false
	}

	words := strings.Fields(text)
	if len(words) == 0 || len(words) > maxBrandWords {
		return false
	}

	hasUpper := false
	for _, r := range text {
		if unicode.IsUpper(r) {
			hasUpper = true
			break
		}
	}

	return hasUpper
}
