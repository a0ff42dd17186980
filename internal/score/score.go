// Package score assigns each candidate a confidence in [0,1] from its
// strategy prior and surface features. Scoring is deterministic and
// side-effect-free.
package score

import (
	"strings"
	"unicode"

	"github.com/yasi76/namesift/internal/config"
	"github.com/yasi76/namesift/internal/entity"
	"github.com/yasi76/namesift/internal/normalize"
)

// Fixed adjustment deltas applied on top of the strategy prior.
const (
	brandCapBonus     = 0.05
	trademarkBonus    = 0.05
	longTextPenalty   = 0.10
	genericPhrasePt   = 0.15
	trademarkSymbols  = "™®©"
	sentencePunct     = ".!?,;:"
)

// Scorer adjusts strategy priors by surface features of the text.
type Scorer struct {
	maxWords int
	generic  map[string]struct{}
}

// New builds a Scorer from pipeline configuration.
func New(cfg config.Pipeline) *Scorer {
	generic := make(map[string]struct{}, len(cfg.GenericPhrases))
	for _, p := range cfg.GenericPhrases {
		generic[normalize.Key(p)] = struct{}{}
	}

	maxWords := cfg.MaxWords
	if maxWords <= 0 {
		maxWords = 4
	}

	return &Scorer{maxWords: maxWords, generic: generic}
}

// Score returns the candidate's confidence, starting from the prior already
// set by its strategy and clamped to [0,1].
func (s *Scorer) Score(c entity.Candidate) float64 {
	conf := c.Confidence

	text := normalize.Text(c.Text)
	if isBrandCapitalized(text) {
		conf += brandCapBonus
	}
	if strings.ContainsAny(text, trademarkSymbols) {
		conf += trademarkBonus
	}
	if len(strings.Fields(text)) > s.maxWords {
		conf -= longTextPenalty
	}
	if _, ok := s.generic[normalize.Key(text)]; ok {
		conf -= genericPhrasePt
	}

	return Clamp(conf)
}

// Clamp bounds a confidence to [0,1].
func Clamp(conf float64) float64 {
	if conf < 0 {
		return 0
	}
	if conf > 1 {
		return 1
	}
	return conf
}

// isBrandCapitalized reports whether the text reads as a proper brand name:
// it starts with an upper-case letter or digit, carries no sentence
// punctuation, and is not shouting in all caps beyond a short acronym.
func isBrandCapitalized(text string) bool {
	if text == "" || strings.ContainsAny(text, sentencePunct) {
		return false
	}

	first := []rune(text)[0]
	if !unicode.IsUpper(first) && !unicode.IsDigit(first) {
		return false
	}

	if upper := strings.ToUpper(text); text == upper && len([]rune(text)) > 5 {
		return false
	}

	return true
}
