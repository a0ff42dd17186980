package testutils

import (
	"time"

	"github.com/yasi76/namesift/internal/entity"
)

// Page wraps markup in a PageContent for a URL.
func Page(url, markup string) *entity.PageContent {
	return &entity.PageContent{
		URL:       url,
		FinalURL:  url,
		RawMarkup: markup,
		FetchedAt: time.Now(),
	}
}

// Candidate builds a candidate with the fields tests care about.
func Candidate(text string, kind entity.Kind, method entity.Method, confidence float64) entity.Candidate {
	return entity.Candidate{
		Text:       text,
		Kind:       kind,
		Method:     method,
		Confidence: confidence,
	}
}
