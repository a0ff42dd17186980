// Package entity defines the data model shared by the extraction pipeline:
// fetched page snapshots, extraction candidates, and per-URL results.
package entity

import "time"

// Kind classifies what a candidate names.
type Kind string

const (
	// KindCompany marks a candidate naming the company behind a site.
	KindCompany Kind = "company"
	// KindProduct marks a candidate naming a product offered on a site.
	KindProduct Kind = "product"
)

// Method identifies the strategy that produced a candidate.
type Method string

const (
	MethodStructuredData Method = "structured_data"
	MethodSiteIdentity   Method = "site_identity"
	MethodMetaTitle      Method = "meta_title"
	MethodHeading        Method = "heading"
	MethodProductCard    Method = "product_card"
	MethodDomain         Method = "domain"
)

// Trusted reports whether the method is reliable enough to bypass the
// keyword requirement in the validity filter.
func (m Method) Trusted() bool {
	return m == MethodStructuredData || m == MethodSiteIdentity
}

// PageContent is an immutable snapshot of one fetch. The fetch layer owns
// creation; the pipeline only reads it.
type PageContent struct {
	URL       string
	FinalURL  string
	RawMarkup string
	FetchedAt time.Time
}

// Candidate is a single proposed entity name produced by one strategy.
// Confidence is set by the scorer, AlternateTexts by the merger; after the
// pipeline finishes for a URL the candidate is not mutated again.
type Candidate struct {
	Text           string   `json:"text"`
	Kind           Kind     `json:"kind"`
	SourceURL      string   `json:"source_url"`
	Method         Method   `json:"method"`
	Confidence     float64  `json:"confidence"`
	ContextSnippet string   `json:"context_snippet,omitempty"`
	AlternateTexts []string `json:"alternate_texts,omitempty"`
}

// HasAlternate reports whether text is already recorded as an alternate.
func (c *Candidate) HasAlternate(text string) bool {
	for _, alt := range c.AlternateTexts {
		if alt == text {
			return true
		}
	}
	return false
}

// AddAlternate records another surface form of the same entity.
func (c *Candidate) AddAlternate(text string) {
	if text == c.Text || c.HasAlternate(text) {
		return
	}
	c.AlternateTexts = append(c.AlternateTexts, text)
}

// FailureKind classifies why no content was available for a URL.
type FailureKind string

const (
	FailureNone    FailureKind = ""
	FailureTimeout FailureKind = "timeout"
	FailureHTTP    FailureKind = "http_error"
	FailureNetwork FailureKind = "network_error"
	FailureSSL     FailureKind = "ssl_error"
)

// ExtractionResult is the externally visible output for one URL. Entities
// are sorted by descending confidence, ties broken by first-seen order.
type ExtractionResult struct {
	URL              string      `json:"url"`
	Entities         []Candidate `json:"entities"`
	GroundTruthFound []string    `json:"ground_truth_found,omitempty"`
	GroundTruthMiss  []string    `json:"ground_truth_missed,omitempty"`
	Failure          FailureKind `json:"failure,omitempty"`
	FetchedAt        time.Time   `json:"fetched_at"`
}

// GroundTruthEntry is externally supplied, read-only reference data mapping
// a normalized URL to the canonical name of the entity hosted there.
type GroundTruthEntry struct {
	NormalizedURL string
	CanonicalName string
	Kind          Kind
}
