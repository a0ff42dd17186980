package extract

import (
	"encoding/json"

	"github.com/PuerkitoBio/goquery"
	"github.com/kaptinlin/jsonrepair"

	"github.com/yasi76/namesift/internal/entity"
	"github.com/yasi76/namesift/internal/logger"
)

// structuredPrior is the confidence prior for machine-readable markup.
const structuredPrior = 0.95

// organizationTypes and productTypes map JSON-LD @type values to the entity
// kind they describe.
var (
	organizationTypes = map[string]struct{}{
		"Organization":        {},
		"Corporation":         {},
		"LocalBusiness":       {},
		"MedicalOrganization": {},
		"MedicalBusiness":     {},
	}
	productTypes = map[string]struct{}{
		"Product":             {},
		"SoftwareApplication": {},
		"MobileApplication":   {},
		"WebApplication":      {},
		"MedicalDevice":       {},
	}
)

// StructuredData extracts entity names from JSON-LD blocks. Malformed JSON
// is first run through jsonrepair; blocks that still fail are skipped so the
// page degrades to the lower-trust strategies.
type StructuredData struct {
	log logger.Interface
}

// Name implements Strategy.
func (s *StructuredData) Name() entity.Method { return entity.MethodStructuredData }

// Extract implements Strategy.
func (s *StructuredData) Extract(doc *goquery.Document, page *entity.PageContent) []entity.Candidate {
	if doc == nil {
		return nil
	}

	var out []entity.Candidate
	doc.Find(`script[type="application/ld+json"]`).Each(func(_ int, sel *goquery.Selection) {
		raw := sel.Text()
		if raw == "" {
			return
		}

		var data any
		if err := json.Unmarshal([]byte(raw), &data); err != nil {
			repaired, repairErr := jsonrepair.JSONRepair(raw)
			if repairErr != nil || json.Unmarshal([]byte(repaired), &data) != nil {
				if s.log != nil {
					s.log.Debug("skipping unparseable json-ld block", "url", page.URL, "error", err)
				}
				return
			}
		}

		out = append(out, collectEntities(data)...)
	})

	return out
}

// collectEntities walks a decoded JSON-LD value, descending into arrays and
// @graph containers, and emits a candidate per recognized typed node.
func collectEntities(data any) []entity.Candidate {
	var out []entity.Candidate

	switch node := data.(type) {
	case []any:
		for _, item := range node {
			out = append(out, collectEntities(item)...)
		}
	case map[string]any:
		if kind, ok := nodeKind(node["@type"]); ok {
			if name, ok := node["name"].(string); ok && name != "" {
				out = append(out, newCandidate(name, kind, entity.MethodStructuredData, structuredPrior, ""))
			}
		}
		if graph, ok := node["@graph"]; ok {
			out = append(out, collectEntities(graph)...)
		}
	}

	return out
}

// nodeKind resolves a JSON-LD @type declaration, which may be a string or
// an array of strings, to an entity kind.
func nodeKind(typ any) (entity.Kind, bool) {
	switch t := typ.(type) {
	case string:
		return kindForType(t)
	case []any:
		for _, item := range t {
			if s, ok := item.(string); ok {
				if kind, ok := kindForType(s); ok {
					return kind, true
				}
			}
		}
	}
	return "", false
}

func kindForType(t string) (entity.Kind, bool) {
	if _, ok := organizationTypes[t]; ok {
		return entity.KindCompany, true
	}
	if _, ok := productTypes[t]; ok {
		return entity.KindProduct, true
	}
	return "", false
}
