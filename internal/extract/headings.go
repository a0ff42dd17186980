package extract

import (
	"github.com/PuerkitoBio/goquery"

	"github.com/yasi76/namesift/internal/entity"
)

// Heading priors fall with prominence; the validity filter demands entity
// vocabulary from them, so the prior only ranks survivors.
var headingPriors = map[string]float64{
	"h1": 0.80,
	"h2": 0.70,
	"h3": 0.65,
}

// chromeParents are containers whose headings are navigation, not content.
var chromeParents = "nav, header, footer, aside, form, button"

// Headings extracts prominent heading text as product-name candidates.
type Headings struct{}

// Name implements Strategy.
func (h *Headings) Name() entity.Method { return entity.MethodHeading }

// Extract implements Strategy.
func (h *Headings) Extract(doc *goquery.Document, _ *entity.PageContent) []entity.Candidate {
	if doc == nil {
		return nil
	}

	var out []entity.Candidate
	for _, tag := range []string{"h1", "h2", "h3"} {
		prior := headingPriors[tag]
		doc.Find(tag).Each(func(_ int, sel *goquery.Selection) {
			if sel.ParentsFiltered(chromeParents).Length() > 0 {
				return
			}

			text := sel.Text()
			if text == "" {
				return
			}

			context := ""
			if parent := sel.Parent(); parent.Length() > 0 {
				context = parent.Text()
			}

			out = append(out, newCandidate(text, entity.KindProduct, entity.MethodHeading, prior, context))
		})
	}

	return out
}
