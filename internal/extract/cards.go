package extract

import (
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/yasi76/namesift/internal/entity"
)

// Card priors: full prior when the card's own text shows product
// vocabulary, a floor otherwise.
const (
	cardStrongPrior = 0.85
	cardWeakPrior   = 0.60
)

// cardSelectors match common product card/tile layout patterns.
var cardSelectors = strings.Join([]string{
	".product-card", ".product-tile", ".product-item",
	".solution-card", ".app-card", ".software-card",
	`article[class*="product"]`, `div[class*="product-card"]`,
}, ", ")

// cardNameSelectors locate the name inside a card.
const cardNameSelectors = "h2, h3, .product-name, .product-title, .card-title"

// cardVocabulary marks card context that talks about an actual product.
var cardVocabulary = []string{
	"download", "install", "feature", "pricing", "version", "demo",
	"funktionen", "preis", "herunterladen", "installieren",
}

// ProductCards extracts names from product card/tile layouts.
type ProductCards struct{}

// Name implements Strategy.
func (p *ProductCards) Name() entity.Method { return entity.MethodProductCard }

// Extract implements Strategy.
func (p *ProductCards) Extract(doc *goquery.Document, _ *entity.PageContent) []entity.Candidate {
	if doc == nil {
		return nil
	}

	var out []entity.Candidate
	doc.Find(cardSelectors).Each(func(_ int, card *goquery.Selection) {
		nameSel := card.Find(cardNameSelectors).First()
		if nameSel.Length() == 0 {
			return
		}

		name := nameSel.Text()
		if name == "" {
			return
		}

		context := card.Text()
		prior := cardWeakPrior
		if hasCardVocabulary(context) {
			prior = cardStrongPrior
		}

		out = append(out, newCandidate(name, entity.KindProduct, entity.MethodProductCard, prior, context))
	})

	return out
}

func hasCardVocabulary(context string) bool {
	key := strings.ToLower(context)
	for _, word := range cardVocabulary {
		if strings.Contains(key, word) {
			return true
		}
	}
	return false
}
