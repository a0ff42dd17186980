// Package extract turns one page's content into candidate entity names.
// Each extraction strategy implements Strategy and runs independently; a
// page is never short-circuited, since different sites favor different
// signals.
package extract

import (
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/yasi76/namesift/internal/config"
	"github.com/yasi76/namesift/internal/entity"
	"github.com/yasi76/namesift/internal/logger"
	"github.com/yasi76/namesift/internal/normalize"
)

// Strategy produces candidates from a parsed page. Implementations must be
// stateless and safe for concurrent use.
type Strategy interface {
	// Name identifies the extraction method on produced candidates.
	Name() entity.Method
	// Extract returns zero or more candidates. doc is nil when the markup
	// could not be parsed; strategies that need the DOM return nothing in
	// that case.
	Extract(doc *goquery.Document, page *entity.PageContent) []entity.Candidate
}

// Generator runs the full registered strategy set over a page.
type Generator struct {
	strategies []Strategy
	platforms  map[string]struct{}
	log        logger.Interface
}

// NewGenerator builds a Generator with the default strategy set.
func NewGenerator(cfg config.Pipeline, log logger.Interface) *Generator {
	return NewGeneratorWith(cfg, log,
		&StructuredData{log: log.WithComponent("structured_data")},
		&SiteIdentity{},
		&MetaTitle{},
		&Headings{},
		&ProductCards{},
		NewDomain(cfg.DomainOverrides),
	)
}

// NewGeneratorWith builds a Generator with an explicit strategy set.
func NewGeneratorWith(cfg config.Pipeline, log logger.Interface, strategies ...Strategy) *Generator {
	platforms := make(map[string]struct{}, len(cfg.PlatformNames))
	for _, p := range cfg.PlatformNames {
		platforms[strings.ToLower(p)] = struct{}{}
	}

	return &Generator{
		strategies: strategies,
		platforms:  platforms,
		log:        log.WithComponent("generator"),
	}
}

// Generate runs every strategy against the page and concatenates the
// results in strategy registration order. Candidates whose text merely
// repeats the host name or a known platform vendor are dropped outright.
func (g *Generator) Generate(page *entity.PageContent) []entity.Candidate {
	var doc *goquery.Document
	if page.RawMarkup != "" {
		parsed, err := goquery.NewDocumentFromReader(strings.NewReader(page.RawMarkup))
		if err != nil {
			// Degrade to the strategies that work without a DOM.
			g.log.Warn("markup unparseable, degrading", "url", page.URL, "error", err)
		} else {
			doc = parsed
		}
	}

	host := normalize.Host(page.FinalURL)
	if host == "" {
		host = normalize.Host(page.URL)
	}
	bare := normalize.BareHost(page.FinalURL)

	var out []entity.Candidate
	for _, s := range g.strategies {
		for _, c := range s.Extract(doc, page) {
			text := normalize.Text(c.Text)
			if text == "" {
				continue
			}
			if g.obviouslyWrong(text, host, bare) {
				g.log.Debug("dropped host/platform echo",
					"url", page.URL, "text", text, "method", string(s.Name()))
				continue
			}

			c.Text = text
			c.SourceURL = page.URL
			out = append(out, c)
		}
	}

	return out
}

// obviouslyWrong reports whether the text is the host name itself or a
// hosting/CMS vendor name.
func (g *Generator) obviouslyWrong(text, host, bare string) bool {
	key := strings.ToLower(text)
	if key == host || key == bare {
		return true
	}
	_, isPlatform := g.platforms[key]
	return isPlatform
}

// newCandidate fills the fields every strategy sets the same way.
func newCandidate(text string, kind entity.Kind, method entity.Method, prior float64, context string) entity.Candidate {
	if len(context) > maxContextLen {
		context = context[:maxContextLen]
	}
	return entity.Candidate{
		Text:           text,
		Kind:           kind,
		Method:         method,
		Confidence:     prior,
		ContextSnippet: normalize.Text(context),
	}
}

// maxContextLen caps stored context snippets.
const maxContextLen = 200
