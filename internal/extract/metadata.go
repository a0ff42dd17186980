package extract

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/yasi76/namesift/internal/entity"
	"github.com/yasi76/namesift/internal/normalize"
)

// Confidence priors for the metadata strategies.
const (
	siteIdentityPrior = 0.90
	metaTitlePrior    = 0.85
)

// siteIdentitySelectors are head tags whose declared role is naming the
// site or application, in preference order.
var siteIdentitySelectors = []string{
	`meta[property="og:site_name"]`,
	`meta[name="application-name"]`,
	`meta[name="apple-mobile-web-app-title"]`,
	`meta[name="twitter:app:name:iphone"]`,
	`meta[name="twitter:app:name:googleplay"]`,
}

// SiteIdentity extracts the site's self-declared name from head metadata.
type SiteIdentity struct{}

// Name implements Strategy.
func (s *SiteIdentity) Name() entity.Method { return entity.MethodSiteIdentity }

// Extract implements Strategy.
func (s *SiteIdentity) Extract(doc *goquery.Document, _ *entity.PageContent) []entity.Candidate {
	if doc == nil {
		return nil
	}

	var out []entity.Candidate
	for _, sel := range siteIdentitySelectors {
		content, exists := doc.Find(sel).First().Attr("content")
		if !exists {
			continue
		}
		if name := normalize.Text(content); name != "" {
			out = append(out, newCandidate(name, entity.KindCompany, entity.MethodSiteIdentity, siteIdentityPrior, sel))
		}
	}

	return out
}

// titleSeparators splits "Name | Tagline" style titles.
var titleSeparators = regexp.MustCompile(`\s*[|\-–—:·]\s*`)

// welcomePrefix strips "Welcome to" style openings before the name.
var welcomePrefix = regexp.MustCompile(`(?i)^(welcome\s+to|willkommen\s+bei)\s+`)

// titleSuffix drops trailing "Official Site" style qualifiers.
var titleSuffix = regexp.MustCompile(`(?i)^(home|official( site| website)?|website|startseite|homepage)$`)

// MetaTitle extracts a name from the declared page title and its Open Graph
// equivalent: the segment before the first separator, minus greeting
// prefixes and site-qualifier suffixes.
type MetaTitle struct{}

// Name implements Strategy.
func (t *MetaTitle) Name() entity.Method { return entity.MethodMetaTitle }

// Extract implements Strategy.
func (t *MetaTitle) Extract(doc *goquery.Document, _ *entity.PageContent) []entity.Candidate {
	if doc == nil {
		return nil
	}

	var out []entity.Candidate
	for _, raw := range []string{
		doc.Find("title").First().Text(),
		attrOr(doc, `meta[property="og:title"]`, "content"),
	} {
		if name := nameFromTitle(raw); name != "" {
			out = append(out, newCandidate(name, entity.KindCompany, entity.MethodMetaTitle, metaTitlePrior, raw))
		}
	}

	return out
}

// nameFromTitle reduces a raw page title to its leading name segment.
func nameFromTitle(raw string) string {
	title := normalize.Text(raw)
	if title == "" {
		return ""
	}

	title = welcomePrefix.ReplaceAllString(title, "")
	parts := titleSeparators.Split(title, -1)
	if len(parts) == 0 {
		return ""
	}

	name := strings.TrimSpace(parts[0])
	if titleSuffix.MatchString(name) && len(parts) > 1 {
		// "Home | Acme" puts the qualifier first; look one segment over.
		name = strings.TrimSpace(parts[1])
	}
	if titleSuffix.MatchString(name) {
		return ""
	}

	return name
}

// attrOr returns the attribute of the first match or "".
func attrOr(doc *goquery.Document, selector, attr string) string {
	val, _ := doc.Find(selector).First().Attr(attr)
	return val
}
