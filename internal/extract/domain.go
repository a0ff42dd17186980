package extract

import (
	"strings"
	"unicode"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/publicsuffix"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/yasi76/namesift/internal/entity"
	"github.com/yasi76/namesift/internal/normalize"
)

// Domain fallback priors. The registrable label is a weak signal; a
// configured override is the one case where the domain is authoritative
// enough to rank near the middle of the field.
const (
	domainOverridePrior = 0.50
	domainCleanPrior    = 0.45
	domainSplitPrior    = 0.40
	domainWeakPrior     = 0.30
)

// sectorSuffixes are industry words glued onto domain labels
// ("kranushealth") that are not part of the brand.
var sectorSuffixes = []string{"health", "healthcare", "medical", "pharma", "biotech", "med", "care"}

var titleCaser = cases.Title(language.Und)

// Domain derives a company-name candidate from the registrable domain
// label. It always yields a candidate, making it the floor under pages
// whose markup gives nothing.
type Domain struct {
	overrides map[string]string
}

// NewDomain builds the strategy with per-host name overrides keyed by bare
// host.
func NewDomain(overrides map[string]string) *Domain {
	return &Domain{overrides: overrides}
}

// Name implements Strategy.
func (d *Domain) Name() entity.Method { return entity.MethodDomain }

// Extract implements Strategy.
func (d *Domain) Extract(_ *goquery.Document, page *entity.PageContent) []entity.Candidate {
	host := normalize.BareHost(page.FinalURL)
	if host == "" {
		host = normalize.BareHost(page.URL)
	}
	if host == "" {
		return nil
	}

	if name, ok := d.overrides[host]; ok {
		return []entity.Candidate{
			newCandidate(name, entity.KindCompany, entity.MethodDomain, domainOverridePrior, host),
		}
	}

	label := registrableLabel(host)
	if label == "" {
		return nil
	}

	name, prior := labelToName(label)
	if name == "" {
		return nil
	}

	return []entity.Candidate{
		newCandidate(name, entity.KindCompany, entity.MethodDomain, prior, host),
	}
}

// registrableLabel returns the leftmost label of the registrable domain:
// "kranushealth" for "www.kranushealth.com".
func registrableLabel(host string) string {
	domain, err := publicsuffix.EffectiveTLDPlusOne(host)
	if err != nil {
		domain = host
	}

	label, _, _ := strings.Cut(domain, ".")
	return label
}

// labelToName splits a domain label into words and title-cases them,
// returning the name and the prior reflecting how much structure the label
// had.
func labelToName(label string) (string, float64) {
	label = strings.Trim(label, "-_")
	trimmed := trimSectorSuffix(label)

	parts := splitLabel(trimmed)
	if len(parts) == 0 {
		return "", 0
	}

	words := make([]string, 0, len(parts))
	for _, p := range parts {
		if len(p) <= 2 {
			// Short tokens are almost always acronyms ("ai", "dpv").
			words = append(words, strings.ToUpper(p))
			continue
		}
		words = append(words, titleCaser.String(p))
	}
	name := strings.Join(words, " ")

	switch {
	case len(parts) > 1:
		return name, domainSplitPrior
	case len(trimmed) >= 4 && isAlphabetic(trimmed):
		return name, domainCleanPrior
	default:
		return name, domainWeakPrior
	}
}

// trimSectorSuffix drops a glued industry suffix when enough of the label
// remains to still be a name.
func trimSectorSuffix(label string) string {
	for _, suffix := range sectorSuffixes {
		if strings.HasSuffix(label, suffix) && !strings.EqualFold(label, suffix) {
			rest := strings.Trim(strings.TrimSuffix(label, suffix), "-_")
			if len(rest) >= 3 {
				return rest
			}
		}
	}
	return label
}

// splitLabel breaks a label on hyphens, underscores, and stray dots.
func splitLabel(label string) []string {
	return strings.FieldsFunc(label, func(r rune) bool {
		return r == '-' || r == '_' || r == '.'
	})
}

func isAlphabetic(s string) bool {
	for _, r := range s {
		if !unicode.IsLetter(r) {
			return false
		}
	}
	return s != ""
}
