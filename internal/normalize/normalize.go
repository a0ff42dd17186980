// Package normalize provides pure canonicalization helpers for URLs and
// text so that later pipeline stages compare like with like.
package normalize

import (
	"html"
	"net/url"
	"strings"
)

// subdomainPrefixes are service subdomains that do not identify a distinct
// site for comparison purposes.
var subdomainPrefixes = []string{"www.", "shop.", "app.", "api.", "blog.", "news.", "portal."}

// URL canonicalizes a raw URL into a join key: scheme stripped, "www."
// stripped, query string and fragment dropped, trailing slash removed,
// host lower-cased. Malformed input is normalized best-effort; URL never
// fails.
func URL(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}

	parsed, err := url.Parse(raw)
	if err != nil || parsed.Host == "" {
		// Retry with an explicit scheme so "example.com/x" parses a host.
		parsed, err = url.Parse("http://" + raw)
		if err != nil || parsed.Host == "" {
			return strings.ToLower(strings.TrimRight(raw, "/"))
		}
	}

	host := strings.TrimPrefix(strings.ToLower(parsed.Host), "www.")
	path := strings.TrimRight(parsed.Path, "/")

	return host + path
}

// Host returns the lower-cased host of a URL with any "www." prefix
// removed, or "" when no host can be recovered.
func Host(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}

	parsed, err := url.Parse(raw)
	if err != nil || parsed.Host == "" {
		parsed, err = url.Parse("http://" + raw)
		if err != nil || parsed.Host == "" {
			return ""
		}
	}

	host := strings.ToLower(parsed.Host)
	if h, _, ok := strings.Cut(host, ":"); ok {
		host = h
	}

	return strings.TrimPrefix(host, "www.")
}

// BareHost strips the service subdomain prefixes (shop., app., ...) used by
// the domain-fallback strategy in addition to "www.".
func BareHost(raw string) string {
	host := Host(raw)
	for _, prefix := range subdomainPrefixes {
		if strings.HasPrefix(host, prefix) {
			host = strings.TrimPrefix(host, prefix)
			break
		}
	}
	return host
}

// Text trims a string, collapses internal whitespace runs to single spaces,
// and unescapes common HTML entities. Never fails.
func Text(s string) string {
	if s == "" {
		return ""
	}

	s = html.UnescapeString(s)
	// UnescapeString turns &nbsp; into a non-breaking space, which Fields
	// does not treat as a separator.
	s = strings.ReplaceAll(s, " ", " ")

	return strings.Join(strings.Fields(s), " ")
}

// Key lower-cases normalized text for case-insensitive comparison.
func Key(s string) string {
	return strings.ToLower(Text(s))
}
