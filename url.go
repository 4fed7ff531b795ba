package domsanitizer

import (
	"net/url"
	"regexp"
	"strings"

	"golang.org/x/net/html"
)

// schemeRegexp extracts the scheme of a URL-like value. The delimiting colon
// may also appear as its decimal (&#58) or hexadecimal (&#x3a) character
// reference, with optional leading zeros, so entity-smuggled schemes like
// "javascript&#0058alert(1)" are caught before the browser would decode
// them. A "/" or "#" before the delimiter means the value is relative or a
// fragment and carries no scheme.
var schemeRegexp = regexp.MustCompile(`(?i)^\s*([^/#]*?)(?::|&#0*58;?|&#x0*3a;?)`)

// extractScheme returns the lowercased scheme of raw and whether one was
// present at all.
func extractScheme(raw string) (string, bool) {
	m := schemeRegexp.FindStringSubmatch(raw)
	if m == nil {
		return "", false
	}
	return strings.ToLower(strings.TrimSpace(m[1])), true
}

// sanitizeURL judges a candidate URL value. It returns the value to use and
// whether the value is safe; on (_, false) the caller must drop the
// attribute or reference. The FilteringURL hook sees every judgement and may
// override it.
func (s *Sanitizer) sanitizeURL(el *html.Node, raw string) (string, bool) {
	value, ok := raw, true

	if scheme, found := extractScheme(raw); found && !s.AllowedSchemes[scheme] {
		value, ok = "", false
	} else if !found && s.BaseURL != "" {
		// Relative reference with a configured base: resolve it. Any parse
		// failure counts as rejection, never as an error.
		value, ok = resolveReference(s.BaseURL, raw)
	}

	if s.Hooks.FilteringURL != nil {
		ev := &FilteringURLEvent{Element: el, OriginalURL: raw, URL: value, Allow: ok}
		s.Hooks.FilteringURL(ev)
		value, ok = ev.URL, ev.Allow
	}
	return value, ok
}

func resolveReference(base, ref string) (string, bool) {
	bu, err := url.Parse(base)
	if err != nil {
		return "", false
	}
	ru, err := url.Parse(strings.TrimSpace(ref))
	if err != nil {
		return "", false
	}
	return bu.ResolveReference(ru).String(), true
}
