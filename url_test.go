package domsanitizer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractScheme(t *testing.T) {
	tests := []struct {
		raw    string
		scheme string
		found  bool
	}{
		{"http://example.com", "http", true},
		{"  HTTPS://example.com", "https", true},
		{"mailto:a@example.com", "mailto", true},
		{"javascript:alert(1)", "javascript", true},
		{"javascript&#58;alert(1)", "javascript", true},
		{"javascript&#58alert(1)", "javascript", true},
		{"javascript&#0058;alert(1)", "javascript", true},
		{"javascript&#x3a;alert(1)", "javascript", true},
		{"javascript&#x3A;alert(1)", "javascript", true},
		{"javascript&#x0003a;alert(1)", "javascript", true},
		{"JaVaScRiPt:alert(1)", "javascript", true},
		{"/path:with/colon", "", false},
		{"#frag:ment", "", false},
		{"java/script:alert(1)", "", false},
		{"relative/path.png", "", false},
		{"", "", false},
	}
	for _, tt := range tests {
		scheme, found := extractScheme(tt.raw)
		assert.Equal(t, tt.found, found, "found mismatch for %q", tt.raw)
		assert.Equal(t, tt.scheme, scheme, "scheme mismatch for %q", tt.raw)
	}
}

func TestSanitizeURL(t *testing.T) {
	s := NewSanitizer()

	got, ok := s.sanitizeURL(testElement(), "https://example.com/x")
	assert.True(t, ok)
	assert.Equal(t, "https://example.com/x", got)

	_, ok = s.sanitizeURL(testElement(), "javascript:alert(1)")
	assert.False(t, ok)

	got, ok = s.sanitizeURL(testElement(), "relative/x.png")
	assert.True(t, ok)
	assert.Equal(t, "relative/x.png", got)
}

func TestSanitizeURL_BaseResolution(t *testing.T) {
	s := NewSanitizer()
	s.BaseURL = "http://example.com/a/"

	got, ok := s.sanitizeURL(testElement(), "x.png")
	assert.True(t, ok)
	assert.Equal(t, "http://example.com/a/x.png", got)

	got, ok = s.sanitizeURL(testElement(), "../up.png")
	assert.True(t, ok)
	assert.Equal(t, "http://example.com/up.png", got)

	// Absolute URLs are not rewritten by the base.
	got, ok = s.sanitizeURL(testElement(), "https://other.com/x")
	assert.True(t, ok)
	assert.Equal(t, "https://other.com/x", got)

	_, ok = s.sanitizeURL(testElement(), "%zz")
	assert.False(t, ok)
}

func TestSanitizeURL_HookOverridesVerdict(t *testing.T) {
	s := NewSanitizer()
	s.Hooks.FilteringURL = func(ev *FilteringURLEvent) {
		if ev.OriginalURL == "javascript:trusted()" {
			ev.URL = ev.OriginalURL
			ev.Allow = true
		} else {
			ev.Allow = false
		}
	}

	got, ok := s.sanitizeURL(testElement(), "javascript:trusted()")
	assert.True(t, ok)
	assert.Equal(t, "javascript:trusted()", got)

	_, ok = s.sanitizeURL(testElement(), "https://example.com")
	assert.False(t, ok)
}

func TestResolveReference(t *testing.T) {
	got, ok := resolveReference("http://example.com/a/", "b/c.png")
	assert.True(t, ok)
	assert.Equal(t, "http://example.com/a/b/c.png", got)

	_, ok = resolveReference("http://[bad", "x")
	assert.False(t, ok)

	_, ok = resolveReference("http://example.com/", "%zz")
	assert.False(t, ok)
}
