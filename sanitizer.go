package domsanitizer

import (
	"bytes"
	"regexp"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Sanitizer holds the sanitization policy. All name-based sets are keyed by
// lowercase name and compared case-insensitively. The zero value allows
// nothing; use NewSanitizer for the default policy.
//
// A Sanitizer may be reconfigured between calls and shared read-only across
// goroutines, but must not be mutated while a sanitize call is in flight.
type Sanitizer struct {
	// AllowedTags is the set of element names kept in the output. Elements
	// with any other name are removed together with their subtree, or
	// spliced out when KeepChildNodes is set.
	AllowedTags map[string]bool

	// AllowedAttributes is the set of attribute names kept on elements.
	AllowedAttributes map[string]bool

	// URIAttributes names the attributes whose values are URLs and must
	// pass scheme validation and, when BaseURL is set, relative resolution.
	URIAttributes map[string]bool

	// AllowedCSSProperties is the set of CSS property names kept in inline
	// styles and stylesheet rules. Names are decoded before the check.
	AllowedCSSProperties map[string]bool

	// AllowedAtRules is the set of rule kinds kept in stylesheets.
	AllowedAtRules map[RuleKind]bool

	// AllowedClasses restricts class tokens. An empty set means all classes
	// are allowed, not none.
	AllowedClasses map[string]bool

	// AllowedSchemes is the set of URL schemes permitted in URI attributes
	// and CSS url() references.
	AllowedSchemes map[string]bool

	// DisallowedValuePattern optionally rejects CSS values that match it,
	// in addition to the built-in expression(...) detector. Nil disables
	// the check.
	DisallowedValuePattern *regexp.Regexp

	// AllowDataAttributes permits attributes with a data- name prefix
	// regardless of AllowedAttributes.
	AllowDataAttributes bool

	// KeepChildNodes splices the children of a removed element into its
	// former position instead of deleting the whole subtree.
	KeepChildNodes bool

	// BaseURL, when non-empty, is the base against which relative URL
	// values are resolved. Resolution failure rejects the value.
	BaseURL string

	// Hooks receives a callback at every removal or rewrite decision.
	Hooks Hooks
}

// NewSanitizer returns a Sanitizer preloaded with the default allow-lists:
// common HTML5 content tags plus an SVG subset, safe attributes, the CSS2
// property set with SVG presentation properties, http/https/mailto schemes,
// and plain style plus @namespace rules.
func NewSanitizer() *Sanitizer {
	return &Sanitizer{
		AllowedTags:          sliceToSet(defaultTags),
		AllowedAttributes:    sliceToSet(defaultAttributes),
		URIAttributes:        sliceToSet(defaultURIAttributes),
		AllowedCSSProperties: sliceToSet(defaultCSSProperties),
		AllowedAtRules:       ruleKindSet(defaultAtRules),
		AllowedClasses:       map[string]bool{},
		AllowedSchemes:       sliceToSet(defaultSchemes),
	}
}

// StrictSanitizer returns a Sanitizer that allows only basic inline
// formatting with no attributes, no styles, and no URLs. Suitable for
// comment sections and other minimally formatted user content.
func StrictSanitizer() *Sanitizer {
	return &Sanitizer{
		AllowedTags:          sliceToSet([]string{"b", "i", "em", "strong", "br", "p", "ul", "ol", "li"}),
		AllowedAttributes:    map[string]bool{},
		URIAttributes:        map[string]bool{},
		AllowedCSSProperties: map[string]bool{},
		AllowedAtRules:       map[RuleKind]bool{},
		AllowedClasses:       map[string]bool{},
		AllowedSchemes:       map[string]bool{},
	}
}

// Sanitize parses fragment as body content, applies the policy, and returns
// the sanitized markup. The error is non-nil only for parser or renderer
// failures, never for adversarial input.
func (s *Sanitizer) Sanitize(fragment string) (string, error) {
	ctx := &html.Node{Type: html.ElementNode, Data: "body", DataAtom: atom.Body}
	nodes, err := html.ParseFragment(strings.NewReader(fragment), ctx)
	if err != nil {
		return "", err
	}
	for _, n := range nodes {
		ctx.AppendChild(n)
	}

	s.SanitizeNode(ctx)

	var buf bytes.Buffer
	for c := ctx.FirstChild; c != nil; c = c.NextSibling {
		if err := html.Render(&buf, c); err != nil {
			return "", err
		}
	}
	return buf.String(), nil
}

// SanitizeDocument parses document as a full HTML document, applies the
// policy, and returns the sanitized markup including the root scaffolding.
func (s *Sanitizer) SanitizeDocument(document string) (string, error) {
	doc, err := html.Parse(strings.NewReader(document))
	if err != nil {
		return "", err
	}

	s.SanitizeNode(doc)

	var buf bytes.Buffer
	if err := html.Render(&buf, doc); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// SanitizeNode applies the policy to an already-parsed tree in place and
// returns it. The root itself is never removed; filtering applies to its
// descendants.
func (s *Sanitizer) SanitizeNode(root *html.Node) *html.Node {
	s.removeDisallowedTags(root)
	s.sanitizeStyleSheets(root)
	for _, el := range elementsIn(root) {
		s.sanitizeElement(el)
	}
	s.removeComments(root)
	s.postProcess(root)
	return root
}

// removeDisallowedTags deletes every descendant element whose tag is not
// allowed. Candidates are snapshotted before any removal so mutation never
// perturbs the scan.
func (s *Sanitizer) removeDisallowedTags(root *html.Node) {
	var disallowed []*html.Node
	for _, el := range elementsIn(root) {
		if !s.AllowedTags[strings.ToLower(el.Data)] {
			disallowed = append(disallowed, el)
		}
	}
	for _, el := range disallowed {
		if el.Parent == nil {
			// already gone with a removed ancestor
			continue
		}
		if !s.fireRemovingTag(el, ReasonNotAllowedTag) {
			continue
		}
		if s.KeepChildNodes && el.FirstChild != nil {
			spliceChildren(el)
		} else {
			detach(el)
		}
	}
}

// sanitizeStyleSheets runs the rule-tree sanitizer over every surviving
// style container.
func (s *Sanitizer) sanitizeStyleSheets(root *html.Node) {
	for _, el := range elementsIn(root) {
		if strings.EqualFold(el.Data, "style") {
			s.sanitizeStyleElement(el)
		}
	}
}

// sanitizeElement runs the per-element attribute pipeline: the attribute
// allow-list, URI attribute validation, inline style sanitization, and the
// generic value scan.
func (s *Sanitizer) sanitizeElement(el *html.Node) {
	for _, attr := range snapshotAttrs(el) {
		if !s.isAllowedAttribute(attr.Key) {
			s.removeAttribute(el, attr, ReasonNotAllowedAttribute)
		}
	}

	for _, attr := range snapshotAttrs(el) {
		if !s.URIAttributes[strings.ToLower(attr.Key)] {
			continue
		}
		if sanitized, ok := s.sanitizeURL(el, attr.Val); !ok {
			s.removeAttribute(el, attr, ReasonNotAllowedURLValue)
		} else if sanitized != attr.Val {
			SetAttr(el, attr.Key, sanitized)
		}
	}

	s.sanitizeStyleAttribute(el)

	for _, attr := range snapshotAttrs(el) {
		if strings.Contains(attr.Val, "&{") {
			// Netscape-era style/script include syntax; unconditionally
			// unsafe in attribute values.
			s.removeAttribute(el, attr, ReasonNotAllowedValue)
		} else if strings.EqualFold(attr.Key, "class") && len(s.AllowedClasses) > 0 {
			s.filterClasses(el, attr)
		} else if strings.EqualFold(attr.Key, "style") && attr.Val == "" {
			s.removeAttribute(el, attr, ReasonStyleAttributeEmpty)
		}
	}
}

func (s *Sanitizer) isAllowedAttribute(name string) bool {
	name = strings.ToLower(name)
	if s.AllowedAttributes[name] {
		return true
	}
	return s.AllowDataAttributes && strings.HasPrefix(name, "data-")
}

func (s *Sanitizer) removeAttribute(el *html.Node, attr html.Attribute, reason RemoveReason) {
	if s.fireRemovingAttribute(el, attr, reason) {
		RemoveAttr(el, attr.Key)
	}
}

// filterClasses removes class tokens outside the allowed set, and the whole
// attribute when no token survives. Only called when class restriction is
// active.
func (s *Sanitizer) filterClasses(el *html.Node, attr html.Attribute) {
	var kept []string
	removed := false
	for _, class := range strings.Fields(attr.Val) {
		if s.AllowedClasses[strings.ToLower(class)] || !s.fireRemovingClass(el, class) {
			kept = append(kept, class)
		} else {
			removed = true
		}
	}
	if len(kept) == 0 {
		s.removeAttribute(el, attr, ReasonClassAttributeEmpty)
	} else if removed {
		SetAttr(el, attr.Key, strings.Join(kept, " "))
	}
}

func (s *Sanitizer) removeComments(root *html.Node) {
	var comments []*html.Node
	for _, n := range nodesIn(root) {
		if n.Type == html.CommentNode {
			comments = append(comments, n)
		}
	}
	for _, n := range comments {
		if s.fireRemovingComment(n) {
			detach(n)
		}
	}
}

func (s *Sanitizer) postProcess(root *html.Node) {
	if s.Hooks.PostProcessNode != nil {
		normalizeText(root)
		for _, n := range nodesIn(root) {
			if n.Parent == nil {
				continue
			}
			ev := &PostProcessNodeEvent{Node: n}
			s.Hooks.PostProcessNode(ev)
			if len(ev.ReplacementNodes) > 0 {
				replaceWithNodes(n, ev.ReplacementNodes)
			}
		}
	}
	if s.Hooks.PostProcessDocument != nil {
		s.Hooks.PostProcessDocument(&PostProcessDocumentEvent{Root: root})
	}
}

// StripTags removes all markup and returns plain text. Entity references
// are decoded.
func StripTags(fragment string) (string, error) {
	ctx := &html.Node{Type: html.ElementNode, Data: "body", DataAtom: atom.Body}
	nodes, err := html.ParseFragment(strings.NewReader(fragment), ctx)
	if err != nil {
		return "", err
	}
	var buf bytes.Buffer
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			buf.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	for _, n := range nodes {
		walk(n)
	}
	return buf.String(), nil
}

// --- helpers ---------------------------------------------------------

// elementsIn returns a snapshot of every descendant element of root, in
// document order. The root itself is excluded.
func elementsIn(root *html.Node) []*html.Node {
	var els []*html.Node
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if c.Type == html.ElementNode {
				els = append(els, c)
			}
			walk(c)
		}
	}
	walk(root)
	return els
}

// nodesIn returns a snapshot of every descendant node of root, in document
// order.
func nodesIn(root *html.Node) []*html.Node {
	var nodes []*html.Node
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			nodes = append(nodes, c)
			walk(c)
		}
	}
	walk(root)
	return nodes
}

func snapshotAttrs(el *html.Node) []html.Attribute {
	if len(el.Attr) == 0 {
		return nil
	}
	return append([]html.Attribute(nil), el.Attr...)
}

func sliceToSet(s []string) map[string]bool {
	m := make(map[string]bool, len(s))
	for _, v := range s {
		m[strings.ToLower(v)] = true
	}
	return m
}

func ruleKindSet(kinds []RuleKind) map[RuleKind]bool {
	m := make(map[RuleKind]bool, len(kinds))
	for _, k := range kinds {
		m[k] = true
	}
	return m
}
