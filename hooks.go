package domsanitizer

import (
	"github.com/aymerick/douceur/css"
	"golang.org/x/net/html"
)

// RemoveReason explains why a node, attribute, style property, class token,
// or rule is being removed. It is attached to every removal event so callers
// can log, audit, or veto individual decisions.
type RemoveReason int

const (
	// ReasonNotAllowedTag is used when an element's tag name is not in
	// Sanitizer.AllowedTags.
	ReasonNotAllowedTag RemoveReason = iota

	// ReasonNotAllowedAttribute is used when an attribute's name is not in
	// Sanitizer.AllowedAttributes (and is not a permitted data-* attribute).
	ReasonNotAllowedAttribute

	// ReasonNotAllowedURLValue is used when a URI attribute value, or a
	// url() reference inside a CSS value, has a scheme outside
	// Sanitizer.AllowedSchemes or fails base-URL resolution.
	ReasonNotAllowedURLValue

	// ReasonNotAllowedValue is used when an attribute or CSS value matches a
	// known injection vector ("&{", expression(...)) or the configured
	// DisallowedValuePattern.
	ReasonNotAllowedValue

	// ReasonNotAllowedStyle is used when a CSS property name is not in
	// Sanitizer.AllowedCSSProperties.
	ReasonNotAllowedStyle

	// ReasonNotAllowedCSSClass is used when a class token is not in
	// Sanitizer.AllowedClasses.
	ReasonNotAllowedCSSClass

	// ReasonClassAttributeEmpty is used when class filtering left no tokens
	// behind and the class attribute itself is removed.
	ReasonClassAttributeEmpty

	// ReasonStyleAttributeEmpty is used when style sanitization left no
	// declarations behind and the style attribute itself is removed.
	ReasonStyleAttributeEmpty
)

func (r RemoveReason) String() string {
	switch r {
	case ReasonNotAllowedTag:
		return "not-allowed-tag"
	case ReasonNotAllowedAttribute:
		return "not-allowed-attribute"
	case ReasonNotAllowedURLValue:
		return "not-allowed-url-value"
	case ReasonNotAllowedValue:
		return "not-allowed-value"
	case ReasonNotAllowedStyle:
		return "not-allowed-style"
	case ReasonNotAllowedCSSClass:
		return "not-allowed-css-class"
	case ReasonClassAttributeEmpty:
		return "class-attribute-empty"
	case ReasonStyleAttributeEmpty:
		return "style-attribute-empty"
	}
	return "unknown"
}

// Hooks holds one optional callback per sanitization decision point. A nil
// field means no observer. All callbacks are invoked synchronously on the
// goroutine running the sanitize call; setting Cancel on a removal event
// vetoes that removal and leaves the subject untouched.
//
// Hooks must not be mutated while a sanitize call is in flight.
type Hooks struct {
	// RemovingTag fires before a disallowed element is removed (or spliced
	// out when KeepChildNodes is set).
	RemovingTag func(*RemovingTagEvent)

	// RemovingAttribute fires before an attribute is removed for any reason.
	RemovingAttribute func(*RemovingAttributeEvent)

	// RemovingStyle fires before a CSS property is removed from an inline
	// style or a stylesheet rule.
	RemovingStyle func(*RemovingStyleEvent)

	// RemovingAtRule fires before a whole rule is deleted from a stylesheet
	// or from its parent grouping/keyframes rule.
	RemovingAtRule func(*RemovingAtRuleEvent)

	// RemovingComment fires before a comment node is removed.
	RemovingComment func(*RemovingCommentEvent)

	// RemovingClass fires before a single class token is removed from a
	// class attribute.
	RemovingClass func(*RemovingClassEvent)

	// FilteringURL fires for every URL the sanitizer judges, after scheme
	// checking and base-URL resolution. The callback may rewrite URL or flip
	// Allow in either direction; the final event state wins.
	FilteringURL func(*FilteringURLEvent)

	// PostProcessNode fires once per remaining node after all filtering.
	// Subscribing triggers text-node normalization first. Setting
	// ReplacementNodes splices those nodes in place of Node.
	PostProcessNode func(*PostProcessNodeEvent)

	// PostProcessDocument fires once for the whole tree after all other
	// processing.
	PostProcessDocument func(*PostProcessDocumentEvent)
}

// RemovingTagEvent reports an element about to be removed.
type RemovingTagEvent struct {
	Element *html.Node
	Reason  RemoveReason
	Cancel  bool
}

// RemovingAttributeEvent reports an attribute about to be removed from
// Element.
type RemovingAttributeEvent struct {
	Element   *html.Node
	Attribute html.Attribute
	Reason    RemoveReason
	Cancel    bool
}

// RemovingStyleEvent reports a CSS property about to be removed. Element is
// the owning element: the styled element for inline style, the <style>
// container for stylesheet rules.
type RemovingStyleEvent struct {
	Element  *html.Node
	Property *css.Declaration
	Reason   RemoveReason
	Cancel   bool
}

// RemovingAtRuleEvent reports a stylesheet rule about to be deleted.
type RemovingAtRuleEvent struct {
	Element *html.Node
	Rule    *css.Rule
	Cancel  bool
}

// RemovingCommentEvent reports a comment node about to be removed.
type RemovingCommentEvent struct {
	Comment *html.Node
	Cancel  bool
}

// RemovingClassEvent reports a class token about to be removed from
// Element's class attribute.
type RemovingClassEvent struct {
	Element *html.Node
	Class   string
	Reason  RemoveReason
	Cancel  bool
}

// FilteringURLEvent reports a URL judgement. OriginalURL is the raw input
// value; URL is the computed candidate (post-resolution, or the original if
// resolution did not apply) and Allow its verdict. Observers may override
// both fields.
type FilteringURLEvent struct {
	Element     *html.Node
	OriginalURL string
	URL         string
	Allow       bool
}

// PostProcessNodeEvent lets an observer inspect or replace a single node.
type PostProcessNodeEvent struct {
	Node             *html.Node
	ReplacementNodes []*html.Node
}

// PostProcessDocumentEvent is fired once per sanitize call with the tree
// root.
type PostProcessDocumentEvent struct {
	Root *html.Node
}

// fireRemovingTag reports whether the removal should proceed.
func (s *Sanitizer) fireRemovingTag(n *html.Node, reason RemoveReason) bool {
	if s.Hooks.RemovingTag == nil {
		return true
	}
	ev := &RemovingTagEvent{Element: n, Reason: reason}
	s.Hooks.RemovingTag(ev)
	return !ev.Cancel
}

func (s *Sanitizer) fireRemovingAttribute(n *html.Node, attr html.Attribute, reason RemoveReason) bool {
	if s.Hooks.RemovingAttribute == nil {
		return true
	}
	ev := &RemovingAttributeEvent{Element: n, Attribute: attr, Reason: reason}
	s.Hooks.RemovingAttribute(ev)
	return !ev.Cancel
}

func (s *Sanitizer) fireRemovingStyle(n *html.Node, decl *css.Declaration, reason RemoveReason) bool {
	if s.Hooks.RemovingStyle == nil {
		return true
	}
	ev := &RemovingStyleEvent{Element: n, Property: decl, Reason: reason}
	s.Hooks.RemovingStyle(ev)
	return !ev.Cancel
}

func (s *Sanitizer) fireRemovingAtRule(n *html.Node, rule *css.Rule) bool {
	if s.Hooks.RemovingAtRule == nil {
		return true
	}
	ev := &RemovingAtRuleEvent{Element: n, Rule: rule}
	s.Hooks.RemovingAtRule(ev)
	return !ev.Cancel
}

func (s *Sanitizer) fireRemovingComment(n *html.Node) bool {
	if s.Hooks.RemovingComment == nil {
		return true
	}
	ev := &RemovingCommentEvent{Comment: n}
	s.Hooks.RemovingComment(ev)
	return !ev.Cancel
}

func (s *Sanitizer) fireRemovingClass(n *html.Node, class string) bool {
	if s.Hooks.RemovingClass == nil {
		return true
	}
	ev := &RemovingClassEvent{Element: n, Class: class, Reason: ReasonNotAllowedCSSClass}
	s.Hooks.RemovingClass(ev)
	return !ev.Cancel
}
