package domsanitizer

import (
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/aymerick/douceur/css"
	"github.com/chris-ramon/douceur/parser"
	"github.com/gorilla/css/scanner"
	"golang.org/x/net/html"
)

// RuleKind identifies the kind of a stylesheet rule. Plain style rules and
// keyframe rules are included alongside the @-prefixed kinds so a single
// allow-list covers the whole rule tree.
type RuleKind int

const (
	RuleUnknown RuleKind = iota
	RuleStyle
	RuleCharset
	RuleImport
	RuleMedia
	RuleFontFace
	RulePage
	RuleKeyframes
	RuleKeyframe
	RuleNamespace
	RuleSupports
	RuleDocument
)

func (k RuleKind) String() string {
	switch k {
	case RuleStyle:
		return "style"
	case RuleCharset:
		return "charset"
	case RuleImport:
		return "import"
	case RuleMedia:
		return "media"
	case RuleFontFace:
		return "font-face"
	case RulePage:
		return "page"
	case RuleKeyframes:
		return "keyframes"
	case RuleKeyframe:
		return "keyframe"
	case RuleNamespace:
		return "namespace"
	case RuleSupports:
		return "supports"
	case RuleDocument:
		return "document"
	}
	return "unknown"
}

var (
	// cssExpressionRegexp matches the IE expression(...) vector. Each letter
	// class also accepts the fullwidth Unicode homoglyph, which IE treated
	// as equivalent.
	cssExpressionRegexp = regexp.MustCompile(`(?s)[eE\x{FF25}\x{FF45}][xX\x{FF38}\x{FF58}][pP\x{FF30}\x{FF50}][rR\x{FF32}\x{FF52}][eE\x{FF25}\x{FF45}][sS\x{FF33}\x{FF53}]{2}[iI\x{FF29}\x{FF49}][oO\x{FF2F}\x{FF4F}][nN\x{FF2E}\x{FF4E}]\s*\(.*\)`)

	// cssURLRegexp matches url(...) references; quoting is handled by
	// cssURLTarget.
	cssURLRegexp = regexp.MustCompile(`(?is)url\s*\(\s*([^)]*?)\s*\)`)
)

// cssURLTarget strips the optional surrounding quotes from a url() argument.
func cssURLTarget(arg string) string {
	if len(arg) >= 2 {
		if (arg[0] == '"' && arg[len(arg)-1] == '"') || (arg[0] == '\'' && arg[len(arg)-1] == '\'') {
			return arg[1 : len(arg)-1]
		}
	}
	return arg
}

// decodeCSS resolves backslash escapes and strips comments so that policy
// checks always see the canonical form. Matching before decoding would let
// "exp\72 ession" or "wid/**/th" slip past the allow-lists.
func decodeCSS(s string) string {
	return stripCSSComments(decodeCSSEscapes(s))
}

func decodeCSSEscapes(s string) string {
	if !strings.Contains(s, `\`) {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); {
		if s[i] != '\\' || i+1 == len(s) {
			b.WriteByte(s[i])
			i++
			continue
		}
		i++
		// Up to six hex digits, with one optional whitespace terminator.
		j := i
		for j < len(s) && j-i < 6 && isHexDigit(s[j]) {
			j++
		}
		if j > i {
			if v, err := strconv.ParseUint(s[i:j], 16, 32); err == nil {
				r := rune(v)
				if r == 0 || r > utf8.MaxRune {
					r = utf8.RuneError
				}
				b.WriteRune(r)
			}
			if j < len(s) && isCSSSpace(s[j]) {
				j++
			}
			i = j
			continue
		}
		// An escaped newline is a line continuation and disappears; any
		// other escaped character stands for itself.
		r, size := utf8.DecodeRuneInString(s[i:])
		if r != '\n' && r != '\r' && r != '\f' {
			b.WriteRune(r)
		}
		i += size
	}
	return b.String()
}

func isHexDigit(c byte) bool {
	return c >= '0' && c <= '9' || c >= 'a' && c <= 'f' || c >= 'A' && c <= 'F'
}

func isCSSSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\r' || c == '\n' || c == '\f'
}

// stripCSSComments removes /* ... */ runs token-wise. An unterminated
// comment swallows the rest of the input, as it would in a real parser.
func stripCSSComments(s string) string {
	if !strings.Contains(s, "/*") {
		return s
	}
	if i := strings.LastIndex(s, "/*"); i >= 0 && !strings.Contains(s[i:], "*/") {
		s = s[:i]
	}
	var b strings.Builder
	b.Grow(len(s))
	sc := scanner.New(s)
	for {
		t := sc.Next()
		switch t.Type {
		case scanner.TokenEOF, scanner.TokenError:
			return b.String()
		case scanner.TokenComment:
		default:
			b.WriteString(t.Value)
		}
	}
}

type declRemoval struct {
	decl   *css.Declaration
	reason RemoveReason
}

type declUpdate struct {
	name  string
	value string
}

// sanitizeDeclarations filters a flat property list against the CSS
// allow-lists and returns the surviving declarations. el is the owning
// element, used for hook context. Each property name and value is decoded
// before any comparison. Mutations are staged while the list is scanned and
// applied afterwards, value updates first, then removals.
func (s *Sanitizer) sanitizeDeclarations(el *html.Node, decls []*css.Declaration) []*css.Declaration {
	var (
		updates  []declUpdate
		removals []declRemoval
	)

	for _, decl := range decls {
		rawName := decl.Property
		name := strings.ToLower(strings.TrimSpace(decodeCSS(rawName)))
		value := decodeCSS(decl.Value)

		if !s.AllowedCSSProperties[name] {
			removals = append(removals, declRemoval{decl, ReasonNotAllowedStyle})
			continue
		}
		if cssExpressionRegexp.MatchString(value) ||
			(s.DisallowedValuePattern != nil && s.DisallowedValuePattern.MatchString(value)) {
			removals = append(removals, declRemoval{decl, ReasonNotAllowedValue})
			continue
		}

		if !cssURLRegexp.MatchString(value) {
			continue
		}
		rejected := false
		rewritten := cssURLRegexp.ReplaceAllStringFunc(value, func(ref string) string {
			target := cssURLTarget(cssURLRegexp.FindStringSubmatch(ref)[1])
			sanitized, ok := s.sanitizeURL(el, target)
			if !ok {
				rejected = true
				return ref
			}
			return "url(" + sanitized + ")"
		})
		if rejected {
			removals = append(removals, declRemoval{decl, ReasonNotAllowedURLValue})
			continue
		}
		if rewritten != value || name != rawName {
			if name != rawName {
				// The canonical decoded name replaces the raw escaped one.
				removals = append(removals, declRemoval{decl, ReasonNotAllowedStyle})
			}
			updates = append(updates, declUpdate{name, rewritten})
		}
	}

	for _, u := range updates {
		decls = setDeclaration(decls, u.name, u.value)
	}
	for _, r := range removals {
		if s.fireRemovingStyle(el, r.decl, r.reason) {
			decls = removeDeclaration(decls, r.decl)
		}
	}
	return decls
}

// setDeclaration replaces the value of the named property, or appends a new
// declaration when the name is absent. The match is exact: a raw escaped or
// differently-cased property staged for removal must not be resurrected by
// its canonical replacement.
func setDeclaration(decls []*css.Declaration, name, value string) []*css.Declaration {
	for _, d := range decls {
		if d.Property == name {
			d.Value = value
			return decls
		}
	}
	return append(decls, &css.Declaration{Property: name, Value: value})
}

func removeDeclaration(decls []*css.Declaration, decl *css.Declaration) []*css.Declaration {
	kept := decls[:0]
	for _, d := range decls {
		if d != decl {
			kept = append(kept, d)
		}
	}
	return kept
}

// ruleKind maps a parsed douceur rule onto the RuleKind enumeration. parent
// distinguishes keyframe rules, which parse as plain qualified rules inside
// a @keyframes block.
func ruleKind(rule *css.Rule, parent RuleKind) RuleKind {
	if rule.Kind == css.QualifiedRule {
		if parent == RuleKeyframes {
			return RuleKeyframe
		}
		return RuleStyle
	}
	name := strings.TrimPrefix(strings.ToLower(rule.Name), "@")
	for _, p := range []string{"-webkit-", "-moz-", "-ms-", "-o-"} {
		name = strings.TrimPrefix(name, p)
	}
	switch name {
	case "charset":
		return RuleCharset
	case "import":
		return RuleImport
	case "media":
		return RuleMedia
	case "font-face":
		return RuleFontFace
	case "page":
		return RulePage
	case "keyframes":
		return RuleKeyframes
	case "namespace":
		return RuleNamespace
	case "supports":
		return RuleSupports
	case "document":
		return RuleDocument
	}
	return RuleUnknown
}

// sanitizeRule reports whether the rule may remain; the caller removes it
// when false. Grouping and keyframes rules filter their children in place
// and always remain themselves.
func (s *Sanitizer) sanitizeRule(el *html.Node, rule *css.Rule, kind RuleKind) bool {
	if !s.AllowedAtRules[kind] {
		return false
	}
	switch kind {
	case RuleStyle, RulePage, RuleKeyframe:
		rule.Declarations = s.sanitizeDeclarations(el, rule.Declarations)
	case RuleMedia, RuleSupports, RuleDocument:
		s.sanitizeChildRules(el, rule, RuleUnknown)
	case RuleKeyframes:
		s.sanitizeChildRules(el, rule, RuleKeyframes)
	}
	return true
}

func (s *Sanitizer) sanitizeChildRules(el *html.Node, rule *css.Rule, parent RuleKind) {
	kept := rule.Rules[:0]
	for _, child := range rule.Rules {
		if s.sanitizeRule(el, child, ruleKind(child, parent)) || !s.fireRemovingAtRule(el, child) {
			kept = append(kept, child)
		}
	}
	rule.Rules = kept
}

// sanitizeStyleElement reparses, filters, and regenerates the CSS owned by a
// <style> element. The content is always rewritten from the rule tree, even
// when nothing was removed, and literal "<" is escaped so the regenerated
// text cannot terminate the style context early.
func (s *Sanitizer) sanitizeStyleElement(el *html.Node) {
	sheet, err := parser.Parse(elementText(el))
	if err != nil {
		setElementText(el, "")
		return
	}

	kept := sheet.Rules[:0]
	for _, rule := range sheet.Rules {
		if s.sanitizeRule(el, rule, ruleKind(rule, RuleUnknown)) || !s.fireRemovingAtRule(el, rule) {
			kept = append(kept, rule)
		}
	}
	sheet.Rules = kept

	setElementText(el, strings.ReplaceAll(sheet.String(), "<", `\3c `))
}

// sanitizeStyleAttribute applies the declaration sanitizer to an inline
// style attribute. A value that does not parse into any declaration is
// dropped outright; emptiness after filtering is handled by the generic
// attribute scan.
func (s *Sanitizer) sanitizeStyleAttribute(el *html.Node) {
	raw, present := lookupAttr(el, "style")
	if !present {
		return
	}
	decls, err := parser.ParseDeclarations(raw)
	if err != nil || len(decls) == 0 {
		RemoveAttr(el, "style")
		return
	}
	decls = s.sanitizeDeclarations(el, decls)

	parts := make([]string, 0, len(decls))
	for _, d := range decls {
		parts = append(parts, d.String())
	}
	SetAttr(el, "style", strings.Join(parts, " "))
}
