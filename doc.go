// Package domsanitizer provides a policy-driven sanitizer for untrusted
// HTML and CSS, including embedded stylesheets.
//
// # Overview
//
// domsanitizer parses markup with golang.org/x/net/html and stylesheets
// with douceur, walks the resulting trees, and removes everything a
// [Sanitizer]'s allow-lists do not permit. Three entry points cover the
// common shapes of input:
//   - [Sanitizer.Sanitize] — an HTML fragment, rendered body-only
//   - [Sanitizer.SanitizeDocument] — a full document with scaffolding
//   - [Sanitizer.SanitizeNode] — an already-parsed tree, mutated in place
//
// # Policy
//
// A [Sanitizer] controls:
//   - Which element tags survive ([Sanitizer.AllowedTags]); removed
//     elements lose their whole subtree unless
//     [Sanitizer.KeepChildNodes] splices the children back in
//   - Which attributes survive ([Sanitizer.AllowedAttributes],
//     [Sanitizer.AllowDataAttributes])
//   - Which URL schemes are permitted in URI attributes and CSS url()
//     references ([Sanitizer.AllowedSchemes]), with optional relative
//     resolution against [Sanitizer.BaseURL]
//   - Which CSS properties and stylesheet rule kinds survive
//     ([Sanitizer.AllowedCSSProperties], [Sanitizer.AllowedAtRules])
//   - Which class tokens survive ([Sanitizer.AllowedClasses]; empty means
//     unrestricted)
//
// Two constructors are provided: [NewSanitizer], a permissive but safe
// policy covering common content markup plus an SVG subset, and
// [StrictSanitizer], a minimal inline-formatting policy.
//
// # Hooks
//
// Every removal or rewrite decision fires a callback on [Sanitizer.Hooks]
// carrying the subject and a [RemoveReason]. Callbacks can audit decisions
// or veto them by setting Cancel; the URL hook can substitute its own
// sanitized value, and the post-process hooks can replace nodes wholesale.
//
// # Security
//
// domsanitizer defends against common injection vectors including:
//   - Script elements and event handler attributes
//   - javascript: and data: URL schemes, also when the scheme delimiter is
//     smuggled as &#58; or &#x3a;
//   - CSS expression(...) injection, including fullwidth homoglyphs
//   - CSS escape and comment obfuscation (values are decoded before any
//     policy check)
//   - Legacy &{...} style/script includes in attribute values
//
// Malformed or adversarial input never produces an error; every unsafe
// condition degrades to a removal. Errors are returned only for parser or
// renderer failures.
//
// # Thread Safety
//
// Distinct trees may be sanitized concurrently through a shared Sanitizer
// as long as its configuration and hooks are not mutated while calls are
// in flight.
package domsanitizer
