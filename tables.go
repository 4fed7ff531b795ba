package domsanitizer

// Process-wide default allow-list tables. These are never handed to callers
// directly: constructors copy them into per-instance sets so mutating one
// Sanitizer cannot affect another.

var defaultTags = []string{
	// document scaffolding
	"html", "head", "title", "body", "style",
	// sections and headings
	"h1", "h2", "h3", "h4", "h5", "h6",
	"div", "span", "section", "article", "header", "footer", "main",
	"nav", "aside",
	// text content
	"p", "br", "hr", "pre", "blockquote", "cite", "q",
	"ul", "ol", "li", "dl", "dt", "dd",
	"figure", "figcaption", "address",
	// inline semantics
	"a", "b", "i", "em", "strong", "u", "s", "strike", "del", "ins",
	"code", "kbd", "samp", "var", "small", "big", "sub", "sup", "mark",
	"abbr", "acronym", "dfn", "time", "wbr", "bdi", "bdo", "ruby", "rt", "rp",
	// media
	"img", "map", "area",
	// tables
	"table", "caption", "colgroup", "col",
	"thead", "tbody", "tfoot", "tr", "th", "td",
	// interactive
	"details", "summary",
	// svg subset
	"svg", "g", "defs", "symbol", "use", "desc",
	"circle", "ellipse", "line", "path", "polygon", "polyline", "rect",
	"text", "tspan", "lineargradient", "radialgradient", "stop", "clippath",
}

var defaultAttributes = []string{
	// global
	"id", "class", "lang", "dir", "title", "style", "tabindex",
	"role", "aria-label", "aria-labelledby", "aria-describedby",
	"aria-hidden",
	// links and media
	"href", "src", "alt", "target", "rel", "width", "height", "loading",
	"srcset", "sizes", "usemap", "ismap", "shape", "coords", "download",
	"hreflang", "type", "media",
	// tables
	"colspan", "rowspan", "align", "valign", "scope", "span", "headers",
	"abbr", "summary", "cellpadding", "cellspacing", "border", "bgcolor",
	// citations and misc
	"cite", "datetime", "open", "name", "value", "reversed", "start",
	// svg structure
	"viewbox", "xmlns", "xmlns:xlink", "xml:space", "preserveaspectratio",
	"transform", "clip-path", "xlink:href",
	// svg geometry
	"cx", "cy", "r", "rx", "ry", "x", "y", "x1", "y1", "x2", "y2", "dx", "dy",
	"d", "points", "offset", "pathlength",
	// svg presentation
	"fill", "fill-opacity", "fill-rule", "stroke", "stroke-width",
	"stroke-linecap", "stroke-linejoin", "stroke-dasharray",
	"stroke-dashoffset", "stroke-opacity", "opacity", "stop-color",
	"stop-opacity", "font-family", "font-size", "text-anchor",
	"gradientunits", "gradienttransform",
}

// defaultURIAttributes are the attribute names whose values are URLs and
// must pass scheme validation.
var defaultURIAttributes = []string{
	"action", "background", "cite", "dynsrc", "formaction", "href",
	"lowsrc", "poster", "src", "usemap", "xlink:href",
}

var defaultCSSProperties = []string{
	// typography
	"direction", "font", "font-family", "font-size", "font-style",
	"font-variant", "font-weight", "letter-spacing", "line-height",
	"text-align", "text-decoration", "text-indent", "text-overflow",
	"text-shadow", "text-transform", "white-space", "word-break",
	"word-spacing", "word-wrap", "overflow-wrap", "vertical-align",
	"unicode-bidi", "quotes", "content", "counter-increment",
	"counter-reset",
	// color and background
	"color", "opacity", "background", "background-color",
	"background-image", "background-position", "background-repeat",
	"background-size", "background-attachment", "background-clip",
	"background-origin",
	// box model
	"width", "height", "min-width", "min-height", "max-width",
	"max-height", "box-sizing", "box-shadow",
	"margin", "margin-top", "margin-right", "margin-bottom", "margin-left",
	"padding", "padding-top", "padding-right", "padding-bottom",
	"padding-left",
	// borders and outlines
	"border", "border-top", "border-right", "border-bottom", "border-left",
	"border-color", "border-style", "border-width", "border-radius",
	"border-collapse", "border-spacing", "outline", "outline-color",
	"outline-style", "outline-width",
	// layout
	"display", "visibility", "position", "top", "right", "bottom", "left",
	"float", "clear", "clip", "z-index", "overflow", "overflow-x",
	"overflow-y", "zoom",
	"flex", "flex-basis", "flex-direction", "flex-flow", "flex-grow",
	"flex-shrink", "flex-wrap", "justify-content", "align-items",
	"align-content", "align-self", "order", "gap", "row-gap", "column-gap",
	// tables and lists
	"caption-side", "empty-cells", "table-layout",
	"list-style", "list-style-type", "list-style-position",
	"list-style-image",
	// print
	"page-break-after", "page-break-before", "page-break-inside",
	"orphans", "widows",
	// transitions and animation
	"transform", "transform-origin", "transition", "animation",
	"animation-name", "animation-duration", "animation-timing-function",
	"animation-delay", "animation-iteration-count", "animation-direction",
	"animation-fill-mode", "cursor",
	// svg presentation
	"fill", "fill-opacity", "fill-rule", "stroke", "stroke-width",
	"stroke-linecap", "stroke-linejoin", "stroke-dasharray",
	"stroke-dashoffset", "stroke-opacity", "stop-color", "stop-opacity",
}

var defaultSchemes = []string{"http", "https", "mailto"}

var defaultAtRules = []RuleKind{RuleStyle, RuleNamespace}
