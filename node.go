package domsanitizer

import (
	"strings"

	"golang.org/x/net/html"
)

// SetAttr sets (or adds) the attribute key=val on node n. It is intended
// for use inside PostProcessNode hooks.
func SetAttr(n *html.Node, key, val string) {
	for i, a := range n.Attr {
		if a.Key == key {
			n.Attr[i].Val = val
			return
		}
	}
	n.Attr = append(n.Attr, html.Attribute{Key: key, Val: val})
}

// GetAttr returns the value of the named attribute on n, or "" if not
// present.
func GetAttr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

// RemoveAttr removes the named attribute from n if present.
func RemoveAttr(n *html.Node, key string) {
	attrs := n.Attr[:0]
	for _, a := range n.Attr {
		if a.Key != key {
			attrs = append(attrs, a)
		}
	}
	n.Attr = attrs
}

// lookupAttr returns the value of the named attribute and whether it is
// present, distinguishing an empty value from an absent attribute.
func lookupAttr(n *html.Node, key string) (string, bool) {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}

// detach removes n from its parent. Safe to call on an already-detached
// node.
func detach(n *html.Node) {
	if n.Parent != nil {
		n.Parent.RemoveChild(n)
	}
}

// spliceChildren replaces n with its own children, preserving document
// order, then discards n.
func spliceChildren(n *html.Node) {
	parent := n.Parent
	if parent == nil {
		return
	}
	for c := n.FirstChild; c != nil; c = n.FirstChild {
		n.RemoveChild(c)
		parent.InsertBefore(c, n)
	}
	parent.RemoveChild(n)
}

// replaceWithNodes substitutes n with the given nodes at its position.
func replaceWithNodes(n *html.Node, nodes []*html.Node) {
	parent := n.Parent
	if parent == nil {
		return
	}
	for _, r := range nodes {
		detach(r)
		parent.InsertBefore(r, n)
	}
	parent.RemoveChild(n)
}

// normalizeText merges runs of adjacent text-node siblings throughout the
// subtree rooted at n, so post-process hooks see one text node per run.
func normalizeText(n *html.Node) {
	c := n.FirstChild
	for c != nil {
		next := c.NextSibling
		if c.Type == html.TextNode {
			for next != nil && next.Type == html.TextNode {
				c.Data += next.Data
				n.RemoveChild(next)
				next = c.NextSibling
			}
		} else {
			normalizeText(c)
		}
		c = next
	}
}

// elementText returns the concatenated text content of n's direct children.
func elementText(n *html.Node) string {
	var sb strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.TextNode {
			sb.WriteString(c.Data)
		}
	}
	return sb.String()
}

// setElementText replaces all of n's children with a single text node.
func setElementText(n *html.Node, text string) {
	for c := n.FirstChild; c != nil; c = n.FirstChild {
		n.RemoveChild(c)
	}
	n.AppendChild(&html.Node{Type: html.TextNode, Data: text})
}
