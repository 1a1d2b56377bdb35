package dom

import (
	"bytes"
	"fmt"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// ZWSP is the zero-width placeholder used to hold a caret inside an otherwise empty element.
const ZWSP = "\u200b"

var blockTags = map[string]bool{
	"p": true, "div": true, "blockquote": true, "pre": true, "ul": true, "ol": true,
	"li": true, "table": true, "thead": true, "tbody": true, "tr": true, "th": true,
	"td": true, "hr": true, "h1": true, "h2": true, "h3": true, "h4": true, "h5": true,
	"h6": true,
}

// IsBlock reports whether n is a block-level element.
func IsBlock(n *html.Node) bool {
	return n != nil && n.Type == html.ElementNode && blockTags[n.Data]
}

// IsElement reports whether n is an element with one of the given tags (any tag when none given).
func IsElement(n *html.Node, tags ...string) bool {
	if n == nil || n.Type != html.ElementNode {
		return false
	}
	if len(tags) == 0 {
		return true
	}
	for _, tag := range tags {
		if n.Data == tag {
			return true
		}
	}
	return false
}

// IsText reports whether n is a text node.
func IsText(n *html.Node) bool {
	return n != nil && n.Type == html.TextNode
}

// Element creates a detached element.
func Element(tag string, attrs ...html.Attribute) *html.Node {
	return &html.Node{
		Type:     html.ElementNode,
		Data:     tag,
		DataAtom: atom.Lookup([]byte(tag)),
		Attr:     attrs,
	}
}

// Text creates a detached text node.
func Text(s string) *html.Node {
	return &html.Node{Type: html.TextNode, Data: s}
}

// Attr builds an attribute.
func Attr(key, val string) html.Attribute {
	return html.Attribute{Key: key, Val: val}
}

// GetAttr returns the value of attribute key.
func GetAttr(n *html.Node, key string) (string, bool) {
	if n == nil {
		return "", false
	}
	for _, a := range n.Attr {
		if a.Namespace == "" && a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}

// SetAttr sets or replaces attribute key.
func SetAttr(n *html.Node, key, val string) {
	for i, a := range n.Attr {
		if a.Namespace == "" && a.Key == key {
			n.Attr[i].Val = val
			return
		}
	}
	n.Attr = append(n.Attr, Attr(key, val))
}

// RemoveAttr deletes attribute key.
func RemoveAttr(n *html.Node, key string) {
	kept := n.Attr[:0]
	for _, a := range n.Attr {
		if a.Namespace != "" || a.Key != key {
			kept = append(kept, a)
		}
	}
	n.Attr = kept
}

// HasClass reports whether n carries class c.
func HasClass(n *html.Node, c string) bool {
	v, ok := GetAttr(n, "class")
	if !ok {
		return false
	}
	for _, f := range strings.Fields(v) {
		if f == c {
			return true
		}
	}
	return false
}

// AddClass adds class c to n.
func AddClass(n *html.Node, c string) {
	if HasClass(n, c) {
		return
	}
	v, _ := GetAttr(n, "class")
	SetAttr(n, "class", strings.TrimSpace(v+" "+c))
}

// RemoveClass removes class c, dropping the attribute when it becomes empty.
func RemoveClass(n *html.Node, c string) {
	v, ok := GetAttr(n, "class")
	if !ok {
		return
	}
	var kept []string
	for _, f := range strings.Fields(v) {
		if f != c {
			kept = append(kept, f)
		}
	}
	if len(kept) == 0 {
		RemoveAttr(n, "class")
		return
	}
	SetAttr(n, "class", strings.Join(kept, " "))
}

// ShallowClone copies n without children or tree links.
func ShallowClone(n *html.Node) *html.Node {
	c := &html.Node{
		Type:      n.Type,
		Data:      n.Data,
		DataAtom:  n.DataAtom,
		Namespace: n.Namespace,
	}
	if len(n.Attr) > 0 {
		c.Attr = append([]html.Attribute(nil), n.Attr...)
	}
	return c
}

// Children returns a snapshot of n's children.
func Children(n *html.Node) []*html.Node {
	var out []*html.Node
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		out = append(out, c)
	}
	return out
}

// ChildCount returns the number of children of n.
func ChildCount(n *html.Node) int {
	count := 0
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		count++
	}
	return count
}

// ChildAt returns the i-th child of n, or nil.
func ChildAt(n *html.Node, i int) *html.Node {
	if i < 0 {
		return nil
	}
	c := n.FirstChild
	for ; c != nil && i > 0; i-- {
		c = c.NextSibling
	}
	return c
}

// IndexOf returns the position of n among its siblings.
func IndexOf(n *html.Node) int {
	i := 0
	for c := n.PrevSibling; c != nil; c = c.PrevSibling {
		i++
	}
	return i
}

// Remove detaches n from its parent.
func Remove(n *html.Node) {
	if n != nil && n.Parent != nil {
		n.Parent.RemoveChild(n)
	}
}

// InsertBefore inserts n before ref.
func InsertBefore(ref, n *html.Node) {
	Remove(n)
	ref.Parent.InsertBefore(n, ref)
}

// InsertAfter inserts n after ref.
func InsertAfter(ref, n *html.Node) {
	Remove(n)
	ref.Parent.InsertBefore(n, ref.NextSibling)
}

// InsertAt inserts n as the i-th child of parent; out-of-range indices append.
func InsertAt(parent *html.Node, i int, n *html.Node) {
	Remove(n)
	parent.InsertBefore(n, ChildAt(parent, i))
}

// Prepend inserts n as the first child of parent.
func Prepend(parent, n *html.Node) {
	Remove(n)
	parent.InsertBefore(n, parent.FirstChild)
}

// ReplaceWith puts nodes where old was and detaches old.
func ReplaceWith(old *html.Node, nodes ...*html.Node) {
	for _, n := range nodes {
		InsertBefore(old, n)
	}
	Remove(old)
}

// MoveChildren appends every child of from to to.
func MoveChildren(from, to *html.Node) {
	for c := from.FirstChild; c != nil; {
		next := c.NextSibling
		from.RemoveChild(c)
		to.AppendChild(c)
		c = next
	}
}

// Unwrap replaces n by its children and returns them.
func Unwrap(n *html.Node) []*html.Node {
	children := Children(n)
	ReplaceWith(n, children...)
	return children
}

// Wrap puts wrapper where n is and moves n into it.
func Wrap(n, wrapper *html.Node) {
	InsertBefore(n, wrapper)
	Remove(n)
	wrapper.AppendChild(n)
}

// Closest returns the nearest node from n upward (n included) satisfying pred,
// stopping before stop.
func Closest(n, stop *html.Node, pred func(*html.Node) bool) *html.Node {
	for ; n != nil && n != stop; n = n.Parent {
		if pred(n) {
			return n
		}
	}
	return nil
}

// ClosestTag returns the nearest element with one of tags from n upward, stopping before stop.
func ClosestTag(n, stop *html.Node, tags ...string) *html.Node {
	return Closest(n, stop, func(c *html.Node) bool { return IsElement(c, tags...) })
}

// TopLevel returns the ancestor of n (n included) whose parent is root.
func TopLevel(n, root *html.Node) *html.Node {
	for ; n != nil; n = n.Parent {
		if n.Parent == root {
			return n
		}
	}
	return nil
}

// IsAncestor reports whether a is n or an ancestor of n.
func IsAncestor(a, n *html.Node) bool {
	for ; n != nil; n = n.Parent {
		if n == a {
			return true
		}
	}
	return false
}

// Walk visits n and its descendants in document order. Returning false from fn skips
// the visited node's subtree.
func Walk(n *html.Node, fn func(*html.Node) bool) {
	if !fn(n) {
		return
	}
	for c := n.FirstChild; c != nil; {
		next := c.NextSibling
		Walk(c, fn)
		c = next
	}
}

// Find returns the first descendant of root (root excluded) matching pred.
func Find(root *html.Node, pred func(*html.Node) bool) *html.Node {
	var found *html.Node
	Walk(root, func(n *html.Node) bool {
		if found != nil {
			return false
		}
		if n != root && pred(n) {
			found = n
			return false
		}
		return true
	})
	return found
}

// FindAll returns every descendant of root matching pred, in document order.
func FindAll(root *html.Node, pred func(*html.Node) bool) []*html.Node {
	var out []*html.Node
	Walk(root, func(n *html.Node) bool {
		if n != root && pred(n) {
			out = append(out, n)
		}
		return true
	})
	return out
}

// ByTag is a Find predicate matching elements by tag.
func ByTag(tags ...string) func(*html.Node) bool {
	return func(n *html.Node) bool { return IsElement(n, tags...) }
}

// TextContent concatenates the text of n and its descendants.
func TextContent(n *html.Node) string {
	if n.Type == html.TextNode {
		return n.Data
	}
	var sb strings.Builder
	Walk(n, func(c *html.Node) bool {
		if c.Type == html.TextNode {
			sb.WriteString(c.Data)
		}
		return true
	})
	return sb.String()
}

// HasContent reports whether n holds anything besides whitespace-free placeholders:
// text other than ZWSP, or a void/embedded element such as br, img or input.
func HasContent(n *html.Node) bool {
	if n.Type == html.TextNode {
		return strings.ReplaceAll(n.Data, ZWSP, "") != ""
	}
	found := false
	Walk(n, func(c *html.Node) bool {
		if found {
			return false
		}
		switch {
		case c.Type == html.TextNode && strings.ReplaceAll(c.Data, ZWSP, "") != "":
			found = true
		case IsElement(c, "br", "img", "input", "hr", "wbr", "table", "code", "pre") && c != n:
			found = true
		}
		return true
	})
	return found
}

// MergeText joins adjacent text children of n and drops empty ones, recursively.
func MergeText(n *html.Node) {
	for c := n.FirstChild; c != nil; {
		next := c.NextSibling
		switch {
		case c.Type == html.TextNode && c.Data == "":
			n.RemoveChild(c)
		case c.Type == html.TextNode:
			for next != nil && next.Type == html.TextNode {
				c.Data += next.Data
				after := next.NextSibling
				n.RemoveChild(next)
				next = after
			}
		case c.Type == html.ElementNode:
			MergeText(c)
		}
		c = next
	}
}

var bodyContext = &html.Node{Type: html.ElementNode, Data: "body", DataAtom: atom.Body}

// ParseFragment parses markup as body content.
func ParseFragment(markup string) ([]*html.Node, error) {
	nodes, err := html.ParseFragment(strings.NewReader(markup), bodyContext)
	if err != nil {
		return nil, fmt.Errorf("parse fragment: %w", err)
	}
	return nodes, nil
}

// SetInnerHTML replaces the children of n with the parsed markup.
func SetInnerHTML(n *html.Node, markup string) error {
	nodes, err := ParseFragment(markup)
	if err != nil {
		return err
	}
	for c := n.FirstChild; c != nil; c = n.FirstChild {
		n.RemoveChild(c)
	}
	for _, c := range nodes {
		n.AppendChild(c)
	}
	return nil
}

// InnerHTML serializes the children of n.
func InnerHTML(n *html.Node) string {
	var buf bytes.Buffer
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		_ = html.Render(&buf, c)
	}
	return buf.String()
}

// OuterHTML serializes n itself.
func OuterHTML(n *html.Node) string {
	var buf bytes.Buffer
	_ = html.Render(&buf, n)
	return buf.String()
}
