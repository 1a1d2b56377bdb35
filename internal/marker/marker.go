// Package marker places and resolves the caret marker: a void <wbr/> element
// written into the tree at the caret so that the caret survives serialization,
// patching and re-rendering of the document.
package marker

import (
	"strings"

	"golang.org/x/net/html"

	"github.com/bethropolis/inkwell/internal/dom"
)

const (
	// Tag is the element name of the marker.
	Tag = "wbr"
	// Token is the marker as it appears in serialized markup.
	Token = "<wbr/>"
)

// New returns a detached marker element.
func New() *html.Node { return dom.Element(Tag) }

// IsMarker reports whether n is a marker element.
func IsMarker(n *html.Node) bool { return dom.IsElement(n, Tag) }

// Find returns the first marker below root.
func Find(root *html.Node) *html.Node { return dom.Find(root, IsMarker) }

// InsertAt writes a marker at p, splitting a text node if p falls inside one.
func InsertAt(p dom.Point) *html.Node {
	b := dom.Boundary(p)
	m := New()
	dom.InsertAt(b.Node, b.Offset, m)
	return m
}

// RemoveAll deletes every marker below root and rejoins the text around them.
func RemoveAll(root *html.Node) int {
	markers := dom.FindAll(root, IsMarker)
	for _, m := range markers {
		parent := m.Parent
		dom.Remove(m)
		dom.MergeText(parent)
	}
	return len(markers)
}

// Strip removes marker tokens from serialized markup.
func Strip(markup string) string {
	if !strings.Contains(markup, "<wbr") {
		return markup
	}
	return strings.NewReplacer(Token, "", "<wbr>", "", "<wbr />", "").Replace(markup)
}

// Insert drops a marker at the start of the selection. Nothing happens when the
// document has no selection or already carries a marker. The selection is
// remapped so that it keeps covering the same content.
func Insert(doc *dom.Document) *html.Node {
	r, ok := doc.Selection()
	if !ok || Find(doc.Root()) != nil {
		return nil
	}
	start := r.Start
	m := New()
	if dom.IsText(start.Node) && start.Offset > 0 && start.Offset < len(start.Node.Data) {
		right := dom.SplitText(start.Node, start.Offset)
		dom.InsertAfter(start.Node, m)
		if r.End.Node == start.Node && r.End.Offset >= start.Offset {
			r.End = dom.Point{Node: right, Offset: r.End.Offset - start.Offset}
		}
	} else {
		b := dom.Boundary(start)
		dom.InsertAt(b.Node, b.Offset, m)
		if r.End.Node == b.Node && r.End.Offset > b.Offset {
			r.End.Offset++
		}
	}
	doc.Select(r)
	return m
}

// With runs fn while a marker sits at the caret, then removes the marker and
// restores the selection. fn must not detach the nodes around the marker.
func With(doc *dom.Document, fn func()) {
	m := Insert(doc)
	if m == nil {
		fn()
		return
	}
	fn()
	r, ok := doc.Selection()
	parent, idx := m.Parent, dom.IndexOf(m)
	prev, next := m.PrevSibling, m.NextSibling
	dom.Remove(m)
	shift := func(p dom.Point) dom.Point {
		if p.Node == parent && p.Offset > idx {
			p.Offset--
		}
		return p
	}
	r.Start, r.End = shift(r.Start), shift(r.End)
	if dom.IsText(prev) && dom.IsText(next) {
		base := len(prev.Data)
		prev.Data += next.Data
		dom.Remove(next)
		join := func(p dom.Point) dom.Point {
			if p.Node == next {
				return dom.Point{Node: prev, Offset: base + p.Offset}
			}
			return shift(p)
		}
		r.Start, r.End = join(r.Start), join(r.End)
	}
	if ok {
		doc.Select(r)
	}
}

// Restore moves the caret to the marker and removes it. Without a marker the
// caret goes to the start of the document and Restore reports false.
//
// Resolution follows the marker's neighbours:
//
//	text<wbr/>         end of the preceding text
//	<wbr/>text         start of the following text
//	<wbr/><br/>        right before the following element
//	<em>x</em><wbr/>   right before the marker
//	<br/><wbr/>        right after the preceding element
//	(empty)            start of the parent
func Restore(doc *dom.Document) bool {
	m := Find(doc.Root())
	if m == nil {
		doc.Collapse(doc.Start())
		return false
	}
	parent, idx := m.Parent, dom.IndexOf(m)
	prev, next := m.PrevSibling, m.NextSibling
	var caret dom.Point
	switch {
	case dom.IsText(prev):
		caret = dom.Point{Node: prev, Offset: len(prev.Data)}
	case prev == nil && dom.IsText(next):
		caret = dom.Point{Node: next, Offset: 0}
	case prev == nil && next == nil:
		caret = dom.Point{Node: parent, Offset: 0}
	default:
		caret = dom.Point{Node: parent, Offset: idx}
	}
	dom.Remove(m)
	if dom.IsText(prev) && dom.IsText(next) {
		prev.Data += next.Data
		dom.Remove(next)
	}
	RemoveAll(doc.Root())
	if !doc.Contains(caret.Node) {
		caret = doc.Start()
	}
	doc.Collapse(caret)
	return true
}
