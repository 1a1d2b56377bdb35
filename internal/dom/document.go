package dom

import (
	"errors"

	"golang.org/x/net/html"
)

// ErrNoSelection is returned by edit operations when the document has no caret.
var ErrNoSelection = errors.New("dom: no selection")

// Document is the live editing surface: a root container plus the current selection.
//
// The selection is kept as an anchor and a focus so that extending it keeps the
// side the user started from. Selection returns it in document order.
type Document struct {
	root   *html.Node
	anchor Point
	focus  Point
	hasSel bool
}

// NewDocument creates a document whose root holds the parsed markup.
func NewDocument(markup string) (*Document, error) {
	d := &Document{root: Element("div", Attr("class", "editor-root"))}
	if err := d.SetMarkup(markup); err != nil {
		return nil, err
	}
	return d, nil
}

// Root returns the root container. Its children are the top-level blocks.
func (d *Document) Root() *html.Node { return d.root }

// Markup serializes the content of the root.
func (d *Document) Markup() string { return InnerHTML(d.root) }

// SetMarkup replaces the whole content and drops the selection.
func (d *Document) SetMarkup(markup string) error {
	if err := SetInnerHTML(d.root, markup); err != nil {
		return err
	}
	d.ClearSelection()
	return nil
}

// Contains reports whether n is attached below the root.
func (d *Document) Contains(n *html.Node) bool {
	return n != nil && IsAncestor(d.root, n)
}

// Selection returns the current selection in document order.
func (d *Document) Selection() (Range, bool) {
	if !d.hasSel || !d.Contains(d.anchor.Node) || !d.Contains(d.focus.Node) {
		return Range{}, false
	}
	if Compare(d.anchor, d.focus) <= 0 {
		return Range{Start: d.anchor, End: d.focus}, true
	}
	return Range{Start: d.focus, End: d.anchor}, true
}

// Focus returns the moving end of the selection.
func (d *Document) Focus() (Point, bool) {
	if _, ok := d.Selection(); !ok {
		return Point{}, false
	}
	return d.focus, true
}

// Select sets the selection.
func (d *Document) Select(r Range) {
	d.anchor, d.focus, d.hasSel = r.Start, r.End, true
}

// MoveFocus moves the focus to p. Without extend the selection collapses there.
func (d *Document) MoveFocus(p Point, extend bool) {
	if !extend || !d.hasSel {
		d.Collapse(p)
		return
	}
	d.focus = p
}

// Collapse places a caret at p.
func (d *Document) Collapse(p Point) {
	d.Select(Caret(p))
}

// ClearSelection removes the selection.
func (d *Document) ClearSelection() {
	d.anchor, d.focus, d.hasSel = Point{}, Point{}, false
}

// Start returns the first caret position of the document.
func (d *Document) Start() Point {
	if t := NextTextLeaf(d.root, d.root); t != nil {
		return Point{Node: t, Offset: 0}
	}
	n := d.root
	for n.FirstChild != nil && n.FirstChild.Type == html.ElementNode && !IsVoid(n.FirstChild) {
		n = n.FirstChild
	}
	return Point{Node: n, Offset: 0}
}
