package commands

import (
	"golang.org/x/net/html"

	"github.com/bethropolis/inkwell/internal/dom"
	"github.com/bethropolis/inkwell/internal/event"
	"github.com/bethropolis/inkwell/internal/marker"
)

// linkOn inserts an anchor and asks the host for its URL. At a collapsed caret
// the anchor is an empty placeholder and the caret goes straight into it; the
// surface is left alone until the URL arrives, so no follow-ups run.
func (m *Machine) linkOn(doc *dom.Document, r dom.Range) effects {
	root := doc.Root()
	events := m.editor.GetEventManager()
	if r.Collapsed() {
		a := dom.Element("a")
		z := dom.Text(dom.ZWSP)
		a.AppendChild(z)
		b := dom.Boundary(r.Start)
		dom.InsertAt(b.Node, b.Offset, a)
		doc.Collapse(dom.Point{Node: z, Offset: len(z.Data)})
		events.Dispatch(event.TypeLinkPopover, event.LinkPopoverData{Anchor: a})
		return quiet
	}

	text := dom.TextIn(root, r)
	at := dom.DeleteContents(root, r)
	a := dom.Element("a", dom.Attr("href", ""))
	t := dom.Text(text)
	a.AppendChild(t)
	dom.InsertAt(at.Node, at.Offset, a)
	doc.Select(dom.Range{Start: dom.Point{Node: t, Offset: 0}, End: dom.Point{Node: t, Offset: len(text)}})
	events.Dispatch(event.TypeLinkPopover, event.LinkPopoverData{Anchor: a})
	return full
}

// unwrapAround removes the nearest element matching has around the caret,
// keeping its content and the caret.
func unwrapAround(doc *dom.Document, r dom.Range, has matcher) {
	root := doc.Root()
	mk := marker.InsertAt(r.Start)
	if n := dom.Closest(mk, root, has); n != nil {
		dom.Unwrap(n)
	}
	marker.Restore(doc)
}

func isAnchor(n *html.Node) bool { return dom.IsElement(n, "a") }

// linkOff unlinks the anchor at the caret, or every anchor touching the selection.
func linkOff(doc *dom.Document, r dom.Range) {
	if r.Collapsed() {
		unwrapAround(doc, r, isAnchor)
		return
	}
	root := doc.Root()
	sr := dom.SplitRange(r)
	leaves := textLeaves(root, sr)
	for _, leaf := range leaves {
		if a := dom.Closest(leaf, root, isAnchor); a != nil {
			dom.Unwrap(a)
		}
	}
	selectLeaves(doc, leaves)
}

// insertBackticks types an empty inline code span and puts the caret between the ticks.
func insertBackticks(doc *dom.Document, r dom.Range) {
	t := dom.Text("``")
	b := dom.Boundary(r.Start)
	dom.InsertAt(b.Node, b.Offset, t)
	doc.Collapse(dom.Point{Node: t, Offset: 1})
}

func inlineCodeOff(doc *dom.Document, r dom.Range) {
	unwrapAround(doc, r, isInlineCode)
}
