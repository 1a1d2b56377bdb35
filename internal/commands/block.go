package commands

import (
	"strings"

	"golang.org/x/net/html"

	"github.com/bethropolis/inkwell/internal/dom"
	"github.com/bethropolis/inkwell/internal/highlighter"
	"github.com/bethropolis/inkwell/internal/logger"
	"github.com/bethropolis/inkwell/internal/marker"
)

// topBlock returns the top-level block holding mk, wrapping mk in a new
// paragraph when it sits directly in the root.
func topBlock(root, mk *html.Node) *html.Node {
	block := dom.TopLevel(mk, root)
	if block == mk {
		p := dom.Element("p")
		dom.Wrap(mk, p)
		block = p
	}
	return block
}

func quoteOn(doc *dom.Document, r dom.Range) {
	root := doc.Root()
	mk := marker.InsertAt(r.Start)
	block := topBlock(root, mk)
	dom.Wrap(block, dom.Element("blockquote"))
	marker.Restore(doc)
}

func quoteOff(doc *dom.Document, r dom.Range) {
	root := doc.Root()
	mk := marker.InsertAt(r.Start)
	if quote := dom.ClosestTag(mk, root, "blockquote"); quote != nil {
		for _, n := range hoist(quote) {
			dom.InsertBefore(quote, n)
		}
		dom.Remove(quote)
	}
	marker.Restore(doc)
}

// rerender replaces a top-level block with its canonical form.
func (m *Machine) rerender(top *html.Node) {
	markup := m.editor.GetRenderer().Normalize(dom.OuterHTML(top))
	nodes, err := dom.ParseFragment(markup)
	if err != nil {
		logger.Errorf("Commands: re-render of %s failed: %v", top.Data, err)
		return
	}
	dom.ReplaceWith(top, nodes...)
}

// codeBlockOn turns the selection into a fenced code block at the caret. The
// enclosing block is re-rendered so a code block opened inside a paragraph
// splits it.
func (m *Machine) codeBlockOn(doc *dom.Document, r dom.Range) {
	root := doc.Root()
	at := r.Start
	source := ""
	if !r.Collapsed() {
		source = dom.TextIn(root, r)
		at = dom.DeleteContents(root, r)
	}
	block, code := highlighter.NewCodeBlock("")
	if source != "" {
		code.AppendChild(dom.Text(source))
	}
	code.AppendChild(marker.New())

	b := dom.Boundary(at)
	dom.InsertAt(b.Node, b.Offset, block)
	m.rerender(dom.TopLevel(block, root))

	if cr := m.editor.GetCodeRenderer(); cr != nil {
		if cb := dom.Closest(marker.Find(root), root, highlighter.IsCodeBlock); cb != nil {
			cr.RenderCode(cb)
		}
	}
	marker.Restore(doc)
}

// codeBlockOff turns the code block at the caret into a paragraph of its source.
func codeBlockOff(doc *dom.Document, r dom.Range) {
	root := doc.Root()
	block := dom.Closest(r.Start.Node, root, highlighter.IsCodeBlock)
	if block == nil {
		return
	}
	p := dom.Element("p")
	if src := highlighter.SourceElement(block); src != nil {
		if text := dom.TextContent(src); text != "" {
			p.AppendChild(dom.Text(text))
		}
	}
	p.AppendChild(marker.New())
	if p.FirstChild == p.LastChild {
		p.AppendChild(dom.Element("br"))
	}
	dom.ReplaceWith(block, p)
	marker.Restore(doc)
}

func newTable() (table, firstHeader *html.Node) {
	table = dom.Element("table")
	head := dom.Element("thead")
	row := dom.Element("tr")
	for _, title := range []string{"col1", "col2", "col3"} {
		th := dom.Element("th")
		th.AppendChild(dom.Text(title))
		row.AppendChild(th)
		if firstHeader == nil {
			firstHeader = th
		}
	}
	head.AppendChild(row)
	table.AppendChild(head)

	body := dom.Element("tbody")
	for i := 0; i < 2; i++ {
		tr := dom.Element("tr")
		for j := 0; j < 3; j++ {
			tr.AppendChild(dom.Element("td"))
		}
		body.AppendChild(tr)
	}
	table.AppendChild(body)
	return table, firstHeader
}

// placeAfter inserts n after the top-level block holding p. An empty paragraph
// is replaced instead; without a block n goes where p points in the root.
func placeAfter(root *html.Node, p dom.Point, n *html.Node) {
	top := dom.TopLevel(p.Node, root)
	switch {
	case top == nil:
		dom.InsertAt(root, p.Offset, n)
	case dom.IsElement(top, "p") && isEmptyBlock(top):
		dom.ReplaceWith(top, n)
	default:
		dom.InsertAfter(top, n)
	}
}

// isEmptyBlock reports whether n holds nothing but whitespace, placeholders and line breaks.
func isEmptyBlock(n *html.Node) bool {
	if strings.TrimSpace(strings.ReplaceAll(dom.TextContent(n), dom.ZWSP, "")) != "" {
		return false
	}
	return dom.Find(n, func(c *html.Node) bool {
		return c.Type == html.ElementNode && !dom.IsElement(c, "br", marker.Tag)
	}) == nil
}

func insertTable(doc *dom.Document, r dom.Range) {
	table, th := newTable()
	placeAfter(doc.Root(), r.Start, table)
	th.AppendChild(marker.New())
	marker.Restore(doc)
}

func insertLine(doc *dom.Document, r dom.Range) {
	root := doc.Root()
	hr := dom.Element("hr")
	top := dom.TopLevel(r.Start.Node, root)
	if top != nil {
		dom.InsertAfter(top, hr)
	} else {
		dom.InsertAt(root, r.Start.Offset, hr)
	}
	p := dom.Element("p")
	p.AppendChild(marker.New())
	p.AppendChild(dom.Element("br"))
	dom.InsertAfter(hr, p)
	marker.Restore(doc)
}
