package commands

import (
	"golang.org/x/net/html"

	"github.com/bethropolis/inkwell/internal/dom"
	"github.com/bethropolis/inkwell/internal/marker"
)

var inlineTags = map[Name]string{
	Bold:   "strong",
	Italic: "em",
	Strike: "s",
}

// canonicalWrapper maps wrapper tags and their legacy aliases onto the tag
// the surface writes.
var canonicalWrapper = map[string]string{
	"strong": "strong",
	"b":      "strong",
	"em":     "em",
	"i":      "em",
	"s":      "s",
	"strike": "s",
	"del":    "s",
}

func wrapperTag(n *html.Node) string {
	if n == nil || n.Type != html.ElementNode {
		return ""
	}
	return canonicalWrapper[n.Data]
}

type matcher func(*html.Node) bool

func wrapperMatcher(tag string) matcher {
	return func(n *html.Node) bool { return wrapperTag(n) == tag }
}

func isInlineCode(n *html.Node) bool {
	return dom.IsElement(n, "code") && dom.ClosestTag(n, nil, "pre") == nil
}

// insertInline opens an empty wrapper at the caret. The wrapper holds a ZWSP so
// the caret has somewhere to sit until text is typed.
func insertInline(doc *dom.Document, r dom.Range, tag string) {
	root := doc.Root()
	node := dom.Element(tag)
	z := dom.Text(dom.ZWSP)
	node.AppendChild(z)

	if r.Start.Node == root && r.Start.Offset == 0 {
		first := dom.Find(root, dom.ByTag("p", "li", "h1", "h2", "h3", "h4", "h5", "h6", "td", "th"))
		if first == nil {
			first = dom.Element("p")
			dom.Prepend(root, first)
		}
		dom.Prepend(first, node)
	} else {
		b := dom.Boundary(r.Start)
		dom.InsertAt(b.Node, b.Offset, node)
	}

	// A placeholder left by an outer wrapper is no longer needed.
	if prev := node.PrevSibling; prev != nil && dom.TextContent(prev) == dom.ZWSP {
		if dom.IsText(prev) {
			prev.Data = ""
		} else {
			for c := prev.FirstChild; c != nil; c = prev.FirstChild {
				dom.Remove(c)
			}
		}
	}
	doc.Collapse(dom.Point{Node: z, Offset: len(z.Data)})
}

// cancelInline closes tag at a collapsed caret. The inline wrappers enclosing
// the caret are walked outward until tag is found; the chain is split at the
// caret and a gap re-nesting the inner wrappers (without tag) is opened between
// the halves for the caret. Walking stops at the first non-wrapper element.
func cancelInline(doc *dom.Document, tag string) {
	root := doc.Root()
	p, ok := doc.Caret()
	if !ok {
		return
	}
	start := p.Node
	if dom.IsText(start) {
		start = start.Parent
	}
	var chain []*html.Node
	target := -1
	for n := start; n != nil && n != root; n = n.Parent {
		t := wrapperTag(n)
		if t == "" {
			break
		}
		chain = append(chain, n)
		if t == tag {
			target = len(chain) - 1
			break
		}
	}
	if target < 0 {
		return
	}
	outer := chain[target]
	b := dom.Boundary(p)
	right := dom.SplitAt(outer, b.Node, b.Offset)

	gap := []*html.Node{dom.Text(dom.ZWSP), marker.New()}
	for i := 0; i < target; i++ {
		w := dom.Element(wrapperTag(chain[i]))
		for _, c := range gap {
			w.AppendChild(c)
		}
		gap = []*html.Node{w}
	}
	for _, c := range gap {
		dom.InsertBefore(right, c)
	}
	for _, half := range []*html.Node{outer, right} {
		if !dom.HasContent(half) {
			dom.Remove(half)
		}
	}
	marker.Restore(doc)
}

func textLeaves(root *html.Node, r dom.Range) []*html.Node {
	var out []*html.Node
	for _, n := range dom.LeavesIn(root, r) {
		if dom.IsText(n) && n.Data != "" {
			out = append(out, n)
		}
	}
	return out
}

func selectLeaves(doc *dom.Document, leaves []*html.Node) {
	if len(leaves) == 0 {
		return
	}
	last := leaves[len(leaves)-1]
	doc.Select(dom.Range{
		Start: dom.Point{Node: leaves[0], Offset: 0},
		End:   dom.Point{Node: last, Offset: len(last.Data)},
	})
}

func containsBlock(nodes []*html.Node) bool {
	for _, n := range nodes {
		if dom.IsBlock(n) || dom.Find(n, dom.IsBlock) != nil {
			return true
		}
	}
	return false
}

// wrapRange applies tag to a selection. A selection whose ends share a parent
// gets one wrapper; otherwise every selected text node not already matching is
// wrapped on its own.
func wrapRange(doc *dom.Document, r dom.Range, tag string, has matcher) {
	root := doc.Root()
	sr := dom.SplitRange(r)
	if sr.Start.Node == sr.End.Node {
		parent := sr.Start.Node
		var nodes []*html.Node
		for c := dom.ChildAt(parent, sr.Start.Offset); c != nil && len(nodes) < sr.End.Offset-sr.Start.Offset; c = c.NextSibling {
			nodes = append(nodes, c)
		}
		if len(nodes) > 0 && !containsBlock(nodes) {
			w := dom.Element(tag)
			dom.InsertBefore(nodes[0], w)
			for _, n := range nodes {
				dom.Remove(n)
				w.AppendChild(n)
			}
			selectLeaves(doc, dom.FindAll(w, dom.IsText))
			return
		}
	}
	leaves := textLeaves(root, sr)
	for _, leaf := range leaves {
		if dom.Closest(leaf, root, has) != nil {
			continue
		}
		dom.Wrap(leaf, dom.Element(tag))
	}
	selectLeaves(doc, leaves)
}

// isolate splits wrapper so that leaf sits alone in its own copy of it, and
// returns that copy. Halves left without content are dropped.
func isolate(wrapper, leaf *html.Node) *html.Node {
	own := dom.SplitAt(wrapper, leaf.Parent, dom.IndexOf(leaf))
	rest := dom.SplitAt(own, leaf.Parent, dom.IndexOf(leaf)+1)
	for _, half := range []*html.Node{wrapper, rest} {
		if !dom.HasContent(half) {
			dom.Remove(half)
		}
	}
	return own
}

// unwrapRange removes every matching wrapper from the selected text nodes,
// leaving the unselected parts of each wrapper formatted.
func unwrapRange(doc *dom.Document, r dom.Range, has matcher) {
	root := doc.Root()
	leaves := textLeaves(root, dom.SplitRange(r))
	for _, leaf := range leaves {
		for {
			w := dom.Closest(leaf, root, has)
			if w == nil {
				break
			}
			dom.Unwrap(isolate(w, leaf))
		}
	}
	selectLeaves(doc, leaves)
}
