// Package render converts between the live tree and the canonical markup kept in
// history snapshots.
package render

import (
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/bethropolis/inkwell/internal/dom"
	"github.com/bethropolis/inkwell/internal/logger"
)

// Bridge canonicalizes markup. Normalize must be idempotent and must keep the
// caret marker where it is.
type Bridge interface {
	Normalize(markup string) string
}

// PreviewClass marks generated code previews. They are derived from the code
// block source and never stored.
const PreviewClass = "code-preview"

var aliases = map[string]string{
	"b":      "strong",
	"i":      "em",
	"strike": "s",
	"del":    "s",
}

// Normalizer is the default Bridge.
type Normalizer struct{}

// NewNormalizer returns a Normalizer.
func NewNormalizer() *Normalizer { return &Normalizer{} }

// Normalize parses markup, canonicalizes the tree and serializes it again.
func (n *Normalizer) Normalize(markup string) string {
	root := dom.Element("div")
	if err := dom.SetInnerHTML(root, markup); err != nil {
		logger.WarnTagf("render", "Normalize: keeping markup as is: %v", err)
		return markup
	}
	n.NormalizeTree(root)
	return dom.InnerHTML(root)
}

// NormalizeTree canonicalizes the children of root in place.
func (n *Normalizer) NormalizeTree(root *html.Node) {
	dom.Walk(root, func(c *html.Node) bool {
		if c.Type != html.ElementNode || c == root {
			return true
		}
		if dom.IsElement(c, "pre") && dom.HasClass(c, PreviewClass) {
			dom.Remove(c)
			return false
		}
		if tag, ok := aliases[c.Data]; ok {
			c.Data = tag
			c.DataAtom = atom.Lookup([]byte(tag))
		}
		return true
	})
	wrapInline(root)
	for _, c := range dom.Children(root) {
		if dom.IsElement(c, "p") && c.FirstChild == nil && len(c.Attr) == 0 {
			dom.Remove(c)
		}
	}
	dom.MergeText(root)
}

// wrapInline collects runs of top-level inline content into paragraphs.
// Whitespace-only text between blocks is dropped.
func wrapInline(root *html.Node) {
	var run *html.Node
	for _, c := range dom.Children(root) {
		switch {
		case dom.IsBlock(c) || c.Type == html.CommentNode:
			run = nil
		case c.Type == html.TextNode && strings.TrimSpace(c.Data) == "" && run == nil:
			dom.Remove(c)
		default:
			if run == nil {
				run = dom.Element("p")
				dom.InsertBefore(c, run)
			}
			dom.Remove(c)
			run.AppendChild(c)
		}
	}
}
