package highlighter

import (
	"context"
	"strings"

	"golang.org/x/net/html"

	"github.com/bethropolis/inkwell/internal/dom"
	"github.com/bethropolis/inkwell/internal/highlighter/lang"
	"github.com/bethropolis/inkwell/internal/highlighter/utils"
	"github.com/bethropolis/inkwell/internal/logger"
	"github.com/bethropolis/inkwell/internal/render"
)

// Code block structure:
//
//	<div class="code-block" data-type="code-block" data-marker="```">
//	  <pre><code class="language-go">source</code></pre>
//	  <pre class="code-preview"><code>highlighted source</code></pre>
//	</div>
const (
	BlockClass  = "code-block"
	BlockType   = "code-block"
	FenceMarker = "```"
)

// IsCodeBlock reports whether n is a code block container.
func IsCodeBlock(n *html.Node) bool {
	return dom.IsElement(n, "div") && dom.HasClass(n, BlockClass)
}

// NewCodeBlock builds an empty code block in the given language. The returned
// code element is where the source goes.
func NewCodeBlock(language string) (block, code *html.Node) {
	block = dom.Element("div",
		dom.Attr("class", BlockClass),
		dom.Attr("data-type", BlockType),
		dom.Attr("data-marker", FenceMarker))
	pre := dom.Element("pre")
	code = dom.Element("code")
	if language != "" {
		dom.SetAttr(code, "class", "language-"+language)
	}
	pre.AppendChild(code)
	block.AppendChild(pre)
	return block, code
}

// SourceElement returns the code element holding the block's source.
func SourceElement(block *html.Node) *html.Node {
	for c := block.FirstChild; c != nil; c = c.NextSibling {
		if dom.IsElement(c, "pre") && !dom.HasClass(c, render.PreviewClass) {
			return dom.Find(c, dom.ByTag("code"))
		}
	}
	return nil
}

// Language returns the language named by the code element's class.
func Language(code *html.Node) string {
	v, _ := dom.GetAttr(code, "class")
	for _, f := range strings.Fields(v) {
		if strings.HasPrefix(f, "language-") {
			return strings.TrimPrefix(f, "language-")
		}
	}
	return ""
}

// Renderer re-renders the preview of one code block.
type Renderer interface {
	RenderCode(block *html.Node)
}

// CodeRenderer regenerates the highlighted preview of code blocks.
type CodeRenderer struct {
	hl *Highlighter
}

// NewCodeRenderer returns a renderer using the built-in languages.
func NewCodeRenderer() *CodeRenderer {
	RegisterLanguages()
	return &CodeRenderer{hl: NewHighlighter()}
}

// RenderAll re-renders every code block below root and returns how many there were.
func (r *CodeRenderer) RenderAll(root *html.Node) int {
	blocks := dom.FindAll(root, IsCodeBlock)
	for _, b := range blocks {
		r.RenderCode(b)
	}
	return len(blocks)
}

// RenderCode replaces the preview of one code block. Unknown languages get a
// plain preview.
func (r *CodeRenderer) RenderCode(block *html.Node) {
	code := SourceElement(block)
	if code == nil {
		logger.DebugTagf("highlighter", "RenderCode: block without source element")
		return
	}
	for _, c := range dom.Children(block) {
		if dom.IsElement(c, "pre") && dom.HasClass(c, render.PreviewClass) {
			dom.Remove(c)
		}
	}

	source := dom.TextContent(code)
	pre := dom.Element("pre", dom.Attr("class", render.PreviewClass))
	out := dom.Element("code")
	pre.AppendChild(out)
	block.AppendChild(pre)

	var spans []Span
	if l := lang.Lookup(Language(code)); l != nil {
		var err error
		spans, err = r.hl.Highlight(context.Background(), []byte(source), l)
		if err != nil {
			logger.WarnTagf("highlighter", "RenderCode: %v", err)
			spans = nil
		}
	}
	writeSpans(out, source, spans)
}

func writeSpans(out *html.Node, source string, spans []Span) {
	pos := 0
	for _, s := range spans {
		if s.Start > pos {
			out.AppendChild(dom.Text(source[pos:s.Start]))
		}
		span := dom.Element("span", dom.Attr("class", utils.StyleClass(s.Style)))
		span.AppendChild(dom.Text(source[s.Start:s.End]))
		out.AppendChild(span)
		pos = s.End
	}
	if pos < len(source) {
		out.AppendChild(dom.Text(source[pos:]))
	}
}
