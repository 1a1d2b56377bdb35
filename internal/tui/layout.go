package tui

import (
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/uniseg"
	"golang.org/x/net/html"

	"github.com/bethropolis/inkwell/internal/dom"
	"github.com/bethropolis/inkwell/internal/highlighter"
	"github.com/bethropolis/inkwell/internal/marker"
	"github.com/bethropolis/inkwell/internal/render"
	"github.com/bethropolis/inkwell/internal/theme"
)

// Block prefixes.
const (
	bulletPrefix = "• "
	quotePrefix  = "│ "
	codePrefix   = "▎ "
	cellSep      = " │ "
	ruleGlyph    = "─"
	tabWidth     = 4
)

// Pos is a layout position: line index and visual column.
type Pos struct {
	Line, Col int
}

// Cell is one grapheme cluster placed on a layout line.
type Cell struct {
	Text  string
	Width int
	Style tcell.Style
	// Point is the document position before the grapheme. Node is nil for
	// decorations such as list bullets.
	Point dom.Point
}

// Line is one row of a layout.
type Line []Cell

// Width returns the visual width of the line.
func (l Line) Width() int {
	w := 0
	for _, c := range l {
		w += c.Width
	}
	return w
}

// Layout is a document flowed into lines no wider than a fixed width.
type Layout struct {
	Lines []Line

	starts map[*html.Node]Pos
	ends   map[*html.Node]Pos
	marks  map[*html.Node][]textMark
}

type textMark struct {
	off int
	pos Pos
}

// PosOf returns the layout position of a document point.
func (l *Layout) PosOf(p dom.Point) (Pos, bool) {
	if p.Node == nil {
		return Pos{}, false
	}
	if p.Node.Type == html.TextNode {
		for _, m := range l.marks[p.Node] {
			if m.off >= p.Offset {
				return m.pos, true
			}
		}
		pos, ok := l.ends[p.Node]
		return pos, ok
	}
	if c := dom.ChildAt(p.Node, p.Offset); c != nil {
		if pos, ok := l.starts[c]; ok {
			return pos, true
		}
	}
	pos, ok := l.ends[p.Node]
	return pos, ok
}

// Text returns the plain text of line i, decorations included.
func (l *Layout) Text(i int) string {
	if i < 0 || i >= len(l.Lines) {
		return ""
	}
	var sb strings.Builder
	for _, c := range l.Lines[i] {
		if c.Text == "\t" {
			sb.WriteString(strings.Repeat(" ", c.Width))
			continue
		}
		sb.WriteString(c.Text)
	}
	return sb.String()
}

// Build flows doc into lines of at most width columns. A code block holding
// the caret shows its source; other code blocks show their rendered preview.
func Build(doc *dom.Document, width int, th *theme.Theme) *Layout {
	if width < 1 {
		width = 1
	}
	b := &builder{
		th:    th,
		width: width,
		out: &Layout{
			starts: make(map[*html.Node]Pos),
			ends:   make(map[*html.Node]Pos),
			marks:  make(map[*html.Node][]textMark),
		},
	}
	if caret, ok := doc.Caret(); ok {
		b.editing = dom.Closest(caret.Node, doc.Root(), highlighter.IsCodeBlock)
	}
	b.children(doc.Root(), "", "", th.GetStyle("Default"))
	if len(b.out.Lines) == 0 {
		b.out.Lines = append(b.out.Lines, nil)
	}
	return b.out
}

type builder struct {
	th      *theme.Theme
	width   int
	editing *html.Node // code block shown as source
	out     *Layout

	line      Line
	col       int
	lineStart int // column after the line prefix
	open      bool
	indent    string
	pre       bool
	pending   bool // a line break waits for the next cell
}

func (b *builder) pos() Pos {
	return Pos{Line: len(b.out.Lines), Col: b.col}
}

func (b *builder) begin(lead, indent string) {
	b.end()
	b.open = true
	b.indent = indent
	b.prefix(lead)
}

func (b *builder) prefix(s string) {
	style := b.th.GetStyle("Prefix")
	state := -1
	for s != "" {
		var cluster string
		var w int
		cluster, s, w, state = uniseg.FirstGraphemeClusterInString(s, state)
		b.line = append(b.line, Cell{Text: cluster, Width: w, Style: style})
		b.col += w
	}
	b.lineStart = b.col
}

func (b *builder) end() {
	if !b.open {
		return
	}
	b.out.Lines = append(b.out.Lines, b.line)
	b.line, b.col, b.lineStart = nil, 0, 0
	b.open, b.pending = false, false
}

func (b *builder) breakLine() {
	indent := b.indent
	b.end()
	b.begin(indent, indent)
}

// place appends c, wrapping first when it does not fit.
func (b *builder) place(c Cell) Pos {
	if b.pending {
		b.pending = false
		b.breakLine()
	}
	if b.col+c.Width > b.width && b.col > b.lineStart {
		b.breakLine()
	}
	p := b.pos()
	b.line = append(b.line, c)
	b.col += c.Width
	return p
}

// lineBreak starts a new line before the next cell. Trailing breaks are dropped.
func (b *builder) lineBreak() {
	if b.pending {
		b.breakLine()
	}
	b.pending = true
}

func isBlockNode(n *html.Node) bool {
	return dom.IsBlock(n) || highlighter.IsCodeBlock(n)
}

func blank(nodes []*html.Node) bool {
	for _, n := range nodes {
		if n.Type != html.TextNode || strings.TrimSpace(n.Data) != "" {
			return false
		}
	}
	return true
}

// children lays out the children of n. Runs of inline children form
// paragraphs; lead prefixes the first line produced, indent the rest.
func (b *builder) children(n *html.Node, lead, indent string, style tcell.Style) {
	var run []*html.Node
	flush := func() {
		if len(run) == 0 || blank(run) {
			run = nil
			return
		}
		b.begin(lead, indent)
		for _, c := range run {
			b.inline(c, style)
		}
		b.end()
		run = nil
		lead = indent
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if !isBlockNode(c) {
			run = append(run, c)
			continue
		}
		flush()
		before := len(b.out.Lines)
		b.block(c, lead, indent, style)
		if len(b.out.Lines) > before {
			lead = indent
		}
	}
	flush()
}

func (b *builder) block(n *html.Node, lead, indent string, style tcell.Style) {
	before := len(b.out.Lines)
	b.out.starts[n] = Pos{Line: before}

	switch {
	case highlighter.IsCodeBlock(n):
		b.codeBlock(n, lead, indent)
	case dom.IsElement(n, "ul", "ol"):
		b.list(n, lead, indent, style)
	case dom.IsElement(n, "blockquote"):
		b.children(n, lead+quotePrefix, indent+quotePrefix, b.th.Overlay(style, "quote"))
	case dom.IsElement(n, "hr"):
		b.rule(lead)
	case dom.IsElement(n, "table"):
		b.table(n, lead, indent, style)
	case dom.IsElement(n, "pre"):
		b.preformatted(n, lead, indent, style)
	case dom.IsElement(n, "h1", "h2", "h3", "h4", "h5", "h6"):
		b.children(n, lead, indent, b.th.Overlay(style, "heading"))
	default:
		b.children(n, lead, indent, style)
	}

	if len(b.out.Lines) == before {
		b.begin(lead, indent)
		b.end()
	}
	last := len(b.out.Lines) - 1
	b.out.ends[n] = Pos{Line: last, Col: b.out.Lines[last].Width()}
}

func isTaskItem(li *html.Node) bool {
	for c := li.FirstChild; c != nil; c = c.NextSibling {
		if dom.IsElement(c, "input") {
			return true
		}
		if c.Type != html.TextNode || strings.TrimSpace(c.Data) != "" {
			return false
		}
	}
	return false
}

func (b *builder) list(n *html.Node, lead, indent string, style tcell.Style) {
	num := 1
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if !dom.IsElement(c, "li") {
			if isBlockNode(c) {
				b.block(c, lead, indent, style)
				lead = indent
			}
			continue
		}
		bullet := bulletPrefix
		switch {
		case isTaskItem(c):
			bullet = ""
		case dom.IsElement(n, "ol"):
			bullet = fmt.Sprintf("%d. ", num)
			num++
		}
		sub := indent + strings.Repeat(" ", uniseg.StringWidth(bullet))
		if bullet == "" {
			sub = indent + "  "
		}
		b.block(c, lead+bullet, sub, style)
		lead = indent
	}
}

func (b *builder) rule(lead string) {
	b.begin(lead, lead)
	n := b.width - b.col
	if n < 1 {
		n = 1
	}
	style := b.th.GetStyle("rule")
	for i := 0; i < n; i++ {
		b.line = append(b.line, Cell{Text: ruleGlyph, Width: 1, Style: style})
	}
	b.col += n
	b.end()
}

func (b *builder) table(n *html.Node, lead, indent string, style tcell.Style) {
	sepStyle := b.th.GetStyle("Prefix")
	for _, row := range dom.FindAll(n, dom.ByTag("tr")) {
		b.out.starts[row] = Pos{Line: len(b.out.Lines)}
		b.begin(lead, indent)
		i := 0
		for cell := row.FirstChild; cell != nil; cell = cell.NextSibling {
			if !dom.IsElement(cell, "td", "th") {
				continue
			}
			if i > 0 {
				for _, r := range cellSep {
					b.place(Cell{Text: string(r), Width: 1, Style: sepStyle})
				}
			}
			i++
			cellStyle := style
			if dom.IsElement(cell, "th") {
				cellStyle = b.th.Overlay(style, "th")
			}
			b.out.starts[cell] = b.pos()
			for c := cell.FirstChild; c != nil; c = c.NextSibling {
				b.inline(c, cellStyle)
			}
			b.out.ends[cell] = b.pos()
		}
		b.out.ends[row] = b.pos()
		b.end()
		lead = indent
	}
}

func (b *builder) codeBlock(n *html.Node, lead, indent string) {
	body := highlighter.SourceElement(n)
	if n != b.editing {
		for _, c := range dom.Children(n) {
			if dom.IsElement(c, "pre") && dom.HasClass(c, render.PreviewClass) {
				body = c
			}
		}
	}
	style := b.th.Overlay(b.th.GetStyle("Default"), "code")
	if body == nil {
		b.begin(lead+codePrefix, indent+codePrefix)
		b.end()
		return
	}
	b.preformatted(body, lead+codePrefix, indent+codePrefix, style)
}

func (b *builder) preformatted(n *html.Node, lead, indent string, style tcell.Style) {
	b.begin(lead, indent)
	b.pre = true
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		b.inline(c, style)
	}
	b.pre = false
	b.end()
}

func (b *builder) elementStyle(n *html.Node, style tcell.Style) tcell.Style {
	switch n.Data {
	case "strong", "b":
		return b.th.Overlay(style, "strong")
	case "em", "i":
		return b.th.Overlay(style, "em")
	case "s", "del", "strike":
		return b.th.Overlay(style, "strike")
	case "code":
		if b.pre {
			return style
		}
		return b.th.Overlay(style, "code")
	case "a":
		return b.th.Overlay(style, "link")
	case "span":
		class, _ := dom.GetAttr(n, "class")
		if name, ok := theme.ClassStyle(class); ok {
			return b.th.Overlay(style, name)
		}
	}
	return style
}

func (b *builder) inline(n *html.Node, style tcell.Style) {
	switch n.Type {
	case html.TextNode:
		b.text(n, style)
		return
	case html.ElementNode:
	default:
		return
	}

	b.out.starts[n] = b.pos()
	switch {
	case marker.IsMarker(n):
	case dom.IsElement(n, "br"):
		b.lineBreak()
	case dom.IsElement(n, "input"):
		glyph := "☐"
		if _, checked := dom.GetAttr(n, "checked"); checked {
			glyph = "☑"
		}
		b.place(Cell{Text: glyph, Width: 1, Style: b.th.Overlay(style, "checkbox"), Point: dom.Before(n)})
		b.place(Cell{Text: " ", Width: 1, Style: style})
	case dom.IsElement(n, "hr"):
		b.place(Cell{Text: ruleGlyph, Width: 1, Style: b.th.GetStyle("rule"), Point: dom.Before(n)})
	default:
		inner := b.elementStyle(n, style)
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			b.inline(c, inner)
		}
	}
	b.out.ends[n] = b.pos()
}

func (b *builder) text(n *html.Node, style tcell.Style) {
	b.out.starts[n] = b.pos()
	s := n.Data
	off := 0
	state := -1
	for s != "" {
		var cluster string
		var w int
		cluster, s, w, state = uniseg.FirstGraphemeClusterInString(s, state)
		point := dom.Point{Node: n, Offset: off}
		var at Pos
		switch {
		case cluster == "\n" || cluster == "\r\n":
			if b.pre {
				at = b.pos()
				b.lineBreak()
			} else {
				at = b.place(Cell{Text: " ", Width: 1, Style: style, Point: point})
			}
		case cluster == "\t":
			at = b.place(Cell{Text: "\t", Width: tabWidth, Style: style, Point: point})
		case w == 0:
			at = b.pos()
		default:
			at = b.place(Cell{Text: cluster, Width: w, Style: style, Point: point})
		}
		b.out.marks[n] = append(b.out.marks[n], textMark{off: off, pos: at})
		off += len(cluster)
	}
	b.out.ends[n] = b.pos()
}
