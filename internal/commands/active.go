package commands

import (
	"golang.org/x/net/html"

	"github.com/bethropolis/inkwell/internal/dom"
	"github.com/bethropolis/inkwell/internal/highlighter"
)

// ActiveAt reports, for every command, whether its format applies at the caret.
// The result is what a toolbar shows as the current state of each button.
func (m *Machine) ActiveAt(doc *dom.Document) map[Name]bool {
	active := make(map[Name]bool, len(names))
	for _, n := range names {
		active[n] = false
	}
	p, ok := doc.Caret()
	if !ok {
		return active
	}
	root := doc.Root()
	for n := p.Node; n != nil && n != root; n = n.Parent {
		if n.Type != html.ElementNode {
			continue
		}
		switch tag := wrapperTag(n); tag {
		case "strong":
			active[Bold] = true
		case "em":
			active[Italic] = true
		case "s":
			active[Strike] = true
		}
		switch {
		case isInlineCode(n):
			active[InlineCode] = true
		case isAnchor(n):
			active[Link] = true
		case dom.IsElement(n, "blockquote"):
			active[Quote] = true
		case dom.IsElement(n, "table"):
			active[Table] = true
		case highlighter.IsCodeBlock(n):
			active[Code] = true
		case dom.IsElement(n, "li") && !active[List] && !active[OrderedList] && !active[Check]:
			switch {
			case dom.HasClass(n, m.taskClass) || checkboxOf(n) != nil:
				active[Check] = true
			case dom.IsElement(n.Parent, "ol"):
				active[OrderedList] = true
			default:
				active[List] = true
			}
		}
	}
	return active
}

// ActiveNames lists the active commands in toolbar order.
func (m *Machine) ActiveNames(doc *dom.Document) []string {
	active := m.ActiveAt(doc)
	var out []string
	for _, n := range names {
		if active[n] {
			out = append(out, string(n))
		}
	}
	return out
}
