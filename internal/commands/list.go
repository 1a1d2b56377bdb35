package commands

import (
	"strings"
	"unicode"

	"golang.org/x/net/html"

	"github.com/bethropolis/inkwell/internal/dom"
	"github.com/bethropolis/inkwell/internal/marker"
)

func listTag(name Name) string {
	if name == OrderedList {
		return "ol"
	}
	return "ul"
}

func newCheckbox() *html.Node {
	return dom.Element("input", dom.Attr("type", "checkbox"))
}

func checkboxOf(item *html.Node) *html.Node {
	return dom.Find(item, dom.ByTag("input"))
}

func listItems(list *html.Node) []*html.Node {
	var items []*html.Node
	for c := list.FirstChild; c != nil; c = c.NextSibling {
		if dom.IsElement(c, "li") {
			items = append(items, c)
		}
	}
	return items
}

// toggleList handles list, ordered-list and check. Outside a list the caret's
// block becomes the single item of a new list. Inside a list an active command
// turns the whole list back into paragraphs, any other list command converts
// the list in place.
func (m *Machine) toggleList(doc *dom.Document, r dom.Range, name Name, cancel bool) {
	root := doc.Root()
	item := dom.ClosestTag(r.Start.Node, root, "li")
	mk := marker.InsertAt(r.Start)

	switch {
	case cancel && item != nil:
		listToParagraphs(item.Parent)
	case item == nil:
		m.wrapInList(root, mk, name)
	default:
		m.convertList(item.Parent, name)
	}
	marker.Restore(doc)
}

func (m *Machine) wrapInList(root, mk *html.Node, name Name) {
	block := dom.TopLevel(mk, root)
	if block == nil || block == mk {
		dom.Remove(mk)
		block = nil
		for c := root.FirstChild; c != nil; c = c.NextSibling {
			if dom.IsElement(c, "p") {
				block = c
				break
			}
		}
		if block == nil {
			block = dom.Element("p")
			root.AppendChild(block)
		}
		dom.Prepend(block, mk)
	}

	list := dom.Element(listTag(name))
	item := dom.Element("li")
	list.AppendChild(item)
	if name == Check {
		dom.AddClass(item, m.taskClass)
		item.AppendChild(newCheckbox())
		item.AppendChild(dom.Text(" "))
	}
	dom.InsertBefore(block, list)
	if dom.IsElement(block, "p") {
		dom.MoveChildren(block, item)
		dom.Remove(block)
	} else {
		dom.Remove(block)
		item.AppendChild(block)
	}
}

func (m *Machine) convertList(list *html.Node, name Name) {
	if name == Check {
		for _, item := range listItems(list) {
			if checkboxOf(item) == nil {
				dom.Prepend(item, newCheckbox())
			}
			dom.AddClass(item, m.taskClass)
		}
		return
	}
	for _, item := range listItems(list) {
		if cb := checkboxOf(item); cb != nil {
			dom.Remove(cb)
			trimLeadingSpace(item)
		}
		dom.RemoveClass(item, m.taskClass)
	}
	if tag := listTag(name); list.Data != tag {
		converted := dom.Element(tag)
		dom.InsertBefore(list, converted)
		dom.MoveChildren(list, converted)
		dom.Remove(list)
	}
}

// listToParagraphs replaces a list by one paragraph per item. Checkboxes are
// dropped and block content nested in an item is hoisted next to the paragraphs.
func listToParagraphs(list *html.Node) {
	for _, item := range listItems(list) {
		if cb := checkboxOf(item); cb != nil {
			dom.Remove(cb)
		}
		trimLeadingSpace(item)
		for _, n := range hoist(item) {
			dom.InsertBefore(list, n)
		}
	}
	dom.Remove(list)
}

// hoist returns the content of container as top-level nodes: runs of inline
// content are collected into paragraphs, blocks are kept as they are.
func hoist(container *html.Node) []*html.Node {
	var out []*html.Node
	var run *html.Node
	for _, c := range dom.Children(container) {
		dom.Remove(c)
		switch {
		case dom.IsBlock(c):
			run = nil
			out = append(out, c)
		case run == nil && dom.IsText(c) && strings.TrimSpace(c.Data) == "":
			// whitespace around blocks
		default:
			if run == nil {
				run = dom.Element("p")
				out = append(out, run)
			}
			run.AppendChild(c)
		}
	}
	if len(out) == 0 {
		out = append(out, dom.Element("p"))
	}
	return out
}

func trimLeadingSpace(n *html.Node) {
	for c := n.FirstChild; dom.IsText(c); {
		trimmed := strings.TrimLeftFunc(c.Data, unicode.IsSpace)
		if trimmed != "" {
			c.Data = trimmed
			return
		}
		next := c.NextSibling
		dom.Remove(c)
		c = next
	}
}
