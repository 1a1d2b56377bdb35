package find

import (
	"fmt"
	"regexp"

	"golang.org/x/net/html"

	"github.com/bethropolis/inkwell/internal/dom"
	"github.com/bethropolis/inkwell/internal/logger"
	"github.com/bethropolis/inkwell/internal/render"
)

// EditorInterface defines methods the find manager needs from the editor.
type EditorInterface interface {
	GetDocument() *dom.Document
	HighlightToolbar()
}

// Match is one occurrence of the search pattern. Matches never span text nodes.
type Match struct {
	Node       *html.Node
	Start, End int // byte offsets into Node.Data
}

// Range returns the match as a document range.
func (m Match) Range() dom.Range {
	return dom.Range{
		Start: dom.Point{Node: m.Node, Offset: m.Start},
		End:   dom.Point{Node: m.Node, Offset: m.End},
	}
}

// Manager searches the text of the document with a regular expression and
// selects matches.
type Manager struct {
	editor          EditorInterface
	lastSearchTerm  string
	lastSearchRegex *regexp.Regexp
}

// NewManager creates a find manager.
func NewManager(editor EditorInterface) *Manager {
	return &Manager{editor: editor}
}

// SetPattern compiles term as the search pattern. An empty term clears it.
func (m *Manager) SetPattern(term string) error {
	if term == "" {
		m.lastSearchTerm, m.lastSearchRegex = "", nil
		return nil
	}
	re, err := regexp.Compile(term)
	if err != nil {
		logger.Warnf("FindManager: Invalid regex '%s': %v", term, err)
		return fmt.Errorf("invalid search pattern: %w", err)
	}
	m.lastSearchTerm, m.lastSearchRegex = term, re
	return nil
}

// Pattern returns the current search term.
func (m *Manager) Pattern() string { return m.lastSearchTerm }

func isPreview(n *html.Node) bool {
	return dom.IsElement(n, "pre") && dom.HasClass(n, render.PreviewClass)
}

// Matches returns every non-empty match in document order. Generated code
// previews are not searched.
func (m *Manager) Matches() []Match {
	if m.lastSearchRegex == nil {
		return nil
	}
	root := m.editor.GetDocument().Root()
	var out []Match
	dom.Walk(root, func(n *html.Node) bool {
		if isPreview(n) {
			return false
		}
		if !dom.IsText(n) {
			return true
		}
		for _, loc := range m.lastSearchRegex.FindAllStringIndex(n.Data, -1) {
			if loc[0] < loc[1] {
				out = append(out, Match{Node: n, Start: loc[0], End: loc[1]})
			}
		}
		return true
	})
	return out
}

// FindNext selects the next match after the selection (or the previous one
// before it), wrapping around the document.
func (m *Manager) FindNext(forward bool) (Match, bool) {
	matches := m.Matches()
	if len(matches) == 0 {
		return Match{}, false
	}
	doc := m.editor.GetDocument()

	found := -1
	sel, ok := doc.Selection()
	if ok {
		from := sel.Start
		if forward {
			for i, mt := range matches {
				c := dom.Compare(dom.Point{Node: mt.Node, Offset: mt.Start}, from)
				if c > 0 || (c == 0 && sel.Collapsed()) {
					found = i
					break
				}
			}
		} else {
			for i := len(matches) - 1; i >= 0; i-- {
				mt := matches[i]
				if dom.Compare(dom.Point{Node: mt.Node, Offset: mt.Start}, from) < 0 {
					found = i
					break
				}
			}
		}
	}
	if found < 0 {
		logger.DebugTagf("find", "FindNext: wrapping around")
		found = 0
		if !forward {
			found = len(matches) - 1
		}
	}

	match := matches[found]
	doc.Select(match.Range())
	m.editor.HighlightToolbar()
	return match, true
}
