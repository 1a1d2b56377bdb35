// internal/tui/drawing.go
package tui

import (
	"github.com/gdamore/tcell/v2"

	"github.com/bethropolis/inkwell/internal/dom"
	"github.com/bethropolis/inkwell/internal/logger"
	"github.com/bethropolis/inkwell/internal/theme"
)

// View holds the scroll position between draws.
type View struct {
	Top int // first visible layout line
}

// follow scrolls so that line is one of the height visible lines.
func (v *View) follow(line, height int) {
	if line < v.Top {
		v.Top = line
	}
	if line >= v.Top+height {
		v.Top = line - height + 1
	}
	if v.Top < 0 {
		v.Top = 0
	}
}

func inSelection(r dom.Range, p dom.Point) bool {
	return dom.Compare(r.Start, p) <= 0 && dom.Compare(p, r.End) < 0
}

// caretPoint returns where the terminal cursor goes: the caret when the
// selection is collapsed, its end otherwise.
func caretPoint(doc *dom.Document) (dom.Point, bool) {
	r, ok := doc.Selection()
	if !ok {
		return dom.Point{}, false
	}
	if r.Collapsed() {
		return doc.Caret()
	}
	return r.End, true
}

// DrawDocument draws doc into the top height rows of the screen, scrolling
// view so the caret stays visible, and places the terminal cursor on it.
func DrawDocument(t *TUI, doc *dom.Document, activeTheme *theme.Theme, view *View, height int) *Layout {
	if activeTheme == nil {
		logger.Warnf("DrawDocument called with nil theme, using built-in default.")
		activeTheme = &theme.InkwellDark
	}
	width, _ := t.Size()
	if height <= 0 || width <= 0 {
		return nil
	}

	layout := Build(doc, width, activeTheme)
	defaultStyle := activeTheme.GetStyle("Default")
	selectionStyle := activeTheme.GetStyle("Selection")
	sel, hasSel := doc.Selection()
	hasSel = hasSel && !sel.Collapsed()

	cursor, cursorOK := Pos{}, false
	if p, ok := caretPoint(doc); ok {
		cursor, cursorOK = layout.PosOf(p)
	}
	if cursorOK {
		view.follow(cursor.Line, height)
	} else if view.Top >= len(layout.Lines) {
		view.Top = 0
	}

	screen := t.screen
	for screenY := 0; screenY < height; screenY++ {
		for fillX := 0; fillX < width; fillX++ {
			screen.SetContent(fillX, screenY, ' ', nil, defaultStyle)
		}
		lineIdx := view.Top + screenY
		if lineIdx >= len(layout.Lines) {
			continue
		}
		x := 0
		for _, c := range layout.Lines[lineIdx] {
			if x >= width {
				break
			}
			style := c.Style
			if hasSel && c.Point.Node != nil && inSelection(sel, c.Point) {
				style = selectionStyle
			}
			drawCell(screen, x, screenY, width, c, style)
			x += c.Width
		}
	}

	screenY := cursor.Line - view.Top
	if !cursorOK || screenY < 0 || screenY >= height {
		screen.HideCursor()
		return layout
	}
	screenX := cursor.Col
	if screenX >= width {
		screenX = width - 1
	}
	screen.ShowCursor(screenX, screenY)
	return layout
}

func drawCell(screen tcell.Screen, x, y, width int, c Cell, style tcell.Style) {
	if c.Text == "\t" {
		for i := 0; i < c.Width && x+i < width; i++ {
			screen.SetContent(x+i, y, ' ', nil, style)
		}
		return
	}
	runes := []rune(c.Text)
	if len(runes) == 0 {
		return
	}
	screen.SetContent(x, y, runes[0], runes[1:], style)
	// Wide characters occupy the following cells too.
	for cw := 1; cw < c.Width && x+cw < width; cw++ {
		screen.SetContent(x+cw, y, ' ', nil, style)
	}
}
