package core

import (
	"errors"

	"golang.org/x/net/html"

	"github.com/bethropolis/inkwell/internal/commands"
	"github.com/bethropolis/inkwell/internal/dom"
	"github.com/bethropolis/inkwell/internal/event"
	"github.com/bethropolis/inkwell/internal/logger"
	"github.com/bethropolis/inkwell/internal/plugin"
	"github.com/bethropolis/inkwell/internal/render"
)

// typed is the follow-up announced after plain typing.
var typed = event.AfterMutationData{
	EnableHistoryRecording: true,
	EnableAutoComplete:     true,
	EnableReflow:           true,
}

func (e *Editor) afterEdit() {
	e.modified = true
	e.eventManager.Dispatch(event.TypeAfterMutation, typed)
	e.HighlightToolbar()
}

// InsertText types s at the caret, replacing the selection.
func (e *Editor) InsertText(s string) error {
	if err := e.doc.InsertText(s); err != nil {
		return err
	}
	e.afterEdit()
	return nil
}

// DeleteBackward deletes the selection or the grapheme before the caret.
func (e *Editor) DeleteBackward() error {
	if err := e.doc.DeleteBackward(); err != nil {
		return err
	}
	e.afterEdit()
	return nil
}

// SplitBlock breaks the block at the caret in two.
func (e *Editor) SplitBlock() error {
	if err := e.doc.SplitBlock(); err != nil {
		return err
	}
	e.afterEdit()
	return nil
}

// MoveCursor moves the caret by delta graphemes. With extend the selection
// anchor stays in place.
func (e *Editor) MoveCursor(delta int, extend bool) {
	if _, ok := e.doc.Selection(); !ok {
		e.doc.Collapse(e.doc.Start())
	}
	e.doc.MoveCursor(delta, extend)
	e.skipPreview(delta, extend)
	logger.DebugTagf("core", "MoveCursor: delta %d extend %v", delta, extend)
	e.HighlightToolbar()
}

// MoveToBlockEdge moves the caret to the start or end of the block holding
// the focus.
func (e *Editor) MoveToBlockEdge(end, extend bool) {
	focus, ok := e.doc.Focus()
	if !ok {
		e.doc.Collapse(e.doc.Start())
		focus = e.doc.Start()
	}
	block := dom.Closest(focus.Node, e.doc.Root(), dom.IsBlock)
	if block == nil {
		block = e.doc.Root()
	}
	texts := dom.FindAll(block, dom.IsText)
	var target dom.Point
	switch {
	case len(texts) == 0 && end:
		target = dom.Point{Node: block, Offset: dom.ChildCount(block)}
	case len(texts) == 0:
		target = dom.Point{Node: block, Offset: 0}
	case end:
		last := texts[len(texts)-1]
		target = dom.Point{Node: last, Offset: len(last.Data)}
	default:
		target = dom.Point{Node: texts[0], Offset: 0}
	}
	e.doc.MoveFocus(target, extend)
	e.HighlightToolbar()
}

func isPreview(n *html.Node) bool {
	return dom.IsElement(n, "pre") && dom.HasClass(n, render.PreviewClass)
}

func (e *Editor) inPreview() bool {
	focus, ok := e.doc.Focus()
	return ok && dom.Closest(focus.Node, e.doc.Root(), isPreview) != nil
}

// skipPreview moves the focus out of generated code previews, which are not
// editable: onward in the direction of travel, or back when nothing follows.
func (e *Editor) skipPreview(delta int, extend bool) {
	step := 1
	if delta < 0 {
		step = -1
	}
	for pass := 0; pass < 2 && e.inPreview(); pass++ {
		for e.inPreview() {
			before, _ := e.doc.Focus()
			e.doc.MoveCursor(step, extend)
			if after, _ := e.doc.Focus(); after == before {
				break
			}
		}
		step = -step
	}
}

// Toggle runs a formatting command, deriving its active flag from the caret.
func (e *Editor) Toggle(name string) error {
	n, err := commands.Parse(name)
	if err != nil {
		return err
	}
	return e.Execute(n, e.commands.ActiveAt(e.doc)[n])
}

// Execute runs a formatting command with an explicit active flag.
func (e *Editor) Execute(name commands.Name, active bool) error {
	if err := e.commands.Execute(name, active); err != nil {
		return err
	}
	e.modified = true
	return nil
}

// commandRegistry marks the document modified after a registered command
// succeeds.
type commandRegistry struct {
	e   *Editor
	reg commands.Registry
}

func (r commandRegistry) RegisterCommand(name string, fn plugin.CommandFunc) error {
	return r.reg.RegisterCommand(name, func(args []string) error {
		if err := fn(args); err != nil {
			return err
		}
		r.e.modified = true
		return nil
	})
}

// RegisterCommands binds every formatting command into reg.
func (e *Editor) RegisterCommands(reg commands.Registry) {
	e.commands.Register(commandRegistry{e: e, reg: reg})
}

// ErrDetachedAnchor is returned when a link's anchor left the document before
// its URL arrived.
var ErrDetachedAnchor = errors.New("anchor is no longer in the document")

// SetLinkHref gives an anchor announced through the link popover its URL.
func (e *Editor) SetLinkHref(anchor *html.Node, url string) error {
	if !e.doc.Contains(anchor) {
		return ErrDetachedAnchor
	}
	dom.SetAttr(anchor, "href", url)
	e.modified = true
	e.eventManager.Dispatch(event.TypeAfterMutation, event.AfterMutationData{
		EnableHistoryRecording: true,
		EnableReflow:           true,
	})
	return nil
}

// RecordEdit snapshots the document into the history.
func (e *Editor) RecordEdit() {
	e.historyManager.RecordEdit()
}

// Undo reverts the last recorded edit.
func (e *Editor) Undo() bool {
	if !e.historyManager.Undo() {
		return false
	}
	e.modified = true
	return true
}

// Redo reapplies the last undone edit.
func (e *Editor) Redo() bool {
	if !e.historyManager.Redo() {
		return false
	}
	e.modified = true
	return true
}

// YankSelection copies the selected text. It reports false when the selection
// is collapsed.
func (e *Editor) YankSelection() (bool, error) {
	r, ok := e.doc.Selection()
	if !ok || r.Collapsed() {
		return false, nil
	}
	return true, e.clipboardManager.Yank(dom.TextIn(e.doc.Root(), r))
}

// CopyMarkup copies the canonical markup of the whole document.
func (e *Editor) CopyMarkup() error {
	return e.clipboardManager.Yank(e.Markup())
}

// Paste types the clipboard content at the caret.
func (e *Editor) Paste() (bool, error) {
	text := e.clipboardManager.Content()
	if text == "" {
		return false, nil
	}
	if err := e.InsertText(text); err != nil {
		if errors.Is(err, dom.ErrNoSelection) {
			e.doc.Collapse(e.doc.Start())
			return true, e.InsertText(text)
		}
		return false, err
	}
	return true, nil
}
