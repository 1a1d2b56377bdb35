// Package history records snapshots of an editing surface as reverse text patches
// and replays them for undo and redo.
//
// Every entry on the undo stack is the patch list that turns a snapshot back into
// the snapshot recorded before it. Entry 0 is the baseline: it is never undone, so
// the document can never be rolled back past the state it was loaded in.
package history

import (
	"github.com/bethropolis/inkwell/internal/config"
	"github.com/bethropolis/inkwell/internal/diff"
	"github.com/bethropolis/inkwell/internal/dom"
	"github.com/bethropolis/inkwell/internal/event"
	"github.com/bethropolis/inkwell/internal/highlighter"
	"github.com/bethropolis/inkwell/internal/logger"
	"github.com/bethropolis/inkwell/internal/marker"
	"github.com/bethropolis/inkwell/internal/render"
)

// Toolbar command names whose availability the manager reports.
const (
	CommandUndo = "undo"
	CommandRedo = "redo"
)

// EditorInterface defines what the history manager needs from the editing surface.
type EditorInterface interface {
	GetDocument() *dom.Document
	GetRenderer() render.Bridge
	GetCodeRenderer() highlighter.Renderer
	GetEventManager() *event.Manager
	// HighlightToolbar recomputes and announces the commands active at the cursor.
	HighlightToolbar()
}

// Manager handles the undo/redo stacks of one surface. It is not safe for
// concurrent use; the host serializes calls on its event loop.
type Manager struct {
	editor     EditorInterface
	differ     *diff.Differ
	undoStack  [][]diff.Patch
	redoStack  [][]diff.Patch
	lastText   string
	hasUndo    bool // an undo happened since the last recorded edit
	maxHistory int
}

// NewManager creates a history manager. Sizes below two fall back to the default,
// since the baseline entry alone allows no undo.
func NewManager(editor EditorInterface, maxHistory int) *Manager {
	if maxHistory < 2 {
		maxHistory = config.DefaultHistorySize
	}
	return &Manager{
		editor:     editor,
		differ:     diff.New(),
		maxHistory: maxHistory,
	}
}

// snapshot serializes the live tree through the render bridge. When the document
// has a caret and no marker, one is placed for the duration of the snapshot.
func (m *Manager) snapshot() string {
	doc := m.editor.GetDocument()
	bridge := m.editor.GetRenderer()
	var text string
	marker.With(doc, func() {
		text = bridge.Normalize(doc.Markup())
	})
	return text
}

// RecordEdit snapshots the surface and pushes the patches leading back to the
// previous snapshot. Snapshots equal to the previous one are not recorded.
func (m *Manager) RecordEdit() {
	text := m.snapshot()
	patches := m.differ.Make(text, m.lastText)
	if len(patches) == 0 {
		logger.DebugTagf("history", "RecordEdit: no change since last snapshot")
		return
	}
	m.lastText = text
	m.undoStack = append(m.undoStack, patches)
	if len(m.undoStack) > m.maxHistory {
		m.undoStack = m.undoStack[len(m.undoStack)-m.maxHistory:]
	}

	events := m.editor.GetEventManager()
	if m.hasUndo {
		m.redoStack = nil
		m.hasUndo = false
		events.Dispatch(event.TypeToolbarEnabled, event.ToolbarEnabledData{Commands: []string{CommandRedo}, Enabled: false})
	}
	if len(m.undoStack) > 1 {
		events.Dispatch(event.TypeToolbarEnabled, event.ToolbarEnabledData{Commands: []string{CommandUndo}, Enabled: true})
	}
	events.Dispatch(event.TypeHistoryRecorded, event.HistoryRecordedData{UndoCount: len(m.undoStack), Patches: len(patches)})
	logger.DebugTagf("history", "RecordEdit: pushed %d patch(es), %d entries", len(patches), len(m.undoStack))
}

// Undo restores the snapshot recorded before the most recent entry. It reports
// false when only the baseline is left.
func (m *Manager) Undo() bool {
	if len(m.undoStack) < 2 {
		logger.DebugTagf("history", "Undo: nothing to undo")
		return false
	}
	entry := m.undoStack[len(m.undoStack)-1]
	m.undoStack = m.undoStack[:len(m.undoStack)-1]
	m.redoStack = append(m.redoStack, entry)
	m.replay(entry)
	m.hasUndo = true
	return true
}

// Redo reapplies the most recently undone entry.
func (m *Manager) Redo() bool {
	if len(m.redoStack) == 0 {
		logger.DebugTagf("history", "Redo: nothing to redo")
		return false
	}
	entry := m.redoStack[len(m.redoStack)-1]
	m.redoStack = m.redoStack[:len(m.redoStack)-1]
	m.undoStack = append(m.undoStack, entry)
	m.replay(diff.Reverse(entry))
	return true
}

func (m *Manager) replay(patches []diff.Patch) {
	text, applied := m.differ.Apply(patches, m.lastText)
	for i, ok := range applied {
		if !ok {
			logger.WarnTagf("history", "replay: patch %d of %d applied with low confidence", i+1, len(applied))
		}
	}
	text = m.editor.GetRenderer().Normalize(text)
	m.lastText = text

	doc := m.editor.GetDocument()
	if err := doc.SetMarkup(text); err != nil {
		logger.Errorf("History: replay produced unparsable markup: %v", err)
	}
	if cr := m.editor.GetCodeRenderer(); cr != nil {
		for _, block := range dom.FindAll(doc.Root(), highlighter.IsCodeBlock) {
			cr.RenderCode(block)
		}
	}
	if !marker.Restore(doc) {
		logger.DebugTagf("history", "replay: snapshot had no marker, caret at document start")
	}

	events := m.editor.GetEventManager()
	events.Dispatch(event.TypeAfterMutation, event.AfterMutationData{
		EnableHistoryRecording: false,
		EnableAutoComplete:     false,
		EnableReflow:           true,
	})
	m.editor.HighlightToolbar()
	events.Dispatch(event.TypeToolbarEnabled, event.ToolbarEnabledData{Commands: []string{CommandUndo}, Enabled: len(m.undoStack) > 1})
	events.Dispatch(event.TypeToolbarEnabled, event.ToolbarEnabledData{Commands: []string{CommandRedo}, Enabled: len(m.redoStack) > 0})
}

// RecordBaselineMarker rewrites the baseline so that it carries the current caret.
// It only acts while the baseline is the sole entry, typically right after the
// first focus of a freshly loaded document.
func (m *Manager) RecordBaselineMarker() {
	if len(m.undoStack) != 1 || len(m.undoStack[0]) == 0 || len(m.undoStack[0][0].Diffs) == 0 {
		return
	}
	if _, ok := m.editor.GetDocument().Selection(); !ok {
		return
	}
	text := m.snapshot()
	// A baseline made against the empty text is one hunk holding one deletion,
	// so rewriting that deletion and Length1 keeps the hunk coherent. Anything
	// else is rebuilt.
	if base := m.undoStack[0]; len(base) == 1 && len(base[0].Diffs) == 1 && base[0].Start1 == 0 {
		base[0].Diffs[0].Text = text
		base[0].Length1 = len(text)
	} else {
		m.undoStack[0] = m.differ.Make(text, "")
	}
	m.lastText = text
	logger.DebugTagf("history", "RecordBaselineMarker: baseline now carries the caret")
}

// CanUndo reports whether Undo would act.
func (m *Manager) CanUndo() bool { return len(m.undoStack) > 1 }

// CanRedo reports whether Redo would act.
func (m *Manager) CanRedo() bool { return len(m.redoStack) > 0 }

// UndoCount returns the number of entries on the undo stack, baseline included.
func (m *Manager) UndoCount() int { return len(m.undoStack) }

// RedoCount returns the number of entries on the redo stack.
func (m *Manager) RedoCount() int { return len(m.redoStack) }

// LastText returns the most recent snapshot.
func (m *Manager) LastText() string { return m.lastText }

// Clear drops both stacks and the last snapshot.
func (m *Manager) Clear() {
	m.undoStack, m.redoStack = nil, nil
	m.lastText = ""
	m.hasUndo = false
	logger.DebugTagf("history", "Clear: history dropped")
}

// Reset loads markup into the surface and records it as the new baseline.
func (m *Manager) Reset(markup string) error {
	m.Clear()
	if err := m.editor.GetDocument().SetMarkup(markup); err != nil {
		return err
	}
	m.RecordEdit()
	return nil
}
