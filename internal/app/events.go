package app

import (
	"github.com/bethropolis/inkwell/internal/event"
	"github.com/bethropolis/inkwell/internal/logger"
)

func (a *App) subscribe() {
	a.eventManager.Subscribe(event.TypeToolbarCurrent, a.handleToolbarCurrent)
	a.eventManager.Subscribe(event.TypeToolbarEnabled, a.handleToolbarEnabled)
	a.eventManager.Subscribe(event.TypeAfterMutation, a.handleAfterMutation)
	a.eventManager.Subscribe(event.TypeLinkPopover, a.handleLinkPopover)
	a.eventManager.Subscribe(event.TypeHistoryRecorded, a.handleHistoryRecorded)
	a.eventManager.Subscribe(event.TypeDocumentLoaded, a.handleDocumentLoaded)
}

// handleToolbarCurrent shows the commands active at the caret.
func (a *App) handleToolbarCurrent(e event.Event) bool {
	if data, ok := e.Data.(event.ToolbarCurrentData); ok {
		a.statusBar.SetActive(data.Active)
	}
	return false
}

// handleToolbarEnabled enables or disables undo and redo.
func (a *App) handleToolbarEnabled(e event.Event) bool {
	if data, ok := e.Data.(event.ToolbarEnabledData); ok {
		a.statusBar.SetEnabled(data.Commands, data.Enabled)
	}
	return false
}

// handleAfterMutation schedules the debounced history record and the code
// preview refresh.
func (a *App) handleAfterMutation(e event.Event) bool {
	data, ok := e.Data.(event.AfterMutationData)
	if !ok {
		logger.Warnf("App: Received AfterMutation event with unexpected data type: %T", e.Data)
		return false
	}
	if data.EnableHistoryRecording {
		a.recordDebouncer.Debounce(a.cfg.Editor.Debounce(), func() {
			a.post(a.editor.RecordEdit)
		})
	}
	if data.EnableReflow {
		a.highlightingManager.AccumulateEdit()
	}
	return false
}

// handleLinkPopover keeps the new anchor until :href supplies its URL.
func (a *App) handleLinkPopover(e event.Event) bool {
	if data, ok := e.Data.(event.LinkPopoverData); ok {
		a.pendingLink = data.Anchor
		a.statusBar.SetTemporaryMessage("Link inserted: use :href <url> to set its target")
	}
	return false
}

func (a *App) handleHistoryRecorded(e event.Event) bool {
	if data, ok := e.Data.(event.HistoryRecordedData); ok {
		logger.DebugTagf("app", "history: %d entries, last with %d patch(es)", data.UndoCount, data.Patches)
	}
	return false
}

// handleDocumentLoaded updates the status line for freshly loaded markup.
func (a *App) handleDocumentLoaded(e event.Event) bool {
	a.pendingLink = nil
	a.view.Top = 0
	if data, ok := e.Data.(event.DocumentLoadedData); ok && data.FilePath != "" {
		a.statusBar.SetFileInfo(data.FilePath, false)
		a.statusBar.SetTemporaryMessage("Loaded %s", data.FilePath)
	}
	return false
}
