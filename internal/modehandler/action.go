package modehandler

import (
	"github.com/bethropolis/inkwell/internal/input"
	"github.com/bethropolis/inkwell/internal/logger"
)

// executeAction handles actions in ModeNormal. It reports whether a redraw
// is needed.
func (mh *ModeHandler) executeAction(actionEvent input.ActionEvent) bool {
	actionProcessed := true

	switch actionEvent.Action {
	case input.ActionEnterCommandMode:
		mh.currentMode = ModeCommand
		mh.cmdBuffer = ""
		mh.statusBar.SetCommandLine("", true)
		logger.Debugf("ModeHandler: Entering Command Mode")

	// --- Quit/Save ---
	case input.ActionQuit:
		if mh.editor.IsModified() && !mh.forceQuitPending {
			mh.statusBar.SetTemporaryMessage("Unsaved changes! Press ESC again or Ctrl+Q to force quit.")
			mh.forceQuitPending = true
			return true
		}
		mh.Quit()
		return false
	case input.ActionForceQuit:
		mh.Quit()
		return false

	case input.ActionSave:
		if err := mh.editor.Save(); err != nil {
			mh.statusBar.SetTemporaryMessage("Save FAILED: %v", err)
		} else {
			mh.statusBar.SetTemporaryMessage("Saved to %s", mh.editor.FilePath())
		}

	// --- Movement ---
	case input.ActionMoveLeft:
		mh.editor.MoveCursor(-1, actionEvent.Extend)
	case input.ActionMoveRight:
		mh.editor.MoveCursor(1, actionEvent.Extend)
	case input.ActionMoveHome:
		mh.editor.MoveToBlockEdge(false, actionEvent.Extend)
	case input.ActionMoveEnd:
		mh.editor.MoveToBlockEdge(true, actionEvent.Extend)

	// --- Text Modification ---
	case input.ActionInsertRune:
		if err := mh.editor.InsertText(string(actionEvent.Rune)); err != nil {
			logger.Debugf("Err InsertText: %v", err)
			actionProcessed = false
		}
	case input.ActionInsertNewLine:
		if err := mh.editor.SplitBlock(); err != nil {
			logger.Debugf("Err SplitBlock: %v", err)
			actionProcessed = false
		}
	case input.ActionDeleteCharBackward:
		if err := mh.editor.DeleteBackward(); err != nil {
			logger.Debugf("Err DeleteBackward: %v", err)
			actionProcessed = false
		}

	// --- History ---
	case input.ActionUndo:
		mh.flushEdits()
		if !mh.editor.Undo() {
			mh.statusBar.SetTemporaryMessage("Nothing to undo")
		}
	case input.ActionRedo:
		mh.flushEdits()
		if !mh.editor.Redo() {
			mh.statusBar.SetTemporaryMessage("Nothing to redo")
		}

	// --- Clipboard ---
	case input.ActionCopyMarkup:
		if err := mh.editor.CopyMarkup(); err != nil {
			mh.statusBar.SetTemporaryMessage("Copy failed: %v", err)
		} else {
			mh.statusBar.SetTemporaryMessage("Markup copied")
		}
	case input.ActionYank:
		copied, err := mh.editor.YankSelection()
		switch {
		case err != nil:
			mh.statusBar.SetTemporaryMessage("Yank failed: %v", err)
		case copied:
			mh.statusBar.SetTemporaryMessage("Selection yanked")
		default:
			mh.statusBar.SetTemporaryMessage("Nothing selected to yank")
		}
	case input.ActionPaste:
		pasted, err := mh.editor.Paste()
		switch {
		case err != nil:
			mh.statusBar.SetTemporaryMessage("Paste failed: %v", err)
		case !pasted:
			mh.statusBar.SetTemporaryMessage("Clipboard empty")
		}

	// --- Formatting ---
	case input.ActionToggle:
		mh.toggle(actionEvent.Command)

	default:
		actionProcessed = false
	}

	if actionProcessed && actionEvent.Action != input.ActionQuit {
		mh.forceQuitPending = false
	}
	return actionProcessed
}

// toggle runs a formatting command. The toolbar button flips first, the way
// a clicked button does; commands that recompute the toolbar then overwrite
// it with the state at the caret.
func (mh *ModeHandler) toggle(name string) {
	mh.statusBar.ToggleActive(name)
	if err := mh.editor.Toggle(name); err != nil {
		mh.statusBar.ToggleActive(name)
		mh.statusBar.SetTemporaryMessage("%s: %v", name, err)
		logger.Debugf("ModeHandler: toggle %s failed: %v", name, err)
	}
}
