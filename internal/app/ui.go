package app

import (
	"time"

	"github.com/bethropolis/inkwell/internal/config"
	"github.com/bethropolis/inkwell/internal/logger"
	"github.com/bethropolis/inkwell/internal/statusbar"
	"github.com/bethropolis/inkwell/internal/tui"
)

// drawEditor clears screen and redraws all components.
func (a *App) drawEditor() {
	a.updateStatusBarContent()

	activeTheme := a.themeManager.Current()
	screen := a.tuiManager.GetScreen()
	width, height := a.tuiManager.Size()
	viewHeight := height - statusbar.Height

	logger.DebugTagf("draw", "drawEditor: Screen Size (%d x %d), ViewHeight: %d", width, height, viewHeight)

	a.tuiManager.SetStyle(activeTheme.GetStyle("Default"))
	a.tuiManager.Clear()
	tui.DrawDocument(a.tuiManager, a.editor.GetDocument(), activeTheme, &a.view, viewHeight)
	a.statusBar.Draw(screen, width, height, activeTheme)
	a.tuiManager.Show()
}

// updateStatusBarContent pushes current editor state to the status bar component.
func (a *App) updateStatusBarContent() {
	a.statusBar.SetFileInfo(a.editor.FilePath(), a.editor.IsModified())
	a.syncState()
}

func (a *App) statusBarTimeout() time.Duration {
	return config.MessageTimeout + 50*time.Millisecond
}
