package app

import (
	"errors"
	"fmt"
	"strings"

	"github.com/bethropolis/inkwell/internal/logger"
	"github.com/bethropolis/inkwell/internal/plugin"
)

// registerAppCommands registers built-in commands like :theme and :w.
func registerAppCommands(app *App) {
	cmds := map[string]plugin.CommandFunc{
		"theme":  app.themeCommand,
		"themes": app.themesCommand,
		"w":      app.writeCommand,
		"q":      app.quitCommand,
		"q!":     app.forceQuitCommand,
		"wq":     app.writeQuitCommand,
		"undo":   app.undoCommand,
		"redo":   app.redoCommand,
		"href":   app.hrefCommand,
		"find":   app.findCommand(true),
		"rfind":  app.findCommand(false),
	}
	for name, fn := range cmds {
		if err := app.modeHandler.RegisterCommand(name, fn); err != nil {
			logger.Warnf("Failed to register ':%s' command: %v", name, err)
		}
	}
}

func (a *App) themeCommand(args []string) error {
	if len(args) == 0 {
		a.statusBar.SetTemporaryMessage("Current theme: %s", a.themeManager.Current().Name)
		return nil
	}
	themeName := strings.Join(args, " ")
	if err := a.themeManager.SetTheme(themeName); err != nil {
		return fmt.Errorf("theme '%s' not found. Available: %s", themeName, strings.Join(a.themeManager.ListThemes(), ", "))
	}
	a.statusBar.SetTemporaryMessage("Theme set to: %s", a.themeManager.Current().Name)
	return nil
}

func (a *App) themesCommand(args []string) error {
	a.statusBar.SetTemporaryMessage("Available themes: %s", strings.Join(a.themeManager.ListThemes(), ", "))
	return nil
}

func (a *App) writeCommand(args []string) error {
	if err := a.editor.Save(); err != nil {
		return err
	}
	a.statusBar.SetTemporaryMessage("Saved to %s", a.editor.FilePath())
	return nil
}

func (a *App) quitCommand(args []string) error {
	if a.editor.IsModified() {
		return errors.New("no write since last change (use :q! to force)")
	}
	a.modeHandler.Quit()
	return nil
}

func (a *App) forceQuitCommand(args []string) error {
	a.modeHandler.Quit()
	return nil
}

func (a *App) writeQuitCommand(args []string) error {
	if err := a.writeCommand(args); err != nil {
		return err
	}
	a.modeHandler.Quit()
	return nil
}

func (a *App) undoCommand(args []string) error {
	a.flushEdits()
	if !a.editor.Undo() {
		return errors.New("nothing to undo")
	}
	return nil
}

func (a *App) redoCommand(args []string) error {
	a.flushEdits()
	if !a.editor.Redo() {
		return errors.New("nothing to redo")
	}
	return nil
}

// hrefCommand gives the most recently inserted link its URL.
func (a *App) hrefCommand(args []string) error {
	if len(args) != 1 {
		return errors.New("usage: href <url>")
	}
	if a.pendingLink == nil {
		return errors.New("no link is waiting for a URL")
	}
	anchor := a.pendingLink
	a.pendingLink = nil
	return a.editor.SetLinkHref(anchor, args[0])
}

// findCommand selects the next (or previous) match. With arguments it sets a
// new pattern first.
func (a *App) findCommand(forward bool) plugin.CommandFunc {
	return func(args []string) error {
		fm := a.editor.GetFindManager()
		if len(args) > 0 {
			if err := fm.SetPattern(strings.Join(args, " ")); err != nil {
				return err
			}
		}
		if fm.Pattern() == "" {
			return errors.New("no search pattern")
		}
		if _, ok := fm.FindNext(forward); !ok {
			return fmt.Errorf("pattern not found: %s", fm.Pattern())
		}
		return nil
	}
}
