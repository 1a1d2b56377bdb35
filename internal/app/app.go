// internal/app/app.go
package app

import (
	"fmt"
	"sync"

	"github.com/gdamore/tcell/v2"
	"golang.org/x/net/html"

	"github.com/bethropolis/inkwell/internal/commands"
	"github.com/bethropolis/inkwell/internal/config"
	"github.com/bethropolis/inkwell/internal/core"
	"github.com/bethropolis/inkwell/internal/core/clipboard"
	"github.com/bethropolis/inkwell/internal/event"
	"github.com/bethropolis/inkwell/internal/highlighter"
	"github.com/bethropolis/inkwell/internal/input"
	"github.com/bethropolis/inkwell/internal/logger"
	"github.com/bethropolis/inkwell/internal/modehandler"
	"github.com/bethropolis/inkwell/internal/plugin"
	"github.com/bethropolis/inkwell/internal/statusbar"
	"github.com/bethropolis/inkwell/internal/theme"
	"github.com/bethropolis/inkwell/internal/tui"
	"github.com/bethropolis/inkwell/internal/utils"
)

// App encapsulates the core components and main loop of the editor.
//
// The editor is single threaded: every document mutation runs on the goroutine
// executing Run. Timers and plugin goroutines hand work over with post.
type App struct {
	cfg                 *config.Config
	tuiManager          *tui.TUI
	editor              *core.Editor
	statusBar           *statusbar.StatusBar
	eventManager        *event.Manager
	pluginManager       *plugin.Manager
	modeHandler         *modehandler.ModeHandler
	editorAPI           plugin.EditorAPI
	themeManager        *theme.Manager
	highlightingManager *HighlightingManager

	view            tui.View
	recordDebouncer utils.Debouncer
	pendingLink     *html.Node // anchor waiting for :href

	state docState
	quit  chan struct{}
}

// docState mirrors what plugin goroutines may read about the document.
type docState struct {
	mu       sync.RWMutex
	path     string
	modified bool
}

// New creates the application on the terminal and loads filePath (an empty
// document when filePath is "").
func New(cfg *config.Config, filePath string) (*App, error) {
	themeManager := theme.NewManager(cfg.Editor.ThemesDirectory(), cfg.Editor.Theme)
	tuiManager, err := tui.New(themeManager.Current().GetStyle("Default"))
	if err != nil {
		return nil, fmt.Errorf("TUI initialization failed: %w", err)
	}
	a, err := build(cfg, tuiManager, themeManager, filePath)
	if err != nil {
		tuiManager.Close()
		return nil, err
	}
	return a, nil
}

// NewWithScreen creates the application on an existing screen, such as a
// tcell.SimulationScreen.
func NewWithScreen(cfg *config.Config, screen tcell.Screen, filePath string) (*App, error) {
	themeManager := theme.NewManager(cfg.Editor.ThemesDirectory(), cfg.Editor.Theme)
	tuiManager, err := tui.NewWithScreen(screen, themeManager.Current().GetStyle("Default"))
	if err != nil {
		return nil, fmt.Errorf("TUI initialization failed: %w", err)
	}
	return build(cfg, tuiManager, themeManager, filePath)
}

func build(cfg *config.Config, tuiManager *tui.TUI, themeManager *theme.Manager, filePath string) (*App, error) {
	opts := []core.Option{
		core.WithHistorySize(cfg.History.StackSize),
		core.WithTaskClass(cfg.Editor.TaskClass),
		core.WithClipboard(clipboard.NewManager(cfg.Editor.SystemClipboard)),
	}
	if cfg.Editor.HighlightCode {
		opts = append(opts, core.WithCodeRenderer(highlighter.NewCodeRenderer()))
	}

	eventManager := event.NewManager()
	editor := core.NewEditor(eventManager, opts...)

	statusBar := statusbar.New(statusbar.DefaultConfig())
	toolbar := make([]string, 0, len(commands.Names()))
	for _, n := range commands.Names() {
		toolbar = append(toolbar, string(n))
	}
	statusBar.SetCommands(toolbar)

	a := &App{
		cfg:           cfg,
		tuiManager:    tuiManager,
		editor:        editor,
		statusBar:     statusBar,
		eventManager:  eventManager,
		pluginManager: plugin.NewManager(),
		themeManager:  themeManager,
		quit:          make(chan struct{}),
	}

	a.modeHandler = modehandler.New(modehandler.Config{
		Editor:         editor,
		InputProcessor: input.NewInputProcessor(),
		StatusBar:      statusBar,
		QuitSignal:     a.quit,
		FlushEdits:     a.flushEdits,
	})
	a.highlightingManager = NewHighlightingManager(editor, a.post)
	a.editorAPI = newEditorAPI(a)

	// --- Subscribe Core Components (App level wiring) ---
	a.subscribe()

	// --- Commands ---
	editor.RegisterCommands(a.modeHandler)
	registerAppCommands(a)

	// --- Load the document ---
	var loadErr error
	if filePath != "" {
		loadErr = editor.LoadFile(filePath)
	} else {
		loadErr = editor.Load("", "")
	}
	if loadErr != nil {
		return nil, loadErr
	}
	a.syncState()

	// --- Plugins ---
	if err := registerPlugins(a.pluginManager, cfg); err != nil {
		logger.Warnf("App: %v", err)
	}
	a.pluginManager.InitializePlugins(a.editorAPI)

	return a, nil
}

// Run processes terminal events until the user quits.
func (a *App) Run() error {
	defer a.tuiManager.Close()
	defer a.pluginManager.ShutdownPlugins()
	defer a.highlightingManager.Shutdown()

	a.eventManager.Dispatch(event.TypeAppReady, nil)
	a.statusBar.SetTemporaryMessage("Inkwell - Ctrl+S Save | Ctrl+P Command | ESC Quit")
	a.drawEditor()

	for {
		ev := a.tuiManager.PollEvent()
		if ev == nil {
			return nil
		}
		if a.handleEvent(ev) {
			a.drawEditor()
		}

		select {
		case <-a.quit:
			a.recordDebouncer.Cancel()
			a.eventManager.Dispatch(event.TypeAppQuit, nil)
			if a.editor.IsModified() {
				logger.Warnf("App: Exited with unsaved changes.")
			}
			logger.Infof("App: Exiting application.")
			return nil
		default:
		}
	}
}

// handleEvent handles one terminal event and reports whether a redraw is needed.
func (a *App) handleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		a.tuiManager.Sync()
		return true
	case *tcell.EventKey:
		return a.modeHandler.HandleKeyEvent(ev)
	case *tcell.EventInterrupt:
		if task, ok := ev.Data().(func()); ok && task != nil {
			task()
		}
		return true
	}
	return false
}

// post queues task to run on the event loop.
func (a *App) post(task func()) {
	if err := a.tuiManager.PostEvent(tcell.NewEventInterrupt(task)); err != nil {
		logger.Warnf("App: dropped posted task: %v", err)
	}
}

// requestRedraw wakes the event loop for a redraw.
func (a *App) requestRedraw() {
	a.post(nil)
}

// flushEdits records any edit still waiting for the debounce.
func (a *App) flushEdits() {
	a.recordDebouncer.Cancel()
	a.editor.RecordEdit()
}

func (a *App) syncState() {
	a.state.mu.Lock()
	defer a.state.mu.Unlock()
	a.state.path = a.editor.FilePath()
	a.state.modified = a.editor.IsModified()
}

// GetModeHandler allows the API adapter to access the mode handler for command registration.
func (a *App) GetModeHandler() *modehandler.ModeHandler {
	return a.modeHandler
}

// GetEditor returns the editing surface.
func (a *App) GetEditor() *core.Editor {
	return a.editor
}
