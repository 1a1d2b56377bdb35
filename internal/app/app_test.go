package app

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/bethropolis/inkwell/internal/config"
	"github.com/bethropolis/inkwell/internal/dom"
)

const (
	screenW = 200
	screenH = 6
)

func newTestApp(t *testing.T, markup string, tweak func(*config.Config)) (*App, tcell.SimulationScreen, string) {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "doc.html")
	if err := os.WriteFile(path, []byte(markup), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg := config.NewDefaultConfig()
	cfg.Editor.ThemesDir = filepath.Join(dir, "themes")
	cfg.Editor.SystemClipboard = false
	cfg.Editor.HighlightCode = false
	cfg.Autosave.Enabled = false
	if tweak != nil {
		tweak(cfg)
	}

	sim := tcell.NewSimulationScreen("UTF-8")
	a, err := NewWithScreen(cfg, sim, path)
	if err != nil {
		t.Fatalf("NewWithScreen() error = %v", err)
	}
	sim.SetSize(screenW, screenH)
	t.Cleanup(func() {
		a.pluginManager.ShutdownPlugins()
		a.tuiManager.Close()
	})
	return a, sim, path
}

func row(sim tcell.SimulationScreen, y int) string {
	var sb strings.Builder
	for x := 0; x < screenW; x++ {
		r, _, _, _ := sim.GetContent(x, y)
		sb.WriteRune(r)
	}
	return strings.TrimRight(sb.String(), " ")
}

func typeKeys(a *App, s string) {
	for _, r := range s {
		a.handleEvent(tcell.NewEventKey(tcell.KeyRune, r, tcell.ModNone))
	}
}

func runCommand(a *App, cmd string) {
	a.handleEvent(tcell.NewEventKey(tcell.KeyCtrlP, 0, tcell.ModCtrl))
	typeKeys(a, cmd)
	a.handleEvent(tcell.NewEventKey(tcell.KeyEnter, 0, tcell.ModNone))
}

// pump handles posted events until done reports true.
func pump(t *testing.T, a *App, done func() bool) {
	t.Helper()
	deadline := time.After(2 * time.Second)
	for !done() {
		evCh := make(chan tcell.Event, 1)
		go func() { evCh <- a.tuiManager.PollEvent() }()
		select {
		case ev := <-evCh:
			if ev == nil {
				t.Fatal("screen closed while waiting")
			}
			a.handleEvent(ev)
		case <-deadline:
			t.Fatal("timed out waiting for posted events")
		}
	}
}

func TestDrawShowsDocumentAndToolbar(t *testing.T) {
	a, sim, path := newTestApp(t, "<p><strong>hello</strong></p><p>world</p>", nil)
	a.statusBar.ResetTemporaryMessage()
	a.drawEditor()

	if got := row(sim, 0); got != "hello" {
		t.Errorf("row 0 = %q, want hello", got)
	}
	if got := row(sim, 1); got != "world" {
		t.Errorf("row 1 = %q, want world", got)
	}
	if got := row(sim, screenH-2); !strings.HasPrefix(got, " B  S  I ") || !strings.HasSuffix(got, "| undo redo") {
		t.Errorf("toolbar row = %q", got)
	}
	if got := row(sim, screenH-1); !strings.HasPrefix(got, path) || !strings.Contains(got, "bold") {
		t.Errorf("status row = %q, want the path and the active bold command", got)
	}
	if !a.statusBar.IsActive("bold") {
		t.Error("bold not active at a caret inside <strong>")
	}
}

func TestTypingIsRecordedAfterDebounce(t *testing.T) {
	a, _, _ := newTestApp(t, "<p>ab</p>", func(cfg *config.Config) { cfg.Editor.DebounceMS = 20 })
	typeKeys(a, "xy")
	if got, want := a.editor.Markup(), "<p>xyab</p>"; got != want {
		t.Fatalf("markup = %q, want %q", got, want)
	}
	hm := a.editor.GetHistoryManager()
	pump(t, a, hm.CanUndo)

	if !a.statusBar.IsEnabled("undo") {
		t.Error("undo not enabled after the record")
	}
	a.handleEvent(tcell.NewEventKey(tcell.KeyCtrlZ, 0, tcell.ModCtrl))
	if got, want := a.editor.Markup(), "<p>ab</p>"; got != want {
		t.Errorf("after undo = %q, want %q", got, want)
	}
	if !a.statusBar.IsEnabled("redo") {
		t.Error("redo not enabled after undo")
	}
}

func TestUndoFlushesPendingEdit(t *testing.T) {
	a, _, _ := newTestApp(t, "<p>ab</p>", func(cfg *config.Config) { cfg.Editor.DebounceMS = 60000 })
	typeKeys(a, "z")
	a.handleEvent(tcell.NewEventKey(tcell.KeyCtrlZ, 0, tcell.ModCtrl))
	if got, want := a.editor.Markup(), "<p>ab</p>"; got != want {
		t.Errorf("after undo = %q, want %q", got, want)
	}
	if a.recordDebouncer.Pending() {
		t.Error("debounced record still pending after undo")
	}
}

func TestHrefCommandSetsLinkTarget(t *testing.T) {
	a, _, _ := newTestApp(t, "<p>ab</p>", nil)
	doc := a.editor.GetDocument()
	text := dom.Find(doc.Root(), dom.IsText)
	doc.Select(dom.Range{Start: dom.Point{Node: text, Offset: 0}, End: dom.Point{Node: text, Offset: 2}})

	a.handleEvent(tcell.NewEventKey(tcell.KeyRune, 'k', tcell.ModAlt))
	if a.pendingLink == nil {
		t.Fatal("link popover not received")
	}
	runCommand(a, "href https://example.com")

	if got := a.editor.Markup(); !strings.Contains(got, `href="https://example.com"`) {
		t.Errorf("markup = %q, want the link target", got)
	}
	if a.pendingLink != nil {
		t.Error("pending link kept after :href")
	}
	if !a.editor.IsModified() {
		t.Error("document not marked modified")
	}
}

func TestThemeCommand(t *testing.T) {
	a, _, _ := newTestApp(t, "<p>ab</p>", nil)
	runCommand(a, "theme inkwell light")
	if got := a.themeManager.Current().Name; got != "Inkwell Light" {
		t.Errorf("theme = %q, want Inkwell Light", got)
	}
	runCommand(a, "theme missing")
	if got := a.themeManager.Current().Name; got != "Inkwell Light" {
		t.Errorf("theme = %q after a failed switch, want Inkwell Light", got)
	}
}

func TestFormattingCommandLine(t *testing.T) {
	a, _, _ := newTestApp(t, "<p>ab</p>", nil)
	runCommand(a, "quote")
	if got, want := a.editor.Markup(), "<blockquote><p>ab</p></blockquote>"; got != want {
		t.Errorf("markup = %q, want %q", got, want)
	}
	if !a.editor.IsModified() {
		t.Error("command line formatting did not mark the document modified")
	}
	runCommand(a, "q")
	select {
	case <-a.quit:
		t.Error(":q quit with unsaved changes")
	default:
	}
}

func TestRunSavesAndQuits(t *testing.T) {
	a, sim, path := newTestApp(t, "<p>ab</p>", nil)

	done := make(chan error, 1)
	go func() { done <- a.Run() }()

	sim.InjectKey(tcell.KeyRune, 'x', tcell.ModNone)
	sim.InjectKey(tcell.KeyCtrlS, 0, tcell.ModCtrl)
	sim.InjectKey(tcell.KeyEscape, 0, tcell.ModNone)

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Run() error = %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if got, want := string(data), "<p>xab</p>\n"; got != want {
		t.Errorf("saved file = %q, want %q", got, want)
	}
}
