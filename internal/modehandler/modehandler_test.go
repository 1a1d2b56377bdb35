package modehandler

import (
	"errors"
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/google/go-cmp/cmp"

	"github.com/bethropolis/inkwell/internal/core"
	"github.com/bethropolis/inkwell/internal/dom"
	"github.com/bethropolis/inkwell/internal/event"
	"github.com/bethropolis/inkwell/internal/input"
	"github.com/bethropolis/inkwell/internal/statusbar"
)

type fixture struct {
	mh     *ModeHandler
	editor *core.Editor
	sb     *statusbar.StatusBar
	quit   chan struct{}
}

func newFixture(t *testing.T, markup string) *fixture {
	t.Helper()
	ed := core.NewEditor(event.NewManager())
	if err := ed.Load(markup, ""); err != nil {
		t.Fatal(err)
	}
	doc := ed.GetDocument()
	doc.Collapse(doc.Start())

	f := &fixture{editor: ed, sb: statusbar.New(statusbar.DefaultConfig()), quit: make(chan struct{})}
	f.mh = New(Config{
		Editor:         ed,
		InputProcessor: input.NewInputProcessor(),
		StatusBar:      f.sb,
		QuitSignal:     f.quit,
		FlushEdits:     ed.RecordEdit,
	})
	return f
}

func (f *fixture) press(keys ...*tcell.EventKey) {
	for _, k := range keys {
		f.mh.HandleKeyEvent(k)
	}
}

func runeKey(r rune) *tcell.EventKey { return tcell.NewEventKey(tcell.KeyRune, r, tcell.ModNone) }
func altKey(r rune) *tcell.EventKey  { return tcell.NewEventKey(tcell.KeyRune, r, tcell.ModAlt) }
func key(k tcell.Key) *tcell.EventKey {
	return tcell.NewEventKey(k, 0, tcell.ModNone)
}
func ctrlKey(k tcell.Key) *tcell.EventKey { return tcell.NewEventKey(k, 0, tcell.ModCtrl) }

func (f *fixture) quitClosed() bool {
	select {
	case <-f.quit:
		return true
	default:
		return false
	}
}

func TestTypingAndUndo(t *testing.T) {
	f := newFixture(t, "<p>ab</p>")
	f.press(key(tcell.KeyRight), runeKey('x'))
	if got, want := f.editor.Markup(), "<p>axb</p>"; got != want {
		t.Fatalf("markup = %q, want %q", got, want)
	}

	f.press(ctrlKey(tcell.KeyCtrlZ))
	if got, want := f.editor.Markup(), "<p>ab</p>"; got != want {
		t.Errorf("after undo = %q, want %q", got, want)
	}
	f.press(ctrlKey(tcell.KeyCtrlY))
	if got, want := f.editor.Markup(), "<p>axb</p>"; got != want {
		t.Errorf("after redo = %q, want %q", got, want)
	}
}

func TestHomeAndEnd(t *testing.T) {
	f := newFixture(t, "<p>abc</p><p>de</p>")
	f.press(key(tcell.KeyEnd), runeKey('!'))
	f.press(key(tcell.KeyHome), runeKey('^'))
	if got, want := f.editor.Markup(), "<p>^abc!</p><p>de</p>"; got != want {
		t.Errorf("markup = %q, want %q", got, want)
	}
}

func TestToggleFlipsToolbar(t *testing.T) {
	f := newFixture(t, "<p>ab</p>")
	f.press(key(tcell.KeyRight), altKey('b'))
	if got, want := f.editor.Markup(), "<p>a<strong>"+dom.ZWSP+"</strong>b</p>"; got != want {
		t.Errorf("markup = %q, want %q", got, want)
	}
	if !f.sb.IsActive("bold") {
		t.Error("bold not shown as active after the toggle")
	}
}

func TestCommandMode(t *testing.T) {
	f := newFixture(t, "<p>ab</p>")
	var gotArgs []string
	if err := f.mh.RegisterCommand("echo", func(args []string) error {
		gotArgs = args
		return nil
	}); err != nil {
		t.Fatal(err)
	}
	if err := f.mh.RegisterCommand("echo", func([]string) error { return nil }); err == nil {
		t.Error("duplicate registration succeeded")
	}

	f.press(ctrlKey(tcell.KeyCtrlP))
	if f.mh.GetCurrentMode() != ModeCommand {
		t.Fatalf("mode = %v, want COMMAND", f.mh.GetCurrentMode())
	}
	for _, r := range "echo hi thereé" {
		f.press(runeKey(r))
	}
	f.press(key(tcell.KeyBackspace2))
	if got, want := f.mh.GetCommandBuffer(), "echo hi there"; got != want {
		t.Errorf("command buffer = %q, want %q", got, want)
	}
	f.press(key(tcell.KeyEnter))

	if f.mh.GetCurrentMode() != ModeNormal {
		t.Errorf("mode = %v after Enter, want NORMAL", f.mh.GetCurrentMode())
	}
	if diff := cmp.Diff([]string{"hi", "there"}, gotArgs); diff != "" {
		t.Errorf("command args mismatch (-want +got):\n%s", diff)
	}
	if got := f.editor.Markup(); got != "<p>ab</p>" {
		t.Errorf("command mode typing reached the document: %q", got)
	}
}

func TestCommandModeCancel(t *testing.T) {
	f := newFixture(t, "<p>ab</p>")
	called := false
	_ = f.mh.RegisterCommand("fail", func([]string) error {
		called = true
		return errors.New("boom")
	})

	f.press(ctrlKey(tcell.KeyCtrlP), runeKey('f'), key(tcell.KeyEscape))
	if f.mh.GetCurrentMode() != ModeNormal || called {
		t.Errorf("escape did not cancel: mode %v, called %v", f.mh.GetCurrentMode(), called)
	}
	if f.quitClosed() {
		t.Error("escape in command mode quit the editor")
	}

	f.press(ctrlKey(tcell.KeyCtrlP), runeKey('f'), runeKey('a'), runeKey('i'), runeKey('l'), key(tcell.KeyEnter))
	if !called {
		t.Error("command not executed")
	}
}

func TestQuitNeedsConfirmationWhenModified(t *testing.T) {
	f := newFixture(t, "<p>ab</p>")
	f.press(runeKey('x'))

	f.press(key(tcell.KeyEscape))
	if f.quitClosed() {
		t.Fatal("quit without confirmation on a modified document")
	}
	f.press(key(tcell.KeyEscape))
	if !f.quitClosed() {
		t.Fatal("second escape did not quit")
	}
	// A further quit must not close the channel twice.
	f.press(ctrlKey(tcell.KeyCtrlQ))
}

func TestQuitUnmodified(t *testing.T) {
	f := newFixture(t, "<p>ab</p>")
	f.press(key(tcell.KeyEscape))
	if !f.quitClosed() {
		t.Error("escape on an unmodified document did not quit")
	}
}
