package statusbar

import (
	"strings"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/bethropolis/inkwell/internal/theme"
)

func newScreen(t *testing.T, w, h int) tcell.SimulationScreen {
	t.Helper()
	sim := tcell.NewSimulationScreen("UTF-8")
	if err := sim.Init(); err != nil {
		t.Fatalf("Init() error = %v", err)
	}
	t.Cleanup(sim.Fini)
	sim.SetSize(w, h)
	return sim
}

func row(sim tcell.SimulationScreen, y, w int) string {
	var sb strings.Builder
	for x := 0; x < w; x++ {
		r, _, _, _ := sim.GetContent(x, y)
		sb.WriteRune(r)
	}
	return strings.TrimRight(sb.String(), " ")
}

func TestDrawToolbarAndStatus(t *testing.T) {
	sim := newScreen(t, 60, 4)
	sb := New(DefaultConfig())
	sb.SetCommands([]string{"bold", "italic"})
	sb.SetActive([]string{"italic"})
	sb.SetFileInfo("doc.html", true)
	sb.SetEnabled([]string{"undo"}, true)

	sb.Draw(sim, 60, 4, &theme.InkwellDark)

	if got := row(sim, 2, 60); got != " B  I  | undo redo" {
		t.Errorf("toolbar = %q", got)
	}
	if got := row(sim, 3, 60); got != "doc.html [Modified] -- italic" {
		t.Errorf("status = %q", got)
	}
	_, _, style, _ := sim.GetContent(4, 2)
	if style != theme.InkwellDark.GetStyle("StatusBarActive") {
		t.Error("active command not drawn with StatusBarActive")
	}
	if !sb.IsEnabled("undo") || sb.IsEnabled("redo") {
		t.Error("undo/redo enabled state not tracked")
	}
}

func TestCommandLineAndMessages(t *testing.T) {
	sim := newScreen(t, 40, 2)
	sb := New(DefaultConfig())

	sb.SetTemporaryMessage("Saved %s", "x.html")
	sb.Draw(sim, 40, 2, &theme.InkwellDark)
	if got := row(sim, 1, 40); got != "Saved x.html" {
		t.Errorf("status = %q, want message", got)
	}

	sb.SetCommandLine("bold on", true)
	sb.Draw(sim, 40, 2, &theme.InkwellDark)
	if got := row(sim, 1, 40); got != ":bold on" {
		t.Errorf("status = %q, want command line", got)
	}

	sb.SetCommandLine("", false)
	sb.ResetTemporaryMessage()
	sb.Draw(sim, 40, 2, &theme.InkwellDark)
	if got := row(sim, 1, 40); got != "[No Name]" {
		t.Errorf("status = %q, want file info", got)
	}
}

func TestMessageExpires(t *testing.T) {
	sim := newScreen(t, 40, 2)
	cfg := DefaultConfig()
	cfg.MessageTimeout = time.Nanosecond
	sb := New(cfg)
	sb.SetTemporaryMessage("gone")
	time.Sleep(time.Millisecond)

	sb.Draw(sim, 40, 2, &theme.InkwellDark)
	if got := row(sim, 1, 40); got != "[No Name]" {
		t.Errorf("status = %q, want expired message", got)
	}
}

func TestToggleActive(t *testing.T) {
	sb := New(DefaultConfig())
	sb.ToggleActive("bold")
	if !sb.IsActive("bold") {
		t.Error("bold not active after toggle")
	}
	sb.ToggleActive("bold")
	if sb.IsActive("bold") {
		t.Error("bold still active after second toggle")
	}
}
