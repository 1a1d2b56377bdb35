package input

import (
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/google/go-cmp/cmp"
)

func TestProcessEvent(t *testing.T) {
	p := NewInputProcessor()
	tests := []struct {
		name string
		ev   *tcell.EventKey
		want ActionEvent
	}{
		{"rune", tcell.NewEventKey(tcell.KeyRune, 'x', tcell.ModNone), ActionEvent{Action: ActionInsertRune, Rune: 'x'}},
		{"shifted rune", tcell.NewEventKey(tcell.KeyRune, 'X', tcell.ModShift), ActionEvent{Action: ActionInsertRune, Rune: 'X'}},
		{"colon types", tcell.NewEventKey(tcell.KeyRune, ':', tcell.ModNone), ActionEvent{Action: ActionInsertRune, Rune: ':'}},
		{"enter", tcell.NewEventKey(tcell.KeyEnter, 0, tcell.ModNone), ActionEvent{Action: ActionInsertNewLine}},
		{"backspace", tcell.NewEventKey(tcell.KeyBackspace2, 0, tcell.ModNone), ActionEvent{Action: ActionDeleteCharBackward}},
		{"left", tcell.NewEventKey(tcell.KeyLeft, 0, tcell.ModNone), ActionEvent{Action: ActionMoveLeft}},
		{"shift right", tcell.NewEventKey(tcell.KeyRight, 0, tcell.ModShift), ActionEvent{Action: ActionMoveRight, Extend: true}},
		{"undo", tcell.NewEventKey(tcell.KeyCtrlZ, 0, tcell.ModCtrl), ActionEvent{Action: ActionUndo}},
		{"redo", tcell.NewEventKey(tcell.KeyCtrlY, 0, tcell.ModCtrl), ActionEvent{Action: ActionRedo}},
		{"copy markup", tcell.NewEventKey(tcell.KeyCtrlC, 0, tcell.ModCtrl), ActionEvent{Action: ActionCopyMarkup}},
		{"force quit", tcell.NewEventKey(tcell.KeyCtrlQ, 0, tcell.ModCtrl), ActionEvent{Action: ActionForceQuit}},
		{"command mode", tcell.NewEventKey(tcell.KeyCtrlP, 0, tcell.ModCtrl), ActionEvent{Action: ActionEnterCommandMode}},
		{"bold", tcell.NewEventKey(tcell.KeyRune, 'b', tcell.ModAlt), ActionEvent{Action: ActionToggle, Command: "bold"}},
		{"inline code", tcell.NewEventKey(tcell.KeyRune, '`', tcell.ModAlt), ActionEvent{Action: ActionToggle, Command: "inline-code"}},
		{"unbound alt", tcell.NewEventKey(tcell.KeyRune, 'z', tcell.ModAlt), ActionEvent{Action: ActionUnknown}},
		{"unbound ctrl", tcell.NewEventKey(tcell.KeyCtrlB, 0, tcell.ModCtrl), ActionEvent{Action: ActionUnknown}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if diff := cmp.Diff(tt.want, p.ProcessEvent(tt.ev)); diff != "" {
				t.Errorf("ProcessEvent mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestCommandKeysCoverEveryCommand(t *testing.T) {
	seen := make(map[string]bool)
	for _, name := range NewInputProcessor().CommandKeys() {
		seen[name] = true
	}
	if len(seen) != 12 {
		t.Errorf("CommandKeys binds %d commands, want 12", len(seen))
	}
}
