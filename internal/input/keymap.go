// internal/input/keymap.go
package input

import (
	"github.com/gdamore/tcell/v2"
)

// Keymap maps special keys (arrows, Enter, control keys) to actions.
type Keymap map[tcell.Key]Action

// ModKeymap maps keys pressed with a modifier to actions.
type ModKeymap map[tcell.ModMask]Keymap

// CommandKeymap maps Alt+rune chords to formatting command names.
type CommandKeymap map[rune]string

// InputProcessor translates tcell key events into ActionEvents.
type InputProcessor struct {
	keymap    Keymap
	modKeymap ModKeymap
	altKeymap CommandKeymap
}

// NewInputProcessor creates a processor with the default bindings.
func NewInputProcessor() *InputProcessor {
	p := &InputProcessor{
		keymap:    make(Keymap),
		modKeymap: make(ModKeymap),
		altKeymap: make(CommandKeymap),
	}
	p.loadDefaultBindings()
	return p
}

func (p *InputProcessor) loadDefaultBindings() {
	p.keymap[tcell.KeyLeft] = ActionMoveLeft
	p.keymap[tcell.KeyRight] = ActionMoveRight
	p.keymap[tcell.KeyHome] = ActionMoveHome
	p.keymap[tcell.KeyEnd] = ActionMoveEnd
	p.keymap[tcell.KeyEnter] = ActionInsertNewLine
	p.keymap[tcell.KeyBackspace] = ActionDeleteCharBackward
	p.keymap[tcell.KeyBackspace2] = ActionDeleteCharBackward
	p.keymap[tcell.KeyEscape] = ActionQuit

	ctrlMap := make(Keymap)
	ctrlMap[tcell.KeyCtrlS] = ActionSave
	ctrlMap[tcell.KeyCtrlQ] = ActionForceQuit
	ctrlMap[tcell.KeyCtrlZ] = ActionUndo
	ctrlMap[tcell.KeyCtrlY] = ActionRedo
	ctrlMap[tcell.KeyCtrlC] = ActionCopyMarkup
	ctrlMap[tcell.KeyCtrlK] = ActionYank
	ctrlMap[tcell.KeyCtrlV] = ActionPaste
	ctrlMap[tcell.KeyCtrlP] = ActionEnterCommandMode
	p.modKeymap[tcell.ModCtrl] = ctrlMap

	p.altKeymap['b'] = "bold"
	p.altKeymap['i'] = "italic"
	p.altKeymap['s'] = "strike"
	p.altKeymap['l'] = "list"
	p.altKeymap['o'] = "ordered-list"
	p.altKeymap['c'] = "check"
	p.altKeymap['q'] = "quote"
	p.altKeymap['k'] = "link"
	p.altKeymap['`'] = "inline-code"
	p.altKeymap['p'] = "code"
	p.altKeymap['t'] = "table"
	p.altKeymap['h'] = "line"
}

// ProcessEvent maps a key event to an action. Mode-specific interpretation
// (runes typed into the command line, Enter executing it) is left to the caller.
func (p *InputProcessor) ProcessEvent(ev *tcell.EventKey) ActionEvent {
	key := ev.Key()
	mod := ev.Modifiers()
	runeVal := ev.Rune()

	// Control keys arrive as their own key codes; tcell may or may not set ModCtrl.
	if key >= tcell.KeyCtrlA && key <= tcell.KeyCtrlZ {
		if action, ok := p.modKeymap[tcell.ModCtrl][key]; ok {
			return ActionEvent{Action: action}
		}
		mod &^= tcell.ModCtrl
	}
	if modKeyMap, ok := p.modKeymap[mod]; ok {
		if action, ok := modKeyMap[key]; ok {
			return ActionEvent{Action: action}
		}
	}

	if key == tcell.KeyRune && mod&tcell.ModAlt != 0 {
		if name, ok := p.altKeymap[runeVal]; ok {
			return ActionEvent{Action: ActionToggle, Command: name}
		}
		return ActionEvent{Action: ActionUnknown}
	}

	if mod == tcell.ModNone || mod == tcell.ModShift {
		if action, ok := p.keymap[key]; ok {
			return ActionEvent{Action: action, Extend: mod == tcell.ModShift}
		}
	}

	if key == tcell.KeyRune && mod&(tcell.ModCtrl|tcell.ModAlt|tcell.ModMeta) == 0 {
		return ActionEvent{Action: ActionInsertRune, Rune: runeVal}
	}

	return ActionEvent{Action: ActionUnknown}
}

// CommandKeys returns the Alt chords bound to formatting commands.
func (p *InputProcessor) CommandKeys() CommandKeymap {
	out := make(CommandKeymap, len(p.altKeymap))
	for r, name := range p.altKeymap {
		out[r] = name
	}
	return out
}
