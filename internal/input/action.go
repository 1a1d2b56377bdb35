// internal/input/action.go
package input

// Action represents an operation requested by a key press.
type Action int

const (
	// --- Meta Actions ---
	ActionUnknown Action = iota
	ActionQuit
	ActionForceQuit // Quit without checking modified status
	ActionSave

	// --- Cursor Movement ---
	ActionMoveLeft
	ActionMoveRight
	ActionMoveHome // Start of document
	ActionMoveEnd  // End of document

	// --- Text Manipulation ---
	ActionInsertRune    // Requires Rune argument
	ActionInsertNewLine // Enter splits the block
	ActionDeleteCharBackward

	// --- History ---
	ActionUndo
	ActionRedo

	// --- Clipboard ---
	ActionCopyMarkup
	ActionYank
	ActionPaste

	// --- Formatting ---
	ActionToggle // Requires Command argument

	// --- Editor Mode ---
	ActionEnterCommandMode
)

// ActionEvent is a decoded key press and its payload.
type ActionEvent struct {
	Action  Action
	Rune    rune   // ActionInsertRune
	Command string // ActionToggle
	Extend  bool   // movement keeps the selection anchor (Shift held)
}
