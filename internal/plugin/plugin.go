// Package plugin defines the extension surface of the editor.
package plugin

import (
	"github.com/bethropolis/inkwell/internal/event"
)

// CommandFunc is the signature of named commands. args come from the host
// (a key binding or a command line).
type CommandFunc func(args []string) error

// EditorAPI is the part of the editor plugins may use. It is
// read-mostly: plugins observe the document and react to events, and expose
// commands the host can bind.
type EditorAPI interface {
	// Document access
	DocumentMarkup() string // Serialized markup without the cursor marker
	DocumentText() string   // Plain text content
	GetFilePath() string    // Empty for unsaved documents
	IsModified() bool       // Changed since the last load or save
	SaveDocument() error    // Writes the markup back to its file

	// Event bus
	DispatchEvent(eventType event.Type, data interface{})
	SubscribeEvent(eventType event.Type, handler event.Handler)

	// Commands
	RegisterCommand(name string, cmdFunc CommandFunc) error

	// Status bar
	SetStatusMessage(format string, args ...interface{})
}

// Plugin is implemented by every plugin.
type Plugin interface {
	// Name returns the unique name of the plugin.
	Name() string

	// Initialize is called once after the editor is set up. Plugins subscribe to
	// events and register commands here.
	Initialize(api EditorAPI) error

	// Shutdown is called once when the editor exits.
	Shutdown() error
}
