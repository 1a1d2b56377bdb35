// internal/event/event.go
package event

import (
	"fmt"

	"golang.org/x/net/html"
)

// Type identifies the kind of event.
type Type int

const (
	TypeUnknown Type = iota

	// Collaborator notifications raised by the history engine and command machine.
	TypeToolbarEnabled // Undo/redo (or other commands) became available or unavailable
	TypeToolbarCurrent // The set of commands active at the cursor changed
	TypeAfterMutation  // A structural mutation finished; downstream concerns may run
	TypeLinkPopover    // An anchor awaits a URL from the link popover

	// History bookkeeping
	TypeHistoryRecorded // A new entry was pushed onto the undo stack

	// Surface lifecycle
	TypeDocumentLoaded // The editing surface received new markup
	TypeAppReady       // The host finished initialization
	TypeAppQuit        // The host is about to exit
)

var typeNames = map[Type]string{
	TypeUnknown:         "Unknown",
	TypeToolbarEnabled:  "ToolbarEnabled",
	TypeToolbarCurrent:  "ToolbarCurrent",
	TypeAfterMutation:   "AfterMutation",
	TypeLinkPopover:     "LinkPopover",
	TypeHistoryRecorded: "HistoryRecorded",
	TypeDocumentLoaded:  "DocumentLoaded",
	TypeAppReady:        "AppReady",
	TypeAppQuit:         "AppQuit",
}

func (t Type) String() string {
	if name, ok := typeNames[t]; ok {
		return name
	}
	return fmt.Sprintf("Type(%d)", int(t))
}

// Event is the structure passed through the event bus.
type Event struct {
	Type Type
	Data interface{}
}

// ToolbarEnabledData enables or disables a set of toolbar commands.
type ToolbarEnabledData struct {
	Commands []string
	Enabled  bool
}

// ToolbarCurrentData lists the commands active at the cursor.
type ToolbarCurrentData struct {
	Active []string
}

// AfterMutationData tells downstream concerns which follow-up work to run.
// History replays send EnableHistoryRecording=false so the replay is not recorded again.
type AfterMutationData struct {
	EnableHistoryRecording bool
	EnableAutoComplete     bool
	EnableReflow           bool
}

// LinkPopoverData carries the anchor element waiting for its URL.
type LinkPopoverData struct {
	Anchor *html.Node
}

// HistoryRecordedData describes the undo stack after a record.
type HistoryRecordedData struct {
	UndoCount int
	Patches   int
}

// DocumentLoadedData carries the source of freshly loaded markup.
type DocumentLoadedData struct {
	FilePath string
}
