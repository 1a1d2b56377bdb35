// Package commands implements the formatting commands of the editing surface.
//
// Each command toggles one format at the caret or over the selection. The caller
// says whether the command is currently active (usually taken from ActiveAt),
// which selects between the activate and deactivate paths. Commands are
// idempotent: running the same command twice with the active flag the toolbar
// reports leaves the document as it was, apart from zero-width placeholders.
package commands

import (
	"errors"
	"fmt"
	"strings"

	"github.com/bethropolis/inkwell/internal/config"
	"github.com/bethropolis/inkwell/internal/dom"
	"github.com/bethropolis/inkwell/internal/event"
	"github.com/bethropolis/inkwell/internal/highlighter"
	"github.com/bethropolis/inkwell/internal/logger"
	"github.com/bethropolis/inkwell/internal/marker"
	"github.com/bethropolis/inkwell/internal/plugin"
	"github.com/bethropolis/inkwell/internal/render"
)

// Name identifies a formatting command.
type Name string

// Command names.
const (
	Bold        Name = "bold"
	Italic      Name = "italic"
	Strike      Name = "strike"
	List        Name = "list"
	OrderedList Name = "ordered-list"
	Check       Name = "check"
	Quote       Name = "quote"
	Link        Name = "link"
	InlineCode  Name = "inline-code"
	Code        Name = "code"
	Table       Name = "table"
	Line        Name = "line"
)

// ErrUnknownCommand is returned for names outside the command set.
var ErrUnknownCommand = errors.New("unknown command")

var names = []Name{Bold, Strike, Italic, List, OrderedList, Check, Quote, Link, InlineCode, Code, Table, Line}

var aliases = map[string]Name{
	"strikeThrough": Strike,
	"strikethrough": Strike,
}

// Names returns every command name in toolbar order.
func Names() []Name {
	return append([]Name(nil), names...)
}

// Parse resolves a command name, accepting aliases.
func Parse(s string) (Name, error) {
	if n, ok := aliases[s]; ok {
		return n, nil
	}
	for _, n := range names {
		if string(n) == s {
			return n, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownCommand, s)
}

// EditorInterface defines what the command machine needs from the editing surface.
type EditorInterface interface {
	GetDocument() *dom.Document
	GetRenderer() render.Bridge
	GetCodeRenderer() highlighter.Renderer
	GetEventManager() *event.Manager
	HighlightToolbar()
}

// Registry is where hosts collect named commands.
type Registry interface {
	RegisterCommand(name string, cmdFunc plugin.CommandFunc) error
}

// Option configures a Machine.
type Option func(*Machine)

// WithTaskClass sets the class given to checklist items.
func WithTaskClass(class string) Option {
	return func(m *Machine) {
		if class != "" {
			m.taskClass = class
		}
	}
}

// Machine runs formatting commands against one surface.
type Machine struct {
	editor    EditorInterface
	taskClass string
}

// New creates a command machine.
func New(editor EditorInterface, opts ...Option) *Machine {
	m := &Machine{editor: editor, taskClass: config.DefaultTaskClass}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// effects says which follow-ups a command wants once it is done.
type effects struct {
	highlight bool
	render    bool
}

var (
	full       = effects{highlight: true, render: true}
	renderOnly = effects{render: true}
	quiet      = effects{}
)

// Execute runs a command. active tells whether the format is currently applied at
// the caret; it selects the deactivate path.
func (m *Machine) Execute(name Name, active bool) error {
	name, err := Parse(string(name))
	if err != nil {
		return err
	}
	doc := m.editor.GetDocument()
	if marker.Find(doc.Root()) != nil {
		marker.RemoveAll(doc.Root())
	}
	r, ok := doc.Selection()
	if !ok {
		doc.Collapse(doc.Start())
		r, _ = doc.Selection()
	}
	if !r.Collapsed() && dom.TextIn(doc.Root(), r) == "" {
		r = dom.Caret(r.Start)
		doc.Select(r)
	}
	logger.DebugTagf("commands", "Execute: %s (active=%v, collapsed=%v)", name, active, r.Collapsed())

	fx := m.run(doc, name, active, r)

	if fx.highlight {
		m.editor.HighlightToolbar()
	}
	if fx.render {
		m.editor.GetEventManager().Dispatch(event.TypeAfterMutation, event.AfterMutationData{
			EnableHistoryRecording: true,
			EnableAutoComplete:     false,
			EnableReflow:           true,
		})
	}
	return nil
}

func (m *Machine) run(doc *dom.Document, name Name, active bool, r dom.Range) effects {
	switch name {
	case Bold, Italic, Strike:
		tag := inlineTags[name]
		switch {
		case active && r.Collapsed():
			cancelInline(doc, tag)
		case active:
			unwrapRange(doc, r, wrapperMatcher(tag))
		case r.Collapsed():
			insertInline(doc, r, tag)
		default:
			wrapRange(doc, r, tag, wrapperMatcher(tag))
		}
		return renderOnly
	case List, OrderedList, Check:
		m.toggleList(doc, r, name, active)
		return renderOnly
	case Quote:
		if active {
			quoteOff(doc, r)
		} else {
			quoteOn(doc, r)
		}
		return full
	case Link:
		if active {
			linkOff(doc, r)
			return full
		}
		return m.linkOn(doc, r)
	case InlineCode:
		switch {
		case active && r.Collapsed():
			inlineCodeOff(doc, r)
			return full
		case active:
			unwrapRange(doc, r, isInlineCode)
			return full
		case r.Collapsed():
			insertBackticks(doc, r)
		default:
			wrapRange(doc, r, "code", isInlineCode)
		}
		return renderOnly
	case Code:
		if active {
			codeBlockOff(doc, r)
		} else {
			m.codeBlockOn(doc, r)
		}
		return full
	case Table:
		insertTable(doc, r)
		return full
	case Line:
		insertLine(doc, r)
		return full
	}
	return quiet
}

// Register binds every command into reg. A command called without arguments
// toggles based on ActiveAt; "on" and "off" force a direction.
func (m *Machine) Register(reg Registry) {
	for _, name := range names {
		name := name
		fn := func(args []string) error {
			active := m.ActiveAt(m.editor.GetDocument())[name]
			if len(args) > 0 {
				switch strings.ToLower(args[0]) {
				case "on":
					active = false
				case "off":
					active = true
				default:
					return fmt.Errorf("%s: expected on or off, got %q", name, args[0])
				}
			}
			return m.Execute(name, active)
		}
		if err := reg.RegisterCommand(string(name), fn); err != nil {
			logger.Warnf("Failed to register '%s' command: %v", name, err)
		}
	}
}
