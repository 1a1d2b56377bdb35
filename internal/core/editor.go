// internal/core/editor.go
package core

import (
	"fmt"
	"os"
	"strings"

	"golang.org/x/net/html"

	"github.com/bethropolis/inkwell/internal/commands"
	"github.com/bethropolis/inkwell/internal/config"
	"github.com/bethropolis/inkwell/internal/core/clipboard"
	"github.com/bethropolis/inkwell/internal/core/find"
	"github.com/bethropolis/inkwell/internal/core/history"
	"github.com/bethropolis/inkwell/internal/dom"
	"github.com/bethropolis/inkwell/internal/event"
	"github.com/bethropolis/inkwell/internal/highlighter"
	"github.com/bethropolis/inkwell/internal/logger"
	"github.com/bethropolis/inkwell/internal/render"
)

// Editor is one editing surface: the document, its history and its formatting
// commands, wired to a shared event bus. It is not safe for concurrent use.
type Editor struct {
	doc      *dom.Document
	filePath string
	modified bool

	eventManager *event.Manager
	renderer     render.Bridge
	codeRenderer highlighter.Renderer

	historyManager   *history.Manager
	commands         *commands.Machine
	clipboardManager *clipboard.Manager
	findManager      *find.Manager

	active []string // commands active at the caret, as last announced
}

// Option configures an Editor.
type Option func(*editorOptions)

type editorOptions struct {
	historySize  int
	taskClass    string
	renderer     render.Bridge
	codeRenderer highlighter.Renderer
	clipboard    *clipboard.Manager
}

// WithHistorySize sets the undo stack capacity.
func WithHistorySize(n int) Option { return func(o *editorOptions) { o.historySize = n } }

// WithTaskClass sets the class given to checklist items.
func WithTaskClass(c string) Option { return func(o *editorOptions) { o.taskClass = c } }

// WithRenderer replaces the default markup normaliser.
func WithRenderer(b render.Bridge) Option { return func(o *editorOptions) { o.renderer = b } }

// WithCodeRenderer sets the code block renderer. Without one code blocks are
// left as plain source.
func WithCodeRenderer(r highlighter.Renderer) Option {
	return func(o *editorOptions) { o.codeRenderer = r }
}

// WithClipboard sets the clipboard manager.
func WithClipboard(m *clipboard.Manager) Option { return func(o *editorOptions) { o.clipboard = m } }

// NewEditor creates an editor with an empty document.
func NewEditor(events *event.Manager, opts ...Option) *Editor {
	o := editorOptions{
		historySize: config.DefaultHistorySize,
		taskClass:   config.DefaultTaskClass,
	}
	for _, opt := range opts {
		opt(&o)
	}
	if o.renderer == nil {
		o.renderer = render.NewNormalizer()
	}
	if o.clipboard == nil {
		o.clipboard = clipboard.NewManager(false)
	}
	if events == nil {
		events = event.NewManager()
	}

	doc, _ := dom.NewDocument("")
	e := &Editor{
		doc:              doc,
		eventManager:     events,
		renderer:         o.renderer,
		codeRenderer:     o.codeRenderer,
		clipboardManager: o.clipboard,
	}
	e.historyManager = history.NewManager(e, o.historySize)
	e.commands = commands.New(e, commands.WithTaskClass(o.taskClass))
	e.findManager = find.NewManager(e)
	return e
}

// GetDocument returns the live document.
func (e *Editor) GetDocument() *dom.Document { return e.doc }

// GetRenderer returns the markup normaliser.
func (e *Editor) GetRenderer() render.Bridge { return e.renderer }

// GetCodeRenderer returns the code block renderer, or nil.
func (e *Editor) GetCodeRenderer() highlighter.Renderer { return e.codeRenderer }

// GetEventManager returns the event bus.
func (e *Editor) GetEventManager() *event.Manager { return e.eventManager }

// GetHistoryManager returns the undo/redo history.
func (e *Editor) GetHistoryManager() *history.Manager { return e.historyManager }

// GetFindManager returns the document search.
func (e *Editor) GetFindManager() *find.Manager { return e.findManager }

// GetCommands returns the formatting command machine.
func (e *Editor) GetCommands() *commands.Machine { return e.commands }

// FilePath returns the file the document was loaded from.
func (e *Editor) FilePath() string { return e.filePath }

// IsModified reports whether the document changed since it was loaded or saved.
func (e *Editor) IsModified() bool { return e.modified }

// Load replaces the document with markup and starts a fresh history whose
// baseline carries the caret at the start of the document.
func (e *Editor) Load(markup, filePath string) error {
	markup = e.renderer.Normalize(markup)
	if err := e.historyManager.Reset(markup); err != nil {
		return fmt.Errorf("failed to load document: %w", err)
	}
	e.RenderCodeBlocks()
	e.doc.Collapse(e.doc.Start())
	if e.historyManager.UndoCount() == 0 {
		// Empty markup gives no baseline; the bare caret becomes one.
		e.historyManager.RecordEdit()
	} else {
		e.historyManager.RecordBaselineMarker()
	}

	e.filePath = filePath
	e.modified = false
	logger.Infof("Editor: Loaded document '%s' (%d bytes)", filePath, len(markup))

	e.eventManager.Dispatch(event.TypeDocumentLoaded, event.DocumentLoadedData{FilePath: filePath})
	e.eventManager.Dispatch(event.TypeToolbarEnabled, event.ToolbarEnabledData{
		Commands: []string{history.CommandUndo, history.CommandRedo},
		Enabled:  false,
	})
	e.HighlightToolbar()
	return nil
}

// LoadFile reads and loads an HTML file. A missing file starts an empty
// document that will be written to path on save.
func (e *Editor) LoadFile(path string) error {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		logger.Infof("Editor: '%s' does not exist, starting a new document", path)
		return e.Load("", path)
	}
	if err != nil {
		return fmt.Errorf("failed to read '%s': %w", path, err)
	}
	return e.Load(string(data), path)
}

// Save writes the canonical markup to the document's file.
func (e *Editor) Save() error {
	if e.filePath == "" {
		return fmt.Errorf("no file name")
	}
	if err := os.WriteFile(e.filePath, []byte(e.Markup()+"\n"), 0o644); err != nil {
		return fmt.Errorf("failed to save '%s': %w", e.filePath, err)
	}
	e.modified = false
	logger.Infof("Editor: Saved '%s'", e.filePath)
	return nil
}

// Markup returns the canonical markup of the document, without render
// artefacts or the caret marker.
func (e *Editor) Markup() string {
	return e.renderer.Normalize(e.doc.Markup())
}

// Text returns the plain text of the document, one line per block.
func (e *Editor) Text() string {
	var sb strings.Builder
	dom.Walk(e.doc.Root(), func(n *html.Node) bool {
		switch {
		case dom.IsElement(n, "pre") && dom.HasClass(n, render.PreviewClass):
			return false
		case n.Type == html.TextNode:
			sb.WriteString(strings.ReplaceAll(n.Data, dom.ZWSP, ""))
		case (dom.IsBlock(n) || dom.IsElement(n, "br")) && sb.Len() > 0:
			sb.WriteByte('\n')
		}
		return true
	})
	return sb.String()
}

// RenderCodeBlocks refreshes the preview of every code block.
func (e *Editor) RenderCodeBlocks() {
	if e.codeRenderer == nil {
		return
	}
	for _, block := range dom.FindAll(e.doc.Root(), highlighter.IsCodeBlock) {
		e.codeRenderer.RenderCode(block)
	}
}

// HighlightToolbar recomputes the commands active at the caret and announces them.
func (e *Editor) HighlightToolbar() {
	e.active = e.commands.ActiveNames(e.doc)
	e.eventManager.Dispatch(event.TypeToolbarCurrent, event.ToolbarCurrentData{Active: e.active})
}

// ActiveCommands returns the commands announced by the last HighlightToolbar.
func (e *Editor) ActiveCommands() []string {
	return append([]string(nil), e.active...)
}
