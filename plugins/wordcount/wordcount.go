// plugins/wordcount/wordcount.go
package wordcount

import (
	"fmt"
	"strings"

	"github.com/bethropolis/inkwell/internal/dom"
	"github.com/bethropolis/inkwell/internal/event"
	"github.com/bethropolis/inkwell/internal/plugin"
)

// Ensure WordCount implements plugin.Plugin
var _ plugin.Plugin = (*WordCount)(nil)

// WordCount keeps a live word count of the document in the status bar.
type WordCount struct {
	api   plugin.EditorAPI
	words int
}

// New creates a new instance of the WordCount plugin.
func New() *WordCount {
	return &WordCount{}
}

// Name returns the unique name of the plugin.
func (p *WordCount) Name() string {
	return "wordcount"
}

// Initialize registers the :wc command and recounts after every mutation.
func (p *WordCount) Initialize(api plugin.EditorAPI) error {
	p.api = api

	if err := api.RegisterCommand("wc", p.executeWordCount); err != nil {
		return fmt.Errorf("failed to register 'wc' command: %w", err)
	}
	api.SubscribeEvent(event.TypeAfterMutation, p.handleMutation)
	api.SubscribeEvent(event.TypeDocumentLoaded, p.handleMutation)
	p.words = Count(api.DocumentText())
	return nil
}

// Shutdown performs cleanup (nothing needed for this simple plugin).
func (p *WordCount) Shutdown() error {
	return nil
}

// Words returns the last computed count.
func (p *WordCount) Words() int { return p.words }

func (p *WordCount) handleMutation(e event.Event) bool {
	if data, ok := e.Data.(event.AfterMutationData); ok && !data.EnableReflow {
		return false
	}
	p.words = Count(p.api.DocumentText())
	return false
}

// executeWordCount is the function called when the :wc command runs.
func (p *WordCount) executeWordCount(args []string) error {
	if p.api == nil {
		return fmt.Errorf("wordcount plugin not initialized with API")
	}
	text := p.api.DocumentText()
	p.words = Count(text)
	p.api.SetStatusMessage("Words: %d, Characters: %d", p.words, len([]rune(strings.ReplaceAll(text, dom.ZWSP, ""))))
	return nil
}

// Count counts whitespace-separated words, ignoring zero-width placeholders.
func Count(text string) int {
	return len(strings.Fields(strings.ReplaceAll(text, dom.ZWSP, "")))
}
