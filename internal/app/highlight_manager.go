package app

import (
	"sync"
	"time"

	"github.com/bethropolis/inkwell/internal/core"
	"github.com/bethropolis/inkwell/internal/logger"
)

const highlightDebounceDuration = 65 * time.Millisecond

// HighlightingManager refreshes code block previews once typing pauses.
// The refresh itself is posted to the event loop, which owns the document.
type HighlightingManager struct {
	editor *core.Editor
	post   func(func())

	mu      sync.Mutex // Protects timer and pending
	timer   *time.Timer
	pending int // edits since the last refresh
	stopped bool
}

// NewHighlightingManager creates a manager.
func NewHighlightingManager(editor *core.Editor, post func(func())) *HighlightingManager {
	return &HighlightingManager{editor: editor, post: post}
}

// AccumulateEdit notes an edit and restarts the debounce timer. Editors without
// a code renderer have nothing to refresh.
func (hm *HighlightingManager) AccumulateEdit() {
	if hm.editor.GetCodeRenderer() == nil {
		return
	}
	hm.mu.Lock()
	defer hm.mu.Unlock()
	if hm.stopped {
		return
	}

	hm.pending++
	if hm.timer != nil {
		hm.timer.Reset(highlightDebounceDuration)
		logger.DebugTagf("highlight", "debounce timer reset, %d pending edits", hm.pending)
		return
	}
	hm.timer = time.AfterFunc(highlightDebounceDuration, hm.runHighlightUpdate)
}

func (hm *HighlightingManager) runHighlightUpdate() {
	hm.mu.Lock()
	hm.timer = nil
	edits := hm.pending
	hm.pending = 0
	stopped := hm.stopped
	hm.mu.Unlock()

	if stopped || edits == 0 {
		return
	}
	logger.DebugTagf("highlight", "refreshing code previews after %d edits", edits)
	hm.post(hm.editor.RenderCodeBlocks)
}

// Pending reports whether a refresh is scheduled.
func (hm *HighlightingManager) Pending() bool {
	hm.mu.Lock()
	defer hm.mu.Unlock()
	return hm.timer != nil
}

// Shutdown cancels any pending refresh.
func (hm *HighlightingManager) Shutdown() {
	hm.mu.Lock()
	defer hm.mu.Unlock()
	hm.stopped = true
	if hm.timer != nil {
		hm.timer.Stop()
		hm.timer = nil
	}
}
