package autosave

import (
	"sync"
	"time"

	"github.com/bethropolis/inkwell/internal/logger"
	"github.com/bethropolis/inkwell/internal/plugin"
)

// Ensure AutoSave implements plugin.Plugin
var _ plugin.Plugin = (*AutoSave)(nil)

// AutoSave periodically writes a modified document back to its file.
type AutoSave struct {
	api plugin.EditorAPI

	enabled  bool
	interval time.Duration

	// Runtime state
	stopChan chan struct{}  // Signals the saver goroutine to stop
	wg       sync.WaitGroup // Waits for the goroutine to finish
}

// New creates the plugin. A disabled plugin registers but never saves.
func New(enabled bool, interval time.Duration) *AutoSave {
	return &AutoSave{enabled: enabled, interval: interval}
}

// Name returns the unique name of the plugin.
func (p *AutoSave) Name() string {
	return "autosave"
}

// Initialize starts the saver loop if enabled.
func (p *AutoSave) Initialize(api plugin.EditorAPI) error {
	p.api = api
	logger.Infof("%s initialized. Enabled: %v, Interval: %v", p.Name(), p.enabled, p.interval)

	if p.enabled && p.interval > 0 {
		p.stopChan = make(chan struct{})
		p.wg.Add(1)
		go p.saverLoop(p.interval)
		logger.Debugf("%s: Saver goroutine started.", p.Name())
	}
	return nil
}

// Shutdown signals the saver goroutine to stop and waits for it.
func (p *AutoSave) Shutdown() error {
	if p.stopChan != nil {
		logger.Debugf("%s: Shutting down...", p.Name())
		close(p.stopChan)
		p.wg.Wait()
		p.stopChan = nil
		logger.Debugf("%s: Saver goroutine stopped.", p.Name())
	}
	return nil
}

func (p *AutoSave) saverLoop(interval time.Duration) {
	defer p.wg.Done()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			p.saveIfModified()
		case <-p.stopChan:
			logger.Debugf("%s: Received stop signal, exiting saver loop.", p.Name())
			return
		}
	}
}

// saveIfModified saves the document when it changed and has a file to go to.
// The API is expected to hand the save over to the editor's own goroutine.
func (p *AutoSave) saveIfModified() {
	if !p.api.IsModified() {
		return
	}
	filePath := p.api.GetFilePath()
	if filePath == "" {
		logger.Debugf("%s: Document is modified but has no file, skipping auto-save.", p.Name())
		return
	}
	logger.Infof("%s: Auto-saving %s", p.Name(), filePath)
	if err := p.api.SaveDocument(); err != nil {
		logger.Errorf("%s: Auto-save failed for '%s': %v", p.Name(), filePath, err)
	}
}
