// internal/app/editor_api.go
package app

import (
	"fmt"
	"time"

	"github.com/bethropolis/inkwell/internal/event"
	"github.com/bethropolis/inkwell/internal/logger"
	"github.com/bethropolis/inkwell/internal/plugin"
)

// Ensure appEditorAPI implements the plugin.EditorAPI interface.
var _ plugin.EditorAPI = (*appEditorAPI)(nil)

// appEditorAPI is the plugin-facing view of the App. Document reads run on the
// event loop (plugins call them from event handlers and commands); GetFilePath,
// IsModified, SaveDocument and SetStatusMessage are also safe from other
// goroutines.
type appEditorAPI struct {
	app *App
}

func newEditorAPI(app *App) *appEditorAPI {
	return &appEditorAPI{app: app}
}

// --- Document Access ---

func (api *appEditorAPI) DocumentMarkup() string {
	return api.app.editor.Markup()
}

func (api *appEditorAPI) DocumentText() string {
	return api.app.editor.Text()
}

func (api *appEditorAPI) GetFilePath() string {
	api.app.state.mu.RLock()
	defer api.app.state.mu.RUnlock()
	return api.app.state.path
}

func (api *appEditorAPI) IsModified() bool {
	api.app.state.mu.RLock()
	defer api.app.state.mu.RUnlock()
	return api.app.state.modified
}

// SaveDocument hands the save to the event loop. Failures are reported in the
// status bar.
func (api *appEditorAPI) SaveDocument() error {
	if api.GetFilePath() == "" {
		return fmt.Errorf("document has no file")
	}
	api.app.post(func() {
		if err := api.app.editor.Save(); err != nil {
			logger.Errorf("API: save failed: %v", err)
			api.app.statusBar.SetTemporaryMessage("Save FAILED: %v", err)
			return
		}
		api.app.statusBar.SetTemporaryMessage("Saved to %s", api.app.editor.FilePath())
	})
	return nil
}

// --- Event Bus Interaction ---

func (api *appEditorAPI) DispatchEvent(eventType event.Type, data interface{}) {
	api.app.eventManager.Dispatch(eventType, data)
}

func (api *appEditorAPI) SubscribeEvent(eventType event.Type, handler event.Handler) {
	api.app.eventManager.Subscribe(eventType, handler)
}

// --- Command Registration ---

func (api *appEditorAPI) RegisterCommand(name string, cmdFunc plugin.CommandFunc) error {
	if api.app == nil || api.app.GetModeHandler() == nil {
		logger.Debugf("ERROR: appEditorAPI cannot register command '%s', app or modeHandler is nil", name)
		return fmt.Errorf("internal error: API cannot access command registration")
	}
	return api.app.GetModeHandler().RegisterCommand(name, cmdFunc)
}

// --- Status Bar ---

func (api *appEditorAPI) SetStatusMessage(format string, args ...interface{}) {
	api.app.statusBar.SetTemporaryMessage(format, args...)
	api.app.requestRedraw()
	// Redraw again once the message expires.
	time.AfterFunc(api.app.statusBarTimeout(), api.app.requestRedraw)
}
