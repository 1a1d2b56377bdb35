package app

import (
	"fmt"

	"github.com/bethropolis/inkwell/internal/config"
	"github.com/bethropolis/inkwell/internal/logger"
	"github.com/bethropolis/inkwell/internal/plugin"
	"github.com/bethropolis/inkwell/plugins/autosave"
	"github.com/bethropolis/inkwell/plugins/wordcount"
)

// registerPlugins registers the built-in plugins with the manager. Adding a
// plugin means adding its constructor here.
func registerPlugins(pm *plugin.Manager, cfg *config.Config) error {
	if pm == nil {
		return fmt.Errorf("plugin manager is nil")
	}

	plugins := []plugin.Plugin{
		wordcount.New(),
		autosave.New(cfg.Autosave.Enabled, cfg.Autosave.Period()),
	}

	var finalErr error
	for _, p := range plugins {
		logger.Debugf("Registering plugin: %s", p.Name())
		if err := pm.Register(p); err != nil {
			wrappedErr := fmt.Errorf("failed to register plugin '%s': %w", p.Name(), err)
			logger.Errorf("%v", wrappedErr)
			if finalErr == nil {
				finalErr = wrappedErr
			}
		}
	}
	return finalErr
}
