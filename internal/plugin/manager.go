package plugin

import (
	"fmt"
	"sort"
	"sync"

	"github.com/bethropolis/inkwell/internal/logger"
)

// Manager owns the registered plugins and drives their lifecycle.
type Manager struct {
	mu      sync.RWMutex
	plugins map[string]Plugin
}

// NewManager creates an empty plugin manager.
func NewManager() *Manager {
	return &Manager{
		plugins: make(map[string]Plugin),
	}
}

// Register adds a plugin. It must be called before InitializePlugins.
func (m *Manager) Register(p Plugin) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	name := p.Name()
	if name == "" {
		return fmt.Errorf("plugin registration failed: plugin name cannot be empty")
	}
	if _, exists := m.plugins[name]; exists {
		return fmt.Errorf("plugin registration failed: plugin named '%s' already registered", name)
	}

	m.plugins[name] = p
	logger.Debugf("Plugin Manager: Registered plugin '%s'", name)
	return nil
}

// sorted returns the plugins in name order so startup is reproducible.
func (m *Manager) sorted() []Plugin {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]Plugin, 0, len(m.plugins))
	for _, p := range m.plugins {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name() < out[j].Name() })
	return out
}

// InitializePlugins calls Initialize on every plugin. A failing plugin is logged
// and skipped; the rest still start. It returns the number of plugins that
// initialized successfully.
func (m *Manager) InitializePlugins(api EditorAPI) int {
	plugins := m.sorted()
	logger.Infof("Plugin Manager: Initializing %d plugins...", len(plugins))
	ok := 0
	for _, p := range plugins {
		if err := p.Initialize(api); err != nil {
			logger.Errorf("Plugin Manager: ERROR initializing plugin '%s': %v", p.Name(), err)
			continue
		}
		ok++
		logger.Debugf("Plugin Manager: Initialized plugin '%s'", p.Name())
	}
	return ok
}

// ShutdownPlugins calls Shutdown on every plugin.
func (m *Manager) ShutdownPlugins() {
	plugins := m.sorted()
	logger.Infof("Plugin Manager: Shutting down %d plugins...", len(plugins))
	for _, p := range plugins {
		if err := p.Shutdown(); err != nil {
			logger.Errorf("Plugin Manager: ERROR shutting down plugin '%s': %v", p.Name(), err)
		}
	}
}

// GetPlugin returns a registered plugin by name.
func (m *Manager) GetPlugin(name string) (Plugin, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	p, exists := m.plugins[name]
	return p, exists
}
