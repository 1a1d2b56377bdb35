package lang

import (
	"strings"
	"sync"

	"github.com/bethropolis/inkwell/internal/logger"
)

var (
	// Global language registry
	registry struct {
		sync.RWMutex
		languages []*Language
		byAlias   map[string]*Language
	}

	// One-time initialization
	initOnce sync.Once
)

// Initialize ensures the registry is ready for use
func Initialize() {
	initOnce.Do(func() {
		registry.byAlias = make(map[string]*Language)
		logger.Debugf("Language registry initialized")
	})
}

// Register adds a language to the registry
func Register(lang *Language) {
	Initialize()

	registry.Lock()
	defer registry.Unlock()

	registry.languages = append(registry.languages, lang)

	for _, alias := range lang.Aliases {
		key := strings.ToLower(alias)
		if existing, ok := registry.byAlias[key]; ok && existing != lang {
			logger.Warnf("Alias %s already registered to %s, overriding with %s",
				key, existing.Name, lang.Name)
		}
		registry.byAlias[key] = lang
	}

	logger.Debugf("Registered language: %s with aliases: %v", lang.Name, lang.Aliases)
}

// Lookup returns the language registered under a code block info string
func Lookup(name string) *Language {
	Initialize()

	registry.RLock()
	defer registry.RUnlock()

	return registry.byAlias[strings.ToLower(strings.TrimSpace(name))]
}

// GetAll returns all registered languages
func GetAll() []*Language {
	Initialize()

	registry.RLock()
	defer registry.RUnlock()

	result := make([]*Language, len(registry.languages))
	copy(result, registry.languages)
	return result
}
