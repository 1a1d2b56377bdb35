// Package clipboard holds the editor's yank register, mirrored to the system
// clipboard when one is available.
package clipboard

import (
	"fmt"

	"github.com/atotto/clipboard"

	"github.com/bethropolis/inkwell/internal/logger"
)

// System is the system clipboard backend.
type System interface {
	WriteAll(text string) error
	ReadAll() (string, error)
}

type atottoSystem struct{}

func (atottoSystem) WriteAll(text string) error { return clipboard.WriteAll(text) }
func (atottoSystem) ReadAll() (string, error)   { return clipboard.ReadAll() }

// Manager handles yank and paste.
type Manager struct {
	register string
	system   System
}

// NewManager creates a clipboard manager. With useSystem set and a supported
// platform, yanks also go to the system clipboard.
func NewManager(useSystem bool) *Manager {
	m := &Manager{}
	if useSystem && !clipboard.Unsupported {
		m.system = atottoSystem{}
	}
	return m
}

// NewManagerWithSystem creates a manager mirroring to sys.
func NewManagerWithSystem(sys System) *Manager {
	return &Manager{system: sys}
}

// Yank stores text in the register and the system clipboard. The register is
// always updated; the error reports a failed system write.
func (m *Manager) Yank(text string) error {
	m.register = text
	logger.Debugf("ClipboardManager: Yanked %d bytes", len(text))
	if m.system == nil {
		return nil
	}
	if err := m.system.WriteAll(text); err != nil {
		return fmt.Errorf("system clipboard write failed: %w", err)
	}
	return nil
}

// Content returns what a paste would insert: the system clipboard when it can be
// read and is not empty, the register otherwise.
func (m *Manager) Content() string {
	if m.system != nil {
		text, err := m.system.ReadAll()
		if err == nil && text != "" {
			return text
		}
		if err != nil {
			logger.WarnTagf("clipboard", "System clipboard read failed, using register: %v", err)
		}
	}
	return m.register
}

// Register returns the internal register.
func (m *Manager) Register() string { return m.register }
