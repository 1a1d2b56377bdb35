// internal/config/config.go
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/bethropolis/inkwell/internal/logger"
)

// Config holds the application's combined configuration.
type Config struct {
	Logger   logger.Config  `toml:"logger"`
	History  HistoryConfig  `toml:"history"`
	Editor   EditorConfig   `toml:"editor"`
	Autosave AutosaveConfig `toml:"autosave"`
}

// HistoryConfig holds undo/redo settings.
type HistoryConfig struct {
	StackSize int `toml:"stack_size"`
}

// EditorConfig holds editing-surface settings.
type EditorConfig struct {
	DebounceMS      int    `toml:"debounce_ms"`
	SystemClipboard bool   `toml:"system_clipboard"`
	HighlightCode   bool   `toml:"highlight_code"`
	TaskClass       string `toml:"task_class"`
	Theme           string `toml:"theme"`
	ThemesDir       string `toml:"themes_dir"`
}

// AutosaveConfig controls the autosave plugin.
type AutosaveConfig struct {
	Enabled  bool   `toml:"enabled"`
	Interval string `toml:"interval"`
}

// Period returns the parsed autosave interval, or DefaultAutosaveInterval when
// the value is missing or invalid.
func (a AutosaveConfig) Period() time.Duration {
	d, err := time.ParseDuration(a.Interval)
	if err != nil || d <= 0 {
		return DefaultAutosaveInterval
	}
	return d
}

// Debounce returns the record-edit debounce interval.
func (e EditorConfig) Debounce() time.Duration {
	return time.Duration(e.DebounceMS) * time.Millisecond
}

// NewDefaultConfig creates a Config struct with default values.
func NewDefaultConfig() *Config {
	return &Config{
		Logger: logger.Config{
			LogLevel:    "info",
			LogFilePath: "",
		},
		History: HistoryConfig{
			StackSize: DefaultHistorySize,
		},
		Editor: EditorConfig{
			DebounceMS:      int(DefaultDebounce / time.Millisecond),
			SystemClipboard: SystemClipboard,
			HighlightCode:   HighlightCode,
			TaskClass:       DefaultTaskClass,
			Theme:           DefaultTheme,
		},
		Autosave: AutosaveConfig{
			Enabled:  false,
			Interval: DefaultAutosaveInterval.String(),
		},
	}
}

// loadFromFile decodes a TOML file on top of cfg. A missing file is not an error.
func loadFromFile(filePath string, cfg *Config) (toml.MetaData, error) {
	_, err := os.Stat(filePath)
	if os.IsNotExist(err) {
		return toml.MetaData{}, nil
	}
	if err != nil {
		return toml.MetaData{}, fmt.Errorf("error checking config file '%s': %w", filePath, err)
	}
	metadata, err := toml.DecodeFile(filePath, cfg)
	if err != nil {
		return metadata, fmt.Errorf("failed to parse config file '%s': %w", filePath, err)
	}
	return metadata, nil
}

// validate checks config values and resets invalid ones to defaults.
func (c *Config) validate() {
	defaults := NewDefaultConfig()

	if c.History.StackSize < 2 {
		// Entry zero is the baseline, so fewer than two entries can never undo.
		c.History.StackSize = defaults.History.StackSize
	}
	if c.Editor.DebounceMS < 0 {
		c.Editor.DebounceMS = defaults.Editor.DebounceMS
	}
	if c.Editor.TaskClass == "" {
		c.Editor.TaskClass = defaults.Editor.TaskClass
	}
	if d, err := time.ParseDuration(c.Autosave.Interval); err != nil || d <= 0 {
		c.Autosave.Interval = defaults.Autosave.Interval
	}
	if c.Editor.Theme == "" {
		c.Editor.Theme = defaults.Editor.Theme
	}
	if c.Logger.LogLevel == "" {
		c.Logger.LogLevel = defaults.Logger.LogLevel
	}
}

// DefaultPath returns ~/.config/inkwell/config.toml, or "" when the user config dir is unknown.
func DefaultPath() string {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(configDir, AppName, DefaultConfigFileName)
}

// DefaultThemesDir returns ~/.config/inkwell/themes, or "" when the user config dir is unknown.
func DefaultThemesDir() string {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(configDir, AppName, ThemesDirName)
}

// ThemesDirectory returns the configured themes directory or DefaultThemesDir.
func (e EditorConfig) ThemesDirectory() string {
	if e.ThemesDir != "" {
		return e.ThemesDir
	}
	return DefaultThemesDir()
}

// Load builds the effective configuration: defaults, then the TOML file, then flag
// overrides, then validation. An empty path falls back to DefaultPath. The returned
// config is always usable; the error reports a file that exists but could not be read.
// Unknown keys are returned so the caller can log them once the logger is up.
func Load(configFilePath string, flags *Flags) (*Config, []string, error) {
	cfg := NewDefaultConfig()

	path := configFilePath
	if path == "" {
		path = DefaultPath()
	}

	var undecoded []string
	var loadErr error
	if path != "" {
		meta, err := loadFromFile(path, cfg)
		if err != nil {
			loadErr = err
			cfg = NewDefaultConfig()
		} else {
			for _, key := range meta.Undecoded() {
				undecoded = append(undecoded, key.String())
			}
		}
	}

	if flags != nil {
		flags.ApplyOverrides(cfg)
	}

	cfg.validate()
	return cfg, undecoded, loadErr
}
