package config

import (
	"flag"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/bethropolis/inkwell/internal/logger"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadDefaultsWhenFileMissing(t *testing.T) {
	cfg, undecoded, err := Load(filepath.Join(t.TempDir(), "missing.toml"), nil)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(undecoded) != 0 {
		t.Errorf("undecoded = %v, want none", undecoded)
	}
	if diff := cmp.Diff(NewDefaultConfig(), cfg, cmpopts.IgnoreUnexported(logger.Config{})); diff != "" {
		t.Errorf("config mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadFromFile(t *testing.T) {
	path := writeConfig(t, `
[logger]
level = "debug"
disabled_tags = ["event"]

[history]
stack_size = 20

[editor]
debounce_ms = 250
task_class = "todo"
colour = "blue"

[autosave]
enabled = true
interval = "30s"
`)
	cfg, undecoded, err := Load(path, nil)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Logger.LogLevel != "debug" {
		t.Errorf("LogLevel = %q, want debug", cfg.Logger.LogLevel)
	}
	if diff := cmp.Diff([]string{"event"}, cfg.Logger.DisabledTags); diff != "" {
		t.Errorf("DisabledTags mismatch (-want +got):\n%s", diff)
	}
	if cfg.History.StackSize != 20 {
		t.Errorf("StackSize = %d, want 20", cfg.History.StackSize)
	}
	if cfg.Editor.Debounce().Milliseconds() != 250 {
		t.Errorf("Debounce = %v, want 250ms", cfg.Editor.Debounce())
	}
	if cfg.Editor.TaskClass != "todo" {
		t.Errorf("TaskClass = %q, want todo", cfg.Editor.TaskClass)
	}
	if !cfg.Autosave.Enabled || cfg.Autosave.Period() != 30*time.Second {
		t.Errorf("Autosave = %+v, want enabled every 30s", cfg.Autosave)
	}
	if diff := cmp.Diff([]string{"editor.colour"}, undecoded); diff != "" {
		t.Errorf("undecoded mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadInvalidValuesResetToDefaults(t *testing.T) {
	path := writeConfig(t, `
[history]
stack_size = 1

[editor]
debounce_ms = -5
task_class = ""

[autosave]
interval = "soon"
`)
	cfg, _, err := Load(path, nil)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.History.StackSize != DefaultHistorySize {
		t.Errorf("StackSize = %d, want %d", cfg.History.StackSize, DefaultHistorySize)
	}
	if cfg.Editor.Debounce() != DefaultDebounce {
		t.Errorf("Debounce = %v, want %v", cfg.Editor.Debounce(), DefaultDebounce)
	}
	if cfg.Editor.TaskClass != DefaultTaskClass {
		t.Errorf("TaskClass = %q, want %q", cfg.Editor.TaskClass, DefaultTaskClass)
	}
	if cfg.Autosave.Period() != DefaultAutosaveInterval {
		t.Errorf("Autosave period = %v, want %v", cfg.Autosave.Period(), DefaultAutosaveInterval)
	}
}

func TestLoadMalformedFile(t *testing.T) {
	path := writeConfig(t, "[history\nstack_size = ")
	cfg, _, err := Load(path, nil)
	if err == nil {
		t.Fatal("Load() error = nil, want parse error")
	}
	if cfg == nil || cfg.History.StackSize != DefaultHistorySize {
		t.Errorf("Load() should still return defaults, got %+v", cfg)
	}
}

func TestFlagOverrides(t *testing.T) {
	path := writeConfig(t, "[history]\nstack_size = 30\n")
	fs := flag.NewFlagSet("inkwell", flag.ContinueOnError)
	flags := NewFlags(fs)
	rest, err := flags.Parse([]string{"-history", "7", "-loglevel", "warn", "-log-tags", "history, commands", "doc.html"})
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if diff := cmp.Diff([]string{"doc.html"}, rest); diff != "" {
		t.Errorf("args mismatch (-want +got):\n%s", diff)
	}

	cfg, _, err := Load(path, flags)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.History.StackSize != 7 {
		t.Errorf("StackSize = %d, want 7", cfg.History.StackSize)
	}
	if cfg.Logger.LogLevel != "warn" {
		t.Errorf("LogLevel = %q, want warn", cfg.Logger.LogLevel)
	}
	if diff := cmp.Diff([]string{"history", "commands"}, cfg.Logger.EnabledTags); diff != "" {
		t.Errorf("EnabledTags mismatch (-want +got):\n%s", diff)
	}
}
