package logger

import (
	"bytes"
	"context"
	"log/slog"
	"runtime"
	"strings"
	"testing"
	"time"
)

func newTestHandler(cfg Config) (*filteringHandler, *bytes.Buffer) {
	cfg.process()
	var buf bytes.Buffer
	base := slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})
	return newFilteringHandler(base, &cfg), &buf
}

func record(msg, tag string) slog.Record {
	var pcs [1]uintptr
	runtime.Callers(1, pcs[:])
	r := slog.NewRecord(time.Now(), slog.LevelInfo, msg, pcs[0])
	if tag != "" {
		r.AddAttrs(slog.String(tagKey, tag))
	}
	return r
}

func TestFilteringHandlerTags(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
		tag  string
		want bool
	}{
		{"no filters", Config{}, "history", true},
		{"disabled tag", Config{DisabledTags: []string{"History"}}, "history", false},
		{"enabled tag", Config{EnabledTags: []string{"history"}}, "history", true},
		{"other tag not enabled", Config{EnabledTags: []string{"commands"}}, "history", false},
		{"untagged with allow-list", Config{EnabledTags: []string{"commands"}}, "", false},
		{"disabled beats enabled", Config{EnabledTags: []string{"history"}, DisabledTags: []string{"history"}}, "history", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, buf := newTestHandler(tt.cfg)
			if err := h.Handle(context.Background(), record("hello", tt.tag)); err != nil {
				t.Fatalf("Handle() error = %v", err)
			}
			if got := strings.Contains(buf.String(), "hello"); got != tt.want {
				t.Errorf("record written = %v, want %v (output %q)", got, tt.want, buf.String())
			}
		})
	}
}

func TestFilteringHandlerPackagesAndFiles(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
		want bool
	}{
		{"package disabled", Config{DisabledPackages: []string{"logger"}}, false},
		{"package enabled", Config{EnabledPackages: []string{"logger"}}, true},
		{"package not enabled", Config{EnabledPackages: []string{"history"}}, false},
		{"file disabled", Config{DisabledFiles: []string{"handler_test.go"}}, false},
		{"file enabled", Config{EnabledFiles: []string{"HANDLER_TEST.GO"}}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, buf := newTestHandler(tt.cfg)
			_ = h.Handle(context.Background(), record("payload", ""))
			if got := strings.Contains(buf.String(), "payload"); got != tt.want {
				t.Errorf("record written = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestParseLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"INFO":    slog.LevelInfo,
		"warning": slog.LevelWarn,
		"err":     slog.LevelError,
		"bogus":   slog.LevelInfo,
	}
	for name, want := range tests {
		if got := ParseLevel(name); got != want {
			t.Errorf("ParseLevel(%q) = %v, want %v", name, got, want)
		}
	}
}
