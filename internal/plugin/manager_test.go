package plugin

import (
	"errors"
	"testing"

	"github.com/bethropolis/inkwell/internal/event"
)

type stubPlugin struct {
	name     string
	initErr  error
	started  bool
	shutdown bool
}

func (p *stubPlugin) Name() string { return p.name }

func (p *stubPlugin) Initialize(api EditorAPI) error {
	if p.initErr != nil {
		return p.initErr
	}
	p.started = true
	return nil
}

func (p *stubPlugin) Shutdown() error {
	p.shutdown = true
	return nil
}

type nopAPI struct{}

func (nopAPI) DocumentMarkup() string                              { return "" }
func (nopAPI) DocumentText() string                                { return "" }
func (nopAPI) GetFilePath() string                                 { return "" }
func (nopAPI) IsModified() bool                                    { return false }
func (nopAPI) SaveDocument() error                                 { return nil }
func (nopAPI) DispatchEvent(event.Type, interface{})               {}
func (nopAPI) SubscribeEvent(event.Type, event.Handler)            {}
func (nopAPI) RegisterCommand(string, CommandFunc) error           { return nil }
func (nopAPI) SetStatusMessage(format string, args ...interface{}) {}

func TestRegister(t *testing.T) {
	m := NewManager()
	if err := m.Register(&stubPlugin{name: "a"}); err != nil {
		t.Fatal(err)
	}
	if err := m.Register(&stubPlugin{name: "a"}); err == nil {
		t.Error("duplicate name accepted")
	}
	if err := m.Register(&stubPlugin{}); err == nil {
		t.Error("empty name accepted")
	}
	if _, ok := m.GetPlugin("a"); !ok {
		t.Error("GetPlugin(a) not found")
	}
}

func TestLifecycle(t *testing.T) {
	m := NewManager()
	good := &stubPlugin{name: "good"}
	bad := &stubPlugin{name: "bad", initErr: errors.New("boom")}
	for _, p := range []*stubPlugin{good, bad} {
		if err := m.Register(p); err != nil {
			t.Fatal(err)
		}
	}
	if n := m.InitializePlugins(nopAPI{}); n != 1 {
		t.Errorf("InitializePlugins = %d, want 1", n)
	}
	if !good.started || bad.started {
		t.Errorf("started: good %v bad %v", good.started, bad.started)
	}
	m.ShutdownPlugins()
	if !good.shutdown || !bad.shutdown {
		t.Error("ShutdownPlugins skipped a plugin")
	}
}
