package autosave

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/bethropolis/inkwell/internal/event"
	"github.com/bethropolis/inkwell/internal/plugin"
)

type fakeAPI struct {
	path     string
	modified atomic.Bool
	saves    atomic.Int32
}

func (f *fakeAPI) DocumentMarkup() string                                 { return "" }
func (f *fakeAPI) DocumentText() string                                   { return "" }
func (f *fakeAPI) GetFilePath() string                                    { return f.path }
func (f *fakeAPI) IsModified() bool                                       { return f.modified.Load() }
func (f *fakeAPI) DispatchEvent(event.Type, interface{})                  {}
func (f *fakeAPI) SubscribeEvent(event.Type, event.Handler)               {}
func (f *fakeAPI) RegisterCommand(string, plugin.CommandFunc) error       { return nil }
func (f *fakeAPI) SetStatusMessage(format string, args ...interface{})    {}
func (f *fakeAPI) SaveDocument() error {
	f.saves.Add(1)
	f.modified.Store(false)
	return nil
}

func TestSavesModifiedDocument(t *testing.T) {
	api := &fakeAPI{path: "doc.html"}
	api.modified.Store(true)
	p := New(true, 5*time.Millisecond)
	if err := p.Initialize(api); err != nil {
		t.Fatal(err)
	}
	deadline := time.Now().Add(2 * time.Second)
	for api.saves.Load() == 0 && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
	if err := p.Shutdown(); err != nil {
		t.Fatal(err)
	}
	if got := api.saves.Load(); got != 1 {
		t.Errorf("saves = %d, want 1", got)
	}
}

func TestSkipsUnnamedDocument(t *testing.T) {
	api := &fakeAPI{}
	api.modified.Store(true)
	p := New(true, time.Hour)
	p.api = api
	p.saveIfModified()
	if api.saves.Load() != 0 {
		t.Error("saved a document without a file")
	}
}

func TestDisabled(t *testing.T) {
	p := New(false, time.Millisecond)
	if err := p.Initialize(&fakeAPI{}); err != nil {
		t.Fatal(err)
	}
	if p.stopChan != nil {
		t.Error("disabled plugin started its loop")
	}
	if err := p.Shutdown(); err != nil {
		t.Fatal(err)
	}
}
