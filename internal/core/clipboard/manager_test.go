package clipboard

import (
	"errors"
	"testing"
)

type fakeSystem struct {
	text     string
	writeErr error
	readErr  error
}

func (f *fakeSystem) WriteAll(text string) error {
	if f.writeErr != nil {
		return f.writeErr
	}
	f.text = text
	return nil
}

func (f *fakeSystem) ReadAll() (string, error) { return f.text, f.readErr }

func TestRegisterOnly(t *testing.T) {
	m := NewManager(false)
	if err := m.Yank("abc"); err != nil {
		t.Fatal(err)
	}
	if got := m.Content(); got != "abc" {
		t.Errorf("Content() = %q, want abc", got)
	}
}

func TestSystemMirror(t *testing.T) {
	sys := &fakeSystem{}
	m := NewManagerWithSystem(sys)
	if err := m.Yank("abc"); err != nil {
		t.Fatal(err)
	}
	if sys.text != "abc" {
		t.Errorf("system clipboard = %q, want abc", sys.text)
	}
	sys.text = "from elsewhere"
	if got := m.Content(); got != "from elsewhere" {
		t.Errorf("Content() = %q, want the system clipboard", got)
	}
}

func TestSystemFailures(t *testing.T) {
	sys := &fakeSystem{writeErr: errors.New("no display"), readErr: errors.New("no display")}
	m := NewManagerWithSystem(sys)
	if err := m.Yank("abc"); err == nil {
		t.Error("Yank() error = nil, want the system failure")
	}
	if m.Register() != "abc" {
		t.Errorf("register = %q, want abc", m.Register())
	}
	if got := m.Content(); got != "abc" {
		t.Errorf("Content() = %q, want register fallback", got)
	}
}
