package theme

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/google/go-cmp/cmp"
)

func TestGetStyleFallsBack(t *testing.T) {
	def := tcell.StyleDefault.Foreground(tcell.ColorWhite)
	kw := tcell.StyleDefault.Foreground(tcell.ColorBlue)
	th := &Theme{Name: "t", Styles: map[string]tcell.Style{"Default": def, "keyword": kw}}

	if got := th.GetStyle("keyword.control"); got != kw {
		t.Errorf("GetStyle(keyword.control) = %v, want base keyword style", got)
	}
	if got := th.GetStyle("missing"); got != def {
		t.Errorf("GetStyle(missing) = %v, want Default", got)
	}
}

func TestOverlay(t *testing.T) {
	th := &Theme{Styles: map[string]tcell.Style{
		"strong": tcell.StyleDefault.Bold(true),
		"link":   tcell.StyleDefault.Foreground(tcell.ColorBlue).Underline(true),
	}}
	base := tcell.StyleDefault.Foreground(tcell.ColorWhite)

	got := th.Overlay(th.Overlay(base, "strong"), "link")
	fg, _, attrs := got.Decompose()
	if fg != tcell.ColorBlue {
		t.Errorf("foreground = %v, want blue", fg)
	}
	if attrs&tcell.AttrBold == 0 || attrs&tcell.AttrUnderline == 0 {
		t.Errorf("attrs = %v, want bold and underline", attrs)
	}

	// Bold carries no foreground, so the base color survives.
	fg, _, _ = th.Overlay(base, "strong").Decompose()
	if fg != tcell.ColorWhite {
		t.Errorf("strong foreground = %v, want white", fg)
	}
	if th.Overlay(base, "unknown") != base {
		t.Error("unknown style changed the base")
	}
}

func TestClassStyle(t *testing.T) {
	if name, ok := ClassStyle("x hl-keyword"); !ok || name != "keyword" {
		t.Errorf("ClassStyle = %q, %v", name, ok)
	}
	if _, ok := ClassStyle("language-go"); ok {
		t.Error("ClassStyle matched a non-highlight class")
	}
}

func TestLoadThemeFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "paper.toml")
	body := `
is_dark = false

[styles.Default]
fg = "#101010"

[styles.keyword]
bold = true

[styles.string]
fg = "green"

[styles.broken]
fg = "#12"
`
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}

	th, err := LoadThemeFromFile(path)
	if err != nil {
		t.Fatalf("LoadThemeFromFile() error = %v", err)
	}
	if th.Name != "paper" {
		t.Errorf("Name = %q, want file name", th.Name)
	}
	fg, _, attrs := th.Styles["keyword"].Decompose()
	if fg != tcell.NewHexColor(0x101010) || attrs&tcell.AttrBold == 0 {
		t.Errorf("keyword = %v %v, want inherited fg and bold", fg, attrs)
	}
	if fg, _, _ := th.Styles["string"].Decompose(); fg != tcell.ColorGreen {
		t.Errorf("string fg = %v, want green", fg)
	}
	if _, ok := th.Styles["broken"]; ok {
		t.Error("style with invalid color was kept")
	}
}

func TestManager(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "mono.toml"), []byte("name = \"Mono\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	m := NewManager(dir, "inkwell light")
	if got := m.Current().Name; got != InkwellLight.Name {
		t.Errorf("Current() = %q, want %q", got, InkwellLight.Name)
	}
	if diff := cmp.Diff([]string{"Inkwell Dark", "Inkwell Light", "Mono"}, m.ListThemes()); diff != "" {
		t.Errorf("ListThemes mismatch (-want +got):\n%s", diff)
	}
	if err := m.SetTheme("MONO"); err != nil {
		t.Fatalf("SetTheme() error = %v", err)
	}
	if err := m.SetTheme("nope"); err == nil {
		t.Error("SetTheme(nope) succeeded")
	}
	if got := m.Current().Name; got != "Mono" {
		t.Errorf("Current() = %q after failed switch, want Mono", got)
	}

	if got := NewManager("", "missing").Current().Name; got != InkwellDark.Name {
		t.Errorf("fallback theme = %q, want %q", got, InkwellDark.Name)
	}
}
