package highlighter

import (
	"strings"
	"testing"

	"github.com/bethropolis/inkwell/internal/dom"
	"github.com/bethropolis/inkwell/internal/highlighter/lang"
)

func newBlock(t *testing.T, language, source string) *dom.Document {
	t.Helper()
	block, code := NewCodeBlock(language)
	code.AppendChild(dom.Text(source))
	d, err := dom.NewDocument("")
	if err != nil {
		t.Fatal(err)
	}
	d.Root().AppendChild(block)
	return d
}

func TestRenderCodeGo(t *testing.T) {
	d := newBlock(t, "go", "package main\n\nfunc main() {}\n")
	r := NewCodeRenderer()
	if n := r.RenderAll(d.Root()); n != 1 {
		t.Fatalf("RenderAll = %d, want 1", n)
	}
	markup := d.Markup()
	for _, want := range []string{
		`<pre class="code-preview">`,
		`<span class="hl-keyword">package</span>`,
		`<span class="hl-keyword">func</span>`,
		`<span class="hl-function">main</span>`,
	} {
		if !strings.Contains(markup, want) {
			t.Errorf("markup missing %q:\n%s", want, markup)
		}
	}
}

func TestRenderCodeReplacesPreview(t *testing.T) {
	d := newBlock(t, "go", "var x = 1\n")
	r := NewCodeRenderer()
	r.RenderAll(d.Root())
	r.RenderAll(d.Root())
	if got := strings.Count(d.Markup(), "code-preview"); got != 1 {
		t.Errorf("want exactly one preview, got %d", got)
	}
}

func TestRenderCodeUnknownLanguage(t *testing.T) {
	d := newBlock(t, "cobol", "DISPLAY 'HI'.")
	NewCodeRenderer().RenderAll(d.Root())
	block := d.Root().FirstChild
	preview := block.LastChild
	if got := dom.TextContent(preview); got != "DISPLAY 'HI'." {
		t.Errorf("plain preview text = %q", got)
	}
	if strings.Contains(dom.OuterHTML(preview), "<span") {
		t.Error("unknown language should not produce spans")
	}
}

func TestLookupAliases(t *testing.T) {
	RegisterLanguages()
	for alias, name := range map[string]string{"go": "Go", "Golang": "Go", "py": "Python", "js": "JavaScript", "rs": "Rust", "json": "JSON"} {
		l := lang.Lookup(alias)
		if l == nil || l.Name != name {
			t.Errorf("Lookup(%q) = %v, want %s", alias, l, name)
		}
	}
	if lang.Lookup("cobol") != nil {
		t.Error("unknown alias should not resolve")
	}
}

func TestLanguageFromClass(t *testing.T) {
	_, code := NewCodeBlock("python")
	if got := Language(code); got != "python" {
		t.Errorf("Language = %q", got)
	}
	_, bare := NewCodeBlock("")
	if got := Language(bare); got != "" {
		t.Errorf("Language of bare block = %q", got)
	}
}
