package render

import "testing"

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"canonical input", "<p>a<strong>b</strong></p>", "<p>a<strong>b</strong></p>"},
		{"aliases", "<p><b>x</b><i>y</i><strike>z</strike><del>w</del></p>", "<p><strong>x</strong><em>y</em><s>z</s><s>w</s></p>"},
		{"nested aliases", "<p><b><i>x</i></b></p>", "<p><strong><em>x</em></strong></p>"},
		{"alias inside text", "<p>one <b>bold</b> two</p>", "<p>one <strong>bold</strong> two</p>"},
		{"alias keeps attributes and marker", `<p><del class="x">a<wbr/>b</del></p>`, `<p><s class="x">a<wbr/>b</s></p>`},
		{"alias at top level", "<b>x</b><p>y</p>", "<p><strong>x</strong></p><p>y</p>"},
		{"stray inline", "hello <em>there</em><p>block</p>tail", "<p>hello <em>there</em></p><p>block</p><p>tail</p>"},
		{"whitespace between blocks", "<p>a</p>\n  <p>b</p>", "<p>a</p><p>b</p>"},
		{"empty paragraph", "<p>a</p><p></p>", "<p>a</p>"},
		{"classed empty paragraph kept", `<p class="x"></p>`, `<p class="x"></p>`},
		{"marker kept", "<p>a<wbr/>b</p>", "<p>a<wbr/>b</p>"},
		{"bare marker", "<wbr/>", "<p><wbr/></p>"},
		{
			"preview dropped",
			`<div class="code-block"><pre><code>x</code></pre><pre class="code-preview"><code>x</code></pre></div>`,
			`<div class="code-block"><pre><code>x</code></pre></div>`,
		},
	}
	n := NewNormalizer()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := n.Normalize(tt.in)
			if got != tt.want {
				t.Errorf("Normalize(%q) = %q, want %q", tt.in, got, tt.want)
			}
			if again := n.Normalize(got); again != got {
				t.Errorf("Normalize is not idempotent: %q -> %q", got, again)
			}
		})
	}
}
