package diff

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/sergi/go-diff/diffmatchpatch"
)

var pairs = []struct {
	name     string
	from, to string
}{
	{"append", "<p>hello</p>", "<p>hello world</p>"},
	{"delete", "<p>hello world</p>", "<p>world</p>"},
	{"markup", "<p>a<wbr/>b</p>", "<p><strong>a</strong>b<wbr/></p>"},
	{"escapes", "<p>1 + 1 = 2 %d</p>", "<p>1+1 = 2? 100%\n&amp; #x é</p>"},
	{"from empty", "", "<p>x</p>"},
	{"to empty", "<ul><li>a</li></ul>", ""},
	{"several hunks", "<p>alpha</p><p>beta</p><p>gamma</p><p>delta</p><p>epsilon</p>", "<p>ALPHA</p><p>beta</p><p>gamma</p><p>delta</p><p>EPSILON</p>"},
}

func TestMakeApply(t *testing.T) {
	d := New()
	for _, tt := range pairs {
		t.Run(tt.name, func(t *testing.T) {
			patches := d.Make(tt.from, tt.to)
			got, ok := d.Apply(patches, tt.from)
			if got != tt.to {
				t.Errorf("Apply = %q, want %q", got, tt.to)
			}
			for i, applied := range ok {
				if !applied {
					t.Errorf("patch %d not applied", i)
				}
			}
		})
	}
}

func TestReverseIsInverse(t *testing.T) {
	d := New()
	for _, tt := range pairs {
		t.Run(tt.name, func(t *testing.T) {
			patches := d.Make(tt.from, tt.to)
			back, _ := d.Apply(Reverse(patches), tt.to)
			if back != tt.from {
				t.Errorf("reverse apply = %q, want %q", back, tt.from)
			}
			again, _ := d.Apply(Reverse(Reverse(patches)), tt.from)
			if again != tt.to {
				t.Errorf("double reverse apply = %q, want %q", again, tt.to)
			}
		})
	}
}

func TestReverseDoesNotMutate(t *testing.T) {
	d := New()
	patches := d.Make("<p>a</p>", "<p>ab</p>")
	before := Copy(patches)
	_ = Reverse(patches)
	if diff := cmp.Diff(before, patches); diff != "" {
		t.Errorf("Reverse mutated its input (-before +after):\n%s", diff)
	}
}

func TestEqualTextsGiveNoPatches(t *testing.T) {
	d := New()
	if patches := d.Make("<p>same</p>", "<p>same</p>"); len(patches) != 0 {
		t.Errorf("Make on equal texts = %v, want none", patches)
	}
	if got, _ := d.Apply(nil, "x"); got != "x" {
		t.Errorf("Apply(nil) = %q", got)
	}
}

func TestTextFormMatchesLibrary(t *testing.T) {
	dmp := diffmatchpatch.New()
	for _, tt := range pairs {
		lib := dmp.PatchToText(dmp.PatchMake(tt.from, dmp.DiffMain(tt.from, tt.to, true)))
		if got := Format(New().Make(tt.from, tt.to)); got != lib {
			t.Errorf("%s: Format = %q, library = %q", tt.name, got, lib)
		}
		parsed, err := Parse(lib)
		if err != nil {
			t.Fatalf("%s: Parse failed: %v", tt.name, err)
		}
		if diff := cmp.Diff(New().Make(tt.from, tt.to), parsed); diff != "" {
			t.Errorf("%s: Parse mismatch (-want +got):\n%s", tt.name, diff)
		}
	}
}

func TestParseErrors(t *testing.T) {
	if _, err := Parse("not a header\n"); err == nil {
		t.Error("expected an error for a bad header")
	}
	if _, err := Parse("@@ -1 +1 @@\n*x\n"); err == nil {
		t.Error("expected an error for a bad mode")
	}
}

func TestRewriteDiffText(t *testing.T) {
	d := New()
	patches := d.Make("<p>hi</p>", "")
	if len(patches) != 1 || len(patches[0].Diffs) != 1 || patches[0].Diffs[0].Type != Delete {
		t.Fatalf("unexpected patches %+v", patches)
	}
	patches[0].Diffs[0].Text = "<p>hi<wbr/></p>"
	patches[0].Length1 = len(patches[0].Diffs[0].Text)
	got, _ := d.Apply(Reverse(patches), "")
	if got != "<p>hi<wbr/></p>" {
		t.Errorf("applying rewritten baseline = %q", got)
	}
}

func TestBaselineIsOneHunk(t *testing.T) {
	d := New()
	long := ""
	for i := 0; i < 40; i++ {
		long += "<p>paragraph with some words</p>"
	}
	patches := d.Make(long, "")
	if len(patches) != 1 {
		t.Fatalf("Make(text, \"\") gave %d patches, want 1", len(patches))
	}
	p := patches[0]
	if len(p.Diffs) != 1 || p.Diffs[0].Type != Delete || p.Diffs[0].Text != long {
		t.Errorf("baseline diffs = %+v, want a single deletion of the text", p.Diffs)
	}
	if p.Start1 != 0 || p.Length1 != len(long) || p.Length2 != 0 {
		t.Errorf("baseline coords = %d,%d %d,%d", p.Start1, p.Length1, p.Start2, p.Length2)
	}
}

func TestUnreadablePatchesDropped(t *testing.T) {
	if got := fromText("@@ -1 +1 @@\n*x\n"); got != nil {
		t.Errorf("fromText(bad) = %+v, want nil", got)
	}
	d := New()
	want := d.Make("<p>a</p>", "<p>b</p>")
	if got := fromText(Format(want)); !cmp.Equal(got, want) {
		t.Errorf("fromText(Format(p)) mismatch (-want +got):\n%s", cmp.Diff(want, got))
	}
}
