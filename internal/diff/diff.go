// Package diff computes, applies and inverts text patches between serialized
// document snapshots. It is a thin layer over diffmatchpatch that exposes the
// edit operations of each patch so that they can be inspected, inverted and
// rewritten in place.
package diff

import (
	"fmt"
	"net/url"
	"regexp"
	"strconv"
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"

	"github.com/bethropolis/inkwell/internal/logger"
)

// Op is the kind of a single edit operation.
type Op = diffmatchpatch.Operation

// Edit operation kinds.
const (
	Delete = diffmatchpatch.DiffDelete
	Insert = diffmatchpatch.DiffInsert
	Equal  = diffmatchpatch.DiffEqual
)

// Patch is one hunk: a run of edit operations located at Start1 in the source
// text and Start2 in the target text.
type Patch struct {
	Diffs   []diffmatchpatch.Diff
	Start1  int
	Start2  int
	Length1 int
	Length2 int
}

// Differ makes and applies patches.
type Differ struct {
	dmp *diffmatchpatch.DiffMatchPatch
}

// New creates a Differ with the library's default matching tolerances.
func New() *Differ {
	return &Differ{dmp: diffmatchpatch.New()}
}

// Make returns the patches that turn from into to. Equal texts give no patches.
func (d *Differ) Make(from, to string) []Patch {
	if from == to {
		return nil
	}
	diffs := d.dmp.DiffMain(from, to, true)
	return fromText(d.dmp.PatchToText(d.dmp.PatchMake(from, diffs)))
}

// fromText reads patches produced by the library. The patch fields are only
// reachable through their text form. Unreadable text yields no patches, which
// callers treat as "no change".
func fromText(text string) []Patch {
	patches, err := Parse(text)
	if err != nil {
		logger.Errorf("diff: dropping unreadable patches: %v", err)
		return nil
	}
	return patches
}

// Apply applies patches to text. The second result reports, per patch, whether
// it could be located and applied.
func (d *Differ) Apply(patches []Patch, text string) (string, []bool) {
	if len(patches) == 0 {
		return text, nil
	}
	lib, err := d.dmp.PatchFromText(Format(patches))
	if err != nil {
		return text, make([]bool, len(patches))
	}
	return d.dmp.PatchApply(lib, text)
}

// Copy deep-copies patches.
func Copy(patches []Patch) []Patch {
	out := make([]Patch, len(patches))
	for i, p := range patches {
		out[i] = p
		out[i].Diffs = append([]diffmatchpatch.Diff(nil), p.Diffs...)
	}
	return out
}

// Reverse returns the inverse of patches: a deep copy in reverse order with every
// insertion and deletion swapped. Applying it to the output of patches yields
// their input. Positions are left as they are; applying the hunks back to front
// keeps earlier offsets valid.
func Reverse(patches []Patch) []Patch {
	out := Copy(patches)
	for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
		out[i], out[j] = out[j], out[i]
	}
	for i := range out {
		for k := range out[i].Diffs {
			out[i].Diffs[k].Type = -out[i].Diffs[k].Type
		}
		out[i].Length1, out[i].Length2 = out[i].Length2, out[i].Length1
	}
	return out
}

// unescaper undoes the escaping of characters that encodeURI leaves alone, so
// the text form matches other diff-match-patch implementations.
var unescaper = strings.NewReplacer(
	"%21", "!", "%7E", "~", "%27", "'",
	"%28", "(", "%29", ")", "%3B", ";",
	"%2F", "/", "%3F", "?", "%3A", ":",
	"%40", "@", "%26", "&", "%3D", "=",
	"%2B", "+", "%24", "$", "%2C", ",", "%23", "#", "%2A", "*")

func coords(start, length int) string {
	switch length {
	case 0:
		return strconv.Itoa(start) + ",0"
	case 1:
		return strconv.Itoa(start + 1)
	}
	return strconv.Itoa(start+1) + "," + strconv.Itoa(length)
}

// String renders the patch in the GNU diff like text form.
func (p Patch) String() string {
	var sb strings.Builder
	sb.WriteString("@@ -" + coords(p.Start1, p.Length1) + " +" + coords(p.Start2, p.Length2) + " @@\n")
	for _, d := range p.Diffs {
		switch d.Type {
		case Insert:
			sb.WriteByte('+')
		case Delete:
			sb.WriteByte('-')
		default:
			sb.WriteByte(' ')
		}
		sb.WriteString(strings.ReplaceAll(url.QueryEscape(d.Text), "+", " "))
		sb.WriteByte('\n')
	}
	return unescaper.Replace(sb.String())
}

// Format renders patches in text form.
func Format(patches []Patch) string {
	var sb strings.Builder
	for _, p := range patches {
		sb.WriteString(p.String())
	}
	return sb.String()
}

var header = regexp.MustCompile(`^@@ -(\d+),?(\d*) \+(\d+),?(\d*) @@$`)

func parseCoords(start, length string) (int, int) {
	s, _ := strconv.Atoi(start)
	switch length {
	case "":
		return s - 1, 1
	case "0":
		return s, 0
	}
	l, _ := strconv.Atoi(length)
	return s - 1, l
}

// Parse reads patches from their text form.
func Parse(text string) ([]Patch, error) {
	var patches []Patch
	lines := strings.Split(text, "\n")
	for i := 0; i < len(lines); {
		if lines[i] == "" {
			i++
			continue
		}
		m := header.FindStringSubmatch(lines[i])
		if m == nil {
			return patches, fmt.Errorf("diff: invalid patch header %q", lines[i])
		}
		var p Patch
		p.Start1, p.Length1 = parseCoords(m[1], m[2])
		p.Start2, p.Length2 = parseCoords(m[3], m[4])
		for i++; i < len(lines); i++ {
			line := lines[i]
			if line == "" {
				continue
			}
			if line[0] == '@' {
				break
			}
			body, err := url.QueryUnescape(strings.ReplaceAll(line[1:], "+", "%2b"))
			if err != nil {
				return patches, fmt.Errorf("diff: invalid patch body %q: %w", line, err)
			}
			var op Op
			switch line[0] {
			case '+':
				op = Insert
			case '-':
				op = Delete
			case ' ':
				op = Equal
			default:
				return patches, fmt.Errorf("diff: invalid patch mode %q in %q", line[0], line)
			}
			p.Diffs = append(p.Diffs, diffmatchpatch.Diff{Type: op, Text: body})
		}
		patches = append(patches, p)
	}
	return patches, nil
}
