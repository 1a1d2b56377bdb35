package dom

import (
	"strings"

	"golang.org/x/net/html"
)

// Point is a position in the tree. For text nodes Offset is a byte offset into the
// data; for elements it is a child index.
type Point struct {
	Node   *html.Node
	Offset int
}

// Range spans Start to End in document order.
type Range struct {
	Start Point
	End   Point
}

// Caret returns a collapsed range at p.
func Caret(p Point) Range { return Range{Start: p, End: p} }

// Collapsed reports whether the range is empty.
func (r Range) Collapsed() bool {
	return Compare(r.Start, r.End) == 0
}

// Len returns the maximum offset of n: the data length for text, the child count otherwise.
func Len(n *html.Node) int {
	if n.Type == html.TextNode {
		return len(n.Data)
	}
	return ChildCount(n)
}

func path(n *html.Node) []int {
	var rev []int
	for ; n.Parent != nil; n = n.Parent {
		rev = append(rev, IndexOf(n))
	}
	out := make([]int, len(rev))
	for i, v := range rev {
		out[len(rev)-1-i] = v
	}
	return out
}

func key(p Point) []int {
	return append(path(p.Node), p.Offset)
}

// compareKeys orders keys lexicographically; a proper prefix sorts first.
func compareKeys(a, b []int) int {
	for i := 0; i < len(a) && i < len(b); i++ {
		if a[i] != b[i] {
			if a[i] < b[i] {
				return -1
			}
			return 1
		}
	}
	switch {
	case len(a) < len(b):
		return -1
	case len(a) > len(b):
		return 1
	}
	return 0
}

// Compare orders two points of the same tree in document order.
func Compare(a, b Point) int {
	if a.Node == b.Node {
		switch {
		case a.Offset < b.Offset:
			return -1
		case a.Offset > b.Offset:
			return 1
		}
		return 0
	}
	return compareKeys(key(a), key(b))
}

// Before returns the point right before n in its parent.
func Before(n *html.Node) Point { return Point{Node: n.Parent, Offset: IndexOf(n)} }

// After returns the point right after n in its parent.
func After(n *html.Node) Point { return Point{Node: n.Parent, Offset: IndexOf(n) + 1} }

// SplitText cuts t at byte offset off and returns the new right half, inserted after t.
func SplitText(t *html.Node, off int) *html.Node {
	right := Text(t.Data[off:])
	t.Data = t.Data[:off]
	InsertAfter(t, right)
	return right
}

// Boundary turns p into an element point, splitting a text node when p falls inside it.
func Boundary(p Point) Point {
	if p.Node.Type != html.TextNode {
		return p
	}
	t := p.Node
	switch {
	case p.Offset <= 0:
		return Before(t)
	case p.Offset >= len(t.Data):
		return After(t)
	}
	SplitText(t, p.Offset)
	return After(t)
}

// SplitRange splits text nodes at both ends of r so that the returned range runs
// between whole nodes.
func SplitRange(r Range) Range {
	end := Boundary(r.End)
	endParent, endRef := end.Node, ChildAt(end.Node, end.Offset)
	start := Boundary(r.Start)
	if endRef != nil {
		end = Before(endRef)
	} else {
		end = Point{Node: endParent, Offset: ChildCount(endParent)}
	}
	return Range{Start: start, End: end}
}

// IsVoid reports whether n is an element that never holds children.
func IsVoid(n *html.Node) bool {
	return IsElement(n, "br", "hr", "img", "input", "wbr", "col", "area", "embed", "source")
}

// IsLeaf reports whether n is a text node or a childless element.
func IsLeaf(n *html.Node) bool {
	return n.Type == html.TextNode || (n.Type == html.ElementNode && n.FirstChild == nil)
}

// Contains reports whether n lies completely within r.
func (r Range) Contains(n *html.Node) bool {
	if n.Parent == nil {
		return false
	}
	return Compare(r.Start, Before(n)) <= 0 && Compare(After(n), r.End) <= 0
}

// LeavesIn returns the leaves lying completely within r, in document order.
func LeavesIn(root *html.Node, r Range) []*html.Node {
	return FindAll(root, func(n *html.Node) bool {
		return IsLeaf(n) && r.Contains(n)
	})
}

// TextIn returns the text covered by r without touching the tree.
func TextIn(root *html.Node, r Range) string {
	var sb strings.Builder
	Walk(root, func(n *html.Node) bool {
		if n.Type != html.TextNode {
			return true
		}
		if Compare(Point{Node: n, Offset: len(n.Data)}, r.Start) <= 0 ||
			Compare(Point{Node: n, Offset: 0}, r.End) >= 0 {
			return true
		}
		lo, hi := 0, len(n.Data)
		if r.Start.Node == n {
			lo = r.Start.Offset
		}
		if r.End.Node == n {
			hi = r.End.Offset
		}
		sb.WriteString(n.Data[lo:hi])
		return true
	})
	return sb.String()
}

// DeleteContents removes everything inside r and returns the collapsed point where
// the range began. Partially covered elements are kept.
func DeleteContents(root *html.Node, r Range) Point {
	if r.Collapsed() {
		return r.Start
	}
	r = SplitRange(r)
	doomed := FindAll(root, func(n *html.Node) bool {
		return r.Contains(n) && (n.Parent == root || !r.Contains(n.Parent))
	})
	for _, n := range doomed {
		Remove(n)
	}
	return r.Start
}

// SplitAt splits top at the boundary (parent, index), which must lie inside top.
// Everything after the boundary moves into shallow clones of its ancestors up to
// top. The clone of top is inserted right after top and returned.
func SplitAt(top, parent *html.Node, index int) *html.Node {
	carry := ShallowClone(parent)
	for c := ChildAt(parent, index); c != nil; {
		next := c.NextSibling
		parent.RemoveChild(c)
		carry.AppendChild(c)
		c = next
	}
	for cur := parent; cur != top; cur = cur.Parent {
		up := ShallowClone(cur.Parent)
		up.AppendChild(carry)
		for s := cur.NextSibling; s != nil; {
			next := s.NextSibling
			cur.Parent.RemoveChild(s)
			up.AppendChild(s)
			s = next
		}
		carry = up
	}
	top.Parent.InsertBefore(carry, top.NextSibling)
	return carry
}

// NextLeaf returns the leaf following n in document order inside stop.
func NextLeaf(n, stop *html.Node) *html.Node {
	for cur := n; cur != nil && cur != stop; cur = cur.Parent {
		if cur.NextSibling != nil {
			return firstLeaf(cur.NextSibling)
		}
	}
	return nil
}

// PrevLeaf returns the leaf preceding n in document order inside stop.
func PrevLeaf(n, stop *html.Node) *html.Node {
	for cur := n; cur != nil && cur != stop; cur = cur.Parent {
		if cur.PrevSibling != nil {
			return lastLeaf(cur.PrevSibling)
		}
	}
	return nil
}

func firstLeaf(n *html.Node) *html.Node {
	for n.FirstChild != nil {
		n = n.FirstChild
	}
	return n
}

func lastLeaf(n *html.Node) *html.Node {
	for n.LastChild != nil {
		n = n.LastChild
	}
	return n
}

// NextTextLeaf returns the first text node after n (or inside n when n is stop).
func NextTextLeaf(n, stop *html.Node) *html.Node {
	var cur *html.Node
	if n == stop {
		if n.FirstChild == nil {
			return nil
		}
		cur = firstLeaf(n.FirstChild)
	} else {
		cur = NextLeaf(n, stop)
	}
	for ; cur != nil; cur = NextLeaf(cur, stop) {
		if cur.Type == html.TextNode {
			return cur
		}
	}
	return nil
}

// PrevTextLeaf returns the last text node before n inside stop.
func PrevTextLeaf(n, stop *html.Node) *html.Node {
	for cur := PrevLeaf(n, stop); cur != nil; cur = PrevLeaf(cur, stop) {
		if cur.Type == html.TextNode {
			return cur
		}
	}
	return nil
}
