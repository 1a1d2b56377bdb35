package dom

import (
	"golang.org/x/net/html"

	"github.com/bethropolis/inkwell/internal/utils"
)

// Caret returns the collapsed caret position, resolved onto a text node when one
// is adjacent.
func (d *Document) Caret() (Point, bool) {
	r, ok := d.Selection()
	if !ok {
		return Point{}, false
	}
	return resolve(r.Start), true
}

func resolve(p Point) Point {
	if p.Node.Type == html.TextNode {
		return p
	}
	if prev := ChildAt(p.Node, p.Offset-1); IsText(prev) {
		return Point{Node: prev, Offset: len(prev.Data)}
	}
	if next := ChildAt(p.Node, p.Offset); IsText(next) {
		return Point{Node: next, Offset: 0}
	}
	return p
}

// deleteSelection removes a non-collapsed selection and returns the caret.
func (d *Document) deleteSelection() (Point, error) {
	r, ok := d.Selection()
	if !ok {
		return Point{}, ErrNoSelection
	}
	if r.Collapsed() {
		return resolve(r.Start), nil
	}
	p := DeleteContents(d.root, r)
	MergeText(p.Node)
	d.Collapse(p)
	return resolve(p), nil
}

// InsertText types s at the caret, replacing any selected content.
func (d *Document) InsertText(s string) error {
	p, err := d.deleteSelection()
	if err != nil {
		return err
	}
	if p.Node.Type == html.TextNode {
		t := p.Node
		t.Data = t.Data[:p.Offset] + s + t.Data[p.Offset:]
		d.Collapse(Point{Node: t, Offset: p.Offset + len(s)})
		return nil
	}
	parent, index := p.Node, p.Offset
	if parent == d.root {
		block := Element("p")
		InsertAt(parent, index, block)
		parent, index = block, 0
	}
	if parent.FirstChild != nil && parent.FirstChild == parent.LastChild && IsElement(parent.FirstChild, "br") {
		Remove(parent.FirstChild)
		index = 0
	}
	t := Text(s)
	InsertAt(parent, index, t)
	d.Collapse(Point{Node: t, Offset: len(s)})
	return nil
}

// DeleteBackward removes the selection, or the grapheme before the caret. At the
// start of a block the block is merged into the previous one.
func (d *Document) DeleteBackward() error {
	r, ok := d.Selection()
	if !ok {
		return ErrNoSelection
	}
	if !r.Collapsed() {
		_, err := d.deleteSelection()
		return err
	}
	p := resolve(r.Start)
	if p.Node.Type == html.TextNode && p.Offset > 0 {
		t := p.Node
		off := utils.PrevGrapheme(t.Data, p.Offset)
		t.Data = t.Data[:off] + t.Data[p.Offset:]
		d.Collapse(Point{Node: t, Offset: off})
		return nil
	}
	ref := p.Node
	if ref.Type != html.TextNode {
		if c := ChildAt(ref, p.Offset-1); c != nil {
			if IsVoid(c) {
				Remove(c)
				d.Collapse(Point{Node: ref, Offset: p.Offset - 1})
				return nil
			}
			ref = lastLeaf(c)
			if ref.Type == html.TextNode {
				d.Collapse(Point{Node: ref, Offset: len(ref.Data)})
				return d.DeleteBackward()
			}
		}
	}
	block := Closest(ref, d.root, IsBlock)
	if block == nil {
		return nil
	}
	if prev := PrevLeaf(ref, block); prev != nil {
		if prev.Type == html.TextNode {
			if prev.Data == "" {
				Remove(prev)
				return d.DeleteBackward()
			}
			d.Collapse(Point{Node: prev, Offset: len(prev.Data)})
			return d.DeleteBackward()
		}
		parent, index := prev.Parent, IndexOf(prev)
		Remove(prev)
		d.Collapse(Point{Node: parent, Offset: index})
		return nil
	}
	return d.mergeIntoPrevious(block)
}

func (d *Document) mergeIntoPrevious(block *html.Node) error {
	prevBlock := block.PrevSibling
	for prevBlock == nil && block.Parent != d.root {
		block = block.Parent
		prevBlock = block.PrevSibling
	}
	if prevBlock == nil {
		return nil
	}
	target := prevBlock
	for target.LastChild != nil && IsBlock(target.LastChild) && !IsVoid(target.LastChild) {
		target = target.LastChild
	}
	if IsVoid(target) {
		Remove(target)
		return nil
	}
	if !HasContent(target) {
		for c := target.FirstChild; c != nil; c = target.FirstChild {
			Remove(c)
		}
	}
	caret := Point{Node: target, Offset: ChildCount(target)}
	if lc := target.LastChild; IsText(lc) {
		caret = Point{Node: lc, Offset: len(lc.Data)}
	}
	src := block
	for src.FirstChild != nil && IsBlock(src.FirstChild) && !IsVoid(src.FirstChild) {
		src = src.FirstChild
	}
	if HasContent(src) {
		MoveChildren(src, target)
	}
	for n := src; n != nil && n != d.root; {
		parent := n.Parent
		Remove(n)
		if parent == d.root || parent.FirstChild != nil {
			break
		}
		n = parent
	}
	MergeText(target)
	d.Collapse(resolve(caret))
	return nil
}

// SplitBlock breaks the current list item or top-level block at the caret.
func (d *Document) SplitBlock() error {
	p, err := d.deleteSelection()
	if err != nil {
		return err
	}
	if p.Node == d.root {
		block := Element("p")
		block.AppendChild(Element("br"))
		InsertAt(d.root, p.Offset, block)
		d.Collapse(Point{Node: block, Offset: 0})
		return nil
	}
	block := ClosestTag(p.Node, d.root, "li")
	if block == nil {
		block = TopLevel(p.Node, d.root)
	}
	b := Boundary(p)
	right := SplitAt(block, b.Node, b.Offset)
	for _, half := range []*html.Node{block, right} {
		if !HasContent(half) {
			half.AppendChild(Element("br"))
		}
	}
	cur := right
	for cur.FirstChild != nil && cur.FirstChild.Type == html.ElementNode && !IsVoid(cur.FirstChild) {
		cur = cur.FirstChild
	}
	if IsText(cur.FirstChild) {
		d.Collapse(Point{Node: cur.FirstChild, Offset: 0})
	} else {
		d.Collapse(Point{Node: cur, Offset: 0})
	}
	return nil
}

// MoveCursor moves the focus by delta graphemes. Without extend the selection
// collapses onto the new focus.
func (d *Document) MoveCursor(delta int, extend bool) {
	if !d.hasSel {
		d.Collapse(d.Start())
	}
	focus := resolve(d.focus)
	for ; delta > 0; delta-- {
		focus = d.stepRight(focus)
	}
	for ; delta < 0; delta++ {
		focus = d.stepLeft(focus)
	}
	d.focus = focus
	if !extend {
		d.anchor = focus
	}
}

func (d *Document) stepRight(p Point) Point {
	if p.Node.Type == html.TextNode && p.Offset < len(p.Node.Data) {
		return Point{Node: p.Node, Offset: utils.NextGrapheme(p.Node.Data, p.Offset)}
	}
	ref := p.Node
	if ref.Type != html.TextNode {
		if c := ChildAt(ref, p.Offset); c != nil {
			if t := NextTextLeaf(c, c); t != nil {
				return Point{Node: t, Offset: 0}
			}
			ref = c
		}
	}
	next := NextTextLeaf(ref, d.root)
	if next == nil {
		return p
	}
	if sameBlock(ref, next, d.root) && len(next.Data) > 0 {
		return Point{Node: next, Offset: utils.NextGrapheme(next.Data, 0)}
	}
	return Point{Node: next, Offset: 0}
}

func (d *Document) stepLeft(p Point) Point {
	if p.Node.Type == html.TextNode && p.Offset > 0 {
		return Point{Node: p.Node, Offset: utils.PrevGrapheme(p.Node.Data, p.Offset)}
	}
	ref := p.Node
	if ref.Type != html.TextNode {
		if c := ChildAt(ref, p.Offset); c != nil {
			ref = c
		} else if c := ChildAt(ref, p.Offset-1); c != nil {
			if t := lastLeaf(c); t.Type == html.TextNode {
				return Point{Node: t, Offset: len(t.Data)}
			}
			ref = lastLeaf(c)
		}
	}
	prev := PrevTextLeaf(ref, d.root)
	if prev == nil {
		return p
	}
	if sameBlock(ref, prev, d.root) && len(prev.Data) > 0 {
		return Point{Node: prev, Offset: utils.PrevGrapheme(prev.Data, len(prev.Data))}
	}
	return Point{Node: prev, Offset: len(prev.Data)}
}

func sameBlock(a, b, root *html.Node) bool {
	return Closest(a, root, IsBlock) == Closest(b, root, IsBlock)
}
