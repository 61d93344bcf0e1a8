package ui

import "image/color"

// Node is one element of a view tree. Trees are rebuilt on every render.
type Node interface {
	// Measure returns the node's preferred size.
	Measure() Size
	// Paint draws the node into r, which has at least the measured size when
	// the surface is large enough.
	Paint(f *Frame, r Rect)
}

// flexible nodes absorb leftover space along a stack's axis.
type flexible interface {
	flex() bool
}

func isFlex(n Node) bool {
	f, ok := n.(flexible)
	return ok && f.flex()
}

// Spacer takes an equal share of the leftover space in its stack.
type Spacer struct {
	MinLength int
}

func (s Spacer) Measure() Size    { return Size{W: s.MinLength, H: s.MinLength} }
func (Spacer) Paint(*Frame, Rect) {}
func (Spacer) flex() bool         { return true }

// Text is a single line of text.
type Text struct {
	Value string
	Style TextStyle
}

func (t Text) Measure() Size { return MeasureText(t.Value, t.Style) }

func (t Text) Paint(f *Frame, r Rect) {
	f.Canvas.DrawText(r.X, r.Y, t.Value, t.Style)
}

// VStack lays children out top to bottom, centered horizontally.
type VStack struct {
	Spacing  int
	Children []Node
}

func (s VStack) Measure() Size {
	var out Size
	for i, c := range s.Children {
		sz := c.Measure()
		if isFlex(c) {
			sz.W = 0
		}
		out.W = max(out.W, sz.W)
		out.H += sz.H
		if i > 0 {
			out.H += s.Spacing
		}
	}
	return out
}

func (s VStack) Paint(f *Frame, r Rect) {
	sizes, extra := stackSizes(s.Children, func(sz Size) int { return sz.H }, r.H, s.Spacing)
	y := r.Y
	for i, c := range s.Children {
		sz := sizes[i]
		h := sz.H
		if isFlex(c) {
			h += extra.share(i)
		}
		cell := Rect{X: r.X, Y: y, W: r.W, H: h}
		c.Paint(f, Rect{X: cell.X + (cell.W-sz.W)/2, Y: cell.Y, W: sz.W, H: h})
		y += h + s.Spacing
	}
}

// HStack lays children out left to right, centered vertically.
type HStack struct {
	Spacing  int
	Children []Node
}

func (s HStack) Measure() Size {
	var out Size
	for i, c := range s.Children {
		sz := c.Measure()
		if isFlex(c) {
			sz.H = 0
		}
		out.H = max(out.H, sz.H)
		out.W += sz.W
		if i > 0 {
			out.W += s.Spacing
		}
	}
	return out
}

func (s HStack) Paint(f *Frame, r Rect) {
	sizes, extra := stackSizes(s.Children, func(sz Size) int { return sz.W }, r.W, s.Spacing)
	x := r.X
	for i, c := range s.Children {
		sz := sizes[i]
		w := sz.W
		if isFlex(c) {
			w += extra.share(i)
		}
		c.Paint(f, Rect{X: x, Y: r.Y + (r.H-sz.H)/2, W: w, H: sz.H})
		x += w + s.Spacing
	}
}

// leftover distributes free space over the flexible children of a stack.
type leftover struct {
	total int
	// order maps child index to its rank among flexible children.
	order map[int]int
}

// share hands out total evenly; earlier spacers get the remainder pixels.
func (l leftover) share(i int) int {
	rank, ok := l.order[i]
	if !ok || len(l.order) == 0 || l.total <= 0 {
		return 0
	}
	n := len(l.order)
	s := l.total / n
	if rank < l.total%n {
		s++
	}
	return s
}

func stackSizes(children []Node, axis func(Size) int, avail, spacing int) ([]Size, leftover) {
	sizes := make([]Size, len(children))
	used := 0
	lo := leftover{order: map[int]int{}}
	for i, c := range children {
		sizes[i] = c.Measure()
		used += axis(sizes[i])
		if i > 0 {
			used += spacing
		}
		if isFlex(c) {
			lo.order[i] = len(lo.order)
		}
	}
	lo.total = avail - used
	return sizes, lo
}

// Padding insets its child.
type Padding struct {
	Insets Insets
	Child  Node
}

func (p Padding) Measure() Size {
	sz := p.Child.Measure()
	return Size{
		W: sz.W + p.Insets.Left + p.Insets.Right,
		H: sz.H + p.Insets.Top + p.Insets.Bottom,
	}
}

func (p Padding) Paint(f *Frame, r Rect) {
	p.Child.Paint(f, Rect{
		X: r.X + p.Insets.Left,
		Y: r.Y + p.Insets.Top,
		W: r.W - p.Insets.Left - p.Insets.Right,
		H: r.H - p.Insets.Top - p.Insets.Bottom,
	})
}

// Outline paints its child and then a rounded stroke around it.
type Outline struct {
	Color  color.RGBA
	Radius int
	Width  int
	Child  Node
}

func (o Outline) Measure() Size { return o.Child.Measure() }

func (o Outline) Paint(f *Frame, r Rect) {
	o.Child.Paint(f, r)
	f.Canvas.StrokeRoundRect(r, o.Radius, o.Width, o.Color)
}
