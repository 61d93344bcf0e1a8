package ui

// Rect is an integer rectangle; X, Y is the top-left corner.
type Rect struct {
	X, Y, W, H int
}

// Size is a width and height in pixels.
type Size struct {
	W, H int
}

func (r Rect) Empty() bool { return r.W <= 0 || r.H <= 0 }

func (r Rect) Contains(x, y int) bool {
	return x >= r.X && y >= r.Y && x < r.X+r.W && y < r.Y+r.H
}

// Inset shrinks r by n on every side.
func (r Rect) Inset(n int) Rect {
	return Rect{X: r.X + n, Y: r.Y + n, W: r.W - 2*n, H: r.H - 2*n}
}

func (r Rect) Intersect(o Rect) Rect {
	x0 := max(r.X, o.X)
	y0 := max(r.Y, o.Y)
	x1 := min(r.X+r.W, o.X+o.W)
	y1 := min(r.Y+r.H, o.Y+o.H)
	if x1 <= x0 || y1 <= y0 {
		return Rect{}
	}
	return Rect{X: x0, Y: y0, W: x1 - x0, H: y1 - y0}
}

// Center returns a rect of size s centered in r.
func (r Rect) Center(s Size) Rect {
	return Rect{X: r.X + (r.W-s.W)/2, Y: r.Y + (r.H-s.H)/2, W: s.W, H: s.H}
}

// Insets are per-side paddings.
type Insets struct {
	Top, Right, Bottom, Left int
}

// All returns equal insets on every side.
func All(n int) Insets { return Insets{Top: n, Right: n, Bottom: n, Left: n} }

// Symmetric returns insets of h on the left and right and v on the top and bottom.
func Symmetric(h, v int) Insets { return Insets{Top: v, Right: h, Bottom: v, Left: h} }
