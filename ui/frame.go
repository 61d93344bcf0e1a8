package ui

import "image/color"

// Region is the on-screen area of a painted Button.
type Region struct {
	ID      string
	Rect    Rect
	OnPress func()
}

// Frame is the result of one render: the canvas it painted and the button
// regions in paint order.
type Frame struct {
	Canvas *Canvas
	Focus  string

	regions []Region
}

// Render clears the canvas, paints root over the whole surface and presents it.
// focus names the button, if any, to draw with a focus ring.
func Render(c *Canvas, root Node, bg color.RGBA, focus string) *Frame {
	f := &Frame{Canvas: c, Focus: focus}
	c.Clear(bg)
	if root != nil {
		root.Paint(f, c.Bounds())
	}
	_ = c.Display()
	return f
}

// Regions returns the painted button regions in paint order.
func (f *Frame) Regions() []Region {
	if f == nil {
		return nil
	}
	return f.regions
}

// Hit returns the topmost region containing (x, y).
func (f *Frame) Hit(x, y int) (Region, bool) {
	if f == nil {
		return Region{}, false
	}
	for i := len(f.regions) - 1; i >= 0; i-- {
		if f.regions[i].Rect.Contains(x, y) {
			return f.regions[i], true
		}
	}
	return Region{}, false
}

// Region returns the region with the given ID.
func (f *Frame) Region(id string) (Region, bool) {
	for _, r := range f.Regions() {
		if r.ID == id {
			return r, true
		}
	}
	return Region{}, false
}
