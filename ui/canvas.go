package ui

import (
	"image/color"
	"math"

	"tally/hal"

	"tinygo.org/x/drivers"
)

var _ drivers.Displayer = (*Canvas)(nil)

// Canvas paints into an RGB565 framebuffer. It also satisfies drivers.Displayer
// so tinyfont can rasterise glyphs straight into it.
type Canvas struct {
	fb hal.Framebuffer
}

// NewCanvas returns nil if fb is nil or not RGB565.
func NewCanvas(fb hal.Framebuffer) *Canvas {
	if fb == nil || fb.Format() != hal.PixelFormatRGB565 || fb.Buffer() == nil {
		return nil
	}
	return &Canvas{fb: fb}
}

func (c *Canvas) Width() int  { return c.fb.Width() }
func (c *Canvas) Height() int { return c.fb.Height() }

// Bounds returns the full canvas rectangle.
func (c *Canvas) Bounds() Rect { return Rect{W: c.fb.Width(), H: c.fb.Height()} }

func (c *Canvas) Size() (x, y int16) {
	return int16(c.fb.Width()), int16(c.fb.Height())
}

func (c *Canvas) SetPixel(x, y int16, col color.RGBA) {
	c.set(int(x), int(y), rgb565(col))
}

// Display presents the framebuffer.
func (c *Canvas) Display() error { return c.fb.Present() }

// At returns the color stored at (x, y), or transparent black when out of range.
func (c *Canvas) At(x, y int) color.RGBA {
	buf := c.fb.Buffer()
	if x < 0 || y < 0 || x >= c.fb.Width() || y >= c.fb.Height() {
		return color.RGBA{}
	}
	off := y*c.fb.StrideBytes() + x*2
	if off < 0 || off+1 >= len(buf) {
		return color.RGBA{}
	}
	r, g, b := hal.RGB888(uint16(buf[off]) | uint16(buf[off+1])<<8)
	return color.RGBA{R: r, G: g, B: b, A: 0xFF}
}

// Clear fills the whole canvas.
func (c *Canvas) Clear(col color.RGBA) {
	c.fb.ClearRGB(col.R, col.G, col.B)
}

// FillRect fills r, clipped to the canvas.
func (c *Canvas) FillRect(r Rect, col color.RGBA) {
	r = r.Intersect(c.Bounds())
	if r.Empty() {
		return
	}
	pixel := rgb565(col)
	lo := byte(pixel)
	hi := byte(pixel >> 8)
	buf := c.fb.Buffer()
	stride := c.fb.StrideBytes()
	for py := r.Y; py < r.Y+r.H; py++ {
		row := py * stride
		for px := r.X; px < r.X+r.W; px++ {
			off := row + px*2
			if off < 0 || off+1 >= len(buf) {
				continue
			}
			buf[off] = lo
			buf[off+1] = hi
		}
	}
}

// FillRoundRect fills r with corners of the given radius.
func (c *Canvas) FillRoundRect(r Rect, radius int, col color.RGBA) {
	radius = clampRadius(r, radius)
	if radius == 0 {
		c.FillRect(r, col)
		return
	}
	for row := 0; row < r.H; row++ {
		inset := cornerInset(r.H, radius, row)
		c.FillRect(Rect{X: r.X + inset, Y: r.Y + row, W: r.W - 2*inset, H: 1}, col)
	}
}

// StrokeRoundRect draws a width-pixel outline just inside r.
func (c *Canvas) StrokeRoundRect(r Rect, radius, width int, col color.RGBA) {
	if width <= 0 || r.Empty() {
		return
	}
	inner := r.Inset(width)
	outerR := clampRadius(r, radius)
	innerR := clampRadius(inner, outerR-width)
	pixel := rgb565(col)
	for py := r.Y; py < r.Y+r.H; py++ {
		for px := r.X; px < r.X+r.W; px++ {
			if !insideRounded(r, outerR, px, py) {
				continue
			}
			if !inner.Empty() && insideRounded(inner, innerR, px, py) {
				continue
			}
			c.set(px, py, pixel)
		}
	}
}

func (c *Canvas) set(x, y int, pixel uint16) {
	buf := c.fb.Buffer()
	if x < 0 || y < 0 || x >= c.fb.Width() || y >= c.fb.Height() {
		return
	}
	off := y*c.fb.StrideBytes() + x*2
	if off < 0 || off+1 >= len(buf) {
		return
	}
	buf[off] = byte(pixel)
	buf[off+1] = byte(pixel >> 8)
}

func rgb565(c color.RGBA) uint16 { return hal.RGB565(c.R, c.G, c.B) }

func clampRadius(r Rect, radius int) int {
	if radius < 0 {
		return 0
	}
	if m := min(r.W, r.H) / 2; radius > m {
		return m
	}
	return radius
}

// cornerInset returns how many pixels row (of a shape h rows tall) is indented
// on each side by a corner of the given radius.
func cornerInset(h, radius, row int) int {
	var dy float64
	switch {
	case row < radius:
		dy = float64(radius-row) - 0.5
	case row >= h-radius:
		dy = float64(row-(h-radius)) + 0.5
	default:
		return 0
	}
	dx := math.Sqrt(float64(radius*radius) - dy*dy)
	return radius - int(math.Round(dx))
}

func insideRounded(r Rect, radius, px, py int) bool {
	if !r.Contains(px, py) {
		return false
	}
	inset := cornerInset(r.H, radius, py-r.Y)
	return px >= r.X+inset && px < r.X+r.W-inset
}
