package ui

import (
	"image/color"

	"tinygo.org/x/drivers"
	"tinygo.org/x/tinyfont"
	"tinygo.org/x/tinyfont/proggy"
)

// DefaultFont is the font used when a TextStyle leaves Font nil.
var DefaultFont tinyfont.Fonter = &proggy.TinySZ8pt7b

// FontMetrics are the vertical extents of a font at scale 1.
type FontMetrics struct {
	Ascent  int // pixels above the baseline
	Descent int // pixels below the baseline
}

// LineHeight is Ascent + Descent.
func (m FontMetrics) LineHeight() int { return m.Ascent + m.Descent }

var metricsCache = map[tinyfont.Fonter]FontMetrics{}

// MetricsOf scans the printable ASCII glyphs of font for their vertical extents.
// Results are cached per font.
func MetricsOf(font tinyfont.Fonter) FontMetrics {
	if font == nil {
		font = DefaultFont
	}
	if m, ok := metricsCache[font]; ok {
		return m
	}

	minY, maxY := 0, 0
	for r := rune(0x20); r <= 0x7e; r++ {
		info := font.GetGlyph(r).Info()
		if info.Height == 0 {
			continue
		}
		top := int(info.YOffset)
		bottom := top + int(info.Height)
		minY = min(minY, top)
		maxY = max(maxY, bottom)
	}
	m := FontMetrics{Ascent: -minY, Descent: maxY}
	if m.LineHeight() <= 0 {
		m = FontMetrics{Ascent: int(font.GetYAdvance()), Descent: 0}
	}
	metricsCache[font] = m
	return m
}

// TextStyle selects font, integer scale and color for a run of text.
type TextStyle struct {
	Font  tinyfont.Fonter
	Scale int
	Color color.RGBA
}

func (s TextStyle) font() tinyfont.Fonter {
	if s.Font == nil {
		return DefaultFont
	}
	return s.Font
}

func (s TextStyle) scale() int {
	if s.Scale <= 0 {
		return 1
	}
	return s.Scale
}

// MeasureText returns the pixel size of s drawn with style.
func MeasureText(s string, style TextStyle) Size {
	font := style.font()
	scale := style.scale()
	_, outbox := tinyfont.LineWidth(font, s)
	return Size{W: int(outbox) * scale, H: MetricsOf(font).LineHeight() * scale}
}

// DrawText draws s with its line box's top-left corner at (x, y).
func (c *Canvas) DrawText(x, y int, s string, style TextStyle) {
	font := style.font()
	scale := style.scale()
	m := MetricsOf(font)
	var d drivers.Displayer = c
	if scale > 1 {
		d = &scaledDisplayer{c: c, ox: x, oy: y, scale: scale}
		tinyfont.WriteLine(d, font, 0, int16(m.Ascent), s, style.Color)
		return
	}
	tinyfont.WriteLine(d, font, int16(x), int16(y+m.Ascent), s, style.Color)
}

// scaledDisplayer maps each glyph pixel to a scale x scale block at an origin.
type scaledDisplayer struct {
	c      *Canvas
	ox, oy int
	scale  int
}

func (d *scaledDisplayer) Size() (x, y int16) {
	w, h := d.c.Size()
	return w / int16(d.scale), h / int16(d.scale)
}

func (d *scaledDisplayer) SetPixel(x, y int16, col color.RGBA) {
	d.c.FillRect(Rect{X: d.ox + int(x)*d.scale, Y: d.oy + int(y)*d.scale, W: d.scale, H: d.scale}, col)
}

func (d *scaledDisplayer) Display() error { return nil }
