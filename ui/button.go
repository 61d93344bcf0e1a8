package ui

import "image/color"

// ButtonStyle describes how a Button looks. A zero Background alpha draws no fill.
type ButtonStyle struct {
	Text       TextStyle
	Background color.RGBA
	Padding    Insets
	Radius     int
	FocusColor color.RGBA
}

// Button is a pressable label. Painting records a hit Region in the Frame.
type Button struct {
	ID      string
	Label   string
	Style   ButtonStyle
	OnPress func()
}

func (b Button) Measure() Size {
	sz := MeasureText(b.Label, b.Style.Text)
	p := b.Style.Padding
	return Size{W: sz.W + p.Left + p.Right, H: sz.H + p.Top + p.Bottom}
}

func (b Button) Paint(f *Frame, r Rect) {
	if b.Style.Background.A != 0 {
		f.Canvas.FillRoundRect(r, b.Style.Radius, b.Style.Background)
	}
	label := MeasureText(b.Label, b.Style.Text)
	p := b.Style.Padding
	inner := Rect{X: r.X + p.Left, Y: r.Y + p.Top, W: r.W - p.Left - p.Right, H: r.H - p.Top - p.Bottom}
	at := inner.Center(label)
	f.Canvas.DrawText(at.X, at.Y, b.Label, b.Style.Text)

	if f.Focus != "" && f.Focus == b.ID {
		ring := Rect{X: r.X - focusGap, Y: r.Y - focusGap, W: r.W + 2*focusGap, H: r.H + 2*focusGap}
		f.Canvas.StrokeRoundRect(ring, b.Style.Radius+focusGap, 1, b.Style.FocusColor)
	}
	f.regions = append(f.regions, Region{ID: b.ID, Rect: r, OnPress: b.OnPress})
}

const focusGap = 3
