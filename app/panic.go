package app

import (
	"fmt"
	"image/color"
	"strings"
	"unicode/utf8"

	"tally/hal"
	"tally/kernel"
	"tally/ui"
)

var (
	panicBackground = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	panicText       = ui.TextStyle{Color: color.RGBA{A: 255}}
)

func installPanicHandler(h hal.HAL) {
	kernel.SetPanicHandler(func(info kernel.PanicInfo) {
		lines := panicLines(info)
		if l := h.Logger(); l != nil {
			for _, line := range lines {
				l.WriteLineString(line)
			}
		}
		if disp := h.Display(); disp != nil {
			if c := ui.NewCanvas(disp.Framebuffer()); c != nil {
				drawPanic(c, lines)
			}
		}
	})
}

func panicLines(info kernel.PanicInfo) []string {
	where := fmt.Sprintf("task: %d tick: %d", info.TaskID, info.Tick)
	if info.Timer {
		where = fmt.Sprintf("timer callback tick: %d", info.Tick)
	}
	lines := []string{
		"tally panic:",
		where,
		fmt.Sprintf("panic: %v", info.Value),
	}
	if len(info.Stack) == 0 {
		return append(lines, "stack: unavailable")
	}
	lines = append(lines, "stack:")
	for _, line := range strings.Split(string(info.Stack), "\n") {
		if line == "" {
			continue
		}
		lines = append(lines, line)
	}
	return lines
}

// drawPanic writes lines top to bottom, wrapping at the screen width, until
// the screen is full.
func drawPanic(c *ui.Canvas, lines []string) {
	c.Clear(panicBackground)

	glyph := ui.MeasureText("0", panicText)
	lineHeight := ui.MetricsOf(panicText.Font).LineHeight()
	if glyph.W <= 0 || lineHeight <= 0 {
		_ = c.Display()
		return
	}
	cols := max(c.Width()/glyph.W, 1)

	y := 0
	for _, line := range lines {
		for len(line) > 0 {
			if y+lineHeight > c.Height() {
				_ = c.Display()
				return
			}
			chunk, rest := takeRunes(line, cols)
			c.DrawText(0, y, chunk, panicText)
			y += lineHeight
			line = strings.TrimLeft(rest, " ")
		}
	}
	_ = c.Display()
}

func takeRunes(s string, n int) (prefix, rest string) {
	if n <= 0 || s == "" {
		return "", s
	}
	if len(s) <= n {
		return s, ""
	}
	i, count := 0, 0
	for i < len(s) && count < n {
		_, size := utf8.DecodeRuneInString(s[i:])
		i += size
		count++
	}
	return s[:i], s[i:]
}
