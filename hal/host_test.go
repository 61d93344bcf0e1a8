//go:build !tinygo

package hal

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"
)

func TestHostTimeAdvanceCoalesces(t *testing.T) {
	ht := newHostTime()

	ht.advance(1500 * time.Microsecond)
	if got := <-ht.Ticks(); got != 1 {
		t.Fatalf("first tick = %d, want 1", got)
	}

	ht.advance(500 * time.Microsecond)
	ht.advance(3 * time.Millisecond)
	var last uint64
	for {
		select {
		case seq := <-ht.Ticks():
			last = seq
			continue
		default:
		}
		break
	}
	if last != 5 {
		t.Fatalf("latest tick = %d, want 5", last)
	}
}

func TestHostTimeAdvanceIgnoresNonPositive(t *testing.T) {
	ht := newHostTime()
	ht.advance(0)
	ht.advance(-time.Second)
	select {
	case seq := <-ht.Ticks():
		t.Fatalf("unexpected tick %d", seq)
	default:
	}
}

func TestFramebufferClearAndSnapshot(t *testing.T) {
	fb := newHostFramebuffer(4, 3)
	fb.ClearRGB(255, 0, 0)

	img := Snapshot(fb)
	if img == nil {
		t.Fatal("expected image")
	}
	if got := img.Bounds().Dx(); got != 4 {
		t.Fatalf("width = %d, want 4", got)
	}
	c := img.RGBAAt(3, 2)
	if c.R != 255 || c.G != 0 || c.B != 0 || c.A != 255 {
		t.Fatalf("pixel = %+v, want opaque red", c)
	}
}

func TestRGB565RoundTripPrimaries(t *testing.T) {
	for _, tc := range []struct{ r, g, b uint8 }{
		{0, 0, 0},
		{255, 255, 255},
		{255, 0, 0},
		{0, 255, 0},
		{0, 0, 255},
	} {
		r, g, b := RGB888(RGB565(tc.r, tc.g, tc.b))
		if r != tc.r || g != tc.g || b != tc.b {
			t.Fatalf("round trip %v = (%d,%d,%d)", tc, r, g, b)
		}
	}
}

func TestHostLoggerWritesLines(t *testing.T) {
	var buf bytes.Buffer
	h := New(HostConfig{LogOutput: &buf})
	h.Logger().WriteLineString("a: one")
	h.Logger().WriteLineBytes([]byte("b: two"))
	if got := buf.String(); got != "a: one\nb: two\n" {
		t.Fatalf("log output = %q", got)
	}
}

func TestRunHeadlessVirtual(t *testing.T) {
	var steps int
	var keys []rune
	var lastTick uint64

	cfg := HeadlessConfig{
		Hz:      10,
		Ticks:   5,
		Virtual: true,
		Host:    HostConfig{Width: 8, Height: 8, LogOutput: &bytes.Buffer{}},
		Script: []ScriptEvent{
			{At: 2, Key: &KeyEvent{Press: true, Rune: 's'}},
		},
	}
	err := RunHeadless(context.Background(), func(h HAL) func() error {
		kbd := h.Input().Keyboard().Events()
		ticks := h.Time().Ticks()
		return func() error {
			steps++
			for {
				select {
				case ev := <-kbd:
					keys = append(keys, ev.Rune)
					continue
				case seq := <-ticks:
					lastTick = seq
					continue
				default:
				}
				return nil
			}
		}
	}, cfg)
	if err != nil {
		t.Fatalf("RunHeadless: %v", err)
	}
	if steps != 5 {
		t.Fatalf("steps = %d, want 5", steps)
	}
	if string(keys) != "s" {
		t.Fatalf("keys = %q, want %q", string(keys), "s")
	}
	if lastTick != 500 {
		t.Fatalf("last tick = %d, want 500", lastTick)
	}
}

func TestRunHeadlessVirtualNeedsLimit(t *testing.T) {
	err := RunHeadless(context.Background(), func(HAL) func() error { return nil }, HeadlessConfig{Virtual: true})
	if err == nil || !strings.Contains(err.Error(), "tick limit") {
		t.Fatalf("err = %v, want tick limit error", err)
	}
}

func TestRunHeadlessCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := RunHeadless(ctx, func(HAL) func() error { return nil }, HeadlessConfig{
		Virtual: true,
		Ticks:   10,
		Host:    HostConfig{LogOutput: &bytes.Buffer{}},
	})
	if err != context.Canceled {
		t.Fatalf("err = %v, want context.Canceled", err)
	}
}
