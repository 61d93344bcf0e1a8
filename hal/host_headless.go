//go:build !tinygo

package hal

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// HeadlessConfig controls the no-window host runner.
type HeadlessConfig struct {
	Hz    int
	Ticks uint64

	// Virtual advances the clock by exactly one frame per step and never sleeps.
	Virtual bool

	Host   HostConfig
	Script []ScriptEvent

	// Done, if set, is called with the HAL after the last step.
	Done func(HAL)
}

// ScriptEvent injects input before the step of frame At (0-based).
type ScriptEvent struct {
	At      uint64
	Key     *KeyEvent
	Pointer *PointerEvent
}

var errVirtualForever = errors.New("virtual clock needs a tick limit")

// RunHeadless runs the app without opening a window.
func RunHeadless(ctx context.Context, newApp func(HAL) func() error, cfg HeadlessConfig) error {
	if cfg.Hz <= 0 {
		cfg.Hz = 60
	}
	d := time.Second / time.Duration(cfg.Hz)
	if d <= 0 {
		return fmt.Errorf("invalid headless hz: %d", cfg.Hz)
	}
	if cfg.Virtual && cfg.Ticks == 0 {
		return errVirtualForever
	}

	h := newHost(cfg.Host)
	step := newApp(h)
	if cfg.Done != nil {
		defer cfg.Done(h)
	}

	frame := func(tick uint64) error {
		h.inject(cfg.Script, tick)
		if cfg.Virtual {
			h.t.advance(d)
		} else {
			h.t.step()
		}
		if step == nil {
			return nil
		}
		return step()
	}

	if cfg.Virtual {
		for tick := uint64(0); tick < cfg.Ticks; tick++ {
			if err := ctx.Err(); err != nil {
				return err
			}
			if err := frame(tick); err != nil {
				return err
			}
		}
		return nil
	}

	t := time.NewTicker(d)
	defer t.Stop()

	var tick uint64
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-t.C:
			if err := frame(tick); err != nil {
				return err
			}
			tick++
			if cfg.Ticks > 0 && tick >= cfg.Ticks {
				return nil
			}
		}
	}
}

func (h *hostHAL) inject(script []ScriptEvent, tick uint64) {
	for _, ev := range script {
		if ev.At != tick {
			continue
		}
		if ev.Key != nil {
			h.kbd.push(*ev.Key)
		}
		if ev.Pointer != nil {
			h.ptr.push(*ev.Pointer)
		}
	}
}
