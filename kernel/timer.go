package kernel

import "errors"

const (
	maxTimers = 16

	// maxCatchUp bounds how many missed periods one timer replays per TickTo.
	maxCatchUp = 1024
)

var (
	ErrNoTimerSlots  = errors.New("kernel: timer table full")
	ErrInvalidPeriod = errors.New("kernel: timer period must be positive")
	ErrNilCallback   = errors.New("kernel: nil timer callback")
)

// Scheduler creates repeating timers. *Kernel implements it.
type Scheduler interface {
	Repeat(period uint64, fn func()) (Timer, error)
}

type timerSlot struct {
	inUse  bool
	gen    uint32
	due    uint64
	period uint64
	fn     func()
}

// Timer is a handle to a repeating timer.
//
// The zero Timer is invalid. A handle stays bound to the registration that
// created it: once invalidated, a later timer reusing the same slot is not affected.
type Timer struct {
	k    *Kernel
	slot uint8
	gen  uint32
}

// Repeat calls fn every period ticks, first at Now()+period. fn runs on the
// goroutine that calls TickTo.
func (k *Kernel) Repeat(period uint64, fn func()) (Timer, error) {
	if period == 0 {
		return Timer{}, ErrInvalidPeriod
	}
	if fn == nil {
		return Timer{}, ErrNilCallback
	}
	for i := range k.timers {
		sl := &k.timers[i]
		if sl.inUse {
			continue
		}
		sl.gen++
		if sl.gen == 0 {
			sl.gen++
		}
		sl.inUse = true
		sl.due = k.now + period
		sl.period = period
		sl.fn = fn
		return Timer{k: k, slot: uint8(i), gen: sl.gen}, nil
	}
	return Timer{}, ErrNoTimerSlots
}

// Valid reports whether the timer is still scheduled.
func (t Timer) Valid() bool {
	sl := t.state()
	return sl != nil
}

// Invalidate cancels the timer. It is safe to call more than once and from
// inside the timer's own callback.
func (t Timer) Invalidate() {
	sl := t.state()
	if sl == nil {
		return
	}
	sl.inUse = false
	sl.fn = nil
}

func (t Timer) state() *timerSlot {
	if t.k == nil || t.gen == 0 || int(t.slot) >= len(t.k.timers) {
		return nil
	}
	sl := &t.k.timers[t.slot]
	if !sl.inUse || sl.gen != t.gen {
		return nil
	}
	return sl
}

func (k *Kernel) fireTimers() {
	for i := range k.timers {
		sl := &k.timers[i]
		if !sl.inUse {
			continue
		}
		gen := sl.gen
		for n := 0; sl.inUse && sl.gen == gen && sl.due <= k.now; n++ {
			if InPanicMode() {
				return
			}
			if n == maxCatchUp {
				// Drop the backlog so the next fire lands one period from now.
				sl.due = k.now + sl.period
				break
			}
			sl.due += sl.period
			if !k.runTimer(sl.fn) {
				sl.inUse = false
				sl.fn = nil
				return
			}
		}
	}
}

// runTimer calls fn, turning a panic into the process panic report.
func (k *Kernel) runTimer(fn func()) (ok bool) {
	defer func() {
		if r := recover(); r != nil {
			triggerPanic(PanicInfo{Timer: true, Tick: k.now, Value: r})
			ok = false
		}
	}()
	fn()
	return true
}
