//go:build !tinygo

package hal

import "time"

// TickDuration is the length of one host tick.
const TickDuration = time.Millisecond

type hostTime struct {
	ch  chan uint64
	seq uint64

	last time.Time
	acc  time.Duration
}

func newHostTime() *hostTime {
	return &hostTime{ch: make(chan uint64, 1024)}
}

func (t *hostTime) Ticks() <-chan uint64 { return t.ch }

// step advances by the wall-clock time since the previous call.
func (t *hostTime) step() {
	now := time.Now()
	if t.last.IsZero() {
		t.last = now
		t.acc = 0
		return
	}
	d := now.Sub(t.last)
	t.last = now
	t.advance(d)
}

// advance adds d to the clock, publishing one sequence number per whole tick.
func (t *hostTime) advance(d time.Duration) {
	if d <= 0 {
		return
	}
	t.acc += d
	ticks := uint64(t.acc / TickDuration)
	if ticks == 0 {
		return
	}
	t.acc = t.acc % TickDuration
	t.stepN(ticks)
}

// stepN publishes the new sequence number. Consumers only care about the latest
// value, so intermediate values are coalesced and a full channel drops the send.
func (t *hostTime) stepN(n uint64) {
	t.seq += n
	select {
	case t.ch <- t.seq:
	default:
	}
}
