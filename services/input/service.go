package input

import (
	"tally/hal"
	"tally/kernel"
	"tally/proto"
)

const maxPending = 32

// Service forwards HAL keyboard and pointer events to one endpoint as
// MsgKey / MsgPointer messages. Events that do not fit in the receiver's
// mailbox wait for the next tick; beyond maxPending they are dropped.
//
// Within one step all pending key events are forwarded before any pointer
// event; order inside each device is preserved.
type Service struct {
	in hal.Input
	to kernel.Capability

	keys     <-chan hal.KeyEvent
	pointers <-chan hal.PointerEvent

	pending [][]byte
	kinds   []proto.Kind
}

func New(in hal.Input, to kernel.Capability) *Service {
	s := &Service{in: in, to: to}
	if in != nil {
		if kbd := in.Keyboard(); kbd != nil {
			s.keys = kbd.Events()
		}
		if ptr := in.Pointer(); ptr != nil {
			s.pointers = ptr.Events()
		}
	}
	return s
}

func (s *Service) Step(ctx *kernel.Context) {
	s.drain()
	s.flush(ctx)
	ctx.BlockOnTick()
}

func (s *Service) drain() {
	for {
		select {
		case ev := <-s.keys:
			s.queue(proto.MsgKey, proto.KeyPayload(uint16(ev.Code), ev.Press, ev.Rune))
			continue
		default:
		}
		break
	}
	for {
		select {
		case ev := <-s.pointers:
			s.queue(proto.MsgPointer, proto.PointerPayload(clamp16(ev.X), clamp16(ev.Y), ev.Press))
			continue
		default:
		}
		return
	}
}

func (s *Service) queue(kind proto.Kind, payload []byte) {
	if len(s.pending) >= maxPending {
		return
	}
	s.kinds = append(s.kinds, kind)
	s.pending = append(s.pending, payload)
}

func (s *Service) flush(ctx *kernel.Context) {
	n := 0
	for n < len(s.pending) {
		res := ctx.TrySendTo(s.to, uint16(s.kinds[n]), s.pending[n])
		if res == kernel.SendErrQueueFull {
			break
		}
		n++
	}
	s.pending = append(s.pending[:0], s.pending[n:]...)
	s.kinds = append(s.kinds[:0], s.kinds[n:]...)
}

func clamp16(v int) int16 {
	if v > 1<<15-1 {
		return 1<<15 - 1
	}
	if v < -1<<15 {
		return -1 << 15
	}
	return int16(v)
}
