//go:build !tinygo

package hal

type hostKeyboard struct {
	ch chan KeyEvent
}

func newHostKeyboard() *hostKeyboard {
	return &hostKeyboard{ch: make(chan KeyEvent, 64)}
}

func (k *hostKeyboard) Events() <-chan KeyEvent { return k.ch }

func (k *hostKeyboard) push(ev KeyEvent) {
	select {
	case k.ch <- ev:
	default:
	}
}

type hostPointer struct {
	ch   chan PointerEvent
	down bool
}

func newHostPointer() *hostPointer {
	return &hostPointer{ch: make(chan PointerEvent, 64)}
}

func (p *hostPointer) Events() <-chan PointerEvent { return p.ch }

func (p *hostPointer) push(ev PointerEvent) {
	select {
	case p.ch <- ev:
	default:
	}
}
