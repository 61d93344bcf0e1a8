// Package observe provides the change-notification half of a state holder.
//
// A holder embeds a Subject, mutates its own fields, then calls Notify. Callbacks
// run synchronously on the caller's goroutine in subscription order.
package observe

type subscription struct {
	fn        func()
	cancelled bool
}

// Subject is a list of change callbacks. The zero value is ready to use.
// It is not safe for concurrent use.
type Subject struct {
	subs []*subscription
}

// Subscribe registers fn and returns a func that removes it. Cancel is idempotent
// and may be called from inside a callback; a cancelled callback is not invoked
// again, even later in the same Notify.
func (s *Subject) Subscribe(fn func()) (cancel func()) {
	if fn == nil {
		return func() {}
	}
	sub := &subscription{fn: fn}
	s.subs = append(s.subs, sub)
	return func() { s.remove(sub) }
}

// Notify calls every live subscriber. Subscribers added during Notify are first
// called on the next Notify.
func (s *Subject) Notify() {
	if len(s.subs) == 0 {
		return
	}
	snapshot := make([]*subscription, len(s.subs))
	copy(snapshot, s.subs)
	for _, sub := range snapshot {
		if sub.cancelled {
			continue
		}
		sub.fn()
	}
}

// Len returns the number of live subscribers.
func (s *Subject) Len() int { return len(s.subs) }

func (s *Subject) remove(sub *subscription) {
	if sub.cancelled {
		return
	}
	sub.cancelled = true
	for i, cur := range s.subs {
		if cur == sub {
			s.subs = append(s.subs[:i], s.subs[i+1:]...)
			return
		}
	}
}
