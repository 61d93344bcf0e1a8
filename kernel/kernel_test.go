package kernel

import "testing"

type funcTask func(*Context)

func (f funcTask) Step(ctx *Context) { f(ctx) }

func TestCapabilityRestrict(t *testing.T) {
	k := New()
	c := k.NewEndpoint(RightSend | RightRecv)
	if !c.Valid() {
		t.Fatal("expected valid capability")
	}
	send := c.Restrict(RightSend)
	if !send.canSend() || send.canRecv() {
		t.Fatalf("Restrict(RightSend) rights = %b", send.rights)
	}
	if got := send.Restrict(RightRecv); got.Valid() {
		t.Fatal("restricting a send-only capability to recv should be invalid")
	}
	if got := (Capability{}).Restrict(RightSend); got.Valid() {
		t.Fatal("restricting the zero capability should stay invalid")
	}
}

func TestSendRecvRights(t *testing.T) {
	k := New()
	ep := k.NewEndpoint(RightSend | RightRecv)
	ctx := &Context{k: k}

	if res := ctx.TrySendTo(ep.Restrict(RightRecv), 1, nil); res != SendErrToNoSendRight {
		t.Fatalf("send via recv-only cap = %s, want %s", res, SendErrToNoSendRight)
	}
	if res := ctx.TrySendTo(Capability{}, 1, nil); res != SendErrInvalidToCap {
		t.Fatalf("send via zero cap = %s, want %s", res, SendErrInvalidToCap)
	}
	var detached Context
	if res := detached.TrySendTo(ep, 1, nil); res != SendErrNoEndpoint {
		t.Fatalf("send from detached context = %s, want %s", res, SendErrNoEndpoint)
	}

	big := make([]byte, MaxMessageBytes+1)
	if res := ctx.TrySendTo(ep, 1, big); res != SendErrPayloadTooLarge {
		t.Fatalf("oversized send = %s, want %s", res, SendErrPayloadTooLarge)
	}

	if !ctx.SendTo(ep.Restrict(RightSend), 7, []byte("hi")) {
		t.Fatal("SendTo failed")
	}
	if _, ok := ctx.TryRecv(ep.Restrict(RightSend)); ok {
		t.Fatal("TryRecv via send-only cap should fail")
	}
	msg, ok := ctx.TryRecv(ep.Restrict(RightRecv))
	if !ok {
		t.Fatal("TryRecv found nothing")
	}
	if msg.Kind != 7 || string(msg.Payload()) != "hi" {
		t.Fatalf("msg = kind %d payload %q", msg.Kind, msg.Payload())
	}
}

func TestMailboxFull(t *testing.T) {
	k := New()
	ep := k.NewEndpoint(RightSend | RightRecv)
	ctx := &Context{k: k}

	for i := 0; i < mailboxSlots; i++ {
		if res := ctx.TrySendTo(ep, 1, []byte("x")); res != SendOK {
			t.Fatalf("send %d = %s, want ok", i, res)
		}
	}
	if res := ctx.TrySendTo(ep, 1, []byte("x")); res != SendErrQueueFull {
		t.Fatalf("send on full queue = %s, want %s", res, SendErrQueueFull)
	}
	if got := k.Dropped(ep.Restrict(RightRecv)); got != 1 {
		t.Fatalf("Dropped = %d, want 1", got)
	}

	// Draining and refilling wraps the ring without losing order.
	for i := 0; i < 3; i++ {
		ctx.TryRecv(ep)
	}
	for i := 0; i < 3; i++ {
		ctx.SendTo(ep, uint16(10+i), nil)
	}
	var kinds []uint16
	for {
		msg, ok := ctx.TryRecv(ep)
		if !ok {
			break
		}
		kinds = append(kinds, msg.Kind)
	}
	if len(kinds) != mailboxSlots || kinds[mailboxSlots-1] != 12 || kinds[mailboxSlots-3] != 10 {
		t.Fatalf("kinds = %v", kinds)
	}
	if got := k.Dropped(Capability{}); got != 0 {
		t.Fatalf("Dropped(zero cap) = %d", got)
	}
}

func TestMessagePayloadClampsLen(t *testing.T) {
	var msg Message
	msg.Len = MaxMessageBytes + 10
	if got := len(msg.Payload()); got != MaxMessageBytes {
		t.Fatalf("expected payload length %d, got %d", MaxMessageBytes, got)
	}
}

func TestBlockOnRecvWakesOnSend(t *testing.T) {
	k := New()
	ep := k.NewEndpoint(RightSend | RightRecv)

	var got []string
	k.AddTask(funcTask(func(ctx *Context) {
		for {
			msg, ok := ctx.TryRecv(ep)
			if !ok {
				break
			}
			got = append(got, string(msg.Payload()))
		}
		ctx.BlockOnRecv(ep)
	}))

	if n := k.RunPending(0); n != 1 {
		t.Fatalf("RunPending = %d, want 1", n)
	}
	if n := k.RunPending(0); n != 0 {
		t.Fatalf("blocked task ran %d times", n)
	}

	ctx := &Context{k: k}
	ctx.SendTo(ep, 1, []byte("a"))
	if n := k.RunPending(0); n != 1 {
		t.Fatalf("RunPending after send = %d, want 1", n)
	}
	if len(got) != 1 || got[0] != "a" {
		t.Fatalf("got = %v, want [a]", got)
	}
}

func TestBlockOnRecvWithQueuedMessageStaysRunnable(t *testing.T) {
	k := New()
	ep := k.NewEndpoint(RightSend | RightRecv)
	ctx := &Context{k: k}

	steps := 0
	k.AddTask(funcTask(func(c *Context) {
		steps++
		if steps == 1 {
			// Leave the message queued.
			ctx.SendTo(ep, 1, nil)
			c.BlockOnRecv(ep)
			return
		}
		c.TryRecv(ep)
		c.BlockOnRecv(ep)
	}))

	if n := k.RunPending(0); n != 2 {
		t.Fatalf("RunPending = %d, want 2", n)
	}
}

func TestBlockOnTick(t *testing.T) {
	k := New()
	steps := 0
	k.AddTask(funcTask(func(ctx *Context) {
		steps++
		ctx.BlockOnTick()
	}))

	k.RunPending(0)
	k.RunPending(0)
	if steps != 1 {
		t.Fatalf("steps = %d, want 1", steps)
	}
	k.TickTo(1)
	k.RunPending(0)
	if steps != 2 {
		t.Fatalf("steps after tick = %d, want 2", steps)
	}
}

func TestRoundRobin(t *testing.T) {
	k := New()
	var order []int
	for i := 0; i < 3; i++ {
		i := i
		k.AddTask(funcTask(func(ctx *Context) {
			order = append(order, i)
			ctx.BlockOnTick()
		}))
	}
	k.RunPending(0)
	if len(order) != 3 || order[0] != 0 || order[1] != 1 || order[2] != 2 {
		t.Fatalf("order = %v, want [0 1 2]", order)
	}
}

func TestRunPendingBudget(t *testing.T) {
	k := New()
	k.AddTask(funcTask(func(*Context) {}))
	if n := k.RunPending(5); n != 5 {
		t.Fatalf("RunPending(5) = %d, want 5", n)
	}
}

func TestAddTaskFull(t *testing.T) {
	k := New()
	for i := 0; i < maxTasks; i++ {
		if _, ok := k.AddTask(funcTask(func(*Context) {})); !ok {
			t.Fatalf("AddTask %d failed", i)
		}
	}
	if _, ok := k.AddTask(funcTask(func(*Context) {})); ok {
		t.Fatal("AddTask beyond capacity succeeded")
	}
	if _, ok := New().AddTask(nil); ok {
		t.Fatal("AddTask(nil) succeeded")
	}
}
