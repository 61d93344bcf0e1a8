package kernel

import (
	"sync"
	"testing"
)

func resetPanicState(t *testing.T) {
	t.Helper()
	reset := func() {
		panicActive.Store(false)
		panicOnce = sync.Once{}
		panicHandler.Store(func(PanicInfo) {})
	}
	reset()
	t.Cleanup(reset)
}

func TestTaskPanicIsRecovered(t *testing.T) {
	resetPanicState(t)

	var got []PanicInfo
	SetPanicHandler(func(info PanicInfo) { got = append(got, info) })

	k := New()
	k.AddTask(funcTask(func(ctx *Context) { ctx.BlockOnTick() }))
	bad, _ := k.AddTask(funcTask(func(*Context) { panic("boom") }))

	k.TickTo(42)
	k.RunPending(0)

	if len(got) != 1 {
		t.Fatalf("handler calls = %d, want 1", len(got))
	}
	if got[0].TaskID != bad || got[0].Value != "boom" {
		t.Fatalf("info = %+v", got[0])
	}
	if got[0].Tick != 42 {
		t.Fatalf("tick = %d, want 42", got[0].Tick)
	}
	if len(got[0].Stack) == 0 {
		t.Fatal("expected stack")
	}
	if !InPanicMode() {
		t.Fatal("expected panic mode")
	}
	if k.Step() {
		t.Fatal("kernel scheduled a task in panic mode")
	}
}

func TestTimerPanicIsRecovered(t *testing.T) {
	resetPanicState(t)

	var got []PanicInfo
	SetPanicHandler(func(info PanicInfo) { got = append(got, info) })

	k := New()
	calls := 0
	tm, _ := k.Repeat(10, func() {
		calls++
		panic("tick")
	})
	other := 0
	k.Repeat(10, func() { other++ })

	k.TickTo(30)

	if len(got) != 1 || !got[0].Timer || got[0].Value != "tick" || got[0].Tick != 30 {
		t.Fatalf("info = %+v", got)
	}
	if calls != 1 || other != 0 {
		t.Fatalf("calls = %d other = %d, want 1/0", calls, other)
	}
	if tm.Valid() {
		t.Fatal("panicking timer still scheduled")
	}
	if !InPanicMode() {
		t.Fatal("expected panic mode")
	}
}
