package logger

import (
	"strings"
	"testing"

	logclient "tally/client/logger"
	"tally/kernel"
)

type lineLog struct {
	lines []string
}

func (l *lineLog) WriteLineString(s string) { l.lines = append(l.lines, s) }
func (l *lineLog) WriteLineBytes(b []byte)  { l.lines = append(l.lines, string(b)) }

type sendTask struct {
	to    kernel.Capability
	lines []string
	res   []kernel.SendResult
}

func (t *sendTask) Step(ctx *kernel.Context) {
	for _, line := range t.lines {
		t.res = append(t.res, logclient.Log(ctx, t.to, line))
	}
	t.lines = nil
	ctx.BlockOnTick()
}

func TestServiceWritesLines(t *testing.T) {
	k := kernel.New()
	ep := k.NewEndpoint(kernel.RightSend | kernel.RightRecv)

	out := &lineLog{}
	sender := &sendTask{to: ep.Restrict(kernel.RightSend), lines: []string{"a: one", "b: two"}}
	k.AddTask(sender)
	k.AddTask(New(out, ep.Restrict(kernel.RightRecv)))

	k.RunPending(0)

	if strings.Join(out.lines, "|") != "a: one|b: two" {
		t.Fatalf("lines = %q", out.lines)
	}
	for i, res := range sender.res {
		if res != kernel.SendOK {
			t.Fatalf("send %d = %s", i, res)
		}
	}
}

func TestLogTruncatesLongLines(t *testing.T) {
	k := kernel.New()
	ep := k.NewEndpoint(kernel.RightSend | kernel.RightRecv)

	out := &lineLog{}
	long := strings.Repeat("x", kernel.MaxMessageBytes+20)
	k.AddTask(&sendTask{to: ep, lines: []string{long}})
	k.AddTask(New(out, ep))
	k.RunPending(0)

	if len(out.lines) != 1 {
		t.Fatalf("lines = %d, want 1", len(out.lines))
	}
	if got := len(out.lines[0]); got != kernel.MaxMessageBytes {
		t.Fatalf("line len = %d, want %d", got, kernel.MaxMessageBytes)
	}
}

func TestLogDropsWhenFull(t *testing.T) {
	k := kernel.New()
	ep := k.NewEndpoint(kernel.RightSend | kernel.RightRecv)

	var lines []string
	for i := 0; i < 9; i++ {
		lines = append(lines, "line")
	}
	sender := &sendTask{to: ep, lines: lines}
	k.AddTask(sender)
	k.Step()

	if got := sender.res[len(sender.res)-1]; got != kernel.SendErrQueueFull {
		t.Fatalf("ninth send = %s, want %s", got, kernel.SendErrQueueFull)
	}
}
