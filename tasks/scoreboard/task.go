package scoreboard

import (
	"errors"
	"fmt"

	logclient "tally/client/logger"
	"tally/hal"
	"tally/kernel"
	"tally/model"
	"tally/proto"
	"tally/ui"
)

// focusOrder is the keyboard traversal order of the buttons.
var focusOrder = []string{ActionIncrement, ActionStart, ActionStop, ActionReset}

const maxPendingLogs = 32

type Config struct {
	// Interval is the stopwatch period in kernel ticks.
	Interval uint64
	// Verbose logs every stopwatch tick.
	Verbose bool
}

// Task is the composite view: it owns the score counter and the stopwatch,
// repaints the framebuffer whenever either changes and turns input messages
// into button presses.
type Task struct {
	inbox  kernel.Capability
	logCap kernel.Capability
	cfg    Config

	canvas *ui.Canvas
	frame  *ui.Frame

	progress  *model.ScoreCounter
	stopwatch *model.Stopwatch
	cancels   []func()

	focus int
	armed string

	logs []string
}

// New builds the view and paints it once. inbox receives MsgKey/MsgPointer;
// logCap may be invalid, in which case log lines are discarded.
func New(disp hal.Display, inbox, logCap kernel.Capability, sched kernel.Scheduler, cfg Config) (*Task, error) {
	if disp == nil {
		return nil, errors.New("scoreboard: no display")
	}
	canvas := ui.NewCanvas(disp.Framebuffer())
	if canvas == nil {
		return nil, errors.New("scoreboard: no RGB565 framebuffer")
	}
	sw, err := model.NewStopwatch(sched, cfg.Interval)
	if err != nil {
		return nil, fmt.Errorf("scoreboard: %w", err)
	}
	t := &Task{
		inbox:     inbox,
		logCap:    logCap,
		cfg:       cfg,
		canvas:    canvas,
		progress:  model.NewScoreCounter(),
		stopwatch: sw,
		focus:     -1,
	}
	t.cancels = append(t.cancels,
		t.progress.Subscribe(t.render),
		t.stopwatch.Subscribe(t.render),
	)
	if cfg.Verbose {
		t.cancels = append(t.cancels, t.stopwatch.Subscribe(func() {
			t.queueLog(fmt.Sprintf("scoreboard: tick %d", t.stopwatch.Elapsed()))
		}))
	}
	t.render()
	return t, nil
}

// Score returns the current score.
func (t *Task) Score() int { return t.progress.Score() }

// Elapsed returns the stopwatch count.
func (t *Task) Elapsed() int { return t.stopwatch.Elapsed() }

// Running reports whether the stopwatch is counting.
func (t *Task) Running() bool { return t.stopwatch.Running() }

// Focused returns the focused button ID, or "".
func (t *Task) Focused() string {
	if t.focus < 0 {
		return ""
	}
	return focusOrder[t.focus]
}

// Frame returns the most recent render.
func (t *Task) Frame() *ui.Frame { return t.frame }

// Close drops the view's subscriptions and stops the stopwatch.
func (t *Task) Close() {
	for _, cancel := range t.cancels {
		cancel()
	}
	t.cancels = nil
	t.stopwatch.Stop()
}

func (t *Task) Step(ctx *kernel.Context) {
	for {
		msg, ok := ctx.TryRecv(t.inbox)
		if !ok {
			break
		}
		t.handle(msg)
	}
	t.flushLogs(ctx)
	ctx.BlockOnTick()
}

func (t *Task) handle(msg kernel.Message) {
	switch proto.Kind(msg.Kind) {
	case proto.MsgKey:
		code, press, r, ok := proto.DecodeKeyPayload(msg.Payload())
		if !ok || !press {
			return
		}
		t.key(hal.KeyCode(code), r)
	case proto.MsgPointer:
		x, y, press, ok := proto.DecodePointerPayload(msg.Payload())
		if !ok {
			return
		}
		t.pointer(int(x), int(y), press)
	}
}

func (t *Task) key(code hal.KeyCode, r rune) {
	switch code {
	case hal.KeyTab, hal.KeyRight:
		t.moveFocus(1)
		return
	case hal.KeyLeft:
		t.moveFocus(-1)
		return
	case hal.KeyEnter, hal.KeySpace:
		if id := t.Focused(); id != "" {
			t.perform(id)
		}
		return
	case hal.KeyEscape:
		if t.focus >= 0 {
			t.focus = -1
			t.render()
		}
		return
	}
	for id, sc := range Shortcuts {
		if r == sc {
			t.perform(id)
			return
		}
	}
}

func (t *Task) moveFocus(delta int) {
	n := len(focusOrder)
	switch {
	case t.focus < 0 && delta > 0:
		t.focus = 0
	case t.focus < 0:
		t.focus = n - 1
	default:
		t.focus = (t.focus + delta + n) % n
	}
	t.render()
}

// pointer fires a button when press and release both land on it.
func (t *Task) pointer(x, y int, press bool) {
	reg, hit := t.frame.Hit(x, y)
	if press {
		t.armed = ""
		if hit {
			t.armed = reg.ID
		}
		return
	}
	armed := t.armed
	t.armed = ""
	if hit && armed != "" && reg.ID == armed {
		t.perform(armed)
	}
}

// perform runs the action of the button with the given ID.
func (t *Task) perform(id string) {
	reg, ok := t.frame.Region(id)
	if !ok || reg.OnPress == nil {
		return
	}
	t.queueLog("scoreboard: " + id)
	reg.OnPress()
}

func (t *Task) start() {
	if err := t.stopwatch.Start(); err != nil {
		t.queueLog(fmt.Sprintf("scoreboard: %v", err))
	}
}

func (t *Task) render() {
	t.frame = ui.Render(t.canvas, t.body(), colorBackground, t.Focused())
}

func (t *Task) queueLog(line string) {
	if len(t.logs) >= maxPendingLogs {
		return
	}
	t.logs = append(t.logs, line)
}

func (t *Task) flushLogs(ctx *kernel.Context) {
	if !t.logCap.Valid() {
		t.logs = t.logs[:0]
		return
	}
	n := 0
	for n < len(t.logs) {
		if logclient.Log(ctx, t.logCap, t.logs[n]) == kernel.SendErrQueueFull {
			break
		}
		n++
	}
	t.logs = append(t.logs[:0], t.logs[n:]...)
}
