package app

import (
	"errors"
	"fmt"
	"time"

	"tally/hal"
	"tally/internal/buildinfo"
	"tally/kernel"
	"tally/services/input"
	"tally/services/logger"
	"tally/tasks/scoreboard"
)

// stepBudget bounds the task steps run per frame.
const stepBudget = 64

// ErrTaskPanic is returned by Step once any task has panicked.
var ErrTaskPanic = errors.New("app: task panic")

type Config struct {
	// Interval is the stopwatch period; zero means one second.
	Interval time.Duration
	// Verbose logs every stopwatch tick.
	Verbose bool
}

// System is the running program: a kernel with the logger and input services
// and the scoreboard view.
type System struct {
	k     *kernel.Kernel
	ticks <-chan uint64
	board *scoreboard.Task

	log        hal.Logger
	logEP      kernel.Capability
	logRefused uint32
}

// New initializes the system on h. The returned System does nothing until
// Step is called.
func New(h hal.HAL, cfg Config) (*System, error) {
	if h == nil {
		return nil, errors.New("app: nil HAL")
	}
	installPanicHandler(h)

	k := kernel.New()

	logEP := k.NewEndpoint(kernel.RightSend | kernel.RightRecv)
	boardEP := k.NewEndpoint(kernel.RightSend | kernel.RightRecv)

	board, err := scoreboard.New(h.Display(), boardEP.Restrict(kernel.RightRecv), logEP.Restrict(kernel.RightSend), k,
		scoreboard.Config{Interval: intervalTicks(cfg.Interval), Verbose: cfg.Verbose})
	if err != nil {
		return nil, fmt.Errorf("app: %w", err)
	}

	tasks := []kernel.Task{
		logger.New(h.Logger(), logEP.Restrict(kernel.RightRecv)),
		input.New(h.Input(), boardEP.Restrict(kernel.RightSend)),
		board,
	}
	for _, t := range tasks {
		if _, ok := k.AddTask(t); !ok {
			return nil, errors.New("app: task table full")
		}
	}

	s := &System{k: k, board: board, log: h.Logger(), logEP: logEP}
	if ht := h.Time(); ht != nil {
		s.ticks = ht.Ticks()
	}
	if l := h.Logger(); l != nil {
		l.WriteLineString("tally: boot " + buildinfo.Short())
	}
	return s, nil
}

// Step advances the kernel clock to the latest HAL tick and runs tasks until
// they are idle or the per-frame budget is spent.
func (s *System) Step() error {
	if kernel.InPanicMode() {
		return ErrTaskPanic
	}
	got := false
	for {
		select {
		case seq := <-s.ticks:
			s.k.TickTo(seq)
			got = true
			continue
		default:
		}
		break
	}
	if !got {
		// Input arrives without a tick; wake the services anyway.
		s.k.Tick()
	}
	s.k.RunPending(stepBudget)
	if kernel.InPanicMode() {
		return ErrTaskPanic
	}
	s.reportLogBackpressure()
	return nil
}

// reportLogBackpressure writes straight to the HAL logger when tasks found the
// logger queue full since the last step.
func (s *System) reportLogBackpressure() {
	n := s.k.Dropped(s.logEP)
	if n == s.logRefused {
		return
	}
	if s.log != nil {
		s.log.WriteLineString(fmt.Sprintf("tally: log queue full, %d sends refused", n-s.logRefused))
	}
	s.logRefused = n
}

// Board returns the scoreboard view.
func (s *System) Board() *scoreboard.Task { return s.board }

// Now returns the kernel clock in HAL ticks.
func (s *System) Now() uint64 { return s.k.Now() }

func intervalTicks(d time.Duration) uint64 {
	if d <= 0 {
		d = time.Second
	}
	n := uint64(d / hal.TickDuration)
	if n == 0 {
		n = 1
	}
	return n
}
