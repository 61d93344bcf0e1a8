package model

import (
	"fmt"

	"tally/kernel"
	"tally/observe"
)

// Stopwatch counts whole intervals while running.
//
// It is Idle or Running; Running iff it holds a live timer. All methods must be
// called on the goroutine that drives the scheduler.
type Stopwatch struct {
	observe.Subject

	sched    kernel.Scheduler
	interval uint64

	elapsed int
	timer   kernel.Timer
	running bool
}

// NewStopwatch returns an idle stopwatch that ticks every interval scheduler ticks.
func NewStopwatch(sched kernel.Scheduler, interval uint64) (*Stopwatch, error) {
	if sched == nil {
		return nil, fmt.Errorf("stopwatch: nil scheduler")
	}
	if interval == 0 {
		return nil, fmt.Errorf("stopwatch: interval must be positive")
	}
	return &Stopwatch{sched: sched, interval: interval}, nil
}

// Elapsed returns the number of ticks counted since the last reset.
func (s *Stopwatch) Elapsed() int { return s.elapsed }

// Running reports whether a timer is active.
func (s *Stopwatch) Running() bool { return s.running }

// Start begins counting. Starting a running stopwatch cancels the current timer
// and schedules a fresh one, so the next tick is a full interval away.
func (s *Stopwatch) Start() error {
	s.cancel()
	t, err := s.sched.Repeat(s.interval, s.tick)
	if err != nil {
		return fmt.Errorf("stopwatch start: %w", err)
	}
	s.timer = t
	s.running = true
	return nil
}

// Stop cancels the timer, keeping the count.
func (s *Stopwatch) Stop() {
	s.cancel()
}

// Reset cancels the timer and sets the count to zero.
func (s *Stopwatch) Reset() {
	s.cancel()
	s.elapsed = 0
	s.Notify()
}

func (s *Stopwatch) cancel() {
	s.timer.Invalidate()
	s.timer = kernel.Timer{}
	s.running = false
}

func (s *Stopwatch) tick() {
	if !s.running {
		return
	}
	s.elapsed++
	s.Notify()
}
