package model

import "tally/observe"

// ScoreCounter holds a score that only ever goes up.
type ScoreCounter struct {
	observe.Subject
	score int
}

func NewScoreCounter() *ScoreCounter {
	return &ScoreCounter{}
}

// Score returns the current score.
func (c *ScoreCounter) Score() int { return c.score }

// Increment adds one and notifies subscribers.
func (c *ScoreCounter) Increment() {
	c.score++
	c.Notify()
}
