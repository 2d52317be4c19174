// internal/sched/clock.go

package sched

import "github.com/pkg/errors"

// SimClock is the simulated time of one run. It only moves forward, from
// one completion event to the next.
type SimClock struct {
	now   int
	steps int64
}

// NewSimClock creates a clock at t=0.
func NewSimClock() *SimClock { return &SimClock{} }

// Now returns the current simulated time.
func (c *SimClock) Now() int { return c.now }

// Steps returns how many times the clock has advanced.
func (c *SimClock) Steps() int64 { return c.steps }

// AdvanceTo moves the clock to t.
func (c *SimClock) AdvanceTo(t int) error {
	if t < c.now {
		return errors.Errorf("clock cannot move back from %d to %d", c.now, t)
	}
	c.now = t
	c.steps++
	return nil
}
