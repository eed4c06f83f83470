package timecontrol

import (
	"errors"
	"fmt"
)

// ErrInvalidFallback is returned when a uniform schedule cannot be built from
// the given delay and step count.
var ErrInvalidFallback = errors.New("timecontrol: invalid uniform schedule")

// Uniform is a clock that ticks every hour and lets time elapse every delay
// ticks: step i has dt=delay when i is a multiple of delay and dt=0 otherwise.
type Uniform struct {
	delay int
	steps int
}

// SimpleDelayTiming creates a Uniform schedule of steps steps. delay must be
// positive and steps must not be negative.
func SimpleDelayTiming(delay, steps int) (*Uniform, error) {
	if delay <= 0 {
		return nil, fmt.Errorf("%w: delay %d", ErrInvalidFallback, delay)
	}

	if steps < 0 {
		return nil, fmt.Errorf("%w: steps %d", ErrInvalidFallback, steps)
	}

	return &Uniform{delay: delay, steps: steps}, nil
}

// Delay returns the number of ticks between two active steps.
func (u *Uniform) Delay() int {
	return u.delay
}

// Steps returns the number of steps a cursor yields.
func (u *Uniform) Steps() int {
	return u.steps
}

// Begin returns a cursor at step 0.
func (u *Uniform) Begin() Cursor[*Step] {
	return &uniformCursor{delay: u.delay, steps: u.steps}
}

type uniformCursor struct {
	delay int
	steps int
	i     int
}

func (c *uniformCursor) Next() (*Step, bool) {
	if c.i >= c.steps {
		return nil, false
	}

	step := NewStep(0)
	if c.i%c.delay == 0 {
		step.SetDT(float64(c.delay))
	}

	c.i++

	return step, true
}

var _ Sequence[*Step] = (*Uniform)(nil)
