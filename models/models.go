// Package models provides simulation models that pace their own steps from
// weather data.
package models

import (
	"fmt"
	"time"

	"github.com/sarchlab/astk/partition"
	"github.com/sarchlab/astk/timecontrol"
	"github.com/sarchlab/astk/weather"
)

// Field names set on the steps produced by the models of this package.
const (
	FieldWeather = "weather"
	FieldRain    = "rain"
	FieldBlock   = "block"
)

// TicksToSteps converts blocks into a restartable sequence of steps. The step
// of an event tick lasts the whole block and carries the block weather under
// FieldWeather and the block index under FieldBlock; filler steps have dt=0.
// decorate, if not nil, may add fields to the event steps.
func TicksToSteps(
	blocks partition.Blocks,
	decorate func(block int, step *timecontrol.Step),
) (timecontrol.Sequence[*timecontrol.Step], error) {
	timing, err := blocks.Timing()
	if err != nil {
		return nil, err
	}

	delays := blocks.Delays

	return timecontrol.FuncSequence[*timecontrol.Step](
		func() timecontrol.Cursor[*timecontrol.Step] {
			return &stepCursor{
				ticks:    timing.Begin(),
				delays:   delays,
				block:    -1,
				decorate: decorate,
			}
		}), nil
}

type stepCursor struct {
	ticks    timecontrol.Cursor[timecontrol.Tick[weather.Table]]
	delays   []float64
	block    int
	decorate func(block int, step *timecontrol.Step)
}

func (c *stepCursor) Next() (*timecontrol.Step, bool) {
	tick, ok := c.ticks.Next()
	if !ok {
		return nil, false
	}

	if tick.IsFiller() {
		return timecontrol.NewStep(0), true
	}

	c.block = c.nextNonEmptyBlock()
	step := timecontrol.NewStep(c.delays[c.block])
	step.Set(FieldBlock, c.block)
	if table, found := tick.Payload(); found {
		step.Set(FieldWeather, table)
	}

	if c.decorate != nil {
		c.decorate(c.block, step)
	}

	return step, true
}

// nextNonEmptyBlock skips the blocks that are too short to yield a tick.
func (c *stepCursor) nextNonEmptyBlock() int {
	b := c.block + 1
	for b < len(c.delays) && int(c.delays[b]) == 0 {
		b++
	}

	return b
}

func simulatedTimes(
	table weather.Table,
	steps int,
	start time.Time,
) ([]time.Time, error) {
	if table == nil {
		return nil, partition.ErrNoWeather
	}

	if steps <= 0 {
		return nil, fmt.Errorf("models: %d steps requested", steps)
	}

	if start.IsZero() {
		times := table.Times()
		if len(times) == 0 {
			return nil, partition.ErrEmptySequence
		}

		start = times[0]
	}

	return weather.HourlyTimes(start, steps), nil
}
