package models

import (
	"time"

	"github.com/sarchlab/astk/partition"
	"github.com/sarchlab/astk/timecontrol"
	"github.com/sarchlab/astk/weather"
)

// PacedModel advances every delay hours and hands each step the weather
// observed since the previous one.
type PacedModel struct {
	Name string
}

// Timing splits the steps hours following start into blocks of delay hours.
// A zero start means the first timestamp of the table.
func (m *PacedModel) Timing(
	delay, steps int,
	table weather.Table,
	start time.Time,
) (timecontrol.Sequence[*timecontrol.Step], error) {
	times, err := simulatedTimes(table, steps, start)
	if err != nil {
		return nil, err
	}

	blocks, err := partition.TimeSplit(times, table, float64(delay))
	if err != nil {
		return nil, err
	}

	return TicksToSteps(blocks, nil)
}

var _ timecontrol.TimedModel = (*PacedModel)(nil)
