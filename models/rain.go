package models

import (
	"time"

	"github.com/sarchlab/astk/partition"
	"github.com/sarchlab/astk/timecontrol"
	"github.com/sarchlab/astk/weather"
)

// RainModel advances once per rain spell and once per dry spell, so that
// rain-driven processes (spore dispersal, leaf wetness) see each event as a
// single step.
type RainModel struct {
	Name string
}

// Timing splits the steps hours following start into rain and dry blocks.
// delay is not used: rain decides the pace.
func (m *RainModel) Timing(
	_, steps int,
	table weather.Table,
	start time.Time,
) (timecontrol.Sequence[*timecontrol.Step], error) {
	times, err := simulatedTimes(table, steps, start)
	if err != nil {
		return nil, err
	}

	blocks, err := partition.RainSplit(times, table)
	if err != nil {
		return nil, err
	}

	return TicksToSteps(blocks, func(block int, step *timecontrol.Step) {
		step.Set(FieldRain, isRainBlock(blocks.Datas[block]))
	})
}

func isRainBlock(table weather.Table) bool {
	if table == nil || table.Len() == 0 {
		return false
	}

	rain, err := table.Rain(table.Times()[0])

	return err == nil && rain > 0
}

var _ timecontrol.TimedModel = (*RainModel)(nil)
