package partition

import (
	"fmt"
	"time"

	"github.com/sarchlab/astk/weather"
)

// RainFilter keeps the timestamps that start a rain spell or a dry spell: the
// first timestamp and every timestamp whose rain state differs from the
// previous one. Any positive amount is the raining state; other readings are
// compared as they are, so a negative sensor value next to a zero also starts
// a new block.
func RainFilter(times []time.Time, table weather.Table) ([]time.Time, error) {
	if err := checkSequence(times); err != nil {
		return nil, err
	}

	if table == nil {
		return nil, ErrNoWeather
	}

	starts := make([]time.Time, 0, len(times))
	prev := 0.0
	for i, t := range times {
		rain, err := table.Rain(t)
		if err != nil {
			return nil, fmt.Errorf("partition: rain filter: %w", err)
		}

		state := rainState(rain)
		if i == 0 || state != prev {
			starts = append(starts, t)
		}

		prev = state
	}

	return starts, nil
}

func rainState(rain float64) float64 {
	if rain > 0 {
		return 1
	}

	return rain
}

// RainSplit cuts times into alternating rain and dry blocks.
func RainSplit(times []time.Time, table weather.Table) (Blocks, error) {
	starts, err := RainFilter(times, table)
	if err != nil {
		return Blocks{}, err
	}

	return blocksFromStarts(starts, times[len(times)-1], table), nil
}
