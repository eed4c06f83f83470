// Package partition cuts a time sequence into blocks of weather, either of a
// fixed duration or following contiguous rain and dry spells.
package partition

import (
	"errors"
	"fmt"
	"time"

	"github.com/sarchlab/astk/timecontrol"
	"github.com/sarchlab/astk/weather"
)

var (
	// ErrEmptySequence is returned for an empty time sequence.
	ErrEmptySequence = errors.New("partition: empty time sequence")

	// ErrUnordered is returned when the time sequence is not strictly
	// increasing.
	ErrUnordered = errors.New("partition: time sequence is not strictly increasing")

	// ErrInvalidDelay is returned for non-positive chunk durations.
	ErrInvalidDelay = errors.New("partition: delay must be positive")

	// ErrNoWeather is returned when a split needs weather and has none.
	ErrNoWeather = errors.New("partition: weather table required")
)

// Blocks holds parallel block durations (hours) and weather slices. Datas
// entries are nil when the blocks were built without a weather table.
type Blocks struct {
	Delays []float64
	Datas  []weather.Table
}

// Len returns the number of blocks.
func (b Blocks) Len() int {
	return len(b.Delays)
}

// Total returns the summed duration in hours.
func (b Blocks) Total() float64 {
	total := 0.0
	for _, d := range b.Delays {
		total += d
	}

	return total
}

// Timing turns the blocks into a restartable tick sequence whose event ticks
// carry the weather slices.
func (b Blocks) Timing() (*timecontrol.Timing[weather.Table], error) {
	return timecontrol.NewTiming(b.Delays, b.Datas)
}

func checkSequence(times []time.Time) error {
	if len(times) == 0 {
		return ErrEmptySequence
	}

	for i := 1; i < len(times); i++ {
		if !times[i].After(times[i-1]) {
			return fmt.Errorf("%w: index %d (%s after %s)",
				ErrUnordered, i,
				times[i].Format(time.RFC3339),
				times[i-1].Format(time.RFC3339))
		}
	}

	return nil
}

func hoursBetween(from, to time.Time) float64 {
	return to.Sub(from).Hours()
}

// blocksFromStarts closes every block at the next start, and the last one an
// hour after the last timestamp of the sequence.
func blocksFromStarts(
	starts []time.Time,
	last time.Time,
	table weather.Table,
) Blocks {
	b := Blocks{
		Delays: make([]float64, len(starts)),
		Datas:  make([]weather.Table, len(starts)),
	}

	for i, start := range starts {
		end := last.Add(time.Hour)
		if i+1 < len(starts) {
			end = starts[i+1]
		}

		b.Delays[i] = hoursBetween(start, end)
		if table != nil {
			b.Datas[i] = table.Slice(start, end)
		}
	}

	return b
}
