package partition

import (
	"math"
	"time"

	"github.com/sarchlab/astk/weather"
)

// TimeSplit cuts times into blocks of delay hours. A timestamp starts a block
// when its offset from times[0], in hours, is an exact multiple of delay.
// table may be nil, in which case the blocks carry no weather.
func TimeSplit(
	times []time.Time,
	table weather.Table,
	delay float64,
) (Blocks, error) {
	if err := checkSequence(times); err != nil {
		return Blocks{}, err
	}

	if !(delay > 0) || math.IsInf(delay, 0) {
		return Blocks{}, ErrInvalidDelay
	}

	starts := make([]time.Time, 0, len(times))
	for _, t := range times {
		offset := hoursBetween(times[0], t)
		if math.Mod(offset, delay) == 0 {
			starts = append(starts, t)
		}
	}

	return blocksFromStarts(starts, times[len(times)-1], table), nil
}
