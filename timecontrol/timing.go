package timecontrol

import (
	"errors"
	"fmt"
	"math"
)

var (
	// ErrLengthMismatch is returned when delays and datas differ in length.
	ErrLengthMismatch = errors.New("timecontrol: delays and datas lengths differ")

	// ErrInvalidDelay is returned for negative or non-finite delays.
	ErrInvalidDelay = errors.New("timecontrol: invalid delay")
)

// DelayToTiming flattens blocks into ticks. Block i lasts trunc(delays[i])
// ticks; its first tick is Event(datas[i]), or Mark when datas is nil, and
// the remaining ticks are Fillers.
//
// A delay that truncates to zero yields no tick at all, so the payload of
// that block never shows up in the output.
func DelayToTiming[T any](delays []float64, datas []T) ([]Tick[T], error) {
	if datas != nil && len(datas) != len(delays) {
		return nil, fmt.Errorf("%w: %d delays, %d datas",
			ErrLengthMismatch, len(delays), len(datas))
	}

	total := 0
	for i, d := range delays {
		if d < 0 || math.IsNaN(d) || math.IsInf(d, 0) {
			return nil, fmt.Errorf("%w: delays[%d] = %v", ErrInvalidDelay, i, d)
		}

		total += int(d)
	}

	ticks := make([]Tick[T], 0, total)
	for i, d := range delays {
		n := int(d)
		for j := 0; j < n; j++ {
			switch {
			case j > 0:
				ticks = append(ticks, Filler[T]())
			case datas != nil:
				ticks = append(ticks, Event(datas[i]))
			default:
				ticks = append(ticks, Mark[T]())
			}
		}
	}

	return ticks, nil
}

// Timing is a restartable sequence of ticks built from block durations and
// optional per-block payloads.
type Timing[T any] struct {
	delays []float64
	datas  []T
	length int
}

// NewTiming validates the blocks and stores a copy of them.
func NewTiming[T any](delays []float64, datas []T) (*Timing[T], error) {
	ticks, err := DelayToTiming(delays, datas)
	if err != nil {
		return nil, err
	}

	t := &Timing[T]{
		delays: append([]float64(nil), delays...),
		length: len(ticks),
	}

	if datas != nil {
		t.datas = append(make([]T, 0, len(datas)), datas...)
	}

	return t, nil
}

// Delays returns the block durations.
func (t *Timing[T]) Delays() []float64 {
	return append([]float64(nil), t.delays...)
}

// Len returns the number of ticks a cursor yields.
func (t *Timing[T]) Len() int {
	return t.length
}

// Begin rebuilds the ticks from the stored blocks and returns a cursor at the
// first tick.
func (t *Timing[T]) Begin() Cursor[Tick[T]] {
	ticks, err := DelayToTiming(t.delays, t.datas)
	if err != nil {
		// The blocks were validated by NewTiming and are never modified.
		panic(err)
	}

	return &sliceCursor[Tick[T]]{items: ticks}
}

var _ Sequence[Tick[int]] = (*Timing[int])(nil)
