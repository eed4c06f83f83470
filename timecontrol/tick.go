package timecontrol

import "fmt"

type tickKind uint8

const (
	tickFiller tickKind = iota
	tickMark
	tickEvent
)

// A Tick is one elementary unit of simulated time. The first tick of a block
// is either an Event carrying the block payload or a bare Mark when the block
// has no payload. All other ticks of a block are Fillers.
type Tick[T any] struct {
	kind    tickKind
	payload T
}

// Event creates an event tick carrying payload.
func Event[T any](payload T) Tick[T] {
	return Tick[T]{kind: tickEvent, payload: payload}
}

// Mark creates an event tick without payload.
func Mark[T any]() Tick[T] {
	return Tick[T]{kind: tickMark}
}

// Filler creates a non-event tick.
func Filler[T any]() Tick[T] {
	return Tick[T]{kind: tickFiller}
}

// IsEvent is false for filler ticks and true otherwise.
func (t Tick[T]) IsEvent() bool {
	return t.kind != tickFiller
}

// IsFiller is the negation of IsEvent.
func (t Tick[T]) IsFiller() bool {
	return t.kind == tickFiller
}

// Payload returns the payload of an Event tick.
func (t Tick[T]) Payload() (T, bool) {
	if t.kind != tickEvent {
		var zero T
		return zero, false
	}

	return t.payload, true
}

func (t Tick[T]) String() string {
	switch t.kind {
	case tickEvent:
		return fmt.Sprintf("event(%v)", t.payload)
	case tickMark:
		return "mark"
	default:
		return "filler"
	}
}
