package timecontrol

import "iter"

// A Cursor walks a sequence once. Next returns false when the sequence is
// exhausted; that is the normal termination signal, not an error.
type Cursor[T any] interface {
	Next() (T, bool)
}

// A Sequence is a restartable source of items. Every call to Begin returns a
// new, independent cursor positioned at the first item.
type Sequence[T any] interface {
	Begin() Cursor[T]
}

// All returns a range-over-func iterator over a fresh cursor of s.
func All[T any](s Sequence[T]) iter.Seq[T] {
	return func(yield func(T) bool) {
		c := s.Begin()
		for {
			item, ok := c.Next()
			if !ok {
				return
			}

			if !yield(item) {
				return
			}
		}
	}
}

// Collect drains a fresh cursor of s.
func Collect[T any](s Sequence[T]) []T {
	var items []T
	for item := range All(s) {
		items = append(items, item)
	}

	return items
}

// SliceSequence replays a fixed list of items.
type SliceSequence[T any] []T

// Begin returns a cursor at the first element.
func (s SliceSequence[T]) Begin() Cursor[T] {
	return &sliceCursor[T]{items: s}
}

type sliceCursor[T any] struct {
	items []T
	pos   int
}

func (c *sliceCursor[T]) Next() (T, bool) {
	if c.pos >= len(c.items) {
		var zero T
		return zero, false
	}

	item := c.items[c.pos]
	c.pos++

	return item, true
}

// AsStream erases the item type of s so that it can be combined with other
// sequences by a Controller.
func AsStream[T any](s Sequence[T]) Sequence[any] {
	if erased, ok := any(s).(Sequence[any]); ok {
		return erased
	}

	return streamAdapter[T]{inner: s}
}

type streamAdapter[T any] struct {
	inner Sequence[T]
}

func (a streamAdapter[T]) Begin() Cursor[any] {
	return streamCursor[T]{inner: a.inner.Begin()}
}

type streamCursor[T any] struct {
	inner Cursor[T]
}

func (c streamCursor[T]) Next() (any, bool) {
	item, ok := c.inner.Next()
	if !ok {
		return nil, false
	}

	return item, true
}

// FuncSequence adapts a cursor factory into a Sequence.
type FuncSequence[T any] func() Cursor[T]

// Begin calls f.
func (f FuncSequence[T]) Begin() Cursor[T] {
	return f()
}
