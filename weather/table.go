// Package weather holds time-indexed weather observations and the slicing
// operations the partitioners need.
package weather

import (
	"errors"
	"fmt"
	"sort"
	"time"
)

var (
	// ErrNoRecord is returned when a timestamp has no observation.
	ErrNoRecord = errors.New("weather: no record at timestamp")

	// ErrDuplicateTime is returned when two records share a timestamp.
	ErrDuplicateTime = errors.New("weather: duplicated timestamp")
)

// Table is a time-indexed weather dataset. Implementations must be safe to
// read after construction; slicing never mutates the receiver.
type Table interface {
	// Len returns the number of records.
	Len() int

	// Times returns the timestamps in chronological order.
	Times() []time.Time

	// At looks up the record observed exactly at t.
	At(t time.Time) (Record, bool)

	// Rain returns the rain amount observed at t.
	Rain(t time.Time) (float64, error)

	// Slice returns the records with before <= time < after.
	Slice(before, after time.Time) Table
}

// Record is one observation row.
type Record struct {
	Time   time.Time
	Rain   float64
	Values map[string]float64
}

// Value returns a named column. "rain" is always available.
func (r Record) Value(name string) (float64, bool) {
	if name == "rain" {
		return r.Rain, true
	}

	v, ok := r.Values[name]

	return v, ok
}

// Series is an in-memory Table backed by a sorted slice.
type Series struct {
	records []Record
}

// NewSeries sorts the records by time and builds a Series.
func NewSeries(records []Record) (*Series, error) {
	sorted := make([]Record, len(records))
	copy(sorted, records)

	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Time.Before(sorted[j].Time)
	})

	for i := 1; i < len(sorted); i++ {
		if sorted[i].Time.Equal(sorted[i-1].Time) {
			return nil, fmt.Errorf("%w: %s",
				ErrDuplicateTime, sorted[i].Time.Format(time.RFC3339))
		}
	}

	return &Series{records: sorted}, nil
}

// Len returns the number of records.
func (s *Series) Len() int {
	return len(s.records)
}

// Records returns a copy of the underlying rows.
func (s *Series) Records() []Record {
	out := make([]Record, len(s.records))
	copy(out, s.records)

	return out
}

// Times returns the timestamps in chronological order.
func (s *Series) Times() []time.Time {
	times := make([]time.Time, len(s.records))
	for i, r := range s.records {
		times[i] = r.Time
	}

	return times
}

func (s *Series) search(t time.Time) int {
	return sort.Search(len(s.records), func(i int) bool {
		return !s.records[i].Time.Before(t)
	})
}

// At looks up the record observed exactly at t.
func (s *Series) At(t time.Time) (Record, bool) {
	i := s.search(t)
	if i < len(s.records) && s.records[i].Time.Equal(t) {
		return s.records[i], true
	}

	return Record{}, false
}

// Rain returns the rain amount observed at t.
func (s *Series) Rain(t time.Time) (float64, error) {
	r, ok := s.At(t)
	if !ok {
		return 0, fmt.Errorf("%w: %s", ErrNoRecord, t.Format(time.RFC3339))
	}

	return r.Rain, nil
}

// Slice returns the records with before <= time < after. The result shares
// the backing array with s.
func (s *Series) Slice(before, after time.Time) Table {
	lo := s.search(before)
	hi := s.search(after)

	if hi < lo {
		hi = lo
	}

	return &Series{records: s.records[lo:hi]}
}

// HourlyTimes builds n timestamps one hour apart starting at start.
func HourlyTimes(start time.Time, n int) []time.Time {
	if n <= 0 {
		return nil
	}

	times := make([]time.Time, n)
	for i := range times {
		times[i] = start.Add(time.Duration(i) * time.Hour)
	}

	return times
}

var _ Table = (*Series)(nil)
