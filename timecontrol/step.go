package timecontrol

import (
	"fmt"
	"sort"
	"strings"
)

// FieldDT is the name of the elapsed-time field of a Step.
const FieldDT = "dt"

// A Step describes one simulation step: how many hours elapsed (DT) and any
// model-specific data that applies to the step.
//
// A Step is created fresh for every step by the sequence producing it and is
// not reused afterwards.
type Step struct {
	dt     float64
	hasDT  bool
	fields map[string]any
}

// NewStep creates a step with the given elapsed time.
func NewStep(dt float64) *Step {
	return &Step{dt: dt, hasDT: true}
}

// NewStepWithFields creates a step with the given elapsed time and extra
// fields. A "dt" entry in fields overrides dt.
func NewStepWithFields(dt float64, fields map[string]any) *Step {
	s := NewStep(dt)
	for name, value := range fields {
		s.Set(name, value)
	}

	return s
}

// DT returns the elapsed hours. It is 0 if the step has no dt yet.
func (s *Step) DT() float64 {
	return s.dt
}

// HasDT tells if dt has been set.
func (s *Step) HasDT() bool {
	return s.hasDT
}

// SetDT sets the elapsed hours.
func (s *Step) SetDT(dt float64) {
	s.dt = dt
	s.hasDT = true
}

// IsActive tells if some time elapses during the step.
func (s *Step) IsActive() bool {
	return s.dt != 0
}

// Has tells if the field is present.
func (s *Step) Has(name string) bool {
	if name == FieldDT {
		return s.hasDT
	}

	_, ok := s.fields[name]

	return ok
}

// Get returns a field. "dt" is returned as a float64.
func (s *Step) Get(name string) (any, bool) {
	if name == FieldDT {
		if !s.hasDT {
			return nil, false
		}

		return s.dt, true
	}

	v, ok := s.fields[name]

	return v, ok
}

// Set writes a field. Setting "dt" to a non-numeric value panics.
func (s *Step) Set(name string, value any) {
	if name == FieldDT {
		s.SetDT(mustBeNumber(value))
		return
	}

	if s.fields == nil {
		s.fields = make(map[string]any)
	}

	s.fields[name] = value
}

// Ensure sets the field to def if and only if it is absent. An existing value
// is never overwritten, whatever it is. Ensure returns the value stored after
// the call.
func (s *Step) Ensure(name string, def any) any {
	if v, ok := s.Get(name); ok {
		return v
	}

	s.Set(name, def)

	v, _ := s.Get(name)

	return v
}

// Fields returns the sorted names of all present fields, dt included.
func (s *Step) Fields() []string {
	names := make([]string, 0, len(s.fields)+1)
	if s.hasDT {
		names = append(names, FieldDT)
	}

	for name := range s.fields {
		names = append(names, name)
	}

	sort.Strings(names)

	return names
}

// String renders the step as "{dt=3 weather=...}".
func (s *Step) String() string {
	parts := make([]string, 0, len(s.fields)+1)
	for _, name := range s.Fields() {
		v, _ := s.Get(name)
		parts = append(parts, fmt.Sprintf("%s=%v", name, v))
	}

	return "{" + strings.Join(parts, " ") + "}"
}

func mustBeNumber(v any) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case float32:
		return float64(n)
	case int:
		return float64(n)
	case int8:
		return float64(n)
	case int16:
		return float64(n)
	case int32:
		return float64(n)
	case int64:
		return float64(n)
	case uint:
		return float64(n)
	case uint8:
		return float64(n)
	case uint16:
		return float64(n)
	case uint32:
		return float64(n)
	case uint64:
		return float64(n)
	default:
		panic(fmt.Sprintf("timecontrol: dt must be a number, got %T", v))
	}
}
