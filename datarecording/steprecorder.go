package datarecording

import (
	"fmt"
	"sort"
	"strings"

	"github.com/sarchlab/astk/hooking"
	"github.com/sarchlab/astk/timecontrol"
)

// StepTableName is the table StepRecorder writes into.
const StepTableName = "astk_steps"

// StepEntry is one row of the step table: what one stream produced during one
// joint step.
type StepEntry struct {
	Step   int
	Stream string
	Kind   string
	DT     float64
	Event  bool
	Fields string
}

type eventLike interface {
	IsEvent() bool
}

// StepRecorder is a hook that writes every frame it sees into a DataRecorder.
// It reacts to one hook position only; the hook item must be a
// timecontrol.Frame and the detail the index of the joint step.
type StepRecorder struct {
	recorder DataRecorder
	pos      *hooking.HookPos
	rows     int
}

// NewStepRecorder creates the step table and returns the hook.
func NewStepRecorder(recorder DataRecorder, pos *hooking.HookPos) *StepRecorder {
	recorder.CreateTable(StepTableName, StepEntry{})

	return &StepRecorder{recorder: recorder, pos: pos}
}

// Rows returns the number of rows written so far.
func (r *StepRecorder) Rows() int {
	return r.rows
}

// Func records a frame.
func (r *StepRecorder) Func(ctx hooking.HookCtx) {
	if ctx.Pos != r.pos {
		return
	}

	frame, ok := ctx.Item.(timecontrol.Frame)
	if !ok {
		return
	}

	step, _ := ctx.Detail.(int)

	names := make([]string, 0, len(frame))
	for name := range frame {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		entry := Describe(frame[name])
		entry.Step = step
		entry.Stream = name

		r.recorder.InsertData(StepTableName, entry)
		r.rows++
	}
}

// Describe summarizes a stream item as a StepEntry without step and stream.
func Describe(item any) StepEntry {
	switch v := item.(type) {
	case *timecontrol.Step:
		return StepEntry{
			Kind:   "step",
			DT:     v.DT(),
			Event:  v.IsActive(),
			Fields: strings.Join(v.Fields(), ","),
		}
	case timecontrol.Frame:
		names := make([]string, 0, len(v))
		for name := range v {
			names = append(names, name)
		}
		sort.Strings(names)

		return StepEntry{Kind: "frame", Event: true, Fields: strings.Join(names, ",")}
	case eventLike:
		return StepEntry{Kind: "tick", Event: v.IsEvent()}
	case nil:
		return StepEntry{Kind: "nil"}
	default:
		return StepEntry{Kind: fmt.Sprintf("%T", item)}
	}
}
