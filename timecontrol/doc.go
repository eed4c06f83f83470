// Package timecontrol paces step-by-step simulations.
//
// A simulation loop pulls one item per step from a Sequence. Sequences are
// restartable: Begin always returns a fresh Cursor positioned at the first
// item, so a sequence can be replayed any number of times and two cursors
// never share progress.
//
// The package provides three kinds of sequences:
//
//   - Timing flattens a list of block durations into elementary ticks. The
//     first tick of a block is an event tick, the others are fillers.
//   - Control produces one Step per tick. It asks the simulated model for its
//     own pacing first and falls back to a uniform clock when the model cannot
//     provide one.
//   - Controller advances several named sequences in lock-step and returns
//     one Frame per joint step.
//
// Example:
//
//	ctrl := timecontrol.NewController(map[string]timecontrol.Sequence[any]{
//		"weather": timecontrol.AsStream[timecontrol.Tick[weather.Table]](ticks),
//		"model":   timecontrol.AsStream[*timecontrol.Step](control),
//	})
//
//	for frame := range timecontrol.All[timecontrol.Frame](ctrl) {
//		...
//	}
package timecontrol
