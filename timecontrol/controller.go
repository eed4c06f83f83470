package timecontrol

import (
	"fmt"
	"sort"
)

// A Frame holds the item produced by every stream for one joint step.
type Frame map[string]any

// Step returns the item of a stream as a *Step.
func (f Frame) Step(stream string) (*Step, bool) {
	s, ok := f[stream].(*Step)
	return s, ok
}

// EndReason tells why a ControllerCursor stopped.
type EndReason int

// The end reasons. EndNone means the cursor is still running.
const (
	EndNone EndReason = iota
	EndNoStreams
	EndStreamExhausted
)

func (r EndReason) String() string {
	switch r {
	case EndNone:
		return "none"
	case EndNoStreams:
		return "no streams"
	case EndStreamExhausted:
		return "stream exhausted"
	default:
		return fmt.Sprintf("EndReason(%d)", int(r))
	}
}

// A Controller runs several named sequences side by side. Each joint step
// advances every stream exactly once, so no stream ever gets ahead of the
// others. The joint sequence is as long as the shortest stream.
type Controller struct {
	names   []string
	streams map[string]Sequence[any]
}

// NewController creates a Controller over the given streams.
func NewController(streams map[string]Sequence[any]) *Controller {
	c := &Controller{streams: make(map[string]Sequence[any])}
	for name, s := range streams {
		c.Add(name, s)
	}

	return c
}

// Add registers a stream. Adding a name twice panics.
func (c *Controller) Add(name string, s Sequence[any]) {
	if _, found := c.streams[name]; found {
		panic("stream " + name + " already registered")
	}

	c.streams[name] = s
	c.names = append(c.names, name)
	sort.Strings(c.names)
}

// Names returns the sorted stream names.
func (c *Controller) Names() []string {
	return append([]string(nil), c.names...)
}

// Len returns the number of streams.
func (c *Controller) Len() int {
	return len(c.names)
}

// Begin starts every stream from its first item.
func (c *Controller) Begin() Cursor[Frame] {
	return c.Start()
}

// Start is Begin with the concrete cursor type.
func (c *Controller) Start() *ControllerCursor {
	cur := &ControllerCursor{
		names:   c.Names(),
		cursors: make(map[string]Cursor[any], len(c.names)),
	}

	for _, name := range cur.names {
		cur.cursors[name] = c.streams[name].Begin()
	}

	return cur
}

// A ControllerCursor advances the streams of a Controller in lock-step.
type ControllerCursor struct {
	names     []string
	cursors   map[string]Cursor[any]
	steps     int
	reason    EndReason
	exhausted string
}

// Next advances every stream once. It returns false when there is no stream
// at all or as soon as one stream is exhausted; EndReason tells which.
func (c *ControllerCursor) Next() (Frame, bool) {
	if c.reason != EndNone {
		return nil, false
	}

	if len(c.names) == 0 {
		c.reason = EndNoStreams
		return nil, false
	}

	frame := make(Frame, len(c.names))
	for _, name := range c.names {
		item, ok := c.cursors[name].Next()
		if !ok {
			c.reason = EndStreamExhausted
			c.exhausted = name

			return nil, false
		}

		frame[name] = item
	}

	c.steps++

	return frame, true
}

// Steps returns the number of frames produced so far.
func (c *ControllerCursor) Steps() int {
	return c.steps
}

// EndReason returns why the cursor stopped, or EndNone.
func (c *ControllerCursor) EndReason() EndReason {
	return c.reason
}

// ExhaustedStream names the stream that ended the joint iteration.
func (c *ControllerCursor) ExhaustedStream() string {
	return c.exhausted
}

var _ Sequence[Frame] = (*Controller)(nil)
