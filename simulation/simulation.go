// Package simulation drives a set of time-controlled streams step by step,
// recording and monitoring the run.
package simulation

import (
	"fmt"
	"sync"

	"github.com/rs/zerolog"
	"github.com/sarchlab/astk/datarecording"
	"github.com/sarchlab/astk/hooking"
	"github.com/sarchlab/astk/monitoring"
	"github.com/sarchlab/astk/timecontrol"
)

// HookPosBeforeStep is triggered before a frame is handled. The hook item is
// the frame and the detail is the index of the joint step.
var HookPosBeforeStep = &hooking.HookPos{Name: "BeforeStep"}

// HookPosAfterStep is triggered after a frame is handled.
var HookPosAfterStep = &hooking.HookPos{Name: "AfterStep"}

// A StepHandler consumes one joint step.
type StepHandler func(step int, frame timecontrol.Frame) error

// A Simulation runs the streams registered to it in lock-step.
type Simulation struct {
	*hooking.HookableBase

	id         string
	controller *timecontrol.Controller
	logger     zerolog.Logger

	recorder     datarecording.DataRecorder
	stepRecorder *datarecording.StepRecorder
	monitor      *monitoring.Monitor

	isPaused     bool
	isPausedLock sync.Mutex
	pauseLock    sync.Mutex

	singleRunLock sync.Mutex

	stateLock sync.RWMutex
	stepsDone int
	lastFrame timecontrol.Frame
}

// ID returns the ID of the simulation.
func (s *Simulation) ID() string {
	return s.id
}

// RegisterStream adds a named stream to the simulation.
func (s *Simulation) RegisterStream(name string, stream timecontrol.Sequence[any]) {
	s.controller.Add(name, stream)
}

// Controller returns the controller that joins the streams.
func (s *Simulation) Controller() *timecontrol.Controller {
	return s.controller
}

// Monitor returns the monitor, or nil when monitoring is disabled.
func (s *Simulation) Monitor() *monitoring.Monitor {
	return s.monitor
}

// Recorder returns the data recorder, or nil when recording is disabled.
func (s *Simulation) Recorder() datarecording.DataRecorder {
	return s.recorder
}

// Run pulls frames from the streams until one of them ends. A handler error
// stops the run.
func (s *Simulation) Run(handler StepHandler) error {
	s.singleRunLock.Lock()
	defer s.singleRunLock.Unlock()

	s.setState(0, nil)

	var bar *monitoring.ProgressBar
	if s.monitor != nil {
		bar = s.monitor.CreateProgressBar("Run "+s.id, 0)
		defer s.monitor.CompleteProgressBar(bar)
	}

	cursor := s.controller.Start()

	for {
		s.pauseLock.Lock()

		frame, ok := cursor.Next()
		if !ok {
			s.pauseLock.Unlock()
			break
		}

		err := s.runStep(cursor.Steps()-1, frame, handler, bar)

		s.pauseLock.Unlock()

		if err != nil {
			return err
		}
	}

	s.logger.Debug().
		Str("simulation", s.id).
		Int("steps", cursor.Steps()).
		Stringer("reason", cursor.EndReason()).
		Str("stream", cursor.ExhaustedStream()).
		Msg("run finished")

	if s.recorder != nil {
		s.recorder.Flush()
	}

	return nil
}

func (s *Simulation) runStep(
	step int,
	frame timecontrol.Frame,
	handler StepHandler,
	bar *monitoring.ProgressBar,
) error {
	hookCtx := hooking.HookCtx{
		Domain: s,
		Pos:    HookPosBeforeStep,
		Item:   frame,
		Detail: step,
	}
	s.InvokeHook(hookCtx)

	if handler != nil {
		if err := handler(step, frame); err != nil {
			return fmt.Errorf("step %d: %w", step, err)
		}
	}

	hookCtx.Pos = HookPosAfterStep
	s.InvokeHook(hookCtx)

	s.setState(step+1, frame)

	if bar != nil {
		bar.IncrementFinished(1)
		s.monitor.ObserveFrame(frame)
	}

	return nil
}

func (s *Simulation) setState(stepsDone int, frame timecontrol.Frame) {
	s.stateLock.Lock()
	defer s.stateLock.Unlock()

	s.stepsDone = stepsDone
	s.lastFrame = frame
}

// StepsDone returns the number of joint steps handled in the current run.
func (s *Simulation) StepsDone() int {
	s.stateLock.RLock()
	defer s.stateLock.RUnlock()

	return s.stepsDone
}

// LastFrame returns the frame handled most recently.
func (s *Simulation) LastFrame() timecontrol.Frame {
	s.stateLock.RLock()
	defer s.stateLock.RUnlock()

	return s.lastFrame
}

// Pause prevents the simulation from handling more steps.
func (s *Simulation) Pause() {
	s.isPausedLock.Lock()
	defer s.isPausedLock.Unlock()

	if s.isPaused {
		return
	}

	s.pauseLock.Lock()
	s.isPaused = true
}

// Continue allows the simulation to handle more steps.
func (s *Simulation) Continue() {
	s.isPausedLock.Lock()
	defer s.isPausedLock.Unlock()

	if !s.isPaused {
		return
	}

	s.pauseLock.Unlock()
	s.isPaused = false
}

// Terminate flushes and closes the recorder.
func (s *Simulation) Terminate() {
	if s.recorder != nil {
		s.recorder.Close()
	}
}

var _ monitoring.Runner = (*Simulation)(nil)
