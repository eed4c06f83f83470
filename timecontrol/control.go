package timecontrol

import (
	"errors"
	"fmt"
	"reflect"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/sarchlab/astk/hooking"
	"github.com/sarchlab/astk/weather"
)

// TimedModel is implemented by models that pace their own steps, for example
// by consuming weather to produce steps of varying length.
type TimedModel interface {
	Timing(
		delay, steps int,
		table weather.Table,
		start time.Time,
	) (Sequence[*Step], error)
}

// HookPosTimingFallback is triggered when a Control cannot use the model
// timing, or cannot use its own delay and step count. The hook item is a
// FallbackInfo.
var HookPosTimingFallback = &hooking.HookPos{Name: "TimingFallback"}

var (
	// ErrNoTimingCapability reports a model that does not implement TimedModel.
	ErrNoTimingCapability = errors.New("timecontrol: model has no timing capability")

	// ErrNilTiming reports a model that returned neither a sequence nor an
	// error.
	ErrNilTiming = errors.New("timecontrol: model returned a nil timing")
)

// Resolution tells where the steps of a Control come from.
type Resolution int

// The possible resolutions, from the preferred one to the last resort.
const (
	ResolvedModel Resolution = iota
	ResolvedFallback
	ResolvedDefault
)

func (r Resolution) String() string {
	switch r {
	case ResolvedModel:
		return "model"
	case ResolvedFallback:
		return "fallback"
	case ResolvedDefault:
		return "default"
	default:
		return fmt.Sprintf("Resolution(%d)", int(r))
	}
}

// FallbackInfo describes a degradation of a Control schedule.
type FallbackInfo struct {
	Resolution Resolution
	Reason     error
	Delay      int
	Steps      int
}

// ControlConfig is the configuration a Control rebuilds its steps from.
type ControlConfig struct {
	// Delay is the number of hours between two active steps of the uniform
	// fallback schedule.
	Delay int

	// Steps is the number of steps of the uniform fallback schedule.
	Steps int

	// Model may implement TimedModel. It is passed Delay, Steps, Weather and
	// StartDate.
	Model any

	Weather   weather.Table
	StartDate time.Time
}

// A Control is a restartable sequence of Steps.
//
// Every Begin asks the model for a fresh timing. If there is no model, if the
// model has no timing capability, or if it fails, the Control falls back to
// SimpleDelayTiming(Delay, Steps), and if that is invalid too, to
// SimpleDelayTiming(1, 1). Begin never fails; degradations are logged and
// reported through HookPosTimingFallback when a model was supplied or when
// the default schedule is used.
type Control struct {
	*hooking.HookableBase

	cfg        ControlConfig
	logger     *zerolog.Logger
	resolution Resolution
}

// ControlOption customizes a Control.
type ControlOption func(*Control)

// WithLogger sets the logger that receives fallback warnings. The global
// zerolog logger is used otherwise.
func WithLogger(logger zerolog.Logger) ControlOption {
	return func(c *Control) {
		c.logger = &logger
	}
}

// NewControl creates a Control.
func NewControl(cfg ControlConfig, opts ...ControlOption) *Control {
	c := &Control{
		HookableBase: hooking.NewHookableBase(),
		cfg:          cfg,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Config returns the configuration of the Control.
func (c *Control) Config() ControlConfig {
	return c.cfg
}

// Resolution returns the source used by the most recent Begin.
func (c *Control) Resolution() Resolution {
	return c.resolution
}

// Begin resolves the step source again and returns a cursor at its first
// step.
func (c *Control) Begin() Cursor[*Step] {
	return c.resolve().Begin()
}

func (c *Control) resolve() Sequence[*Step] {
	if c.cfg.Model != nil {
		seq, err := c.modelTiming()
		if err == nil {
			c.resolution = ResolvedModel
			return seq
		}

		c.report(ResolvedFallback, err, c.cfg.Delay, c.cfg.Steps)
	}

	uniform, err := SimpleDelayTiming(c.cfg.Delay, c.cfg.Steps)
	if err == nil {
		c.resolution = ResolvedFallback
		return uniform
	}

	c.report(ResolvedDefault, err, 1, 1)
	c.resolution = ResolvedDefault
	uniform, _ = SimpleDelayTiming(1, 1)

	return uniform
}

func (c *Control) modelTiming() (seq Sequence[*Step], err error) {
	model, ok := c.cfg.Model.(TimedModel)
	if !ok {
		return nil, fmt.Errorf("%w: %T", ErrNoTimingCapability, c.cfg.Model)
	}

	defer func() {
		if r := recover(); r != nil {
			seq = nil
			err = fmt.Errorf("timecontrol: model timing panicked: %v", r)
		}
	}()

	seq, err = model.Timing(
		c.cfg.Delay, c.cfg.Steps, c.cfg.Weather, c.cfg.StartDate)
	if err != nil {
		return nil, err
	}

	if isNilSequence(seq) {
		return nil, ErrNilTiming
	}

	return seq, nil
}

// isNilSequence also catches a typed nil pointer wrapped in the interface.
func isNilSequence(seq Sequence[*Step]) bool {
	if seq == nil {
		return true
	}

	v := reflect.ValueOf(seq)
	switch v.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Func,
		reflect.Chan, reflect.Interface:
		return v.IsNil()
	default:
		return false
	}
}

func (c *Control) report(res Resolution, reason error, delay, steps int) {
	logger := c.logger
	if logger == nil {
		logger = &log.Logger
	}

	logger.Warn().
		Err(reason).
		Str("resolution", res.String()).
		Int("delay", delay).
		Int("steps", steps).
		Msg("not able to use the requested timing")

	c.InvokeHook(hooking.HookCtx{
		Domain: c,
		Pos:    HookPosTimingFallback,
		Item: FallbackInfo{
			Resolution: res,
			Reason:     reason,
			Delay:      delay,
			Steps:      steps,
		},
	})
}

var _ Sequence[*Step] = (*Control)(nil)
