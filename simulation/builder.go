package simulation

import (
	"github.com/rs/xid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/sarchlab/astk/datarecording"
	"github.com/sarchlab/astk/hooking"
	"github.com/sarchlab/astk/monitoring"
	"github.com/sarchlab/astk/timecontrol"
)

// Builder can be used to build a simulation.
type Builder struct {
	monitorOn      bool
	monitorPort    int
	recordingOn    bool
	outputFileName string
	logger         *zerolog.Logger
}

// MakeBuilder creates a new builder.
func MakeBuilder() Builder {
	return Builder{
		monitorOn:   true,
		recordingOn: true,
	}
}

// WithoutMonitoring sets the simulation to not use monitoring.
func (b Builder) WithoutMonitoring() Builder {
	b.monitorOn = false
	return b
}

// WithMonitorPort sets the port number for the monitoring server.
func (b Builder) WithMonitorPort(port int) Builder {
	b.monitorPort = port
	return b
}

// WithOutputFileName sets the custom output file name for the data recorder.
func (b Builder) WithOutputFileName(filename string) Builder {
	b.outputFileName = filename
	return b
}

// WithoutRecording sets the simulation to not record the steps.
func (b Builder) WithoutRecording() Builder {
	b.recordingOn = false
	return b
}

// WithLogger sets the logger used by the simulation.
func (b Builder) WithLogger(logger zerolog.Logger) Builder {
	b.logger = &logger
	return b
}

func (b Builder) parametersMustBeValid() {
	if !b.monitorOn && b.monitorPort != 0 {
		panic("monitor port cannot be set when monitoring is disabled")
	}

	if !b.recordingOn && b.outputFileName != "" {
		panic("output file cannot be set when recording is disabled")
	}
}

// Build builds the simulation.
func (b Builder) Build() *Simulation {
	b.parametersMustBeValid()

	s := &Simulation{
		HookableBase: hooking.NewHookableBase(),
		id:           xid.New().String(),
		controller:   timecontrol.NewController(nil),
		logger:       log.Logger,
	}

	if b.logger != nil {
		s.logger = *b.logger
	}

	if b.recordingOn {
		outputPath := b.outputFileName
		if outputPath == "" {
			outputPath = "astk_sim_" + s.id
		}

		s.recorder = datarecording.New(outputPath)
		s.stepRecorder = datarecording.NewStepRecorder(
			s.recorder, HookPosAfterStep)
		s.AcceptHook(s.stepRecorder)
	}

	if b.monitorOn {
		s.monitor = monitoring.NewMonitor()
		if b.monitorPort > 0 {
			s.monitor.WithPortNumber(b.monitorPort)
		}
		s.monitor.RegisterRunner(s)
		s.monitor.StartServer()
	}

	return s
}
