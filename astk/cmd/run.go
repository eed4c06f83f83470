package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/rs/zerolog"
	"github.com/sarchlab/astk/config"
	"github.com/sarchlab/astk/logging"
	"github.com/sarchlab/astk/models"
	"github.com/sarchlab/astk/simulation"
	"github.com/sarchlab/astk/timecontrol"
	"github.com/sarchlab/astk/weather"
	"github.com/spf13/cobra"
)

type runOptions struct {
	*rootOptions

	configFile string
	noRecord   bool
}

func newRunCmd(root *rootOptions) *cobra.Command {
	opts := &runOptions{rootOptions: root}

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the simulation described by a config file.",
		Long: "`run --config run.yaml` builds one stream per configured " +
			"model and prints one line per joint step.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(opts.configFile)
			if err != nil {
				return err
			}

			if opts.logLevel == "" {
				opts.logger = opts.logger.Level(logging.ParseLevel(cfg.LogLevel))
			}

			return runSimulation(cmd.OutOrStdout(), cfg, opts)
		},
	}

	cmd.Flags().StringVar(&opts.configFile, "config", "run.yaml",
		"Run configuration file")
	cmd.Flags().BoolVar(&opts.noRecord, "no-record", false,
		"Do not record the steps into a SQLite file")

	return cmd
}

func runSimulation(w io.Writer, cfg *config.Config, opts *runOptions) error {
	streams, err := buildStreams(cfg, opts.logger)
	if err != nil {
		return err
	}

	sim := buildSimulation(cfg, opts)
	defer sim.Terminate()

	for _, s := range cfg.Streams {
		sim.RegisterStream(s.Name, streams[s.Name])
	}

	if sim.Monitor() != nil && cfg.Monitor.OpenBrowser {
		if err := sim.Monitor().OpenBrowser(); err != nil {
			opts.logger.Warn().Err(err).Msg("cannot open the monitor page")
		}
	}

	names := sim.Controller().Names()

	return sim.Run(func(step int, frame timecontrol.Frame) error {
		_, err := fmt.Fprintln(w, formatFrame(step, names, frame))
		return err
	})
}

func buildSimulation(cfg *config.Config, opts *runOptions) *simulation.Simulation {
	b := simulation.MakeBuilder().WithLogger(opts.logger)

	if !cfg.Monitor.Enabled {
		b = b.WithoutMonitoring()
	} else if cfg.Monitor.Port > 0 {
		b = b.WithMonitorPort(cfg.Monitor.Port)
	}

	if opts.noRecord {
		b = b.WithoutRecording()
	} else if cfg.Output != "" {
		b = b.WithOutputFileName(cfg.Output)
	}

	return b.Build()
}

func buildStreams(
	cfg *config.Config,
	logger zerolog.Logger,
) (map[string]timecontrol.Sequence[any], error) {
	var table weather.Table
	if cfg.WeatherFile != "" {
		series, err := weather.LoadCSVFile(cfg.WeatherFile)
		if err != nil {
			return nil, err
		}

		table = series
	}

	start, err := cfg.Start()
	if err != nil {
		return nil, err
	}

	streams := make(map[string]timecontrol.Sequence[any], len(cfg.Streams))
	for _, s := range cfg.Streams {
		control := timecontrol.NewControl(timecontrol.ControlConfig{
			Delay:     s.Delay,
			Steps:     cfg.Steps,
			Model:     modelOf(s),
			Weather:   table,
			StartDate: start,
		}, timecontrol.WithLogger(logger.With().Str("stream", s.Name).Logger()))

		streams[s.Name] = timecontrol.AsStream[*timecontrol.Step](control)
	}

	return streams, nil
}

func modelOf(s config.StreamConfig) any {
	switch s.Kind {
	case config.KindTime:
		return &models.PacedModel{Name: s.Name}
	case config.KindRain:
		return &models.RainModel{Name: s.Name}
	default:
		return nil
	}
}

func formatFrame(step int, names []string, frame timecontrol.Frame) string {
	var b strings.Builder

	fmt.Fprintf(&b, "%d", step)

	for _, name := range names {
		s, ok := frame.Step(name)
		if !ok {
			fmt.Fprintf(&b, " %s=?", name)
			continue
		}

		fmt.Fprintf(&b, " %s=%g", name, s.DT())

		if rain, ok := s.Get(models.FieldRain); ok {
			if wet, _ := rain.(bool); wet {
				b.WriteString("(rain)")
			}
		}
	}

	return b.String()
}
