package cmd

import (
	"fmt"
	"io"
	"time"

	"github.com/sarchlab/astk/config"
	"github.com/sarchlab/astk/partition"
	"github.com/sarchlab/astk/weather"
	"github.com/spf13/cobra"
)

type splitOptions struct {
	weatherFile string
	mode        string
	delay       float64
	filter      bool
}

func newSplitCmd() *cobra.Command {
	opts := &splitOptions{}

	cmd := &cobra.Command{
		Use:   "split",
		Short: "Print how a weather file is cut into blocks.",
		Long: "`split --weather f.csv --mode time --delay 6` prints one line " +
			"per block: index, first hour, duration and number of records. " +
			"With --filter and --mode rain, only the block starts are printed.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if opts.weatherFile == "" {
				return fmt.Errorf("--weather is required")
			}

			table, err := weather.LoadCSVFile(opts.weatherFile)
			if err != nil {
				return err
			}

			return runSplit(cmd.OutOrStdout(), table, opts)
		},
	}

	cmd.Flags().StringVar(&opts.weatherFile, "weather", "",
		"Weather CSV file")
	cmd.Flags().StringVar(&opts.mode, "mode", config.KindTime,
		"Split mode (time or rain)")
	cmd.Flags().Float64Var(&opts.delay, "delay", 1,
		"Block duration in hours for the time mode")
	cmd.Flags().BoolVar(&opts.filter, "filter", false,
		"Only print the times where the rain state changes")

	return cmd
}

func runSplit(w io.Writer, table weather.Table, opts *splitOptions) error {
	times := table.Times()

	var (
		blocks partition.Blocks
		err    error
	)

	switch opts.mode {
	case config.KindTime:
		blocks, err = partition.TimeSplit(times, table, opts.delay)
	case config.KindRain:
		if opts.filter {
			return printStarts(w, times, table)
		}

		blocks, err = partition.RainSplit(times, table)
	default:
		return fmt.Errorf("unknown split mode %q", opts.mode)
	}

	if err != nil {
		return err
	}

	for i := 0; i < blocks.Len(); i++ {
		data := blocks.Datas[i]

		first := "-"
		if data != nil && data.Len() > 0 {
			first = data.Times()[0].Format(time.RFC3339)
		}

		rows := 0
		if data != nil {
			rows = data.Len()
		}

		fmt.Fprintf(w, "%d %s %g %d\n", i, first, blocks.Delays[i], rows)
	}

	fmt.Fprintf(w, "total %g\n", blocks.Total())

	return nil
}

func printStarts(w io.Writer, times []time.Time, table weather.Table) error {
	starts, err := partition.RainFilter(times, table)
	if err != nil {
		return err
	}

	for _, t := range starts {
		fmt.Fprintln(w, t.Format(time.RFC3339))
	}

	return nil
}
