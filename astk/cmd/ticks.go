package cmd

import (
	"fmt"

	"github.com/sarchlab/astk/timecontrol"
	"github.com/spf13/cobra"
)

func newTicksCmd() *cobra.Command {
	var delays []float64

	cmd := &cobra.Command{
		Use:   "ticks",
		Short: "Print the tick sequence of a list of block durations.",
		Long: "`ticks --delays 2,3` prints one line per tick. Event ticks " +
			"carry the index of their block.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			datas := make([]int, len(delays))
			for i := range datas {
				datas[i] = i
			}

			ticks, err := timecontrol.DelayToTiming(delays, datas)
			if err != nil {
				return err
			}

			for i, t := range ticks {
				fmt.Fprintf(cmd.OutOrStdout(), "%d %s\n", i, t)
			}

			return nil
		},
	}

	cmd.Flags().Float64SliceVar(&delays, "delays", nil,
		"Comma-separated block durations")

	return cmd
}
