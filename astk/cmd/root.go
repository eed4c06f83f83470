// Package cmd provides the command-line interface of astk.
package cmd

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/sarchlab/astk/config"
	"github.com/sarchlab/astk/logging"
	"github.com/spf13/cobra"
	"github.com/tebeka/atexit"
)

type rootOptions struct {
	logLevel string
	logger   zerolog.Logger
}

// NewRootCmd builds the astk command tree.
func NewRootCmd() *cobra.Command {
	opts := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:   "astk",
		Short: "astk drives weather-paced simulation models step by step.",
		Long: `astk drives simulation models that choose their own time steps ` +
			`from weather data. It can run a configured simulation, show how ` +
			`a weather file is split into blocks, and print tick sequences.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if err := config.LoadEnv(); err != nil {
				return err
			}

			level := opts.logLevel
			if level == "" {
				level = os.Getenv(config.EnvLogLevel)
			}

			opts.logger = logging.Setup(level, cmd.ErrOrStderr())

			return nil
		},
	}

	rootCmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "",
		"Log level (debug, info, warn, error)")

	rootCmd.AddCommand(
		newRunCmd(opts),
		newSplitCmd(),
		newTicksCmd(),
	)

	return rootCmd
}

// Execute runs the command line and exits through atexit so that recorders
// are flushed.
func Execute() {
	err := NewRootCmd().Execute()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		atexit.Exit(1)
	}

	atexit.Exit(0)
}
