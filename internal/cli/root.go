// Package cli implements the gpca command line.
package cli

import (
	"log/slog"

	"github.com/spf13/cobra"

	_ "gpca/internal/rules"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Verbose bool

	logger *slog.Logger
}

// Logger returns the logger configured for the running command.
func (o *RootOptions) Logger() *slog.Logger {
	if o.logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return o.logger
}

// NewRootCommand creates the root command for the gpca CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "gpca",
		Short: "gpca - hypergraph cellular automata",
		Long: `Evolve cellular automata over hypergraph topologies on the CPU
or as lattice shaders on a GPU device.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			opts.setupLogging(cmd)
			return nil
		},
	}

	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")

	cmd.AddCommand(NewRunCommand(opts))
	cmd.AddCommand(NewRulesCommand(opts))
	cmd.AddCommand(NewSweepCommand(opts))
	cmd.AddCommand(NewViewCommand(opts))

	return cmd
}

func (o *RootOptions) setupLogging(cmd *cobra.Command) {
	level := slog.LevelInfo
	if o.Verbose {
		level = slog.LevelDebug
	}
	handler := slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level})
	o.logger = slog.New(handler)
	slog.SetDefault(o.logger)
}
