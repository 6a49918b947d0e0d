package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"gpca/internal/app"
	"gpca/internal/core"
)

// RunOptions holds flags for the run command.
type RunOptions struct {
	*RootOptions
	sim   *simFlags
	Quiet bool
}

// NewRunCommand creates the run command.
func NewRunCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &RunOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run a rule headlessly and print the final frame",
		Long: `Seed a lattice (or a ring for 1D rules), advance it for --steps
generations and print the final frame followed by a summary line. Ring rules
print their spacetime diagram instead.

Example:
  gpca run --rule life --width 32 --height 16 --steps 50
  gpca run --rule cyclic -p states=4 -p threshold=2 --device software --border wrap
  gpca run --config run.yaml --steps 10`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSimulation(cmd, opts)
		},
	}

	opts.sim = bindSimFlags(cmd)
	cmd.Flags().BoolVarP(&opts.Quiet, "quiet", "q", false, "print only the summary line")

	return cmd
}

func runSimulation(cmd *cobra.Command, opts *RunOptions) error {
	cfg, err := opts.sim.resolve(cmd)
	if err != nil {
		return err
	}
	logger := opts.Logger()

	s, err := app.NewSession(cfg, logger)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to build session", err)
	}
	logger.Info("running", "rule", cfg.Rule, "width", cfg.Width, "height", cfg.Height, "steps", cfg.Steps, "path", s.Path())

	parentCtx := cmd.Context()
	if parentCtx == nil {
		parentCtx = context.Background()
	}
	ctx, stop := signal.NotifyContext(parentCtx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	pace := core.NewFixedStep(cfg.TPS)
	for i := 0; i < cfg.Steps; i++ {
		if err := pace.Wait(ctx); err != nil {
			logger.Info("interrupted", "generation", s.Generation())
			break
		}
		if err := s.Step(); err != nil {
			return WrapExitError(ExitFailure, fmt.Sprintf("generation %d failed", s.Generation()+1), err)
		}
	}

	out := cmd.OutOrStdout()
	if !opts.Quiet {
		fmt.Fprint(out, s.ASCII())
	}
	writeSummary(out, s)
	return nil
}

func writeSummary(w io.Writer, s *app.Session) {
	fmt.Fprintf(w, "rule=%s generation=%d path=%s activity=%.4f", s.RuleName(), s.Generation(), s.Path(), s.Activity())
	if s.Config().Cache != "" && s.Config().Cache != "none" {
		st := s.Stats()
		fmt.Fprintf(w, " cache_hits=%d cache_misses=%d cache_entries=%d", st.Hits, st.Misses, st.Entries)
	}
	fmt.Fprintln(w)
}
