//go:build ebiten

package cli

import (
	"errors"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/spf13/cobra"

	"gpca/internal/app"
	"gpca/internal/gpu"
)

// NewViewCommand creates the view command.
func NewViewCommand(rootOpts *RootOptions) *cobra.Command {
	var sim *simFlags

	cmd := &cobra.Command{
		Use:   "view",
		Short: "Open a window and animate a rule",
		Long: `Animate the configured rule in a window. Keys: Space pause,
Enter resume, N single step, R reseed, S random seed, G toggle the GPU path,
Q or Esc quit.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := sim.resolve(cmd)
			if err != nil {
				return err
			}
			logger := rootOpts.Logger()

			s, err := app.NewSession(cfg, logger)
			if err != nil {
				return WrapExitError(ExitCommandError, "failed to build session", err)
			}
			defer s.Close()
			if cfg.Device == app.DeviceCPU {
				dev, err := gpu.NewDevice()
				if err == nil {
					err = s.SetDevice(app.DeviceGPU, dev, false)
				}
				if err != nil {
					logger.Warn("gpu path unavailable", "error", err)
				}
			}

			game := app.New(s, logger)
			w, h := game.Layout(0, 0)
			tps := cfg.TPS
			if tps <= 0 {
				tps = 60
			}
			ebiten.SetWindowTitle("gpca - " + cfg.Rule)
			ebiten.SetTPS(tps)
			ebiten.SetWindowSize(w, h)

			if err := ebiten.RunGame(game); err != nil && !errors.Is(err, ebiten.Termination) {
				return WrapExitError(ExitFailure, "viewer stopped", err)
			}
			return nil
		},
	}

	sim = bindSimFlags(cmd)
	return cmd
}
