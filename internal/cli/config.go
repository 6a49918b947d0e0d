package cli

import (
	"github.com/spf13/cobra"

	"gpca/internal/app"
)

// simFlags binds the shared run configuration and --config to cmd.
type simFlags struct {
	cfg  *app.Config
	file string
}

func bindSimFlags(cmd *cobra.Command) *simFlags {
	f := &simFlags{cfg: app.NewConfig()}
	f.cfg.Bind(cmd.Flags())
	cmd.Flags().StringVar(&f.file, "config", "", "YAML run configuration; explicit flags win")
	return f
}

// resolve applies the config file, if any, and validates the result.
func (f *simFlags) resolve(cmd *cobra.Command) (*app.Config, error) {
	if f.file != "" {
		if err := f.cfg.LoadFile(f.file, cmd.Flags()); err != nil {
			return nil, WrapExitError(ExitCommandError, "failed to load config", err)
		}
	}
	if err := f.cfg.Validate(); err != nil {
		return nil, WrapExitError(ExitCommandError, "invalid configuration", err)
	}
	return f.cfg, nil
}
