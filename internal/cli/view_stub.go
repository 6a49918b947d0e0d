//go:build !ebiten

package cli

import (
	"github.com/spf13/cobra"
)

// NewViewCommand creates a view command that explains how to get the GUI
// build.
func NewViewCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:                "view",
		Short:              "Open a window and animate a rule (requires the ebiten build tag)",
		SilenceUsage:       true,
		SilenceErrors:      true,
		DisableFlagParsing: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return &ExitError{
				Code:    ExitCommandError,
				Message: "the viewer requires the ebiten build tag; rebuild with `go build -tags ebiten ./cmd/gpca`",
			}
		},
	}
}
