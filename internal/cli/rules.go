package cli

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"gpca/internal/core"
)

// NewRulesCommand creates the rules command.
func NewRulesCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "rules",
		Short:         "List the registered rules and their default parameters",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			for _, name := range core.RuleNames() {
				r, err := core.Lookup(name, nil)
				if err != nil {
					return WrapExitError(ExitFailure, "failed to build rule "+name, err)
				}
				_, lattice := r.(core.LatticeRule)
				fmt.Fprintf(out, "%-12s states=%d lattice=%t%s\n", name, r.States(), lattice, formatParams(r))
			}
			return nil
		},
	}
}

func formatParams(r core.Rule) string {
	d, ok := r.(core.Describer)
	if !ok {
		return ""
	}
	flat := d.Parameters().Flatten()
	keys := make([]string, 0, len(flat))
	for k := range flat {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	var b strings.Builder
	for _, k := range keys {
		fmt.Fprintf(&b, " %s=%s", k, flat[k])
	}
	return b.String()
}
