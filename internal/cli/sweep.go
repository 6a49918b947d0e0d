package cli

import (
	"fmt"
	"runtime"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/spf13/cobra"

	"gpca/internal/app"
)

// SweepOptions holds flags for the sweep command.
type SweepOptions struct {
	*RootOptions
	sim     *simFlags
	Sets    []string
	Workers int
	Top     int
}

type sweepResult struct {
	params   map[string]string
	label    string
	activity float64
	hitRatio float64
	err      error
}

// NewSweepCommand creates the sweep command.
func NewSweepCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &SweepOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "sweep",
		Short: "Run every combination of rule parameters and rank by activity",
		Long: `Run the configured rule once per combination of the --set values,
in parallel, and report the runs with the highest final activity (fraction of
non-zero cells).

Example:
  gpca sweep --rule cyclic --set states=3,4,5 --set threshold=1,2,3 --steps 60
  gpca sweep --rule lifelike --set rule=B3/S23,B36/S23 --cache unbounded`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSweep(cmd, opts)
		},
	}

	opts.sim = bindSimFlags(cmd)
	cmd.Flags().StringArrayVar(&opts.Sets, "set", nil, "parameter values as key=v1,v2,..., repeatable")
	cmd.Flags().IntVar(&opts.Workers, "jobs", runtime.NumCPU(), "number of runs in flight")
	cmd.Flags().IntVar(&opts.Top, "top", 5, "number of results to print")

	return cmd
}

// expandSets returns the cartesian product of the --set values, keys in
// sorted order.
func expandSets(sets []string) ([]map[string]string, error) {
	values := map[string][]string{}
	for _, s := range sets {
		key, list, ok := strings.Cut(s, "=")
		if !ok || key == "" || list == "" {
			return nil, fmt.Errorf("invalid --set %q: want key=v1,v2", s)
		}
		values[key] = append(values[key], strings.Split(list, ",")...)
	}
	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	combos := []map[string]string{{}}
	for _, k := range keys {
		var next []map[string]string
		for _, base := range combos {
			for _, v := range values[k] {
				c := make(map[string]string, len(base)+1)
				for bk, bv := range base {
					c[bk] = bv
				}
				c[k] = strings.TrimSpace(v)
				next = append(next, c)
			}
		}
		combos = next
	}
	return combos, nil
}

func label(params map[string]string) string {
	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = k + "=" + params[k]
	}
	return strings.Join(parts, " ")
}

func runSweep(cmd *cobra.Command, opts *SweepOptions) error {
	base, err := opts.sim.resolve(cmd)
	if err != nil {
		return err
	}
	sets, err := expandSets(opts.Sets)
	if err != nil {
		return WrapExitError(ExitCommandError, "invalid sweep", err)
	}
	workers := max(opts.Workers, 1)
	logger := opts.Logger()
	out := cmd.OutOrStdout()

	fmt.Fprintf(out, "Sweeping %d parameter sets (%d workers, %d steps)\n", len(sets), workers, base.Steps)

	jobs := make(chan map[string]string)
	results := make(chan sweepResult)
	var wg sync.WaitGroup

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for params := range jobs {
				results <- runScenario(base, params)
			}
		}()
	}

	go func() {
		wg.Wait()
		close(results)
	}()

	go func() {
		for _, params := range sets {
			jobs <- params
		}
		close(jobs)
	}()

	start := time.Now()
	var all []sweepResult
	var firstErr error
	for res := range results {
		if res.err != nil {
			logger.Error("scenario failed", "params", res.label, "error", res.err)
			if firstErr == nil {
				firstErr = res.err
			}
			continue
		}
		logger.Debug("scenario done", "params", res.label, "activity", res.activity)
		all = append(all, res)
	}
	if firstErr != nil {
		return WrapExitError(ExitFailure, "sweep failed", firstErr)
	}

	sort.Slice(all, func(i, j int) bool {
		if all[i].activity != all[j].activity {
			return all[i].activity > all[j].activity
		}
		return all[i].label < all[j].label
	})
	logger.Info("sweep finished", "runs", len(all), "elapsed", time.Since(start).Round(time.Millisecond))

	fmt.Fprintf(out, "\nTop %d results:\n", min(opts.Top, len(all)))
	for i := 0; i < len(all) && i < opts.Top; i++ {
		res := all[i]
		fmt.Fprintf(out, "%2d) activity=%.4f", i+1, res.activity)
		if base.Cache != "" && base.Cache != "none" {
			fmt.Fprintf(out, " hits=%.1f%%", 100*res.hitRatio)
		}
		fmt.Fprintf(out, " params=%s\n", res.label)
	}
	return nil
}

func runScenario(base *app.Config, params map[string]string) sweepResult {
	cfg := base.Clone()
	for k, v := range params {
		cfg.Params[k] = v
	}
	res := sweepResult{params: params, label: label(cfg.Params)}

	s, err := app.NewSession(cfg, nil)
	if err != nil {
		res.err = err
		return res
	}
	for i := 0; i < cfg.Steps; i++ {
		if err := s.Step(); err != nil {
			res.err = err
			return res
		}
	}
	res.activity = s.Activity()
	if st := s.Stats(); st.Hits+st.Misses > 0 {
		res.hitRatio = float64(st.Hits) / float64(st.Hits+st.Misses)
	}
	return res
}
