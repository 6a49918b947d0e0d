package ui

import (
	"fmt"

	"gpca/internal/core"
)

// Source is the view of a running session the HUD reads from.
type Source interface {
	RuleName() string
	Rule() core.Rule
	Generation() uint64
	Path() string
	Stats() core.MemoStats
	Size() core.Size
	SetIntParameter(key string, value int) bool
}

// StatusLines summarizes the session for the panel header.
func StatusLines(src Source) []string {
	lines := []string{
		fmt.Sprintf("gen   %d", src.Generation()),
		fmt.Sprintf("path  %s", src.Path()),
	}
	st := src.Stats()
	if st.Hits+st.Misses > 0 {
		ratio := float64(st.Hits) / float64(st.Hits+st.Misses)
		lines = append(lines,
			fmt.Sprintf("cache %d entries", st.Entries),
			fmt.Sprintf("hits  %.1f%%", 100*ratio),
		)
	}
	return lines
}

// intParams lists the integer parameters of the session's rule.
func intParams(src Source) []core.Parameter {
	d, ok := src.Rule().(core.Describer)
	if !ok {
		return nil
	}
	var out []core.Parameter
	for _, g := range d.Parameters().Groups {
		for _, p := range g.Params {
			if p.Type == core.ParamTypeInt {
				out = append(out, p)
			}
		}
	}
	return out
}
