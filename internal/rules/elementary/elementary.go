package elementary

import (
	"strconv"

	"gpca/internal/core"
)

// Config holds parameters for the elementary cellular automaton.
type Config struct {
	Rule uint8
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{Rule: 110}
}

// FromMap populates a Config from a string map.
func FromMap(cfg map[string]string) Config {
	c := DefaultConfig()
	if cfg == nil {
		return c
	}
	if v, ok := cfg["rule"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed >= 0 && parsed <= 255 {
			c.Rule = uint8(parsed)
		}
	}
	return c
}

// Elementary implements a one-dimensional Wolfram code. It expects the
// [left, right] neighbor order of core.NewRing; other neighbor counts leave
// the cell unchanged.
type Elementary struct {
	rule uint8
}

// New creates the rule for the given Wolfram code.
func New(rule uint8) *Elementary { return &Elementary{rule: rule} }

// Name returns the rule identifier.
func (e *Elementary) Name() string { return "elementary" }

// Code returns the Wolfram code.
func (e *Elementary) Code() uint8 { return e.rule }

// OneDimensional reports that the rule runs on ring topologies.
func (e *Elementary) OneDimensional() bool { return true }

// States implements core.Rule.
func (e *Elementary) States() uint32 { return 2 }

// Update implements core.Rule.
func (e *Elementary) Update(current core.State, neighbors []core.State, _ []core.Hyperedge) core.State {
	if len(neighbors) != 2 {
		return current
	}
	left := neighbors[0].State() & 1
	center := current.State() & 1
	right := neighbors[1].State() & 1
	idx := (left << 2) | (center << 1) | right
	return core.FromState(uint32(e.rule>>idx) & 1)
}

// Parameters implements core.Describer.
func (e *Elementary) Parameters() core.ParameterSnapshot {
	return core.ParameterSnapshot{Groups: []core.ParameterGroup{{
		Name:   "Elementary",
		Params: []core.Parameter{core.IntParam("rule", "Rule", int(e.rule))},
	}}}
}

// Seed clears nodes and sets the centre cell, the classic single-seed start.
func Seed(nodes []core.State) {
	for i := range nodes {
		nodes[i] = 0
	}
	if len(nodes) > 0 {
		nodes[len(nodes)/2] = 1
	}
}

func init() {
	core.Register("elementary", func(cfg map[string]string) (core.Rule, error) {
		c := FromMap(cfg)
		return New(c.Rule), nil
	})
}
