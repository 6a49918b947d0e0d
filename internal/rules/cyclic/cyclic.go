// Package cyclic implements the cyclic cellular automaton: a cell advances to
// its successor state once enough neighbors already hold that successor.
package cyclic

import (
	_ "embed"
	"strconv"

	"gpca/internal/core"
)

//go:embed cyclic.kage
var shader []byte

// Config holds the rule parameters.
type Config struct {
	States    uint32
	Threshold uint32
}

// DefaultConfig returns the standard 3-state, threshold-3 rule.
func DefaultConfig() Config {
	return Config{States: 3, Threshold: 3}
}

// FromMap populates a Config from a string map. Invalid values are ignored.
func FromMap(cfg map[string]string) Config {
	c := DefaultConfig()
	if cfg == nil {
		return c
	}
	if v, ok := cfg["states"]; ok {
		if parsed, err := strconv.ParseUint(v, 10, 32); err == nil && parsed >= 2 {
			c.States = uint32(parsed)
		}
	}
	if v, ok := cfg["threshold"]; ok {
		if parsed, err := strconv.ParseUint(v, 10, 32); err == nil {
			c.Threshold = uint32(parsed)
		}
	}
	return c
}

// Cyclic is the update rule. The zero value is not usable; call New.
type Cyclic struct {
	cfg Config
}

// New returns the rule for cfg. States below two are raised to two.
func New(cfg Config) *Cyclic {
	if cfg.States < 2 {
		cfg.States = 2
	}
	return &Cyclic{cfg: cfg}
}

// Name identifies the rule.
func (c *Cyclic) Name() string { return "cyclic" }

// Config returns the active parameters.
func (c *Cyclic) Config() Config { return c.cfg }

// States implements core.Rule.
func (c *Cyclic) States() uint32 { return c.cfg.States }

// Update implements core.Rule.
func (c *Cyclic) Update(current core.State, neighbors []core.State, _ []core.Hyperedge) core.State {
	succ := (current.State() + 1) % c.cfg.States
	var count uint32
	for _, n := range neighbors {
		if n.State() == succ {
			count++
		}
	}
	if count >= c.cfg.Threshold {
		return core.FromState(succ)
	}
	return current
}

// ObservationNeighbors implements core.LatticeRule.
func (c *Cyclic) ObservationNeighbors() []core.Offset { return core.MooreOffsets() }

// Pipeline implements core.LatticeRule.
func (c *Cyclic) Pipeline(k core.Kernel, input core.Image) (*core.Pipeline, error) {
	p, err := core.NewPipeline("cyclic", shader, k, input, c.ObservationNeighbors())
	if err != nil {
		return nil, err
	}
	p.Params["States"] = float32(c.cfg.States)
	p.Params["Threshold"] = float32(c.cfg.Threshold)
	return p, nil
}

// Parameters implements core.Describer.
func (c *Cyclic) Parameters() core.ParameterSnapshot {
	return core.ParameterSnapshot{Groups: []core.ParameterGroup{{
		Name: "Cyclic",
		Params: []core.Parameter{
			core.IntParam("states", "States", int(c.cfg.States)),
			core.IntParam("threshold", "Threshold", int(c.cfg.Threshold)),
		},
	}}}
}

func init() {
	core.Register("cyclic", func(cfg map[string]string) (core.Rule, error) {
		return New(FromMap(cfg)), nil
	})
}
