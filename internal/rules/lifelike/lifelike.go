// Package lifelike implements two-state outer-totalistic rules in B/S
// notation, Conway's Life being B3/S23.
package lifelike

import (
	_ "embed"

	"gpca/internal/core"
)

//go:embed lifelike.kage
var shader []byte

const (
	dead  = 0
	alive = 1
)

// Config holds the birth and survival count sets.
type Config struct {
	Birth   Mask
	Survive Mask
}

// DefaultConfig returns Conway's Life.
func DefaultConfig() Config {
	return Config{Birth: 1 << 3, Survive: 1<<2 | 1<<3}
}

// String renders the config as a rulestring.
func (c Config) String() string { return FormatRule(c.Birth, c.Survive) }

// FromMap populates a Config from a string map. "rule" takes a rulestring;
// "birth" and "survive" take comma-separated counts and override it. Invalid
// values are ignored.
func FromMap(cfg map[string]string) Config {
	c := DefaultConfig()
	if cfg == nil {
		return c
	}
	if v, ok := cfg["rule"]; ok {
		if b, s, err := ParseRule(v); err == nil {
			c.Birth, c.Survive = b, s
		}
	}
	if v, ok := cfg["birth"]; ok {
		if m, err := ParseList(v); err == nil {
			c.Birth = m
		}
	}
	if v, ok := cfg["survive"]; ok {
		if m, err := ParseList(v); err == nil {
			c.Survive = m
		}
	}
	return c
}

// LifeLike is the update rule.
type LifeLike struct {
	cfg  Config
	name string
}

// New returns the rule for cfg.
func New(cfg Config) *LifeLike {
	return &LifeLike{cfg: cfg, name: "lifelike"}
}

// Name identifies the rule.
func (l *LifeLike) Name() string { return l.name }

// Config returns the active parameters.
func (l *LifeLike) Config() Config { return l.cfg }

// States implements core.Rule.
func (l *LifeLike) States() uint32 { return 2 }

// Update implements core.Rule. Birth is checked before survival, so a live
// cell whose count is in both sets stays alive either way.
func (l *LifeLike) Update(current core.State, neighbors []core.State, _ []core.Hyperedge) core.State {
	count := 0
	for _, n := range neighbors {
		if n == alive {
			count++
		}
	}
	switch {
	case l.cfg.Birth.Has(count):
		return alive
	case l.cfg.Survive.Has(count):
		return current
	default:
		return dead
	}
}

// ObservationNeighbors implements core.LatticeRule.
func (l *LifeLike) ObservationNeighbors() []core.Offset { return core.MooreOffsets() }

// Pipeline implements core.LatticeRule.
func (l *LifeLike) Pipeline(k core.Kernel, input core.Image) (*core.Pipeline, error) {
	p, err := core.NewPipeline(l.name, shader, k, input, l.ObservationNeighbors())
	if err != nil {
		return nil, err
	}
	p.Params["Birth"] = l.cfg.Birth.Flags()
	p.Params["Survive"] = l.cfg.Survive.Flags()
	return p, nil
}

// Parameters implements core.Describer.
func (l *LifeLike) Parameters() core.ParameterSnapshot {
	return core.ParameterSnapshot{Groups: []core.ParameterGroup{{
		Name:    "Life-like",
		Summary: "Outer-totalistic two-state rule",
		Params: []core.Parameter{
			core.StringParam("rule", "Rule", l.cfg.String()),
		},
	}}}
}

func init() {
	factory := func(name string) core.Factory {
		return func(cfg map[string]string) (core.Rule, error) {
			r := New(FromMap(cfg))
			r.name = name
			return r, nil
		}
	}
	core.Register("lifelike", factory("lifelike"))
	core.Register("life", factory("life"))
}
