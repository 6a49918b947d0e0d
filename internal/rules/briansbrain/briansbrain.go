package briansbrain

import "gpca/internal/core"

const (
	stateDead  = 0
	stateOn    = 1
	stateDying = 2
)

// Brain implements Brian's Brain. It has no lattice adapter and runs on the
// CPU path only.
type Brain struct{}

// New returns the rule.
func New() *Brain { return &Brain{} }

// Name identifies the rule.
func (b *Brain) Name() string { return "briansbrain" }

// States implements core.Rule.
func (b *Brain) States() uint32 { return 3 }

// Update implements core.Rule.
func (b *Brain) Update(current core.State, neighbors []core.State, _ []core.Hyperedge) core.State {
	switch current {
	case stateOn:
		return stateDying
	case stateDying:
		return stateDead
	}
	on := 0
	for _, n := range neighbors {
		if n == stateOn {
			on++
		}
	}
	if on == 2 {
		return stateOn
	}
	return stateDead
}

// Parameters implements core.Describer.
func (b *Brain) Parameters() core.ParameterSnapshot {
	return core.ParameterSnapshot{}
}

func init() {
	core.Register("briansbrain", func(cfg map[string]string) (core.Rule, error) {
		return New(), nil
	})
}
