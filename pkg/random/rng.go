// Package random seeds initial lattice states deterministically.
package random

import (
	"math/rand/v2"

	"gpca/internal/core"
)

// RNG is a thin convenience wrapper around math/rand/v2 for deterministic seeding.
type RNG struct {
	r *rand.Rand
}

// New creates a deterministic RNG using the provided seed.
func New(seed int64) *RNG {
	return &RNG{r: rand.New(rand.NewPCG(uint64(seed), 0))}
}

// Source exposes the underlying rand.Rand for advanced use.
func (r *RNG) Source() *rand.Rand { return r.r }

// FillStates sets each cell to a non-zero state with probability density,
// drawing that state uniformly from [1, states). Alphabets with fewer than
// two states fill with zeros.
func FillStates(r *rand.Rand, buf []core.State, states uint32, density float64) {
	for i := range buf {
		buf[i] = 0
		if states < 2 || r.Float64() >= density {
			continue
		}
		buf[i] = core.FromState(1 + r.Uint32N(states-1))
	}
}

// FillUniform draws every cell uniformly from [0, states), the usual start
// for cyclic rules.
func FillUniform(r *rand.Rand, buf []core.State, states uint32) {
	for i := range buf {
		if states == 0 {
			buf[i] = 0
			continue
		}
		buf[i] = core.FromState(r.Uint32N(states))
	}
}
