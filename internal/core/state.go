package core

// State is the value held by a single node: a small unsigned integer in the
// range 0..States()-1 of the owning rule. The range is not enforced here.
type State uint32

// State returns the integer value of the state.
func (s State) State() uint32 { return uint32(s) }

// FromState constructs a State from its integer value.
func FromState(v uint32) State { return State(v) }

// States converts a slice of integers into node states.
func States(values ...uint32) []State {
	out := make([]State, len(values))
	for i, v := range values {
		out[i] = FromState(v)
	}
	return out
}
