package core

// Rule is a local update function applied to every node once per tick.
//
// Update must be pure: it may only read its arguments and must be safe to call
// concurrently for different nodes of the same tick. neighbors is ordered as
// the topology's Neighbors; edges holds the node's incident hyperedges when
// the engine supplies them and is nil otherwise. The neighbors slice is reused
// between calls and must not be retained.
type Rule interface {
	// States is the size of the rule's state alphabet. It is descriptive and
	// not enforced by the engine.
	States() uint32
	Update(current State, neighbors []State, edges []Hyperedge) State
}

// Describer is implemented by rules that can name and describe themselves for
// listings and on-screen panels.
type Describer interface {
	Name() string
	Parameters() ParameterSnapshot
}
