package core

import (
	"fmt"
	"slices"
)

// Hyperedge relates a node to an ordered list of neighbor nodes. Payload is
// rule-agnostic auxiliary data and may be nil.
type Hyperedge struct {
	Neighbors []int
	Payload   any
}

// Hypergraph stores node states together with their neighborhood structure.
//
// The flattened neighbor table is derived from the edge map at construction
// and by RebuildNeighbors only. UpdateEdges replaces the edge map without
// touching the table, so callers that change edges must rebuild explicitly.
type Hypergraph[P any] struct {
	nodes     []State
	edges     map[int][]Hyperedge
	neighbors [][]int
	payload   P
}

// NewHypergraph builds a topology from explicit nodes, edges and payload. The
// inputs are copied. Every neighbor index must reference an existing node.
func NewHypergraph[P any](nodes []State, edges map[int][]Hyperedge, payload P) (*Hypergraph[P], error) {
	g := &Hypergraph[P]{
		nodes:   slices.Clone(nodes),
		edges:   cloneEdges(edges),
		payload: payload,
	}
	if err := g.RebuildNeighbors(); err != nil {
		return nil, err
	}
	return g, nil
}

// Nodes returns the current node states. The slice is owned by the topology
// and must not be modified; use UpdateNodes to replace it.
func (g *Hypergraph[P]) Nodes() []State { return g.nodes }

// Len reports the number of nodes.
func (g *Hypergraph[P]) Len() int { return len(g.nodes) }

// Payload returns the topology metadata, e.g. the grid size.
func (g *Hypergraph[P]) Payload() P { return g.payload }

// Edges exposes the hyperedge map keyed by node index.
func (g *Hypergraph[P]) Edges() map[int][]Hyperedge { return g.edges }

// Neighbors returns the flattened neighbor indices of node i in hyperedge
// order.
func (g *Hypergraph[P]) Neighbors(i int) ([]int, error) {
	if i < 0 || i >= len(g.neighbors) {
		return nil, precondition("Neighbors", fmt.Errorf("%w: %d not in [0,%d)", ErrNodeIndex, i, len(g.neighbors)))
	}
	return g.neighbors[i], nil
}

// UpdateNodes replaces the whole state sequence. The new slice is adopted
// without copying.
func (g *Hypergraph[P]) UpdateNodes(next []State) error {
	if len(next) != len(g.nodes) {
		return precondition("UpdateNodes", fmt.Errorf("%w: got %d states for %d nodes", ErrLengthMismatch, len(next), len(g.nodes)))
	}
	g.nodes = next
	return nil
}

// UpdateEdges replaces the edge map. The neighbor table keeps describing the
// previous edges until RebuildNeighbors is called.
func (g *Hypergraph[P]) UpdateEdges(edges map[int][]Hyperedge) {
	g.edges = cloneEdges(edges)
}

// RebuildNeighbors derives the flattened neighbor table from the edge map.
// Nodes without hyperedges get an empty neighbor list. On error the previous
// table is kept.
func (g *Hypergraph[P]) RebuildNeighbors() error {
	n := len(g.nodes)
	table := make([][]int, n)
	for i := 0; i < n; i++ {
		var flat []int
		for _, edge := range g.edges[i] {
			for _, j := range edge.Neighbors {
				if j < 0 || j >= n {
					return precondition("RebuildNeighbors", fmt.Errorf("%w: node %d references %d", ErrNeighborIndex, i, j))
				}
				flat = append(flat, j)
			}
		}
		if flat == nil {
			flat = []int{}
		}
		table[i] = flat
	}
	for i := range g.edges {
		if i < 0 || i >= n {
			return precondition("RebuildNeighbors", fmt.Errorf("%w: edges keyed by missing node %d", ErrNodeIndex, i))
		}
	}
	g.neighbors = table
	return nil
}

func cloneEdges(edges map[int][]Hyperedge) map[int][]Hyperedge {
	out := make(map[int][]Hyperedge, len(edges))
	for k, list := range edges {
		cp := make([]Hyperedge, len(list))
		for i, e := range list {
			cp[i] = Hyperedge{Neighbors: slices.Clone(e.Neighbors), Payload: e.Payload}
		}
		out[k] = cp
	}
	return out
}
