package core

import "fmt"

// Size describes the dimensions of a 2D grid topology.
type Size struct {
	W int
	H int
}

// Shape reports the lattice dimensions as [width, height].
func (s Size) Shape() []int { return []int{s.W, s.H} }

// Index returns the linear node index for coordinates (x, y).
func (s Size) Index(x, y int) int { return y*s.W + x }

// Coords is the inverse of Index.
func (s Size) Coords(i int) (int, int) { return i % s.W, i / s.W }

// Wrap applies toroidal wrapping to the provided coordinates.
func (s Size) Wrap(x, y int) (int, int) {
	x = (x%s.W + s.W) % s.W
	y = (y%s.H + s.H) % s.H
	return x, y
}

// Ring describes a one-dimensional periodic topology of N nodes.
type Ring struct {
	N int
}

// Shape reports the ring length as a single dimension.
func (r Ring) Shape() []int { return []int{r.N} }

// Shaper is implemented by topology payloads with a regular shape.
type Shaper interface {
	Shape() []int
}

// Offset is a relative lattice displacement.
type Offset struct {
	DX, DY int
}

// MooreOffsets returns the eight Moore-neighborhood offsets in the order the
// grid builder enumerates them: dy outer, dx inner, (0,0) skipped. Rules that
// depend on neighbor position rely on this order.
func MooreOffsets() []Offset {
	out := make([]Offset, 0, 8)
	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			if dx == 0 && dy == 0 {
				continue
			}
			out = append(out, Offset{DX: dx, DY: dy})
		}
	}
	return out
}

// NewGrid builds a toroidal width x height topology where every node has the
// eight Moore neighbors, one hyperedge per neighbor carrying edge as payload.
func NewGrid(nodes []State, width, height int, edge any) (*Hypergraph[Size], error) {
	if width <= 0 || height <= 0 {
		return nil, precondition("NewGrid", fmt.Errorf("%w: dimensions %dx%d", ErrLengthMismatch, width, height))
	}
	if len(nodes) != width*height {
		return nil, precondition("NewGrid", fmt.Errorf("%w: %d states for %dx%d grid", ErrLengthMismatch, len(nodes), width, height))
	}
	size := Size{W: width, H: height}
	offsets := MooreOffsets()
	edges := make(map[int][]Hyperedge, len(nodes))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			local := make([]Hyperedge, 0, len(offsets))
			for _, off := range offsets {
				nx := (x + off.DX + width) % width
				ny := (y + off.DY + height) % height
				local = append(local, Hyperedge{Neighbors: []int{size.Index(nx, ny)}, Payload: edge})
			}
			edges[size.Index(x, y)] = local
		}
	}
	return NewHypergraph(nodes, edges, size)
}

// NewRing builds a periodic one-dimensional topology where every node has a
// left and a right neighbor, in that order.
func NewRing(nodes []State, edge any) (*Hypergraph[Ring], error) {
	n := len(nodes)
	if n == 0 {
		return nil, precondition("NewRing", fmt.Errorf("%w: empty ring", ErrLengthMismatch))
	}
	edges := make(map[int][]Hyperedge, n)
	for i := 0; i < n; i++ {
		edges[i] = []Hyperedge{
			{Neighbors: []int{(i - 1 + n) % n}, Payload: edge},
			{Neighbors: []int{(i + 1) % n}, Payload: edge},
		}
	}
	return NewHypergraph(nodes, edges, Ring{N: n})
}
