package core

import (
	"fmt"
	"log/slog"
	"runtime"
	"slices"
	"time"
)

// Memo caches rule outputs keyed by a node's state and its ordered neighbor
// states. Implementations must be safe for concurrent use and must copy
// neighbors if they retain it.
type Memo interface {
	Lookup(current State, neighbors []State) (State, bool)
	Store(current State, neighbors []State, next State)
}

// MemoStats summarizes memo cache usage.
type MemoStats struct {
	Hits    uint64
	Misses  uint64
	Entries int
}

// StatsReporter is implemented by memo caches that count lookups.
type StatsReporter interface {
	Stats() MemoStats
}

// Border selects how the lattice path treats cells whose kernel footprint
// crosses the lattice edge.
type Border int

const (
	// BorderCrop drops the border: the output shrinks by kernel size - 1 in
	// each dimension and is redistributed over all nodes by index modulo the
	// output length.
	BorderCrop Border = iota
	// BorderWrap evaluates every cell with toroidal wraparound, matching the
	// grid builder's neighborhood.
	BorderWrap
)

// String returns the flag spelling of the border mode.
func (b Border) String() string {
	switch b {
	case BorderWrap:
		return "wrap"
	default:
		return "crop"
	}
}

// ParseBorder converts a flag value into a Border.
func ParseBorder(s string) (Border, error) {
	switch s {
	case "", "crop":
		return BorderCrop, nil
	case "wrap":
		return BorderWrap, nil
	default:
		return BorderCrop, fmt.Errorf("invalid border %q: must be crop or wrap", s)
	}
}

type options struct {
	workers int
	memo    Memo
	border  Border
	logger  *slog.Logger
}

// Option configures a System.
type Option func(*options)

// WithWorkers sets the size of the CPU worker pool. Values below one are
// treated as one.
func WithWorkers(n int) Option {
	return func(o *options) { o.workers = max(n, 1) }
}

// WithMemo attaches a memoization cache used by ComputeSync.
func WithMemo(m Memo) Option {
	return func(o *options) { o.memo = m }
}

// WithBorder selects the border handling of ComputeSyncGPU.
func WithBorder(b Border) Option {
	return func(o *options) { o.border = b }
}

// WithLogger sets the logger used for per-tick debug records.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// System composes one topology with one rule and advances it generation by
// generation. A System is not safe for concurrent ticks.
type System[P any] struct {
	space      *Hypergraph[P]
	rule       Rule
	opts       options
	pool       pool
	generation uint64
}

// New composes a topology and a rule into a dynamical system.
func New[P any](space *Hypergraph[P], rule Rule, opts ...Option) *System[P] {
	o := options{
		workers: runtime.GOMAXPROCS(0),
		logger:  slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(&o)
	}
	return &System[P]{
		space: space,
		rule:  rule,
		opts:  o,
		pool:  pool{workers: o.workers},
	}
}

// Space returns the underlying topology.
func (s *System[P]) Space() *Hypergraph[P] { return s.space }

// Rule returns the update rule.
func (s *System[P]) Rule() Rule { return s.rule }

// Memo returns the attached memo cache, or nil.
func (s *System[P]) Memo() Memo { return s.opts.memo }

// Generation reports how many ticks have completed.
func (s *System[P]) Generation() uint64 { return s.generation }

// SpaceState returns an owned copy of all node states.
func (s *System[P]) SpaceState() []State {
	return slices.Clone(s.space.Nodes())
}

// Shape reports the lattice dimensions of the topology payload.
func (s *System[P]) Shape() ([]int, error) {
	shaper, ok := any(s.space.Payload()).(Shaper)
	if !ok {
		return nil, precondition("Shape", fmt.Errorf("%w: payload %T has no shape", ErrNotLattice, s.space.Payload()))
	}
	return shaper.Shape(), nil
}

// ComputeSync advances every node by one generation on the CPU. Each node reads
// only previous-generation states and writes only its own slot of a fresh
// buffer, which replaces the topology's states once all nodes are done. On
// error the states are left untouched.
func (s *System[P]) ComputeSync() error {
	start := time.Now()
	old := s.space.Nodes()
	next := slices.Clone(old)

	err := s.pool.run(len(old), func(lo, hi int) error {
		var gathered []State
		for i := lo; i < hi; i++ {
			idx, err := s.space.Neighbors(i)
			if err != nil {
				return err
			}
			gathered = gathered[:0]
			for _, j := range idx {
				gathered = append(gathered, old[j])
			}
			next[i] = s.apply(old[i], gathered)
		}
		return nil
	})
	if err != nil {
		return err
	}
	if err := s.space.UpdateNodes(next); err != nil {
		return err
	}
	s.finishTick("cpu", start)
	return nil
}

func (s *System[P]) apply(current State, neighbors []State) State {
	memo := s.opts.memo
	if memo == nil {
		return s.rule.Update(current, neighbors, nil)
	}
	if cached, ok := memo.Lookup(current, neighbors); ok {
		return cached
	}
	out := s.rule.Update(current, neighbors, nil)
	memo.Store(current, neighbors, out)
	return out
}

func (s *System[P]) finishTick(path string, start time.Time) {
	s.generation++
	attrs := []any{
		"generation", s.generation,
		"path", path,
		"elapsed", time.Since(start),
	}
	if r, ok := s.opts.memo.(StatsReporter); ok {
		st := r.Stats()
		attrs = append(attrs, "hits", st.Hits, "misses", st.Misses, "entries", st.Entries)
	}
	s.opts.logger.Debug("tick", attrs...)
}
