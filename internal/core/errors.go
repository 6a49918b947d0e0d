package core

import (
	"errors"
	"fmt"
)

var (
	// ErrLengthMismatch reports a replacement state buffer whose length differs
	// from the topology's node count.
	ErrLengthMismatch = errors.New("state buffer length mismatch")

	// ErrNodeIndex reports a node index outside the topology or a node with no
	// neighbor entry.
	ErrNodeIndex = errors.New("node index out of range")

	// ErrNeighborIndex reports a hyperedge that references a node outside the
	// topology.
	ErrNeighborIndex = errors.New("neighbor index out of range")

	// ErrNotLattice reports a topology without a two-dimensional shape.
	ErrNotLattice = errors.New("topology is not a 2D lattice")

	// ErrNoLatticeRule reports a rule without a lattice adapter.
	ErrNoLatticeRule = errors.New("rule has no lattice adapter")

	// ErrDeviceUnavailable reports that no usable GPU device could be created.
	ErrDeviceUnavailable = errors.New("gpu device unavailable")

	// ErrUnknownRule reports a registry lookup for a name nobody registered.
	ErrUnknownRule = errors.New("unknown rule")
)

// PreconditionError marks a programmer error detected by a core operation:
// an inconsistent topology or a call the topology cannot satisfy. The
// operation that returns it has not modified any state.
type PreconditionError struct {
	// Op names the failing operation, e.g. "UpdateNodes".
	Op string

	// Err is one of the sentinel errors above, possibly wrapped.
	Err error
}

// Error implements the error interface.
func (e *PreconditionError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

// Unwrap exposes the underlying sentinel for errors.Is.
func (e *PreconditionError) Unwrap() error { return e.Err }

// IsPrecondition reports whether err is, or wraps, a PreconditionError.
func IsPrecondition(err error) bool {
	var pe *PreconditionError
	return errors.As(err, &pe)
}

func precondition(op string, err error) error {
	return &PreconditionError{Op: op, Err: err}
}
