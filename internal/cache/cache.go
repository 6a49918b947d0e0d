package cache

import (
	"fmt"

	"gpca/internal/core"
)

// Mode names a memo strategy as accepted on the command line.
type Mode string

const (
	ModeNone      Mode = "none"
	ModeUnbounded Mode = "unbounded"
	ModeLRU       Mode = "lru"
)

// Resettable is implemented by every cache in this package.
type Resettable interface {
	core.Memo
	core.StatsReporter
	Reset()
}

// New builds the memo selected by mode. ModeNone yields a nil memo. size is
// only used by ModeLRU.
func New(mode Mode, size int) (Resettable, error) {
	switch mode {
	case "", ModeNone:
		return nil, nil
	case ModeUnbounded:
		return NewUnbounded(), nil
	case ModeLRU:
		l, err := NewLRU(size)
		if err != nil {
			return nil, err
		}
		return l, nil
	default:
		return nil, fmt.Errorf("unknown cache mode %q: must be none, unbounded or lru", mode)
	}
}
