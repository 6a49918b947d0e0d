// Package cache provides memo caches for the CPU step. A cache maps a node's
// state plus its ordered neighbor states to the rule output, so it is only
// valid for a single rule.
package cache

import (
	"sync/atomic"

	"github.com/puzpuzpuz/xsync/v3"

	"gpca/internal/core"
)

// Unbounded is a concurrent memo that never evicts.
type Unbounded struct {
	entries *xsync.MapOf[string, core.State]
	hits    atomic.Uint64
	misses  atomic.Uint64
}

// NewUnbounded returns an empty unbounded memo.
func NewUnbounded() *Unbounded {
	return &Unbounded{entries: xsync.NewMapOf[string, core.State]()}
}

// Lookup implements core.Memo.
func (u *Unbounded) Lookup(current core.State, neighbors []core.State) (core.State, bool) {
	v, ok := u.entries.Load(key(current, neighbors))
	if ok {
		u.hits.Add(1)
	} else {
		u.misses.Add(1)
	}
	return v, ok
}

// Store implements core.Memo.
func (u *Unbounded) Store(current core.State, neighbors []core.State, next core.State) {
	u.entries.Store(key(current, neighbors), next)
}

// Len reports the number of cached neighborhoods.
func (u *Unbounded) Len() int { return u.entries.Size() }

// Stats implements core.StatsReporter.
func (u *Unbounded) Stats() core.MemoStats {
	return core.MemoStats{Hits: u.hits.Load(), Misses: u.misses.Load(), Entries: u.Len()}
}

// Reset drops every entry and zeroes the counters.
func (u *Unbounded) Reset() {
	u.entries.Clear()
	u.hits.Store(0)
	u.misses.Store(0)
}
