package cache

import (
	"fmt"
	"sync/atomic"

	lru "github.com/hashicorp/golang-lru/v2"

	"gpca/internal/core"
)

// LRU is a memo bounded to a fixed number of neighborhoods, evicting the
// least recently used entry when full.
type LRU struct {
	entries *lru.Cache[string, core.State]
	hits    atomic.Uint64
	misses  atomic.Uint64
}

// NewLRU returns a memo holding at most size entries.
func NewLRU(size int) (*LRU, error) {
	if size <= 0 {
		return nil, fmt.Errorf("lru memo size must be positive, got %d", size)
	}
	c, err := lru.New[string, core.State](size)
	if err != nil {
		return nil, err
	}
	return &LRU{entries: c}, nil
}

// Lookup implements core.Memo.
func (l *LRU) Lookup(current core.State, neighbors []core.State) (core.State, bool) {
	v, ok := l.entries.Get(key(current, neighbors))
	if ok {
		l.hits.Add(1)
	} else {
		l.misses.Add(1)
	}
	return v, ok
}

// Store implements core.Memo.
func (l *LRU) Store(current core.State, neighbors []core.State, next core.State) {
	l.entries.Add(key(current, neighbors), next)
}

// Len reports the number of cached neighborhoods.
func (l *LRU) Len() int { return l.entries.Len() }

// Stats implements core.StatsReporter.
func (l *LRU) Stats() core.MemoStats {
	return core.MemoStats{Hits: l.hits.Load(), Misses: l.misses.Load(), Entries: l.Len()}
}

// Reset drops every entry and zeroes the counters.
func (l *LRU) Reset() {
	l.entries.Purge()
	l.hits.Store(0)
	l.misses.Store(0)
}
