package cache_test

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gpca/internal/cache"
	"gpca/internal/core"
	"gpca/internal/rules/cyclic"
	"gpca/internal/rules/lifelike"
	"gpca/pkg/random"
)

func grid(t *testing.T, states uint32) *core.Hypergraph[core.Size] {
	t.Helper()
	nodes := make([]core.State, 20*20)
	random.FillUniform(random.New(5).Source(), nodes, states)
	g, err := core.NewGrid(nodes, 20, 20, nil)
	require.NoError(t, err)
	return g
}

func TestMemoizedRunMatchesPlain(t *testing.T) {
	lru, err := cache.NewLRU(64)
	require.NoError(t, err)
	memos := map[string]core.Memo{
		"unbounded": cache.NewUnbounded(),
		"lru":       lru,
	}
	rules := map[string]core.Rule{
		"cyclic":   cyclic.New(cyclic.Config{States: 3, Threshold: 2}),
		"lifelike": lifelike.New(lifelike.DefaultConfig()),
	}
	for memoName, memo := range memos {
		for ruleName, rule := range rules {
			t.Run(memoName+"/"+ruleName, func(t *testing.T) {
				memo.(cache.Resettable).Reset()
				plain := core.New(grid(t, rule.States()), rule)
				cached := core.New(grid(t, rule.States()), rule, core.WithMemo(memo))
				for i := 0; i < 8; i++ {
					require.NoError(t, plain.ComputeSync())
					require.NoError(t, cached.ComputeSync())
				}
				assert.Equal(t, plain.SpaceState(), cached.SpaceState())
			})
		}
	}
}

func TestKeyDistinguishesNeighborOrder(t *testing.T) {
	m := cache.NewUnbounded()
	m.Store(0, core.States(1, 2), 5)

	v, ok := m.Lookup(0, core.States(1, 2))
	require.True(t, ok)
	assert.Equal(t, core.State(5), v)

	_, ok = m.Lookup(0, core.States(2, 1))
	assert.False(t, ok, "neighbor order is part of the key")
	_, ok = m.Lookup(1, core.States(1, 2))
	assert.False(t, ok)
	_, ok = m.Lookup(0, core.States(1, 2, 0))
	assert.False(t, ok, "neighbor count is part of the key")
	_, ok = m.Lookup(0, core.States(256+1, 2))
	assert.False(t, ok, "states wider than a byte must not alias")
}

func TestStats(t *testing.T) {
	m := cache.NewUnbounded()
	m.Lookup(0, nil)
	m.Store(0, nil, 1)
	m.Lookup(0, nil)
	m.Lookup(0, nil)

	assert.Equal(t, core.MemoStats{Hits: 2, Misses: 1, Entries: 1}, m.Stats())

	m.Reset()
	assert.Equal(t, core.MemoStats{}, m.Stats())
}

func TestLRUBound(t *testing.T) {
	m, err := cache.NewLRU(4)
	require.NoError(t, err)
	for i := uint32(0); i < 10; i++ {
		m.Store(core.FromState(i), nil, 0)
	}
	assert.Equal(t, 4, m.Len())

	_, ok := m.Lookup(0, nil)
	assert.False(t, ok, "oldest entry is evicted")
	_, ok = m.Lookup(9, nil)
	assert.True(t, ok)

	_, err = cache.NewLRU(0)
	require.Error(t, err)
}

func TestConcurrentStores(t *testing.T) {
	m := cache.NewUnbounded()
	var wg sync.WaitGroup
	for w := 0; w < 8; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := uint32(0); i < 100; i++ {
				m.Store(core.FromState(i), core.States(i), core.FromState(i+1))
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 100, m.Len())
	for i := uint32(0); i < 100; i++ {
		v, ok := m.Lookup(core.FromState(i), core.States(i))
		require.True(t, ok, fmt.Sprint(i))
		assert.Equal(t, core.FromState(i+1), v)
	}
}

func TestNewByMode(t *testing.T) {
	m, err := cache.New(cache.ModeNone, 0)
	require.NoError(t, err)
	assert.Nil(t, m)

	m, err = cache.New(cache.ModeUnbounded, 0)
	require.NoError(t, err)
	assert.IsType(t, &cache.Unbounded{}, m)

	m, err = cache.New(cache.ModeLRU, 8)
	require.NoError(t, err)
	assert.IsType(t, &cache.LRU{}, m)

	_, err = cache.New(cache.ModeLRU, 0)
	require.Error(t, err)
	_, err = cache.New("arc", 0)
	require.Error(t, err)
}
