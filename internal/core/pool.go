package core

import "golang.org/x/sync/errgroup"

// chunksPerWorker oversubscribes the pool so uneven rule costs still balance.
const chunksPerWorker = 4

// pool fans a node range out over a fixed number of goroutines. Each task owns
// a contiguous index range; tasks never wait on each other.
type pool struct {
	workers int
}

func (p pool) run(n int, fn func(lo, hi int) error) error {
	if n == 0 {
		return nil
	}
	workers := max(p.workers, 1)
	size := (n + workers*chunksPerWorker - 1) / (workers * chunksPerWorker)
	if size < 1 {
		size = 1
	}

	var eg errgroup.Group
	eg.SetLimit(workers)
	for lo := 0; lo < n; lo += size {
		lo, hi := lo, min(lo+size, n)
		eg.Go(func() error {
			return fn(lo, hi)
		})
	}
	return eg.Wait()
}
