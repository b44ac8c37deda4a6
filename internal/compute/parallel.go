package compute

import (
	"runtime"
	"sync"

	"github.com/san-kum/nbodysim/internal/nbody"
)

// ParallelBackend splits each step into three fan-out phases. Every phase
// writes disjoint slots: pair k in the first, body i in the other two.
// parallelFor returns only after all workers are done, which is the barrier
// between kicks and drifts.
type ParallelBackend struct {
	workers int
}

// NewParallelBackend creates a backend with the given number of workers.
// workers <= 0 selects runtime.NumCPU().
func NewParallelBackend(workers int) *ParallelBackend {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	return &ParallelBackend{workers: workers}
}

func (b *ParallelBackend) Name() string { return "parallel" }
func (b *ParallelBackend) Close()       {}

func (b *ParallelBackend) Advance(s *nbody.System) {
	var p nbody.Pairs

	b.parallelFor(nbody.Interactions, func(start, end int) {
		for k := start; k < end; k++ {
			p.Displacement(s, k)
			p.Magnitude(k)
		}
	})

	b.parallelFor(nbody.NumBodies, func(start, end int) {
		for i := start; i < end; i++ {
			p.KickBody(s, i)
		}
	})

	b.parallelFor(nbody.NumBodies, func(start, end int) {
		for i := start; i < end; i++ {
			nbody.Drift(&s[i])
		}
	})
}

// parallelFor executes fn over [0, n) in contiguous chunks.
func (b *ParallelBackend) parallelFor(n int, fn func(start, end int)) {
	workers := b.workers
	if workers > n {
		workers = n
	}
	if workers <= 1 {
		fn(0, n)
		return
	}

	chunkSize := (n + workers - 1) / workers

	var wg sync.WaitGroup
	for start := 0; start < n; start += chunkSize {
		end := start + chunkSize
		if end > n {
			end = n
		}

		wg.Add(1)
		go func(s, e int) {
			defer wg.Done()
			fn(s, e)
		}(start, end)
	}

	wg.Wait()
}
