package grid

import (
	"runtime"
	"sync"
)

// ParallelFor splits [0,n) across GOMAXPROCS-sized chunks and runs fn
// on each chunk concurrently, blocking until all chunks finish. Below
// minChunk elements it runs fn inline on the full range: the stencils
// in this module are cheap enough per cell that spinning up goroutines
// for a handful of k-planes costs more than it saves.
func ParallelFor(n, minChunk int, fn func(start, end int)) {
	if n <= 0 {
		return
	}
	workers := runtime.GOMAXPROCS(0)
	if n <= minChunk || workers <= 1 {
		fn(0, n)
		return
	}
	if n/minChunk < workers {
		workers = n / minChunk
	}
	if workers < 1 {
		workers = 1
	}

	chunk := (n + workers - 1) / workers

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		start := w * chunk
		end := start + chunk
		if start >= n {
			break
		}
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

// ForEachK runs fn(k) for each k-plane, in parallel when the grid is
// large enough. Most stencils in this module iterate k outermost so
// that each goroutine gets contiguous planes of the underlying buffer.
func (c Config) ForEachK(minPlanes int, fn func(k int)) {
	ParallelFor(c.Nz, minPlanes, func(start, end int) {
		for k := start; k < end; k++ {
			fn(k)
		}
	})
}
