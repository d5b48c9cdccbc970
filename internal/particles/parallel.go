package particles

import "sync"

// ParallelFor runs fn over [0, n) split into contiguous chunks on up
// to workers goroutines and returns once every chunk finished. Ranges
// smaller than minChunk run inline on the calling goroutine. fn must
// not touch indices outside its [start, end) range.
func ParallelFor(workers, n, minChunk int, fn func(start, end int)) {
	if n <= 0 {
		return
	}
	if minChunk < 1 {
		minChunk = 1
	}
	if workers > n/minChunk {
		workers = n / minChunk
	}
	if workers <= 1 {
		fn(0, n)
		return
	}

	chunk := (n + workers - 1) / workers

	var wg sync.WaitGroup
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		start := w * chunk
		end := start + chunk
		if end > n {
			end = n
		}
		go func(s, e int) {
			defer wg.Done()
			fn(s, e)
		}(start, end)
	}
	wg.Wait()
}
