package neighborhood

import "golang.org/x/sync/errgroup"

// chunksPerWorker oversubscribes the work split so that a slow chunk does not
// leave the other workers idle.
const chunksPerWorker = 4

// parallelRanges splits [0, n) into contiguous chunks and runs fn on each
// chunk, with at most workers chunks in flight. fn must only write state
// owned by its own range. With workers <= 1 it runs fn inline over [0, n).
func parallelRanges(n, workers int, fn func(start, end int)) {
	if n == 0 {
		return
	}
	if workers <= 1 || n == 1 {
		fn(0, n)
		return
	}

	chunks := min(workers*chunksPerWorker, n)
	perChunk := (n + chunks - 1) / chunks

	var g errgroup.Group
	g.SetLimit(workers)
	for start := 0; start < n; start += perChunk {
		end := min(start+perChunk, n)
		g.Go(func() error {
			fn(start, end)
			return nil
		})
	}
	_ = g.Wait()
}
