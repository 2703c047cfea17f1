// Package parallel provides a chunked data-parallel for loop with an
// implicit join, used to fan index-range work out across CPUs.
package parallel

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// DefaultWorkers returns the default fan-out width.
func DefaultWorkers() int {
	return runtime.GOMAXPROCS(0)
}

// For splits [0, n) into at most workers contiguous chunks and runs fn on
// each chunk concurrently. It returns after every chunk has finished (the
// join is the caller's barrier): iteration order across chunks is
// unspecified, and fn must be safe to call from multiple goroutines.
//
// The first non-nil error cancels the group context and is returned. A nil
// or non-positive workers falls back to DefaultWorkers.
func For(ctx context.Context, n uint64, workers int, fn func(lo, hi uint64) error) error {
	if n == 0 {
		return ctx.Err()
	}
	if workers <= 0 {
		workers = DefaultWorkers()
	}
	if uint64(workers) > n {
		workers = int(n)
	}

	chunk := n / uint64(workers)
	rem := n % uint64(workers)

	g, _ := errgroup.WithContext(ctx)

	lo := uint64(0)
	for w := 0; w < workers; w++ {
		hi := lo + chunk
		if uint64(w) < rem {
			hi++
		}
		start, end := lo, hi
		g.Go(func() error {
			return fn(start, end)
		})
		lo = hi
	}

	return g.Wait()
}
