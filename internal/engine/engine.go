// Package engine builds the subset-sum reachability table and reconstructs
// one answering sub-multiset.
//
// The table holds one bit row per entry; row i is derived solely from the
// frozen row i-1. The outer loop over rows is strictly sequential, while the
// two derivation sweeps within a row fan out across CPUs and mutate the row
// through atomic fetch-OR only. That monotonic set-only discipline is the
// whole synchronization story: there is no lock anywhere in the build.
package engine

import (
	"context"
	"log/slog"
	"time"

	"github.com/RoaringBitmap/roaring/v2/roaring64"
	"golang.org/x/time/rate"

	"github.com/hupe1980/sumset/bitset"
	"github.com/hupe1980/sumset/internal/parallel"
	"github.com/hupe1980/sumset/progress"
)

// Config holds engine tuning knobs. The zero value is usable.
type Config struct {
	// Workers is the fan-out width for row allocation and sweeps.
	// Non-positive means one worker per CPU.
	Workers int

	// CollectReachable retains the final row as a roaring bitmap of
	// reachable bit indexes on the Outcome. Off by default: it costs one
	// extra pass over the row.
	CollectReachable bool

	// Logger receives per-row build progress at debug level.
	Logger *slog.Logger
}

// Engine runs the dynamic-programming solve.
type Engine struct {
	workers          int
	collectReachable bool
	logger           *slog.Logger
}

// New creates an Engine from cfg.
func New(cfg Config) *Engine {
	workers := cfg.Workers
	if workers <= 0 {
		workers = parallel.DefaultWorkers()
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Engine{
		workers:          workers,
		collectReachable: cfg.CollectReachable,
		logger:           logger,
	}
}

// Outcome is the result of one Run.
type Outcome struct {
	// Subset is one sub-multiset of the entries summing to the target, in
	// reverse order of discovery (descending original entry index). Nil
	// when Found is false.
	Subset []int64
	// Found reports whether any sub-multiset sums to the target.
	Found bool
	// Layout is the index mapping the run used.
	Layout Layout
	// TableBuild is the time spent allocating and filling the table.
	TableBuild time.Duration

	reachable *roaring64.Bitmap
}

// CanReach reports whether some sub-multiset of the entries sums to sum.
// Only available when the engine was configured to collect reachable sums.
func (o *Outcome) CanReach(sum int64) bool {
	if o.reachable == nil {
		return false
	}
	idx, ok := o.Layout.IndexOf(sum)
	return ok && o.reachable.Contains(idx)
}

// ReachableSums returns every signed sum some sub-multiset of the entries
// can produce, ascending. Nil unless reachable collection was enabled.
func (o *Outcome) ReachableSums() []int64 {
	if o.reachable == nil {
		return nil
	}
	sums := make([]int64, 0, o.reachable.GetCardinality())
	it := o.reachable.Iterator()
	for it.HasNext() {
		sums = append(sums, o.Layout.SumOf(it.Next()))
	}
	return sums
}

// Run decides whether some sub-multiset of entries sums to target and, if
// so, reconstructs one. A tracker, when non-nil, receives one counter write
// per row and the terminal result exactly once; Run never blocks on it.
//
// A returned error is either a configuration overflow (before any row is
// built) or an internal invariant violation; neither is retryable.
func (e *Engine) Run(ctx context.Context, target int64, entries []int64, tracker *progress.Tracker) (outcome *Outcome, err error) {
	if tracker != nil {
		defer func() {
			if outcome != nil {
				tracker.Complete(outcome.Subset, outcome.Found, nil)
			} else {
				tracker.Complete(nil, false, err)
			}
		}()
	}

	layout, err := ComputeLayout(entries)
	if err != nil {
		return nil, err
	}

	n := len(entries)
	e.logger.Debug("offset space computed",
		"entries", n,
		"sum_size", layout.SumSize,
		"zero_index", layout.ZeroIndex,
	)

	// Zero rows means the only buildable sum is the empty one.
	if n == 0 {
		out := &Outcome{Found: target == 0, Layout: layout}
		if out.Found {
			out.Subset = []int64{}
		}
		if e.collectReachable {
			out.reachable = roaring64.New()
			out.reachable.Add(layout.ZeroIndex)
		}
		return out, nil
	}

	start := time.Now()

	rows, err := e.allocateRows(ctx, layout, n)
	if err != nil {
		return nil, err
	}

	logEvery := rate.Sometimes{First: 1, Interval: time.Second}

	for i := 0; i < n; i++ {
		if tracker != nil {
			tracker.BeginRow(uint64(i))
		}
		logEvery.Do(func() {
			e.logger.Debug("building row", "row", i, "total", n)
		})

		if err := e.buildRow(ctx, layout, rows, entries, i); err != nil {
			return nil, err
		}
	}

	out := &Outcome{Layout: layout, TableBuild: time.Since(start)}

	final := rows[n-1]
	if e.collectReachable {
		out.reachable = roaring64.New()
		for j := uint64(0); j < layout.SumSize; j++ {
			set, err := final.Get(j, bitset.SeqCst)
			if err != nil {
				return nil, err
			}
			if set {
				out.reachable.Add(j)
			}
		}
	}

	wantedIndex, ok := layout.IndexOf(target)
	if !ok {
		// Target outside the offset space: unreachable by construction.
		return out, nil
	}
	hit, err := final.Get(wantedIndex, bitset.SeqCst)
	if err != nil {
		return nil, err
	}
	if !hit {
		return out, nil
	}

	subset, err := e.reconstruct(layout, rows, entries, wantedIndex)
	if err != nil {
		return nil, err
	}
	out.Subset = subset
	out.Found = true
	return out, nil
}

// allocateRows builds the n per-entry rows in parallel; each row's storage
// is independent until filled.
func (e *Engine) allocateRows(ctx context.Context, layout Layout, n int) ([]*bitset.BitSet, error) {
	rows := make([]*bitset.BitSet, n)
	err := parallel.For(ctx, uint64(n), e.workers, func(lo, hi uint64) error {
		for r := lo; r < hi; r++ {
			b := bitset.WithBitCapacity(layout.SumSize)
			b.ResizeBits(layout.SumSize, func() uint64 { return 0 })
			rows[r] = b
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// buildRow fills row i from the frozen row i-1. The zero-index base fact is
// set unconditionally on every row, before anything else; row 0's direct-set
// logic relies on it.
func (e *Engine) buildRow(ctx context.Context, layout Layout, rows []*bitset.BitSet, entries []int64, i int) error {
	row := rows[i]
	entry := entries[i]

	if _, err := row.Set(layout.ZeroIndex, true, bitset.SeqCst); err != nil {
		return err
	}

	if i == 0 {
		// Only two bits can be true in the first row: sum 0 and entries[0].
		idx, ok := layout.IndexOf(entry)
		if !ok {
			return &InvariantError{Op: "first row mapping", Index: layout.ZeroIndex}
		}
		_, err := row.Set(idx, true, bitset.SeqCst)
		return err
	}

	prev := rows[i-1]

	// Carry-forward sweep: exclude entries[i].
	err := parallel.For(ctx, layout.SumSize, e.workers, func(lo, hi uint64) error {
		for j := lo; j < hi; j++ {
			set, err := prev.Get(j, bitset.SeqCst)
			if err != nil {
				return err
			}
			if set {
				if _, err := row.Set(j, true, bitset.SeqCst); err != nil {
					return err
				}
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	// Shift sweep: include entries[i]. Reads the same frozen row, so the
	// two sweeps could run in either order or interleaved.
	return parallel.For(ctx, layout.SumSize, e.workers, func(lo, hi uint64) error {
		for j := lo; j < hi; j++ {
			src, ok := layout.minusEntry(j, entry)
			if !ok {
				continue
			}
			set, err := prev.Get(src, bitset.SeqCst)
			if err != nil {
				return err
			}
			if set {
				if _, err := row.Set(j, true, bitset.SeqCst); err != nil {
					return err
				}
			}
		}
		return nil
	})
}

// reconstruct walks the finished table backward from the target's index.
//
// An entry is judged necessary only when the current sum was not reachable
// without it: when row i-1 already reaches currentSum, exclusion wins. That
// tie-break makes the reconstruction deterministic for a given table.
func (e *Engine) reconstruct(layout Layout, rows []*bitset.BitSet, entries []int64, wantedIndex uint64) ([]int64, error) {
	subset := []int64{}
	currentSum := wantedIndex

	for i := len(entries) - 1; i >= 0; i-- {
		// Target fully accounted for; remaining entries are not examined.
		// Checked before the necessity test so that a walk starting at the
		// zero index (target 0) includes nothing.
		if currentSum == layout.ZeroIndex {
			break
		}

		necessary := i == 0
		if !necessary {
			set, err := rows[i-1].Get(currentSum, bitset.SeqCst)
			if err != nil {
				return nil, err
			}
			necessary = !set
		}

		if necessary {
			subset = append(subset, entries[i])
			next, ok := layout.minusEntry(currentSum, entries[i])
			if !ok {
				return nil, &InvariantError{Op: "reconstruction shift", Index: currentSum}
			}
			currentSum = next
		}
	}

	return subset, nil
}
