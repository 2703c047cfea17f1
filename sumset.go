package sumset

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/hupe1980/sumset/internal/engine"
	"github.com/hupe1980/sumset/progress"
)

// Solver decides subset-sum reachability for (target, entries) pairs.
// A Solver is immutable after construction and safe for concurrent use;
// every solve builds its own table.
type Solver struct {
	opts   options
	engine *engine.Engine
}

// New creates a Solver.
func New(optFns ...Option) *Solver {
	opts := options{
		logger:           NoopLogger(),
		metricsCollector: NoopMetricsCollector{},
	}
	for _, fn := range optFns {
		fn(&opts)
	}

	return &Solver{
		opts: opts,
		engine: engine.New(engine.Config{
			Workers:          opts.parallelism,
			CollectReachable: opts.reachableSums,
			Logger:           opts.logger.Logger,
		}),
	}
}

// Result is the outcome of one solve.
type Result struct {
	// Target is the sum that was asked for.
	Target int64
	// Found reports whether any sub-multiset of the entries sums to Target.
	// A false Found is a normal result, not an error.
	Found bool
	// Subset is one sub-multiset summing to Target, in reverse order of
	// discovery (descending original entry index). Nil when Found is false.
	Subset []int64
	// ZeroIndex and SumSize describe the offset space the solve used.
	ZeroIndex uint64
	SumSize   uint64
	// Elapsed is the wall time of the whole solve.
	Elapsed time.Duration

	outcome *engine.Outcome
}

// CanReach reports whether some sub-multiset of the entries sums to sum.
// Requires WithReachableSums; otherwise it always returns false.
func (r *Result) CanReach(sum int64) bool {
	if r.outcome == nil {
		return false
	}
	return r.outcome.CanReach(sum)
}

// ReachableSums returns every sum the entry set can produce, ascending.
// Nil unless WithReachableSums was enabled.
func (r *Result) ReachableSums() []int64 {
	if r.outcome == nil {
		return nil
	}
	return r.outcome.ReachableSums()
}

// Solve runs synchronously and returns the result.
func (s *Solver) Solve(ctx context.Context, target int64, entries []int64) (*Result, error) {
	return s.SolveTracked(ctx, target, entries, nil)
}

// SolveTracked runs synchronously while publishing per-row progress to the
// caller's tracker. The tracker, when non-nil, receives one counter write
// per table row and the terminal result exactly once; the solve never blocks
// on anyone reading it.
func (s *Solver) SolveTracked(ctx context.Context, target int64, entries []int64, tracker *progress.Tracker) (*Result, error) {
	start := time.Now()
	out, err := s.engine.Run(ctx, target, entries, tracker)
	elapsed := time.Since(start)

	s.opts.metricsCollector.RecordSolve(len(entries), elapsed, err)
	found := out != nil && out.Found
	s.opts.logger.LogSolve(target, len(entries), found, elapsed, err)

	if err != nil {
		return nil, translateError(err)
	}
	s.opts.metricsCollector.RecordTableBuild(len(entries), out.TableBuild)

	return &Result{
		Target:    target,
		Found:     out.Found,
		Subset:    out.Subset,
		ZeroIndex: out.Layout.ZeroIndex,
		SumSize:   out.Layout.SumSize,
		Elapsed:   elapsed,
		outcome:   out,
	}, nil
}

// Run is a handle to a background solve.
type Run struct {
	// ID tags the run in logs and poll loops.
	ID uuid.UUID
	// Target is the sum being solved for.
	Target int64

	tracker *progress.Tracker
}

// SolveAsync starts a solve in the background and returns immediately.
// The returned handle is polled or waited on at the caller's cadence.
func (s *Solver) SolveAsync(ctx context.Context, target int64, entries []int64) *Run {
	run := &Run{
		ID:      uuid.New(),
		Target:  target,
		tracker: progress.NewTracker(uint64(len(entries))),
	}

	logger := s.opts.logger.With("run_id", run.ID.String())
	logger.Debug("solve started", "target", target, "entries", len(entries))

	go func() {
		start := time.Now()
		out, err := s.engine.Run(ctx, target, entries, run.tracker)
		elapsed := time.Since(start)

		s.opts.metricsCollector.RecordSolve(len(entries), elapsed, err)
		found := out != nil && out.Found
		if err != nil {
			logger.Error("solve failed", "error", err)
		} else {
			logger.Debug("solve completed", "found", found, "duration", elapsed)
			s.opts.metricsCollector.RecordTableBuild(len(entries), out.TableBuild)
		}
	}()

	return run
}

// Rows returns the most recently begun row index and the total row count.
// Values are monotone non-decreasing until the terminal result is consumed.
func (r *Run) Rows() (completed, total uint64) {
	return r.tracker.Rows()
}

// Poll returns the run's status without blocking. The terminal result is
// yielded exactly once; afterwards the state reports StateConsumed.
func (r *Run) Poll() progress.Status {
	st := r.tracker.Poll()
	st.Err = translateError(st.Err)
	return st
}

// Wait blocks until the run finishes and returns its result. Like Poll, it
// consumes the terminal result.
//
// A Result from Wait carries the subset verdict only; reachable-sum queries
// are available on synchronous Solve results.
func (r *Run) Wait(ctx context.Context) (*Result, error) {
	st, err := r.tracker.Wait(ctx)
	if err != nil {
		return nil, err
	}
	if st.State == progress.StateConsumed {
		return nil, ErrResultConsumed
	}
	if st.Err != nil {
		return nil, translateError(st.Err)
	}
	return &Result{
		Target: r.Target,
		Found:  st.Found,
		Subset: st.Subset,
	}, nil
}
