// Package sumset decides whether some sub-multiset of signed integer entries
// sums exactly to a target, and reconstructs one such sub-multiset.
//
// The solve is a data-parallel dynamic program: one atomic bit row per entry
// tracks which signed sums the first i+1 entries can reach, rows are built
// strictly in order, and the two derivation sweeps inside a row fan out
// across all CPUs without locks.
//
// # Quick Start
//
//	ctx := context.Background()
//	s := sumset.New()
//
//	res, _ := s.Solve(ctx, 250, []int64{100, 200, -50, 300})
//	if res.Found {
//	    fmt.Println(res.Subset) // one subset summing to 250, e.g. [-50 200 100]
//	}
//
// # Background Runs
//
// Long solves can run in the background and be polled at any cadence:
//
//	run, _ := s.SolveAsync(ctx, target, entries)
//	for {
//	    st := run.Poll()
//	    if st.State == progress.StateDone {
//	        break
//	    }
//	    fmt.Printf("%d/%d rows\n", st.Rows, st.Total)
//	    time.Sleep(100 * time.Millisecond)
//	}
//
// # Reachable Sums
//
// With WithReachableSums enabled, the final table row is retained as a
// roaring bitmap so callers can query every sum the entry set can produce,
// not just the one target:
//
//	s := sumset.New(sumset.WithReachableSums(true))
//	res, _ := s.Solve(ctx, 0, entries)
//	fmt.Println(res.CanReach(42))
//
// A no-solution verdict is a normal result, not an error. The only errors a
// solve produces are fatal: offset-space overflow (the entry magnitudes
// exceed the addressable index range) and internal invariant violations.
package sumset
