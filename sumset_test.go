package sumset

import (
	"context"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/sumset/progress"
)

func sum(vs []int64) int64 {
	var s int64
	for _, v := range vs {
		s += v
	}
	return s
}

func TestSolver_Solve(t *testing.T) {
	s := New(WithParallelism(2))

	res, err := s.Solve(context.Background(), 250, []int64{100, 200, -50, 300})
	require.NoError(t, err)
	require.True(t, res.Found)
	assert.Equal(t, int64(250), sum(res.Subset))
	assert.Equal(t, uint64(50), res.ZeroIndex)
	assert.Equal(t, uint64(651), res.SumSize)

	res, err = s.Solve(context.Background(), 999, []int64{100, 200, -50, 300})
	require.NoError(t, err)
	assert.False(t, res.Found)
	assert.Nil(t, res.Subset)
}

func TestSolver_EmptyEntries(t *testing.T) {
	s := New()

	res, err := s.Solve(context.Background(), 0, nil)
	require.NoError(t, err)
	require.True(t, res.Found)
	assert.Empty(t, res.Subset)

	res, err = s.Solve(context.Background(), 1, nil)
	require.NoError(t, err)
	assert.False(t, res.Found)
}

func TestSolver_OffsetOverflow(t *testing.T) {
	s := New()

	_, err := s.Solve(context.Background(), 0, []int64{math.MaxInt64, math.MaxInt64, math.MaxInt64})
	assert.ErrorIs(t, err, ErrOffsetOverflow)
}

func TestSolver_ReachableSums(t *testing.T) {
	s := New(WithReachableSums(true))

	res, err := s.Solve(context.Background(), 2, []int64{2, -3})
	require.NoError(t, err)
	require.True(t, res.Found)

	assert.Equal(t, []int64{-3, -1, 0, 2}, res.ReachableSums())
	assert.True(t, res.CanReach(-1))
	assert.False(t, res.CanReach(1))
}

func TestSolver_ReachableSumsDisabledByDefault(t *testing.T) {
	s := New()

	res, err := s.Solve(context.Background(), 0, []int64{1})
	require.NoError(t, err)
	assert.Nil(t, res.ReachableSums())
	assert.False(t, res.CanReach(0))
}

func TestSolver_SolveTracked(t *testing.T) {
	s := New(WithParallelism(2))
	tracker := progress.NewTracker(3)

	res, err := s.SolveTracked(context.Background(), 6, []int64{1, 2, 3}, tracker)
	require.NoError(t, err)
	require.True(t, res.Found)

	st := tracker.Poll()
	require.Equal(t, progress.StateDone, st.State)
	assert.Equal(t, res.Subset, st.Subset)
}

func TestSolver_Metrics(t *testing.T) {
	collector := &BasicMetricsCollector{}
	s := New(WithMetricsCollector(collector))

	_, err := s.Solve(context.Background(), 3, []int64{1, 2})
	require.NoError(t, err)

	assert.Equal(t, int64(1), collector.SolveCount.Load())
	assert.Equal(t, int64(0), collector.SolveErrors.Load())
	assert.Equal(t, int64(2), collector.TableRowsBuilt.Load())
}

func TestRun_PollAndWait(t *testing.T) {
	s := New(WithParallelism(2))

	run := s.SolveAsync(context.Background(), 250, []int64{100, 200, -50, 300})
	assert.NotEqual(t, "", run.ID.String())

	res, err := run.Wait(context.Background())
	require.NoError(t, err)
	require.True(t, res.Found)
	assert.Equal(t, int64(250), sum(res.Subset))

	// The terminal result is consumed by the Wait above.
	_, err = run.Wait(context.Background())
	assert.ErrorIs(t, err, ErrResultConsumed)
	assert.Equal(t, progress.StateConsumed, run.Poll().State)
}

func TestRun_PollUntilDone(t *testing.T) {
	s := New()

	run := s.SolveAsync(context.Background(), 4, []int64{1, 1, 1, 1})

	deadline := time.After(5 * time.Second)
	for {
		st := run.Poll()
		if st.State == progress.StateDone {
			require.True(t, st.Found)
			assert.Equal(t, int64(4), sum(st.Subset))
			return
		}

		rows, total := run.Rows()
		assert.LessOrEqual(t, rows, total)

		select {
		case <-deadline:
			t.Fatal("run did not finish in time")
		case <-time.After(time.Millisecond):
		}
	}
}

func TestRun_AsyncOverflow(t *testing.T) {
	s := New()

	run := s.SolveAsync(context.Background(), 0, []int64{math.MinInt64, math.MinInt64})
	_, err := run.Wait(context.Background())
	assert.ErrorIs(t, err, ErrOffsetOverflow)
}
