package progress

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTracker_Running(t *testing.T) {
	tr := NewTracker(10)

	st := tr.Poll()
	assert.Equal(t, StateRunning, st.State)
	assert.Equal(t, uint64(0), st.Rows)
	assert.Equal(t, uint64(10), st.Total)

	tr.BeginRow(3)
	st = tr.Poll()
	assert.Equal(t, StateRunning, st.State)
	assert.Equal(t, uint64(3), st.Rows)
}

func TestTracker_DoneExactlyOnce(t *testing.T) {
	tr := NewTracker(4)
	tr.BeginRow(3)
	tr.Complete([]int64{1, 2}, true, nil)

	st := tr.Poll()
	require.Equal(t, StateDone, st.State)
	assert.True(t, st.Found)
	assert.Equal(t, []int64{1, 2}, st.Subset)

	// Progress state is discarded after the terminal poll.
	st = tr.Poll()
	assert.Equal(t, StateConsumed, st.State)
}

func TestTracker_DoneWithError(t *testing.T) {
	boom := errors.New("boom")
	tr := NewTracker(1)
	tr.Complete(nil, false, boom)

	st := tr.Poll()
	require.Equal(t, StateDone, st.State)
	assert.ErrorIs(t, st.Err, boom)
}

func TestTracker_Wait(t *testing.T) {
	tr := NewTracker(2)

	go func() {
		tr.BeginRow(0)
		tr.BeginRow(1)
		tr.Complete(nil, false, nil)
	}()

	st, err := tr.Wait(context.Background())
	require.NoError(t, err)
	assert.Equal(t, StateDone, st.State)
	assert.False(t, st.Found)

	st, err = tr.Wait(context.Background())
	require.NoError(t, err)
	assert.Equal(t, StateConsumed, st.State)
}

func TestTracker_WaitCanceled(t *testing.T) {
	tr := NewTracker(1)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	_, err := tr.Wait(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}
