package parallel

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFor_CoversEveryIndexOnce(t *testing.T) {
	const n = 1000

	var hits [n]atomic.Int32
	err := For(context.Background(), n, 8, func(lo, hi uint64) error {
		for j := lo; j < hi; j++ {
			hits[j].Add(1)
		}
		return nil
	})
	require.NoError(t, err)

	for j := range hits {
		assert.Equal(t, int32(1), hits[j].Load(), "index %d", j)
	}
}

func TestFor_UnevenSplit(t *testing.T) {
	// 10 indices over 4 workers: chunks of 3,3,2,2.
	var total atomic.Uint64
	err := For(context.Background(), 10, 4, func(lo, hi uint64) error {
		require.Less(t, lo, hi)
		total.Add(hi - lo)
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, uint64(10), total.Load())
}

func TestFor_EmptyRange(t *testing.T) {
	called := false
	err := For(context.Background(), 0, 4, func(lo, hi uint64) error {
		called = true
		return nil
	})
	require.NoError(t, err)
	assert.False(t, called)
}

func TestFor_MoreWorkersThanIndices(t *testing.T) {
	var total atomic.Uint64
	err := For(context.Background(), 3, 64, func(lo, hi uint64) error {
		total.Add(hi - lo)
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, uint64(3), total.Load())
}

func TestFor_PropagatesError(t *testing.T) {
	boom := errors.New("boom")
	err := For(context.Background(), 100, 4, func(lo, hi uint64) error {
		if lo == 0 {
			return boom
		}
		return nil
	})
	assert.ErrorIs(t, err, boom)
}

func TestFor_DefaultWorkers(t *testing.T) {
	var total atomic.Uint64
	err := For(context.Background(), 100, 0, func(lo, hi uint64) error {
		total.Add(hi - lo)
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, uint64(100), total.Load())
}
