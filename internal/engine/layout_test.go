package engine

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeLayout(t *testing.T) {
	l, err := ComputeLayout([]int64{100, 200, -50, 300})
	require.NoError(t, err)

	assert.Equal(t, uint64(50), l.MostNegative)
	assert.Equal(t, uint64(600), l.MostPositive)
	assert.Equal(t, uint64(50), l.ZeroIndex)
	assert.Equal(t, uint64(651), l.SumSize)
}

func TestComputeLayout_Empty(t *testing.T) {
	l, err := ComputeLayout(nil)
	require.NoError(t, err)

	assert.Equal(t, uint64(0), l.ZeroIndex)
	assert.Equal(t, uint64(1), l.SumSize)
}

func TestComputeLayout_ZerosIgnored(t *testing.T) {
	l, err := ComputeLayout([]int64{0, 0, 5})
	require.NoError(t, err)

	assert.Equal(t, uint64(0), l.MostNegative)
	assert.Equal(t, uint64(5), l.MostPositive)
}

func TestComputeLayout_Overflow(t *testing.T) {
	var oe *OverflowError

	_, err := ComputeLayout([]int64{math.MaxInt64, math.MaxInt64, math.MaxInt64})
	require.ErrorAs(t, err, &oe)

	_, err = ComputeLayout([]int64{math.MinInt64, math.MinInt64, math.MinInt64})
	require.ErrorAs(t, err, &oe)

	// Individually fine, but sum_size = mn + 1 + mp exceeds the signed range.
	_, err = ComputeLayout([]int64{math.MinInt64, math.MaxInt64})
	require.ErrorAs(t, err, &oe)
}

func TestLayout_IndexOf(t *testing.T) {
	l, err := ComputeLayout([]int64{-3, 10})
	require.NoError(t, err)

	for sum := int64(-3); sum <= 10; sum++ {
		idx, ok := l.IndexOf(sum)
		require.True(t, ok, "sum %d", sum)
		assert.Less(t, idx, l.SumSize)
		assert.Equal(t, sum, l.SumOf(idx))
	}

	_, ok := l.IndexOf(-4)
	assert.False(t, ok)
	_, ok = l.IndexOf(11)
	assert.False(t, ok)
}

func TestLayout_MinusEntry(t *testing.T) {
	l, err := ComputeLayout([]int64{-5, 5})
	require.NoError(t, err)

	// 11 indexes: sums -5..5, zero index 5.
	got, ok := l.minusEntry(7, 5)
	require.True(t, ok)
	assert.Equal(t, uint64(2), got)

	got, ok = l.minusEntry(2, -5)
	require.True(t, ok)
	assert.Equal(t, uint64(7), got)

	_, ok = l.minusEntry(2, 5)
	assert.False(t, ok, "underflow must be rejected")

	_, ok = l.minusEntry(7, -5)
	assert.False(t, ok, "index past sum size must be rejected")
}
