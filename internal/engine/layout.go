package engine

import (
	"fmt"
	"math"
)

// OverflowError reports that the offset space for an entry set exceeds the
// addressable bit-index range. It is a fatal configuration error, surfaced
// before any table row is allocated.
type OverflowError struct {
	Quantity string
}

func (e *OverflowError) Error() string {
	return fmt.Sprintf("engine: offset space overflow computing %s", e.Quantity)
}

// InvariantError reports an internally computed bit index that escaped the
// offset space. It signals a defect, never an expected condition, and aborts
// the run.
type InvariantError struct {
	Op    string
	Index uint64
}

func (e *InvariantError) Error() string {
	return fmt.Sprintf("engine: %s produced out-of-space index %d", e.Op, e.Index)
}

// Layout is the fixed signed-to-unsigned index mapping for one run. It is
// computed once from the entry set and never changes.
//
// A signed sum s in [-MostNegative, MostPositive] maps to the bit index
// s + ZeroIndex, which is always in [0, SumSize).
type Layout struct {
	// MostNegative is the sum of |e| over all negative entries.
	MostNegative uint64
	// MostPositive is the sum of all positive entries.
	MostPositive uint64
	// ZeroIndex is the bit index representing signed sum 0.
	ZeroIndex uint64
	// SumSize is the bit width of one row: MostNegative + 1 + MostPositive.
	SumSize uint64
}

// magnitude returns |e| for a negative value without overflowing on
// math.MinInt64.
func magnitude(e int64) uint64 {
	return uint64(-(e + 1)) + 1
}

// ComputeLayout derives the offset space for an entry set in a single pass.
// Overflow of MostNegative, MostPositive or SumSize past the addressable
// range is reported, never silently wrapped.
func ComputeLayout(entries []int64) (Layout, error) {
	var mn, mp uint64
	for _, e := range entries {
		switch {
		case e < 0:
			v := magnitude(e)
			if mn+v < mn {
				return Layout{}, &OverflowError{Quantity: "most negative sum"}
			}
			mn += v
		case e > 0:
			if mp+uint64(e) < mp {
				return Layout{}, &OverflowError{Quantity: "most positive sum"}
			}
			mp += uint64(e)
		}
	}

	size := mn + 1
	if size == 0 {
		return Layout{}, &OverflowError{Quantity: "sum size"}
	}
	size += mp
	if size < mp {
		return Layout{}, &OverflowError{Quantity: "sum size"}
	}
	// Bit indexes must round-trip through signed arithmetic during
	// reconstruction, so the row width is capped at the signed range.
	if size > uint64(math.MaxInt64) {
		return Layout{}, &OverflowError{Quantity: "sum size"}
	}

	return Layout{
		MostNegative: mn,
		MostPositive: mp,
		ZeroIndex:    mn,
		SumSize:      size,
	}, nil
}

// IndexOf maps a signed sum to its bit index. ok is false when the sum lies
// outside [-MostNegative, MostPositive] and is therefore unreachable.
func (l Layout) IndexOf(sum int64) (uint64, bool) {
	if sum >= 0 {
		if uint64(sum) > l.MostPositive {
			return 0, false
		}
		return l.ZeroIndex + uint64(sum), true
	}
	v := magnitude(sum)
	if v > l.MostNegative {
		return 0, false
	}
	return l.ZeroIndex - v, true
}

// SumOf is the inverse of IndexOf. The index must be within [0, SumSize).
func (l Layout) SumOf(index uint64) int64 {
	return int64(index) - int64(l.ZeroIndex)
}

// minusEntry computes index - e in the bit-index space: the shift sweep's
// source lookup and the reconstruction step both move a target index back by
// an entry's signed value. ok is false when the result leaves [0, SumSize).
func (l Layout) minusEntry(index uint64, e int64) (uint64, bool) {
	if e >= 0 {
		v := uint64(e)
		if v > index {
			return 0, false
		}
		return index - v, true
	}
	out := index + magnitude(e)
	if out < index || out >= l.SumSize {
		return 0, false
	}
	return out, true
}
