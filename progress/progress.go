// Package progress exposes the observable state of a running solve: a
// monotonic row counter plus a one-shot completion signal.
//
// The solver writes the counter once per table row and the completion signal
// exactly once; it never blocks on, or reads from, either. Callers poll at
// their own cadence.
package progress

import (
	"context"
	"sync/atomic"
)

// State describes what a Poll observed.
type State int

const (
	// StateRunning means the solve has not produced a terminal result yet.
	StateRunning State = iota
	// StateDone means this Poll delivered the terminal result. It is
	// returned exactly once per Tracker.
	StateDone
	// StateConsumed means the terminal result was already delivered by an
	// earlier Poll and the progress state has been discarded.
	StateConsumed
)

// Status is a snapshot of a tracked solve.
type Status struct {
	State State

	// Rows is the index of the row most recently begun; Total is the row
	// count. Meaningful while State == StateRunning.
	Rows  uint64
	Total uint64

	// Subset and Found carry the terminal result when State == StateDone.
	// Err is non-nil if the solve aborted instead of completing.
	Subset []int64
	Found  bool
	Err    error
}

type outcome struct {
	subset []int64
	found  bool
	err    error
}

// Tracker is the shared progress channel between one solve and its pollers.
//
// Rows is written by the solver and read concurrently by any number of
// pollers; the terminal outcome is delivered through a single-slot channel
// so that exactly one Poll (or Wait) consumes it.
type Tracker struct {
	rows     atomic.Uint64
	total    uint64
	done     chan outcome
	consumed atomic.Bool
}

// NewTracker creates a Tracker for a solve over total rows.
func NewTracker(total uint64) *Tracker {
	return &Tracker{
		total: total,
		done:  make(chan outcome, 1),
	}
}

// BeginRow records that row i has begun processing. Monotonic, non-blocking.
func (t *Tracker) BeginRow(i uint64) {
	t.rows.Store(i)
}

// Rows returns the most recently begun row index and the total row count.
func (t *Tracker) Rows() (completed, total uint64) {
	return t.rows.Load(), t.total
}

// Complete delivers the terminal result. It must be called exactly once;
// the counter is not updated afterwards.
func (t *Tracker) Complete(subset []int64, found bool, err error) {
	t.done <- outcome{subset: subset, found: found, err: err}
}

// Poll returns the current status without blocking. The terminal result is
// yielded exactly once; later calls report StateConsumed.
func (t *Tracker) Poll() Status {
	if t.consumed.Load() {
		return Status{State: StateConsumed}
	}
	select {
	case o := <-t.done:
		t.consumed.Store(true)
		return Status{State: StateDone, Subset: o.subset, Found: o.found, Err: o.err}
	default:
		rows, total := t.Rows()
		return Status{State: StateRunning, Rows: rows, Total: total}
	}
}

// Wait blocks until the terminal result is available or ctx is canceled.
// Like Poll, it consumes the result; a second Wait reports StateConsumed.
func (t *Tracker) Wait(ctx context.Context) (Status, error) {
	if t.consumed.Load() {
		return Status{State: StateConsumed}, nil
	}
	select {
	case o := <-t.done:
		t.consumed.Store(true)
		return Status{State: StateDone, Subset: o.subset, Found: o.found, Err: o.err}, nil
	case <-ctx.Done():
		return Status{}, ctx.Err()
	}
}
