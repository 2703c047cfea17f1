package sumset

import (
	"sync/atomic"
	"time"
)

// MetricsCollector defines an interface for collecting operational metrics.
// Implement this interface to integrate with monitoring systems like Prometheus.
type MetricsCollector interface {
	// RecordSolve is called after each solve.
	// entries is the entry count, duration the total time taken,
	// err is nil if the solve ran to completion (a no-solution verdict
	// is a completed solve, not an error).
	RecordSolve(entries int, duration time.Duration, err error)

	// RecordTableBuild is called after the reachability table is built.
	// rows is the number of table rows, duration the allocation+fill time.
	RecordTableBuild(rows int, duration time.Duration)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
// Use this when metrics collection is not needed.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordSolve(int, time.Duration, error) {}
func (NoopMetricsCollector) RecordTableBuild(int, time.Duration)   {}

// BasicMetricsCollector provides simple in-memory metrics collection.
// Useful for debugging and basic monitoring without external dependencies.
type BasicMetricsCollector struct {
	SolveCount           atomic.Int64
	SolveErrors          atomic.Int64
	SolveTotalNanos      atomic.Int64
	TableBuildCount      atomic.Int64
	TableRowsBuilt       atomic.Int64
	TableBuildTotalNanos atomic.Int64
}

// RecordSolve implements MetricsCollector.
func (b *BasicMetricsCollector) RecordSolve(entries int, duration time.Duration, err error) {
	b.SolveCount.Add(1)
	b.SolveTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.SolveErrors.Add(1)
	}
}

// RecordTableBuild implements MetricsCollector.
func (b *BasicMetricsCollector) RecordTableBuild(rows int, duration time.Duration) {
	b.TableBuildCount.Add(1)
	b.TableRowsBuilt.Add(int64(rows))
	b.TableBuildTotalNanos.Add(duration.Nanoseconds())
}
