package sumset

type options struct {
	logger           *Logger
	metricsCollector MetricsCollector
	parallelism      int
	reachableSums    bool
}

// Option configures Solver behavior.
type Option func(*options)

// WithLogger configures structured logging for solves.
//
// If nil is passed, logging is disabled.
func WithLogger(l *Logger) Option {
	return func(o *options) {
		if l == nil {
			l = NoopLogger()
		}
		o.logger = l
	}
}

// WithMetricsCollector configures operational metrics collection.
//
// If nil is passed, NoopMetricsCollector is used.
func WithMetricsCollector(c MetricsCollector) Option {
	return func(o *options) {
		if c == nil {
			c = NoopMetricsCollector{}
		}
		o.metricsCollector = c
	}
}

// WithParallelism sets the number of workers used for row allocation and
// the per-row sweeps. Values below 1 select one worker per CPU (the
// default). One worker degenerates to a sequential solve, which is useful
// in tests.
func WithParallelism(workers int) Option {
	return func(o *options) {
		o.parallelism = workers
	}
}

// WithReachableSums retains the final table row so results can answer
// CanReach and ReachableSums queries. Off by default: collection costs one
// extra pass over the final row and the memory for its bitmap.
func WithReachableSums(enabled bool) Option {
	return func(o *options) {
		o.reachableSums = enabled
	}
}
