package interfaces

import "time"

// LinkerMetrics records telemetry emitted by the auto-linking engine.
// Implementations must be safe for concurrent use.
type LinkerMetrics interface {
	// ObserveRewriteDuration records how long a full rewrite took.
	ObserveRewriteDuration(dialect string, duration time.Duration)
	// AddMatches accumulates the number of links injected by a rewrite.
	AddMatches(dialect string, count int)
	// IncrementRewriteError counts rewrites rejected before transforming.
	IncrementRewriteError(dialect string)
}
