package tracing

import "time"

// NewLoggingTracerWithClock exposes clock injection to tests.
func NewLoggingTracerWithClock(t *LoggingTracer, now func() time.Time) *LoggingTracer {
	t.now = now

	return t
}
