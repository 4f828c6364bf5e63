package tracing

import (
	"context"
	"log/slog"
	"sort"
	"time"
)

var (
	_ Tracer = LoggingTracer{}
	_ Span   = (*loggingSpan)(nil)
)

// LoggingTracer writes each finished span as a debug record.
type LoggingTracer struct {
	logger *slog.Logger
	now    func() time.Time
}

// NewLoggingTracer creates a [LoggingTracer]. A nil logger uses
// [slog.Default] at the time each span finishes.
func NewLoggingTracer(logger *slog.Logger) *LoggingTracer {
	return &LoggingTracer{
		logger: logger,
		now:    time.Now,
	}
}

//nolint:ireturn
func (l LoggingTracer) StartSpan(operationName string) Span {
	now := l.now
	if now == nil {
		now = time.Now
	}

	return &loggingSpan{
		logger:        l.logger,
		now:           now,
		operationName: operationName,
		baggage:       map[string]any{},
		start:         now(),
	}
}

type loggingSpan struct {
	start         time.Time
	logger        *slog.Logger
	now           func() time.Time
	baggage       map[string]any
	operationName string
}

func (s *loggingSpan) Finish() {
	logger := s.logger
	if logger == nil {
		logger = slog.Default()
	}

	attrs := baggageToAttrs(s.baggage)
	attrs = append(attrs,
		"operation_name", s.operationName,
		"time_ms", float64(s.now().Sub(s.start).Microseconds())/1e3,
	)
	logger.Log(context.Background(), slog.LevelDebug, "trace", attrs...)
}

func (s *loggingSpan) SetBaggageItem(key string, value any) {
	s.baggage[key] = value
}

func baggageToAttrs(baggage map[string]any) []any {
	keys := make([]string, 0, len(baggage))
	for k := range baggage {
		keys = append(keys, k)
	}

	sort.Strings(keys)

	result := make([]any, 0, len(baggage)*2)
	for _, k := range keys {
		result = append(result, k, baggage[k])
	}

	return result
}
