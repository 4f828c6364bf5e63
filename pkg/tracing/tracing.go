// Package tracing provides lightweight spans for timing chart work.
package tracing

// Tracer starts spans.
type Tracer interface {
	StartSpan(operationName string) Span
}

// Span measures a single operation until [Span.Finish] is called.
type Span interface {
	SetBaggageItem(key string, value any)
	Finish()
}

var (
	_ Tracer = NopTracer{}
	_ Span   = nopSpan{}
)

// NopTracer discards every span.
type NopTracer struct{}

//nolint:ireturn
func (NopTracer) StartSpan(string) Span {
	return nopSpan{}
}

type nopSpan struct{}

func (nopSpan) SetBaggageItem(string, any) {}

func (nopSpan) Finish() {}
