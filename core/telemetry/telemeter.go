package telemetry

import (
	"context"

	"github.com/anoideaopen/dynobj/version"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "dynobj"

// Telemeter wraps the tracer used around every dispatch operation of a
// decorated instance. Spans are recorded only when the host process has
// installed a tracer provider; with the default noop provider the Telemeter
// costs a nil check and two pointers.
type Telemeter struct {
	tracer trace.Tracer
}

// New creates a Telemeter on the globally installed tracer provider, with
// the engine's module version as the instrumentation version.
func New() *Telemeter {
	return &Telemeter{tracer: otel.Tracer(tracerName,
		trace.WithInstrumentationVersion(version.Version()),
	)}
}

// NewWithTracer creates a Telemeter on an explicit tracer.
func NewWithTracer(tracer trace.Tracer) *Telemeter {
	return &Telemeter{tracer: tracer}
}

// StartSpan starts a span for one dispatch operation. A nil context starts
// the span from the background context.
func (t *Telemeter) StartSpan(
	ctx context.Context,
	op OperationKind,
	member string,
	instanceID string,
) (context.Context, trace.Span) {
	if ctx == nil {
		ctx = context.Background()
	}

	return t.tracer.Start(ctx, "dynobj.dispatch", trace.WithAttributes(
		Operation(op),
		Member(member),
		InstanceID(instanceID),
	))
}
