package tracing

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/formdeck/formdeck/internal/registry"
)

// Recorder ties a form session to a single span. Every registration the
// session's registry emits becomes a span event, so a trace of one session
// reads as the ordered sequence of registrations that built the form.
type Recorder struct {
	span trace.Span
	sub  *registry.Subscription
	reg  *registry.Registry
}

// NewRecorder starts the session span and subscribes to the registry's
// event stream. Events already in the registry's history are not replayed;
// recording begins with the next registration.
func NewRecorder(ctx context.Context, tracer trace.Tracer, sessionID string, reg *registry.Registry) *Recorder {
	_, span := tracer.Start(ctx, SpanSession, trace.WithAttributes(
		attribute.String(AttrSessionID, sessionID),
	))

	r := &Recorder{span: span, reg: reg}
	r.sub = reg.Events().Subscribe(func(ev registry.Event) {
		span.AddEvent(EventRegistration, trace.WithAttributes(
			attribute.String(AttrEventKind, string(ev.Kind)),
			attribute.String(AttrEventPath, ev.Path),
			attribute.Int(AttrEventSeq, ev.Seq),
		))
	})

	return r
}

// Close unsubscribes from the registry and ends the session span. The final
// history length is stamped on the span so traces show how large the form
// grew. Safe to call more than once; later calls only re-end the span,
// which OpenTelemetry ignores.
func (r *Recorder) Close() {
	r.sub.Cancel()
	r.span.SetAttributes(attribute.Int(AttrHistoryLength, len(r.reg.History())))
	r.span.End()
}
