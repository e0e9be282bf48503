package tracing

// Span attribute keys recorded on form session spans.
const (
	AttrSessionID     = "session.id"
	AttrEventKind     = "event.kind"
	AttrEventPath     = "event.path"
	AttrEventSeq      = "event.seq"
	AttrHistoryLength = "history.length"
)

// Span and span event names.
const (
	SpanSession       = "form.session"
	EventRegistration = "registry.event"
)
