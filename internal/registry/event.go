package registry

import (
	"time"

	"github.com/formdeck/formdeck/internal/formtree"
)

// EventKind distinguishes top-level form registrations from nested
// element registrations.
type EventKind string

const (
	// KindForm is emitted by RegisterRoot only.
	KindForm EventKind = "form"
	// KindElement is emitted by RegisterElement at any depth.
	KindElement EventKind = "element"
)

// Event records one successful registration. Events are immutable once
// emitted; Node is the live node, not a copy, so observers on the
// owning goroutine may inspect or mutate it directly.
type Event struct {
	Kind EventKind
	// Path is the full dotted path of the registered node.
	Path string
	Node formtree.Node
	// Seq is the event's position in the registry history, starting
	// at 0.
	Seq  int
	Time time.Time
}
