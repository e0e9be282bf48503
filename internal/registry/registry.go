// Package registry coordinates form state shared between independently
// mounted UI components. Components register form fragments under
// dotted paths; the registry assembles them into one tree, records
// every successful registration in an append-only history, and
// broadcasts each one synchronously to observers.
//
// A Registry is confined to a single goroutine, normally the Bubble Tea
// update loop that owns the session. Calls are plain synchronous
// function calls and there is no internal locking. Observers run on the
// caller's goroutine and may re-enter the registry; the tree mutation
// always completes before the event for it is delivered.
package registry

import (
	"errors"
	"time"

	"github.com/formdeck/formdeck/internal/formpath"
	"github.com/formdeck/formdeck/internal/formtree"
)

// Registry errors
var (
	ErrPathNotFound = errors.New("path does not resolve to a group")
	ErrDuplicateKey = errors.New("duplicate key under parent group")
)

// Registry owns the root group, the event stream and the history log.
type Registry struct {
	root    *formtree.Group
	stream  *EventStream
	history []Event
}

// New creates an empty registry with a fresh root group. Each logical
// session constructs its own registry; there is no shared default
// instance.
func New() *Registry {
	return &Registry{
		root:   formtree.NewGroup(),
		stream: newEventStream(),
	}
}

// RegisterRoot attaches group directly under the root, replacing any
// existing entry for name unconditionally. It always succeeds and
// emits a form event.
func (r *Registry) RegisterRoot(name string, group *formtree.Group) Event {
	r.root.Attach(name, group)
	return r.emit(KindForm, name, group)
}

// RegisterElement attaches node under key in the group addressed by
// path. Every path segment, including the last, must resolve to a
// group; otherwise ErrPathNotFound is returned and nothing changes.
// An existing key fails with ErrDuplicateKey unless Overwrite is given,
// in which case the old child is detached before the new one is
// attached. At controls the insertion position; without it the key
// appends. On success the element event is emitted and returned.
//
// A failed registration mutates nothing and emits nothing.
func (r *Registry) RegisterElement(path formpath.Path, key string, node formtree.Node, opts ...Option) (Event, error) {
	o := applyOptions(opts)

	parent, ok := r.resolveGroup(path)
	if !ok {
		return Event{}, ErrPathNotFound
	}
	if _, exists := parent.Child(key); exists && !o.overwrite {
		return Event{}, ErrDuplicateKey
	}

	if o.hasIndex {
		parent.AttachAt(key, node, o.index)
	} else {
		parent.Attach(key, node)
	}
	return r.emit(KindElement, path.Join(key).String(), node), nil
}

// RemoveElement detaches the node addressed by path from its parent
// group. It reports whether anything was removed.
//
// Removal emits no event and leaves the history untouched: the event
// log records registrations only. Observers that care about absence
// must look the path up again.
func (r *Registry) RemoveElement(path formpath.Path) bool {
	if path.IsRoot() {
		return false
	}
	parent, ok := r.resolveGroup(path.Parent())
	if !ok {
		return false
	}
	return parent.Detach(path.Leaf())
}

// Control returns the node addressed by path. The empty path yields
// the root group. Groups and fields are looked up uniformly.
func (r *Registry) Control(path formpath.Path) (formtree.Node, bool) {
	var node formtree.Node = r.root
	for _, seg := range path {
		child, ok := node.Child(seg)
		if !ok {
			return nil, false
		}
		node = child
	}
	return node, true
}

// Form returns the live root group. It is never replaced for the
// lifetime of the registry.
func (r *Registry) Form() *formtree.Group {
	return r.root
}

// Events returns the registry's event stream.
func (r *Registry) Events() *EventStream {
	return r.stream
}

// History returns a copy of every event emitted so far, in emission
// order. The log is append-only: entries are never pruned, reordered
// or rewritten, and removals leave no trace.
func (r *Registry) History() []Event {
	out := make([]Event, len(r.history))
	copy(out, r.history)
	return out
}

// DisableAllExcept disables every direct child of the group addressed
// by path whose key is not listed in except. Excepted children keep
// whatever state they had. The flag changes are silent: no events, no
// value hooks. If path does not resolve to a group this is a no-op.
func (r *Registry) DisableAllExcept(path formpath.Path, except ...string) {
	group, ok := r.resolveGroup(path)
	if !ok {
		return
	}
	keep := make(map[string]struct{}, len(except))
	for _, k := range except {
		keep[k] = struct{}{}
	}
	for _, key := range group.Keys() {
		if _, skip := keep[key]; skip {
			continue
		}
		if child, ok := group.Child(key); ok {
			child.SetDisabled(true)
		}
	}
}

// resolveGroup walks path from the root and returns the group it
// addresses. A missing segment or a field anywhere along the way means
// failure.
func (r *Registry) resolveGroup(path formpath.Path) (*formtree.Group, bool) {
	node, ok := r.Control(path)
	if !ok {
		return nil, false
	}
	group, ok := node.(*formtree.Group)
	return group, ok
}

// emit appends the event to the history and delivers it to observers.
// The caller has already finished mutating the tree.
func (r *Registry) emit(kind EventKind, path string, node formtree.Node) Event {
	ev := Event{
		Kind: kind,
		Path: path,
		Node: node,
		Seq:  len(r.history),
		Time: time.Now(),
	}
	r.history = append(r.history, ev)
	r.stream.publish(ev)
	return ev
}
