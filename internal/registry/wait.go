package registry

import (
	"github.com/formdeck/formdeck/internal/formpath"
	"github.com/formdeck/formdeck/internal/formtree"
)

// WaitForPath runs fn with the node at path exactly once: immediately
// if the path already resolves, otherwise right after the first
// registration that makes it resolve. This covers paths created as
// part of a larger subtree attach, not just an event for the exact
// path. The returned subscription cancels a pending wait; it is
// already spent when fn ran immediately.
func (r *Registry) WaitForPath(path formpath.Path, fn func(formtree.Node)) *Subscription {
	if node, ok := r.Control(path); ok {
		fn(node)
		return &Subscription{canceled: true}
	}

	var sub *Subscription
	sub = r.stream.Subscribe(func(Event) {
		node, ok := r.Control(path)
		if !ok {
			return
		}
		sub.Cancel()
		fn(node)
	})
	return sub
}
