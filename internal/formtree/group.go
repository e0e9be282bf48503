package formtree

// Group is an ordered, named collection of child nodes. Keys are unique
// within a group and insertion order is preserved: adding or removing
// one child never reorders the others.
type Group struct {
	order    []string
	children map[string]Node
	disabled bool
}

// NewGroup creates an empty group.
func NewGroup() *Group {
	return &Group{
		order:    make([]string, 0),
		children: make(map[string]Node),
	}
}

// Kind returns KindGroup.
func (g *Group) Kind() Kind { return KindGroup }

// Len returns the number of direct children.
func (g *Group) Len() int { return len(g.order) }

// Keys returns the child keys in insertion order. The slice is a copy.
func (g *Group) Keys() []string {
	keys := make([]string, len(g.order))
	copy(keys, g.order)
	return keys
}

// Child returns the named direct child.
func (g *Group) Child(key string) (Node, bool) {
	node, ok := g.children[key]
	return node, ok
}

// Attach adds node under key at the end of the order. If key already
// exists, its node is replaced and the key moves to the end.
func (g *Group) Attach(key string, node Node) {
	g.AttachAt(key, node, -1)
}

// AttachAt splices node under key at the given position in the order.
// An index past the end, or a negative index, appends. If key already
// exists it is detached first, so the index is measured against the
// remaining children.
func (g *Group) AttachAt(key string, node Node, index int) {
	if _, ok := g.children[key]; ok {
		g.removeFromOrder(key)
	}
	if index < 0 || index > len(g.order) {
		index = len(g.order)
	}
	g.order = append(g.order, "")
	copy(g.order[index+1:], g.order[index:])
	g.order[index] = key
	g.children[key] = node
}

// Detach removes the named child. Returns false if the key is absent.
// The order of the remaining children is unchanged.
func (g *Group) Detach(key string) bool {
	if _, ok := g.children[key]; !ok {
		return false
	}
	g.removeFromOrder(key)
	delete(g.children, key)
	return true
}

func (g *Group) removeFromOrder(key string) {
	for i, k := range g.order {
		if k == key {
			g.order = append(g.order[:i], g.order[i+1:]...)
			return
		}
	}
}

// Disabled reports the group's own disabled flag.
func (g *Group) Disabled() bool { return g.disabled }

// SetDisabled sets the group's own disabled flag. Children are not
// touched.
func (g *Group) SetDisabled(disabled bool) { g.disabled = disabled }
