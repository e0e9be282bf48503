// Package formtree defines the tree of form state shared between UI
// components. Groups hold ordered named children; Fields hold a value
// plus status flags. Nodes carry no parent pointers and no goroutine
// safety: a tree belongs to the goroutine that owns its registry.
package formtree

// Kind discriminates the two node variants.
type Kind int

const (
	KindGroup Kind = iota
	KindField
)

func (k Kind) String() string {
	switch k {
	case KindGroup:
		return "group"
	case KindField:
		return "field"
	default:
		return "unknown"
	}
}

// Node is the common surface of Groups and Fields.
type Node interface {
	// Kind reports the variant at runtime.
	Kind() Kind

	// Child returns the named child. Fields have no children and
	// always return (nil, false).
	Child(key string) (Node, bool)

	// Disabled reports the node's own disabled flag. The flag is
	// local: it never cascades to children.
	Disabled() bool

	// SetDisabled sets the node's own disabled flag. Setting it is
	// silent: no change hooks fire.
	SetDisabled(disabled bool)
}
