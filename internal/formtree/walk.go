package formtree

import "github.com/formdeck/formdeck/internal/formpath"

// Walk visits node and every descendant depth-first, children in
// insertion order. The starting node is visited with the empty path.
// Walk stops early if fn returns false.
func Walk(node Node, fn func(p formpath.Path, n Node) bool) {
	walk(formpath.Path{}, node, fn)
}

func walk(p formpath.Path, node Node, fn func(formpath.Path, Node) bool) bool {
	if !fn(p, node) {
		return false
	}
	group, ok := node.(*Group)
	if !ok {
		return true
	}
	for _, key := range group.order {
		if !walk(p.Join(key), group.children[key], fn) {
			return false
		}
	}
	return true
}

// Paths collects the path of every node under root, in walk order,
// excluding the root itself. Useful for lookup suggestions.
func Paths(root Node) []formpath.Path {
	var out []formpath.Path
	Walk(root, func(p formpath.Path, _ Node) bool {
		if !p.IsRoot() {
			out = append(out, p)
		}
		return true
	})
	return out
}
