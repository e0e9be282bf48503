// Package formpath addresses nodes in a form tree using dotted paths.
// A path like "checkout.shipping.street" names one node per segment,
// starting from the registry root.
package formpath

import "strings"

// Delimiter separates path segments in string form.
const Delimiter = "."

// Path locates a node as an ordered list of segments from the root.
// The empty path addresses the root itself.
type Path []string

// New builds a path from individual segments.
func New(segments ...string) Path {
	p := make(Path, len(segments))
	copy(p, segments)
	return p
}

// Parse splits s on "." into a path. Parse("") is the root path.
//
// Segments have no escape syntax: a key that itself contains a dot
// parses as two segments and cannot be addressed. Consecutive dots
// produce empty segments, which never resolve.
func Parse(s string) Path {
	if s == "" {
		return Path{}
	}
	return Path(strings.Split(s, Delimiter))
}

// String joins the segments with the delimiter. For paths whose
// segments are delimiter-free, Parse(p.String()) reproduces p.
func (p Path) String() string {
	return strings.Join(p, Delimiter)
}

// IsRoot reports whether the path addresses the root.
func (p Path) IsRoot() bool {
	return len(p) == 0
}

// Join returns a new path extended by key. The receiver is not modified.
func (p Path) Join(key string) Path {
	out := make(Path, len(p)+1)
	copy(out, p)
	out[len(p)] = key
	return out
}

// Parent returns the path without its last segment.
// The parent of the root is the root.
func (p Path) Parent() Path {
	if len(p) == 0 {
		return Path{}
	}
	out := make(Path, len(p)-1)
	copy(out, p[:len(p)-1])
	return out
}

// Leaf returns the last segment, or "" for the root path.
func (p Path) Leaf() string {
	if len(p) == 0 {
		return ""
	}
	return p[len(p)-1]
}

// Equal reports whether two paths have identical segments.
func (p Path) Equal(other Path) bool {
	if len(p) != len(other) {
		return false
	}
	for i := range p {
		if p[i] != other[i] {
			return false
		}
	}
	return true
}
