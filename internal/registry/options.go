package registry

// Option adjusts how RegisterElement attaches a node.
type Option func(*options)

type options struct {
	overwrite bool
	index     int
	hasIndex  bool
}

func applyOptions(opts []Option) options {
	o := options{index: -1}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// Overwrite allows RegisterElement to replace an existing key. The old
// child is detached first, so without At the key moves to the end of
// the order.
func Overwrite() Option {
	return func(o *options) { o.overwrite = true }
}

// At splices the new key at index in the parent's order, counted after
// any overwrite removal. Indexes past the end clamp to append; a
// negative index appends.
func At(index int) Option {
	return func(o *options) {
		o.index = index
		o.hasIndex = true
	}
}
