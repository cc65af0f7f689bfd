package frozen

type options struct {
	ordered  bool
	capacity int
}

// Option configures container construction.
type Option func(*options)

// WithOrdered selects the insertion-ordered backing store for a Map.
// Iteration then yields entries in insertion order instead of Go's
// unspecified map order. The reference-stability contract is identical
// for both backing stores.
//
// IndexMap and IndexSet are always insertion-ordered; the option is a
// no-op for them.
func WithOrdered() Option {
	return func(o *options) {
		o.ordered = true
	}
}

// WithCapacity pre-sizes the container's bookkeeping structures for the
// expected number of entries. Purely an allocation hint; containers
// grow beyond it as needed.
func WithCapacity(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.capacity = n
		}
	}
}

func applyOptions(opts []Option) options {
	var o options
	for _, fn := range opts {
		fn(&o)
	}
	return o
}
