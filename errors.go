package frozen

import "errors"

var (
	// ErrReentrantMutation is the panic value raised when a mutation is
	// attempted while another mutation on the same container is already
	// in progress. The only way to trigger this from safe code is a
	// GetOrInsertWith producer inserting into the container it is being
	// computed for. The container state is left unchanged.
	ErrReentrantMutation = errors.New("frozen: reentrant mutation")

	// ErrPoisoned indicates that a previous mutation on a synchronized
	// container panicked while the mutation lock was held. The backing
	// store may be inconsistent, so every subsequent mutation panics
	// with ErrPoisoned. Reads of entries published before the panic
	// remain valid.
	ErrPoisoned = errors.New("frozen: container poisoned by panic during mutation")
)
