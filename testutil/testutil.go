package testutil

import (
	"fmt"
	"math/rand"
	"sync"
)

// RNG struct encapsulates the random number generator and seed.
// It is thread-safe.
type RNG struct {
	rand *rand.Rand
	seed int64
	mu   sync.Mutex
}

// NewRNG creates a new RNG instance with the specified seed.
func NewRNG(seed int64) *RNG {
	return &RNG{
		rand: rand.New(rand.NewSource(seed)),
		seed: seed,
	}
}

// Reset resets the RNG to its initial seed.
func (r *RNG) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rand.Seed(r.seed)
}

// Seed returns the initial seed.
func (r *RNG) Seed() int64 {
	return r.seed
}

// Intn returns a non-negative pseudo-random number in [0,n).
func (r *RNG) Intn(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Intn(n)
}

// Uint64 returns a pseudo-random uint64.
func (r *RNG) Uint64() uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Uint64()
}

// Keys generates num distinct string keys. Locks only once per call.
func (r *RNG) Keys(num int) []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	keys := make([]string, num)
	for i := range keys {
		keys[i] = fmt.Sprintf("key-%d-%08x", i, r.rand.Uint32())
	}
	return keys
}

// Words generates num strings drawn from a pool of poolSize distinct
// values, the shape interning workloads see. poolSize must be > 0.
func (r *RNG) Words(num, poolSize int) []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	pool := make([]string, poolSize)
	for i := range pool {
		pool[i] = fmt.Sprintf("word-%d", i)
	}
	words := make([]string, num)
	for i := range words {
		words[i] = pool[r.rand.Intn(poolSize)]
	}
	return words
}

// Ints generates num pseudo-random ints in [0, max).
func (r *RNG) Ints(num, max int) []int {
	r.mu.Lock()
	defer r.mu.Unlock()

	values := make([]int, num)
	for i := range values {
		values[i] = r.rand.Intn(max)
	}
	return values
}

// Shuffle permutes s in place.
func Shuffle[T any](r *RNG, s []T) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rand.Shuffle(len(s), func(i, j int) {
		s[i], s[j] = s[j], s[i]
	})
}
