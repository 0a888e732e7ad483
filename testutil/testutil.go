package testutil

import (
	"math/rand"
	"sort"
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

// Values returns n pseudo-random values in [0, maxValue].
// Duplicates are possible.
func (r *RNG) Values(n, maxValue int) []int {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]int, n)
	for i := range out {
		out[i] = r.rand.Intn(maxValue + 1)
	}
	return out
}

// Ranks returns k distinct ranks in [0, maxRank], sorted ascending.
// If k exceeds the number of available ranks, all ranks are returned.
func (r *RNG) Ranks(k, maxRank int) []int {
	r.mu.Lock()
	defer r.mu.Unlock()

	perm := r.rand.Perm(maxRank + 1)
	if k > len(perm) {
		k = len(perm)
	}
	out := perm[:k]
	sort.Ints(out)
	return out
}

// BucketValues returns perBucket values in each of k distinct random buckets
// of the given width, so a set built from them occupies exactly k buckets.
// Buckets are drawn from the ranks available below 32768.
func (r *RNG) BucketValues(k, perBucket, width int) []int {
	ranks := r.Ranks(k, 32767/width)

	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]int, 0, len(ranks)*perBucket)
	for _, rank := range ranks {
		out = append(out, rank*width) // guarantees the bucket is occupied
		for i := 1; i < perBucket; i++ {
			out = append(out, rank*width+r.rand.Intn(width))
		}
	}
	return out
}

// Shuffle returns a shuffled copy of values.
func (r *RNG) Shuffle(values []int) []int {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := append([]int(nil), values...)
	r.rand.Shuffle(len(out), func(i, j int) { out[i], out[j] = out[j], out[i] })
	return out
}

// Distinct returns the sorted distinct values of values.
func Distinct(values []int) []int {
	out := append([]int(nil), values...)
	sort.Ints(out)
	n := 0
	for i, v := range out {
		if i == 0 || v != out[n-1] {
			out[n] = v
			n++
		}
	}
	return out[:n]
}
