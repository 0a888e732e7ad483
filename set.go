package sparseset

import (
	"github.com/hupe1980/sparseset/internal/bucket"
	"github.com/hupe1980/sparseset/internal/sequence"
)

const (
	// BucketSize is the number of consecutive values covered by one bucket.
	BucketSize = bucket.Size

	// MaxValue is the largest value a Set can hold.
	MaxValue = 32767

	// MaxRank is the largest bucket rank.
	MaxRank = MaxValue / BucketSize
)

// Set is a sparse set of integers in [0, MaxValue].
//
// Values are grouped by rank (v / BucketSize) into dense buckets kept in a
// rank-ordered sequence. Empty buckets are dropped eagerly, so the memory
// footprint and the cost of every operation depend on the number of occupied
// buckets, not on the size of the domain.
//
// A Set is not safe for concurrent use.
type Set struct {
	seq *sequence.Seq
}

// New returns an empty set.
func New() *Set {
	return &Set{seq: sequence.New(MaxRank + 1)}
}

// Of returns a set holding the given values. Out of range values are ignored.
func Of(values ...int) *Set {
	s := New()
	for _, v := range values {
		s.Add(v)
	}
	return s
}

// InRange reports whether v can be stored in a Set.
func InRange(v int) bool {
	return v >= 0 && v <= MaxValue
}

func split(v int) (rank, residue int) {
	return v / BucketSize, v % BucketSize
}

// seek positions a cursor on the first bucket whose rank is >= rank.
func (s *Set) seek(rank int) *sequence.Cursor {
	c := s.seq.Start()
	for c.Rank() < rank {
		c.Next()
	}
	return c
}

// Contains reports whether v is in the set.
func (s *Set) Contains(v int) bool {
	if !InRange(v) {
		return false
	}
	rank, residue := split(v)
	c := s.seek(rank)
	if c.Rank() == rank {
		return c.Bucket().Contains(residue)
	}
	return false
}

// Add inserts v. Values outside [0, MaxValue] are silently ignored.
func (s *Set) Add(v int) {
	if !InRange(v) {
		return
	}
	rank, residue := split(v)
	c := s.seek(rank)
	if c.Rank() == rank {
		c.Bucket().Add(residue)
		return
	}
	c.InsertBefore(rank, bucket.Of(residue))
}

// Remove deletes v. Absent or out of range values are ignored.
func (s *Set) Remove(v int) {
	if !InRange(v) {
		return
	}
	rank, residue := split(v)
	c := s.seek(rank)
	if c.Rank() != rank {
		return
	}
	b := c.Bucket()
	b.Remove(residue)
	if b.IsEmpty() {
		c.Remove()
	}
}

// Len returns the number of values in the set.
func (s *Set) Len() int {
	n := 0
	for c := s.seq.Start(); !c.AtEnd(); c.Next() {
		n += c.Bucket().Len()
	}
	return n
}

// IsEmpty reports whether the set holds no value.
func (s *Set) IsEmpty() bool {
	return s.seq.Len() == 0
}

// Clear removes every value.
func (s *Set) Clear() {
	s.seq.Clear()
}

// Clone returns a deep copy of s.
func (s *Set) Clone() *Set {
	return &Set{seq: s.seq.Clone()}
}
