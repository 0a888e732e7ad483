package bucket

import (
	"iter"

	"github.com/bits-and-blooms/bitset"
)

// Size is the number of residues a bucket can hold.
const Size = 256

// Set is a dense bitset over the residues [0, Size).
//
// All binary operations mutate the receiver in place. Operands are expected to
// be buckets created by this package, so both sides always have Size bits.
type Set struct {
	bits *bitset.BitSet
}

// New returns an empty bucket.
func New() *Set {
	return &Set{bits: bitset.New(Size)}
}

// Of returns a bucket holding the given residues. Residues outside
// [0, Size) are ignored.
func Of(residues ...int) *Set {
	s := New()
	for _, r := range residues {
		s.Add(r)
	}
	return s
}

func valid(r int) bool {
	return r >= 0 && r < Size
}

// Add inserts residue r.
func (s *Set) Add(r int) {
	if !valid(r) {
		return
	}
	s.bits.Set(uint(r))
}

// Remove deletes residue r.
func (s *Set) Remove(r int) {
	if !valid(r) {
		return
	}
	s.bits.Clear(uint(r))
}

// Contains reports whether residue r is present.
func (s *Set) Contains(r int) bool {
	if !valid(r) {
		return false
	}
	return s.bits.Test(uint(r))
}

// Len returns the number of residues present.
func (s *Set) Len() int {
	return int(s.bits.Count())
}

// IsEmpty reports whether no residue is present.
func (s *Set) IsEmpty() bool {
	return s.bits.None()
}

// Union sets s to s ∪ o.
func (s *Set) Union(o *Set) {
	s.bits.InPlaceUnion(o.bits)
}

// Intersect sets s to s ∩ o.
func (s *Set) Intersect(o *Set) {
	s.bits.InPlaceIntersection(o.bits)
}

// Difference sets s to s ∖ o.
func (s *Set) Difference(o *Set) {
	s.bits.InPlaceDifference(o.bits)
}

// SymmetricDifference sets s to s ⊕ o.
func (s *Set) SymmetricDifference(o *Set) {
	s.bits.InPlaceSymmetricDifference(o.bits)
}

// Equal reports whether s and o hold the same residues.
func (s *Set) Equal(o *Set) bool {
	return s.bits.Equal(o.bits)
}

// IsSubsetOf reports whether every residue of s is in o.
func (s *Set) IsSubsetOf(o *Set) bool {
	return o.bits.IsSuperSet(s.bits)
}

// Clone returns a deep copy of s.
func (s *Set) Clone() *Set {
	return &Set{bits: s.bits.Clone()}
}

// Clear removes every residue.
func (s *Set) Clear() {
	s.bits.ClearAll()
}

// All yields the residues in increasing order.
func (s *Set) All() iter.Seq[int] {
	return func(yield func(int) bool) {
		for i, ok := s.bits.NextSet(0); ok; i, ok = s.bits.NextSet(i + 1) {
			if !yield(int(i)) {
				return
			}
		}
	}
}
