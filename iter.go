package sparseset

import (
	"iter"
	"strconv"
	"strings"
)

// All yields the values of s in increasing order.
//
// The set must not be modified during iteration.
func (s *Set) All() iter.Seq[int] {
	return func(yield func(int) bool) {
		for c := s.seq.Start(); !c.AtEnd(); c.Next() {
			base := c.Rank() * BucketSize
			for r := range c.Bucket().All() {
				if !yield(base + r) {
					return
				}
			}
		}
	}
}

// Values returns the values of s in increasing order.
func (s *Set) Values() []int {
	out := make([]int, 0, s.Len())
	for v := range s.All() {
		out = append(out, v)
	}
	return out
}

// Ranks returns the ranks of the occupied buckets in increasing order.
func (s *Set) Ranks() []int {
	out := make([]int, 0, s.seq.Len())
	for c := s.seq.Start(); !c.AtEnd(); c.Next() {
		out = append(out, c.Rank())
	}
	return out
}

// String returns the values formatted as {v1 v2 ...}.
func (s *Set) String() string {
	var sb strings.Builder
	sb.WriteByte('{')
	first := true
	for v := range s.All() {
		if !first {
			sb.WriteByte(' ')
		}
		first = false
		sb.WriteString(strconv.Itoa(v))
	}
	sb.WriteByte('}')
	return sb.String()
}
