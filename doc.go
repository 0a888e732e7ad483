// Package sparseset provides a compact sparse set of small non-negative
// integers.
//
// The domain [0, MaxValue] is split into buckets of BucketSize values. Each
// occupied bucket stores a dense bitset; empty buckets are never kept. Buckets
// live in a rank-ordered sequence terminated by a sentinel, so every binary
// operation is a single linear merge over both operands.
//
// # Quick Start
//
//	a := sparseset.Of(100, 300)
//	b := sparseset.Of(100)
//
//	a.Difference(b)        // a = {300}
//	a.Union(b)             // a = {100 300}
//	ok := b.IsSubsetOf(a)  // true
//
// # Complexity
//
// With n and m occupied buckets in the two operands:
//
//	Contains, Add, Remove                     O(n)
//	Union, Intersect, Difference,
//	SymmetricDifference, Equal, IsSubsetOf    O(n + m)
//	Len                                       O(n)
//
// # Aliasing
//
// Passing a set as its own operand is allowed. s.Difference(s) and
// s.SymmetricDifference(s) empty s; s.Union(s) and s.Intersect(s) leave it
// unchanged.
//
// # Persistence
//
// The stream package reads and writes the flat -1 terminated integer format.
// The persistence package stores sets by name in a blobstore (local
// directory, memory, S3 or MinIO).
package sparseset
