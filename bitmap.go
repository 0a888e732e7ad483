package sparseset

import "github.com/RoaringBitmap/roaring/v2"

// Bitmap returns a roaring bitmap holding the values of s.
func (s *Set) Bitmap() *roaring.Bitmap {
	rb := roaring.New()
	for v := range s.All() {
		rb.Add(uint32(v))
	}
	return rb
}

// FromBitmap builds a Set from rb. Values above MaxValue are dropped.
func FromBitmap(rb *roaring.Bitmap) *Set {
	s := New()
	it := rb.Iterator()
	for it.HasNext() {
		v := it.Next()
		if v > MaxValue {
			break
		}
		s.Add(int(v))
	}
	return s
}
