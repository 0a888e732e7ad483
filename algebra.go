package sparseset

// Each operation below is a single ordered merge over the two bucket
// sequences. The sentinel rank is greater than every real rank, so a cursor
// that reaches its sentinel simply stops matching.
//
// Difference and Intersect can only shrink the receiver and stop at the end
// of the receiver. Union and SymmetricDifference may append buckets beyond
// the receiver's last rank and stop at the end of the operand.

// Difference sets s to s ∖ o.
func (s *Set) Difference(o *Set) {
	if s == o {
		s.Clear()
		return
	}
	a, b := s.seq.Start(), o.seq.Start()
	for !a.AtEnd() {
		switch ra, rb := a.Rank(), b.Rank(); {
		case ra < rb:
			a.Next()
		case ra == rb:
			a.Bucket().Difference(b.Bucket())
			if a.Bucket().IsEmpty() {
				a.Remove()
			} else {
				a.Next()
			}
			b.Next()
		default:
			b.Next()
		}
	}
}

// SymmetricDifference sets s to s ⊕ o.
func (s *Set) SymmetricDifference(o *Set) {
	if s == o {
		s.Clear()
		return
	}
	a, b := s.seq.Start(), o.seq.Start()
	for !b.AtEnd() {
		switch ra, rb := a.Rank(), b.Rank(); {
		case ra < rb:
			a.Next()
		case ra == rb:
			a.Bucket().SymmetricDifference(b.Bucket())
			if a.Bucket().IsEmpty() {
				a.Remove()
			} else {
				a.Next()
			}
			b.Next()
		default:
			a.InsertBefore(rb, b.Bucket().Clone())
			b.Next()
		}
	}
}

// Intersect sets s to s ∩ o.
func (s *Set) Intersect(o *Set) {
	if s == o {
		return
	}
	a, b := s.seq.Start(), o.seq.Start()
	for !a.AtEnd() {
		switch ra, rb := a.Rank(), b.Rank(); {
		case ra < rb:
			a.Remove()
		case ra == rb:
			a.Bucket().Intersect(b.Bucket())
			if a.Bucket().IsEmpty() {
				a.Remove()
			} else {
				a.Next()
			}
			b.Next()
		default:
			b.Next()
		}
	}
}

// Union sets s to s ∪ o.
func (s *Set) Union(o *Set) {
	if s == o {
		return
	}
	a, b := s.seq.Start(), o.seq.Start()
	for !b.AtEnd() {
		switch ra, rb := a.Rank(), b.Rank(); {
		case ra < rb:
			a.Next()
		case ra == rb:
			a.Bucket().Union(b.Bucket())
			a.Next()
			b.Next()
		default:
			a.InsertBefore(rb, b.Bucket().Clone())
			b.Next()
		}
	}
}
