package sparseset

// Equal reports whether s and o hold the same values.
func (s *Set) Equal(o *Set) bool {
	if s == o {
		return true
	}
	if o == nil {
		return false
	}
	a, b := s.seq.Start(), o.seq.Start()
	for !a.AtEnd() && !b.AtEnd() {
		if a.Rank() != b.Rank() || !a.Bucket().Equal(b.Bucket()) {
			return false
		}
		a.Next()
		b.Next()
	}
	return a.AtEnd() && b.AtEnd()
}

// IsSubsetOf reports whether every value of s is also in o.
func (s *Set) IsSubsetOf(o *Set) bool {
	if s == o {
		return true
	}
	a, b := s.seq.Start(), o.seq.Start()
	for !a.AtEnd() && !b.AtEnd() {
		switch ra, rb := a.Rank(), b.Rank(); {
		case ra < rb:
			return false
		case ra == rb:
			if !a.Bucket().IsSubsetOf(b.Bucket()) {
				return false
			}
			a.Next()
			b.Next()
		default:
			b.Next()
		}
	}
	return a.AtEnd()
}
