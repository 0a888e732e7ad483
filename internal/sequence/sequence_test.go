package sequence

import (
	"testing"

	"github.com/hupe1980/sparseset/internal/bucket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ranks(s *Seq) []int {
	var out []int
	for c := s.Start(); !c.AtEnd(); c.Next() {
		out = append(out, c.Rank())
	}
	return out
}

func build(t *testing.T, limit int, rs ...int) *Seq {
	t.Helper()
	s := New(limit)
	c := s.Start()
	for _, r := range rs {
		c.InsertBefore(r, bucket.Of(r%bucket.Size))
	}
	require.Equal(t, len(rs), s.Len())
	return s
}

func TestSeq_Empty(t *testing.T) {
	s := New(128)
	c := s.Start()
	assert.True(t, c.AtEnd())
	assert.Equal(t, 128, c.Rank())
	assert.Nil(t, c.Bucket())
	assert.Equal(t, 0, s.Len())

	c.Next()
	assert.True(t, c.AtEnd(), "Next on sentinel stays on sentinel")
}

func TestSeq_InsertKeepsPosition(t *testing.T) {
	s := build(t, 128, 3, 9)
	c := s.Start()
	c.Next() // on 9
	c.InsertBefore(5, bucket.Of(1))
	assert.Equal(t, 9, c.Rank())

	c.InsertBefore(7, bucket.Of(1))
	assert.Equal(t, 9, c.Rank())
	assert.Equal(t, []int{3, 5, 7, 9}, ranks(s))

	c.Next()
	require.True(t, c.AtEnd())
	c.InsertBefore(127, bucket.Of(1))
	assert.Equal(t, []int{3, 5, 7, 9, 127}, ranks(s))
	assert.Equal(t, 5, s.Len())
}

func TestSeq_Remove(t *testing.T) {
	s := build(t, 128, 1, 2, 3)
	c := s.Start()
	c.Next()
	c.Remove()
	assert.Equal(t, 3, c.Rank())
	assert.Equal(t, []int{1, 3}, ranks(s))

	c = s.Start()
	c.Remove()
	c.Remove()
	assert.True(t, c.AtEnd())
	assert.Equal(t, 0, s.Len())
	assert.Empty(t, ranks(s))
}

func TestSeq_RecyclesHandles(t *testing.T) {
	s := build(t, 128, 10, 20)
	arena := len(s.nodes)

	c := s.Start()
	c.Remove()
	c = s.Start()
	c.InsertBefore(5, bucket.Of(5))

	assert.Equal(t, arena, len(s.nodes))
	assert.Equal(t, []int{5, 20}, ranks(s))
}

func TestSeq_Preconditions(t *testing.T) {
	tests := []struct {
		name string
		fn   func(s *Seq)
	}{
		{"remove at sentinel", func(s *Seq) {
			c := s.Start()
			c.Next()
			c.Next()
			c.Remove()
		}},
		{"insert equal to current", func(s *Seq) {
			s.Start().InsertBefore(4, bucket.Of(1))
		}},
		{"insert after current", func(s *Seq) {
			s.Start().InsertBefore(6, bucket.Of(1))
		}},
		{"insert not after previous", func(s *Seq) {
			c := s.Start()
			c.Next()
			c.InsertBefore(4, bucket.Of(1))
		}},
		{"insert at limit", func(s *Seq) {
			c := s.Start()
			c.Next()
			c.Next()
			c.InsertBefore(128, bucket.Of(1))
		}},
		{"insert negative rank", func(s *Seq) {
			s.Start().InsertBefore(-1, bucket.Of(1))
		}},
		{"insert empty bucket", func(s *Seq) {
			s.Start().InsertBefore(0, bucket.New())
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := build(t, 128, 4, 8)
			assert.Panics(t, func() { tt.fn(s) })
		})
	}
}

func TestSeq_Clone(t *testing.T) {
	s := build(t, 128, 2, 4)
	c := s.Clone()

	c.Start().Bucket().Add(200)
	assert.False(t, s.Start().Bucket().Contains(200), "clone must not share buckets")
	assert.Equal(t, ranks(s), ranks(c))
	assert.Equal(t, s.Limit(), c.Limit())
}

func TestSeq_Clear(t *testing.T) {
	s := build(t, 128, 2, 4, 6)
	s.Clear()
	assert.Equal(t, 0, s.Len())
	assert.True(t, s.Start().AtEnd())

	c := s.Start()
	c.InsertBefore(1, bucket.Of(1))
	assert.Equal(t, []int{1}, ranks(s))
}

func TestSeq_Visits(t *testing.T) {
	s := build(t, 128, 1, 2, 3)
	s.ResetVisits()

	for c := s.Start(); !c.AtEnd(); c.Next() {
	}
	assert.Equal(t, uint64(3), s.Visits())

	s.ResetVisits()
	assert.Zero(t, s.Visits())
}

func TestNew_InvalidLimit(t *testing.T) {
	assert.Panics(t, func() { New(0) })
}
