package sparseset

import (
	"testing"

	"github.com/hupe1980/sparseset/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// requireInvariants checks that ranks strictly increase and that no live
// bucket is empty.
func requireInvariants(t *testing.T, s *Set) {
	t.Helper()
	prev := -1
	n := 0
	c := s.seq.Start()
	for ; !c.AtEnd(); c.Next() {
		require.Greater(t, c.Rank(), prev, "ranks must strictly increase")
		require.LessOrEqual(t, c.Rank(), MaxRank)
		require.False(t, c.Bucket().IsEmpty(), "bucket %d is empty", c.Rank())
		prev = c.Rank()
		n++
	}
	require.Equal(t, MaxRank+1, c.Rank(), "sentinel rank")
	require.Equal(t, n, s.seq.Len())
}

func TestSet_Empty(t *testing.T) {
	s := New()
	assert.True(t, s.IsEmpty())
	assert.Equal(t, 0, s.Len())
	assert.False(t, s.Contains(0))
	assert.Empty(t, s.Values())
	requireInvariants(t, s)
}

func TestSet_AddContains(t *testing.T) {
	s := New()
	for _, v := range []int{128, 129, 0, 255, 256, MaxValue} {
		s.Add(v)
	}
	requireInvariants(t, s)

	for _, v := range []int{128, 129, 0, 255, 256, MaxValue} {
		assert.True(t, s.Contains(v), "contains %d", v)
	}
	for _, v := range []int{1, 130, 257, MaxValue - 1} {
		assert.False(t, s.Contains(v), "contains %d", v)
	}
	assert.Equal(t, 6, s.Len())
	assert.Equal(t, []int{0, 1, MaxRank}, s.Ranks())
}

func TestSet_AddIsIdempotent(t *testing.T) {
	s := Of(42, 42, 42)
	assert.Equal(t, 1, s.Len())
	assert.Equal(t, []int{0}, s.Ranks())
}

func TestSet_OutOfRange(t *testing.T) {
	s := New()
	for _, v := range []int{-1, -256, MaxValue + 1, 1 << 20} {
		s.Add(v)
		assert.False(t, s.Contains(v))
	}
	assert.True(t, s.IsEmpty())
	requireInvariants(t, s)

	s.Add(255)
	s.Remove(-1) // -1 must not alias residue 255 of rank 0
	assert.True(t, s.Contains(255))
	s.Remove(MaxValue + 1)
	assert.Equal(t, 1, s.Len())
}

func TestSet_RemoveDropsEmptyBucket(t *testing.T) {
	s := Of(64, MaxValue)
	require.Equal(t, []int{0, MaxRank}, s.Ranks())

	s.Remove(64)
	requireInvariants(t, s)
	assert.Equal(t, []int{MaxRank}, s.Ranks())

	s.Remove(MaxValue)
	requireInvariants(t, s)
	assert.True(t, s.IsEmpty())
	assert.Empty(t, s.Ranks())
}

func TestSet_RemoveAbsent(t *testing.T) {
	s := Of(10, 600)
	s.Remove(11)  // residue absent
	s.Remove(300) // rank absent
	s.Remove(5000)
	assert.Equal(t, []int{10, 600}, s.Values())
	requireInvariants(t, s)
}

func TestSet_RoundTrip(t *testing.T) {
	rng := testutil.NewRNG(4711)
	for _, v := range rng.Values(500, MaxValue) {
		s := New()
		s.Add(v)
		require.True(t, s.Contains(v))
		s.Remove(v)
		require.False(t, s.Contains(v))
		require.True(t, s.IsEmpty())
		requireInvariants(t, s)
	}
}

func TestSet_RandomAgainstModel(t *testing.T) {
	rng := testutil.NewRNG(99)
	s := New()
	model := map[int]bool{}

	for i := 0; i < 5000; i++ {
		v := rng.Intn(MaxValue+200) - 100
		if rng.Intn(3) == 0 {
			s.Remove(v)
			delete(model, v)
		} else {
			s.Add(v)
			if InRange(v) {
				model[v] = true
			}
		}
	}

	requireInvariants(t, s)
	assert.Equal(t, len(model), s.Len())
	for v := range model {
		assert.True(t, s.Contains(v))
	}
	for v := range s.All() {
		assert.True(t, model[v])
	}
}

func TestSet_Clear(t *testing.T) {
	s := Of(1, 1000, 20000)
	s.Clear()
	assert.True(t, s.IsEmpty())
	requireInvariants(t, s)

	s.Add(7)
	assert.Equal(t, []int{7}, s.Values())
}

func TestSet_Clone(t *testing.T) {
	s := Of(1, 1000, 20000)
	c := s.Clone()
	requireInvariants(t, c)
	assert.True(t, s.Equal(c))

	c.Add(2)
	c.Remove(1000)
	assert.Equal(t, []int{1, 1000, 20000}, s.Values())
	assert.Equal(t, []int{1, 2, 20000}, c.Values())
}

func TestInRange(t *testing.T) {
	assert.True(t, InRange(0))
	assert.True(t, InRange(MaxValue))
	assert.False(t, InRange(-1))
	assert.False(t, InRange(MaxValue+1))
}
