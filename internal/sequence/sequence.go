package sequence

import (
	"fmt"

	"github.com/hupe1980/sparseset/internal/bucket"
)

// Handle addresses a node in the arena.
type Handle int32

const (
	// sentinelHandle is the permanent end marker.
	sentinelHandle Handle = 0
	// anchorHandle precedes the first real node. It lets a cursor keep a
	// predecessor handle even at the start of the sequence.
	anchorHandle Handle = 1

	anchorRank = -1
)

type node struct {
	rank   int
	bucket *bucket.Set
	next   Handle
}

// Seq is an ordered, sentinel-terminated sequence of buckets.
//
// Ranks strictly increase from the first node to the sentinel, whose rank is
// the limit passed to New. Seq is not safe for concurrent use.
type Seq struct {
	nodes []node
	free  []Handle
	limit int
	count int

	// visits counts cursor steps and removals, i.e. nodes left behind.
	visits uint64
}

// New creates an empty sequence accepting ranks in [0, limit).
func New(limit int) *Seq {
	if limit <= 0 {
		panic(fmt.Sprintf("sequence: invalid rank limit %d", limit))
	}
	s := &Seq{limit: limit}
	s.reset()
	return s
}

func (s *Seq) reset() {
	s.nodes = append(s.nodes[:0],
		node{rank: s.limit, next: sentinelHandle},
		node{rank: anchorRank, next: sentinelHandle},
	)
	s.free = s.free[:0]
	s.count = 0
}

// Limit returns the sentinel rank.
func (s *Seq) Limit() int {
	return s.limit
}

// Len returns the number of real nodes.
func (s *Seq) Len() int {
	return s.count
}

// Clear drops every real node. Previously issued cursors become invalid.
func (s *Seq) Clear() {
	s.reset()
}

// Clone returns a deep copy of s. Buckets are copied by value.
func (s *Seq) Clone() *Seq {
	c := New(s.limit)
	dst := c.Start()
	for it := s.Start(); !it.AtEnd(); it.Next() {
		dst.InsertBefore(it.Rank(), it.Bucket().Clone())
	}
	return c
}

// Visits returns the number of node visits since creation or the last
// ResetVisits call.
func (s *Seq) Visits() uint64 {
	return s.visits
}

// ResetVisits zeroes the visit counter.
func (s *Seq) ResetVisits() {
	s.visits = 0
}

func (s *Seq) alloc(rank int, b *bucket.Set, next Handle) Handle {
	n := node{rank: rank, bucket: b, next: next}
	if k := len(s.free); k > 0 {
		h := s.free[k-1]
		s.free = s.free[:k-1]
		s.nodes[h] = n
		return h
	}
	s.nodes = append(s.nodes, n)
	return Handle(len(s.nodes) - 1)
}

func (s *Seq) release(h Handle) {
	s.nodes[h] = node{}
	s.free = append(s.free, h)
}

// Start returns a cursor on the first node, or on the sentinel if the
// sequence is empty.
func (s *Seq) Start() *Cursor {
	return &Cursor{seq: s, prev: anchorHandle, cur: s.nodes[anchorHandle].next}
}

// Cursor is a position in a Seq. It is only valid while the sequence is
// mutated through this cursor.
type Cursor struct {
	seq  *Seq
	prev Handle
	cur  Handle
}

// AtEnd reports whether the cursor is on the sentinel.
func (c *Cursor) AtEnd() bool {
	return c.cur == sentinelHandle
}

// Rank returns the rank of the current node. On the sentinel it returns the
// sequence limit, which compares greater than every real rank.
func (c *Cursor) Rank() int {
	return c.seq.nodes[c.cur].rank
}

// Bucket returns the bucket of the current node for in-place mutation.
// It returns nil on the sentinel.
func (c *Cursor) Bucket() *bucket.Set {
	return c.seq.nodes[c.cur].bucket
}

// Next moves to the following node. Calling Next on the sentinel is a no-op.
func (c *Cursor) Next() {
	if c.cur == sentinelHandle {
		return
	}
	c.seq.visits++
	c.prev = c.cur
	c.cur = c.seq.nodes[c.cur].next
}

// InsertBefore links a new node between the previous position and the current
// one. The cursor keeps referring to the same current node.
//
// The rank must lie strictly between the previous rank and the current rank,
// and the bucket must not be empty. Violations panic.
func (c *Cursor) InsertBefore(rank int, b *bucket.Set) {
	s := c.seq
	if rank < 0 || rank >= s.limit {
		panic(fmt.Sprintf("sequence: rank %d out of range [0, %d)", rank, s.limit))
	}
	if prev := s.nodes[c.prev].rank; rank <= prev {
		panic(fmt.Sprintf("sequence: insert rank %d not after %d", rank, prev))
	}
	if cur := s.nodes[c.cur].rank; rank >= cur {
		panic(fmt.Sprintf("sequence: insert rank %d not before %d", rank, cur))
	}
	if b == nil || b.IsEmpty() {
		panic("sequence: insert of empty bucket")
	}

	h := s.alloc(rank, b, c.cur)
	s.nodes[c.prev].next = h
	c.prev = h
	s.count++
}

// Remove unlinks the current node and moves the cursor to its successor.
// Removing the sentinel panics.
func (c *Cursor) Remove() {
	if c.cur == sentinelHandle {
		panic("sequence: remove at sentinel")
	}
	s := c.seq
	s.visits++
	next := s.nodes[c.cur].next
	s.nodes[c.prev].next = next
	s.release(c.cur)
	c.cur = next
	s.count--
}
