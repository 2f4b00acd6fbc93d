// Package segment implements the LRU building block used by the
// Window, Protected, and Probationary segments of the W-TinyLFU cache:
// a bounded doubly-linked list whose node pointers are stable
// "positions" that survive insertion, erasure, and splicing into
// another segment.
//
// This generalizes crwen-ckv/cache/lru.go and cache/replacer.go (a
// sentinel-headed intrusive list of *Node) to arbitrary comparable
// keys and values, and adds the cross-segment splice a flat list
// never needs.
package segment

// Node is a page's position within a Segment. Its identity — the
// pointer itself — never changes across Insert/Erase/Splice, which is
// what lets the cache's key index store positions directly.
type Node[K comparable, V any] struct {
	key   K
	value V
	prev  *Node[K, V]
	next  *Node[K, V]
	owner *Segment[K, V]
}

// Key returns the key stored at this position.
func (n *Node[K, V]) Key() K { return n.key }

// Value returns the value stored at this position.
func (n *Node[K, V]) Value() V { return n.value }

// SetValue overwrites the value stored at this position in place,
// without changing its position or owning segment.
func (n *Node[K, V]) SetValue(v V) { n.value = v }

// Segment is a bounded LRU list. The head sentinel's next pointer is
// the MRU position; the tail sentinel's prev pointer is the LRU
// (victim) position.
type Segment[K comparable, V any] struct {
	head     Node[K, V]
	tail     Node[K, V]
	size     int
	capacity int
}

// New builds an empty Segment with the given capacity. A capacity of
// 0 is legal (e.g. an empty Probationary segment under a capacity-1
// cache) — it simply means every insertion must go through eviction
// logic in the owning cache.
func New[K comparable, V any](capacity int) *Segment[K, V] {
	s := &Segment[K, V]{capacity: capacity}
	s.head.next = &s.tail
	s.tail.prev = &s.head
	return s
}

// Size returns the current number of pages held.
func (s *Segment[K, V]) Size() int { return s.size }

// Capacity returns the configured capacity.
func (s *Segment[K, V]) Capacity() int { return s.capacity }

// IsFull reports whether Size() >= Capacity().
func (s *Segment[K, V]) IsFull() bool { return s.size >= s.capacity }

// SetCapacity updates the capacity value only. It does not evict —
// per spec, that is the owning cache's responsibility, since only the
// cache knows how to remove the corresponding entry from its key
// index.
func (s *Segment[K, V]) SetCapacity(n int) { s.capacity = n }

// MRU returns the hottest position, or nil if the segment is empty.
func (s *Segment[K, V]) MRU() *Node[K, V] {
	if s.head.next == &s.tail {
		return nil
	}
	return s.head.next
}

// LRU returns the coldest (victim) position, or nil if the segment is
// empty.
func (s *Segment[K, V]) LRU() *Node[K, V] {
	if s.tail.prev == &s.head {
		return nil
	}
	return s.tail.prev
}

// InsertMRU creates a new page at the MRU position and returns its
// position.
func (s *Segment[K, V]) InsertMRU(key K, value V) *Node[K, V] {
	n := &Node[K, V]{key: key, value: value, owner: s}
	s.linkAtHead(n)
	s.size++
	return n
}

// Erase removes pos from whichever segment currently owns it.
func (s *Segment[K, V]) Erase(pos *Node[K, V]) {
	owner := pos.owner
	pos.prev.next = pos.next
	pos.next.prev = pos.prev
	pos.prev = nil
	pos.next = nil
	owner.size--
}

// Evict erases the LRU (victim) position and returns it. Returns nil
// if the segment is empty.
func (s *Segment[K, V]) Evict() *Node[K, V] {
	victim := s.LRU()
	if victim == nil {
		return nil
	}
	s.Erase(victim)
	return victim
}

// Promote moves pos to the MRU position. pos must already belong to
// s.
func (s *Segment[K, V]) Promote(pos *Node[K, V]) {
	s.unlink(pos)
	s.linkAtHead(pos)
}

// SpliceFrom moves pos out of other and places it at this segment's
// MRU position. Position identity — the *Node pointer — is preserved;
// only its owner and list links change.
func (s *Segment[K, V]) SpliceFrom(pos *Node[K, V], other *Segment[K, V]) {
	other.unlink(pos)
	other.size--
	pos.owner = s
	s.linkAtHead(pos)
	s.size++
}

func (s *Segment[K, V]) unlink(n *Node[K, V]) {
	n.prev.next = n.next
	n.next.prev = n.prev
}

func (s *Segment[K, V]) linkAtHead(n *Node[K, V]) {
	n.owner = s
	next := s.head.next
	n.next = next
	next.prev = n
	n.prev = &s.head
	s.head.next = n
}
