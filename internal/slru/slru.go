// Package slru implements the Segmented LRU used as the W-TinyLFU
// cache's main store: a Protected segment (hot, 80% of capacity) and
// a Probationary segment (cold, the remaining 20%), with promotion on
// hit and demotion when Protected overflows.
//
// Generalizes crwen-ckv/cache/slru.go's segmentedLRU to arbitrary
// comparable keys, and corrects its capacity split so that Protected
// gets floor(0.8*capacity) and Probationary exactly the remainder (the
// fractional part truncated from Protected's share lands in
// Probationary).
package slru

import "github.com/kvcache/wtinylfu/internal/segment"

// Slot identifies which segment of the main cache currently hosts a
// page (the window lives outside this package, in the orchestrator).
type Slot int

const (
	Probationary Slot = iota
	Protected
)

// SLRU is the main cache's two-segment LRU.
type SLRU[K comparable, V any] struct {
	protected *segment.Segment[K, V]
	probation *segment.Segment[K, V]
}

// New builds an SLRU with the given total capacity, split 80/20
// between Protected and Probationary with any truncation residue
// given to Probationary: protected = floor(0.8*capacity), probationary =
// capacity - protected, so the two always sum exactly to capacity.
func New[K comparable, V any](capacity int) *SLRU[K, V] {
	protectedCap := capacity * 4 / 5
	probationCap := capacity - protectedCap
	return &SLRU[K, V]{
		protected: segment.New[K, V](protectedCap),
		probation: segment.New[K, V](probationCap),
	}
}

// Size returns the combined size of both segments.
func (s *SLRU[K, V]) Size() int {
	return s.protected.Size() + s.probation.Size()
}

// Capacity returns the combined capacity of both segments.
func (s *SLRU[K, V]) Capacity() int {
	return s.protected.Capacity() + s.probation.Capacity()
}

// ProtectedSize, ProbationarySize expose per-segment sizes, mostly for
// tests pinning down the 80/20 split.
func (s *SLRU[K, V]) ProtectedSize() int    { return s.protected.Size() }
func (s *SLRU[K, V]) ProbationarySize() int { return s.probation.Size() }
func (s *SLRU[K, V]) ProtectedCap() int     { return s.protected.Capacity() }
func (s *SLRU[K, V]) ProbationaryCap() int  { return s.probation.Capacity() }

// SetCapacity recomputes the 80/20 split. Does not evict — the
// owning cache drains any resulting overflow itself.
func (s *SLRU[K, V]) SetCapacity(n int) {
	protectedCap := n * 4 / 5
	probationCap := n - protectedCap
	s.protected.SetCapacity(protectedCap)
	s.probation.SetCapacity(probationCap)
}

// VictimKey returns the key of the Probationary LRU page, the
// admission/eviction candidate the rest of the cache sees.
func (s *SLRU[K, V]) VictimKey() K {
	return s.probation.LRU().Key()
}

// Evict evicts the Probationary LRU page.
func (s *SLRU[K, V]) Evict() *segment.Node[K, V] {
	return s.probation.Evict()
}

// EvictOverflow evicts one page, for draining overflow after a
// shrinking SetCapacity. It prefers the Probationary victim, matching
// the ordinary "evict from Probationary" drain rule, but falls back to
// evicting Protected's LRU page once Probationary is exhausted — a
// large-enough shrink can leave all of the overflow sitting in
// Protected. It does not itself keep Probationary within its own
// capacity.
func (s *SLRU[K, V]) EvictOverflow() (*segment.Node[K, V], Slot) {
	if s.probation.Size() > 0 {
		return s.probation.Evict(), Probationary
	}
	return s.protected.Evict(), Protected
}

// Erase removes pos from whichever segment its slot says it belongs
// to.
func (s *SLRU[K, V]) Erase(pos *segment.Node[K, V], slot Slot) {
	if slot == Protected {
		s.protected.Erase(pos)
	} else {
		s.probation.Erase(pos)
	}
}

// AdmitFromWindow splices pos out of window into the MRU position of
// Probationary. The caller is responsible for recording the page's
// new slot as Probationary.
func (s *SLRU[K, V]) AdmitFromWindow(pos *segment.Node[K, V], window *segment.Segment[K, V]) {
	s.probation.SpliceFrom(pos, window)
}

// OnHit applies the probationary-to-protected promotion rule. If pos
// is in Probationary, it's spliced to the Protected MRU position; if
// that overflows Protected, the Protected LRU page is demoted to the
// Probationary MRU position. If pos is already in Protected, it's
// simply promoted to the Protected MRU position.
//
// Returns the demoted page (and true) if a demotion happened, so the
// caller can update its slot bookkeeping; otherwise (nil, false).
func (s *SLRU[K, V]) OnHit(pos *segment.Node[K, V], slot Slot) (*segment.Node[K, V], bool) {
	if slot == Probationary {
		s.protected.SpliceFrom(pos, s.probation)
		if s.protected.Size() > s.protected.Capacity() {
			demoted := s.protected.LRU()
			s.probation.SpliceFrom(demoted, s.protected)
			return demoted, true
		}
		return nil, false
	}
	s.protected.Promote(pos)
	return nil, false
}
