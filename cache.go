// Package wtinylfu implements the Window-TinyLFU admission and
// eviction policy described by Einziger, Friedman, and Manes
// (arXiv:1512.00727), with algorithmic details aligned to the
// Caffeine reference implementation. It is a bounded-size, in-memory,
// single-threaded key/value store: new entries enter a small Window
// LRU, and survive into a larger Segmented LRU (Protected +
// Probationary) main store only by winning a frequency-sketch-backed
// admission contest against whatever the main store would otherwise
// evict.
//
// The cache is not safe for concurrent use; callers sharing an
// instance across goroutines must serialize access themselves.
package wtinylfu

import (
	"math"

	"github.com/kvcache/wtinylfu/internal/hashutil"
	"github.com/kvcache/wtinylfu/internal/segment"
	"github.com/kvcache/wtinylfu/internal/slru"
	"github.com/kvcache/wtinylfu/internal/sketch"
)

// Slot identifies which of the cache's three segments currently hosts
// a page.
type Slot int

const (
	Window Slot = iota
	Probationary
	Protected
)

type entry[K comparable, V any] struct {
	slot Slot
	pos  *segment.Node[K, V]
}

// Cache is a bounded, in-memory Window-TinyLFU cache.
type Cache[K comparable, V any] struct {
	window *segment.Segment[K, V]
	main   *slru.SLRU[K, V]
	freq   *sketch.Sketch
	index  map[K]*entry[K, V]
	hasher func(K) uint32

	hits   int
	misses int
}

// New constructs a Cache with the given total capacity, which must be
// > 0. Returns a *DomainError if capacity <= 0.
func New[K comparable, V any](capacity int, opts ...Option[K, V]) (*Cache[K, V], error) {
	if capacity <= 0 {
		return nil, newDomainError(capacity, "wtinylfu: capacity must be greater than zero")
	}

	cfg := &config[K, V]{}
	for _, opt := range opts {
		opt(cfg)
	}
	if cfg.hasher == nil {
		if h, ok := hashutil.DefaultHasher[K](); ok {
			cfg.hasher = h
		} else {
			return nil, newDomainError(0, "wtinylfu: key type has no default hasher, supply WithHasher")
		}
	}

	windowCap, mainCap := splitCapacity(capacity)

	c := &Cache[K, V]{
		window: segment.New[K, V](windowCap),
		main:   slru.New[K, V](mainCap),
		freq:   sketch.New(capacity),
		index:  make(map[K]*entry[K, V], capacity),
		hasher: cfg.hasher,
	}
	return c, nil
}

// splitCapacity computes the Window and main (SLRU) capacities from a
// total capacity: the Window gets max(1, ceil(1% of total)), and the
// main cache gets the remainder, so the two always sum exactly to
// capacity.
func splitCapacity(capacity int) (window, main int) {
	window = int(math.Ceil(0.01 * float64(capacity)))
	if window < 1 {
		window = 1
	}
	return window, capacity - window
}

// Size returns the current number of entries held.
func (c *Cache[K, V]) Size() int {
	return len(c.index)
}

// Capacity returns the cache's total configured capacity.
func (c *Cache[K, V]) Capacity() int {
	return c.window.Capacity() + c.main.Capacity()
}

// Hits returns the number of Get calls that found their key.
func (c *Cache[K, V]) Hits() int { return c.hits }

// Misses returns the number of Get calls that did not find their key.
func (c *Cache[K, V]) Misses() int { return c.misses }

// Contains reports whether key is present, without recording an
// access in the frequency sketch and without affecting hit/miss
// counters or recency.
func (c *Cache[K, V]) Contains(key K) bool {
	_, ok := c.index[key]
	return ok
}

// Get looks up key. Every call — hit or miss — records an access in
// the frequency sketch, since the estimator needs miss traffic too to
// judge future admissions. On a hit, the hosting segment promotes the
// page per its own recency rule.
func (c *Cache[K, V]) Get(key K) (V, bool) {
	c.freq.RecordAccess(c.hasher(key))

	e, ok := c.index[key]
	if !ok {
		c.misses++
		var zero V
		return zero, false
	}

	c.onHit(key, e)
	c.hits++
	return e.pos.Value(), true
}

func (c *Cache[K, V]) onHit(key K, e *entry[K, V]) {
	switch e.slot {
	case Window:
		c.window.Promote(e.pos)
	case Probationary:
		demoted, didDemote := c.main.OnHit(e.pos, slru.Probationary)
		e.slot = Protected
		if didDemote {
			c.index[demoted.Key()].slot = Probationary
		}
	case Protected:
		c.main.OnHit(e.pos, slru.Protected)
	}
}

// Insert stores value under key. If key is already present, its
// value is overwritten in place without changing its segment or
// recency. Otherwise a new page is created at the Window MRU
// position, running the eviction cycle first if the Window is full.
func (c *Cache[K, V]) Insert(key K, value V) {
	if e, ok := c.index[key]; ok {
		e.pos.SetValue(value)
		return
	}

	if c.window.IsFull() {
		c.evict()
	}

	pos := c.window.InsertMRU(key, value)
	c.index[key] = &entry[K, V]{slot: Window, pos: pos}
}

// evict runs the eviction cycle: it assumes the Window is full and a
// new page is about to be inserted.
func (c *Cache[K, V]) evict() {
	if c.main.Capacity() == 0 {
		// Degenerate capacity (total capacity 1): the main cache can
		// never hold anything, so there is no victim to contest
		// against — every insert simply displaces the Window's
		// current occupant.
		c.evictWindowVictim()
		return
	}

	totalSize := len(c.index)
	totalCapacity := c.window.Capacity() + c.main.Capacity()

	if totalSize < totalCapacity {
		// The Window is full but the main cache still has room: the
		// window victim is unconditionally admitted.
		c.admitWindowVictim()
		return
	}

	windowVictimKey := c.window.LRU().Key()
	mainVictimKey := c.main.VictimKey()
	w := c.freq.Frequency(c.hasher(windowVictimKey))
	m := c.freq.Frequency(c.hasher(mainVictimKey))

	if w > m {
		c.evictMainVictim()
		c.admitWindowVictim()
	} else {
		c.evictWindowVictim()
	}
}

func (c *Cache[K, V]) admitWindowVictim() {
	wVictim := c.window.LRU()
	key := wVictim.Key()
	c.main.AdmitFromWindow(wVictim, c.window)
	c.index[key].slot = Probationary
}

func (c *Cache[K, V]) evictWindowVictim() {
	victim := c.window.Evict()
	delete(c.index, victim.Key())
}

func (c *Cache[K, V]) evictMainVictim() {
	victim := c.main.Evict()
	delete(c.index, victim.Key())
}

// GetOrLoad returns the value for key, calling loader to produce and
// insert it on a miss. The loader runs only on a confirmed miss; if
// it returns an error, that error is wrapped in a *LoaderError and the
// cache is left unmodified.
func (c *Cache[K, V]) GetOrLoad(key K, loader func(K) (V, error)) (V, error) {
	if value, ok := c.Get(key); ok {
		return value, nil
	}

	value, err := loader(key)
	if err != nil {
		var zero V
		return zero, newLoaderError(err)
	}

	c.Insert(key, value)
	return value, nil
}

// Erase removes key, if present.
func (c *Cache[K, V]) Erase(key K) {
	e, ok := c.index[key]
	if !ok {
		return
	}
	switch e.slot {
	case Window:
		c.window.Erase(e.pos)
	case Probationary:
		c.main.Erase(e.pos, slru.Probationary)
	case Protected:
		c.main.Erase(e.pos, slru.Protected)
	}
	delete(c.index, key)
}

// ChangeCapacity resizes the cache. It clears the frequency sketch's
// history — the hit rate will degrade transiently until it rebuilds —
// recomputes the Window/main split, and drains any resulting
// overflow. Returns a *DomainError if n <= 0, leaving the cache
// unchanged.
func (c *Cache[K, V]) ChangeCapacity(n int) error {
	if n <= 0 {
		return newDomainError(n, "wtinylfu: capacity must be greater than zero")
	}

	c.freq.ChangeCapacity(n)

	windowCap, mainCap := splitCapacity(n)
	c.window.SetCapacity(windowCap)
	c.main.SetCapacity(mainCap)

	for c.window.Size() > c.window.Capacity() {
		c.evictWindowVictim()
	}
	// Drain until the main cache fits its capacity and Protected fits
	// its own; Probationary may still hold more than its own share.
	for c.main.Size() > c.main.Capacity() || c.main.ProtectedSize() > c.main.ProtectedCap() {
		victim, _ := c.main.EvictOverflow()
		delete(c.index, victim.Key())
	}
	return nil
}
