// Package cache provides the fixed capacity LRU used to memoize suggestion queries.
//
// Entries live in a flat arena and link to each other by slot index, so moving an
// entry to the most recently used end is a handful of integer writes and there are
// no pointer cycles. Slot 0 is the head sentinel (MRU side) and slot 1 the tail
// sentinel (LRU side). Freed slots are recycled through a free list.
package cache

import (
	"fmt"
	"sync"
)

const (
	head = 0
	tail = 1
)

type slot[V any] struct {
	key   string
	value V
	prev  int
	next  int
}

// Stats is a point in time view of the cache counters.
type Stats struct {
	Capacity    int
	Size        int
	Hits        uint64
	Misses      uint64
	Evictions   uint64
	HitRate     float64 // percent of Get calls that hit, 0 before the first Get
	Utilization float64 // percent of capacity in use
}

// LRU is safe for concurrent use. Every operation holds a single mutex, so a Get miss
// followed by a Set from two goroutines can at worst store the same key twice.
type LRU[V any] struct {
	mu       sync.Mutex
	capacity int
	slots    []slot[V]
	free     []int
	index    map[string]int

	hits      uint64
	misses    uint64
	evictions uint64
}

// New returns an empty cache holding at most capacity entries.
func New[V any](capacity int) (*LRU[V], error) {
	if capacity < 1 {
		return nil, &ConfigError{Capacity: capacity}
	}
	c := &LRU[V]{capacity: capacity}
	c.reset()
	return c, nil
}

// Get returns the value for key and marks it most recently used.
func (c *LRU[V]) Get(key string) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	i, ok := c.index[key]
	if !ok {
		c.misses++
		var zero V
		return zero, false
	}
	c.hits++
	c.moveToFront(i)
	return c.slots[i].value, true
}

// Set stores value under key as the most recently used entry, evicting the least
// recently used entry when a new key arrives at capacity.
func (c *LRU[V]) Set(key string, value V) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if i, ok := c.index[key]; ok {
		c.slots[i].value = value
		c.moveToFront(i)
		return
	}

	if len(c.index) >= c.capacity {
		c.evict()
	}

	i := c.alloc()
	c.slots[i].key = key
	c.slots[i].value = value
	c.linkFront(i)
	c.index[key] = i
	c.check()
}

// Has reports whether key is cached. Recency and counters are left alone.
func (c *LRU[V]) Has(key string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.index[key]
	return ok
}

// Peek returns the value for key without touching recency or counters.
func (c *LRU[V]) Peek(key string) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	i, ok := c.index[key]
	if !ok {
		var zero V
		return zero, false
	}
	return c.slots[i].value, true
}

// Delete removes key and reports whether it was present.
func (c *LRU[V]) Delete(key string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	i, ok := c.index[key]
	if !ok {
		return false
	}
	c.unlink(i)
	delete(c.index, key)
	c.release(i)
	c.check()
	return true
}

// Clear drops every entry. Hit, miss and eviction counters survive; use ResetStats.
func (c *LRU[V]) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.reset()
}

// ResetStats zeroes the hit, miss and eviction counters.
func (c *LRU[V]) ResetStats() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.hits, c.misses, c.evictions = 0, 0, 0
}

// Keys returns the cached keys from most to least recently used.
func (c *LRU[V]) Keys() []string {
	c.mu.Lock()
	defer c.mu.Unlock()

	keys := make([]string, 0, len(c.index))
	for i := c.slots[head].next; i != tail; i = c.slots[i].next {
		keys = append(keys, c.slots[i].key)
	}
	return keys
}

// Len returns the number of cached entries.
func (c *LRU[V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.index)
}

// Cap returns the configured capacity.
func (c *LRU[V]) Cap() int {
	return c.capacity
}

// Stats returns the current counters.
func (c *LRU[V]) Stats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()

	size := len(c.index)
	hitRate := 0.0
	if total := c.hits + c.misses; total > 0 {
		hitRate = float64(c.hits) / float64(total) * 100
	}
	return Stats{
		Capacity:    c.capacity,
		Size:        size,
		Hits:        c.hits,
		Misses:      c.misses,
		Evictions:   c.evictions,
		HitRate:     hitRate,
		Utilization: float64(size) / float64(c.capacity) * 100,
	}
}

func (c *LRU[V]) reset() {
	c.slots = make([]slot[V], 2, c.capacity+2)
	c.slots[head] = slot[V]{prev: head, next: tail}
	c.slots[tail] = slot[V]{prev: head, next: tail}
	c.free = c.free[:0]
	c.index = make(map[string]int, c.capacity)
}

func (c *LRU[V]) alloc() int {
	if n := len(c.free); n > 0 {
		i := c.free[n-1]
		c.free = c.free[:n-1]
		return i
	}
	c.slots = append(c.slots, slot[V]{})
	return len(c.slots) - 1
}

func (c *LRU[V]) release(i int) {
	c.slots[i] = slot[V]{}
	c.free = append(c.free, i)
}

func (c *LRU[V]) evict() {
	victim := c.slots[tail].prev
	if victim == head {
		panic("cache: evict called on an empty recency list")
	}
	c.unlink(victim)
	delete(c.index, c.slots[victim].key)
	c.release(victim)
	c.evictions++
}

func (c *LRU[V]) linkFront(i int) {
	first := c.slots[head].next
	c.slots[i].prev = head
	c.slots[i].next = first
	c.slots[first].prev = i
	c.slots[head].next = i
}

func (c *LRU[V]) unlink(i int) {
	prev, next := c.slots[i].prev, c.slots[i].next
	c.slots[prev].next = next
	c.slots[next].prev = prev
}

func (c *LRU[V]) moveToFront(i int) {
	if c.slots[head].next == i {
		return
	}
	c.unlink(i)
	c.linkFront(i)
}

// check panics when the index and the arena disagree about the live entry count.
func (c *LRU[V]) check() {
	live := len(c.slots) - 2 - len(c.free)
	if live != len(c.index) || live > c.capacity {
		panic(fmt.Sprintf("cache: %d linked entries, %d indexed, capacity %d", live, len(c.index), c.capacity))
	}
}
