package math32

import (
	"container/list"
	"sync"
)

// Cache is a generic LRU cache structure.
type Cache[K comparable, V any] struct {
	capacity int
	ll       *list.List          // Doubly linked list to store elements
	cache    map[K]*list.Element // Hash table for fast lookup
	mu       sync.Mutex          // Mutex to ensure thread safety
	hits     int64               // Cache hit count
	misses   int64               // Cache miss count
}

// entry is the entry structure in the cache.
type entry[K comparable, V any] struct {
	key   K
	value V
}

// NewCache creates a new LRU cache, capacity must be greater than 0.
func NewCache[K comparable, V any](capacity int) *Cache[K, V] {
	if capacity <= 0 {
		panic("lru: capacity must be greater than 0")
	}
	return &Cache[K, V]{
		capacity: capacity,
		ll:       list.New(),
		cache:    make(map[K]*list.Element),
	}
}

// Get gets the value from the cache, if it exists, returns the value and true,
// otherwise returns zero value and false.
func (c *Cache[K, V]) Get(key K) (value V, ok bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	el, ok := c.cache[key]
	if !ok {
		c.misses++
		return
	}

	// Move the accessed element to the head of the list (most recently used).
	c.ll.MoveToFront(el)
	c.hits++
	return el.Value.(*entry[K, V]).value, true
}

// Put puts the value into the cache.
func (c *Cache[K, V]) Put(key K, value V) {
	c.mu.Lock()
	defer c.mu.Unlock()

	// If the key exists, update the value and move it to the head of the list.
	if el, ok := c.cache[key]; ok {
		el.Value.(*entry[K, V]).value = value
		c.ll.MoveToFront(el)
		return
	}

	// Create a new entry and add it to the head of the list.
	newEntry := &entry[K, V]{key, value}
	element := c.ll.PushFront(newEntry)
	c.cache[key] = element

	// If the capacity is exceeded, remove the element at the tail of the list
	// (least recently used).
	if c.ll.Len() > c.capacity {
		c.removeOldest()
	}
}

// removeOldest removes the least recently used element.
func (c *Cache[K, V]) removeOldest() {
	el := c.ll.Back()
	if el == nil {
		return
	}

	c.ll.Remove(el)
	kv := el.Value.(*entry[K, V])
	delete(c.cache, kv.key)
}

// Len returns the number of elements in the cache.
func (c *Cache[K, V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.ll.Len()
}

// Capacity returns the capacity of the cache.
func (c *Cache[K, V]) Capacity() int {
	return c.capacity
}

// Clear clears the cache.
func (c *Cache[K, V]) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.ll.Init()
	for k := range c.cache {
		delete(c.cache, k)
	}
}

// Hits returns the cache hit count.
func (c *Cache[K, V]) Hits() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.hits
}

// Misses returns the cache miss count.
func (c *Cache[K, V]) Misses() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.misses
}
