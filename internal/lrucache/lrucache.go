package lrucache

import (
	"container/list"
	"fmt"
)

// entry is the value stored in the recency list; its list.Element is the
// stable handle kept in the map so a hit can splice to the back in O(1)
// without a scan.
type entry[V any] struct {
	key   string
	value V
}

// Cache is a fixed-capacity, least-recently-used map. It is used
// unsynchronized: the document store's single-threaded cooperative model
// (see internal/docserver) means no Cache instance is ever touched by more
// than one in-flight request at a time.
type Cache[V any] struct {
	capacity int
	items    map[string]*list.Element
	order    *list.List // front = least recently used, back = most recently used
}

// New creates a Cache with the given capacity. Capacity must be at least
// 1; New panics otherwise, since a zero-capacity cache has no
// sensible eviction behavior.
func New[V any](capacity int) *Cache[V] {
	if capacity < 1 {
		panic(fmt.Sprintf("lrucache: capacity must be >= 1, got %d", capacity))
	}
	return &Cache[V]{
		capacity: capacity,
		items:    make(map[string]*list.Element, capacity),
		order:    list.New(),
	}
}

// Len reports the number of keys currently held.
func (c *Cache[V]) Len() int {
	return len(c.items)
}

// IsFull reports whether the cache is at capacity.
func (c *Cache[V]) IsFull() bool {
	return len(c.items) == c.capacity
}

// Put inserts or updates key with value.
//
//   - If key is already present, its value is overwritten and it moves to
//     the back of recency; no eviction occurs, even if the new value is
//     identical to the old one — a touch always counts as a use.
//   - If key is absent and the cache has room, it is inserted at the
//     back of recency.
//   - If key is absent and the cache is full, the front-of-recency key is
//     evicted first, then the new key is inserted at the back. The
//     evicted key is returned so the caller can log it; evicted is true
//     only in this case.
func (c *Cache[V]) Put(key string, value V) (evictedKey string, evicted bool) {
	if el, ok := c.items[key]; ok {
		el.Value.(*entry[V]).value = value
		c.order.MoveToBack(el)
		return "", false
	}

	if len(c.items) >= c.capacity {
		front := c.order.Front()
		if front != nil {
			evictedKey = front.Value.(*entry[V]).key
			evicted = true
			c.order.Remove(front)
			delete(c.items, evictedKey)
		}
	}

	el := c.order.PushBack(&entry[V]{key: key, value: value})
	c.items[key] = el
	return evictedKey, evicted
}

// Get returns the value for key and moves it to the back of recency. ok is
// false if key is absent, in which case value is the zero value of V.
func (c *Cache[V]) Get(key string) (value V, ok bool) {
	el, present := c.items[key]
	if !present {
		var zero V
		return zero, false
	}
	c.order.MoveToBack(el)
	return el.Value.(*entry[V]).value, true
}

// Contains reports whether key is present without affecting recency. It is
// used to distinguish a cache hit from a miss before deciding which
// eviction/log path applies, without the side effect Get has on ordering.
func (c *Cache[V]) Contains(key string) bool {
	_, ok := c.items[key]
	return ok
}

// Remove deletes key from the cache. It is a no-op if key is absent.
func (c *Cache[V]) Remove(key string) {
	el, ok := c.items[key]
	if !ok {
		return
	}
	c.order.Remove(el)
	delete(c.items, key)
}

// Keys returns every key currently held, in least-to-most-recently-used
// order. It is used by the load balancer when redistributing a server's
// store across the ring; callers must not mutate the returned slice.
func (c *Cache[V]) Keys() []string {
	keys := make([]string, 0, len(c.items))
	for el := c.order.Front(); el != nil; el = el.Next() {
		keys = append(keys, el.Value.(*entry[V]).key)
	}
	return keys
}
