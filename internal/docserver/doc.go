// Package docserver implements a single document-store server: a hot
// read cache in front of a much larger authoritative store, and a
// deferred-execution queue of pending edits drained to consistency
// before any read is answered.
//
// # Architecture
//
//	┌─────────────────────────────────────┐
//	│               Server                │
//	├─────────────────────────────────────┤
//	│  cache: lrucache.Cache (small, hot)  │
//	│  store: lrucache.Cache (cs*1000)     │
//	│  queue: taskqueue.TaskQueue          │
//	│  primary: *Server (nil unless a      │
//	│           virtual node)              │
//	└─────────────────────────────────────┘
//
// A server constructed with NewVirtualNode owns none of the above: its
// Cache, Store, and Queue fields are nil and every state operation is
// forwarded to Primary, a thin alias that exists only to occupy an extra
// ring position. Only ID and Hash differ between a primary and its
// virtual nodes; the forwarding
// itself happens in the unexported resolvePrimary method so every
// other method on Server can stay oblivious to whether it was called
// through a primary or a replica.
//
// # Request handling
//
// EDIT enqueues a copy of the request and returns immediately with an
// acknowledgement; it never touches the cache or store synchronously.
// GET drains the full pending queue first — executing each queued edit
// in order and printing its response to the caller-supplied log sink —
// and only then answers from cache, falling back to store. This is the
// "lazy edit" engine the rest of the system depends on for
// read-your-writes.
package docserver
