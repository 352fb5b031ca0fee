// Package balancer implements the load balancer that owns the hash ring
// and routes every request to the server that should answer it, adding
// and removing servers with key redistribution.
//
// # Responsibilities
//
//	┌────────────────────────────────────────┐
//	│             LoadBalancer                │
//	├────────────────────────────────────────┤
//	│  ring: hashring.Ring                    │
//	│  primaries: map[id]*docserver.Server    │
//	│  vnodesEnabled: bool                    │
//	├────────────────────────────────────────┤
//	│  AddServer    → insert + redistribute   │
//	│  RemoveServer → drain + merge + remove  │
//	│  Route        → hash → successor →      │
//	│                 (vnode read rule) →     │
//	│                 server.HandleRequest    │
//	└────────────────────────────────────────┘
//
// AddServer and RemoveServer are the only operations that mutate the
// ring; both drain the affected donor's pending edits before moving any
// of its store, which is what guarantees read-your-writes across a
// rebalance. Route never mutates the ring — it only ever asks
// it for a successor and, for reads under virtual nodes, a same-primary
// neighbor — and then lets the chosen docserver.Server do its own cache,
// store, and queue bookkeeping.
package balancer
