// Package taskqueue implements the bounded FIFO queue a server holds
// pending edits in before they are drained into the document store.
//
// The queue is a fixed-capacity ring buffer over a preallocated slice:
// head and tail indices wrap modulo the capacity, avoiding the
// allocation churn of a growing slice or linked list for a structure
// that is, by this system's own documented workload assumption, never
// expected to hold more than a few pending edits between reads. The
// shape is the same index-arithmetic ring buffer used by LMAX-disruptor-
// style lock-free queues; the atomics and multi-producer coordination
// those use are dropped here, since the document store's scheduling
// model (see internal/docserver and its single-threaded cooperative
// execution) never has more than one caller touching a queue at a time.
package taskqueue
