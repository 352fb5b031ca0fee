package balancer

import (
	"io"
	"log"

	"github.com/dreamware/docstore/internal/docserver"
	"github.com/dreamware/docstore/internal/hashring"
	"github.com/dreamware/docstore/internal/ringhash"
)

// replicaOffsetPrimary and replicaOffsetSecondary are the fixed id
// offsets a primary's two virtual nodes are placed at.
const (
	replicaOffsetPrimary   = 100000
	replicaOffsetSecondary = 200000
)

// logFatal is a variable, not a direct call, so tests can substitute a
// non-terminating stand-in for the EmptyRing diagnostic path — the same
// indirection torua/cmd/node/main.go uses around log.Fatalf.
var logFatal = log.Fatalf

// LoadBalancer owns the ring and every server on it, and is the single
// entry point requests are issued against.
type LoadBalancer struct {
	ring          *hashring.Ring
	primaries     map[uint32]*docserver.Server
	vnodesEnabled bool
	logSink       io.Writer
}

// New constructs an empty LoadBalancer. logSink receives the drained
// response transcript produced by every read (it may be nil to discard
// it); vnodesEnabled turns on the 3x virtual-node replication factor.
func New(vnodesEnabled bool, logSink io.Writer) *LoadBalancer {
	return &LoadBalancer{
		ring:          hashring.New(),
		primaries:     make(map[uint32]*docserver.Server),
		vnodesEnabled: vnodesEnabled,
		logSink:       logSink,
	}
}

// VnodesEnabled reports whether this balancer places virtual node
// replicas on the ring.
func (lb *LoadBalancer) VnodesEnabled() bool {
	return lb.vnodesEnabled
}

// RingEntries returns a snapshot of the ring, for inspection/tests.
func (lb *LoadBalancer) RingEntries() []hashring.RingEntry {
	return lb.ring.Entries()
}

// PrimaryByID returns the primary server registered under id, if any.
func (lb *LoadBalancer) PrimaryByID(id uint32) (*docserver.Server, bool) {
	s, ok := lb.primaries[id]
	return s, ok
}

// AddServer constructs a primary server with the given hot-cache size
// (its authoritative store is sized cacheSize*1000) and places it, and —
// if virtual nodes are enabled — its two replicas, on the ring.
//
// A duplicate id is a no-op: re-insertion of an existing (hash, id) is
// undefined, and the scripts this system is driven by never attempt it,
// so the safest Go behavior is to refuse silently rather than corrupt the
// ring.
func (lb *LoadBalancer) AddServer(id uint32, cacheSize int) {
	if _, exists := lb.primaries[id]; exists {
		return
	}

	primary := docserver.NewServer(id, cacheSize)
	reserve := 1
	if lb.vnodesEnabled {
		reserve = 3
	}
	lb.ring.Reserve(reserve)

	primaryEntry := hashring.RingEntry{ID: primary.ID, Hash: primary.Hash, Server: primary}
	if lb.ring.Len() == 0 {
		// Seeding: the ring is empty, so there is no donor and nothing to
		// redistribute.
		lb.ring.Insert(primaryEntry)
	} else {
		lb.generalInsert(primaryEntry)
	}
	lb.primaries[id] = primary

	if lb.vnodesEnabled {
		v1 := docserver.NewVirtualNode(id+replicaOffsetPrimary, primary)
		v2 := docserver.NewVirtualNode(id+replicaOffsetSecondary, primary)
		lb.generalInsert(hashring.RingEntry{ID: v1.ID, Hash: v1.Hash, Server: v1})
		lb.generalInsert(hashring.RingEntry{ID: v2.ID, Hash: v2.Hash, Server: v2})
	}
}

// generalInsert places x on the ring and migrates the subset of its
// donor's keys that shouldRedistribute says now belong to whoever the
// ring's successor lookup resolves them to.
func (lb *LoadBalancer) generalInsert(x hashring.RingEntry) {
	idx := lb.ring.Insert(x)
	n := lb.ring.Len()
	if n < 2 {
		return // nothing to redistribute from
	}

	donorEntry := lb.ring.At((idx + 1) % n)
	donor := donorEntry.Server.PrimaryServer()
	donor.Drain(nil)

	for _, key := range donor.Store.Keys() {
		kh := ringhash.HashString(key)
		kEntry, ok := lb.ring.Successor(kh)
		if !ok {
			continue
		}
		if kEntry.Server.PrimaryID() == donor.ID {
			continue // ownership unchanged
		}
		if !shouldRedistribute(idx, n, donorEntry.Hash, x.Hash, kh) {
			continue
		}

		value, ok := donor.Store.Get(key)
		if !ok {
			continue
		}
		newOwner := kEntry.Server.PrimaryServer()
		newOwner.Store.Put(key, value)
		donor.Store.Remove(key)
		donor.Cache.Remove(key)
	}
}

// shouldRedistribute decides, given the donor's and the new entry's ring
// position, whether a key's new successor really takes ownership of it.
// It is kept as a direct neighborhood test rather than rewritten as a
// textbook consistent-hash arc check: for idx==0 the new entry's arc wraps
// around the end of the ring, so a key qualifies either by falling above
// the donor's hash or at/below the new entry's; for idx==n-1 the arc is
// the ordinary bounded interval between donor and new entry; any middle
// insertion only ever claims the interval up to its own hash. Each branch
// tracks exactly what the ring's own successor lookup would resolve a key
// to after the insertion, for that position.
func shouldRedistribute(idx, n int, sHash, xHash, kh uint32) bool {
	switch {
	case idx == 0:
		return kh > sHash || kh <= xHash
	case idx == n-1:
		return kh > sHash && kh <= xHash
	default:
		return kh <= xHash
	}
}

// RemoveServer drains and removes the primary server registered under id,
// along with its virtual nodes, donating its store to the ring successor
// of each of its entries before the entries are removed. An unknown id is
// a silent no-op.
func (lb *LoadBalancer) RemoveServer(id uint32) {
	primary, ok := lb.primaries[id]
	if !ok {
		return
	}

	primary.Drain(nil)

	if lb.vnodesEnabled {
		lb.donateToReplicaSuccessors(primary)
	}

	if idx := lb.ring.IndexOfID(primary.ID); idx >= 0 {
		if succEntry, ok := lb.ring.NextDistinctPrimary(idx, primary.ID); ok {
			succPrimary := succEntry.Server.PrimaryServer()
			for _, key := range primary.Store.Keys() {
				if value, ok := primary.Store.Get(key); ok {
					succPrimary.Store.Put(key, value)
					primary.Store.Remove(key)
				}
			}
		}
	}

	for _, e := range lb.ring.EntriesForPrimary(primary.ID) {
		lb.ring.RemoveByID(e.ID)
	}

	primary.Free()
	delete(lb.primaries, id)
	lb.ring.ShrinkToFit()
}

// donateToReplicaSuccessors implements the vnode remove_replicas step:
// for each of the outgoing primary's two virtual nodes, its own ring
// successor (skipping entries that already belong to this primary)
// receives a full copy of the outgoing primary's store. Nothing is
// removed here — the outgoing store is only trimmed once, by the
// primary's-own-successor step that follows — so a primary with virtual
// nodes enabled deliberately leaves its data duplicated across all three
// arcs' successors, matching the original consistent-hash donation
// behavior this balancer implements.
func (lb *LoadBalancer) donateToReplicaSuccessors(primary *docserver.Server) {
	for _, vid := range [2]uint32{primary.ID + replicaOffsetPrimary, primary.ID + replicaOffsetSecondary} {
		vIdx := lb.ring.IndexOfID(vid)
		if vIdx < 0 {
			continue
		}
		succEntry, ok := lb.ring.NextDistinctPrimary(vIdx, primary.ID)
		if !ok {
			continue
		}
		succPrimary := succEntry.Server.PrimaryServer()
		for _, key := range primary.Store.Keys() {
			if value, ok := primary.Store.Get(key); ok {
				succPrimary.Store.Put(key, value)
			}
		}
	}
}

// Route sends req to the server the ring names as owner of its document
// name and returns the resulting Response.
func (lb *LoadBalancer) Route(req docserver.Request) docserver.Response {
	q := ringhash.HashString(req.DocName)
	entry, ok := lb.ring.Successor(q)
	if !ok {
		// Cannot occur for a well-formed script; if it does, terminate
		// with a diagnostic rather than return a response with no server
		// behind it.
		logFatal("balancer: Route called against an empty ring")
		return docserver.Response{}
	}

	if lb.vnodesEnabled && req.Kind == docserver.Read {
		if next, ok := lb.ring.NextOwnHashAbove(entry, q); ok {
			entry = next
		}
	}

	return entry.Server.HandleRequest(req, lb.logSink)
}
