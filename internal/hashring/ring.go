package hashring

import (
	"golang.org/x/exp/slices"

	"github.com/dreamware/docstore/internal/docserver"
)

// RingEntry is one placement on the hash ring: an id and hash (which may
// belong to a primary server or one of its virtual nodes) and the server
// that answers requests routed here.
type RingEntry struct {
	ID     uint32
	Hash   uint32
	Server *docserver.Server
}

// Ring is the sorted sequence of RingEntry values, ordered by (hash
// ascending, id ascending), with wraparound successor lookup.
type Ring struct {
	entries []RingEntry
}

// New returns an empty ring.
func New() *Ring {
	return &Ring{}
}

// Len reports the number of entries on the ring.
func (r *Ring) Len() int {
	return len(r.entries)
}

// At returns the entry at ring index i. Callers are expected to have a
// valid index (e.g. one returned by Insert or IndexOfID); it panics like
// any out-of-range slice index otherwise.
func (r *Ring) At(i int) RingEntry {
	return r.entries[i]
}

// Entries returns a copy of the ring's entries in ring order. Callers
// must not rely on mutating it to affect the ring.
func (r *Ring) Entries() []RingEntry {
	out := make([]RingEntry, len(r.entries))
	copy(out, r.entries)
	return out
}

func compareEntries(a, b RingEntry) int {
	if a.Hash != b.Hash {
		if a.Hash < b.Hash {
			return -1
		}
		return 1
	}
	if a.ID != b.ID {
		if a.ID < b.ID {
			return -1
		}
		return 1
	}
	return 0
}

// ShrinkToFit trims the ring's capacity once live entries drop below half
// of the allocated capacity: slices.Clip lowers the slice's capacity to
// its current length. Clip does not reallocate, so the existing backing
// array stays referenced until a later append outgrows it.
func (r *Ring) ShrinkToFit() {
	if cap(r.entries) > 0 && len(r.entries) < cap(r.entries)/2 {
		r.entries = slices.Clip(r.entries)
	}
}

// Reserve grows the backing storage to hold at least n more entries
// without changing Len — used to guarantee free slots for a server and
// its virtual nodes before an add-server call. slices.Grow amortizes the
// same way a manual doubling scheme would, so there is no separate
// capacity field to track by hand.
func (r *Ring) Reserve(n int) {
	r.entries = slices.Grow(r.entries, n)
}

// Insert places entry in sorted order and returns the index it landed
// at. The index is how callers (see internal/balancer) determine entry's
// position relative to its neighbors: 0 means entry became the new
// front, len(ring)-1 after insertion means entry was appended at the
// end, anything else is a middle insertion.
//
// Duplicate (hash, id) pairs are undefined behavior; Insert does not
// guard against them.
func (r *Ring) Insert(entry RingEntry) int {
	idx, _ := slices.BinarySearchFunc(r.entries, entry, compareEntries)
	r.entries = append(r.entries, RingEntry{})
	copy(r.entries[idx+1:], r.entries[idx:])
	r.entries[idx] = entry
	return idx
}

// Successor returns the smallest entry with Hash >= hash, wrapping to
// index 0 if no such entry exists. ok is false only when the ring is
// empty.
func (r *Ring) Successor(hash uint32) (RingEntry, bool) {
	if len(r.entries) == 0 {
		return RingEntry{}, false
	}
	idx, _ := slices.BinarySearchFunc(r.entries, hash, func(e RingEntry, h uint32) int {
		switch {
		case e.Hash < h:
			return -1
		case e.Hash > h:
			return 1
		default:
			return 0
		}
	})
	if idx == len(r.entries) {
		idx = 0
	}
	return r.entries[idx], true
}

// IndexOfID returns the index of the entry with the given own id (a
// primary's id or one of its virtual node ids), or -1 if absent.
func (r *Ring) IndexOfID(id uint32) int {
	return slices.IndexFunc(r.entries, func(e RingEntry) bool { return e.ID == id })
}

// RemoveByID removes the single entry with the given own id. ok is false
// if no such entry exists.
func (r *Ring) RemoveByID(id uint32) (RingEntry, bool) {
	idx := r.IndexOfID(id)
	if idx < 0 {
		return RingEntry{}, false
	}
	removed := r.entries[idx]
	r.entries = append(r.entries[:idx], r.entries[idx+1:]...)
	return removed, true
}

// EntriesForPrimary returns every entry (primary and virtual) whose
// underlying primary id matches primaryID, in ring order.
func (r *Ring) EntriesForPrimary(primaryID uint32) []RingEntry {
	var out []RingEntry
	for _, e := range r.entries {
		if e.Server.PrimaryID() == primaryID {
			out = append(out, e)
		}
	}
	return out
}

// NextOwnHashAbove implements the vnode read-routing rule: starting at
// e's own ring position and walking forward (wrapping),
// return the first entry that shares e's primary id and whose own hash
// strictly exceeds q. e itself is included as the first candidate
// checked, so it is returned unchanged when its own hash already exceeds
// q. ok is false if no entry sharing e's primary id has a hash above q,
// in which case the caller should retain e as-is.
func (r *Ring) NextOwnHashAbove(e RingEntry, q uint32) (RingEntry, bool) {
	n := len(r.entries)
	if n == 0 {
		return RingEntry{}, false
	}
	eIdx := r.IndexOfID(e.ID)
	if eIdx < 0 {
		return RingEntry{}, false
	}
	primaryID := e.Server.PrimaryID()
	for i := 0; i < n; i++ {
		idx := (eIdx + i) % n
		cand := r.entries[idx]
		if cand.Server.PrimaryID() != primaryID {
			continue
		}
		if cand.Hash > q {
			return cand, true
		}
	}
	return RingEntry{}, false
}

// NextDistinctPrimary walks forward from the entry at index start
// (exclusive), wrapping around, and returns the first entry whose
// primary id differs from excludePrimaryID. ok is false if every entry on
// the ring shares that primary (or the ring is empty).
func (r *Ring) NextDistinctPrimary(start int, excludePrimaryID uint32) (RingEntry, bool) {
	n := len(r.entries)
	if n == 0 {
		return RingEntry{}, false
	}
	for i := 1; i <= n; i++ {
		idx := (start + i) % n
		if r.entries[idx].Server.PrimaryID() != excludePrimaryID {
			return r.entries[idx], true
		}
	}
	return RingEntry{}, false
}
