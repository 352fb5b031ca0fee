// Package hashring implements the sorted sequence of server ring entries
// that document ownership is computed against: the smallest entry whose
// hash is at least the query hash, wrapping around to the first entry
// otherwise.
//
// Entries are kept sorted by (hash, id) ascending in a single slice.
// Lookups and insertion points are found with a binary search
// (golang.org/x/exp/slices.BinarySearchFunc) rather than a linear scan —
// the same package torua's own coordinator already imports for working
// with ordered/searchable slices of nodes, extended here from the
// linear IndexFunc it uses to the sorted-insertion BinarySearchFunc this
// component's ordering invariant calls for.
//
// Multiple entries may point at the same primary server when virtual
// nodes are enabled: a primary's own entry, plus one for each of its two
// replicas at id+100000 and id+200000. The ring only ever stores a thin
// (id, hash, *docserver.Server) triple per entry; which entries share a
// primary is discovered through docserver.Server.PrimaryID, never by the
// ring inspecting server internals.
package hashring
