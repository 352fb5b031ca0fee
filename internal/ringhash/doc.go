// Package ringhash provides the two stable, non-cryptographic hash
// functions that document names and server ids are mapped through before
// they ever touch the consistent-hash ring in internal/hashring.
//
// Both functions must be byte-exact and deterministic across process
// restarts and across machines: ring placement, and therefore which
// server owns which document, depends entirely on their output. Swapping
// either for a faster or "better distributed" hash would silently change
// which server a given document name lands on, which is why this package
// pins the exact algorithms rather than deferring to hash/maphash or a
// third-party hash library whose output is not contractually stable.
//
// HashString and HashUint are deliberately unrelated mixing functions.
// Using the same algorithm for both document names and server ids would
// mean a document name and a server id that happen to be equal byte
// sequences always land at the same ring position; keeping them distinct
// makes that coincidence depend on two independent hash outputs agreeing,
// not one.
package ringhash
