package ringhash

// HashString computes a 32-bit Jenkins one-at-a-time hash of name.
//
// This is the hash used to place document names on the ring (see
// internal/hashring) and, unchanged, to route a request to its owning
// server. The algorithm is fixed by construction, not tuned: any one-at-a-
// time-compatible reimplementation must produce the same output for the
// same bytes.
func HashString(name string) uint32 {
	var h uint32
	for i := 0; i < len(name); i++ {
		h += uint32(name[i])
		h += h << 10
		h ^= h >> 6
	}
	h += h << 3
	h ^= h >> 11
	h += h << 15
	return h
}

// HashUint computes a 32-bit integer hash of id, used to place a server on
// the ring by its id. It is deliberately a different mixing function from
// HashString so that a document name and a server id never collide through
// a shared algorithm, only (rarely, and harmlessly) through output.
//
// The mix is the 32-bit finalizer popularized by MurmurHash3: three
// xorshift/multiply rounds over the input. It is deterministic and has no
// dependency on machine endianness since it operates on a uint32 value,
// not its byte representation.
func HashUint(id uint32) uint32 {
	h := id
	h ^= h >> 16
	h *= 0x85ebca6b
	h ^= h >> 13
	h *= 0xc2b2ae35
	h ^= h >> 16
	return h
}
