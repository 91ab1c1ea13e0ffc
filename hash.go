package bucketset

const (
	// fnvOffsetBasis is the standard 32-bit FNV offset basis.
	// With seed 0 the hash is exactly FNV-1a.
	fnvOffsetBasis = uint32(2166136261)

	// fnvPrime is the standard 32-bit FNV prime.
	fnvPrime = uint32(16777619)

	// seedPerturbation multiplies the seed before it is folded into the
	// offset basis. Perturbing the basis (rather than the prime or the
	// per-byte fold) yields distinct hash families per seed at zero
	// additional per-byte cost.
	seedPerturbation = 13
)

// Hash computes the seeded 32-bit FNV-1a hash of value.
//
// The hash is deterministic and pure: the same (value, seed) pair always
// produces the same result, on every platform. Two values with identical
// string representations are indistinguishable; callers are responsible
// for supplying a canonical, stable representation (see PreHash for large
// or non-string values).
//
// The seed perturbs the FNV offset basis: h starts at 2166136261 + seed*13
// modulo 2^32, then each byte is folded with the usual XOR-and-multiply
// step. All arithmetic wraps at 32 bits, which is what makes independently
// implemented endpoints interoperate byte-for-byte.
//
// This is a fast mixing hash, not a cryptographic one. Preimages can be
// found by brute force; do not use it where an adversary controls inputs
// and collisions carry a security cost.
func Hash(value string, seed int64) uint32 {
	h := fnvOffsetBasis + uint32(seed*seedPerturbation)
	for i := 0; i < len(value); i++ {
		h ^= uint32(value[i])
		h *= fnvPrime
	}
	return h
}
