package bucketset

import (
	"slices"

	bserrors "github.com/erunehtar/bucketset/errors"
)

// Set is a partitioned XOR digest over a collection of string keys.
//
// A Set holds a fixed number of 32-bit accumulator buckets. Each key is
// routed to one bucket by its seeded hash, and its hash is XOR-folded into
// that bucket. Because XOR is self-inverse, Update both adds and removes a
// key's contribution: toggling the same key twice restores the prior state.
//
// Two replicas that toggle the same multiset of keys hold equal Sets;
// comparing bucket-by-bucket localizes divergence to the differing
// partitions without transmitting, or even retaining, the keys themselves.
//
// Collision caveat: XOR folding is commutative and associative but not
// collision-free. Two different symmetric differences between replica
// contents can cancel to the same bucket value, making a divergent bucket
// look equal. This is an accepted probabilistic property of the scheme;
// the false-negative rate shrinks as the bucket count grows relative to
// the number of differing keys.
//
// Thread Safety:
// - A Set performs all mutation in place on its exclusively owned buckets
// - No operation blocks or performs I/O; there is no internal locking
// - Callers sharing a Set across goroutines must serialize Update, Clear,
//   Merge, and Export against each other
type Set struct {
	seed    int64
	buckets []uint32
}

// Option is a functional option for configuring a new Set.
type Option func(*setConfig)

type setConfig struct {
	seed int64
}

// WithSeed sets the hash seed. Two Sets must share a seed (and a bucket
// count) to be meaningfully comparable; replicas agree on both out of band.
// The default seed is 0.
func WithSeed(seed int64) Option {
	return func(c *setConfig) {
		c.seed = seed
	}
}

// New creates a Set with bucketCount zeroed buckets.
// Returns errors.ErrInvalidBucketCount if bucketCount is less than 1.
func New(bucketCount int, opts ...Option) (*Set, error) {
	if bucketCount < 1 {
		return nil, bserrors.ErrInvalidBucketCount
	}
	cfg := &setConfig{}
	for _, opt := range opts {
		opt(cfg)
	}
	return &Set{
		seed:    cfg.seed,
		buckets: make([]uint32, bucketCount),
	}, nil
}

// Update toggles a key's contribution in the digest and returns the index
// of the bucket it landed in.
//
// The bucket index is derived from the high 16 bits of primary's hash,
// while the low bits participate in the fold. Routing and folding therefore
// consume different bits of the same hash, which decorrelates bucket
// placement from the value XORed in.
//
// Extra values are hashed and XORed into the folded value in call order,
// but never affect routing: bucket placement is a pure function of
// (primary, seed). A caller can attach auxiliary payload (a revision
// counter, say) to a logical key and still rely on repeated toggles of
// that key landing in the same bucket. To cancel a prior toggle, Update
// must be called with the identical primary and extras.
//
// The returned index is the caller's only way to learn a key's bucket;
// there is no reverse index from values to buckets.
func (s *Set) Update(primary string, extras ...string) int {
	h := Hash(primary, s.seed)
	idx := int((h >> 16) % uint32(len(s.buckets)))
	for _, extra := range extras {
		h ^= Hash(extra, s.seed)
	}
	s.buckets[idx] ^= h
	return idx
}

// Clear resets every bucket to zero. The seed and bucket count are
// unchanged, so the Set remains comparable with its peers.
func (s *Set) Clear() {
	clear(s.buckets)
}

// Seed returns the hash seed the Set was constructed with.
func (s *Set) Seed() int64 {
	return s.seed
}

// BucketCount returns the number of buckets.
func (s *Set) BucketCount() int {
	return len(s.buckets)
}

// Bucket returns the accumulator value of bucket i.
// Panics if i is out of range, like any slice index.
func (s *Set) Bucket(i int) uint32 {
	return s.buckets[i]
}

// Buckets returns a copy of the accumulator array. The copy is independent
// of the live Set; mutating it does not affect the digest.
func (s *Set) Buckets() []uint32 {
	return slices.Clone(s.buckets)
}

// Clone returns a deep copy of the Set.
func (s *Set) Clone() *Set {
	return &Set{
		seed:    s.seed,
		buckets: slices.Clone(s.buckets),
	}
}

// Equal reports whether two Sets hold identical digests: same seed, same
// bucket count, and equal value in every bucket.
//
// Sets with differing seed or bucket count are never equal — they are not
// meaningfully comparable at all. Matching both parameters across replicas
// is a precondition of the whole scheme, not something comparison can
// repair, so a mismatch reports false rather than an error.
func (s *Set) Equal(o *Set) bool {
	if s == nil || o == nil {
		return s == o
	}
	return s.seed == o.seed && slices.Equal(s.buckets, o.buckets)
}

// Merge XOR-folds every bucket of o into the corresponding bucket of s.
// The result is the digest that would have been produced by replaying both
// sets' toggle histories into a single Set, in any order.
//
// Returns errors.ErrSeedMismatch or errors.ErrBucketCountMismatch if the
// sets are not comparable; s is unmodified on error.
func (s *Set) Merge(o *Set) error {
	if o == nil {
		return bserrors.ErrNilSet
	}
	if s.seed != o.seed {
		return bserrors.ErrSeedMismatch
	}
	if len(s.buckets) != len(o.buckets) {
		return bserrors.ErrBucketCountMismatch
	}
	for i, v := range o.buckets {
		s.buckets[i] ^= v
	}
	return nil
}

// Diff returns the indices, in ascending order, of buckets whose values
// differ between a and b. An empty result means the digests are equal
// (subject to the XOR collision caveat on Set). Callers use the divergent
// indices to drive targeted reconciliation of only those partitions.
//
// Unlike Equal, Diff treats mismatched parameters as an error rather than
// blanket divergence, because a per-bucket comparison across different
// seeds or bucket counts is meaningless:
// errors.ErrSeedMismatch / errors.ErrBucketCountMismatch.
func Diff(a, b *Set) ([]int, error) {
	if a == nil || b == nil {
		return nil, bserrors.ErrNilSet
	}
	if a.seed != b.seed {
		return nil, bserrors.ErrSeedMismatch
	}
	if len(a.buckets) != len(b.buckets) {
		return nil, bserrors.ErrBucketCountMismatch
	}
	var divergent []int
	for i := range a.buckets {
		if a.buckets[i] != b.buckets[i] {
			divergent = append(divergent, i)
		}
	}
	return divergent, nil
}
