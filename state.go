package bucketset

import (
	"slices"

	bserrors "github.com/erunehtar/bucketset/errors"
)

// State is the exported form of a Set: the ordered (seed, bucket count,
// buckets) triple with no additional metadata. It is the only externally
// visible serialized representation; any wire or storage encoding of a Set
// encodes exactly these fields, in this order (see MarshalBinary).
//
// Bucket indexing is 0-based and the order of Buckets is significant: it
// must round-trip unchanged through any encoding so that independently
// implemented endpoints interoperate.
type State struct {
	Seed        int64
	BucketCount int
	Buckets     []uint32
}

// Export projects the Set into a State. The returned Buckets slice is a
// fresh copy: the State and the live Set share no storage, so exporting
// and then continuing to mutate the Set cannot corrupt the exported value.
func (s *Set) Export() State {
	return State{
		Seed:        s.seed,
		BucketCount: len(s.buckets),
		Buckets:     slices.Clone(s.buckets),
	}
}

// Import reconstructs a Set from a previously exported State.
//
// Validation:
//   - BucketCount must be positive (errors.ErrInvalidBucketCount)
//   - len(Buckets) must equal BucketCount (errors.ErrBucketLengthMismatch)
//
// The buckets are copied into a freshly allocated array; the returned Set
// never aliases st.Buckets, so later mutation of the input cannot leak
// into the reconstructed digest.
func Import(st State) (*Set, error) {
	if st.BucketCount < 1 {
		return nil, bserrors.ErrInvalidBucketCount
	}
	if len(st.Buckets) != st.BucketCount {
		return nil, bserrors.ErrBucketLengthMismatch
	}
	return &Set{
		seed:    st.Seed,
		buckets: slices.Clone(st.Buckets),
	}, nil
}
