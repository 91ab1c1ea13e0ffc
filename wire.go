package bucketset

import (
	"encoding/binary"

	"github.com/cespare/xxhash/v2"

	bserrors "github.com/erunehtar/bucketset/errors"
)

const (
	// magic number for bucketset state encodings
	// "BKST" in little-endian
	magic = uint32(0x54534B42)

	// version is the current encoding version
	version = uint16(0x0001)

	// preludeSize is the size of the fixed-width fields preceding the
	// bucket array (magic + version + seed + bucket count)
	preludeSize = 4 + 2 + 8 + 4

	// checksumSize is the size of the trailing checksum
	checksumSize = 8
)

// Binary state encoding, version 1.
//
// The exported triple is laid out in its canonical field order
// (seed, bucket count, buckets) between a fixed prelude and an xxHash64
// trailer. All integers are little-endian.
//
//	Offset  Size  Field        Type
//	0       4     Magic        0x54534B42 ("BKST")
//	4       2     Version      0x0001
//	6       8     Seed         int64_le
//	14      4     BucketCount  uint32_le
//	18      4N    Buckets      N x uint32_le
//	18+4N   8     Checksum     uint64_le (xxHash64 of bytes [0, 18+4N))
//
// encodedSize returns the total encoding size for n buckets.
func encodedSize(n int) int {
	return preludeSize + 4*n + checksumSize
}

// MarshalBinary encodes the Set's exported state into the version 1 binary
// layout. The encoding is self-contained and integrity-checked; it is the
// byte form exchanged at synchronization boundaries and written by
// WriteSnapshot.
func (s *Set) MarshalBinary() ([]byte, error) {
	n := len(s.buckets)
	buf := make([]byte, encodedSize(n))

	binary.LittleEndian.PutUint32(buf[0:4], magic)
	binary.LittleEndian.PutUint16(buf[4:6], version)
	binary.LittleEndian.PutUint64(buf[6:14], uint64(s.seed))
	binary.LittleEndian.PutUint32(buf[14:18], uint32(n))
	for i, v := range s.buckets {
		binary.LittleEndian.PutUint32(buf[preludeSize+4*i:], v)
	}

	body := buf[:preludeSize+4*n]
	binary.LittleEndian.PutUint64(buf[preludeSize+4*n:], xxhash.Sum64(body))
	return buf, nil
}

// UnmarshalBinary decodes a version 1 binary state encoding into a new Set.
//
// Errors:
//   - errors.ErrTruncatedState: data is shorter than its declared layout
//   - errors.ErrInvalidMagic / errors.ErrInvalidVersion: wrong format
//   - errors.ErrChecksumFailed: body bytes do not match the trailer
//   - errors.ErrInvalidBucketCount: declared bucket count is zero
//
// The decoded Set owns a fresh bucket array; data may be reused or
// discarded after the call.
func UnmarshalBinary(data []byte) (*Set, error) {
	if len(data) < preludeSize+checksumSize {
		return nil, bserrors.ErrTruncatedState
	}
	if binary.LittleEndian.Uint32(data[0:4]) != magic {
		return nil, bserrors.ErrInvalidMagic
	}
	if binary.LittleEndian.Uint16(data[4:6]) != version {
		return nil, bserrors.ErrInvalidVersion
	}

	seed := int64(binary.LittleEndian.Uint64(data[6:14]))
	n := int(binary.LittleEndian.Uint32(data[14:18]))
	if n < 1 {
		return nil, bserrors.ErrInvalidBucketCount
	}
	if len(data) < encodedSize(n) {
		return nil, bserrors.ErrTruncatedState
	}

	body := data[:preludeSize+4*n]
	stored := binary.LittleEndian.Uint64(data[preludeSize+4*n:])
	if xxhash.Sum64(body) != stored {
		return nil, bserrors.ErrChecksumFailed
	}

	buckets := make([]uint32, n)
	for i := range buckets {
		buckets[i] = binary.LittleEndian.Uint32(body[preludeSize+4*i:])
	}
	return &Set{seed: seed, buckets: buckets}, nil
}
