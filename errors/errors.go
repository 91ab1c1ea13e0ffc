// Package errors defines all exported error sentinels for the bucketset library.
//
// This is the single source of truth for error values. Both the top-level
// bucketset package and its command harnesses import from here, ensuring
// errors.Is checks work across package boundaries.
package errors

import "errors"

// Construction errors
var (
	ErrInvalidBucketCount = errors.New("bucketset: bucket count must be a positive integer")
	ErrNilSet             = errors.New("bucketset: set is nil")
)

// State import errors
var (
	ErrBucketLengthMismatch = errors.New("bucketset: buckets length does not match bucket count")
)

// Comparison errors
var (
	ErrSeedMismatch        = errors.New("bucketset: sets were built with different seeds")
	ErrBucketCountMismatch = errors.New("bucketset: sets have different bucket counts")
)

// Encoding and snapshot errors
var (
	ErrInvalidMagic   = errors.New("bucketset: invalid magic number")
	ErrInvalidVersion = errors.New("bucketset: unsupported format version")
	ErrTruncatedState = errors.New("bucketset: state encoding is truncated")
	ErrChecksumFailed = errors.New("bucketset: state checksum verification failed")
)
