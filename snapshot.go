package bucketset

import (
	"errors"
	"fmt"
	"os"

	"github.com/edsrzf/mmap-go"

	bserrors "github.com/erunehtar/bucketset/errors"
)

// WriteSnapshot writes the Set's binary state encoding to path, creating
// or truncating the file. The file content is exactly the MarshalBinary
// layout, so snapshots are portable across endpoints that agree on the
// version 1 encoding.
//
// The write is not atomic; callers that need crash consistency should
// write to a temporary file and rename.
func (s *Set) WriteSnapshot(path string) error {
	data, err := s.MarshalBinary()
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write snapshot: %w", err)
	}
	return nil
}

// OpenSnapshot reconstructs a Set from a snapshot file written by
// WriteSnapshot.
func OpenSnapshot(path string) (*Set, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open snapshot: %w", err)
	}
	defer f.Close()
	return OpenSnapshotFile(f)
}

// OpenSnapshotFile reconstructs a Set by memory-mapping the given file.
// The caller is responsible for closing f. Per POSIX mmap(2), f may be
// closed as soon as OpenSnapshotFile returns; the mapping is released
// before returning in all cases, and the returned Set owns independent
// storage.
func OpenSnapshotFile(f *os.File) (*Set, error) {
	stat, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("stat snapshot: %w", err)
	}
	// mmap rejects empty files; report them as the truncation they are.
	if stat.Size() == 0 {
		return nil, bserrors.ErrTruncatedState
	}

	// One sequential pass over the mapping; let the kernel read ahead.
	fadviseSequential(int(f.Fd()), 0, stat.Size())

	mm, err := mmap.Map(f, mmap.RDONLY, 0)
	if err != nil {
		return nil, fmt.Errorf("mmap snapshot: %w", err)
	}

	set, decodeErr := DecodeSnapshot(mm)
	if unmapErr := mm.Unmap(); unmapErr != nil {
		return nil, errors.Join(decodeErr, unmapErr)
	}
	return set, decodeErr
}

// DecodeSnapshot reconstructs a Set from in-memory snapshot bytes.
// Equivalent to UnmarshalBinary; provided for symmetry with OpenSnapshot.
func DecodeSnapshot(data []byte) (*Set, error) {
	return UnmarshalBinary(data)
}
