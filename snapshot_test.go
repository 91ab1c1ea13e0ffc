// snapshot_test.go tests persisting the state blob to disk and the
// mmap-backed read path.
package bucketset

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	bserrors "github.com/erunehtar/bucketset/errors"
)

func TestSnapshotRoundTrip(t *testing.T) {
	rng := newTestRNG(t)
	s := mustNew(t, 32, WithSeed(1234))
	for i := 0; i < 500; i++ {
		s.Update(randomKey(rng))
	}

	path := filepath.Join(t.TempDir(), "digest.bkst")
	if err := s.WriteSnapshot(path); err != nil {
		t.Fatalf("WriteSnapshot: unexpected error %v", err)
	}

	restored, err := OpenSnapshot(path)
	if err != nil {
		t.Fatalf("OpenSnapshot: unexpected error %v", err)
	}
	if !restored.Equal(s) {
		t.Errorf("snapshot round trip changed the digest")
	}
}

func TestSnapshotFileContentIsBinaryEncoding(t *testing.T) {
	s := mustNew(t, 4, WithSeed(-1))
	s.Update("foo")

	path := filepath.Join(t.TempDir(), "digest.bkst")
	if err := s.WriteSnapshot(path); err != nil {
		t.Fatalf("WriteSnapshot: unexpected error %v", err)
	}

	onDisk, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	want := mustMarshal(t, s)
	if len(onDisk) != len(want) {
		t.Fatalf("snapshot size: expected %d, got %d", len(want), len(onDisk))
	}
	for i := range want {
		if onDisk[i] != want[i] {
			t.Fatalf("snapshot byte %d: expected %02x, got %02x", i, want[i], onDisk[i])
		}
	}
}

func TestOpenSnapshotMissingFile(t *testing.T) {
	_, err := OpenSnapshot(filepath.Join(t.TempDir(), "absent.bkst"))
	if err == nil {
		t.Fatalf("expected an error opening a missing snapshot")
	}
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("expected os.ErrNotExist in the chain, got %v", err)
	}
}

func TestOpenSnapshotEmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.bkst")
	if err := os.WriteFile(path, nil, 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	if _, err := OpenSnapshot(path); !errors.Is(err, bserrors.ErrTruncatedState) {
		t.Errorf("expected ErrTruncatedState, got %v", err)
	}
}

func TestOpenSnapshotCorrupted(t *testing.T) {
	s := mustNew(t, 8)
	s.Update("foo")
	path := filepath.Join(t.TempDir(), "digest.bkst")
	if err := s.WriteSnapshot(path); err != nil {
		t.Fatalf("WriteSnapshot: unexpected error %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}

	t.Run("flipped body byte", func(t *testing.T) {
		b := append([]byte(nil), data...)
		b[preludeSize] ^= 0x01
		corrupted := filepath.Join(t.TempDir(), "corrupt.bkst")
		if err := os.WriteFile(corrupted, b, 0o644); err != nil {
			t.Fatalf("WriteFile: %v", err)
		}
		if _, err := OpenSnapshot(corrupted); !errors.Is(err, bserrors.ErrChecksumFailed) {
			t.Errorf("expected ErrChecksumFailed, got %v", err)
		}
	})

	t.Run("truncated", func(t *testing.T) {
		truncated := filepath.Join(t.TempDir(), "truncated.bkst")
		if err := os.WriteFile(truncated, data[:len(data)-4], 0o644); err != nil {
			t.Fatalf("WriteFile: %v", err)
		}
		if _, err := OpenSnapshot(truncated); !errors.Is(err, bserrors.ErrTruncatedState) {
			t.Errorf("expected ErrTruncatedState, got %v", err)
		}
	})
}

func TestDecodeSnapshotMatchesUnmarshal(t *testing.T) {
	s := mustNew(t, 4)
	s.Update("foo", "bar")
	data := mustMarshal(t, s)

	fromDecode, err := DecodeSnapshot(data)
	if err != nil {
		t.Fatalf("DecodeSnapshot: unexpected error %v", err)
	}
	if !fromDecode.Equal(s) {
		t.Errorf("DecodeSnapshot result differs from the source set")
	}
}
