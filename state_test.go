// state_test.go tests the explicit (seed, bucket count, buckets) state
// triple: export projection, import validation, and storage independence.
package bucketset

import (
	"errors"
	"testing"

	bserrors "github.com/erunehtar/bucketset/errors"
)

func TestExportImportRoundTrip(t *testing.T) {
	rng := newTestRNG(t)
	s := mustNew(t, 8, WithSeed(-42))
	for i := 0; i < 100; i++ {
		s.Update(randomKey(rng))
	}

	restored, err := Import(s.Export())
	if err != nil {
		t.Fatalf("Import(Export(s)): unexpected error %v", err)
	}
	if !restored.Equal(s) {
		t.Errorf("round-tripped set differs from the original")
	}
}

func TestExportProjectsFields(t *testing.T) {
	s := mustNew(t, 4, WithSeed(123))
	idx := s.Update("foo")

	st := s.Export()
	if st.Seed != 123 {
		t.Errorf("Seed: expected 123, got %d", st.Seed)
	}
	if st.BucketCount != 4 || len(st.Buckets) != 4 {
		t.Errorf("BucketCount: expected 4/4, got %d/%d", st.BucketCount, len(st.Buckets))
	}
	if st.Buckets[idx] != Hash("foo", 123) {
		t.Errorf("bucket %d: expected %08x, got %08x", idx, Hash("foo", 123), st.Buckets[idx])
	}
}

func TestImportValidation(t *testing.T) {
	cases := []struct {
		name  string
		state State
		want  error
	}{
		{"negative bucket count", State{Seed: 123, BucketCount: -1, Buckets: []uint32{}}, bserrors.ErrInvalidBucketCount},
		{"zero bucket count", State{Seed: 0, BucketCount: 0, Buckets: nil}, bserrors.ErrInvalidBucketCount},
		{"buckets shorter than count", State{Seed: 123, BucketCount: 4, Buckets: []uint32{0, 1}}, bserrors.ErrBucketLengthMismatch},
		{"buckets longer than count", State{Seed: 123, BucketCount: 2, Buckets: []uint32{0, 1, 2}}, bserrors.ErrBucketLengthMismatch},
		{"nil buckets with positive count", State{Seed: 0, BucketCount: 1, Buckets: nil}, bserrors.ErrBucketLengthMismatch},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := Import(tc.state); !errors.Is(err, tc.want) {
				t.Errorf("Import: expected %v, got %v", tc.want, err)
			}
		})
	}
}

// Import must materialize a fresh buckets array: mutating the input State
// after import must not leak into the reconstructed digest.
func TestImportDoesNotAliasInput(t *testing.T) {
	st := State{Seed: 7, BucketCount: 3, Buckets: []uint32{10, 20, 30}}
	s, err := Import(st)
	if err != nil {
		t.Fatalf("Import: unexpected error %v", err)
	}

	st.Buckets[1] = 0xFFFFFFFF

	if got := s.Bucket(1); got != 20 {
		t.Errorf("bucket 1: imported set aliased the input, got %d", got)
	}
}

// Export's copy guarantee, from the other direction: mutating the live set
// after export must not change the exported state.
func TestExportDoesNotAliasLiveSet(t *testing.T) {
	s := mustNew(t, 4)
	idx := s.Update("foo")
	st := s.Export()

	s.Update("bar")
	s.Update("baz")

	if st.Buckets[idx] != Hash("foo", 0) {
		t.Errorf("exported state changed after source mutation")
	}
}
