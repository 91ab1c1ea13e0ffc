// Package bucketset implements a compact, partitioned XOR digest for
// detecting divergence between two copies of a set of values without
// transmitting or storing the values themselves.
//
// Instead of a single digest over the whole collection (which reveals only
// "equal or not"), a Set partitions keys into a fixed number of buckets
// and keeps one combinable 32-bit digest per bucket. Comparing two Sets
// bucket-by-bucket localizes divergence to a bounded subset of partitions,
// making the structure a cheaper alternative to a Merkle tree for
// anti-entropy reconciliation between replicas.
//
// # Basic Usage
//
// Both replicas construct a Set with the same bucket count and seed, and
// toggle each key lifecycle event into it:
//
//	set, err := bucketset.New(64, bucketset.WithSeed(42))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	set.Update("user:1001")             // key now contributes to the digest
//	set.Update("user:1001")             // toggled again: contribution removed
//	set.Update("user:1002", "rev:7")    // auxiliary payload folded with the key
//
// Comparing replicas:
//
//	if !local.Equal(remote) {
//	    divergent, err := bucketset.Diff(local, remote)
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//	    // reconcile only the keys routed to the divergent buckets
//	}
//
// State crosses synchronization boundaries either as the explicit
// (seed, bucket count, buckets) triple:
//
//	remote, err := bucketset.Import(local.Export())
//
// or as the integrity-checked binary encoding (MarshalBinary,
// UnmarshalBinary, WriteSnapshot, OpenSnapshot).
//
// # Package Structure
//
// The implementation is organized as follows:
//
//   - Core digest: hash.go (seeded FNV-1a), set.go (New, Update, Clear, Equal, Diff, Merge)
//   - State transfer: state.go (Export, Import), wire.go (binary encoding), snapshot.go (files)
//   - Bulk seeding: bulk.go (Accumulate), prehash.go (PreHash for large values)
//   - Errors: errors/ (exported sentinels)
//   - Platform: fadvise_*.go (snapshot read hints)
package bucketset
