// Bench is a benchmarking tool for measuring bucketset toggle throughput,
// sharded accumulation speedup, and divergence-localization behavior.
//
// Usage:
//
//	go run ./cmd/bench -keys 10000000 -buckets 4096 -workers 4
//
// Flags:
//
//	-keys     Number of keys to toggle (default: 10,000,000)
//	-buckets  Bucket count of the digest (default: 4096)
//	-seed     Hash seed shared by all sets (default: 0)
//	-workers  Number of parallel workers for Accumulate (default: GOMAXPROCS)
//	-diverge  Keys to flip on one replica in the divergence simulation (default: 16)
package main

import (
	"context"
	"flag"
	"fmt"
	mrand "math/rand/v2"
	"os"
	"runtime"
	"syscall"
	"time"

	"github.com/spaolacci/murmur3"

	"github.com/erunehtar/bucketset"
)

// getMaxRSS returns the maximum resident set size in bytes.
// Uses getrusage(RUSAGE_SELF) which tracks peak RSS since process start.
func getMaxRSS() uint64 {
	var rusage syscall.Rusage
	if err := syscall.Getrusage(syscall.RUSAGE_SELF, &rusage); err != nil {
		return 0
	}
	// On macOS, MaxRss is in bytes. On Linux, it's in kilobytes.
	maxRSS := uint64(rusage.Maxrss)
	if runtime.GOOS == "linux" {
		maxRSS *= 1024 // Convert KB to bytes on Linux
	}
	return maxRSS
}

func main() {
	keysFlag := flag.Int("keys", 10_000_000, "number of keys")
	bucketsFlag := flag.Int("buckets", 4096, "bucket count")
	seedFlag := flag.Int64("seed", 0, "hash seed")
	workersFlag := flag.Int("workers", runtime.GOMAXPROCS(0), "parallel workers for Accumulate")
	divergeFlag := flag.Int("diverge", 16, "keys to flip in the divergence simulation")
	flag.Parse()

	numKeys := *keysFlag
	bucketCount := *bucketsFlag

	fmt.Printf("Generating %d keys...\n", numKeys)
	rng := mrand.New(mrand.NewPCG(0x6275636b, 0x65747365))
	keys := make([]string, numKeys)
	for i := range keys {
		keys[i] = fmt.Sprintf("key:%016x:%08x", rng.Uint64(), i)
	}

	// Phase 1: sequential toggle throughput.
	set, err := bucketset.New(bucketCount, bucketset.WithSeed(*seedFlag))
	if err != nil {
		fmt.Fprintf(os.Stderr, "new set: %v\n", err)
		os.Exit(1)
	}
	start := time.Now()
	for _, k := range keys {
		set.Update(k)
	}
	seqDur := time.Since(start)
	fmt.Printf("Sequential Update: %d keys in %v (%.2f M keys/sec)\n",
		numKeys, seqDur.Round(time.Millisecond), float64(numKeys)/seqDur.Seconds()/1e6)

	// Phase 2: sharded accumulation.
	start = time.Now()
	accumulated, err := bucketset.Accumulate(context.Background(), bucketCount, keys,
		bucketset.WithAccumulateSeed(*seedFlag),
		bucketset.WithAccumulateWorkers(*workersFlag))
	if err != nil {
		fmt.Fprintf(os.Stderr, "accumulate: %v\n", err)
		os.Exit(1)
	}
	accDur := time.Since(start)
	fmt.Printf("Accumulate (%d workers): %v (%.2f M keys/sec, %.2fx)\n",
		*workersFlag, accDur.Round(time.Millisecond),
		float64(numKeys)/accDur.Seconds()/1e6, seqDur.Seconds()/accDur.Seconds())
	if !accumulated.Equal(set) {
		fmt.Fprintln(os.Stderr, "BUG: accumulated digest differs from sequential digest")
		os.Exit(1)
	}

	// Phase 3: murmur3 baseline, to put the seeded FNV-1a fold in context
	// against a widely deployed non-cryptographic hash.
	start = time.Now()
	var sink uint32
	for _, k := range keys {
		sink ^= murmur3.Sum32WithSeed([]byte(k), uint32(*seedFlag))
	}
	murmurDur := time.Since(start)
	fmt.Printf("murmur3 baseline: %v (%.2f M keys/sec, sink=%08x)\n",
		murmurDur.Round(time.Millisecond), float64(numKeys)/murmurDur.Seconds()/1e6, sink)

	// Phase 4: divergence localization. Flip a few keys on one replica and
	// report how many buckets the difference was confined to.
	replica := set.Clone()
	flipped := min(*divergeFlag, numKeys)
	for i := 0; i < flipped; i++ {
		replica.Update(keys[rng.IntN(numKeys)])
	}
	divergent, err := bucketset.Diff(set, replica)
	if err != nil {
		fmt.Fprintf(os.Stderr, "diff: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Divergence: %d flipped keys localized to %d of %d buckets (%.2f%% of digest)\n",
		flipped, len(divergent), bucketCount, 100*float64(len(divergent))/float64(bucketCount))

	fmt.Printf("Max RSS: %.1f MB\n", float64(getMaxRSS())/(1<<20))
}
