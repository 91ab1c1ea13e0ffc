package bucketset

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// accumulateChunkSize is the number of keys toggled between context checks
// in a worker. Small enough to keep cancellation responsive, large enough
// that the check is amortized away.
const accumulateChunkSize = 4096

// AccumulateOption is a functional option for configuring Accumulate.
type AccumulateOption func(*accumulateConfig)

type accumulateConfig struct {
	seed    int64
	workers int
}

// WithAccumulateSeed sets the hash seed of the accumulated Set.
func WithAccumulateSeed(seed int64) AccumulateOption {
	return func(c *accumulateConfig) {
		c.seed = seed
	}
}

// WithAccumulateWorkers sets the number of parallel workers.
// Values below 1 fall back to GOMAXPROCS.
func WithAccumulateWorkers(n int) AccumulateOption {
	return func(c *accumulateConfig) {
		c.workers = n
	}
}

// Accumulate builds a Set by toggling every key in keys, sharding the work
// across parallel workers.
//
// Each worker folds its share of keys into a private Set, and the shards
// are XOR-merged at the end. Because the fold is commutative and
// associative, the result is identical to toggling the keys sequentially
// into one Set, for any worker count and any scheduling — Accumulate is a
// pure throughput optimization for seeding a digest from a large existing
// collection.
//
// Individual Sets stay single-threaded: Accumulate never shares a Set
// between goroutines, it partitions work per worker and merges.
//
// Cancellation is checked between chunks of keys; on cancellation the
// context error is returned and the partial result discarded.
func Accumulate(ctx context.Context, bucketCount int, keys []string, opts ...AccumulateOption) (*Set, error) {
	cfg := &accumulateConfig{}
	for _, opt := range opts {
		opt(cfg)
	}
	workers := cfg.workers
	if workers < 1 {
		workers = runtime.GOMAXPROCS(0)
	}
	if workers > len(keys) {
		workers = max(len(keys), 1)
	}

	result, err := New(bucketCount, WithSeed(cfg.seed))
	if err != nil {
		return nil, err
	}
	if len(keys) == 0 {
		return result, nil
	}

	shards := make([]*Set, workers)
	g, ctx := errgroup.WithContext(ctx)
	for w := range workers {
		g.Go(func() error {
			shard, err := New(bucketCount, WithSeed(cfg.seed))
			if err != nil {
				return err
			}
			// Strided assignment: worker w owns keys w, w+workers, ...
			// No two workers touch the same key slot, and XOR merging
			// makes the partition shape unobservable.
			n := 0
			for i := w; i < len(keys); i += workers {
				shard.Update(keys[i])
				if n++; n%accumulateChunkSize == 0 {
					if err := ctx.Err(); err != nil {
						return err
					}
				}
			}
			shards[w] = shard
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	for _, shard := range shards {
		if err := result.Merge(shard); err != nil {
			return nil, err
		}
	}
	return result, nil
}
