// Package runner drives a workload across a fixed worker pool against a
// set.Table, timing the whole run the way the driver boundary requires
// (spec §6: elapsed wall time covers every worker's operations).
package runner

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"concurrentset/internal/set"
	"concurrentset/internal/telemetry"
	"concurrentset/internal/workload"
)

// Result is one run's timing outcome.
type Result struct {
	Elapsed time.Duration
}

// Run partitions items across numThreads goroutines by workload.Partition
// (static i mod numThreads, no work stealing) and executes each worker's
// slice against tbl. tel may be nil, in which case no telemetry is
// recorded. The returned elapsed time spans from just before the first
// worker starts to just after the last one finishes.
func Run(ctx context.Context, tbl set.Table, items []workload.Item, numThreads int, tel *telemetry.Telemetry) (Result, error) {
	parts := workload.Partition(len(items), numThreads)

	g, gctx := errgroup.WithContext(ctx)
	start := time.Now()

	for _, indices := range parts {
		indices := indices
		g.Go(func() error {
			for _, idx := range indices {
				select {
				case <-gctx.Done():
					return gctx.Err()
				default:
				}

				item := items[idx]
				opStart := time.Now()
				var changed bool
				switch item.Op {
				case workload.Insert:
					changed = tbl.Insert(item.Key)
				case workload.Delete:
					changed = tbl.Delete(item.Key)
				case workload.Contains:
					changed = tbl.Contains(item.Key)
				}
				if tel != nil {
					tel.Record(item.Op.String(), changed, time.Since(opStart))
				}
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return Result{}, err
	}
	return Result{Elapsed: time.Since(start)}, nil
}
