// Package telemetry is the benchmark driver's ambient instrumentation:
// structured logging, Prometheus counters/histograms, and a per-run ID —
// none of it touches the core set semantics, and none of it ever writes
// to stdout (spec §6 reserves stdout for the single elapsed-time line).
package telemetry

import (
	"context"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"go.uber.org/atomic"
)

// Telemetry bundles one run's logger, metrics, and outcome tallies.
type Telemetry struct {
	Log   zerolog.Logger
	RunID string

	registry  *prometheus.Registry
	opsTotal  *prometheus.CounterVec
	opLatency prometheus.Histogram

	inserted  atomic.Uint64
	deleted   atomic.Uint64
	contained atomic.Uint64
	missed    atomic.Uint64
}

// New builds a Telemetry writing leveled logs to w, stamped with a fresh
// run ID. An unrecognized level falls back to info rather than failing
// the run over a logging typo.
func New(level string, w io.Writer) *Telemetry {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil || level == "" {
		lvl = zerolog.InfoLevel
	}
	runID := uuid.NewString()
	logger := zerolog.New(w).Level(lvl).With().Timestamp().Str("run_id", runID).Logger()

	reg := prometheus.NewRegistry()
	return &Telemetry{
		Log:      logger,
		RunID:    runID,
		registry: reg,
		opsTotal: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: "concurrentset_operations_total",
			Help: "Operations processed by the benchmark driver, by type and outcome.",
		}, []string{"op", "outcome"}),
		opLatency: promauto.With(reg).NewHistogram(prometheus.HistogramOpts{
			Name:    "concurrentset_operation_latency_seconds",
			Help:    "Per-operation latency observed by worker goroutines.",
			Buckets: prometheus.DefBuckets,
		}),
	}
}

// Record accounts for one completed operation: op is "INSERT", "DELETE",
// or "CONTAINS"; changed is the bool the core API returned.
func (t *Telemetry) Record(op string, changed bool, latency time.Duration) {
	outcome := "nochange"
	if changed {
		outcome = "changed"
	}
	t.opsTotal.WithLabelValues(op, outcome).Inc()
	t.opLatency.Observe(latency.Seconds())

	switch op {
	case "INSERT":
		if changed {
			t.inserted.Inc()
		} else {
			t.missed.Inc()
		}
	case "DELETE":
		if changed {
			t.deleted.Inc()
		} else {
			t.missed.Inc()
		}
	case "CONTAINS":
		if changed {
			t.contained.Inc()
		} else {
			t.missed.Inc()
		}
	}
}

// Tally returns the run's outcome counters: successful inserts, deletes,
// positive Contains results, and "no-op" outcomes (Insert of a present
// key, Delete of an absent one, Contains that found nothing).
func (t *Telemetry) Tally() (inserted, deleted, contained, missed uint64) {
	return t.inserted.Load(), t.deleted.Load(), t.contained.Load(), t.missed.Load()
}

// Serve runs a Prometheus metrics listener on addr until ctx is
// cancelled. An empty addr is a no-op — metrics are ambient, never
// required by the core contract (SPEC_FULL.md §6.4).
func (t *Telemetry) Serve(ctx context.Context, addr string) error {
	if addr == "" {
		return nil
	}
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(t.registry, promhttp.HandlerOpts{}))
	srv := &http.Server{Addr: addr, Handler: mux}

	go func() {
		<-ctx.Done()
		_ = srv.Close()
	}()

	t.Log.Info().Str("addr", addr).Msg("metrics listener starting")
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
