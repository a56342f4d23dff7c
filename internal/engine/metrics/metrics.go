package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the engine module.
// Tracks snapshot derivations and cache effectiveness.
type Metrics struct {
	SnapshotsComputed prometheus.Counter
	CacheHits         prometheus.Counter
	CacheMisses       prometheus.Counter
	SnapshotDuration  prometheus.Histogram
}

// New creates a new Metrics instance with all engine module metrics registered.
func New() *Metrics {
	return &Metrics{
		SnapshotsComputed: promauto.NewCounter(prometheus.CounterOpts{
			Name: "noesis_snapshots_computed_total",
			Help: "Total number of consciousness snapshots derived from profiles",
		}),
		CacheHits: promauto.NewCounter(prometheus.CounterOpts{
			Name: "noesis_snapshot_cache_hits_total",
			Help: "Total number of snapshot requests served from cache",
		}),
		CacheMisses: promauto.NewCounter(prometheus.CounterOpts{
			Name: "noesis_snapshot_cache_misses_total",
			Help: "Total number of snapshot requests that required derivation",
		}),
		SnapshotDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "noesis_snapshot_duration_seconds",
			Help:    "Duration of snapshot derivation (read path)",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		}),
	}
}

// IncrementSnapshotsComputed records a snapshot derivation.
func (m *Metrics) IncrementSnapshotsComputed() {
	m.SnapshotsComputed.Inc()
}

// IncrementCacheHits records a snapshot served from cache.
func (m *Metrics) IncrementCacheHits() {
	m.CacheHits.Inc()
}

// IncrementCacheMisses records a snapshot that had to be derived.
func (m *Metrics) IncrementCacheMisses() {
	m.CacheMisses.Inc()
}

// ObserveSnapshot records the duration of a snapshot derivation.
// Call with time.Now() at the start of the operation.
func (m *Metrics) ObserveSnapshot(start time.Time) {
	m.SnapshotDuration.Observe(time.Since(start).Seconds())
}
