package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the profile module.
// Tracks profile lifecycle counts, sync outcomes, and merge failures.
type Metrics struct {
	ProfilesCreated   prometheus.Counter
	ProfilesDeleted   prometheus.Counter
	SyncsApplied      prometheus.Counter
	SyncsNoop         prometheus.Counter
	MergeRejected     prometheus.Counter
	SyncDuration      prometheus.Histogram
}

// New creates a new Metrics instance with all profile module metrics registered.
func New() *Metrics {
	return &Metrics{
		ProfilesCreated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "noesis_profiles_created_total",
			Help: "Total number of profiles created",
		}),
		ProfilesDeleted: promauto.NewCounter(prometheus.CounterOpts{
			Name: "noesis_profiles_deleted_total",
			Help: "Total number of profiles deleted",
		}),
		SyncsApplied: promauto.NewCounter(prometheus.CounterOpts{
			Name: "noesis_syncs_applied_total",
			Help: "Total number of integration events that changed a profile",
		}),
		SyncsNoop: promauto.NewCounter(prometheus.CounterOpts{
			Name: "noesis_syncs_noop_total",
			Help: "Total number of integration events mapped to an empty update",
		}),
		MergeRejected: promauto.NewCounter(prometheus.CounterOpts{
			Name: "noesis_merges_rejected_total",
			Help: "Total number of merges rejected by profile validation",
		}),
		SyncDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "noesis_sync_duration_seconds",
			Help:    "Duration of integration sync operations (hot write path)",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		}),
	}
}

// IncrementProfilesCreated records a successful profile creation.
func (m *Metrics) IncrementProfilesCreated() {
	m.ProfilesCreated.Inc()
}

// IncrementProfilesDeleted records a profile deletion.
func (m *Metrics) IncrementProfilesDeleted() {
	m.ProfilesDeleted.Inc()
}

// IncrementSyncsApplied records an event that produced a profile change.
func (m *Metrics) IncrementSyncsApplied() {
	m.SyncsApplied.Inc()
}

// IncrementSyncsNoop records an event mapped to an empty update.
func (m *Metrics) IncrementSyncsNoop() {
	m.SyncsNoop.Inc()
}

// IncrementMergeRejected records a merge that profile validation refused.
func (m *Metrics) IncrementMergeRejected() {
	m.MergeRejected.Inc()
}

// ObserveSync records the duration of a Sync operation.
// Call with time.Now() at the start of the operation.
func (m *Metrics) ObserveSync(start time.Time) {
	m.SyncDuration.Observe(time.Since(start).Seconds())
}
