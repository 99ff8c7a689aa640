package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/compilerbench/perfsite/module"
)

// SiteCollector tracks the dataset lifecycle: what snapshot is being served
// and how refreshes behave over time.
type SiteCollector struct {
	snapshotCommits     prometheus.Gauge
	snapshotLastCommit  prometheus.Gauge
	snapshotReplacement prometheus.Counter
	refreshStarted      prometheus.Counter
	refreshFinished     *prometheus.CounterVec
	refreshDuration     prometheus.Histogram
}

var _ module.SnapshotMetrics = (*SiteCollector)(nil)
var _ module.RefreshMetrics = (*SiteCollector)(nil)

func NewSiteCollector(registerer prometheus.Registerer) *SiteCollector {
	s := &SiteCollector{
		snapshotCommits: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespaceData,
			Subsystem: subsystemSnapshot,
			Name:      "commits",
			Help:      "number of benchmarked commits in the served snapshot",
		}),

		snapshotLastCommit: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespaceData,
			Subsystem: subsystemSnapshot,
			Name:      "last_commit_timestamp_seconds",
			Help:      "commit date of the newest benchmarked commit",
		}),

		snapshotReplacement: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespaceData,
			Subsystem: subsystemSnapshot,
			Name:      "replacements_total",
			Help:      "times the served snapshot has been swapped",
		}),

		refreshStarted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespaceData,
			Subsystem: subsystemRefresh,
			Name:      "started_total",
			Help:      "refresh attempts admitted by the coordinator",
		}),

		refreshFinished: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespaceData,
			Subsystem: subsystemRefresh,
			Name:      "finished_total",
			Help:      "finished refresh attempts by outcome",
		}, []string{LabelStatus}),

		refreshDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespaceData,
			Subsystem: subsystemRefresh,
			Name:      "duration_seconds",
			Help:      "wall time of refresh attempts",
			Buckets:   []float64{1, 5, 15, 30, 60, 120, 300, 600},
		}),
	}

	registerer.MustRegister(
		s.snapshotCommits,
		s.snapshotLastCommit,
		s.snapshotReplacement,
		s.refreshStarted,
		s.refreshFinished,
		s.refreshDuration,
	)
	return s
}

func (s *SiteCollector) SnapshotReplaced(commits int, lastDate time.Time) {
	s.snapshotCommits.Set(float64(commits))
	s.snapshotLastCommit.Set(float64(lastDate.Unix()))
	s.snapshotReplacement.Inc()
}

func (s *SiteCollector) RefreshStarted() {
	s.refreshStarted.Inc()
}

func (s *SiteCollector) RefreshFinished(success bool, duration time.Duration) {
	status := StatusFailure
	if success {
		status = StatusSuccess
	}
	s.refreshFinished.WithLabelValues(status).Inc()
	s.refreshDuration.Observe(duration.Seconds())
}
