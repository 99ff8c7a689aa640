package module

import (
	"context"
	"time"

	httpmetrics "github.com/slok/go-http-metrics/metrics"
)

type RestMetrics interface {
	// Example recorder taken from:
	// https://github.com/slok/go-http-metrics/blob/master/metrics/prometheus/prometheus.go
	httpmetrics.Recorder
	AddTotalRequests(ctx context.Context, method string, routeName string)
}

// SnapshotMetrics reports the shape of the published benchmark dataset.
type SnapshotMetrics interface {
	// SnapshotReplaced is called after a new snapshot has been swapped in.
	SnapshotReplaced(commits int, lastDate time.Time)
}

// RefreshMetrics reports dataset refresh attempts.
type RefreshMetrics interface {
	RefreshStarted()
	RefreshFinished(success bool, duration time.Duration)
}
