package metrics

import (
	"context"
	"time"

	httpmetrics "github.com/slok/go-http-metrics/metrics"

	"github.com/compilerbench/perfsite/module"
)

type NoopCollector struct{}

func NewNoopCollector() *NoopCollector {
	nc := &NoopCollector{}
	return nc
}

func (nc *NoopCollector) SnapshotReplaced(commits int, lastDate time.Time)                     {}
func (nc *NoopCollector) RefreshStarted()                                                      {}
func (nc *NoopCollector) RefreshFinished(success bool, duration time.Duration)                 {}
func (nc *NoopCollector) AddTotalRequests(ctx context.Context, method string, routeName string) {}

func (nc *NoopCollector) ObserveHTTPRequestDuration(ctx context.Context, props httpmetrics.HTTPReqProperties, duration time.Duration) {
}

func (nc *NoopCollector) ObserveHTTPResponseSize(ctx context.Context, props httpmetrics.HTTPReqProperties, sizeBytes int64) {
}

func (nc *NoopCollector) AddInflightRequests(ctx context.Context, props httpmetrics.HTTPProperties, quantity int) {
}

var _ module.SnapshotMetrics = (*NoopCollector)(nil)
var _ module.RefreshMetrics = (*NoopCollector)(nil)
var _ module.RestMetrics = (*NoopCollector)(nil)
