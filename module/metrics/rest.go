package metrics

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	httpmetrics "github.com/slok/go-http-metrics/metrics"

	"github.com/compilerbench/perfsite/module"
)

// RestCollector is the prometheus recorder consumed by the go-http-metrics
// middleware, extended with a running per-route request total. Metric shapes
// follow the reference recorder:
// https://github.com/slok/go-http-metrics/blob/master/metrics/prometheus/prometheus.go
type RestCollector struct {
	httpRequestDurHistogram   *prometheus.HistogramVec
	httpResponseSizeHistogram *prometheus.HistogramVec
	httpRequestsInflight      *prometheus.GaugeVec
	httpRequestsTotal         *prometheus.GaugeVec
}

var _ module.RestMetrics = (*RestCollector)(nil)

func NewRestCollector(registerer prometheus.Registerer) *RestCollector {
	r := &RestCollector{
		httpRequestDurHistogram: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespaceRestAPI,
			Subsystem: subsystemHTTP,
			Name:      "request_duration_seconds",
			Help:      "latency of HTTP requests served by the API",
			Buckets:   prometheus.DefBuckets,
		}, []string{LabelService, LabelHandler, LabelMethod, LabelCode}),

		httpResponseSizeHistogram: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespaceRestAPI,
			Subsystem: subsystemHTTP,
			Name:      "response_size_bytes",
			Help:      "size of HTTP responses served by the API",
			Buckets:   prometheus.ExponentialBuckets(100, 10, 8),
		}, []string{LabelService, LabelHandler, LabelMethod, LabelCode}),

		httpRequestsInflight: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespaceRestAPI,
			Subsystem: subsystemHTTP,
			Name:      "requests_inflight",
			Help:      "requests currently being served by the API",
		}, []string{LabelService, LabelHandler}),

		httpRequestsTotal: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespaceRestAPI,
			Subsystem: subsystemHTTP,
			Name:      "requests_total",
			Help:      "requests served by the API, per route",
		}, []string{LabelMethod, LabelHandler}),
	}

	registerer.MustRegister(
		r.httpRequestDurHistogram,
		r.httpResponseSizeHistogram,
		r.httpRequestsInflight,
		r.httpRequestsTotal,
	)
	return r
}

func (r *RestCollector) ObserveHTTPRequestDuration(_ context.Context, p httpmetrics.HTTPReqProperties, duration time.Duration) {
	r.httpRequestDurHistogram.WithLabelValues(p.Service, p.ID, p.Method, p.Code).Observe(duration.Seconds())
}

func (r *RestCollector) ObserveHTTPResponseSize(_ context.Context, p httpmetrics.HTTPReqProperties, sizeBytes int64) {
	r.httpResponseSizeHistogram.WithLabelValues(p.Service, p.ID, p.Method, p.Code).Observe(float64(sizeBytes))
}

func (r *RestCollector) AddInflightRequests(_ context.Context, p httpmetrics.HTTPProperties, quantity int) {
	r.httpRequestsInflight.WithLabelValues(p.Service, p.ID).Add(float64(quantity))
}

func (r *RestCollector) AddTotalRequests(_ context.Context, method string, routeName string) {
	r.httpRequestsTotal.WithLabelValues(method, routeName).Inc()
}
