package middleware

import (
	"net/http"

	"github.com/gorilla/mux"
	metricsmiddleware "github.com/slok/go-http-metrics/middleware"
	"github.com/slok/go-http-metrics/middleware/std"

	"github.com/compilerbench/perfsite/module"
)

// MetricsMiddleware records request durations, response sizes and per-route
// totals through the shared rest collector.
func MetricsMiddleware(collector module.RestMetrics) mux.MiddlewareFunc {
	instrument := metricsmiddleware.New(metricsmiddleware.Config{Recorder: collector})
	return func(inner http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			name := routeName(req)
			collector.AddTotalRequests(req.Context(), req.Method, name)
			std.Handler(name, instrument, inner).ServeHTTP(w, req)
		})
	}
}

// routeName labels metrics with the matched route rather than the raw path,
// keeping the series cardinality fixed.
func routeName(req *http.Request) string {
	if route := mux.CurrentRoute(req); route != nil {
		if name := route.GetName(); name != "" {
			return name
		}
	}
	return req.URL.Path
}
