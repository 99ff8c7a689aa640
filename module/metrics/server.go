package metrics

import (
	"context"
	"errors"
	"net/http"
	_ "net/http/pprof"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
)

const shutdownTimeout = 5 * time.Second

// Server exposes the prometheus registry on /metrics, and optionally the
// pprof handlers, on its own port.
type Server struct {
	server *http.Server
	log    zerolog.Logger
}

// NewServer configures a metrics server on the given port. Profiling
// endpoints ride on the same listener when enabled.
func NewServer(log zerolog.Logger, port uint, enableProfiler bool) *Server {
	addr := ":" + strconv.Itoa(int(port))

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	if enableProfiler {
		mux.Handle("/debug/pprof/", http.DefaultServeMux)
	}

	return &Server{
		server: &http.Server{Addr: addr, Handler: mux},
		log:    log.With().Str("component", "metrics_server").Logger(),
	}
}

// Ready starts the listener and closes immediately; the metrics endpoint is
// best-effort and never gates the API server.
func (m *Server) Ready() <-chan struct{} {
	m.log.Info().Str("address", m.server.Addr).Msg("metrics server started")
	go func() {
		if err := m.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			m.log.Err(err).Msg("metrics server failed")
		}
	}()

	ready := make(chan struct{})
	close(ready)
	return ready
}

// Done shuts the listener down, waiting up to shutdownTimeout for in-flight
// scrapes.
func (m *Server) Done() <-chan struct{} {
	done := make(chan struct{})
	go func() {
		defer close(done)
		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := m.server.Shutdown(ctx); err != nil {
			m.log.Err(err).Msg("metrics server shutdown failed")
		}
	}()
	return done
}
