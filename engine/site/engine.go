// Package site runs the dashboard API server as a managed component.
package site

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/compilerbench/perfsite/engine/site/rest"
	"github.com/compilerbench/perfsite/module"
	"github.com/compilerbench/perfsite/module/component"
	"github.com/compilerbench/perfsite/module/irrecoverable"
)

const shutdownTimeout = 10 * time.Second

// Engine owns the API server lifecycle: Start binds the listener, Ready
// closes once requests are being accepted, and shutdown drains in-flight
// requests before Done closes.
type Engine struct {
	*component.ComponentManager

	log    zerolog.Logger
	server *http.Server
	addr   net.Addr
}

func NewEngine(log zerolog.Logger, listenAddr string, api *rest.APIHandler, restCollector module.RestMetrics) *Engine {
	logger := log.With().Str("engine", "site").Logger()

	e := &Engine{
		log:    logger,
		server: rest.NewServer(api, listenAddr, logger, restCollector),
	}
	e.ComponentManager = component.NewComponentManagerBuilder().
		AddWorker(e.serve).
		Build()
	return e
}

// Addr is the bound listener address. Valid once Ready has closed.
func (e *Engine) Addr() net.Addr {
	return e.addr
}

// serve runs the API server. Failing to bind or serve is fatal for the
// node; a clean shutdown is not.
func (e *Engine) serve(ctx irrecoverable.SignalerContext, ready component.ReadyFunc) {
	e.log.Info().Str("address", e.server.Addr).Msg("starting API server")
	l, err := net.Listen("tcp", e.server.Addr)
	if err != nil {
		ctx.Throw(fmt.Errorf("failed to listen on %s: %w", e.server.Addr, err))
	}
	e.addr = l.Addr()

	go func() {
		ready()
		if err := e.server.Serve(l); err != nil && !errors.Is(err, http.ErrServerClosed) {
			ctx.Throw(fmt.Errorf("API server failed: %w", err))
		}
	}()

	<-ctx.Done()

	sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.server.Shutdown(sctx); err != nil {
		e.log.Err(err).Msg("API server shutdown failed")
	}
}
