package rest

import (
	"net/http"
	"time"

	"github.com/rs/cors"
	"github.com/rs/zerolog"

	"github.com/compilerbench/perfsite/module"
)

// NewServer returns an HTTP server initialized with the REST API handler.
// The dashboard frontend is served from other origins, so CORS stays open.
func NewServer(api *APIHandler, listenAddress string, logger zerolog.Logger, restCollector module.RestMetrics) *http.Server {
	router := NewRouter(api, logger, restCollector)

	c := cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedHeaders: []string{"*"},
		AllowedMethods: []string{
			http.MethodGet,
			http.MethodPost,
			http.MethodOptions,
			http.MethodHead},
	})

	return &http.Server{
		Addr:         listenAddress,
		Handler:      c.Handler(router),
		WriteTimeout: time.Second * 15,
		ReadTimeout:  time.Second * 15,
		IdleTimeout:  time.Second * 60,
	}
}
