package rest

import (
	"compress/gzip"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gammazero/workerpool"
	"github.com/rs/zerolog"
	"github.com/vmihailenco/msgpack/v4"

	"github.com/compilerbench/perfsite/module"
	"github.com/compilerbench/perfsite/module/aggregation"
	"github.com/compilerbench/perfsite/module/refresh"
)

// APIHandler implements the dashboard API. Every handler captures the served
// snapshot exactly once, so a refresh landing mid-request cannot mix
// datasets within one response.
type APIHandler struct {
	log         zerolog.Logger
	store       module.SnapshotStore
	engine      *aggregation.Engine
	coordinator *refresh.Coordinator
	pool        *workerpool.WorkerPool
}

// NewAPIHandler returns the handler backing the route table. The worker pool
// bounds the heavier POST aggregations and the refresh so they cannot
// saturate the accept path.
func NewAPIHandler(
	log zerolog.Logger,
	store module.SnapshotStore,
	engine *aggregation.Engine,
	coordinator *refresh.Coordinator,
	pool *workerpool.WorkerPool,
) *APIHandler {
	return &APIHandler{
		log:         log.With().Str("component", "rest_api").Logger(),
		store:       store,
		engine:      engine,
		coordinator: coordinator,
		pool:        pool,
	}
}

func (h *APIHandler) requestLogger(r *http.Request) zerolog.Logger {
	return h.log.With().Str("request_url", r.URL.String()).Logger()
}

// jsonResponse writes the payload for the read-only GET endpoints.
func (h *APIHandler) jsonResponse(w http.ResponseWriter, payload interface{}, log zerolog.Logger) {
	encoded, err := json.Marshal(payload)
	if err != nil {
		log.Error().Err(err).Msg("failed to encode response")
		h.errorResponse(w, http.StatusInternalServerError, "error generating response", log)
		return
	}

	w.Header().Set("Content-Type", "application/json; charset=UTF-8")
	if _, err := w.Write(encoded); err != nil {
		log.Error().Err(err).Msg("failed to write response")
	}
}

// packedResponse writes the msgpack body used by the query endpoints,
// gzip-compressed when the client accepts it. Responses reflect a snapshot
// that the next refresh may replace, so caching is always disabled.
func (h *APIHandler) packedResponse(w http.ResponseWriter, req *Request, payload interface{}, log zerolog.Logger) {
	encoded, err := msgpack.Marshal(payload)
	if err != nil {
		log.Error().Err(err).Msg("failed to encode response")
		h.errorResponse(w, http.StatusInternalServerError, "error generating response", log)
		return
	}

	w.Header().Set("Content-Type", "application/octet-stream")
	w.Header().Set("Cache-Control", "no-cache, no-store")

	if req.AcceptsGzip() {
		gz, err := gzip.NewWriterLevel(w, gzip.BestCompression)
		if err != nil {
			log.Error().Err(err).Msg("failed to create gzip writer")
			h.errorResponse(w, http.StatusInternalServerError, "error generating response", log)
			return
		}
		w.Header().Set("Content-Encoding", "gzip")
		if _, err := gz.Write(encoded); err != nil {
			log.Error().Err(err).Msg("failed to write response")
			return
		}
		if err := gz.Close(); err != nil {
			log.Error().Err(err).Msg("failed to flush response")
		}
		return
	}

	if _, err := w.Write(encoded); err != nil {
		log.Error().Err(err).Msg("failed to write response")
	}
}

// errorResponse writes a plaintext error. Errors are never cacheable either;
// a failed range today may resolve after the next refresh.
func (h *APIHandler) errorResponse(w http.ResponseWriter, status int, message string, log zerolog.Logger) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("Cache-Control", "no-cache, no-store")
	w.WriteHeader(status)
	if _, err := w.Write([]byte(message)); err != nil {
		log.Error().Err(err).Msg("failed to send error response")
	}
}

// badBody maps a BodyAs failure onto the wire: an oversized declaration
// keeps its own status, anything else is the client's malformed payload.
func (h *APIHandler) badBody(w http.ResponseWriter, err error, log zerolog.Logger) {
	var statusErr StatusError
	if errors.As(err, &statusErr) {
		if statusErr.Status() == http.StatusRequestEntityTooLarge {
			h.errorResponse(w, statusErr.Status(), statusErr.UserMessage(), log)
			return
		}
		h.errorResponse(w, statusErr.Status(), "Failed to deserialize request; "+statusErr.UserMessage(), log)
		return
	}
	h.errorResponse(w, http.StatusBadRequest, "Failed to deserialize request; "+err.Error(), log)
}
