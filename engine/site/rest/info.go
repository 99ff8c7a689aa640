package rest

import "net/http"

// Info reports the benchmark names, metric names and freshness of the
// served dataset.
func (h *APIHandler) Info(w http.ResponseWriter, r *http.Request) {
	log := h.requestLogger(r)
	snapshot := h.store.Current()
	h.jsonResponse(w, h.engine.Info(snapshot), log)
}
