package rest

import "net/http"

// Dashboard serves the per-version wall-time comparison table.
func (h *APIHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	log := h.requestLogger(r)
	snapshot := h.store.Current()

	resp, err := h.engine.Dashboard(snapshot)
	if err != nil {
		log.Error().Err(err).Msg("dashboard aggregation failed")
		h.errorResponse(w, http.StatusInternalServerError, err.Error(), log)
		return
	}
	h.jsonResponse(w, resp, log)
}
