package rest

import (
	"net/http"

	"github.com/compilerbench/perfsite/module/aggregation"
)

// Data serves the per-commit aggregates for a commit range and metric.
func (h *APIHandler) Data(w http.ResponseWriter, r *http.Request) {
	log := h.requestLogger(r)
	req := decorateRequest(r)

	var body aggregation.DataRequest
	if err := req.BodyAs(w, &body); err != nil {
		h.badBody(w, err, log)
		return
	}

	h.pool.SubmitWait(func() {
		snapshot := h.store.Current()
		resp, err := h.engine.Data(snapshot, body)
		if err != nil {
			log.Error().Err(err).Msg("data aggregation failed")
			h.errorResponse(w, http.StatusInternalServerError, err.Error(), log)
			return
		}
		h.packedResponse(w, req, resp, log)
	})
}
