package rest

import (
	"net/http"

	"github.com/compilerbench/perfsite/module/aggregation"
)

// Graph serves the plotted series for a commit range and metric.
func (h *APIHandler) Graph(w http.ResponseWriter, r *http.Request) {
	log := h.requestLogger(r)
	req := decorateRequest(r)

	var body aggregation.GraphRequest
	if err := req.BodyAs(w, &body); err != nil {
		h.badBody(w, err, log)
		return
	}

	h.pool.SubmitWait(func() {
		snapshot := h.store.Current()
		resp, err := h.engine.Graph(snapshot, body)
		if err != nil {
			log.Error().Err(err).Msg("graph aggregation failed")
			h.errorResponse(w, http.StatusInternalServerError, err.Error(), log)
			return
		}
		h.packedResponse(w, req, resp, log)
	})
}
