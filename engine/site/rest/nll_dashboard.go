package rest

import (
	"net/http"

	"github.com/compilerbench/perfsite/module/aggregation"
)

// NLLDashboard serves the borrow-check comparison for a single commit.
func (h *APIHandler) NLLDashboard(w http.ResponseWriter, r *http.Request) {
	log := h.requestLogger(r)
	req := decorateRequest(r)

	var body aggregation.NLLRequest
	if err := req.BodyAs(w, &body); err != nil {
		h.badBody(w, err, log)
		return
	}

	h.pool.SubmitWait(func() {
		snapshot := h.store.Current()
		resp, err := h.engine.NLLDashboard(snapshot, body)
		if err != nil {
			log.Error().Err(err).Msg("nll aggregation failed")
			h.errorResponse(w, http.StatusInternalServerError, err.Error(), log)
			return
		}
		h.packedResponse(w, req, resp, log)
	})
}
