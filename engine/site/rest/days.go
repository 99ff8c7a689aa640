package rest

import (
	"net/http"

	"github.com/compilerbench/perfsite/module/aggregation"
)

// Days serves the two endpoint aggregates of a commit range, for
// side-by-side comparison.
func (h *APIHandler) Days(w http.ResponseWriter, r *http.Request) {
	log := h.requestLogger(r)
	req := decorateRequest(r)

	var body aggregation.DaysRequest
	if err := req.BodyAs(w, &body); err != nil {
		h.badBody(w, err, log)
		return
	}

	h.pool.SubmitWait(func() {
		snapshot := h.store.Current()
		resp, err := h.engine.Days(snapshot, body)
		if err != nil {
			log.Error().Err(err).Msg("days aggregation failed")
			h.errorResponse(w, http.StatusInternalServerError, err.Error(), log)
			return
		}
		h.packedResponse(w, req, resp, log)
	})
}
