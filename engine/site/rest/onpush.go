package rest

import (
	"context"
	"errors"
	"net/http"

	"github.com/compilerbench/perfsite/module/refresh"
)

// OnPush triggers a refresh from the data source. A refresh already in
// flight answers 200 with a distinct body instead of queueing another.
func (h *APIHandler) OnPush(w http.ResponseWriter, r *http.Request) {
	log := h.requestLogger(r)

	var refreshErr error
	h.pool.SubmitWait(func() {
		// not tied to the request context: a hook hanging up must not abort
		// a half-finished reload
		refreshErr = h.coordinator.Refresh(context.Background())
	})

	switch {
	case refreshErr == nil:
		h.jsonResponse(w, "Successfully updated from filesystem", log)
	case errors.Is(refreshErr, refresh.ErrAlreadyUpdating):
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		if _, err := w.Write([]byte("Already updating!")); err != nil {
			log.Error().Err(err).Msg("failed to write response")
		}
	default:
		log.Error().Err(refreshErr).Msg("refresh failed")
		h.errorResponse(w, http.StatusInternalServerError, "Internal Server Error: "+refreshErr.Error(), log)
	}
}
