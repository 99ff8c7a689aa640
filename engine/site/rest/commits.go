package rest

import (
	"fmt"
	"net/http"
	"strconv"
	"time"
)

// PRCommit looks up the first benchmarked commit referencing a pull request.
func (h *APIHandler) PRCommit(w http.ResponseWriter, r *http.Request) {
	log := h.requestLogger(r)
	req := decorateRequest(r)

	raw := req.GetQueryParam("pr")
	pr, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		h.errorResponse(w, http.StatusBadRequest, fmt.Sprintf("invalid pr number %q", raw), log)
		return
	}

	snapshot := h.store.Current()
	h.jsonResponse(w, h.engine.PRCommit(snapshot, pr), log)
}

// DateCommit looks up the newest benchmarked commit before a date.
func (h *APIHandler) DateCommit(w http.ResponseWriter, r *http.Request) {
	log := h.requestLogger(r)
	req := decorateRequest(r)

	raw := req.GetQueryParam("date")
	date, err := parseDate(raw)
	if err != nil {
		h.errorResponse(w, http.StatusBadRequest, fmt.Sprintf("invalid date %q", raw), log)
		return
	}

	snapshot := h.store.Current()
	h.jsonResponse(w, h.engine.DateCommit(snapshot, date), log)
}

// parseDate accepts a full timestamp or a plain day, which reads as its
// first instant in UTC.
func parseDate(raw string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, nil
	}
	return time.ParseInLocation("2006-01-02", raw, time.UTC)
}
