package rest_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRouterRejectsUnknownPath(t *testing.T) {
	api := newTestAPI(t, apiSnapshot())

	rr := api.executeRequest(httptest.NewRequest(http.MethodGet, "/nope", nil))
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestRouterRejectsWrongMethod(t *testing.T) {
	api := newTestAPI(t, apiSnapshot())

	for _, req := range []*http.Request{
		httptest.NewRequest(http.MethodGet, "/data", nil),
		httptest.NewRequest(http.MethodDelete, "/info", nil),
		httptest.NewRequest(http.MethodPost, "/pr_commit", nil),
	} {
		rr := api.executeRequest(req)
		assert.Equal(t, http.StatusMethodNotAllowed, rr.Code, "%s %s", req.Method, req.URL.Path)
	}
}

// The update hook is method-agnostic: repository hosts disagree on the verb
// they deliver webhooks with.
func TestRouterAcceptsAnyMethodForOnPush(t *testing.T) {
	api := newTestAPI(t, apiSnapshot())

	for _, method := range []string{http.MethodGet, http.MethodPost, http.MethodPut} {
		rr := api.executeRequest(httptest.NewRequest(method, "/onpush", nil))
		require.Equal(t, http.StatusOK, rr.Code, method)
	}
}
