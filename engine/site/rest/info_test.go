package rest_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInfo(t *testing.T) {
	api := newTestAPI(t, apiSnapshot())

	rr := api.executeRequest(httptest.NewRequest(http.MethodGet, "/info", nil))

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "application/json; charset=UTF-8", rr.Header().Get("Content-Type"))

	expected := `{
		"crates": ["syntex"],
		"stats": ["wall-time"],
		"as_of": "2018-03-02T12:00:00Z"
	}`
	assert.JSONEq(t, expected, rr.Body.String())
}
