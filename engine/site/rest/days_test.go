package rest_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vmihailenco/msgpack/v4"

	"github.com/compilerbench/perfsite/module/aggregation"
)

func TestDaysQuery(t *testing.T) {
	api := newTestAPI(t, apiSnapshot())

	req := httptest.NewRequest(http.MethodPost, "/get",
		strings.NewReader(`{"start": "aaaa0001", "end": "bbbb0002", "stat": "wall-time"}`))
	rr := api.executeRequest(req)

	require.Equal(t, http.StatusOK, rr.Code)

	var resp aggregation.DaysResponse
	require.NoError(t, msgpack.Unmarshal(rr.Body.Bytes(), &resp))

	assert.Equal(t, "aaaa0001", resp.A.Commit)
	assert.Equal(t, "bbbb0002", resp.B.Commit)

	runs := resp.B.Data["syntex-debug"]
	require.Len(t, runs, 2)
	assert.Equal(t, 12.0, runs[0].Value)
}

func TestDaysQueryUnknownCommit(t *testing.T) {
	api := newTestAPI(t, apiSnapshot())

	req := httptest.NewRequest(http.MethodPost, "/get",
		strings.NewReader(`{"start": "ffff9999", "end": "", "stat": "wall-time"}`))
	rr := api.executeRequest(req)

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.Equal(t, `no commit found for "ffff9999"`, rr.Body.String())
}
