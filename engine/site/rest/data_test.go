package rest_test

import (
	"compress/gzip"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vmihailenco/msgpack/v4"

	"github.com/compilerbench/perfsite/module/aggregation"
	"github.com/compilerbench/perfsite/utils/unittest"
)

func TestDataQuery(t *testing.T) {
	api := newTestAPI(t, apiSnapshot())

	req := httptest.NewRequest(http.MethodPost, "/data",
		strings.NewReader(`{"start": "", "end": "", "stat": "wall-time"}`))
	rr := api.executeRequest(req)

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "application/octet-stream", rr.Header().Get("Content-Type"))
	assert.Equal(t, "no-cache, no-store", rr.Header().Get("Cache-Control"))

	var days aggregation.DataResponse
	require.NoError(t, msgpack.Unmarshal(rr.Body.Bytes(), &days))

	require.Len(t, days, 2)
	assert.Equal(t, "aaaa0001", days[0].Commit)
	assert.True(t, days[0].Date.Equal(unittest.DateFixture(1)))
	assert.Equal(t, "bbbb0002", days[1].Commit)

	runs := days[1].Data["syntex-debug"]
	require.Len(t, runs, 2)
	assert.Equal(t, "clean", runs[0].Label)
	assert.Equal(t, 12.0, runs[0].Value)
	assert.Equal(t, "patched incremental: println", runs[1].Label)
	assert.Equal(t, 6.0, runs[1].Value)
}

func TestDataQueryCompressesWhenAccepted(t *testing.T) {
	api := newTestAPI(t, apiSnapshot())

	req := httptest.NewRequest(http.MethodPost, "/data",
		strings.NewReader(`{"start": "", "end": "", "stat": "wall-time"}`))
	req.Header.Set("Accept-Encoding", "gzip")
	rr := api.executeRequest(req)

	require.Equal(t, http.StatusOK, rr.Code)
	require.Equal(t, "gzip", rr.Header().Get("Content-Encoding"))

	gz, err := gzip.NewReader(rr.Body)
	require.NoError(t, err)
	raw, err := io.ReadAll(gz)
	require.NoError(t, err)
	require.NoError(t, gz.Close())

	var days aggregation.DataResponse
	require.NoError(t, msgpack.Unmarshal(raw, &days))
	require.Len(t, days, 2)
}

func TestDataQueryRejectsMalformedBody(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		message string
	}{
		{
			name:    "truncated",
			body:    `{"start": `,
			message: "Failed to deserialize request; request body contains badly-formed JSON",
		},
		{
			name:    "unknown field",
			body:    `{"bogus": 1}`,
			message: `Failed to deserialize request; request body contains unknown field "bogus"`,
		},
		{
			name:    "empty",
			body:    ``,
			message: "Failed to deserialize request; request body must not be empty",
		},
		{
			name:    "trailing object",
			body:    `{"stat": "wall-time"}{}`,
			message: "Failed to deserialize request; request body must only contain a single JSON object",
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			api := newTestAPI(t, apiSnapshot())

			rr := api.executeRequest(httptest.NewRequest(http.MethodPost, "/data", strings.NewReader(test.body)))

			assert.Equal(t, http.StatusBadRequest, rr.Code)
			assert.Equal(t, test.message, rr.Body.String())
			assert.Equal(t, "text/plain; charset=utf-8", rr.Header().Get("Content-Type"))
			assert.Equal(t, "no-cache, no-store", rr.Header().Get("Cache-Control"))
		})
	}
}

func TestDataQueryRejectsMistypedField(t *testing.T) {
	api := newTestAPI(t, apiSnapshot())

	rr := api.executeRequest(httptest.NewRequest(http.MethodPost, "/data", strings.NewReader(`{"stat": 7}`)))

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Contains(t, rr.Body.String(),
		`Failed to deserialize request; request body contains an invalid value for the "stat" field`)
}

// countingReader records whether the handler ever read from the body.
type countingReader struct {
	reads int
}

func (r *countingReader) Read([]byte) (int, error) {
	r.reads++
	return 0, io.EOF
}

func TestDataQueryRejectsOversizedBodyUnread(t *testing.T) {
	api := newTestAPI(t, apiSnapshot())

	body := &countingReader{}
	req := httptest.NewRequest(http.MethodPost, "/data", body)
	req.ContentLength = 20001
	rr := api.executeRequest(req)

	assert.Equal(t, http.StatusRequestEntityTooLarge, rr.Code)
	assert.Equal(t, "declared content length 20001 exceeds the 10000 byte limit", rr.Body.String())
	assert.Zero(t, body.reads)
}

func TestDataQueryEmptyRange(t *testing.T) {
	api := newTestAPI(t, apiSnapshot())

	req := httptest.NewRequest(http.MethodPost, "/data",
		strings.NewReader(`{"start": "", "end": "", "stat": "instructions"}`))
	rr := api.executeRequest(req)

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.Equal(t, `empty range: "" to "" contained no commits`, rr.Body.String())
}
