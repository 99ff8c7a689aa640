package site_test

import (
	"context"
	"io"
	"net/http"
	"testing"
	"time"

	"github.com/gammazero/workerpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/compilerbench/perfsite/engine/site"
	"github.com/compilerbench/perfsite/engine/site/rest"
	"github.com/compilerbench/perfsite/model/bench"
	"github.com/compilerbench/perfsite/module/aggregation"
	"github.com/compilerbench/perfsite/module/irrecoverable"
	"github.com/compilerbench/perfsite/module/metrics"
	"github.com/compilerbench/perfsite/module/refresh"
	"github.com/compilerbench/perfsite/module/resolver"
	"github.com/compilerbench/perfsite/module/store"
	"github.com/compilerbench/perfsite/utils/unittest"
)

type noopFetcher struct{}

func (noopFetcher) Update(context.Context) error { return nil }

type fixedLoader struct {
	snapshot *bench.Snapshot
}

func (l fixedLoader) Load(context.Context) (*bench.Snapshot, error) {
	return l.snapshot, nil
}

func TestEngineServesAndShutsDown(t *testing.T) {
	logger := unittest.Logger()
	collector := metrics.NewNoopCollector()
	snapshot := unittest.SnapshotFixture(
		unittest.CommitDataFixture(
			unittest.CommitFixture("cafe0001", unittest.DateFixture(1)),
			map[string]bench.BenchmarkResult{
				"syntex": unittest.BenchmarkFixture(unittest.RunFixture()),
			},
		),
	)

	st := store.New(logger, collector, snapshot)
	coordinator := refresh.NewCoordinator(logger, st, noopFetcher{}, fixedLoader{snapshot}, collector)
	pool := workerpool.New(2)
	t.Cleanup(pool.StopWait)

	engineAPI := aggregation.New(resolver.New(), bench.VersionSupportsIncremental)
	api := rest.NewAPIHandler(logger, st, engineAPI, coordinator, pool)

	eng := site.NewEngine(logger, "127.0.0.1:0", api, collector)

	ctx, cancel := irrecoverable.NewMockSignalerContextWithCancel(t, context.Background())
	eng.Start(ctx)
	unittest.RequireReturnsBefore(t, func() { <-eng.Ready() }, 5*time.Second)

	resp, err := http.Get("http://" + eng.Addr().String() + "/info")
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.NoError(t, resp.Body.Close())

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), `"crates"`)

	cancel()
	unittest.RequireReturnsBefore(t, func() { <-eng.Done() }, 5*time.Second)
}
