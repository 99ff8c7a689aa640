package rest_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gammazero/workerpool"
	"github.com/gorilla/mux"

	"github.com/compilerbench/perfsite/engine/site/rest"
	"github.com/compilerbench/perfsite/model/bench"
	"github.com/compilerbench/perfsite/module/aggregation"
	"github.com/compilerbench/perfsite/module/metrics"
	"github.com/compilerbench/perfsite/module/refresh"
	"github.com/compilerbench/perfsite/module/resolver"
	"github.com/compilerbench/perfsite/module/store"
	"github.com/compilerbench/perfsite/utils/unittest"
)

// stubFetcher implements refresh.Fetcher. An optional barrier keeps the
// refresh in flight until the test releases it.
type stubFetcher struct {
	err     error
	entered chan struct{}
	barrier chan struct{}
}

func (f *stubFetcher) Update(context.Context) error {
	if f.entered != nil {
		close(f.entered)
	}
	if f.barrier != nil {
		<-f.barrier
	}
	return f.err
}

// stubLoader implements refresh.Loader.
type stubLoader struct {
	snapshot *bench.Snapshot
	err      error
}

func (l *stubLoader) Load(context.Context) (*bench.Snapshot, error) {
	return l.snapshot, l.err
}

type testAPI struct {
	router  *mux.Router
	store   *store.Store
	fetcher *stubFetcher
	loader  *stubLoader
}

func newTestAPI(t *testing.T, snapshot *bench.Snapshot) *testAPI {
	logger := unittest.Logger()
	collector := metrics.NewNoopCollector()

	st := store.New(logger, collector, snapshot)
	fetcher := &stubFetcher{}
	loader := &stubLoader{snapshot: snapshot}
	coordinator := refresh.NewCoordinator(logger, st, fetcher, loader, collector)

	pool := workerpool.New(2)
	t.Cleanup(pool.StopWait)

	engine := aggregation.New(resolver.New(), bench.VersionSupportsIncremental)
	api := rest.NewAPIHandler(logger, st, engine, coordinator, pool)

	return &testAPI{
		router:  rest.NewRouter(api, logger, collector),
		store:   st,
		fetcher: fetcher,
		loader:  loader,
	}
}

func (a *testAPI) executeRequest(req *http.Request) *httptest.ResponseRecorder {
	rr := httptest.NewRecorder()
	a.router.ServeHTTP(rr, req)
	return rr
}

// measuredDay builds one commit with a clean and a println-patched debug run
// of a single benchmark, the minimal shape the day and graph endpoints accept.
func measuredDay(sha string, day int, clean, patched float64) *bench.CommitData {
	return unittest.CommitDataFixture(
		unittest.CommitFixture(sha, unittest.DateFixture(day)),
		map[string]bench.BenchmarkResult{
			"syntex": unittest.BenchmarkFixture(
				unittest.RunFixture(unittest.WithStat("wall-time", clean)),
				unittest.RunFixture(
					unittest.WithScenario(bench.ScenarioPatchedIncremental),
					unittest.WithPatch(bench.PatchPrintln),
					unittest.WithStat("wall-time", patched),
				),
			),
		},
	)
}

// apiSnapshot is the dataset most endpoint tests run against: two measured
// days plus beta and master artifact entries for the dashboard.
func apiSnapshot() *bench.Snapshot {
	beta := unittest.CommitDataFixture(
		unittest.CommitFixture("beta", unittest.DateFixture(1)),
		map[string]bench.BenchmarkResult{
			"syntex": unittest.BenchmarkFixture(
				unittest.RunFixture(unittest.WithStat("wall-time", 10.0)),
			),
		},
	)
	return unittest.SnapshotWithArtifactsFixture(
		map[string]*bench.CommitData{"beta": beta},
		measuredDay("aaaa0001", 1, 10.0, 5.0),
		measuredDay("bbbb0002", 2, 12.0, 6.0),
	)
}
