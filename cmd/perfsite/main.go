package main

import (
	"context"
	"os"
	"os/signal"
	"runtime"
	"strings"
	"syscall"
	"time"

	"github.com/gammazero/workerpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"github.com/spf13/pflag"

	"github.com/compilerbench/perfsite/engine/site"
	"github.com/compilerbench/perfsite/engine/site/rest"
	"github.com/compilerbench/perfsite/model/bench"
	"github.com/compilerbench/perfsite/module/aggregation"
	"github.com/compilerbench/perfsite/module/irrecoverable"
	"github.com/compilerbench/perfsite/module/metrics"
	"github.com/compilerbench/perfsite/module/refresh"
	"github.com/compilerbench/perfsite/module/resolver"
	"github.com/compilerbench/perfsite/module/store"
	"github.com/compilerbench/perfsite/module/util"
	"github.com/compilerbench/perfsite/storage/filesystem"
)

const (
	startupTimeout  = time.Minute
	shutdownTimeout = 30 * time.Second
)

func main() {
	var (
		listenAddr      string
		dataDir         string
		metricsPort     uint
		poolSize        int
		level           string
		profilerEnabled bool
	)

	pflag.StringVar(&listenAddr, "listen-addr", ":2346", "address the API server listens on")
	pflag.StringVar(&dataDir, "data-dir", "data", "checkout of the benchmark data repository")
	pflag.UintVar(&metricsPort, "metrics-port", 8080, "port for the prometheus metrics endpoint")
	pflag.IntVar(&poolSize, "pool-size", 0, "number of aggregation workers, 0 for one per CPU")
	pflag.StringVar(&level, "loglevel", "info", "level for logging output")
	pflag.BoolVar(&profilerEnabled, "profiler-enabled", false, "serve pprof handlers on the metrics port")
	pflag.Parse()

	zerolog.TimestampFunc = func() time.Time { return time.Now().UTC() }
	log := zerolog.New(os.Stderr).With().Timestamp().Str("service", "perfsite").Logger()

	lvl, err := zerolog.ParseLevel(strings.ToLower(level))
	if err != nil {
		log.Fatal().Err(err).Msg("invalid log level")
	}
	log = log.Level(lvl)

	if poolSize <= 0 {
		poolSize = runtime.NumCPU()
	}

	log.Info().
		Str("data_dir", dataDir).
		Str("listen_addr", listenAddr).
		Int("pool_size", poolSize).
		Msg("perfsite starting up")

	loader := filesystem.NewLoader(log, dataDir)
	initial, err := loader.Load(context.Background())
	if err != nil {
		log.Fatal().Err(err).Msg("could not load initial dataset")
	}

	siteCollector := metrics.NewSiteCollector(prometheus.DefaultRegisterer)
	restCollector := metrics.NewRestCollector(prometheus.DefaultRegisterer)

	st := store.New(log, siteCollector, initial)
	fetcher := filesystem.NewGitFetcher(log, dataDir)
	coordinator := refresh.NewCoordinator(log, st, fetcher, loader, siteCollector)

	pool := workerpool.New(poolSize)
	defer pool.StopWait()

	engine := aggregation.New(resolver.New(), bench.VersionSupportsIncremental)
	api := rest.NewAPIHandler(log, st, engine, coordinator, pool)

	server := site.NewEngine(log, listenAddr, api, restCollector)
	metricsServer := metrics.NewServer(log, metricsPort, profilerEnabled)

	ctx, cancel := context.WithCancel(context.Background())
	signalerCtx, errChan := irrecoverable.WithSignaler(ctx)
	server.Start(signalerCtx)

	select {
	case <-util.AllReady(server, metricsServer):
		log.Info().Str("address", server.Addr().String()).Msg("api server ready")
	case <-time.After(startupTimeout):
		log.Fatal().Msg("server failed to start in time")
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		log.Info().Str("signal", sig.String()).Msg("received signal, shutting down")
	case err := <-errChan:
		log.Error().Err(err).Msg("irrecoverable server error")
	}

	cancel()
	select {
	case <-util.AllDone(server, metricsServer):
	case <-time.After(shutdownTimeout):
		log.Error().Msg("server shutdown timed out")
	}

	log.Info().Msg("perfsite shutdown complete")
}
