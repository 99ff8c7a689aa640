package aggregation_test

import (
	"github.com/compilerbench/perfsite/model/bench"
	"github.com/compilerbench/perfsite/module/aggregation"
	"github.com/compilerbench/perfsite/module/resolver"
	"github.com/compilerbench/perfsite/utils/unittest"
)

func newEngine() *aggregation.Engine {
	return aggregation.New(resolver.New(), bench.VersionSupportsIncremental)
}

func commitData(sha string, day int, benchmarks map[string]bench.BenchmarkResult) *bench.CommitData {
	return unittest.CommitDataFixture(unittest.CommitFixture(sha, unittest.DateFixture(day)), benchmarks)
}

func wallTime(value float64, opts ...func(*bench.Run)) bench.Run {
	all := append([]func(*bench.Run){unittest.WithStat("wall-time", value)}, opts...)
	return unittest.RunFixture(all...)
}
