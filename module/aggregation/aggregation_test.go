package aggregation_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/compilerbench/perfsite/model/bench"
	"github.com/compilerbench/perfsite/utils/unittest"
)

func TestInfo(t *testing.T) {
	snapshot := unittest.SnapshotFixture(
		commitData("aaaa0001", 1, map[string]bench.BenchmarkResult{
			"syntex": unittest.BenchmarkFixture(wallTime(10)),
		}),
		commitData("bbbb0002", 2, map[string]bench.BenchmarkResult{
			"regex": unittest.BenchmarkFixture(unittest.RunFixture(unittest.WithStat("instructions", 5))),
		}),
	)

	info := newEngine().Info(snapshot)

	require.Equal(t, []string{"regex", "syntex"}, info.Crates)
	require.Equal(t, []string{"instructions", "wall-time"}, info.Stats)
	assert.Equal(t, unittest.DateFixture(2), info.AsOf)
}
