package aggregation_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/compilerbench/perfsite/model/bench"
	"github.com/compilerbench/perfsite/utils/unittest"
)

func summarizedCommit(sha string, day int, summary string) *bench.CommitData {
	return unittest.CommitDataFixture(
		bench.Commit{SHA: sha, Date: unittest.DateFixture(day), Summary: summary},
		map[string]bench.BenchmarkResult{
			"syntex": unittest.BenchmarkFixture(unittest.RunFixture()),
		},
	)
}

func TestPRCommit(t *testing.T) {
	snapshot := unittest.SnapshotFixture(
		summarizedCommit("aaaa0001", 1, "Auto merge of #4242 - rollup"),
		summarizedCommit("bbbb0002", 2, "Auto merge of #4242 - retry"),
		summarizedCommit("cccc0003", 3, "Auto merge of #5000 - other"),
	)
	engine := newEngine()

	t.Run("oldest mention wins", func(t *testing.T) {
		resp := engine.PRCommit(snapshot, 4242)
		require.NotNil(t, resp.Commit)
		assert.Equal(t, "aaaa0001", *resp.Commit)
	})

	t.Run("no mention is not an error", func(t *testing.T) {
		resp := engine.PRCommit(snapshot, 9999)
		assert.Nil(t, resp.Commit)
	})
}

func TestDateCommit(t *testing.T) {
	snapshot := unittest.SnapshotFixture(
		summarizedCommit("aaaa0001", 1, "one"),
		summarizedCommit("bbbb0002", 2, "two"),
		summarizedCommit("cccc0003", 3, "three"),
	)
	engine := newEngine()

	t.Run("newest strictly before", func(t *testing.T) {
		resp := engine.DateCommit(snapshot, unittest.DateFixture(3))
		require.NotNil(t, resp.Commit)
		assert.Equal(t, "bbbb0002", *resp.Commit)

		resp = engine.DateCommit(snapshot, unittest.DateFixture(3).Add(time.Minute))
		require.NotNil(t, resp.Commit)
		assert.Equal(t, "cccc0003", *resp.Commit)
	})

	t.Run("nothing before the dataset", func(t *testing.T) {
		resp := engine.DateCommit(snapshot, unittest.DateFixture(1))
		assert.Nil(t, resp.Commit)
	})
}
