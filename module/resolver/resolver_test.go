package resolver_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/compilerbench/perfsite/model/bench"
	"github.com/compilerbench/perfsite/module/resolver"
	"github.com/compilerbench/perfsite/utils/unittest"
)

// fixture dataset: one commit per day with a gap on day 4
func testSnapshot() *bench.Snapshot {
	return unittest.SnapshotFixture(
		commitDay("aaaa0001", 1),
		commitDay("bbbb0002", 2),
		commitDay("cccc0003", 3),
		commitDay("dddd0005", 5),
	)
}

func commitDay(sha string, day int) *bench.CommitData {
	return unittest.CommitDataFixture(
		unittest.CommitFixture(sha, unittest.DateFixture(day)),
		map[string]bench.BenchmarkResult{
			"syntex": unittest.BenchmarkFixture(unittest.RunFixture()),
		},
	)
}

func TestFindCommitDefaults(t *testing.T) {
	r := resolver.New()
	snapshot := testSnapshot()

	first, err := r.FindCommit(snapshot, "", true)
	require.NoError(t, err)
	assert.Equal(t, "aaaa0001", first.Commit.SHA)

	last, err := r.FindCommit(snapshot, "", false)
	require.NoError(t, err)
	assert.Equal(t, "dddd0005", last.Commit.SHA)
}

func TestFindCommitBySHA(t *testing.T) {
	r := resolver.New()
	snapshot := testSnapshot()

	t.Run("full hash", func(t *testing.T) {
		commit, err := r.FindCommit(snapshot, "cccc0003", false)
		require.NoError(t, err)
		assert.Equal(t, "cccc0003", commit.Commit.SHA)
	})

	t.Run("prefix", func(t *testing.T) {
		commit, err := r.FindCommit(snapshot, "bbbb", true)
		require.NoError(t, err)
		assert.Equal(t, "bbbb0002", commit.Commit.SHA)
	})

	t.Run("unknown", func(t *testing.T) {
		_, err := r.FindCommit(snapshot, "zzzz", false)
		require.EqualError(t, err, `no commit found for "zzzz"`)
	})
}

func TestFindCommitByDate(t *testing.T) {
	r := resolver.New()
	snapshot := testSnapshot()

	t.Run("exact day", func(t *testing.T) {
		earlier, err := r.FindCommit(snapshot, "2018-03-02", true)
		require.NoError(t, err)
		assert.Equal(t, "bbbb0002", earlier.Commit.SHA)

		later, err := r.FindCommit(snapshot, "2018-03-02", false)
		require.NoError(t, err)
		assert.Equal(t, "bbbb0002", later.Commit.SHA)
	})

	t.Run("gap day falls back by preference", func(t *testing.T) {
		earlier, err := r.FindCommit(snapshot, "2018-03-04", true)
		require.NoError(t, err)
		assert.Equal(t, "cccc0003", earlier.Commit.SHA)

		later, err := r.FindCommit(snapshot, "2018-03-04", false)
		require.NoError(t, err)
		assert.Equal(t, "dddd0005", later.Commit.SHA)
	})

	t.Run("before dataset", func(t *testing.T) {
		_, err := r.FindCommit(snapshot, "2018-02-01", true)
		require.EqualError(t, err, `no commit found for "2018-02-01"`)

		commit, err := r.FindCommit(snapshot, "2018-02-01", false)
		require.NoError(t, err)
		assert.Equal(t, "aaaa0001", commit.Commit.SHA)
	})

	t.Run("after dataset", func(t *testing.T) {
		commit, err := r.FindCommit(snapshot, "2018-04-01", true)
		require.NoError(t, err)
		assert.Equal(t, "dddd0005", commit.Commit.SHA)

		_, err = r.FindCommit(snapshot, "2018-04-01", false)
		require.EqualError(t, err, `no commit found for "2018-04-01"`)
	})
}

func TestDataRange(t *testing.T) {
	r := resolver.New()
	snapshot := testSnapshot()

	t.Run("defaults span the dataset", func(t *testing.T) {
		commits, err := r.DataRange(snapshot, "", "")
		require.NoError(t, err)
		assert.Equal(t, snapshot.Commits, commits)
	})

	t.Run("hash endpoints are inclusive", func(t *testing.T) {
		commits, err := r.DataRange(snapshot, "bbbb0002", "cccc0003")
		require.NoError(t, err)
		require.Len(t, commits, 2)
		assert.Equal(t, "bbbb0002", commits[0].Commit.SHA)
		assert.Equal(t, "cccc0003", commits[1].Commit.SHA)
	})

	t.Run("date endpoints resolve outward", func(t *testing.T) {
		commits, err := r.DataRange(snapshot, "2018-03-02", "2018-03-05")
		require.NoError(t, err)
		require.Len(t, commits, 3)
		assert.Equal(t, "bbbb0002", commits[0].Commit.SHA)
		assert.Equal(t, "dddd0005", commits[2].Commit.SHA)
	})

	t.Run("inverted range is empty", func(t *testing.T) {
		commits, err := r.DataRange(snapshot, "dddd0005", "aaaa0001")
		require.NoError(t, err)
		assert.Empty(t, commits)
	})

	t.Run("bad selector propagates", func(t *testing.T) {
		_, err := r.DataRange(snapshot, "zzzz", "")
		require.EqualError(t, err, `no commit found for "zzzz"`)
	})
}
