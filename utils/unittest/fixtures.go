package unittest

import (
	"fmt"
	"time"

	"github.com/compilerbench/perfsite/model/bench"
)

// DateFixture returns an absolute UTC timestamp on the fixture calendar; day
// 1 is 2018-03-01. Offsets keep related fixtures in date order.
func DateFixture(day int) time.Time {
	return time.Date(2018, time.March, 1, 12, 0, 0, 0, time.UTC).AddDate(0, 0, day-1)
}

// RunFixture returns a debug-tier clean run with a single wall-time sample.
func RunFixture(opts ...func(*bench.Run)) bench.Run {
	run := bench.Run{
		Scenario: bench.Scenario{Kind: bench.ScenarioClean},
		Stats:    map[string]float64{"wall-time": 10.0},
	}
	for _, apply := range opts {
		apply(&run)
	}
	return run
}

func WithRelease() func(*bench.Run) {
	return func(r *bench.Run) {
		r.Release = true
		r.Check = false
	}
}

func WithCheck() func(*bench.Run) {
	return func(r *bench.Run) {
		r.Check = true
		r.Release = false
	}
}

func WithNLL() func(*bench.Run) {
	return func(r *bench.Run) {
		r.NLL = true
	}
}

func WithScenario(kind bench.ScenarioKind) func(*bench.Run) {
	return func(r *bench.Run) {
		r.Scenario = bench.Scenario{Kind: kind}
	}
}

func WithPatch(patch string) func(*bench.Run) {
	return func(r *bench.Run) {
		r.Scenario = bench.Scenario{Kind: bench.ScenarioPatchedIncremental, Patch: patch}
	}
}

// WithStat replaces the run's samples with the single given metric.
func WithStat(name string, value float64) func(*bench.Run) {
	return func(r *bench.Run) {
		r.Stats = map[string]float64{name: value}
	}
}

func BenchmarkFixture(runs ...bench.Run) bench.BenchmarkResult {
	return bench.BenchmarkResult{Runs: runs}
}

func FailedBenchmarkFixture(reason string) bench.BenchmarkResult {
	return bench.BenchmarkResult{Failed: reason}
}

func CommitFixture(sha string, date time.Time) bench.Commit {
	return bench.Commit{
		SHA:     sha,
		Date:    date,
		Summary: fmt.Sprintf("commit %s", sha),
	}
}

func CommitDataFixture(commit bench.Commit, benchmarks map[string]bench.BenchmarkResult) *bench.CommitData {
	return &bench.CommitData{
		Commit:     commit,
		Benchmarks: benchmarks,
	}
}

// SnapshotFixture builds a snapshot from the given sweeps, panicking on an
// invalid dataset so fixture misuse fails loudly.
func SnapshotFixture(commits ...*bench.CommitData) *bench.Snapshot {
	return SnapshotWithArtifactsFixture(nil, commits...)
}

func SnapshotWithArtifactsFixture(artifacts map[string]*bench.CommitData, commits ...*bench.CommitData) *bench.Snapshot {
	snapshot, err := bench.NewSnapshot(commits, artifacts)
	if err != nil {
		panic(fmt.Sprintf("invalid snapshot fixture: %v", err))
	}
	return snapshot
}
