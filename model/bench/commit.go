package bench

import "time"

// Commit identifies one commit of the compiler under measurement.
type Commit struct {
	SHA     string    `json:"sha" msgpack:"sha"`
	Date    time.Time `json:"date" msgpack:"date"`
	Summary string    `json:"summary" msgpack:"summary"`
}

/// BenchmarkResult holds one benchmark's outcome for a commit: either the
// recorded runs or the reason the benchmark failed to build/run. Failures
// are legitimate data and are skipped during aggregation, never treated as
// zero.
type BenchmarkResult struct {
	Runs   []Run  `json:"runs,omitempty"`
	Failed string `json:"failed,omitempty"`
}

// Ok reports whether the benchmark produced usable runs.
func (b BenchmarkResult) Ok() bool {
	return b.Failed == ""
}

// CommitData is one commit's full benchmark sweep, keyed by benchmark name.
type CommitData struct {
	Commit     Commit                     `json:"commit"`
	Benchmarks map[string]BenchmarkResult `json:"benchmarks"`
}
