// Package aggregation turns raw per-commit benchmark runs into the response
// shapes served by the dashboard API. Every entry point is a pure function
// of the snapshot passed in, so the engine is trivially safe under any
// interleaving of queries and refreshes.
package aggregation

import (
	"time"

	"github.com/compilerbench/perfsite/model/bench"
)

// CommitResolver resolves user-supplied commit selectors (hashes, dates, or
// empty defaults) against a snapshot.
type CommitResolver interface {
	// FindCommit resolves a single selector. preferEarlier breaks inexact
	// date matches toward the nearest earlier commit, otherwise toward the
	// nearest later one.
	FindCommit(snapshot *bench.Snapshot, selector string, preferEarlier bool) (*bench.CommitData, error)

	// DataRange returns the contiguous run of commits between the two
	// selectors, inclusive. An inverted range resolves to an empty slice.
	DataRange(snapshot *bench.Snapshot, start, end string) ([]*bench.CommitData, error)
}

// Engine implements the read-only aggregation queries.
type Engine struct {
	resolver            CommitResolver
	supportsIncremental func(version string) bool
}

func New(resolver CommitResolver, supportsIncremental func(string) bool) *Engine {
	return &Engine{
		resolver:            resolver,
		supportsIncremental: supportsIncremental,
	}
}

// InfoResponse reports the dataset's benchmark and metric names and its
// freshness, for populating UI selectors.
type InfoResponse struct {
	Crates []string  `json:"crates" msgpack:"crates"`
	Stats  []string  `json:"stats" msgpack:"stats"`
	AsOf   time.Time `json:"as_of" msgpack:"as_of"`
}

func (e *Engine) Info(snapshot *bench.Snapshot) InfoResponse {
	return InfoResponse{
		Crates: snapshot.CrateList,
		Stats:  snapshot.StatList,
		AsOf:   snapshot.LastDate,
	}
}
