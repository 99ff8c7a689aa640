package bench

import (
	"fmt"
	"sort"
	"time"
)

// Snapshot is the complete in-memory benchmark dataset at one point in time.
// A snapshot is immutable once published: refreshes build a new one and swap
// it in whole, so readers never observe a partially-updated dataset.
type Snapshot struct {
	// Commits is the benchmarked commit history, ordered by date ascending.
	// Never empty once a snapshot has been published.
	Commits []*CommitData

	// ArtifactData holds the sweeps for named reference builds, keyed by
	// stable release identifiers such as "1.24.0" or "beta".
	ArtifactData map[string]*CommitData

	// CrateList and StatList are the sorted benchmark and metric names known
	// to this dataset, used to populate UI selectors.
	CrateList []string
	StatList  []string

	// LastDate is the date of the most recent commit.
	LastDate time.Time
}

// LastCommit returns the most recent commit's data, or nil for an empty
// snapshot.
func (s *Snapshot) LastCommit() *CommitData {
	if len(s.Commits) == 0 {
		return nil
	}
	return s.Commits[len(s.Commits)-1]
}

// NewSnapshot assembles a snapshot from raw commit sweeps and reference
// builds: commits are ordered by date, and the benchmark/metric name lists
// are derived from all sweeps. A dataset without commits is rejected so the
// store can rely on Commits being non-empty.
func NewSnapshot(commits []*CommitData, artifacts map[string]*CommitData) (*Snapshot, error) {
	if len(commits) == 0 {
		return nil, fmt.Errorf("dataset contains no commits")
	}

	sorted := make([]*CommitData, len(commits))
	copy(sorted, commits)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Commit.Date.Before(sorted[j].Commit.Date)
	})

	crates := make(map[string]struct{})
	stats := make(map[string]struct{})
	collect := func(cd *CommitData) {
		for name, result := range cd.Benchmarks {
			crates[name] = struct{}{}
			for _, run := range result.Runs {
				for stat := range run.Stats {
					stats[stat] = struct{}{}
				}
			}
		}
	}
	for _, cd := range sorted {
		collect(cd)
	}
	for _, cd := range artifacts {
		collect(cd)
	}

	if artifacts == nil {
		artifacts = make(map[string]*CommitData)
	}

	return &Snapshot{
		Commits:      sorted,
		ArtifactData: artifacts,
		CrateList:    sortedKeys(crates),
		StatList:     sortedKeys(stats),
		LastDate:     sorted[len(sorted)-1].Commit.Date,
	}, nil
}

func sortedKeys(set map[string]struct{}) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
