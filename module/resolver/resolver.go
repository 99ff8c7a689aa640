// Package resolver maps user-supplied commit selectors to snapshot commits.
// A selector is a full or prefix commit hash, a YYYY-MM-DD date, or an
// empty string for the dataset edge.
package resolver

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/compilerbench/perfsite/model/bench"
	"github.com/compilerbench/perfsite/module/aggregation"
)

const dateLayout = "2006-01-02"

type Resolver struct{}

var _ aggregation.CommitResolver = (*Resolver)(nil)

func New() *Resolver {
	return &Resolver{}
}

// FindCommit resolves a single selector. For date selectors that land
// between commits, preferEarlier picks which side to fall back toward. An
// empty selector resolves to the oldest commit when preferEarlier is set
// and the newest otherwise.
func (r *Resolver) FindCommit(snapshot *bench.Snapshot, selector string, preferEarlier bool) (*bench.CommitData, error) {
	commits := snapshot.Commits
	if len(commits) == 0 {
		return nil, errors.New("dataset contains no commits")
	}

	if selector == "" {
		if preferEarlier {
			return commits[0], nil
		}
		return commits[len(commits)-1], nil
	}

	if day, err := time.ParseInLocation(dateLayout, selector, time.UTC); err == nil {
		return findByDate(commits, day, preferEarlier, selector)
	}

	for _, commit := range commits {
		if strings.HasPrefix(commit.Commit.SHA, selector) {
			return commit, nil
		}
	}
	return nil, fmt.Errorf("no commit found for %q", selector)
}

// findByDate picks the newest commit no later than the day's end, or the
// oldest commit no earlier than its start.
func findByDate(commits []*bench.CommitData, day time.Time, preferEarlier bool, selector string) (*bench.CommitData, error) {
	if preferEarlier {
		end := day.Add(24 * time.Hour)
		for i := len(commits) - 1; i >= 0; i-- {
			if commits[i].Commit.Date.Before(end) {
				return commits[i], nil
			}
		}
	} else {
		for _, commit := range commits {
			if !commit.Commit.Date.Before(day) {
				return commit, nil
			}
		}
	}
	return nil, fmt.Errorf("no commit found for %q", selector)
}

// DataRange returns the contiguous commits between the two selectors,
// inclusive. Start selectors fall back toward older commits and end
// selectors toward newer ones, so a sparse range resolves outward rather
// than silently shrinking. An inverted range yields no commits.
func (r *Resolver) DataRange(snapshot *bench.Snapshot, start, end string) ([]*bench.CommitData, error) {
	first, err := r.FindCommit(snapshot, start, true)
	if err != nil {
		return nil, err
	}
	last, err := r.FindCommit(snapshot, end, false)
	if err != nil {
		return nil, err
	}

	startIdx := indexOf(snapshot.Commits, first)
	endIdx := indexOf(snapshot.Commits, last)
	if startIdx < 0 || endIdx < 0 || startIdx > endIdx {
		return nil, nil
	}
	return snapshot.Commits[startIdx : endIdx+1], nil
}

func indexOf(commits []*bench.CommitData, target *bench.CommitData) int {
	for i, commit := range commits {
		if commit == target {
			return i
		}
	}
	return -1
}
