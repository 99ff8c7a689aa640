package aggregation

import (
	"fmt"
	"strings"
	"time"

	"github.com/compilerbench/perfsite/model/bench"
)

// CommitResponse carries an optional commit hash. Absence of a match is
// data, not an error.
type CommitResponse struct {
	Commit *string `json:"commit" msgpack:"commit"`
}

// PRCommit finds the oldest benchmarked commit whose summary references the
// pull request number.
func (e *Engine) PRCommit(snapshot *bench.Snapshot, pr uint64) CommitResponse {
	needle := fmt.Sprintf("#%d", pr)
	for _, commit := range snapshot.Commits {
		if strings.Contains(commit.Commit.Summary, needle) {
			return commitResponse(commit.Commit.SHA)
		}
	}
	return CommitResponse{}
}

// DateCommit finds the newest benchmarked commit strictly before the given
// instant.
func (e *Engine) DateCommit(snapshot *bench.Snapshot, date time.Time) CommitResponse {
	for i := len(snapshot.Commits) - 1; i >= 0; i-- {
		if snapshot.Commits[i].Commit.Date.Before(date) {
			return commitResponse(snapshot.Commits[i].Commit.SHA)
		}
	}
	return CommitResponse{}
}

func commitResponse(sha string) CommitResponse {
	return CommitResponse{Commit: &sha}
}
