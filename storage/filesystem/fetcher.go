package filesystem

import (
	"context"
	"fmt"
	"os/exec"
	"strings"

	"github.com/rs/zerolog"
)

// GitFetcher brings the dataset checkout up to date before a reload. The data
// repository only ever moves forward, so a fast-forward pull is sufficient
// and anything else indicates a rewritten history that needs an operator.
type GitFetcher struct {
	log     zerolog.Logger
	repoDir string
}

func NewGitFetcher(log zerolog.Logger, repoDir string) *GitFetcher {
	return &GitFetcher{
		log:     log.With().Str("component", "git_fetcher").Logger(),
		repoDir: repoDir,
	}
}

func (f *GitFetcher) Update(ctx context.Context) error {
	cmd := exec.CommandContext(ctx, "git", "-C", f.repoDir, "pull", "--ff-only")
	output, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("could not pull %s: %w: %s", f.repoDir, err, strings.TrimSpace(string(output)))
	}

	f.log.Info().
		Str("repo", f.repoDir).
		Str("output", strings.TrimSpace(string(output))).
		Msg("data repository updated")
	return nil
}
