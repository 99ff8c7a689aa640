// Package filesystem loads the benchmark dataset from its on-disk layout: one
// JSON document per benchmarked commit under commits/, and one per reference
// build under artifacts/, named after the release.
package filesystem

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"

	"github.com/hashicorp/go-multierror"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/compilerbench/perfsite/model/bench"
	"github.com/compilerbench/perfsite/module/util"
)

// Loader reads a complete snapshot from dataDir. Parsing is fanned out across
// CPUs; a dataset of several thousand commit files loads in seconds.
type Loader struct {
	log     zerolog.Logger
	dataDir string
}

func NewLoader(log zerolog.Logger, dataDir string) *Loader {
	return &Loader{
		log:     log.With().Str("component", "dataset_loader").Logger(),
		dataDir: dataDir,
	}
}

// Load parses every commit and artifact file and assembles the snapshot.
// Malformed files are all reported in one error rather than one per attempt,
// so a broken ingestion run can be cleaned up in a single pass.
func (l *Loader) Load(ctx context.Context) (*bench.Snapshot, error) {
	commitFiles, err := filepath.Glob(filepath.Join(l.dataDir, "commits", "*.json"))
	if err != nil {
		return nil, fmt.Errorf("could not list commit files: %w", err)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())

	var (
		mu       sync.Mutex
		loaded   int
		failures *multierror.Error
	)
	progress := util.LogProgress("commit data load", len(commitFiles), l.log)

	commits := make([]*bench.CommitData, len(commitFiles))
	for i, path := range commitFiles {
		i, path := i, path
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			cd, err := readCommitData(path)

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				failures = multierror.Append(failures, err)
			} else {
				commits[i] = cd
			}
			progress(loaded)
			loaded++
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("commit data load interrupted: %w", err)
	}

	artifacts, err := l.loadArtifacts()
	if err != nil {
		failures = multierror.Append(failures, err)
	}
	if err := failures.ErrorOrNil(); err != nil {
		return nil, fmt.Errorf("could not load dataset from %s: %w", l.dataDir, err)
	}

	snapshot, err := bench.NewSnapshot(commits, artifacts)
	if err != nil {
		return nil, fmt.Errorf("could not assemble snapshot from %s: %w", l.dataDir, err)
	}

	l.log.Info().
		Int("commits", len(snapshot.Commits)).
		Int("artifacts", len(snapshot.ArtifactData)).
		Time("last_date", snapshot.LastDate).
		Msg("dataset loaded")
	return snapshot, nil
}

// loadArtifacts reads the reference builds. The release name is the file
// stem: artifacts/1.24.0.json holds the "1.24.0" sweep.
func (l *Loader) loadArtifacts() (map[string]*bench.CommitData, error) {
	files, err := filepath.Glob(filepath.Join(l.dataDir, "artifacts", "*.json"))
	if err != nil {
		return nil, fmt.Errorf("could not list artifact files: %w", err)
	}

	var failures *multierror.Error
	artifacts := make(map[string]*bench.CommitData, len(files))
	for _, path := range files {
		cd, err := readCommitData(path)
		if err != nil {
			failures = multierror.Append(failures, err)
			continue
		}
		version := strings.TrimSuffix(filepath.Base(path), ".json")
		artifacts[version] = cd
	}
	return artifacts, failures.ErrorOrNil()
}

func readCommitData(path string) (*bench.CommitData, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("could not read %s: %w", path, err)
	}

	var cd bench.CommitData
	if err := json.Unmarshal(raw, &cd); err != nil {
		return nil, fmt.Errorf("could not parse %s: %w", path, err)
	}
	if cd.Commit.SHA == "" {
		return nil, fmt.Errorf("could not parse %s: missing commit sha", path)
	}
	return &cd, nil
}
