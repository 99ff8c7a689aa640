// Package store provides the in-memory snapshot store shared by the request
// handlers and the refresh coordinator.
package store

import (
	"sync"

	"github.com/rs/zerolog"

	"github.com/compilerbench/perfsite/model/bench"
	"github.com/compilerbench/perfsite/module"
)

// Store holds the current snapshot behind a read/write guard. Reads share
// the lock and proceed concurrently; Replace takes it exclusively for the
// duration of the pointer swap only, so a refresh never stalls readers for
// the cost of building the new snapshot. Snapshots handed out by Current
// must be treated as immutable.
type Store struct {
	mu       sync.RWMutex
	snapshot *bench.Snapshot

	log     zerolog.Logger
	metrics module.SnapshotMetrics
}

var _ module.SnapshotStore = (*Store)(nil)

// New creates a store seeded with the initial snapshot. The store is never
// without a snapshot: the caller must load one before serving.
func New(log zerolog.Logger, metrics module.SnapshotMetrics, initial *bench.Snapshot) *Store {
	s := &Store{
		snapshot: initial,
		log:      log.With().Str("component", "snapshot_store").Logger(),
		metrics:  metrics,
	}
	s.metrics.SnapshotReplaced(len(initial.Commits), initial.LastDate)
	return s
}

// Current returns the snapshot all in-flight requests should read.
func (s *Store) Current() *bench.Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshot
}

// Replace atomically publishes a fully-built snapshot.
func (s *Store) Replace(snapshot *bench.Snapshot) {
	s.mu.Lock()
	s.snapshot = snapshot
	s.mu.Unlock()

	s.log.Info().
		Int("commits", len(snapshot.Commits)).
		Time("last_date", snapshot.LastDate).
		Msg("snapshot replaced")
	s.metrics.SnapshotReplaced(len(snapshot.Commits), snapshot.LastDate)
}
