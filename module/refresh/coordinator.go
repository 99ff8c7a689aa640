// Package refresh coordinates on-demand dataset reloads so that at most one
// runs at a time and a failed reload can never wedge the coordinator.
package refresh

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"go.uber.org/atomic"

	"github.com/compilerbench/perfsite/model/bench"
	"github.com/compilerbench/perfsite/module"
)

// ErrAlreadyUpdating is returned to refresh callers that lose the race
// against an in-flight refresh. It is an acknowledgment, not a failure:
// the in-flight refresh will publish its result for everyone.
var ErrAlreadyUpdating = errors.New("refresh already in progress")

// Fetcher brings the external data source up to date before a reload.
type Fetcher interface {
	Update(ctx context.Context) error
}

// Loader builds a complete snapshot from the data source.
type Loader interface {
	Load(ctx context.Context) (*bench.Snapshot, error)
}

// Coordinator serializes refreshes with a single atomic flag: Idle (false)
// or Refreshing (true). Entry is by compare-and-swap only, and the flag is
// reset on every exit path, so a failure leaves the coordinator Idle and
// re-triggerable. The new snapshot is built entirely off the store's
// critical path and swapped in whole.
type Coordinator struct {
	log        zerolog.Logger
	store      module.SnapshotStore
	fetcher    Fetcher
	loader     Loader
	metrics    module.RefreshMetrics
	refreshing *atomic.Bool
}

func NewCoordinator(
	log zerolog.Logger,
	store module.SnapshotStore,
	fetcher Fetcher,
	loader Loader,
	metrics module.RefreshMetrics,
) *Coordinator {
	return &Coordinator{
		log:        log.With().Str("component", "refresh_coordinator").Logger(),
		store:      store,
		fetcher:    fetcher,
		loader:     loader,
		metrics:    metrics,
		refreshing: atomic.NewBool(false),
	}
}

// Refresh runs one fetch, load, replace cycle. A second caller arriving
// while one is in flight receives ErrAlreadyUpdating immediately; refreshes
// are never queued. Errors from the fetch or load leave the current
// snapshot untouched.
func (c *Coordinator) Refresh(ctx context.Context) error {
	if !c.refreshing.CompareAndSwap(false, true) {
		return ErrAlreadyUpdating
	}
	defer c.refreshing.Store(false)

	start := time.Now()
	c.metrics.RefreshStarted()
	success := false
	defer func() {
		c.metrics.RefreshFinished(success, time.Since(start))
	}()

	if err := c.fetcher.Update(ctx); err != nil {
		c.log.Error().Err(err).Msg("could not update data source")
		return fmt.Errorf("could not update data source: %w", err)
	}

	c.log.Info().Msg("updating from filesystem")
	snapshot, err := c.loader.Load(ctx)
	if err != nil {
		c.log.Error().Err(err).Msg("could not rebuild snapshot")
		return fmt.Errorf("could not rebuild snapshot: %w", err)
	}

	c.store.Replace(snapshot)
	success = true

	c.log.Info().
		Time("last_date", snapshot.LastDate).
		Dur("duration", time.Since(start)).
		Msg("refresh complete")
	return nil
}
