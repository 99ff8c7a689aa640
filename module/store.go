package module

import "github.com/compilerbench/perfsite/model/bench"

// SnapshotStore owns the current benchmark dataset. Current returns the
// snapshot shared by all concurrent readers without blocking them against
// each other; Replace atomically swaps in a fully-built snapshot, waiting
// only for in-flight reads, never for the cost of building the replacement.
// Readers always observe one complete snapshot, never a mix of two.
type SnapshotStore interface {
	Current() *bench.Snapshot
	Replace(snapshot *bench.Snapshot)
}
