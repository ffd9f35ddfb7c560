package cache

import "context"

// SnapshotCache stores the latest serialized dashboard snapshot so the HTTP
// layer can serve data across restarts and before the first in-process
// reconciliation pass finishes.
type SnapshotCache interface {
	// Store persists the serialized snapshot, replacing any previous one.
	Store(ctx context.Context, snapshot []byte) error

	// Load returns the latest snapshot, or nil when none is cached.
	Load(ctx context.Context) ([]byte, error)
}
