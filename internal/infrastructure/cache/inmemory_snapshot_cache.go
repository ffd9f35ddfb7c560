package cache

import (
	"context"
	"sync"
	"time"
)

// InMemorySnapshotCache implements SnapshotCache in process memory. Suitable
// for single-instance deployments; the snapshot does not survive restarts.
type InMemorySnapshotCache struct {
	mu       sync.RWMutex
	snapshot []byte
	storedAt time.Time
	ttl      time.Duration

	// now is injectable for expiry tests.
	now func() time.Time
}

var _ SnapshotCache = (*InMemorySnapshotCache)(nil)

// NewInMemorySnapshotCache creates an in-memory snapshot cache. A zero ttl
// disables expiry.
func NewInMemorySnapshotCache(ttl time.Duration) *InMemorySnapshotCache {
	return &InMemorySnapshotCache{
		ttl: ttl,
		now: time.Now,
	}
}

// Store replaces the cached snapshot.
func (c *InMemorySnapshotCache) Store(_ context.Context, snapshot []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.snapshot = make([]byte, len(snapshot))
	copy(c.snapshot, snapshot)
	c.storedAt = c.now()
	return nil
}

// Load returns the cached snapshot, or nil when absent or expired.
func (c *InMemorySnapshotCache) Load(context.Context) ([]byte, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.snapshot == nil {
		return nil, nil
	}
	if c.ttl > 0 && c.now().Sub(c.storedAt) > c.ttl {
		return nil, nil
	}
	out := make([]byte, len(c.snapshot))
	copy(out, c.snapshot)
	return out, nil
}
