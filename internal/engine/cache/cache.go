// Package cache stores derived consciousness snapshots. Entries are keyed by
// user id plus the profile's UpdatedAt, so any profile write naturally
// invalidates the cached snapshot without explicit eviction.
package cache

import (
	"context"
	"fmt"
	"sync"
	"time"

	"noesis/internal/engine"
	id "noesis/pkg/domain"
)

// Cache is a read-through snapshot cache. A miss is (nil, false, nil);
// errors are reserved for backend failures.
type Cache interface {
	Get(ctx context.Context, userID id.UserID, updatedAt time.Time) (*engine.Snapshot, bool, error)
	Set(ctx context.Context, userID id.UserID, updatedAt time.Time, snapshot *engine.Snapshot) error
}

// Key builds the cache key for a user's snapshot at a given profile version.
func Key(userID id.UserID, updatedAt time.Time) string {
	return fmt.Sprintf("snapshot:%s:%d", userID, updatedAt.UnixNano())
}

type memoryEntry struct {
	snapshot  engine.Snapshot
	expiresAt time.Time
}

// Memory is a process-local Cache for single-instance deployments and tests.
type Memory struct {
	mu      sync.RWMutex
	ttl     time.Duration
	entries map[string]memoryEntry
}

func NewMemory(ttl time.Duration) *Memory {
	return &Memory{ttl: ttl, entries: make(map[string]memoryEntry)}
}

func (m *Memory) Get(_ context.Context, userID id.UserID, updatedAt time.Time) (*engine.Snapshot, bool, error) {
	m.mu.RLock()
	entry, ok := m.entries[Key(userID, updatedAt)]
	m.mu.RUnlock()
	if !ok || time.Now().After(entry.expiresAt) {
		return nil, false, nil
	}
	snapshot := entry.snapshot
	return &snapshot, true, nil
}

func (m *Memory) Set(_ context.Context, userID id.UserID, updatedAt time.Time, snapshot *engine.Snapshot) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[Key(userID, updatedAt)] = memoryEntry{
		snapshot:  *snapshot,
		expiresAt: time.Now().Add(m.ttl),
	}
	return nil
}
