package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"noesis/internal/engine"
	id "noesis/pkg/domain"
)

// Redis is a Cache backed by a shared Redis instance, for deployments with
// more than one server process. Snapshots are stored as JSON with the TTL
// handled by Redis expiry.
type Redis struct {
	client redis.UniversalClient
	ttl    time.Duration
}

func NewRedis(client redis.UniversalClient, ttl time.Duration) *Redis {
	return &Redis{client: client, ttl: ttl}
}

func (r *Redis) Get(ctx context.Context, userID id.UserID, updatedAt time.Time) (*engine.Snapshot, bool, error) {
	raw, err := r.client.Get(ctx, Key(userID, updatedAt)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("snapshot cache get: %w", err)
	}

	var snapshot engine.Snapshot
	if err := json.Unmarshal(raw, &snapshot); err != nil {
		// A corrupt entry is treated as a miss; it will be overwritten.
		return nil, false, nil
	}
	return &snapshot, true, nil
}

func (r *Redis) Set(ctx context.Context, userID id.UserID, updatedAt time.Time, snapshot *engine.Snapshot) error {
	raw, err := json.Marshal(snapshot)
	if err != nil {
		return fmt.Errorf("snapshot cache marshal: %w", err)
	}
	if err := r.client.Set(ctx, Key(userID, updatedAt), raw, r.ttl).Err(); err != nil {
		return fmt.Errorf("snapshot cache set: %w", err)
	}
	return nil
}
