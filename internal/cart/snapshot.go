package cart

import (
	"context"
	"fmt"
	"time"

	"github.com/brunomacedo/vitrinezap-backend/pkg/redis"
)

// RedisSnapshotStore persists cart snapshots in Redis under a fixed
// per-cart key with a sliding TTL. Writes are full overwrites; no deltas.
type RedisSnapshotStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisSnapshotStore builds a snapshot store on the shared Redis client.
func NewRedisSnapshotStore(client *redis.Client, ttl time.Duration) (*RedisSnapshotStore, error) {
	if client == nil {
		return nil, fmt.Errorf("redis client required")
	}
	if ttl <= 0 {
		return nil, fmt.Errorf("snapshot ttl must be positive")
	}
	return &RedisSnapshotStore{client: client, ttl: ttl}, nil
}

// Read returns the stored payload, or nil when no snapshot exists.
func (s *RedisSnapshotStore) Read(ctx context.Context, cartID string) ([]byte, error) {
	payload, err := s.client.Get(ctx, s.client.CartSnapshotKey(cartID))
	if err != nil {
		if redis.IsNil(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read cart snapshot: %w", err)
	}
	return []byte(payload), nil
}

// Write overwrites the snapshot and refreshes its TTL.
func (s *RedisSnapshotStore) Write(ctx context.Context, cartID string, payload []byte) error {
	if err := s.client.Set(ctx, s.client.CartSnapshotKey(cartID), payload, s.ttl); err != nil {
		return fmt.Errorf("write cart snapshot: %w", err)
	}
	return nil
}

// Clear removes the snapshot.
func (s *RedisSnapshotStore) Clear(ctx context.Context, cartID string) error {
	if err := s.client.Del(ctx, s.client.CartSnapshotKey(cartID)); err != nil {
		return fmt.Errorf("clear cart snapshot: %w", err)
	}
	return nil
}
