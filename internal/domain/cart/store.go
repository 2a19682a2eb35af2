// internal/domain/cart/store.go
package cart

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// Snapshots are stored under a fixed per-user key
const cartKeyFormat = "cart:user:%d"

// SnapshotStore persists cart snapshots. Implementations report failures
// explicitly; the service decides whether a failure is fatal (loads degrade
// to an empty cart, writes are logged and swallowed).
type SnapshotStore interface {
	// Load returns the raw snapshot and whether one exists
	Load(ctx context.Context, userID uint) ([]byte, bool, error)
	Save(ctx context.Context, userID uint, data []byte) error
	Delete(ctx context.Context, userID uint) error
}

// RedisStore persists cart snapshots in Redis
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore creates a Redis-backed snapshot store
func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

// Load retrieves the snapshot for a user
func (r *RedisStore) Load(ctx context.Context, userID uint) ([]byte, bool, error) {
	data, err := r.client.Get(ctx, cartKey(userID)).Bytes()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to load cart snapshot: %w", err)
	}
	return data, true, nil
}

// Save stores the snapshot for a user. Carts survive sessions, so no
// expiration is set.
func (r *RedisStore) Save(ctx context.Context, userID uint, data []byte) error {
	if err := r.client.Set(ctx, cartKey(userID), data, 0).Err(); err != nil {
		return fmt.Errorf("failed to save cart snapshot: %w", err)
	}
	return nil
}

// Delete removes the snapshot for a user
func (r *RedisStore) Delete(ctx context.Context, userID uint) error {
	if err := r.client.Del(ctx, cartKey(userID)).Err(); err != nil {
		return fmt.Errorf("failed to delete cart snapshot: %w", err)
	}
	return nil
}

func cartKey(userID uint) string {
	return fmt.Sprintf(cartKeyFormat, userID)
}
