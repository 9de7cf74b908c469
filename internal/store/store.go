// Package store persists application state snapshots as JSON blobs in Redis
// under fixed logical keys. Callers load a snapshot, compute a replacement,
// and save it back whole; the store never mutates a snapshot in place.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// Logical keys for the persisted snapshots.
const (
	KeyProducts = "products"
	KeyCoupons  = "coupons"

	cartKeyPrefix = "cart:"
)

// CartKey returns the storage key for a cart snapshot.
func CartKey(cartID string) string {
	return cartKeyPrefix + cartID
}

// Store wraps Redis for JSON snapshot persistence.
type Store struct {
	Client *redis.Client
}

// New constructs a snapshot store.
func New(client *redis.Client) *Store {
	return &Store{Client: client}
}

// Load unmarshals the snapshot at key into dst. It reports whether the key
// existed.
func (s *Store) Load(ctx context.Context, key string, dst any) (bool, error) {
	if s == nil || s.Client == nil {
		return false, errors.New("store not configured")
	}
	data, err := s.Client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return false, nil
		}
		return false, err
	}
	if err := json.Unmarshal(data, dst); err != nil {
		return false, err
	}
	return true, nil
}

// Save serialises v as JSON and stores it at key without expiry.
func (s *Store) Save(ctx context.Context, key string, v any) error {
	return s.SaveFor(ctx, key, v, 0)
}

// SaveFor serialises v as JSON and stores it at key with the given TTL.
// A non-positive TTL stores the key without expiry.
func (s *Store) SaveFor(ctx context.Context, key string, v any, ttl time.Duration) error {
	if s == nil || s.Client == nil {
		return errors.New("store not configured")
	}
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	if ttl <= 0 {
		ttl = 0
	}
	return s.Client.Set(ctx, key, data, ttl).Err()
}

// Delete removes the snapshot at key. Deleting a missing key is not an error.
func (s *Store) Delete(ctx context.Context, key string) error {
	if s == nil || s.Client == nil {
		return errors.New("store not configured")
	}
	return s.Client.Del(ctx, key).Err()
}
