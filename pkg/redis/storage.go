package redis

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// Storage is a context-aware key/value wrapper around a go-redis client.
// Missing keys read as nil without error.
type Storage struct {
	db  redis.UniversalClient
	ttl time.Duration
}

// NewStorage wraps client. A zero ttl stores values without expiry.
func NewStorage(client redis.UniversalClient, ttl time.Duration) *Storage {
	return &Storage{db: client, ttl: ttl}
}

// Load returns the value stored under key or nil if there is none.
func (s *Storage) Load(ctx context.Context, key string) ([]byte, error) {
	if key == "" {
		return nil, nil
	}
	val, err := s.db.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	return val, err
}

// Save stores data under key. Empty data removes the key.
func (s *Storage) Save(ctx context.Context, key string, data []byte) error {
	if key == "" {
		return nil
	}
	if len(data) == 0 {
		return s.Remove(ctx, key)
	}
	return s.db.Set(ctx, key, data, s.ttl).Err()
}

// Remove deletes key. Deleting a missing key is not an error.
func (s *Storage) Remove(ctx context.Context, key string) error {
	if key == "" {
		return nil
	}
	return s.db.Del(ctx, key).Err()
}

// Conn exposes the underlying client.
func (s *Storage) Conn() redis.UniversalClient {
	return s.db
}
