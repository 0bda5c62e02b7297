package sessionstore

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisStore implements Store on a shared Redis, for deployments that
// run more than one portal instance. Records expire server-side so
// DeleteExpired is a no-op.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisStore connects to redis with short timeouts.
func NewRedisStore(addr string, ttl time.Duration) *RedisStore {
	client := redis.NewClient(&redis.Options{
		Addr:         addr,
		DialTimeout:  2 * time.Second,
		ReadTimeout:  1 * time.Second,
		WriteTimeout: 1 * time.Second,
	})
	return &RedisStore{client: client, ttl: ttl}
}

// Healthy verifies redis connectivity.
func (s *RedisStore) Healthy(ctx context.Context) bool {
	if s == nil || s.client == nil {
		return false
	}
	return s.client.Ping(ctx).Err() == nil
}

func sessionKey(id string) string {
	return "siu:session:" + id
}

// Get retrieves a session Record by its ID.
// POST: Returns the record or ErrNotFound
func (s *RedisStore) Get(ctx context.Context, id string) (Record, error) {
	raw, err := s.client.Get(ctx, sessionKey(id)).Bytes()
	if err == redis.Nil {
		return Record{}, ErrNotFound
	}
	if err != nil {
		return Record{}, err
	}
	var entity Record
	if err := json.Unmarshal(raw, &entity); err != nil {
		return Record{}, fmt.Errorf("corrupt session record: %w", err)
	}
	return entity, nil
}

// Save persists a session Record with the store TTL.
func (s *RedisStore) Save(ctx context.Context, entity Record) error {
	raw, err := json.Marshal(entity)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, sessionKey(entity.ID), raw, s.ttl).Err()
}

// Delete removes a session Record.
func (s *RedisStore) Delete(ctx context.Context, id string) error {
	return s.client.Del(ctx, sessionKey(id)).Err()
}

// DeleteExpired is satisfied by redis key expiry.
func (s *RedisStore) DeleteExpired(ctx context.Context, cutoff time.Time) error {
	return nil
}
