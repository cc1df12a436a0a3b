package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// RedisKeyPrefix namespaces save records next to the health counters.
const RedisKeyPrefix = "save:"

// RedisStore keeps the record under save:<name>.
type RedisStore struct {
	Rdb  *redis.Client
	Name string
}

func (s *RedisStore) key() string {
	return RedisKeyPrefix + s.Name
}

func (s *RedisStore) Read(ctx context.Context) ([]byte, error) {
	b, err := s.Rdb.Get(ctx, s.key()).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("read save %q: %w", s.Name, err)
	}
	return b, nil
}

func (s *RedisStore) Write(ctx context.Context, payload []byte) error {
	if err := s.Rdb.Set(ctx, s.key(), payload, 0).Err(); err != nil {
		return fmt.Errorf("write save %q: %w", s.Name, err)
	}
	return nil
}

func (s *RedisStore) Delete(ctx context.Context) error {
	if err := s.Rdb.Del(ctx, s.key()).Err(); err != nil {
		return fmt.Errorf("delete save %q: %w", s.Name, err)
	}
	return nil
}

func (s *RedisStore) Ping(ctx context.Context) error {
	return s.Rdb.Ping(ctx).Err()
}
