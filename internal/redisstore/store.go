package redisstore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/psobot/pressurequeue/internal/core"
)

// Store adapts a redis.Cmdable to core.Store, translating redis.Nil (the
// client library's "key/element absent" sentinel) into the ok=false
// convention core.Queue expects.
type Store struct {
	rdb redis.Cmdable
}

// New wraps rdb (a *redis.Client, *redis.ClusterClient, or *redis.Ring) as
// a core.Store.
func New(rdb redis.Cmdable) *Store {
	return &Store{rdb: rdb}
}

var _ core.Store = (*Store)(nil)

func (s *Store) SetNX(ctx context.Context, key, value string) (bool, error) {
	set, err := s.rdb.SetNX(ctx, key, value, 0).Result()
	if err != nil {
		return false, fmt.Errorf("redisstore: SETNX %s: %w", key, err)
	}
	return set, nil
}

func (s *Store) Get(ctx context.Context, key string) (string, bool, error) {
	value, err := s.rdb.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("redisstore: GET %s: %w", key, err)
	}
	return value, true, nil
}

func (s *Store) Set(ctx context.Context, key, value string) error {
	if err := s.rdb.Set(ctx, key, value, 0).Err(); err != nil {
		return fmt.Errorf("redisstore: SET %s: %w", key, err)
	}
	return nil
}

func (s *Store) Exists(ctx context.Context, keys ...string) (bool, error) {
	n, err := s.rdb.Exists(ctx, keys...).Result()
	if err != nil {
		return false, fmt.Errorf("redisstore: EXISTS %v: %w", keys, err)
	}
	return n == int64(len(keys)), nil
}

func (s *Store) Del(ctx context.Context, keys ...string) error {
	if err := s.rdb.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("redisstore: DEL %v: %w", keys, err)
	}
	return nil
}

func (s *Store) IncrBy(ctx context.Context, key string, delta int64) (int64, error) {
	n, err := s.rdb.IncrBy(ctx, key, delta).Result()
	if err != nil {
		return 0, fmt.Errorf("redisstore: INCRBY %s: %w", key, err)
	}
	return n, nil
}

func (s *Store) LPush(ctx context.Context, key string, values ...[]byte) (int64, error) {
	args := make([]interface{}, len(values))
	for i, v := range values {
		args[i] = v
	}
	n, err := s.rdb.LPush(ctx, key, args...).Result()
	if err != nil {
		return 0, fmt.Errorf("redisstore: LPUSH %s: %w", key, err)
	}
	return n, nil
}

func (s *Store) RPop(ctx context.Context, key string) ([]byte, bool, error) {
	value, err := s.rdb.RPop(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redisstore: RPOP %s: %w", key, err)
	}
	return []byte(value), true, nil
}

func (s *Store) LLen(ctx context.Context, key string) (int64, error) {
	n, err := s.rdb.LLen(ctx, key).Result()
	if err != nil {
		return 0, fmt.Errorf("redisstore: LLEN %s: %w", key, err)
	}
	return n, nil
}

func (s *Store) LRange(ctx context.Context, key string, start, stop int64) ([][]byte, error) {
	values, err := s.rdb.LRange(ctx, key, start, stop).Result()
	if err != nil {
		return nil, fmt.Errorf("redisstore: LRANGE %s: %w", key, err)
	}
	out := make([][]byte, len(values))
	for i, v := range values {
		out[i] = []byte(v)
	}
	return out, nil
}

func (s *Store) LTrim(ctx context.Context, key string, start, stop int64) error {
	if err := s.rdb.LTrim(ctx, key, start, stop).Err(); err != nil {
		return fmt.Errorf("redisstore: LTRIM %s: %w", key, err)
	}
	return nil
}

func (s *Store) LRem(ctx context.Context, key string, value []byte) error {
	if err := s.rdb.LRem(ctx, key, 1, value).Err(); err != nil {
		return fmt.Errorf("redisstore: LREM %s: %w", key, err)
	}
	return nil
}

func (s *Store) BRPop(ctx context.Context, timeout time.Duration, keys ...string) (string, []byte, bool, error) {
	result, err := s.rdb.BRPop(ctx, timeout, keys...).Result()
	if errors.Is(err, redis.Nil) {
		return "", nil, false, nil
	}
	if err != nil {
		return "", nil, false, fmt.Errorf("redisstore: BRPOP %v: %w", keys, err)
	}
	// go-redis returns [key, value] on success.
	return result[0], []byte(result[1]), true, nil
}

func (s *Store) BRPopLPush(ctx context.Context, src, dst string, timeout time.Duration) ([]byte, bool, error) {
	value, err := s.rdb.BRPopLPush(ctx, src, dst, timeout).Result()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redisstore: BRPOPLPUSH %s -> %s: %w", src, dst, err)
	}
	return []byte(value), true, nil
}
