package implementation

import (
	"context"
	"errors"
	"time"

	"agrisense-be/internal/repository/contract"

	"github.com/redis/go-redis/v9"
)

type RedisResponseCache struct {
	rdb    *redis.Client
	prefix string
}

func NewRedisResponseCache(rdb *redis.Client, prefix string) contract.ResponseCache {
	return &RedisResponseCache{rdb: rdb, prefix: prefix}
}

func (r *RedisResponseCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	value, err := r.rdb.Get(ctx, r.prefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return value, true, nil
}

func (r *RedisResponseCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	return r.rdb.Set(ctx, r.prefix+key, value, ttl).Err()
}
