package memory

import (
	"context"
	"time"

	"agrisense-be/internal/repository/contract"

	"github.com/patrickmn/go-cache"
)

// ResponseCache is the in-process cache used when Redis is not reachable.
type ResponseCache struct {
	cache *cache.Cache
}

var _ contract.ResponseCache = (*ResponseCache)(nil)

func NewResponseCache(defaultTTL time.Duration) *ResponseCache {
	if defaultTTL <= 0 {
		defaultTTL = 10 * time.Minute
	}
	return &ResponseCache{
		cache: cache.New(defaultTTL, 2*defaultTTL),
	}
}

func (r *ResponseCache) Get(_ context.Context, key string) ([]byte, bool, error) {
	if x, found := r.cache.Get(key); found {
		return x.([]byte), true, nil
	}
	return nil, false, nil
}

func (r *ResponseCache) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	if ttl <= 0 {
		ttl = cache.DefaultExpiration
	}
	r.cache.Set(key, value, ttl)
	return nil
}

func (r *ResponseCache) Delete(key string) {
	r.cache.Delete(key)
}
