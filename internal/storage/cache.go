package storage

import (
	"context"
	"time"

	"github.com/patrickmn/go-cache"
)

// CacheStore keeps records in process memory
type CacheStore struct {
	cache *cache.Cache
}

// NewCacheStore creates an in-memory store. ttl <= 0 keeps records until Close.
func NewCacheStore(ttl time.Duration) *CacheStore {
	expiration := cache.NoExpiration
	cleanup := time.Duration(0)
	if ttl > 0 {
		expiration = ttl
		cleanup = 10 * time.Minute
	}
	return &CacheStore{cache: cache.New(expiration, cleanup)}
}

func (m *CacheStore) Get(ctx context.Context, key string) (string, error) {
	if x, found := m.cache.Get(key); found {
		return x.(string), nil
	}
	return "", ErrNotFound
}

func (m *CacheStore) Set(ctx context.Context, key, value string) error {
	m.cache.Set(key, value, cache.DefaultExpiration)
	return nil
}

func (m *CacheStore) Close() error {
	m.cache.Flush()
	return nil
}
