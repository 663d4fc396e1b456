// internal/product/store.go
//
// Cache persistence backends.  The cache itself only needs byte-blob
// get/set; the in-memory store is the default, the Redis store lets several
// serve instances share one product list.

package product

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// Store persists cache envelopes.  A miss is ok == false with a nil error.
type Store interface {
	Get(ctx context.Context, key string) (val []byte, ok bool, err error)
	Set(ctx context.Context, key string, val []byte, expiry time.Duration) error
}

// MemoryStore is the process-local Store.
type MemoryStore struct {
	mu sync.RWMutex
	m  map[string][]byte
}

// NewMemoryStore returns an empty in-process store.  Expiry is ignored;
// staleness is judged from the envelope timestamp.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{m: make(map[string][]byte)}
}

func (s *MemoryStore) Get(_ context.Context, key string) ([]byte, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.m[key]
	return v, ok, nil
}

func (s *MemoryStore) Set(_ context.Context, key string, val []byte, _ time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.m[key] = val
	return nil
}

// RedisStore shares the cache between instances.  The key expiry is a
// safety net only; freshness still comes from the envelope timestamp.
type RedisStore struct {
	rdb *redis.Client
}

// NewRedisStore wraps an already-configured client.
func NewRedisStore(rdb *redis.Client) *RedisStore {
	return &RedisStore{rdb: rdb}
}

func (s *RedisStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	val, err := s.rdb.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return val, true, nil
}

func (s *RedisStore) Set(ctx context.Context, key string, val []byte, expiry time.Duration) error {
	return s.rdb.Set(ctx, key, val, expiry).Err()
}
