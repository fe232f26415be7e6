package repositories

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// KeyValueStore is the browser-local-storage stand-in: string values, last write wins.
type KeyValueStore interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	Remove(ctx context.Context, key string) error
}

type MemoryKVStore struct {
	mu   sync.RWMutex
	data map[string]string
}

func NewMemoryKVStore() *MemoryKVStore {
	return &MemoryKVStore{data: make(map[string]string)}
}

func (s *MemoryKVStore) Get(ctx context.Context, key string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.data[key]
	return v, ok, nil
}

func (s *MemoryKVStore) Set(ctx context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[key] = value
	return nil
}

func (s *MemoryKVStore) Remove(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, key)
	return nil
}

// RedisKVStore keeps values as plain Redis strings; ttl 0 means no expiry.
type RedisKVStore struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewRedisKVStore(rdb *redis.Client, ttl time.Duration) *RedisKVStore {
	return &RedisKVStore{rdb: rdb, ttl: ttl}
}

func (s *RedisKVStore) Get(ctx context.Context, key string) (string, bool, error) {
	val, err := s.rdb.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return val, true, nil
}

func (s *RedisKVStore) Set(ctx context.Context, key, value string) error {
	return s.rdb.Set(ctx, key, value, s.ttl).Err()
}

func (s *RedisKVStore) Remove(ctx context.Context, key string) error {
	return s.rdb.Del(ctx, key).Err()
}

// NamespacedKVStore prefixes every key so each storefront session gets its own slot space.
type NamespacedKVStore struct {
	inner  KeyValueStore
	prefix string
}

func NewNamespacedKVStore(inner KeyValueStore, namespace string) *NamespacedKVStore {
	return &NamespacedKVStore{inner: inner, prefix: namespace + ":"}
}

func (s *NamespacedKVStore) Get(ctx context.Context, key string) (string, bool, error) {
	return s.inner.Get(ctx, s.prefix+key)
}

func (s *NamespacedKVStore) Set(ctx context.Context, key, value string) error {
	return s.inner.Set(ctx, s.prefix+key, value)
}

func (s *NamespacedKVStore) Remove(ctx context.Context, key string) error {
	return s.inner.Remove(ctx, s.prefix+key)
}

var (
	_ KeyValueStore = (*MemoryKVStore)(nil)
	_ KeyValueStore = (*RedisKVStore)(nil)
	_ KeyValueStore = (*NamespacedKVStore)(nil)
)
