package navigation

import (
	"context"
	"errors"
	"time"

	"github.com/go-redis/redis/v8"
)

// RedisStore shares entries between replicas. Entries carry the same TTL as
// the memory store and vanish with it.
type RedisStore struct {
	rdb    *redis.Client
	ttl    time.Duration
	prefix string
}

func NewRedisStore(rdb *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{rdb: rdb, ttl: ttl, prefix: "storefront:nav:"}
}

// NewRedisStoreFromURL parses a redis:// URL and checks the connection.
func NewRedisStoreFromURL(ctx context.Context, rawURL string, ttl time.Duration) (*RedisStore, error) {
	opts, err := redis.ParseURL(rawURL)
	if err != nil {
		return nil, err
	}
	rdb := redis.NewClient(opts)
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, err
	}
	return NewRedisStore(rdb, ttl), nil
}

func (s *RedisStore) key(visitorID, key string) string {
	return s.prefix + visitorID + ":" + key
}

func (s *RedisStore) Save(ctx context.Context, visitorID, key string, value []byte) error {
	return s.rdb.Set(ctx, s.key(visitorID, key), value, s.ttl).Err()
}

func (s *RedisStore) Load(ctx context.Context, visitorID, key string) ([]byte, bool, error) {
	b, err := s.rdb.Get(ctx, s.key(visitorID, key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return b, true, nil
}

func (s *RedisStore) Discard(ctx context.Context, visitorID string, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	full := make([]string, 0, len(keys))
	for _, k := range keys {
		full = append(full, s.key(visitorID, k))
	}
	return s.rdb.Del(ctx, full...).Err()
}

func (s *RedisStore) Close() error {
	return s.rdb.Close()
}
