package repos

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

type RedisStorage struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisStorage stores each record under ls:<sid>:<key>. A zero ttl keeps
// records until they are overwritten or removed.
func NewRedisStorage(client *redis.Client, ttl time.Duration) *RedisStorage {
	return &RedisStorage{client: client, ttl: ttl}
}

// OpenRedis parses a redis:// URL and checks the server is reachable.
func OpenRedis(ctx context.Context, url string) (*redis.Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}
	return client, nil
}

func (r *RedisStorage) GetItem(ctx context.Context, sid, key string) (string, bool, error) {
	v, err := r.client.Get(ctx, storageKey(sid, key)).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("redis get failed: %w", err)
	}
	return v, true, nil
}

func (r *RedisStorage) SetItem(ctx context.Context, sid, key, value string) error {
	if err := r.client.Set(ctx, storageKey(sid, key), value, r.ttl).Err(); err != nil {
		return fmt.Errorf("redis set failed: %w", err)
	}
	return nil
}

func (r *RedisStorage) RemoveItem(ctx context.Context, sid, key string) error {
	if err := r.client.Del(ctx, storageKey(sid, key)).Err(); err != nil {
		return fmt.Errorf("redis delete failed: %w", err)
	}
	return nil
}

func storageKey(sid, key string) string {
	return fmt.Sprintf("ls:%s:%s", sid, key)
}
