package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

// RedisNamespace prefixes every session hash
const RedisNamespace = "canteen:session"

const touchedField = "_touched"

// Redis is a Backend that keeps one hash per session and lets Redis expire it
type Redis struct {
	client    *redis.Client
	namespace string
	now       func() time.Time
}

// NewRedis wraps an existing client
func NewRedis(client *redis.Client) *Redis {
	return &Redis{client: client, namespace: RedisNamespace, now: time.Now}
}

// OpenRedis connects to the server at redisURL and checks it with PING
func OpenRedis(ctx context.Context, redisURL string) (*Redis, error) {
	if redisURL == "" {
		return nil, errors.New("redis URL is required")
	}
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("invalid Redis URL: %w", err)
	}

	client := redis.NewClient(opts)
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return NewRedis(client), nil
}

func (r *Redis) key(sid string) string {
	return r.namespace + ":" + sid
}

func (r *Redis) Get(ctx context.Context, sid, key string) (string, bool, error) {
	if sid == "" {
		return "", false, ErrEmptySession
	}
	value, err := r.client.HGet(ctx, r.key(sid), key).Result()
	if err == redis.Nil {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return value, true, nil
}

func (r *Redis) Set(ctx context.Context, sid, key, value string) error {
	if sid == "" {
		return ErrEmptySession
	}
	return r.client.HSet(ctx, r.key(sid), key, value).Err()
}

func (r *Redis) Delete(ctx context.Context, sid string, keys ...string) error {
	if sid == "" {
		return ErrEmptySession
	}
	if len(keys) == 0 {
		return nil
	}
	return r.client.HDel(ctx, r.key(sid), keys...).Err()
}

func (r *Redis) Touch(ctx context.Context, sid string, ttl time.Duration) error {
	if sid == "" {
		return ErrEmptySession
	}
	key := r.key(sid)
	// EXPIRE is a no-op on a missing key, so the hash is created first
	_, err := r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.HSet(ctx, key, touchedField, r.now().Unix())
		if ttl > 0 {
			pipe.Expire(ctx, key, ttl)
		}
		return nil
	})
	return err
}

func (r *Redis) Drop(ctx context.Context, sid string) error {
	return r.client.Del(ctx, r.key(sid)).Err()
}

// CleanupExpired does nothing: Redis evicts expired hashes on its own
func (r *Redis) CleanupExpired(ctx context.Context) (int64, error) {
	return 0, nil
}

func (r *Redis) Close() error {
	return r.client.Close()
}
