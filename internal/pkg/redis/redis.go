package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Redis implements Cache on top of a go-redis client.
type Redis struct {
	client *redis.Client
}

// Nil is returned by Get operations when the key does not exist.
const Nil = redis.Nil

// New creates a Cache from a redis URL, e.g. "redis://localhost:6379/0".
func New(url string) (*Redis, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("failed to parse redis url: %w", err)
	}
	return &Redis{
		client: redis.NewClient(opts),
	}, nil
}

// Ping checks the connection.
func (r *Redis) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

// Close closes the underlying client.
func (r *Redis) Close() error {
	return r.client.Close()
}

// NewScript prepares a Lua script for ScriptRun.
func NewScript(script string) *redis.Script {
	return redis.NewScript(script)
}

func (r *Redis) SetBytes(ctx context.Context, key string, value []byte, exp time.Duration) error {
	return r.client.Set(ctx, key, value, exp).Err()
}

func (r *Redis) GetBytes(ctx context.Context, key string) ([]byte, error) {
	return r.client.Get(ctx, key).Bytes()
}

func (r *Redis) ScriptRun(ctx context.Context, script *redis.Script, keys []string,
	args ...any) (any, error) {
	return script.Run(ctx, r.client, keys, args...).Result()
}

func (r *Redis) Del(ctx context.Context, keys ...string) (int64, error) {
	return r.client.Del(ctx, keys...).Result()
}
