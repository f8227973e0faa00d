package redis

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// Cache is the subset of redis operations the moderation pipeline uses:
// byte values for the duplicate-verdict cache and Lua scripting for the
// Bloom bitset.
type Cache interface {
	SetBytes(ctx context.Context, key string, value []byte, exp time.Duration) error
	GetBytes(ctx context.Context, key string) ([]byte, error)

	ScriptRun(ctx context.Context, script *redis.Script, keys []string,
		args ...any) (any, error)

	Del(ctx context.Context, keys ...string) (int64, error)
}
