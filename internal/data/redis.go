package data

import (
	"context"
	"fmt"
	"time"

	"videomod/internal/conf"
	pkgredis "videomod/internal/pkg/redis"

	"github.com/go-kratos/kratos/v2/log"
)

// NewRedisCache creates a Redis cache from configuration.
func NewRedisCache(c *conf.Data, logger log.Logger) (pkgredis.Cache, func(), error) {
	helper := log.NewHelper(logger)

	cache, err := pkgredis.New(c.Redis.URL)
	if err != nil {
		return nil, nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := cache.Ping(ctx); err != nil {
		cache.Close()
		return nil, nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	helper.Infof("connected to redis at %s", c.Redis.URL)

	cleanup := func() {
		helper.Info("closing redis connection")
		cache.Close()
	}
	return cache, cleanup, nil
}
