package data

import (
	"context"
	"database/sql"
	"time"

	"videomod/internal/conf"

	"github.com/go-kratos/kratos/v2/log"
	"github.com/google/wire"
	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/jackc/pgx/v5/stdlib"
)

// ProviderSet is data providers.
var ProviderSet = wire.NewSet(
	NewData,
	NewRedisCache,
	NewDecisionRepo,
	NewFraudTermRepo,
	NewKnownContentRepo,
	NewKnownContentIndex,
	NewSeenFilter,
	NewEngine,
)

// Data struct for db clients.
type Data struct {
	Pool *pgxpool.Pool // pgxpool for queries
	DB   *sql.DB       // database/sql for migrations
}

// NewData new a data instance.
func NewData(conf *conf.Data, logger log.Logger) (*Data, func(), error) {
	helper := log.NewHelper(logger)
	ctx := context.Background()

	pgxConfig, err := newPgxPoolConfig(conf)
	if err != nil {
		return nil, nil, err
	}
	pool, err := pgxpool.NewWithConfig(ctx, pgxConfig)
	if err != nil {
		return nil, nil, err
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, nil, err
	}

	// database/sql connection for migrations
	db, err := sql.Open("pgx", conf.Database.Source)
	if err != nil {
		pool.Close()
		return nil, nil, err
	}

	if err := RunMigrate(conf, db); err != nil {
		pool.Close()
		db.Close()
		return nil, nil, err
	}

	cleanup := func() {
		helper.Info("closing db connections")
		pool.Close()
		db.Close()
	}

	return &Data{Pool: pool, DB: db}, cleanup, nil
}

// newPgxPoolConfig creates a pgxpool.Config from conf.Data.
func newPgxPoolConfig(conf *conf.Data) (*pgxpool.Config, error) {
	cfg, err := pgxpool.ParseConfig(conf.Database.Source)
	if err != nil {
		return nil, err
	}
	pool := conf.Database.Pool
	if pool.MaxOpenConns > 0 {
		cfg.MaxConns = pool.MaxOpenConns
	}
	if pool.MinIdleConns > 0 {
		cfg.MinConns = pool.MinIdleConns
	}
	if pool.MaxConnLifetime > 0 {
		cfg.MaxConnLifetime = time.Duration(pool.MaxConnLifetime) * time.Minute
	}
	if pool.MaxConnIdleTime > 0 {
		cfg.MaxConnIdleTime = time.Duration(pool.MaxConnIdleTime) * time.Minute
	}
	return cfg, nil
}
