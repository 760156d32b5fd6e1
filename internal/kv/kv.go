// Package kv holds the key-value backends the storefront persists into.
// Every backend stores opaque byte values under string keys, the same
// contract a browser's local storage offers.
package kv

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/redis/go-redis/v9"
	"gorm.io/driver/postgres"

	"github.com/Skotchmaster/storefront/internal/config"
)

var ErrNotFound = errors.New("key not found")

type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Ping(ctx context.Context) error
	Close() error
}

// Open builds the backend selected by cfg.StoreDriver and checks it is reachable.
func Open(ctx context.Context, cfg config.Config) (Store, error) {
	var (
		store Store
		err   error
	)

	switch cfg.StoreDriver {
	case config.DriverMemory:
		store = NewMemoryStore()
	case config.DriverSQLite:
		store, err = OpenGorm(sqlite.Open(cfg.SQLitePath))
	case config.DriverPostgres:
		store, err = OpenGorm(postgres.Open(cfg.DatabaseURL))
	case config.DriverRedis:
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		store = NewRedisStore(client, cfg.RedisPrefix)
	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.StoreDriver)
	}
	if err != nil {
		return nil, err
	}

	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := store.Ping(pingCtx); err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("ping %s store: %w", cfg.StoreDriver, err)
	}

	return store, nil
}
