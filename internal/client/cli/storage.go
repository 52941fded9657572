package cli

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/bankclient/internal/client/client"
	"github.com/dmitrijs2005/bankclient/internal/client/config"
	"github.com/dmitrijs2005/bankclient/internal/client/repositories/kv"
	"github.com/redis/go-redis/v9"
)

// openRepository returns the key/value store selected by cfg and a function
// releasing it.
func openRepository(ctx context.Context, cfg *config.Config) (kv.Repository, func() error, error) {
	switch cfg.StorageDriver {
	case config.DriverRedis:
		rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr, DB: cfg.RedisDB})
		if err := rdb.Ping(ctx).Err(); err != nil {
			_ = rdb.Close()
			return nil, nil, fmt.Errorf("connect redis %s: %w", cfg.RedisAddr, err)
		}
		return kv.NewRedisRepository(rdb, cfg.RedisPrefix), rdb.Close, nil

	case config.DriverSQLite, "":
		db, err := client.InitDatabase(ctx, cfg.SQLitePath)
		if err != nil {
			return nil, nil, fmt.Errorf("open sqlite %s: %w", cfg.SQLitePath, err)
		}
		return kv.NewSQLiteRepository(db), db.Close, nil

	default:
		return nil, nil, fmt.Errorf("unknown storage driver %q", cfg.StorageDriver)
	}
}
