// Package bootstrap wires the process-wide runtime dependencies.
package bootstrap

import (
	"context"
	"fmt"
	"log/slog"

	"aurasocial/internal/cache"
	"aurasocial/internal/config"
	"aurasocial/internal/database"
	"aurasocial/internal/ledger"
	"aurasocial/internal/middleware"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Runtime holds the connections owned by the process entry point.
// Redis and Ledger are nil when unavailable or unconfigured.
type Runtime struct {
	DB     *gorm.DB
	Redis  *redis.Client
	Ledger *ledger.Client

	closers []func()
}

// InitRuntime connects to the database, then Redis and the ledger RPC on a
// best-effort basis.
func InitRuntime(ctx context.Context, cfg *config.Config) (*Runtime, error) {
	db, err := database.Connect(cfg)
	if err != nil {
		return nil, fmt.Errorf("database connection failed: %w", err)
	}
	rt := &Runtime{DB: db}
	if sqlDB, err := db.DB(); err == nil {
		rt.closers = append(rt.closers, func() { _ = sqlDB.Close() })
	}

	if rdb, err := cache.Connect(ctx, cfg.RedisURL); err != nil {
		middleware.Logger.Warn("redis unavailable, continuing without rate limiting or realtime push",
			slog.String("error", err.Error()))
	} else {
		rt.Redis = rdb
		rt.closers = append(rt.closers, func() { _ = rdb.Close() })
	}

	if cfg.RPCURL != "" && cfg.ContractAddress != "" {
		client, closeFn, err := ledger.Dial(ctx, cfg.RPCURL, cfg.ContractAddress)
		if err != nil {
			middleware.Logger.Warn("ledger unavailable, contract routes disabled",
				slog.String("error", err.Error()))
		} else {
			rt.Ledger = client
			rt.closers = append(rt.closers, closeFn)
		}
	}

	return rt, nil
}

// Close releases connections in reverse order of acquisition.
func (r *Runtime) Close() {
	for i := len(r.closers) - 1; i >= 0; i-- {
		r.closers[i]()
	}
	r.closers = nil
}
