// sl-reset discards the stored catalog snapshot and, when a seed source
// is configured, writes a freshly seeded collection back. Operational
// counterpart of the API's reset endpoint.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/stocklight/stocklight/internal/catalog"
	"github.com/stocklight/stocklight/internal/config"
	"github.com/stocklight/stocklight/internal/log"
	"github.com/stocklight/stocklight/internal/seed"
	"github.com/stocklight/stocklight/internal/store"
	"github.com/stocklight/stocklight/internal/store/pgstore"
	"github.com/stocklight/stocklight/internal/store/redisstore"
)

func main() {
	if err := run(); err != nil {
		fmt.Printf("error running reset application: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	time.Local = time.UTC

	type Config struct {
		Log      config.Log
		Store    config.Store
		Redis    config.Redis
		Postgres config.Postgres
		Seed     config.Seed
	}
	cfg, err := config.New[Config]()
	if err != nil {
		return fmt.Errorf("error loading config: %w", err)
	}

	logger := log.NewSlogLogger(cfg.Log)

	recordStore, closeStore, err := newRecordStore(ctx, cfg.Store, cfg.Redis, cfg.Postgres)
	if err != nil {
		return fmt.Errorf("error creating record store: %w", err)
	}
	defer closeStore()

	catalogSvc := catalog.NewService(logger, recordStore, seed.New(cfg.Seed))
	count, err := catalogSvc.Reset(ctx)
	if err != nil {
		return fmt.Errorf("error resetting catalog: %w", err)
	}

	logger.InfoContext(ctx, "catalog reset",
		slog.String("key", cfg.Store.Key),
		slog.Int("seeded", count))

	return nil
}

func newRecordStore(
	ctx context.Context,
	storeCfg config.Store,
	redisCfg config.Redis,
	pgCfg config.Postgres,
) (store.RecordStore, func(), error) {
	switch storeCfg.Driver {
	case config.StoreDriverRedis:
		s, err := redisstore.New(ctx, redisCfg, storeCfg.Key)
		if err != nil {
			return nil, nil, err
		}
		return s, func() { _ = s.Close() }, nil

	case config.StoreDriverPostgres:
		pool, err := pgstore.NewPool(ctx, pgCfg)
		if err != nil {
			return nil, nil, err
		}
		return pgstore.New(pool, storeCfg.Key), pool.Close, nil

	case config.StoreDriverMemory:
		return store.NewMemory(), func() {}, nil

	default:
		return nil, nil, fmt.Errorf("unknown store driver: %s", storeCfg.Driver)
	}
}
