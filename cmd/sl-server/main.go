package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"sync"
	"time"

	"github.com/stocklight/stocklight/internal/catalog"
	"github.com/stocklight/stocklight/internal/config"
	"github.com/stocklight/stocklight/internal/form"
	"github.com/stocklight/stocklight/internal/http"
	"github.com/stocklight/stocklight/internal/log"
	"github.com/stocklight/stocklight/internal/seed"
	"github.com/stocklight/stocklight/internal/store"
	"github.com/stocklight/stocklight/internal/store/pgstore"
	"github.com/stocklight/stocklight/internal/store/redisstore"
	"github.com/stocklight/stocklight/internal/telemetry"
	"github.com/stocklight/stocklight/internal/view"
	"github.com/stocklight/stocklight/pkg/cmdutil"
)

func main() {
	if err := run(); err != nil {
		fmt.Printf("error running server application: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	time.Local = time.UTC

	type Config struct {
		Log      config.Log
		HTTP     config.HTTP
		Otel     config.Otel
		Store    config.Store
		Redis    config.Redis
		Postgres config.Postgres
		Seed     config.Seed
		View     config.View
	}
	cfg, err := config.New[Config]()
	if err != nil {
		return fmt.Errorf("error loading config: %w", err)
	}

	logger := log.NewSlogLogger(cfg.Log)

	cleanupTracer, err := telemetry.InitTracer(ctx, cfg.Otel)
	if err != nil {
		return fmt.Errorf("error initializing tracer: %w", err)
	}
	defer func() {
		if err := cleanupTracer(ctx); err != nil {
			logger.ErrorContext(ctx, "error cleaning up tracer", slog.Any("error", err))
		}
	}()

	recordStore, closeStore, err := newRecordStore(ctx, cfg.Store, cfg.Redis, cfg.Postgres)
	if err != nil {
		return fmt.Errorf("error creating record store: %w", err)
	}
	defer closeStore()

	catalogSvc := catalog.NewService(logger, recordStore, seed.New(cfg.Seed))
	if err := catalogSvc.Load(ctx); err != nil {
		return fmt.Errorf("error loading catalog: %w", err)
	}

	session := view.NewSession(catalogSvc, cfg.View.SearchDebounce)
	defer session.Close()

	forms, err := form.New()
	if err != nil {
		return fmt.Errorf("error creating form validator: %w", err)
	}

	interruptChan := cmdutil.InterruptChan()
	var wg sync.WaitGroup

	wg.Go(func() {
		svc := http.New(cfg.HTTP, logger, catalogSvc, session, forms)
		cleanup, err := svc.Run(ctx)
		if err != nil {
			panic(fmt.Errorf("error running http service: %w", err))
		}

		logger.InfoContext(ctx, "http service started",
			slog.String("address", fmt.Sprintf(":%d", cfg.HTTP.Port)),
			slog.String("store_driver", cfg.Store.Driver.String()),
			slog.Int("catalog_size", catalogSvc.Count()))

		<-interruptChan

		logger.InfoContext(ctx, "http service is shutting down")
		if err := cleanup(ctx); err != nil {
			logger.ErrorContext(ctx, "error shutting down http service", slog.Any("error", err))
		}

		logger.InfoContext(ctx, "http service is stopped")
	})

	wg.Wait()

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
