// Package pgstore persists the catalog snapshot in postgres. The snapshot
// stays the opaque blob the record store contract describes; the table is
// a key-value shape, not a per-record schema.
package pgstore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/exaring/otelpgx"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/stocklight/stocklight/internal/config"
	"github.com/stocklight/stocklight/internal/store"
)

var (
	_ store.RecordStore   = (*Store)(nil)
	_ store.HealthChecker = (*Store)(nil)
)

type Store struct {
	pool *pgxpool.Pool
	key  string
}

// NewPool creates a pgx pool with the given configuration.
func NewPool(ctx context.Context, cfg config.Postgres) (*pgxpool.Pool, error) {
	pgConf, err := pgxpool.ParseConfig(connectionString(cfg))
	if err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	pgConf.ConnConfig.Tracer = otelpgx.NewTracer()

	pgConf.MaxConns = cfg.MaxConns
	pgConf.MinConns = cfg.MinConns
	pgConf.MaxConnLifetime = cfg.MaxConnLifetime
	pgConf.MaxConnIdleTime = cfg.MaxConnIdleTime

	pool, err := pgxpool.NewWithConfig(ctx, pgConf)
	if err != nil {
		return nil, fmt.Errorf("create pool: %w", err)
	}

	if err := otelpgx.RecordStats(pool); err != nil {
		return nil, fmt.Errorf("record database stats: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := pool.Ping(pingCtx); err != nil {
		return nil, fmt.Errorf("ping database: %w", err)
	}

	return pool, nil
}

// New returns a record store over the given snapshot key.
func New(pool *pgxpool.Pool, key string) *Store {
	return &Store{pool: pool, key: key}
}

func (s *Store) Read(ctx context.Context) ([]byte, bool, error) {
	var data []byte
	err := s.pool.QueryRow(ctx,
		`SELECT data FROM catalog_snapshots WHERE key = $1`, s.key,
	).Scan(&data)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("select snapshot %s: %w", s.key, err)
	}
	return data, true, nil
}

func (s *Store) Write(ctx context.Context, data []byte) error {
	if _, err := s.pool.Exec(ctx,
		`INSERT INTO catalog_snapshots (key, data, updated_at)
		 VALUES ($1, $2, now())
		 ON CONFLICT (key) DO UPDATE SET data = EXCLUDED.data, updated_at = now()`,
		s.key, data,
	); err != nil {
		return fmt.Errorf("upsert snapshot %s: %w", s.key, err)
	}
	return nil
}

func (s *Store) Clear(ctx context.Context) error {
	if _, err := s.pool.Exec(ctx,
		`DELETE FROM catalog_snapshots WHERE key = $1`, s.key,
	); err != nil {
		return fmt.Errorf("delete snapshot %s: %w", s.key, err)
	}
	return nil
}

func (s *Store) IsHealthy(ctx context.Context) (bool, error) {
	if err := s.pool.Ping(ctx); err != nil {
		return false, fmt.Errorf("ping database: %w", err)
	}
	return true, nil
}

func connectionString(cfg config.Postgres) string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		cfg.User, cfg.Password, cfg.Host, cfg.Port, cfg.DB, cfg.SSLMode)
}
