// Package redisstore persists the catalog snapshot in redis: one value
// under one key, overwritten whole on every mutation.
package redisstore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/stocklight/stocklight/internal/config"
	"github.com/stocklight/stocklight/internal/store"
)

var (
	_ store.RecordStore   = (*Store)(nil)
	_ store.HealthChecker = (*Store)(nil)
)

type Store struct {
	client *redis.Client
	key    string
}

// New connects to redis and returns a record store over the given key.
func New(ctx context.Context, cfg config.Redis, key string) (*Store, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		return nil, fmt.Errorf("ping redis: %w", err)
	}

	return NewWithClient(client, key), nil
}

// NewWithClient wraps an existing client; tests use this with miniredis.
func NewWithClient(client *redis.Client, key string) *Store {
	return &Store{client: client, key: key}
}

func (s *Store) Read(ctx context.Context) ([]byte, bool, error) {
	data, err := s.client.Get(ctx, s.key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("get %s: %w", s.key, err)
	}
	return data, true, nil
}

func (s *Store) Write(ctx context.Context, data []byte) error {
	if err := s.client.Set(ctx, s.key, data, 0).Err(); err != nil {
		return fmt.Errorf("set %s: %w", s.key, err)
	}
	return nil
}

func (s *Store) Clear(ctx context.Context) error {
	if err := s.client.Del(ctx, s.key).Err(); err != nil {
		return fmt.Errorf("del %s: %w", s.key, err)
	}
	return nil
}

func (s *Store) IsHealthy(ctx context.Context) (bool, error) {
	if err := s.client.Ping(ctx).Err(); err != nil {
		return false, fmt.Errorf("ping redis: %w", err)
	}
	return true, nil
}

// Close releases the underlying client.
func (s *Store) Close() error {
	return s.client.Close()
}
