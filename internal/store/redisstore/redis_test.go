package redisstore_test

import (
	"context"
	"testing"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stocklight/stocklight/internal/store/redisstore"
)

func newTestStore(t *testing.T) *redisstore.Store {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return redisstore.NewWithClient(client, "stocklight:products")
}

func TestStore(t *testing.T) {
	ctx := context.Background()

	t.Run("Should miss before the first write", func(t *testing.T) {
		s := newTestStore(t)

		_, ok, err := s.Read(ctx)
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("Should read back the last write", func(t *testing.T) {
		s := newTestStore(t)

		require.NoError(t, s.Write(ctx, []byte(`[{"id":1}]`)))
		require.NoError(t, s.Write(ctx, []byte(`[{"id":1},{"id":2}]`)))

		data, ok, err := s.Read(ctx)
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, []byte(`[{"id":1},{"id":2}]`), data)
	})

	t.Run("Should miss after a clear", func(t *testing.T) {
		s := newTestStore(t)

		require.NoError(t, s.Write(ctx, []byte(`[]`)))
		require.NoError(t, s.Clear(ctx))

		_, ok, err := s.Read(ctx)
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("Should tolerate clearing an absent snapshot", func(t *testing.T) {
		s := newTestStore(t)
		assert.NoError(t, s.Clear(ctx))
	})

	t.Run("Should report health", func(t *testing.T) {
		s := newTestStore(t)

		healthy, err := s.IsHealthy(ctx)
		require.NoError(t, err)
		assert.True(t, healthy)
	})
}
