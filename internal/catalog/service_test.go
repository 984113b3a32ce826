package catalog_test

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stocklight/stocklight/internal/apperr"
	"github.com/stocklight/stocklight/internal/catalog"
	"github.com/stocklight/stocklight/internal/model"
	"github.com/stocklight/stocklight/internal/seed"
	"github.com/stocklight/stocklight/internal/store"
	"github.com/stocklight/stocklight/pkg/zerror"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

func seedRecords(n int) []model.Product {
	records := make([]model.Product, 0, n)
	for i := 1; i <= n; i++ {
		records = append(records, model.Product{
			ID:        int64(i),
			Name:      "Seeded",
			Category:  "Stationery",
			Price:     1,
			Stock:     1,
			CreatedAt: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
			IsActive:  true,
		})
	}
	return records
}

type failingFetcher struct{}

func (failingFetcher) Fetch(context.Context) ([]model.Product, error) {
	return nil, errors.New("seed source down")
}

func TestLoad(t *testing.T) {
	ctx := context.Background()

	t.Run("Should prefer the stored snapshot over the seed", func(t *testing.T) {
		mem := store.NewMemory()
		stored, err := json.Marshal(seedRecords(2))
		require.NoError(t, err)
		require.NoError(t, mem.Write(ctx, stored))
		mem.Writes = 0

		svc := catalog.NewService(discardLogger(), mem, seed.Static(seedRecords(5)))
		require.NoError(t, svc.Load(ctx))

		assert.Equal(t, 2, svc.Count())
		assert.Zero(t, mem.Writes, "loading from the store must not rewrite it")
	})

	t.Run("Should seed when the store is empty", func(t *testing.T) {
		mem := store.NewMemory()
		svc := catalog.NewService(discardLogger(), mem, seed.Static(seedRecords(3)))

		require.NoError(t, svc.Load(ctx))

		assert.Equal(t, 3, svc.Count())
		assert.Equal(t, 1, mem.Writes, "seeded collection is persisted")
	})

	t.Run("Should start empty when the seed fetch fails", func(t *testing.T) {
		mem := store.NewMemory()
		svc := catalog.NewService(discardLogger(), mem, failingFetcher{})

		require.NoError(t, svc.Load(ctx))

		assert.Zero(t, svc.Count())
		assert.Zero(t, mem.Writes)
	})

	t.Run("Should fall back to the seed on an unreadable snapshot", func(t *testing.T) {
		mem := store.NewMemory()
		require.NoError(t, mem.Write(ctx, []byte("not json")))

		svc := catalog.NewService(discardLogger(), mem, seed.Static(seedRecords(4)))
		require.NoError(t, svc.Load(ctx))

		assert.Equal(t, 4, svc.Count())
	})
}

func TestSave(t *testing.T) {
	ctx := context.Background()

	newLoaded := func(t *testing.T, n int) (*catalog.Service, *store.Memory) {
		t.Helper()
		mem := store.NewMemory()
		svc := catalog.NewService(discardLogger(), mem, seed.Static(seedRecords(n)))
		require.NoError(t, svc.Load(ctx))
		mem.Writes = 0
		return svc, mem
	}

	t.Run("Should append a new record with fresh id and flags", func(t *testing.T) {
		svc, mem := newLoaded(t, 3)

		saved, err := svc.Save(ctx, model.Product{
			Name:     "Pen",
			Category: "Stationery",
			Price:    10,
			Stock:    5,
		})
		require.NoError(t, err)

		assert.Equal(t, int64(4), saved.ID)
		assert.True(t, saved.IsActive)
		assert.False(t, saved.CreatedAt.IsZero())
		assert.Equal(t, 4, svc.Count())

		records := svc.Snapshot()
		assert.Equal(t, saved, records[3], "new records append at the end")
		assert.Equal(t, 1, mem.Writes)
	})

	t.Run("Should replace an existing record in place", func(t *testing.T) {
		svc, mem := newLoaded(t, 3)

		saved, err := svc.Save(ctx, model.Product{
			ID:       2,
			Name:     "Updated",
			Category: "Stationery",
			Price:    2,
			Stock:    2,
		})
		require.NoError(t, err)

		assert.Equal(t, 3, svc.Count())
		records := svc.Snapshot()
		assert.Equal(t, saved, records[1], "position is preserved")
		assert.Equal(t, "Seeded", records[0].Name)
		assert.Equal(t, "Seeded", records[2].Name)
		assert.Equal(t, 1, mem.Writes)
	})

	t.Run("Should reject an id that is not in the collection", func(t *testing.T) {
		svc, mem := newLoaded(t, 3)

		_, err := svc.Save(ctx, model.Product{
			ID:       42,
			Name:     "Ghost",
			Category: "Stationery",
		})
		require.Error(t, err)

		var zErr zerror.ZError
		require.ErrorAs(t, err, &zErr)
		assert.Equal(t, apperr.ProductNotFoundCode, zErr.Code())
		assert.Zero(t, mem.Writes)
	})

	t.Run("Should refuse a record missing required fields", func(t *testing.T) {
		svc, mem := newLoaded(t, 3)

		_, err := svc.Save(ctx, model.Product{Name: "  ", Category: "Stationery"})
		require.Error(t, err)

		var zErr zerror.ZError
		require.ErrorAs(t, err, &zErr)
		assert.Equal(t, apperr.ValidationErrorCode, zErr.Code())
		assert.Equal(t, 3, svc.Count())
		assert.Zero(t, mem.Writes)
	})

	t.Run("Should persist the whole collection on every mutation", func(t *testing.T) {
		svc, mem := newLoaded(t, 0)

		for i := 0; i < 3; i++ {
			_, err := svc.Save(ctx, model.Product{
				Name: "Pen", Category: "Stationery", Price: 1, Stock: 1,
			})
			require.NoError(t, err)
		}
		assert.Equal(t, 3, mem.Writes)

		data, ok, err := mem.Read(ctx)
		require.NoError(t, err)
		require.True(t, ok)

		var persisted []model.Product
		require.NoError(t, json.Unmarshal(data, &persisted))
		assert.Equal(t, svc.Snapshot(), persisted)
	})

	t.Run("Should never reuse ids after loading sparse ones", func(t *testing.T) {
		mem := store.NewMemory()
		sparse := []model.Product{
			{ID: 1, Name: "A", Category: "C", IsActive: true},
			{ID: 9, Name: "B", Category: "C", IsActive: true},
		}
		data, err := json.Marshal(sparse)
		require.NoError(t, err)
		require.NoError(t, mem.Write(context.Background(), data))

		svc := catalog.NewService(discardLogger(), mem, seed.Static(nil))
		require.NoError(t, svc.Load(ctx))

		saved, err := svc.Save(ctx, model.Product{
			Name: "C", Category: "C", Price: 1, Stock: 1,
		})
		require.NoError(t, err)
		assert.Equal(t, int64(10), saved.ID)
	})
}

func TestReset(t *testing.T) {
	ctx := context.Background()

	t.Run("Should clear the store and reseed", func(t *testing.T) {
		mem := store.NewMemory()
		svc := catalog.NewService(discardLogger(), mem, seed.Static(seedRecords(3)))
		require.NoError(t, svc.Load(ctx))

		_, err := svc.Save(ctx, model.Product{
			Name: "Extra", Category: "Stationery", Price: 1, Stock: 1,
		})
		require.NoError(t, err)
		require.Equal(t, 4, svc.Count())

		count, err := svc.Reset(ctx)
		require.NoError(t, err)

		assert.Equal(t, 3, count)
		assert.Equal(t, 3, svc.Count())

		data, ok, err := mem.Read(ctx)
		require.NoError(t, err)
		require.True(t, ok)

		var persisted []model.Product
		require.NoError(t, json.Unmarshal(data, &persisted))
		assert.Len(t, persisted, 3)
	})

	t.Run("Should leave the catalog empty when reseeding fails", func(t *testing.T) {
		mem := store.NewMemory()
		svc := catalog.NewService(discardLogger(), mem, failingFetcher{})

		count, err := svc.Reset(ctx)
		require.NoError(t, err)
		assert.Zero(t, count)
		assert.Zero(t, svc.Count())
	})
}

func TestGet(t *testing.T) {
	ctx := context.Background()

	mem := store.NewMemory()
	svc := catalog.NewService(discardLogger(), mem, seed.Static(seedRecords(3)))
	require.NoError(t, svc.Load(ctx))

	t.Run("Should find an existing record", func(t *testing.T) {
		record, ok := svc.Get(2)
		require.True(t, ok)
		assert.Equal(t, int64(2), record.ID)
	})

	t.Run("Should miss an unknown id", func(t *testing.T) {
		_, ok := svc.Get(42)
		assert.False(t, ok)
	})
}
