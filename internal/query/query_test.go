package query_test

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stocklight/stocklight/internal/model"
	"github.com/stocklight/stocklight/internal/query"
)

func testRecords(n int) []model.Product {
	records := make([]model.Product, 0, n)
	for i := 1; i <= n; i++ {
		records = append(records, model.Product{
			ID:        int64(i),
			Name:      fmt.Sprintf("Product %d", i),
			Category:  "Stationery",
			Price:     float64(i) * 1.5,
			Stock:     i,
			Tags:      []string{"office", fmt.Sprintf("tag%d", i)},
			CreatedAt: time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC),
			IsActive:  true,
		})
	}
	return records
}

func TestFilter(t *testing.T) {
	records := testRecords(20)

	t.Run("Should return everything for an empty term", func(t *testing.T) {
		assert.Equal(t, records, query.Filter(records, ""))
	})

	t.Run("Should return everything for a whitespace-only term", func(t *testing.T) {
		assert.Equal(t, records, query.Filter(records, "   \t "))
	})

	t.Run("Should return a subset of the input", func(t *testing.T) {
		filtered := query.Filter(records, "product 1")
		for _, r := range filtered {
			assert.Contains(t, records, r)
		}
	})

	t.Run("Should be idempotent", func(t *testing.T) {
		once := query.Filter(records, "tag1")
		twice := query.Filter(once, "tag1")
		assert.Equal(t, once, twice)
	})

	t.Run("Should match case-insensitively", func(t *testing.T) {
		filtered := query.Filter(records, "STATIONERY")
		assert.Len(t, filtered, 20)
	})

	t.Run("Should match against tags", func(t *testing.T) {
		filtered := query.Filter(records, "tag7")
		require.Len(t, filtered, 1)
		assert.Equal(t, int64(7), filtered[0].ID)
	})

	t.Run("Should match against the id", func(t *testing.T) {
		filtered := query.Filter(records, "13")
		ids := make([]int64, 0, len(filtered))
		for _, r := range filtered {
			ids = append(ids, r.ID)
		}
		// Record 9 also matches through its price of 13.5.
		assert.Contains(t, ids, int64(13))
	})

	t.Run("Should match against the price", func(t *testing.T) {
		// Record 5 has price 7.5; record 11's price 16.5 does not match.
		filtered := query.Filter(records, "7.5")
		require.Len(t, filtered, 1)
		assert.Equal(t, int64(5), filtered[0].ID)
	})

	t.Run("Should return nothing for a term matching nothing", func(t *testing.T) {
		assert.Empty(t, query.Filter(records, "does-not-exist"))
	})
}

func TestPaginate(t *testing.T) {
	t.Run("Should compute total pages as ceil of count over page size", func(t *testing.T) {
		for _, tc := range []struct {
			count, totalPages int
		}{
			{0, 0}, {1, 1}, {8, 1}, {9, 2}, {16, 2}, {17, 3}, {20, 3},
		} {
			result := query.Paginate(testRecords(tc.count), 1)
			assert.Equal(t, tc.totalPages, result.Pagination.TotalPages,
				"count=%d", tc.count)
		}
	})

	t.Run("Should slice the requested page", func(t *testing.T) {
		records := testRecords(20)

		result := query.Paginate(records, 2)
		require.Len(t, result.Items, 8)
		assert.Equal(t, int64(9), result.Items[0].ID)
		assert.Equal(t, int64(16), result.Items[7].ID)
	})

	t.Run("Should return a short final page", func(t *testing.T) {
		result := query.Paginate(testRecords(20), 3)
		assert.Len(t, result.Items, 4)
	})

	t.Run("Should return an empty slice past the last page", func(t *testing.T) {
		result := query.Paginate(testRecords(20), 4)
		assert.Empty(t, result.Items)
		assert.Equal(t, 20, result.Pagination.Total)
		assert.Equal(t, 3, result.Pagination.TotalPages)
	})

	t.Run("Should treat page zero as page one", func(t *testing.T) {
		result := query.Paginate(testRecords(20), 0)
		require.Len(t, result.Items, 8)
		assert.Equal(t, int64(1), result.Items[0].ID)
		assert.Equal(t, 1, result.Pagination.Page)
	})
}

func TestSearch(t *testing.T) {
	t.Run("Should filter then paginate", func(t *testing.T) {
		records := testRecords(20)

		result := query.Search(records, "office", 3)
		assert.Len(t, result.Items, 4)
		assert.Equal(t, 20, result.Pagination.Total)
	})

	t.Run("Should report filtered totals, not collection totals", func(t *testing.T) {
		records := testRecords(20)

		result := query.Search(records, "tag1", 1)
		// tag1, tag10..tag19: 11 matches.
		assert.Equal(t, 11, result.Pagination.Total)
		assert.Equal(t, 2, result.Pagination.TotalPages)
	})
}
