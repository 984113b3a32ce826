package view_test

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stocklight/stocklight/internal/catalog"
	"github.com/stocklight/stocklight/internal/model"
	"github.com/stocklight/stocklight/internal/seed"
	"github.com/stocklight/stocklight/internal/store"
	"github.com/stocklight/stocklight/internal/view"
)

func newSession(t *testing.T, n int, debounceDelay time.Duration) *view.Session {
	t.Helper()

	records := make([]model.Product, 0, n)
	for i := 1; i <= n; i++ {
		records = append(records, model.Product{
			ID:       int64(i),
			Name:     "Widget",
			Category: "Hardware",
			Price:    float64(i),
			Stock:    i,
			IsActive: true,
		})
	}

	svc := catalog.NewService(slog.New(slog.DiscardHandler), store.NewMemory(), seed.Static(records))
	require.NoError(t, svc.Load(context.Background()))

	s := view.NewSession(svc, debounceDelay)
	t.Cleanup(s.Close)
	return s
}

func TestParseLayout(t *testing.T) {
	for _, tc := range []struct {
		in   string
		want view.Layout
	}{
		{"table", view.LayoutTable},
		{"card", view.LayoutCard},
	} {
		got, err := view.ParseLayout(tc.in)
		require.NoError(t, err)
		assert.Equal(t, tc.want, got)
	}

	_, err := view.ParseLayout("grid")
	assert.Error(t, err)
}

func TestSessionRender(t *testing.T) {
	t.Run("Should start on page one of the table layout", func(t *testing.T) {
		s := newSession(t, 20, 0)

		page := s.Render()
		assert.Equal(t, view.LayoutTable, page.Layout)
		assert.Empty(t, page.Term)
		assert.Equal(t, 1, page.Result.Pagination.Page)
		assert.Len(t, page.Result.Items, 8)
	})

	t.Run("Should switch layout without touching the page", func(t *testing.T) {
		s := newSession(t, 20, 0)
		s.SetPage(2)

		s.SetLayout(view.LayoutCard)

		page := s.Render()
		assert.Equal(t, view.LayoutCard, page.Layout)
		assert.Equal(t, 2, page.Result.Pagination.Page)
	})

	t.Run("Should render an out-of-range page as empty", func(t *testing.T) {
		s := newSession(t, 20, 0)
		s.SetPage(9)

		page := s.Render()
		assert.Empty(t, page.Result.Items)
		assert.Equal(t, 20, page.Result.Pagination.Total)
	})
}

func TestSessionSearch(t *testing.T) {
	t.Run("Should commit the term after the input settles", func(t *testing.T) {
		s := newSession(t, 20, 10*time.Millisecond)
		s.SetPage(3)

		s.SetSearchInput("widget")

		assert.Eventually(t, func() bool {
			return s.Render().Term == "widget"
		}, time.Second, 2*time.Millisecond)

		page := s.Render()
		assert.Equal(t, 1, page.Result.Pagination.Page, "term commit resets to page 1")
	})

	t.Run("Should only commit the last of rapid edits", func(t *testing.T) {
		s := newSession(t, 20, 20*time.Millisecond)

		for _, input := range []string{"w", "wi", "wid", "widget"} {
			s.SetSearchInput(input)
			time.Sleep(time.Millisecond)
		}

		assert.Eventually(t, func() bool {
			return s.Render().Term == "widget"
		}, time.Second, 2*time.Millisecond)
	})

	t.Run("Should not reset the page when the term is unchanged", func(t *testing.T) {
		s := newSession(t, 20, 0)

		s.SetSearchInput("widget")
		s.SetPage(2)
		s.SetSearchInput("widget")

		assert.Equal(t, 2, s.Render().Result.Pagination.Page)
	})

	t.Run("Should filter the rendered items", func(t *testing.T) {
		s := newSession(t, 20, 0)

		s.SetSearchInput("no-such-thing")

		page := s.Render()
		assert.Empty(t, page.Result.Items)
		assert.Zero(t, page.Result.Pagination.Total)
	})
}

func TestSessionReset(t *testing.T) {
	s := newSession(t, 20, 0)
	s.SetLayout(view.LayoutCard)
	s.SetSearchInput("widget")
	s.SetPage(2)

	s.Reset()

	page := s.Render()
	assert.Equal(t, view.LayoutTable, page.Layout)
	assert.Empty(t, page.Term)
	assert.Equal(t, 1, page.Result.Pagination.Page)
}
