// Package view mirrors the admin page's interaction state: the layout
// toggle, the current page and the search box. Raw search input is
// debounced into the effective term; committing a new term always lands
// the session back on page 1 so it can never sit silently on an empty
// page.
package view

import (
	"fmt"
	"sync"
	"time"

	"github.com/stocklight/stocklight/internal/apperr"
	"github.com/stocklight/stocklight/internal/catalog"
	"github.com/stocklight/stocklight/internal/query"
	"github.com/stocklight/stocklight/pkg/debounce"
)

// Layout is the rendering mode of the product listing.
type Layout uint8

const (
	LayoutTable Layout = iota
	LayoutCard
)

func (l Layout) String() string {
	return []string{"table", "card"}[l]
}

// MarshalText implements [encoding.TextMarshaler].
func (l Layout) MarshalText() ([]byte, error) {
	return []byte(l.String()), nil
}

// UnmarshalText implements [encoding.TextUnmarshaler].
func (l *Layout) UnmarshalText(text []byte) error {
	parsed, err := ParseLayout(string(text))
	if err != nil {
		return err
	}
	*l = parsed
	return nil
}

// ParseLayout maps the wire value to a Layout.
func ParseLayout(s string) (Layout, error) {
	switch s {
	case "table":
		return LayoutTable, nil
	case "card":
		return LayoutCard, nil
	default:
		return 0, apperr.InvalidViewLayoutErr.WrapParent(fmt.Errorf("layout %q", s))
	}
}

// Page is one rendered view of the catalog.
type Page struct {
	Layout Layout       `json:"layout"`
	Term   string       `json:"term"`
	Result query.Result `json:"result"`
}

// Session is the per-service view state.
type Session struct {
	catalog   *catalog.Service
	debouncer *debounce.Debouncer

	mu     sync.Mutex
	layout Layout
	term   string
	page   int
}

func NewSession(cat *catalog.Service, searchDebounce time.Duration) *Session {
	return &Session{
		catalog:   cat,
		debouncer: debounce.New(searchDebounce),
		layout:    LayoutTable,
		page:      1,
	}
}

// SetSearchInput feeds one edit of the search box. The effective term
// only changes after the input stays idle for the debounce delay; every
// further edit cancels the pending commit.
func (s *Session) SetSearchInput(input string) {
	s.debouncer.Trigger(func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		if s.term == input {
			return
		}
		s.term = input
		s.page = 1
	})
}

// SetPage selects the 1-based page. Out-of-range values are allowed; the
// query engine renders them as an empty slice.
func (s *Session) SetPage(page int) {
	if page <= 0 {
		page = 1
	}
	s.mu.Lock()
	s.page = page
	s.mu.Unlock()
}

// SetLayout switches between table and card rendering.
func (s *Session) SetLayout(l Layout) {
	s.mu.Lock()
	s.layout = l
	s.mu.Unlock()
}

// Reset returns the session to its initial state: table layout, page 1,
// empty term, pending search input discarded.
func (s *Session) Reset() {
	s.debouncer.Stop()
	s.mu.Lock()
	s.layout = LayoutTable
	s.term = ""
	s.page = 1
	s.mu.Unlock()
}

// Render computes the current page over the catalog snapshot.
func (s *Session) Render() Page {
	s.mu.Lock()
	layout, term, page := s.layout, s.term, s.page
	s.mu.Unlock()

	return Page{
		Layout: layout,
		Term:   term,
		Result: query.Search(s.catalog.Snapshot(), term, page),
	}
}

// Close cancels any pending search commit.
func (s *Session) Close() {
	s.debouncer.Stop()
}
