// Package catalog owns the product collection: the ordered, in-memory
// single source of truth. Every successful mutation serializes the whole
// collection and overwrites the record store snapshot.
package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/stocklight/stocklight/internal/apperr"
	"github.com/stocklight/stocklight/internal/model"
	"github.com/stocklight/stocklight/internal/seed"
	"github.com/stocklight/stocklight/internal/store"
)

// Service holds the collection and applies validated records to it.
type Service struct {
	logger *slog.Logger
	store  store.RecordStore
	seeder seed.Fetcher
	now    func() time.Time

	mu      sync.RWMutex
	records []model.Product
	lastID  int64
}

func NewService(logger *slog.Logger, recordStore store.RecordStore, seeder seed.Fetcher) *Service {
	return &Service{
		logger: logger.With(slog.String("service", "catalog")),
		store:  recordStore,
		seeder: seeder,
		now:    time.Now,
	}
}

// Load initializes the collection: from the store snapshot when one
// exists, otherwise from the seed source. A failed seed fetch is logged
// and leaves the collection empty; the service still starts.
func (s *Service) Load(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, ok, err := s.store.Read(ctx)
	if err != nil {
		return fmt.Errorf("read snapshot: %w", err)
	}

	if ok {
		var records []model.Product
		if err := json.Unmarshal(data, &records); err != nil {
			// A snapshot we cannot decode is as good as no snapshot.
			s.logger.WarnContext(ctx, "discarding unreadable snapshot", slog.Any("error", err))
		} else {
			s.setRecords(records)
			s.logger.InfoContext(ctx, "catalog loaded from store", slog.Int("count", len(records)))
			return nil
		}
	}

	return s.seedLocked(ctx)
}

// Reset discards the stored snapshot and reloads from the seed source.
func (s *Service) Reset(ctx context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.store.Clear(ctx); err != nil {
		return 0, apperr.StoreUnavailableErr.WrapParent(fmt.Errorf("clear snapshot: %w", err))
	}

	if err := s.seedLocked(ctx); err != nil {
		return 0, err
	}

	return len(s.records), nil
}

func (s *Service) seedLocked(ctx context.Context) error {
	records, err := s.seeder.Fetch(ctx)
	if err != nil {
		s.logger.WarnContext(ctx, "seed fetch failed, starting with empty catalog",
			slog.Any("error", err))
		s.setRecords(nil)
		return nil
	}

	s.setRecords(records)
	if len(records) == 0 {
		return nil
	}

	if err := s.persistLocked(ctx); err != nil {
		return err
	}

	s.logger.InfoContext(ctx, "catalog seeded", slog.Int("count", len(records)))
	return nil
}

// Save applies a validated record. A record without an id is appended
// with a fresh id, creation timestamp and isActive=true; a record with an
// id replaces the matching element in place, leaving its position
// untouched. The collection is persisted after either mutation.
func (s *Service) Save(ctx context.Context, p model.Product) (model.Product, error) {
	if err := checkRequired(p); err != nil {
		return model.Product{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if p.ID == 0 {
		s.lastID++
		p.ID = s.lastID
		p.CreatedAt = s.now().UTC()
		p.IsActive = true
		s.records = append(s.records, p)
	} else {
		idx := -1
		for i, r := range s.records {
			if r.ID == p.ID {
				idx = i
				break
			}
		}
		if idx < 0 {
			return model.Product{}, apperr.ProductNotFoundErr.WrapParent(
				fmt.Errorf("id %d not in collection", p.ID))
		}
		s.records[idx] = p
	}

	if err := s.persistLocked(ctx); err != nil {
		return model.Product{}, err
	}

	return p, nil
}

// Snapshot returns a copy of the collection in order.
func (s *Service) Snapshot() []model.Product {
	s.mu.RLock()
	defer s.mu.RUnlock()

	records := make([]model.Product, len(s.records))
	copy(records, s.records)
	return records
}

// Get returns the record with the given id.
func (s *Service) Get(id int64) (model.Product, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, r := range s.records {
		if r.ID == id {
			return r, true
		}
	}
	return model.Product{}, false
}

// Count returns the collection length.
func (s *Service) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records)
}

func (s *Service) persistLocked(ctx context.Context) error {
	data, err := json.Marshal(s.records)
	if err != nil {
		return fmt.Errorf("marshal collection: %w", err)
	}

	if err := s.store.Write(ctx, data); err != nil {
		return apperr.StoreUnavailableErr.WrapParent(fmt.Errorf("write snapshot: %w", err))
	}

	return nil
}

// setRecords replaces the collection and re-bases the id counter. The
// counter starts at the highest existing id so ids are never reused, even
// if a delete operation is ever added.
func (s *Service) setRecords(records []model.Product) {
	if records == nil {
		records = []model.Product{}
	}
	s.records = records
	s.lastID = 0
	for _, r := range records {
		if r.ID > s.lastID {
			s.lastID = r.ID
		}
	}
}

// checkRequired is the defensive save-time double check behind the form
// validator. It should never fire for input that went through the form.
func checkRequired(p model.Product) error {
	var missing []string
	if strings.TrimSpace(p.Name) == "" {
		missing = append(missing, "name")
	}
	if strings.TrimSpace(p.Category) == "" {
		missing = append(missing, "category")
	}
	if p.Price < 0 {
		missing = append(missing, "price")
	}
	if p.Stock < 0 {
		missing = append(missing, "stock")
	}
	if len(missing) > 0 {
		return apperr.ValidationErr.WrapParent(
			fmt.Errorf("missing or invalid fields: %s", strings.Join(missing, ", ")))
	}
	return nil
}
