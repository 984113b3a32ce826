// Package seed loads the fallback record collection from a static JSON
// document. It is consulted exactly once, and only when the record store
// holds no snapshot.
package seed

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/stocklight/stocklight/internal/config"
	"github.com/stocklight/stocklight/internal/model"
)

// Fetcher retrieves the seed collection.
type Fetcher interface {
	Fetch(ctx context.Context) ([]model.Product, error)
}

type fetcher struct {
	source  string
	timeout time.Duration
	client  *http.Client
}

// New creates a fetcher for the configured source, either an http(s) URL
// or a local file path.
func New(cfg config.Seed) Fetcher {
	return &fetcher{
		source:  cfg.Source,
		timeout: cfg.Timeout,
		client:  &http.Client{Timeout: cfg.Timeout},
	}
}

func (f *fetcher) Fetch(ctx context.Context) ([]model.Product, error) {
	if f.source == "" {
		return nil, nil
	}

	var (
		data []byte
		err  error
	)
	if strings.HasPrefix(f.source, "http://") || strings.HasPrefix(f.source, "https://") {
		data, err = f.fetchHTTP(ctx)
	} else {
		data, err = os.ReadFile(f.source)
	}
	if err != nil {
		return nil, fmt.Errorf("read seed source %s: %w", f.source, err)
	}

	var records []model.Product
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("unmarshal seed records: %w", err)
	}

	return records, nil
}

func (f *fetcher) fetchHTTP(ctx context.Context) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.source, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("get: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("get: unexpected status %d", resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}

	return data, nil
}

// Static is a Fetcher over a fixed slice, used in tests and by sl-reset.
type Static []model.Product

func (s Static) Fetch(context.Context) ([]model.Product, error) {
	return s, nil
}
