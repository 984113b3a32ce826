package store

import (
	"context"
	"sync"
)

var _ RecordStore = (*Memory)(nil)

// Memory is an in-process RecordStore, used in tests and available as a
// store driver for throwaway runs.
type Memory struct {
	mu   sync.Mutex
	data []byte
	set  bool

	// Writes counts successful Write calls, for tests asserting the
	// persist-after-every-mutation rule.
	Writes int
}

func NewMemory() *Memory {
	return &Memory{}
}

func (m *Memory) Read(_ context.Context) ([]byte, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.set {
		return nil, false, nil
	}
	data := make([]byte, len(m.data))
	copy(data, m.data)
	return data, true, nil
}

func (m *Memory) Write(_ context.Context, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data = make([]byte, len(data))
	copy(m.data, data)
	m.set = true
	m.Writes++
	return nil
}

func (m *Memory) Clear(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data = nil
	m.set = false
	return nil
}
