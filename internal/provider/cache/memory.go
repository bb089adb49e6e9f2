package cache

import (
	"context"
	"sync"

	"portfolioquotes/internal/quote"
)

// MemoryStore keeps entries in a process-local map.
type MemoryStore struct {
	mu    sync.RWMutex
	items map[string]quote.Quote // key: symbol
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{items: make(map[string]quote.Quote)}
}

func (m *MemoryStore) Load(_ context.Context, symbol string) (*quote.Quote, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	q, ok := m.items[symbol]
	if !ok {
		return nil, nil
	}
	return &q, nil
}

func (m *MemoryStore) Save(_ context.Context, q quote.Quote) error {
	m.mu.Lock()
	m.items[q.Symbol] = q
	m.mu.Unlock()
	return nil
}

func (m *MemoryStore) Delete(_ context.Context, symbol string) error {
	m.mu.Lock()
	delete(m.items, symbol)
	m.mu.Unlock()
	return nil
}

func (m *MemoryStore) DeleteAll(_ context.Context) error {
	m.mu.Lock()
	clear(m.items)
	m.mu.Unlock()
	return nil
}

// Len returns the number of stored entries, fresh or stale.
func (m *MemoryStore) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.items)
}
