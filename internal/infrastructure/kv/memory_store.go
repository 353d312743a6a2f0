package kv

import (
	"context"
	"sync"

	"github.com/doeshing/sleepsync/internal/ports"
)

// MemoryStore is a process-local store, used for dry runs and tests.
type MemoryStore struct {
	mu    sync.RWMutex
	items map[string]string
}

// NewMemoryStore returns an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{items: make(map[string]string)}
}

func (m *MemoryStore) GetItem(_ context.Context, key string) (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.items[key]
	return v, ok, nil
}

func (m *MemoryStore) SetItem(_ context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.items[key] = value
	return nil
}

func (m *MemoryStore) RemoveItem(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.items, key)
	return nil
}

var _ ports.KeyValueStore = (*MemoryStore)(nil)
