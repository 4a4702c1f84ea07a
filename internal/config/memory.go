package config

import (
	"context"
	"fmt"
	"sync"
)

// MemoryStore is an in-memory Store used in tests and for seeding
// local development without a database.
type MemoryStore struct {
	mu     sync.RWMutex
	values map[string]string
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{values: make(map[string]string)}
}

func (m *MemoryStore) key(storeID int64, path string) string {
	return fmt.Sprintf("%d/%s", storeID, path)
}

func (m *MemoryStore) Set(storeID int64, path, value string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[m.key(storeID, path)] = value
}

func (m *MemoryStore) Get(ctx context.Context, storeID int64, path string) (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.values[m.key(storeID, path)]
	return v, ok, nil
}
