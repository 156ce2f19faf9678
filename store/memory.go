package store

import (
	"context"
	"sync"
)

// Compile-time interface check.
var _ Store = (*MemoryStore)(nil)

// MemoryStore is an in-memory Store implementation.
// It is safe for concurrent use. Records are lost on process restart.
type MemoryStore struct {
	mu      sync.Mutex
	records map[string]Record
}

// NewMemoryStore creates a new in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		records: make(map[string]Record),
	}
}

// Load returns a copy of the record stored under namespace.
func (m *MemoryStore) Load(_ context.Context, namespace string) (Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	r, ok := m.records[namespace]
	if !ok {
		return NewRecord(), nil
	}
	return r.Clone(), nil
}

// Commit merges batch into the stored record under the store lock.
func (m *MemoryStore) Commit(_ context.Context, namespace string, batch Record) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	r, ok := m.records[namespace]
	if !ok {
		r = NewRecord()
	}
	r.Merge(batch)
	m.records[namespace] = r
	return nil
}

// Reset removes the record for the given namespace.
func (m *MemoryStore) Reset(_ context.Context, namespace string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.records, namespace)
	return nil
}

// Close is a no-op for the in-memory store.
func (m *MemoryStore) Close() error {
	return nil
}
