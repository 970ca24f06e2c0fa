// ABOUTME: Mock Storage implementation for testing
// ABOUTME: Allows tests to run without SQLite and to inject adapter failures

package store

import (
	"context"
	"sync"
)

// MockStore is an in-memory Storage implementation for testing.
type MockStore struct {
	mu     sync.RWMutex
	values map[string]string
	getErr error
	setErr error
}

// NewMockStore creates a new MockStore.
func NewMockStore() *MockStore {
	return &MockStore{
		values: make(map[string]string),
	}
}

// Get returns the stored value or ErrNotFound.
func (m *MockStore) Get(ctx context.Context, key string) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.getErr != nil {
		return "", m.getErr
	}
	value, ok := m.values[key]
	if !ok {
		return "", ErrNotFound
	}
	return value, nil
}

// Set stores a value.
func (m *MockStore) Set(ctx context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.setErr != nil {
		return m.setErr
	}
	m.values[key] = value
	return nil
}

// FailGets makes every subsequent Get return err. Pass nil to clear.
func (m *MockStore) FailGets(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.getErr = err
}

// FailSets makes every subsequent Set return err. Pass nil to clear.
func (m *MockStore) FailSets(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.setErr = err
}

// Value returns the raw stored value for assertions.
func (m *MockStore) Value(key string) (string, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	value, ok := m.values[key]
	return value, ok
}
