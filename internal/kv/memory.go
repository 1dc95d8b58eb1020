package kv

import (
	"context"
	"sync"
)

// MemoryBackend keeps values in a map. It is used by tests and by the
// ":memory:" DSN.
type MemoryBackend struct {
	mu     sync.RWMutex
	values map[string]string
}

// NewMemoryBackend returns an empty in-process backend.
func NewMemoryBackend() *MemoryBackend {
	return &MemoryBackend{values: make(map[string]string)}
}

func (m *MemoryBackend) Get(_ context.Context, key string) (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	v, ok := m.values[key]
	return v, ok, nil
}

func (m *MemoryBackend) Put(_ context.Context, entries map[string]string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for k, v := range entries {
		m.values[k] = v
	}
	return nil
}

func (m *MemoryBackend) Delete(_ context.Context, keys ...string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, k := range keys {
		delete(m.values, k)
	}
	return nil
}

// CompareAndSwap implements [Backend].
func (m *MemoryBackend) CompareAndSwap(_ context.Context, key, expected, value string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	current, ok := m.values[key]
	if expected == "" {
		if ok {
			return false, nil
		}
	} else if !ok || current != expected {
		return false, nil
	}

	m.values[key] = value
	return true, nil
}

func (m *MemoryBackend) Close() error {
	return nil
}
