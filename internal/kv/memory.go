package kv

import (
	"context"
	"fmt"
	"maps"
)

// MemoryStore keeps values in a map. When quota is positive, the summed
// length of keys and values may not exceed it, like browser local storage.
// It is not safe for concurrent use.
type MemoryStore struct {
	data  map[string][]byte
	quota int64
	used  int64
}

// NewMemoryStore returns an empty store. quota <= 0 means unlimited.
func NewMemoryStore(quota int64) *MemoryStore {
	return &MemoryStore{data: make(map[string][]byte), quota: quota}
}

func (m *MemoryStore) Get(_ context.Context, key string) ([]byte, error) {
	v, ok := m.data[key]
	if !ok {
		return nil, nil
	}
	return append([]byte(nil), v...), nil
}

func (m *MemoryStore) Set(_ context.Context, key string, value []byte) error {
	used := m.used + int64(len(key)+len(value))
	if old, ok := m.data[key]; ok {
		used -= int64(len(key) + len(old))
	}
	if m.quota > 0 && used > m.quota {
		return fmt.Errorf("failed to set kv[%s]: %w", key, ErrQuotaExceeded)
	}
	m.data[key] = append([]byte(nil), value...)
	m.used = used
	return nil
}

func (m *MemoryStore) Delete(_ context.Context, key string) error {
	if old, ok := m.data[key]; ok {
		m.used -= int64(len(key) + len(old))
		delete(m.data, key)
	}
	return nil
}

func (m *MemoryStore) Clear(_ context.Context) error {
	clear(m.data)
	m.used = 0
	return nil
}

func (m *MemoryStore) List(_ context.Context) (map[string][]byte, error) {
	out := make(map[string][]byte, len(m.data))
	for k, v := range m.data {
		out[k] = append([]byte(nil), v...)
	}
	return out, nil
}

// Used reports the bytes counted against the quota.
func (m *MemoryStore) Used() int64 {
	return m.used
}

// Atomic runs fn against a copy of the store and swaps it in only when fn
// succeeds.
func (m *MemoryStore) Atomic(ctx context.Context, fn func(ctx context.Context, s Store) error) error {
	staged := &MemoryStore{data: maps.Clone(m.data), quota: m.quota, used: m.used}
	if err := fn(ctx, staged); err != nil {
		return err
	}
	m.data = staged.data
	m.used = staged.used
	return nil
}
