// Package memory provides an in-memory kv.Store for tests and ephemeral runs.
package memory

import (
	"context"
	"sort"
	"sync"

	"supplycore/internal/kv"
)

// Store keeps values in a map guarded by a mutex.
type Store struct {
	mu     sync.RWMutex
	data   map[string][]byte
	closed bool
}

// New returns an empty in-memory store.
func New() *Store {
	return &Store{data: make(map[string][]byte)}
}

func (s *Store) Driver() kv.Driver { return kv.DriverMemory }

func (s *Store) Get(_ context.Context, key string) ([]byte, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return nil, false, kv.ErrClosed
	}
	v, ok := s.data[key]
	if !ok {
		return nil, false, nil
	}
	cp := make([]byte, len(v))
	copy(cp, v)
	return cp, true, nil
}

func (s *Store) Set(_ context.Context, key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return kv.ErrClosed
	}
	cp := make([]byte, len(value))
	copy(cp, value)
	s.data[key] = cp
	return nil
}

func (s *Store) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return kv.ErrClosed
	}
	delete(s.data, key)
	return nil
}

func (s *Store) Keys(_ context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return nil, kv.ErrClosed
	}
	keys := make([]string, 0, len(s.data))
	for k := range s.data {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys, nil
}

func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return nil
}
