package kvstore

import (
	"context"
	"fmt"
	"iter"
	"sort"
	"sync"
)

// Memory is an in-memory Store implementation backed by a map with
// sorted scans. It is safe for concurrent use and intended primarily
// for testing.
type Memory struct {
	mu   sync.RWMutex
	data map[string][]byte
}

var _ Store = (*Memory)(nil)

// NewMemory creates a new empty in-memory Store.
func NewMemory() *Memory {
	return &Memory{data: make(map[string][]byte)}
}

// MemoryOpener returns an Opener dispensing in-memory stores keyed by
// path, so that a store "created" at a path can later be re-"opened"
// within the same process. Useful for lifecycle tests without disk.
func MemoryOpener() Opener {
	var mu sync.Mutex
	stores := make(map[string]*Memory)

	return func(path string, create bool) (Store, error) {
		mu.Lock()
		defer mu.Unlock()
		s, ok := stores[path]
		if create {
			if ok {
				return nil, fmt.Errorf("%w: %s", ErrExists, path)
			}
			s = NewMemory()
			stores[path] = s
			return s, nil
		}
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrMissing, path)
		}
		return s, nil
	}
}

// Get retrieves the value for a key.
func (m *Memory) Get(_ context.Context, key []byte) ([]byte, error) {
	m.mu.RLock()
	v, ok := m.data[string(key)]
	m.mu.RUnlock()
	if !ok {
		return nil, ErrNotFound
	}
	// Return a copy to prevent mutation.
	cp := make([]byte, len(v))
	copy(cp, v)
	return cp, nil
}

// Put stores a key-value pair.
func (m *Memory) Put(_ context.Context, key, value []byte) error {
	cp := make([]byte, len(value))
	copy(cp, value)
	m.mu.Lock()
	m.data[string(key)] = cp
	m.mu.Unlock()
	return nil
}

// Scan iterates over all entries in key order.
func (m *Memory) Scan(_ context.Context) iter.Seq2[Entry, error] {
	m.mu.RLock()
	keys := make([]string, 0, len(m.data))
	for k := range m.data {
		keys = append(keys, k)
	}
	m.mu.RUnlock()
	sort.Strings(keys)

	return func(yield func(Entry, error) bool) {
		for _, k := range keys {
			m.mu.RLock()
			v, ok := m.data[k]
			m.mu.RUnlock()
			if !ok {
				continue
			}
			cp := make([]byte, len(v))
			copy(cp, v)
			if !yield(Entry{Key: []byte(k), Value: cp}, nil) {
				return
			}
		}
	}
}

// Batch starts a write batch applied under a single lock on Flush.
func (m *Memory) Batch() Batch {
	return &memoryBatch{store: m}
}

// Close is a no-op for the in-memory store.
func (m *Memory) Close() error { return nil }

// Len returns the number of stored entries.
func (m *Memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.data)
}

type memoryBatch struct {
	store   *Memory
	pending []Entry
	done    bool
}

func (b *memoryBatch) Put(key, value []byte) error {
	k := make([]byte, len(key))
	copy(k, key)
	v := make([]byte, len(value))
	copy(v, value)
	b.pending = append(b.pending, Entry{Key: k, Value: v})
	return nil
}

func (b *memoryBatch) Flush() error {
	if b.done {
		return nil
	}
	b.done = true
	b.store.mu.Lock()
	for _, e := range b.pending {
		b.store.data[string(e.Key)] = e.Value
	}
	b.store.mu.Unlock()
	b.pending = nil
	return nil
}

func (b *memoryBatch) Cancel() {
	b.done = true
	b.pending = nil
}
