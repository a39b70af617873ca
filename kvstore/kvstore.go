// Package kvstore abstracts the ordered byte-keyed store the index
// persists into.
//
// The index only needs a small contract: point reads, point writes,
// atomic write batches and an ordered scan. The package includes a
// BadgerDB-backed implementation for production use and an in-memory
// implementation for testing.
package kvstore

import (
	"context"
	"errors"
	"iter"
)

// Sentinel errors.
var (
	// ErrNotFound is returned when a key does not exist in the store.
	ErrNotFound = errors.New("kvstore: key not found")

	// ErrExists is returned when creating a store at a path that is
	// already occupied.
	ErrExists = errors.New("kvstore: store already exists")

	// ErrMissing is returned when opening a store that does not exist.
	ErrMissing = errors.New("kvstore: store does not exist")
)

// Entry is a key-value pair yielded by Scan.
type Entry struct {
	Key   []byte
	Value []byte
}

// Store is an ordered byte-keyed map with per-operation durability.
//
// Implementations must be safe for concurrent readers; writer
// concurrency follows the backing engine.
type Store interface {
	// Get retrieves the value for a key. Returns ErrNotFound if not present.
	Get(ctx context.Context, key []byte) ([]byte, error)

	// Put stores a key-value pair. Overwrites any existing value.
	Put(ctx context.Context, key, value []byte) error

	// Scan iterates over all entries in byte-lexicographic key order.
	Scan(ctx context.Context) iter.Seq2[Entry, error]

	// Batch starts a write batch. Put calls on the batch become
	// visible atomically on Flush.
	Batch() Batch

	// Close releases any resources held by the store. Close is
	// idempotent.
	Close() error
}

// Batch collects writes that are applied together by Flush.
type Batch interface {
	Put(key, value []byte) error

	// Flush applies the batch. The batch must not be reused afterwards.
	Flush() error

	// Cancel discards the batch. Safe to call after Flush.
	Cancel()
}

// Opener creates or opens a Store at a filesystem path.
//
// With create set, the call must fail with ErrExists if a store is
// already present; without it, the call must fail with ErrMissing if
// none is.
type Opener func(path string, create bool) (Store, error)
