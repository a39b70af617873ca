package hmsearch

import (
	"errors"
	"fmt"

	"github.com/hupe1980/hmsearch/kvstore"
)

var (
	// ErrClosed is returned when an operation is attempted on a
	// closed index.
	ErrClosed = errors.New("hmsearch: index is closed")

	// ErrCorruptSettings is returned when the settings records are
	// absent, empty, or non-positive on open.
	ErrCorruptSettings = errors.New("hmsearch: corrupt settings records")

	// ErrStorageExists is returned by Init when a store already
	// exists at the given path.
	ErrStorageExists = kvstore.ErrExists

	// ErrStorageMissing is returned by Open when no store exists at
	// the given path.
	ErrStorageMissing = kvstore.ErrMissing
)

// ErrInvalidHashBits indicates an unsupported hash bit-width.
// Hash widths must be positive multiples of 8.
type ErrInvalidHashBits struct {
	Bits int
}

func (e *ErrInvalidHashBits) Error() string {
	return fmt.Sprintf("hmsearch: invalid hash bits: %d (must be a positive multiple of 8)", e.Bits)
}

// ErrInvalidMaxError indicates an unsupported maximum error.
// The maximum error must satisfy 0 < k < hash bits and k <= 518.
type ErrInvalidMaxError struct {
	MaxError int
	HashBits int
}

func (e *ErrInvalidMaxError) Error() string {
	return fmt.Sprintf("hmsearch: invalid max error: %d (hash bits %d)", e.MaxError, e.HashBits)
}

// ErrInvalidHashLength indicates that an input hash does not match the
// index's configured width.
type ErrInvalidHashLength struct {
	Expected int
	Actual   int
}

func (e *ErrInvalidHashLength) Error() string {
	return fmt.Sprintf("hmsearch: invalid hash length: expected %d bytes, got %d", e.Expected, e.Actual)
}
