package kvstore

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBadgerLifecycle(t *testing.T) {
	ctx := context.Background()
	dir := filepath.Join(t.TempDir(), "db")

	// Open before create fails.
	_, err := OpenBadger(dir, false)
	require.ErrorIs(t, err, ErrMissing)

	s, err := OpenBadger(dir, true)
	require.NoError(t, err)
	require.NoError(t, s.Put(ctx, []byte("k"), []byte("v")))
	require.NoError(t, s.Close())

	// Second create fails.
	_, err = OpenBadger(dir, true)
	require.ErrorIs(t, err, ErrExists)

	// Reopen sees the data.
	s2, err := OpenBadger(dir, false)
	require.NoError(t, err)
	v, err := s2.Get(ctx, []byte("k"))
	require.NoError(t, err)
	assert.Equal(t, []byte("v"), v)
	require.NoError(t, s2.Close())
	require.NoError(t, s2.Close(), "close must be idempotent")
}

func TestBadgerGetNotFound(t *testing.T) {
	ctx := context.Background()
	s, err := OpenBadger(filepath.Join(t.TempDir(), "db"), true)
	require.NoError(t, err)
	defer s.Close()

	_, err = s.Get(ctx, []byte("missing"))
	require.ErrorIs(t, err, ErrNotFound)
}

func TestBadgerScanOrder(t *testing.T) {
	ctx := context.Background()
	s, err := OpenBadger(filepath.Join(t.TempDir(), "db"), true)
	require.NoError(t, err)
	defer s.Close()

	for _, k := range []string{"b", "a", "c", "_x", "Pz"} {
		require.NoError(t, s.Put(ctx, []byte(k), []byte(k)))
	}

	var keys []string
	for entry, err := range s.Scan(ctx) {
		require.NoError(t, err)
		keys = append(keys, string(entry.Key))
	}
	assert.Equal(t, []string{"Pz", "_x", "a", "b", "c"}, keys)
}

func TestBadgerBatch(t *testing.T) {
	ctx := context.Background()
	s, err := OpenBadger(filepath.Join(t.TempDir(), "db"), true)
	require.NoError(t, err)
	defer s.Close()

	batch := s.Batch()
	require.NoError(t, batch.Put([]byte("a"), []byte("1")))
	require.NoError(t, batch.Put([]byte("b"), []byte("2")))
	require.NoError(t, batch.Flush())
	batch.Cancel()

	v, err := s.Get(ctx, []byte("a"))
	require.NoError(t, err)
	assert.Equal(t, []byte("1"), v)

	batch = s.Batch()
	require.NoError(t, batch.Put([]byte("c"), []byte("3")))
	batch.Cancel()

	_, err = s.Get(ctx, []byte("c"))
	require.ErrorIs(t, err, ErrNotFound)
}
