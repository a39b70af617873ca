package kvstore

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryGetPut(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	_, err := m.Get(ctx, []byte("missing"))
	require.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, m.Put(ctx, []byte("a"), []byte("1")))
	v, err := m.Get(ctx, []byte("a"))
	require.NoError(t, err)
	assert.Equal(t, []byte("1"), v)

	// Overwrite
	require.NoError(t, m.Put(ctx, []byte("a"), []byte("2")))
	v, err = m.Get(ctx, []byte("a"))
	require.NoError(t, err)
	assert.Equal(t, []byte("2"), v)
}

func TestMemoryGetReturnsCopy(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()
	require.NoError(t, m.Put(ctx, []byte("a"), []byte("abc")))

	v, err := m.Get(ctx, []byte("a"))
	require.NoError(t, err)
	v[0] = 'x'

	v2, err := m.Get(ctx, []byte("a"))
	require.NoError(t, err)
	assert.Equal(t, []byte("abc"), v2)
}

func TestMemoryScanOrder(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()
	for _, k := range []string{"b", "a", "c", "_x", "Pz"} {
		require.NoError(t, m.Put(ctx, []byte(k), []byte(k)))
	}

	var keys []string
	for entry, err := range m.Scan(ctx) {
		require.NoError(t, err)
		keys = append(keys, string(entry.Key))
	}
	assert.Equal(t, []string{"Pz", "_x", "a", "b", "c"}, keys)
}

func TestMemoryBatch(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	batch := m.Batch()
	require.NoError(t, batch.Put([]byte("a"), []byte("1")))
	require.NoError(t, batch.Put([]byte("b"), []byte("2")))

	// Nothing visible before Flush.
	_, err := m.Get(ctx, []byte("a"))
	require.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, batch.Flush())

	v, err := m.Get(ctx, []byte("a"))
	require.NoError(t, err)
	assert.Equal(t, []byte("1"), v)
	assert.Equal(t, 2, m.Len())

	// Cancel after Flush is a no-op.
	batch.Cancel()
	assert.Equal(t, 2, m.Len())
}

func TestMemoryBatchCancel(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	batch := m.Batch()
	require.NoError(t, batch.Put([]byte("a"), []byte("1")))
	batch.Cancel()
	require.NoError(t, batch.Flush())

	_, err := m.Get(ctx, []byte("a"))
	require.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryOpener(t *testing.T) {
	ctx := context.Background()
	opener := MemoryOpener()

	// Open before create fails.
	_, err := opener("db", false)
	require.ErrorIs(t, err, ErrMissing)

	s, err := opener("db", true)
	require.NoError(t, err)
	require.NoError(t, s.Put(ctx, []byte("k"), []byte("v")))
	require.NoError(t, s.Close())

	// Second create fails.
	_, err = opener("db", true)
	require.ErrorIs(t, err, ErrExists)

	// Reopen sees the data.
	s2, err := opener("db", false)
	require.NoError(t, err)
	v, err := s2.Get(ctx, []byte("k"))
	require.NoError(t, err)
	assert.Equal(t, []byte("v"), v)
}
