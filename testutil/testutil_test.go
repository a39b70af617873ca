package testutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeterminism(t *testing.T) {
	a := NewRNG(7)
	b := NewRNG(7)
	assert.Equal(t, a.Hashes(10, 8), b.Hashes(10, 8))
	assert.Equal(t, int64(7), a.Seed())
}

func TestDistinctHashes(t *testing.T) {
	rng := NewRNG(1)
	hashes := rng.DistinctHashes(100, 1)
	require.Len(t, hashes, 100)

	seen := make(map[string]struct{})
	for _, h := range hashes {
		require.Len(t, h, 1)
		_, dup := seen[string(h)]
		require.False(t, dup)
		seen[string(h)] = struct{}{}
	}
}

func TestFlip(t *testing.T) {
	rng := NewRNG(1)
	hash := rng.Hash(8)

	for bits := 0; bits <= 10; bits++ {
		flipped := rng.Flip(hash, bits)
		require.Len(t, flipped, len(hash))

		d := 0
		for i := range hash {
			x := hash[i] ^ flipped[i]
			for ; x != 0; x &= x - 1 {
				d++
			}
		}
		assert.Equal(t, bits, d)
	}
}
