package partition

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name     string
		hashBits int
		maxError int
		count    int
		bits     int
		keyLen   int
	}{
		{"8 bits k=2", 8, 2, 2, 4, 4},
		{"16 bits k=3", 16, 3, 3, 6, 4},
		{"64 bits k=6", 64, 6, 4, 16, 5},
		{"64 bits k=7", 64, 7, 5, 13, 5},
		{"256 bits k=10", 256, 10, 6, 43, 9},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := New(tt.hashBits, tt.maxError)
			assert.Equal(t, tt.count, p.Count)
			assert.Equal(t, tt.bits, p.Bits)
			assert.Equal(t, tt.keyLen, p.KeyLen())
			assert.Equal(t, (tt.hashBits+7)/8, p.HashBytes)
		})
	}
}

func TestSize(t *testing.T) {
	// 16 bits over 3 partitions of 6: the last one holds only 4.
	p := New(16, 3)
	assert.Equal(t, 6, p.Size(0))
	assert.Equal(t, 6, p.Size(1))
	assert.Equal(t, 4, p.Size(2))

	// 64 bits over 4 partitions of 16: all full.
	p = New(64, 6)
	for i := 0; i < p.Count; i++ {
		assert.Equal(t, 16, p.Size(i))
	}
}

func TestSizeTotalsHashBits(t *testing.T) {
	for _, hashBits := range []int{8, 16, 64, 128, 256} {
		for _, maxError := range []int{1, 2, 3, 6, 7, 10} {
			if maxError >= hashBits {
				continue
			}
			p := New(hashBits, maxError)
			total := 0
			for i := 0; i < p.Count; i++ {
				total += p.Size(i)
			}
			assert.Equal(t, hashBits, total, "B=%d k=%d", hashBits, maxError)
		}
	}
}

func TestKey(t *testing.T) {
	// B=8, k=2: two partitions of 4 bits each over a single byte.
	p := New(8, 2)

	key, psize := p.Key([]byte{0xA5}, 0)
	require.Equal(t, 4, psize)
	assert.Equal(t, []byte{'P', 0, 0xA0, 0x00}, key)

	// The second partition stays at its source bit positions: the low
	// nibble is not shifted up.
	key, psize = p.Key([]byte{0xA5}, 1)
	require.Equal(t, 4, psize)
	assert.Equal(t, []byte{'P', 1, 0x05, 0x00}, key)
}

func TestKeyByteCrossing(t *testing.T) {
	// B=16, k=3: partitions of 6 bits. Partition 1 covers bits 6-11,
	// crossing the byte boundary into the second payload byte.
	p := New(16, 3)

	key, psize := p.Key([]byte{0xFF, 0xFF}, 0)
	require.Equal(t, 6, psize)
	assert.Equal(t, []byte{'P', 0, 0xFC, 0x00}, key)

	key, psize = p.Key([]byte{0xFF, 0xFF}, 1)
	require.Equal(t, 6, psize)
	assert.Equal(t, []byte{'P', 1, 0x03, 0xF0}, key)

	key, psize = p.Key([]byte{0xFF, 0xFF}, 2)
	require.Equal(t, 4, psize)
	assert.Equal(t, []byte{'P', 2, 0x0F, 0x00}, key)
}

func TestKeyDisjointFromSettings(t *testing.T) {
	p := New(64, 6)
	for i := 0; i < p.Count; i++ {
		key, _ := p.Key([]byte{0xDE, 0xAD, 0xBE, 0xEF, 0xDE, 0xAD, 0xBE, 0xEF}, i)
		assert.NotEqual(t, byte('_'), key[0])
		assert.NotEqual(t, KeyHashBits, string(key[:3]))
		assert.NotEqual(t, KeyMaxError, string(key[:3]))
	}
}

// Flipping hash bit i*b+j and rebuilding the key must equal applying
// BitMask(i, j) to the original key.
func TestBitMaskMatchesKey(t *testing.T) {
	for _, tc := range []struct{ hashBits, maxError int }{
		{8, 2}, {16, 3}, {64, 6}, {64, 7}, {128, 10},
	} {
		p := New(tc.hashBits, tc.maxError)

		hash := make([]byte, p.HashBytes)
		for i := range hash {
			hash[i] = byte(0x5A ^ i)
		}

		for i := 0; i < p.Count; i++ {
			key, psize := p.Key(hash, i)
			for j := 0; j < psize; j++ {
				bit := i*p.Bits + j
				flipped := make([]byte, len(hash))
				copy(flipped, hash)
				flipped[bit/8] ^= 1 << (7 - bit%8)

				want, _ := p.Key(flipped, i)

				idx, mask := p.BitMask(i, j)
				got := make([]byte, len(key))
				copy(got, key)
				got[idx] ^= mask

				require.Equal(t, want, got, "B=%d k=%d partition=%d bit=%d", tc.hashBits, tc.maxError, i, j)
			}
		}
	}
}
