package codec

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/hupe1980/hmsearch/testutil"
)

func TestFormatHex(t *testing.T) {
	assert.Equal(t, "a5", FormatHex([]byte{0xA5}))
	assert.Equal(t, "deadbeef", FormatHex([]byte{0xDE, 0xAD, 0xBE, 0xEF}))
	assert.Equal(t, "", FormatHex(nil))
}

func TestParseHex(t *testing.T) {
	assert.Equal(t, []byte{0xA5}, ParseHex("a5"))
	assert.Equal(t, []byte{0xDE, 0xAD, 0xBE, 0xEF}, ParseHex("deadbeef"))

	// Malformed input yields the empty hash.
	assert.Nil(t, ParseHex("a"))
	assert.Nil(t, ParseHex("zz"))
	assert.Nil(t, ParseHex("a5x"))
}

func TestRoundTrip(t *testing.T) {
	rng := testutil.NewRNG(42)
	for _, size := range []int{1, 8, 16, 32} {
		for i := 0; i < 20; i++ {
			h := rng.Hash(size)
			assert.Equal(t, h, ParseHex(FormatHex(h)))
		}
	}
}
