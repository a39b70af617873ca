// Package codec converts hashes between their raw byte form and the
// lowercase hex form used at the human boundary (CLI, dumps, logs).
//
// The hex form is two lowercase hex characters per byte, big-endian
// within each byte, so the textual bit order matches the index's
// left-to-right bit numbering.
package codec

import "encoding/hex"

// FormatHex renders a raw hash as lowercase hex.
func FormatHex(hash []byte) string {
	return hex.EncodeToString(hash)
}

// ParseHex decodes a hex string into a raw hash. Malformed input
// (odd length or non-hex characters) yields nil rather than an error,
// which callers treat as the empty hash.
func ParseHex(s string) []byte {
	h, err := hex.DecodeString(s)
	if err != nil {
		return nil
	}
	return h
}
