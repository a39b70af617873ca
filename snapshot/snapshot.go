// Package snapshot serializes an index's key space into a portable,
// compressed, checksummed stream and replays such streams into a
// fresh store. It is the mechanism behind "hmsearch export" and
// "hmsearch import".
//
// Format:
//
//	Byte 0-7:  magic "HMSNAP01"
//	Byte 8:    compression type
//	Bytes 9-:  compressed frame stream
//
// The frame stream is a sequence of [uvarint keyLen][key]
// [uvarint valLen][val] records in store key order, terminated by a
// zero keyLen, followed by the little-endian xxhash64 of all preceding
// uncompressed frame bytes.
package snapshot

import (
	"bufio"
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"github.com/cespare/xxhash/v2"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"

	"github.com/hupe1980/hmsearch/kvstore"
)

// Compression defines the compression algorithm used for the frame
// stream.
type Compression uint8

const (
	// CompressionNone stores the frame stream uncompressed.
	CompressionNone Compression = 0
	// CompressionLZ4 uses LZ4 stream compression (fast).
	CompressionLZ4 Compression = 1
	// CompressionZSTD uses ZSTD stream compression (better ratio).
	CompressionZSTD Compression = 2
)

// String returns the textual name used by the CLI flag.
func (c Compression) String() string {
	switch c {
	case CompressionNone:
		return "none"
	case CompressionLZ4:
		return "lz4"
	case CompressionZSTD:
		return "zstd"
	default:
		return fmt.Sprintf("unknown(%d)", uint8(c))
	}
}

// ParseCompression parses a compression name as used by the CLI.
func ParseCompression(s string) (Compression, error) {
	switch s {
	case "none":
		return CompressionNone, nil
	case "lz4":
		return CompressionLZ4, nil
	case "zstd":
		return CompressionZSTD, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownCompression, s)
	}
}

const magic = "HMSNAP01"

// Sentinel errors.
var (
	// ErrBadMagic is returned when the input does not start with the
	// snapshot magic.
	ErrBadMagic = errors.New("snapshot: bad magic")

	// ErrChecksum is returned when the frame stream does not match
	// its trailing checksum.
	ErrChecksum = errors.New("snapshot: checksum mismatch")

	// ErrUnknownCompression is returned for unsupported compression
	// types.
	ErrUnknownCompression = errors.New("snapshot: unknown compression")
)

// Options configures Write.
type Options struct {
	Compression Compression
}

// Write streams every entry of src to w in key order. It returns the
// number of records written.
func Write(ctx context.Context, w io.Writer, src kvstore.Store, optFns ...func(*Options)) (int, error) {
	opts := Options{Compression: CompressionZSTD}
	for _, fn := range optFns {
		if fn != nil {
			fn(&opts)
		}
	}

	if _, err := w.Write([]byte(magic)); err != nil {
		return 0, err
	}
	if _, err := w.Write([]byte{byte(opts.Compression)}); err != nil {
		return 0, err
	}

	cw, err := newCompressWriter(w, opts.Compression)
	if err != nil {
		return 0, err
	}

	sum := xxhash.New()
	mw := io.MultiWriter(cw, sum)

	records := 0
	var scratch [binary.MaxVarintLen64]byte
	for entry, err := range src.Scan(ctx) {
		if err != nil {
			cw.Close()
			return records, fmt.Errorf("snapshot: scan: %w", err)
		}
		if err := writeFrame(mw, scratch[:], entry.Key, entry.Value); err != nil {
			cw.Close()
			return records, err
		}
		records++
	}

	// Terminator, then the checksum of everything before it.
	n := binary.PutUvarint(scratch[:], 0)
	if _, err := mw.Write(scratch[:n]); err != nil {
		cw.Close()
		return records, err
	}
	var trailer [8]byte
	binary.LittleEndian.PutUint64(trailer[:], sum.Sum64())
	if _, err := cw.Write(trailer[:]); err != nil {
		cw.Close()
		return records, err
	}

	return records, cw.Close()
}

func writeFrame(w io.Writer, scratch, key, val []byte) error {
	n := binary.PutUvarint(scratch, uint64(len(key)))
	if _, err := w.Write(scratch[:n]); err != nil {
		return err
	}
	if _, err := w.Write(key); err != nil {
		return err
	}
	n = binary.PutUvarint(scratch, uint64(len(val)))
	if _, err := w.Write(scratch[:n]); err != nil {
		return err
	}
	_, err := w.Write(val)
	return err
}

// Read verifies and replays a snapshot stream into dst through a
// single write batch. It returns the number of records replayed.
func Read(ctx context.Context, r io.Reader, dst kvstore.Store) (int, error) {
	header := make([]byte, len(magic)+1)
	if _, err := io.ReadFull(r, header); err != nil {
		return 0, fmt.Errorf("%w: %w", ErrBadMagic, err)
	}
	if string(header[:len(magic)]) != magic {
		return 0, ErrBadMagic
	}

	cr, err := newDecompressReader(r, Compression(header[len(magic)]))
	if err != nil {
		return 0, err
	}
	defer cr.Close()

	sum := xxhash.New()
	br := bufio.NewReader(cr)

	batch := dst.Batch()
	defer batch.Cancel()

	records := 0
	for {
		if err := ctx.Err(); err != nil {
			return 0, err
		}

		key, err := readChunk(br, sum)
		if err != nil {
			return 0, err
		}
		if key == nil {
			break
		}
		val, err := readChunk(br, sum)
		if err != nil {
			return 0, err
		}
		if val == nil {
			val = []byte{}
		}

		if err := batch.Put(key, val); err != nil {
			return 0, fmt.Errorf("snapshot: replay: %w", err)
		}
		records++
	}

	var trailer [8]byte
	if _, err := io.ReadFull(br, trailer[:]); err != nil {
		return 0, fmt.Errorf("%w: missing trailer: %w", ErrChecksum, err)
	}
	if binary.LittleEndian.Uint64(trailer[:]) != sum.Sum64() {
		return 0, ErrChecksum
	}

	if err := batch.Flush(); err != nil {
		return 0, fmt.Errorf("snapshot: flush: %w", err)
	}
	return records, nil
}

// readChunk reads one length-prefixed chunk, feeding the consumed
// bytes into sum. A zero length yields (nil, nil).
func readChunk(br *bufio.Reader, sum *xxhash.Digest) ([]byte, error) {
	n, err := binary.ReadUvarint(br)
	if err != nil {
		return nil, fmt.Errorf("snapshot: truncated stream: %w", err)
	}
	var scratch [binary.MaxVarintLen64]byte
	sum.Write(scratch[:binary.PutUvarint(scratch[:], n)])

	if n == 0 {
		return nil, nil
	}
	buf := make([]byte, n)
	if _, err := io.ReadFull(br, buf); err != nil {
		return nil, fmt.Errorf("snapshot: truncated stream: %w", err)
	}
	sum.Write(buf)
	return buf, nil
}

func newCompressWriter(w io.Writer, c Compression) (io.WriteCloser, error) {
	switch c {
	case CompressionNone:
		return nopWriteCloser{w}, nil
	case CompressionLZ4:
		return lz4.NewWriter(w), nil
	case CompressionZSTD:
		return zstd.NewWriter(w, zstd.WithEncoderLevel(zstd.SpeedDefault))
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnknownCompression, c)
	}
}

func newDecompressReader(r io.Reader, c Compression) (io.ReadCloser, error) {
	switch c {
	case CompressionNone:
		return io.NopCloser(r), nil
	case CompressionLZ4:
		return io.NopCloser(lz4.NewReader(r)), nil
	case CompressionZSTD:
		zr, err := zstd.NewReader(r)
		if err != nil {
			return nil, err
		}
		return zr.IOReadCloser(), nil
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnknownCompression, c)
	}
}

type nopWriteCloser struct {
	io.Writer
}

func (nopWriteCloser) Close() error { return nil }
