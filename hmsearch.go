package hmsearch

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"sync"
	"time"

	"github.com/hupe1980/hmsearch/codec"
	"github.com/hupe1980/hmsearch/distance"
	"github.com/hupe1980/hmsearch/internal/partition"
	"github.com/hupe1980/hmsearch/kvstore"
)

// Result is a single lookup match.
type Result struct {
	// Hash is the stored hash, exactly as inserted.
	Hash []byte

	// Distance is the exact Hamming distance between the query and
	// Hash.
	Distance int
}

// Index is a handle to an open HmSearch database.
//
// The index itself holds no mutable state between operations aside
// from its immutable parameters; concurrent use follows the guarantees
// of the underlying store.
type Index struct {
	mu      sync.Mutex // guards store on Close
	store   kvstore.Store
	params  partition.Params
	logger  *Logger
	metrics MetricsCollector
	dedupe  bool
}

// Init creates a new index at path with the given hash bit-width and
// maximum error, writes the settings records, and closes the store
// again. It fails with ErrStorageExists if a store is already present
// at path.
//
// Parameters are immutable for the lifetime of the index.
func Init(ctx context.Context, path string, hashBits, maxError int, optFns ...Option) error {
	o := applyOptions(optFns)

	if hashBits <= 0 || hashBits%8 != 0 {
		return &ErrInvalidHashBits{Bits: hashBits}
	}
	if maxError <= 0 || maxError >= hashBits || maxError > 518 {
		return &ErrInvalidMaxError{MaxError: maxError, HashBits: hashBits}
	}

	store, err := o.opener(path, true)
	if err != nil {
		return err
	}
	defer store.Close()

	if err := store.Put(ctx, []byte(partition.KeyHashBits), []byte(strconv.Itoa(hashBits))); err != nil {
		return fmt.Errorf("hmsearch: write settings: %w", err)
	}
	if err := store.Put(ctx, []byte(partition.KeyMaxError), []byte(strconv.Itoa(maxError))); err != nil {
		return fmt.Errorf("hmsearch: write settings: %w", err)
	}

	o.logger.InfoContext(ctx, "index created",
		"path", path,
		"hash_bits", hashBits,
		"max_error", maxError,
	)

	return store.Close()
}

// Open opens an existing index at path. It fails with
// ErrStorageMissing if none exists and with ErrCorruptSettings if the
// settings records are absent or unusable.
func Open(ctx context.Context, path string, optFns ...Option) (*Index, error) {
	o := applyOptions(optFns)

	store, err := o.opener(path, false)
	if err != nil {
		return nil, err
	}

	hashBits, err := readSetting(ctx, store, partition.KeyHashBits)
	if err != nil {
		store.Close()
		return nil, err
	}
	maxError, err := readSetting(ctx, store, partition.KeyMaxError)
	if err != nil {
		store.Close()
		return nil, err
	}

	return &Index{
		store:   store,
		params:  partition.New(hashBits, maxError),
		logger:  o.logger,
		metrics: o.metrics,
		dedupe:  o.dedupe,
	}, nil
}

func readSetting(ctx context.Context, store kvstore.Store, key string) (int, error) {
	val, err := store.Get(ctx, []byte(key))
	if err != nil {
		if errors.Is(err, kvstore.ErrNotFound) {
			return 0, fmt.Errorf("%w: missing %s", ErrCorruptSettings, key)
		}
		return 0, fmt.Errorf("hmsearch: read settings: %w", err)
	}
	n, err := strconv.Atoi(string(val))
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("%w: bad %s value %q", ErrCorruptSettings, key, val)
	}
	return n, nil
}

// HashBits returns the configured hash bit-width.
func (ix *Index) HashBits() int { return ix.params.HashBits }

// MaxError returns the configured maximum Hamming distance.
func (ix *Index) MaxError() int { return ix.params.MaxError }

// Partitions returns the number of partitions each hash is indexed
// under.
func (ix *Index) Partitions() int { return ix.params.Count }

// Insert indexes a hash under all of its partition slots. The P slot
// appends are issued through a single write batch, so on backends with
// atomic batches an insert is all-or-nothing.
//
// Without WithDedupe, inserting the same hash twice appends a second
// copy to every slot; lookups still report it once.
func (ix *Index) Insert(ctx context.Context, hash []byte) error {
	start := time.Now()
	err := ix.insert(ctx, hash)
	ix.metrics.RecordInsert(time.Since(start), err)
	ix.logger.LogInsert(ctx, err)
	return err
}

func (ix *Index) insert(ctx context.Context, hash []byte) error {
	store, err := ix.handle()
	if err != nil {
		return err
	}
	if len(hash) != ix.params.HashBytes {
		return &ErrInvalidHashLength{Expected: ix.params.HashBytes, Actual: len(hash)}
	}

	batch := store.Batch()
	defer batch.Cancel()

	for i := 0; i < ix.params.Count; i++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		key, _ := ix.params.Key(hash, i)

		cur, err := store.Get(ctx, key)
		if err != nil && !errors.Is(err, kvstore.ErrNotFound) {
			return fmt.Errorf("hmsearch: read slot: %w", err)
		}
		if ix.dedupe && containsHash(cur, hash) {
			continue
		}

		val := make([]byte, 0, len(cur)+len(hash))
		val = append(val, cur...)
		val = append(val, hash...)
		if err := batch.Put(key, val); err != nil {
			return fmt.Errorf("hmsearch: write slot: %w", err)
		}
	}

	if err := batch.Flush(); err != nil {
		return fmt.Errorf("hmsearch: flush insert: %w", err)
	}
	return nil
}

func containsHash(slot, hash []byte) bool {
	for n := 0; n+len(hash) <= len(slot); n += len(hash) {
		if bytes.Equal(slot[n:n+len(hash)], hash) {
			return true
		}
	}
	return false
}

// candidate tracks per-hash slot hits during a lookup. first and
// second record the tier (0 exact, 1 one-variant) of the first two
// observations.
type candidate struct {
	matches int
	first   int
	second  int
}

// Lookup returns every stored hash within the index's maximum error of
// query, together with its exact Hamming distance. WithMaxDistance
// narrows the cap for a single call. Result order is unspecified;
// duplicated inserts of the same hash are reported once.
func (ix *Index) Lookup(ctx context.Context, query []byte, optFns ...LookupOption) ([]Result, error) {
	start := time.Now()
	results, candidates, err := ix.lookup(ctx, query, applyLookupOptions(optFns))
	ix.metrics.RecordLookup(candidates, len(results), time.Since(start), err)
	ix.logger.LogLookup(ctx, candidates, len(results), err)
	return results, err
}

func (ix *Index) lookup(ctx context.Context, query []byte, o lookupOptions) ([]Result, int, error) {
	store, err := ix.handle()
	if err != nil {
		return nil, 0, err
	}
	if len(query) != ix.params.HashBytes {
		return nil, 0, &ErrInvalidHashLength{Expected: ix.params.HashBytes, Actual: len(query)}
	}

	candidates := make(map[string]*candidate)

	for i := 0; i < ix.params.Count; i++ {
		if err := ctx.Err(); err != nil {
			return nil, 0, err
		}

		key, psize := ix.params.Key(query, i)

		// Exact slot first, then its one-bit variants.
		if err := ix.probe(ctx, store, key, 0, candidates); err != nil {
			return nil, 0, err
		}
		for j := 0; j < psize; j++ {
			idx, mask := ix.params.BitMask(i, j)
			key[idx] ^= mask
			if err := ix.probe(ctx, store, key, 1, candidates); err != nil {
				return nil, 0, err
			}
			key[idx] ^= mask
		}
	}

	var results []Result
	for hash, cand := range candidates {
		if !ix.validCandidate(cand) {
			continue
		}
		d := distance.Hamming(query, []byte(hash))
		if d > ix.params.MaxError {
			continue
		}
		if o.maxDistance >= 0 && d > o.maxDistance {
			continue
		}
		results = append(results, Result{Hash: []byte(hash), Distance: d})
	}

	return results, len(candidates), nil
}

// probe reads one slot and credits every member hash with a hit at the
// given tier.
func (ix *Index) probe(ctx context.Context, store kvstore.Store, key []byte, tier int, candidates map[string]*candidate) error {
	val, err := store.Get(ctx, key)
	if err != nil {
		if errors.Is(err, kvstore.ErrNotFound) {
			return nil
		}
		return fmt.Errorf("hmsearch: read slot: %w", err)
	}

	for n := 0; n+ix.params.HashBytes <= len(val); n += ix.params.HashBytes {
		hash := string(val[n : n+ix.params.HashBytes])
		cand := candidates[hash]
		if cand == nil {
			cand = &candidate{}
			candidates[hash] = cand
		}
		cand.matches++
		switch cand.matches {
		case 1:
			cand.first = tier
		case 2:
			cand.second = tier
		}
	}
	return nil
}

// validCandidate applies the HmSearch validity rule: a true match
// within distance k must either hit an exact slot somewhere or hit
// enough one-variant slots that the pigeonhole bound is satisfiable.
func (ix *Index) validCandidate(c *candidate) bool {
	if ix.params.MaxError&1 == 1 {
		if c.matches < 3 {
			if c.matches == 1 || (c.first == 1 && c.second == 1) {
				return false
			}
		}
	} else {
		if c.matches < 2 && c.first == 1 {
			return false
		}
	}
	return true
}

// Dump writes a human-readable walk of every partition slot to w.
// Intended for debugging.
func (ix *Index) Dump(ctx context.Context, w io.Writer) error {
	store, err := ix.handle()
	if err != nil {
		return err
	}

	for entry, err := range store.Scan(ctx) {
		if err != nil {
			return fmt.Errorf("hmsearch: scan: %w", err)
		}
		if len(entry.Key) < 2 || entry.Key[0] != partition.KeyPrefix {
			continue
		}

		if _, err := fmt.Fprintf(w, "Partition %d %s\n", entry.Key[1], codec.FormatHex(entry.Key[2:])); err != nil {
			return err
		}
		for n := 0; n+ix.params.HashBytes <= len(entry.Value); n += ix.params.HashBytes {
			if _, err := fmt.Fprintf(w, "    %s\n", codec.FormatHex(entry.Value[n:n+ix.params.HashBytes])); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintln(w); err != nil {
			return err
		}
	}
	return nil
}

// Close releases the underlying store. Close is idempotent.
func (ix *Index) Close() error {
	ix.mu.Lock()
	defer ix.mu.Unlock()
	if ix.store == nil {
		return nil
	}
	store := ix.store
	ix.store = nil
	return store.Close()
}

// handle returns the open store or ErrClosed.
func (ix *Index) handle() (kvstore.Store, error) {
	ix.mu.Lock()
	defer ix.mu.Unlock()
	if ix.store == nil {
		return nil, ErrClosed
	}
	return ix.store, nil
}
