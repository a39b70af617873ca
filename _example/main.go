package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/hupe1980/hmsearch"
	"github.com/hupe1980/hmsearch/codec"
	"github.com/hupe1980/hmsearch/testutil"
)

func main() {
	ctx := context.Background()

	dir, err := os.MkdirTemp("", "hmsearch-example")
	if err != nil {
		log.Fatal(err)
	}
	defer os.RemoveAll(dir)
	path := filepath.Join(dir, "hashes.db")

	// 64-bit hashes, matches up to Hamming distance 6.
	if err := hmsearch.Init(ctx, path, 64, 6); err != nil {
		log.Fatal(err)
	}

	metrics := &hmsearch.BasicMetricsCollector{}
	ix, err := hmsearch.Open(ctx, path, hmsearch.WithMetricsCollector(metrics))
	if err != nil {
		log.Fatal(err)
	}
	defer ix.Close()

	rng := testutil.NewRNG(4711)
	hashes := rng.DistinctHashes(10000, 8)

	start := time.Now()
	for _, h := range hashes {
		if err := ix.Insert(ctx, h); err != nil {
			log.Fatal(err)
		}
	}
	fmt.Printf("Inserted %d hashes in %.3fs\n\n", len(hashes), time.Since(start).Seconds())

	// Query with a hash three bit-flips away from a stored one.
	query := rng.Flip(hashes[0], 3)

	start = time.Now()
	results, err := ix.Lookup(ctx, query)
	if err != nil {
		log.Fatal(err)
	}

	fmt.Printf("Query: %s\n", codec.FormatHex(query))
	for _, r := range results {
		fmt.Printf("  Match: %s, Distance: %d\n", codec.FormatHex(r.Hash), r.Distance)
	}
	fmt.Printf("Seconds: %.8f\n\n", time.Since(start).Seconds())

	fmt.Printf("inserts=%d lookups=%d candidates=%d results=%d\n",
		metrics.InsertCount.Load(),
		metrics.LookupCount.Load(),
		metrics.LookupCandidates.Load(),
		metrics.LookupResults.Load())
}
