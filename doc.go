// Package hmsearch provides a persistent index for approximate
// matching of fixed-width binary hashes under Hamming distance.
//
// Given a corpus of hashes of identical bit-width, the index answers
// queries of the form "return every stored hash within Hamming
// distance k of this one" in sublinear time. The typical use case is
// near-duplicate detection over perceptual or content hashes.
//
// The implementation follows the HmSearch algorithm: every hash is
// split into partitions and indexed once per partition; at query time
// the exact partition slot and all one-bit-flipped neighbor slots are
// probed, and a pigeonhole validity rule eliminates spurious
// candidates before the final Hamming check.
//
// # Quick Start
//
//	ctx := context.Background()
//
//	// Create an index for 64-bit hashes matching up to distance 6.
//	if err := hmsearch.Init(ctx, "./hashes.db", 64, 6); err != nil {
//	    log.Fatal(err)
//	}
//
//	ix, err := hmsearch.Open(ctx, "./hashes.db")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer ix.Close()
//
//	_ = ix.Insert(ctx, codec.ParseHex("8f3b2a90d1c45e67"))
//
//	results, _ := ix.Lookup(ctx, codec.ParseHex("8f3b2a90d1c45e66"))
//	for _, r := range results {
//	    fmt.Println(codec.FormatHex(r.Hash), r.Distance)
//	}
//
// # Parameters
//
// The hash bit-width B (a multiple of 8) and the maximum error k
// (1 <= k < B, k <= 518) are fixed at Init time and immutable for the
// lifetime of the index. Lookups may narrow the distance further with
// WithMaxDistance.
//
// # Storage
//
// The index persists into an ordered key-value store, BadgerDB by
// default. The kvstore package defines the store contract; an
// in-memory backend is available for tests via WithStore.
package hmsearch
