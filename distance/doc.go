// Package distance provides Hamming distance over fixed-width binary
// hashes.
//
// Distances are computed byte-wise over the XOR of the two hashes via
// a precomputed 256-entry popcount table, which keeps the kernel
// branch-free and allocation-free.
package distance
