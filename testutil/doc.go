// Package testutil provides deterministic random hash generation for
// tests and benchmarks.
package testutil
