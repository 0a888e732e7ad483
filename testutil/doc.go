// Package testutil provides testing utilities for sparseset.
//
// This package is intended for use in tests and benchmarks only.
// It provides a seeded random source and generators for value fixtures
// with a controlled number of occupied buckets.
//
// # Random Values
//
//	rng := testutil.NewRNG(seed)
//	vals := rng.Values(500, 32767)          // uniform in [0, 32767]
//	vals = rng.BucketValues(8, 20, 256)     // 20 values in each of 8 random buckets
package testutil
