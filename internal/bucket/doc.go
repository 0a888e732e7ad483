// Package bucket provides the fixed-capacity dense bitset stored in each node
// of a sparse set.
//
// A bucket covers Size consecutive values. It is backed by
// github.com/bits-and-blooms/bitset, sized once at creation and never grown.
package bucket
