// Package sequence implements the ordered bucket list behind a sparse set.
//
// Nodes are kept in an arena (a growable slice addressed by Handle) and
// linked through a next handle. Two slots are reserved:
//
//	handle 0: sentinel, rank = limit, marks the end of the sequence
//	handle 1: anchor, rank = -1, precedes the first real node
//
// A Cursor holds the handle of the current node and of its predecessor, so
// insertion before the cursor and removal at the cursor are O(1) relinks and
// merge loops never have to test for the end of the list explicitly: the
// sentinel rank compares greater than any real rank.
package sequence
