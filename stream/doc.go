// Package stream reads and writes sets in the flat integer format:
// whitespace separated decimal values terminated by -1.
//
//	100   300   32767
//	-1
//
// Readers drop values outside [0, sparseset.MaxValue] without error and
// never modify a set when the input is malformed.
package stream
