// Package mmap provides read-only memory-mapped file access.
//
// # Usage
//
//	m, err := mmap.Open("f0.ens")
//	if err != nil { ... }
//	defer m.Close()
//
//	data := m.Bytes()
//
// # Platform Support
//
//   - Unix (Linux, macOS, BSD): mmap(2) through golang.org/x/sys/unix
//   - Other platforms: the file is read into memory
//
// Callers must not use the result of Bytes after Close returns.
package mmap
