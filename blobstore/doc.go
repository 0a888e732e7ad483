// Package blobstore provides the storage abstraction used to save named sets.
//
// BlobStore reads and writes whole named blobs. Implementations must be safe
// for concurrent use.
//
// # Built-in Implementations
//
//   - LocalStore: a local directory, reads are memory mapped, writes are atomic
//   - MemoryStore: in-process map, used by tests
//   - Throttled: wraps another store with a request rate and concurrency limit
//   - s3.Store: Amazon S3
//   - minio.Store: MinIO or any S3-compatible server
//
// # Custom Implementations
//
// Implement the BlobStore interface to support custom storage backends:
//
//	type BlobStore interface {
//	    Open(ctx, name) (Blob, error)
//	    Create(ctx, name) (WritableBlob, error)
//	    Put(ctx, name, data) error
//	    Delete(ctx, name) error
//	    List(ctx, prefix) ([]string, error)
//	}
//
// Missing blobs must be reported with an error matching ErrNotFound.
package blobstore
