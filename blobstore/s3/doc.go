// Package s3 provides an S3 implementation of the blobstore.BlobStore interface.
//
// # Usage
//
//	store, err := s3.New(ctx, "my-bucket",
//	    s3.WithPrefix("sets/"),
//	    s3.WithRegion("eu-central-1"),
//	)
//
//	mgr := persistence.NewManager(store)
//	err = mgr.Save(ctx, "primes", set)
//
// # Features
//
//   - Range reads
//   - Streaming uploads through the SDK upload manager
//   - CRC32C checksums on Put
//   - Automatic pagination for listing
//   - Configurable prefix for multi-tenant isolation
package s3
