// Package persistence saves and restores named sets.
//
// A Manager writes each set in the flat integer stream format of package
// stream (values in increasing order, terminated by -1) to a
// blobstore.BlobStore, optionally compressed with LZ4 or Zstandard. The
// compression is detected from the blob content on load, so a store may hold
// a mix of formats.
//
//	mgr := persistence.NewManager(blobstore.NewLocalStore("./sets"),
//	    persistence.WithCompression(persistence.CompressionZSTD),
//	)
//	if err := mgr.Save(ctx, "primes", primes); err != nil {
//	    return err
//	}
//	restored, err := mgr.Load(ctx, "primes")
package persistence
