// Command sparseset manipulates named integer sets kept in a local directory,
// Amazon S3 or MinIO.
//
// Usage:
//
//	sparseset --dir ./sets add primes 2 3 5 7 11
//	seq 0 3 300 | sed '$a-1' | sparseset --dir ./sets add threes
//	sparseset --dir ./sets intersect primes threes
//	sparseset --dir ./sets show primes
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, "sparseset:", err)
		stop()
		os.Exit(1)
	}
}
