package blobstore

import (
	"context"

	"golang.org/x/sync/semaphore"
	"golang.org/x/time/rate"
)

// ThrottleConfig holds request limits for a Throttled store.
type ThrottleConfig struct {
	// RequestsPerSec is the sustained request rate. If 0, unlimited.
	RequestsPerSec float64

	// Burst is the number of requests allowed at once above the rate.
	// If 0, defaults to 1.
	Burst int

	// MaxInFlight bounds concurrent requests. If 0, unlimited.
	MaxInFlight int64
}

// Throttled wraps a BlobStore and limits the request rate and the number of
// concurrent requests against it. Remote backends bill and throttle per
// request, so every call counts as one request regardless of its size.
type Throttled struct {
	store   BlobStore
	limiter *rate.Limiter       // nil if unlimited
	sem     *semaphore.Weighted // nil if unlimited
}

// NewThrottled wraps store with the given limits.
func NewThrottled(store BlobStore, cfg ThrottleConfig) *Throttled {
	t := &Throttled{store: store}
	if cfg.RequestsPerSec > 0 {
		if cfg.Burst <= 0 {
			cfg.Burst = 1
		}
		t.limiter = rate.NewLimiter(rate.Limit(cfg.RequestsPerSec), cfg.Burst)
	}
	if cfg.MaxInFlight > 0 {
		t.sem = semaphore.NewWeighted(cfg.MaxInFlight)
	}
	return t
}

// Unwrap returns the wrapped store.
func (t *Throttled) Unwrap() BlobStore {
	return t.store
}

func (t *Throttled) acquire(ctx context.Context) (func(), error) {
	if t.limiter != nil {
		if err := t.limiter.Wait(ctx); err != nil {
			return nil, err
		}
	}
	if t.sem == nil {
		return func() {}, nil
	}
	if err := t.sem.Acquire(ctx, 1); err != nil {
		return nil, err
	}
	return func() { t.sem.Release(1) }, nil
}

// Open opens a blob for reading.
func (t *Throttled) Open(ctx context.Context, name string) (Blob, error) {
	release, err := t.acquire(ctx)
	if err != nil {
		return nil, err
	}
	defer release()
	return t.store.Open(ctx, name)
}

// Create creates a blob for streaming writes. Only the call itself is
// throttled, writes to the returned blob are not.
func (t *Throttled) Create(ctx context.Context, name string) (WritableBlob, error) {
	release, err := t.acquire(ctx)
	if err != nil {
		return nil, err
	}
	defer release()
	return t.store.Create(ctx, name)
}

// Put writes a blob atomically.
func (t *Throttled) Put(ctx context.Context, name string, data []byte) error {
	release, err := t.acquire(ctx)
	if err != nil {
		return err
	}
	defer release()
	return t.store.Put(ctx, name, data)
}

// Delete removes a blob.
func (t *Throttled) Delete(ctx context.Context, name string) error {
	release, err := t.acquire(ctx)
	if err != nil {
		return err
	}
	defer release()
	return t.store.Delete(ctx, name)
}

// List returns all blobs matching the prefix.
func (t *Throttled) List(ctx context.Context, prefix string) ([]string, error) {
	release, err := t.acquire(ctx)
	if err != nil {
		return nil, err
	}
	defer release()
	return t.store.List(ctx, prefix)
}

var _ BlobStore = (*Throttled)(nil)
