package blobstore

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func stores(t *testing.T) map[string]BlobStore {
	t.Helper()
	return map[string]BlobStore{
		"local":     NewLocalStore(t.TempDir()),
		"memory":    NewMemoryStore(),
		"throttled": NewThrottled(NewMemoryStore(), ThrottleConfig{RequestsPerSec: 1e6, Burst: 100, MaxInFlight: 4}),
	}
}

func TestBlobStore_PutOpenList(t *testing.T) {
	ctx := context.Background()
	for name, s := range stores(t) {
		t.Run(name, func(t *testing.T) {
			require.NoError(t, s.Put(ctx, "set-b", []byte("1 2 -1\n")))
			require.NoError(t, s.Put(ctx, "set-a", []byte("-1\n")))
			require.NoError(t, s.Put(ctx, "other", []byte("x")))

			data, err := ReadAll(ctx, s, "set-b")
			require.NoError(t, err)
			assert.Equal(t, "1 2 -1\n", string(data))

			names, err := s.List(ctx, "set-")
			require.NoError(t, err)
			assert.Equal(t, []string{"set-a", "set-b"}, names)

			all, err := s.List(ctx, "")
			require.NoError(t, err)
			assert.Len(t, all, 3)
		})
	}
}

func TestBlobStore_Overwrite(t *testing.T) {
	ctx := context.Background()
	for name, s := range stores(t) {
		t.Run(name, func(t *testing.T) {
			require.NoError(t, s.Put(ctx, "s", []byte("first version")))
			require.NoError(t, s.Put(ctx, "s", []byte("v2")))

			data, err := ReadAll(ctx, s, "s")
			require.NoError(t, err)
			assert.Equal(t, "v2", string(data))
		})
	}
}

func TestBlobStore_MissingAndDelete(t *testing.T) {
	ctx := context.Background()
	for name, s := range stores(t) {
		t.Run(name, func(t *testing.T) {
			_, err := s.Open(ctx, "missing")
			assert.ErrorIs(t, err, ErrNotFound)

			require.NoError(t, s.Put(ctx, "gone", []byte("1")))
			require.NoError(t, s.Delete(ctx, "gone"))
			require.NoError(t, s.Delete(ctx, "gone"))

			_, err = s.Open(ctx, "gone")
			assert.ErrorIs(t, err, ErrNotFound)
		})
	}
}

func TestBlobStore_EmptyBlob(t *testing.T) {
	ctx := context.Background()
	for name, s := range stores(t) {
		t.Run(name, func(t *testing.T) {
			require.NoError(t, s.Put(ctx, "empty", nil))
			data, err := ReadAll(ctx, s, "empty")
			require.NoError(t, err)
			assert.Empty(t, data)
		})
	}
}

func TestBlobStore_CreateCloseAbort(t *testing.T) {
	ctx := context.Background()
	for name, s := range stores(t) {
		t.Run(name, func(t *testing.T) {
			w, err := s.Create(ctx, "streamed")
			require.NoError(t, err)
			_, err = w.Write([]byte("10 20 "))
			require.NoError(t, err)
			_, err = w.Write([]byte("-1\n"))
			require.NoError(t, err)

			// Not visible before Close.
			_, err = s.Open(ctx, "streamed")
			assert.ErrorIs(t, err, ErrNotFound)

			require.NoError(t, w.Close())
			assert.ErrorIs(t, w.Close(), os.ErrClosed)

			data, err := ReadAll(ctx, s, "streamed")
			require.NoError(t, err)
			assert.Equal(t, "10 20 -1\n", string(data))

			w, err = s.Create(ctx, "aborted")
			require.NoError(t, err)
			_, err = w.Write([]byte("junk"))
			require.NoError(t, err)
			require.NoError(t, w.Abort())

			_, err = s.Open(ctx, "aborted")
			assert.ErrorIs(t, err, ErrNotFound)

			names, err := s.List(ctx, "")
			require.NoError(t, err)
			assert.Equal(t, []string{"streamed"}, names)
		})
	}
}

func TestBlobStore_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	for name, s := range stores(t) {
		t.Run(name, func(t *testing.T) {
			assert.ErrorIs(t, s.Put(ctx, "x", []byte("1")), context.Canceled)
			_, err := s.Open(ctx, "x")
			assert.ErrorIs(t, err, context.Canceled)
			_, err = s.List(ctx, "")
			assert.ErrorIs(t, err, context.Canceled)
		})
	}
}

func TestBlob_ReadAt(t *testing.T) {
	ctx := context.Background()
	for name, s := range stores(t) {
		t.Run(name, func(t *testing.T) {
			require.NoError(t, s.Put(ctx, "b", []byte("0123456789")))
			b, err := s.Open(ctx, "b")
			require.NoError(t, err)
			defer b.Close()

			assert.Equal(t, int64(10), b.Size())

			buf := make([]byte, 4)
			n, err := b.ReadAt(ctx, buf, 3)
			require.NoError(t, err)
			assert.Equal(t, "3456", string(buf[:n]))

			n, err = b.ReadAt(ctx, buf, 8)
			assert.Equal(t, 2, n)
			assert.ErrorIs(t, err, io.EOF)
		})
	}
}

func TestLocalStore_ListSkipsTempFiles(t *testing.T) {
	ctx := context.Background()
	s := NewLocalStore(t.TempDir())

	w, err := s.Create(ctx, "pending")
	require.NoError(t, err)
	defer w.Abort()

	require.NoError(t, s.Put(ctx, "done", []byte("1")))

	names, err := s.List(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, []string{"done"}, names)
}

func TestLocalStore_ListMissingRoot(t *testing.T) {
	s := NewLocalStore(filepath.Join(t.TempDir(), "not-yet"))
	names, err := s.List(context.Background(), "")
	require.NoError(t, err)
	assert.Empty(t, names)

	require.NoError(t, s.Put(context.Background(), "a", []byte("1")))
	_, err = os.Stat(filepath.Join(s.Root(), "a"))
	assert.NoError(t, err)
}

func TestThrottled_MaxInFlight(t *testing.T) {
	inner := &slowStore{MemoryStore: NewMemoryStore(), delay: 5 * time.Millisecond}
	s := NewThrottled(inner, ThrottleConfig{MaxInFlight: 2})
	assert.Same(t, inner, s.Unwrap())

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.NoError(t, s.Put(context.Background(), "k", []byte("v")))
		}()
	}
	wg.Wait()

	assert.LessOrEqual(t, inner.peak.Load(), int64(2))
}

func TestThrottled_RateLimitHonorsContext(t *testing.T) {
	s := NewThrottled(NewMemoryStore(), ThrottleConfig{RequestsPerSec: 0.001, Burst: 1})
	ctx := context.Background()
	require.NoError(t, s.Put(ctx, "a", []byte("1")))

	ctx, cancel := context.WithTimeout(ctx, 10*time.Millisecond)
	defer cancel()
	assert.Error(t, s.Put(ctx, "b", []byte("2")))
}

type slowStore struct {
	*MemoryStore
	delay    time.Duration
	inFlight atomic.Int64
	peak     atomic.Int64
}

func (s *slowStore) Put(ctx context.Context, name string, data []byte) error {
	n := s.inFlight.Add(1)
	defer s.inFlight.Add(-1)
	for {
		p := s.peak.Load()
		if n <= p || s.peak.CompareAndSwap(p, n) {
			break
		}
	}
	time.Sleep(s.delay)
	return s.MemoryStore.Put(ctx, name, data)
}
