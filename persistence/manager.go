package persistence

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"
	"sync/atomic"
	"time"

	"github.com/hupe1980/sparseset"
	"github.com/hupe1980/sparseset/blobstore"
	"github.com/hupe1980/sparseset/stream"
	"golang.org/x/sync/errgroup"
)

// Extension is appended to set names to form blob names.
const Extension = ".set"

// Manager saves and restores named sets in a blob store.
//
// The Manager is safe for concurrent use. The sets passed to it are not: a
// set must not be modified while it is being saved.
type Manager struct {
	store blobstore.BlobStore
	opts  options
}

// NewManager creates a Manager on top of store.
func NewManager(store blobstore.BlobStore, optFns ...Option) *Manager {
	return &Manager{
		store: store,
		opts:  applyOptions(optFns),
	}
}

// Store returns the underlying blob store.
func (m *Manager) Store() blobstore.BlobStore {
	return m.store
}

// Compression returns the encoding used for new saves.
func (m *Manager) Compression() Compression {
	return m.opts.compression
}

func blobName(name string) string {
	return name + Extension
}

// Save writes s under name, replacing any previous content.
func (m *Manager) Save(ctx context.Context, name string, s *sparseset.Set) error {
	start := time.Now()
	size, err := m.save(ctx, name, s)
	m.opts.metricsCollector.RecordSave(size, time.Since(start), err)
	m.opts.logger.LogSave(ctx, name, s.Len(), int(size), err)
	return err
}

func (m *Manager) save(ctx context.Context, name string, s *sparseset.Set) (int64, error) {
	if err := validateName(name); err != nil {
		return 0, err
	}

	w, err := m.store.Create(ctx, blobName(name))
	if err != nil {
		return 0, fmt.Errorf("persistence: save %q: %w", name, err)
	}

	cw := &countingWriter{w: w}
	if err := encode(cw, s, m.opts.compression); err != nil {
		_ = w.Abort()
		return 0, fmt.Errorf("persistence: save %q: %w", name, err)
	}
	if err := w.Close(); err != nil {
		return 0, fmt.Errorf("persistence: save %q: %w", name, err)
	}
	return cw.n, nil
}

// Load reads the set saved under name.
//
// A missing set yields an error matching blobstore.ErrNotFound, undecodable
// content an *ErrCorrupt.
func (m *Manager) Load(ctx context.Context, name string) (*sparseset.Set, error) {
	start := time.Now()
	s, size, err := m.load(ctx, name)
	m.opts.metricsCollector.RecordLoad(size, time.Since(start), err)
	values := 0
	if s != nil {
		values = s.Len()
	}
	m.opts.logger.LogLoad(ctx, name, values, err)
	return s, err
}

func (m *Manager) load(ctx context.Context, name string) (*sparseset.Set, int64, error) {
	if err := validateName(name); err != nil {
		return nil, 0, err
	}

	data, err := blobstore.ReadAll(ctx, m.store, blobName(name))
	if err != nil {
		return nil, 0, fmt.Errorf("persistence: load %q: %w", name, err)
	}

	s, err := decode(data)
	if err != nil {
		return nil, int64(len(data)), &ErrCorrupt{Name: name, cause: err}
	}
	return s, int64(len(data)), nil
}

// Restore replaces the content of dst with the set saved under name. On error
// dst is left unchanged.
func (m *Manager) Restore(ctx context.Context, name string, dst *sparseset.Set) error {
	s, err := m.Load(ctx, name)
	if err != nil {
		return err
	}
	dst.Clear()
	dst.Union(s)
	return nil
}

// Delete removes the set saved under name. Deleting a missing set is not an
// error.
func (m *Manager) Delete(ctx context.Context, name string) error {
	start := time.Now()
	err := validateName(name)
	if err == nil {
		err = m.store.Delete(ctx, blobName(name))
	}
	m.opts.metricsCollector.RecordDelete(time.Since(start), err)
	if err != nil {
		return fmt.Errorf("persistence: delete %q: %w", name, err)
	}
	return nil
}

// Exists reports whether a set is saved under name.
func (m *Manager) Exists(ctx context.Context, name string) (bool, error) {
	_, err := m.StoredSize(ctx, name)
	if errors.Is(err, blobstore.ErrNotFound) {
		return false, nil
	}
	return err == nil, err
}

// StoredSize returns the number of bytes stored for the set saved under name.
func (m *Manager) StoredSize(ctx context.Context, name string) (int64, error) {
	if err := validateName(name); err != nil {
		return 0, err
	}
	b, err := m.store.Open(ctx, blobName(name))
	if err != nil {
		return 0, fmt.Errorf("persistence: stat %q: %w", name, err)
	}
	defer func() { _ = b.Close() }()
	return b.Size(), nil
}

// List returns the sorted names of all saved sets.
func (m *Manager) List(ctx context.Context) ([]string, error) {
	blobs, err := m.store.List(ctx, "")
	if err != nil {
		return nil, fmt.Errorf("persistence: list: %w", err)
	}
	var names []string
	for _, b := range blobs {
		name, ok := strings.CutSuffix(b, Extension)
		if !ok || validateName(name) != nil {
			continue
		}
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

// SaveMany saves every set of the map. The sets are encoded one after the
// other, then uploaded with at most WithConcurrency requests in flight. The
// first error is returned; other saves may or may not have happened.
func (m *Manager) SaveMany(ctx context.Context, sets map[string]*sparseset.Set) error {
	type blob struct {
		name   string
		values int
		data   []byte
	}

	names := make([]string, 0, len(sets))
	for name := range sets {
		names = append(names, name)
	}
	sort.Strings(names)

	blobs := make([]blob, 0, len(names))
	for _, name := range names {
		if err := validateName(name); err != nil {
			return err
		}
		var buf bytes.Buffer
		if err := encode(&buf, sets[name], m.opts.compression); err != nil {
			return fmt.Errorf("persistence: save %q: %w", name, err)
		}
		blobs = append(blobs, blob{name: name, values: sets[name].Len(), data: buf.Bytes()})
	}

	var failed atomic.Int64
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(m.opts.concurrency)
	for _, b := range blobs {
		g.Go(func() error {
			start := time.Now()
			err := m.store.Put(gctx, blobName(b.name), b.data)
			if err != nil {
				failed.Add(1)
				err = fmt.Errorf("persistence: save %q: %w", b.name, err)
			}
			m.opts.metricsCollector.RecordSave(int64(len(b.data)), time.Since(start), err)
			m.opts.logger.LogSave(gctx, b.name, b.values, len(b.data), err)
			return err
		})
	}
	err := g.Wait()
	m.opts.logger.LogBatch(ctx, "save", len(blobs), int(failed.Load()))
	return err
}

// LoadMany loads the named sets with at most WithConcurrency requests in
// flight. It fails as a whole when any load fails.
func (m *Manager) LoadMany(ctx context.Context, names []string) (map[string]*sparseset.Set, error) {
	for _, name := range names {
		if err := validateName(name); err != nil {
			return nil, err
		}
	}

	results := make([]*sparseset.Set, len(names))
	var failed atomic.Int64
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(m.opts.concurrency)
	for i, name := range names {
		g.Go(func() error {
			s, err := m.Load(gctx, name)
			if err != nil {
				failed.Add(1)
				return err
			}
			results[i] = s
			return nil
		})
	}
	err := g.Wait()
	m.opts.logger.LogBatch(ctx, "load", len(names), int(failed.Load()))
	if err != nil {
		return nil, err
	}

	out := make(map[string]*sparseset.Set, len(names))
	for i, name := range names {
		out[name] = results[i]
	}
	return out, nil
}

func encode(w io.Writer, s *sparseset.Set, c Compression) error {
	cw, err := newCompressor(w, c)
	if err != nil {
		return err
	}
	if _, err := stream.Write(cw, s); err != nil {
		_ = cw.Close()
		return err
	}
	return cw.Close()
}

func decode(data []byte) (*sparseset.Set, error) {
	r, release, err := newDecompressor(data)
	if err != nil {
		return nil, err
	}
	defer release()
	return stream.Read(r)
}

type countingWriter struct {
	w io.Writer
	n int64
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += int64(n)
	return n, err
}
