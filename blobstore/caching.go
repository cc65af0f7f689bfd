package blobstore

import (
	"context"
	"io"
	"sync"

	"golang.org/x/sync/errgroup"
)

// CachingStore wraps a BlobStore with a read-through, whole-blob memory
// cache. Blobs are immutable once written, so a cached copy never goes
// stale; Put and Delete still invalidate, in case a name is reused.
//
// Intended for remote stores (s3, minio) where a snapshot is fetched
// once and read many times.
type CachingStore struct {
	inner BlobStore

	mu    sync.RWMutex
	cache map[string][]byte
}

// NewCachingStore creates a new CachingStore around inner.
func NewCachingStore(inner BlobStore) *CachingStore {
	return &CachingStore{
		inner: inner,
		cache: make(map[string][]byte),
	}
}

// Open opens a blob for reading, fetching it into the cache on first
// access.
func (s *CachingStore) Open(ctx context.Context, name string) (Blob, error) {
	s.mu.RLock()
	data, ok := s.cache[name]
	s.mu.RUnlock()
	if ok {
		return &memoryBlob{data: data}, nil
	}

	data, err := s.fetch(ctx, name)
	if err != nil {
		return nil, err
	}
	return &memoryBlob{data: data}, nil
}

// Prefetch loads the named blobs into the cache in parallel. Missing
// blobs fail the whole call with ErrNotFound.
func (s *CachingStore) Prefetch(ctx context.Context, names ...string) error {
	g, ctx := errgroup.WithContext(ctx)
	for _, name := range names {
		g.Go(func() error {
			_, err := s.fetch(ctx, name)
			return err
		})
	}
	return g.Wait()
}

func (s *CachingStore) fetch(ctx context.Context, name string) ([]byte, error) {
	blob, err := s.inner.Open(ctx, name)
	if err != nil {
		return nil, err
	}
	defer blob.Close()

	data := make([]byte, blob.Size())
	n, err := blob.ReadAt(ctx, data, 0)
	if err != nil && !(err == io.EOF && n == len(data)) {
		return nil, err
	}

	s.mu.Lock()
	s.cache[name] = data
	s.mu.Unlock()
	return data, nil
}

// Create passes through to the inner store. Writes are not cached.
func (s *CachingStore) Create(ctx context.Context, name string) (WritableBlob, error) {
	s.invalidate(name)
	return s.inner.Create(ctx, name)
}

// Put writes through to the inner store and invalidates the cache
// entry for name.
func (s *CachingStore) Put(ctx context.Context, name string, data []byte) error {
	s.invalidate(name)
	return s.inner.Put(ctx, name, data)
}

// Delete removes the blob and its cache entry.
func (s *CachingStore) Delete(ctx context.Context, name string) error {
	s.invalidate(name)
	return s.inner.Delete(ctx, name)
}

// List passes through to the inner store.
func (s *CachingStore) List(ctx context.Context, prefix string) ([]string, error) {
	return s.inner.List(ctx, prefix)
}

func (s *CachingStore) invalidate(name string) {
	s.mu.Lock()
	delete(s.cache, name)
	s.mu.Unlock()
}
