// Package transcript puts an in-memory read cache in front of a
// transcript store so repeated fetches of the same turn do not hit the
// backing object store.
package transcript

import (
	"context"
	"fmt"
	"strings"
	"sync/atomic"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	transcriptrepo "contextify/internal/gateway/repository/transcript"
)

// Store is the origin interface the cache wraps.
type Store = transcriptrepo.Store

// CacheConfig sizes the two caches. Blobs are rendered markdown turns,
// lists are per-session object listings.
type CacheConfig struct {
	BlobTTL        time.Duration
	BlobMaxEntries int
	ListTTL        time.Duration
	ListMaxEntries int
}

// DefaultCacheConfig returns conservative defaults. Transcript turns are
// immutable once written, so the blob TTL is generous; listings change on
// every append and expire quickly.
func DefaultCacheConfig() CacheConfig {
	return CacheConfig{
		BlobTTL:        5 * time.Minute,
		BlobMaxEntries: 1024,
		ListTTL:        30 * time.Second,
		ListMaxEntries: 512,
	}
}

// MetricsSnapshot is a point-in-time copy of the cache counters.
type MetricsSnapshot struct {
	BlobHits       uint64
	BlobMisses     uint64
	ListHits       uint64
	ListMisses     uint64
	OriginReads    uint64
	OriginWrites   uint64
	OriginReadErr  uint64
	OriginWriteErr uint64
}

// Metrics tracks cache effectiveness with atomic counters.
type Metrics struct {
	blobHits       atomic.Uint64
	blobMisses     atomic.Uint64
	listHits       atomic.Uint64
	listMisses     atomic.Uint64
	originReads    atomic.Uint64
	originWrites   atomic.Uint64
	originReadErr  atomic.Uint64
	originWriteErr atomic.Uint64
}

func (m *Metrics) snapshot() MetricsSnapshot {
	return MetricsSnapshot{
		BlobHits:       m.blobHits.Load(),
		BlobMisses:     m.blobMisses.Load(),
		ListHits:       m.listHits.Load(),
		ListMisses:     m.listMisses.Load(),
		OriginReads:    m.originReads.Load(),
		OriginWrites:   m.originWrites.Load(),
		OriginReadErr:  m.originReadErr.Load(),
		OriginWriteErr: m.originWriteErr.Load(),
	}
}

// CachedStore decorates a Store with expiring LRU caches for turn blobs
// and session listings.
type CachedStore struct {
	origin    Store
	blobCache *expirable.LRU[string, []byte]
	listCache *expirable.LRU[string, []string]
	metrics   Metrics
}

// NewCachedStore wraps origin with caches sized by cfg. Zero config
// fields fall back to DefaultCacheConfig values.
func NewCachedStore(origin Store, cfg CacheConfig) *CachedStore {
	def := DefaultCacheConfig()
	if cfg.BlobTTL <= 0 {
		cfg.BlobTTL = def.BlobTTL
	}
	if cfg.BlobMaxEntries <= 0 {
		cfg.BlobMaxEntries = def.BlobMaxEntries
	}
	if cfg.ListTTL <= 0 {
		cfg.ListTTL = def.ListTTL
	}
	if cfg.ListMaxEntries <= 0 {
		cfg.ListMaxEntries = def.ListMaxEntries
	}
	return &CachedStore{
		origin:    origin,
		blobCache: expirable.NewLRU[string, []byte](cfg.BlobMaxEntries, nil, cfg.BlobTTL),
		listCache: expirable.NewLRU[string, []string](cfg.ListMaxEntries, nil, cfg.ListTTL),
	}
}

func blobKey(sessionID string, seq int) string {
	return fmt.Sprintf("%s/%06d", strings.TrimSpace(sessionID), seq)
}

// Put writes through to the origin, then primes the blob cache and
// invalidates the session listing, which is now stale.
func (c *CachedStore) Put(ctx context.Context, sessionID string, seq int, content []byte) error {
	c.metrics.originWrites.Add(1)
	if err := c.origin.Put(ctx, sessionID, seq, content); err != nil {
		c.metrics.originWriteErr.Add(1)
		return err
	}
	buf := make([]byte, len(content))
	copy(buf, content)
	c.blobCache.Add(blobKey(sessionID, seq), buf)
	c.listCache.Remove(strings.TrimSpace(sessionID))
	return nil
}

// Get returns the cached turn when present, otherwise reads from the
// origin and fills the cache. Callers receive a private copy either way.
func (c *CachedStore) Get(ctx context.Context, sessionID string, seq int) ([]byte, error) {
	key := blobKey(sessionID, seq)
	if cached, ok := c.blobCache.Get(key); ok {
		c.metrics.blobHits.Add(1)
		out := make([]byte, len(cached))
		copy(out, cached)
		return out, nil
	}
	c.metrics.blobMisses.Add(1)

	c.metrics.originReads.Add(1)
	data, err := c.origin.Get(ctx, sessionID, seq)
	if err != nil {
		c.metrics.originReadErr.Add(1)
		return nil, err
	}
	buf := make([]byte, len(data))
	copy(buf, data)
	c.blobCache.Add(key, buf)
	return data, nil
}

// List returns the session's object keys, consulting the listing cache
// first.
func (c *CachedStore) List(ctx context.Context, sessionID string) ([]string, error) {
	key := strings.TrimSpace(sessionID)
	if cached, ok := c.listCache.Get(key); ok {
		c.metrics.listHits.Add(1)
		out := make([]string, len(cached))
		copy(out, cached)
		return out, nil
	}
	c.metrics.listMisses.Add(1)

	c.metrics.originReads.Add(1)
	keys, err := c.origin.List(ctx, sessionID)
	if err != nil {
		c.metrics.originReadErr.Add(1)
		return nil, err
	}
	buf := make([]string, len(keys))
	copy(buf, keys)
	c.listCache.Add(key, buf)
	return keys, nil
}

// Metrics returns a snapshot of the cache counters.
func (c *CachedStore) Metrics() MetricsSnapshot {
	return c.metrics.snapshot()
}
