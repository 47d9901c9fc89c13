// Package embedcache memoizes embeddings in two tiers: a bounded in-memory map (L1)
// and an optional persistent Store (L2).
package embedcache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
)

// Source produces embeddings on a cache miss.
type Source interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}

// Defaults for the in-memory tier.
const (
	DefaultTTL        = 24 * time.Hour
	DefaultMaxEntries = 4096
)

type entry struct {
	vector    []float32
	expiresAt time.Time
}

// Cache is an embedder that serves repeated texts from cache.
type Cache struct {
	source     Source
	model      string
	store      Store
	l1         sync.Map // key -> *entry
	size       atomic.Int64
	ttl        time.Duration
	maxEntries int
	logger     *zap.Logger
	now        func() time.Time

	hits   atomic.Int64
	misses atomic.Int64
}

// Option configures a Cache.
type Option func(*Cache)

// WithStore enables the persistent tier.
func WithStore(store Store) Option {
	return func(c *Cache) { c.store = store }
}

// WithTTL sets how long entries stay in memory.
func WithTTL(ttl time.Duration) Option {
	return func(c *Cache) { c.ttl = ttl }
}

// WithMaxEntries bounds the in-memory tier. Zero or less means unbounded.
func WithMaxEntries(n int) Option {
	return func(c *Cache) { c.maxEntries = n }
}

// WithLogger sets the logger for store failures.
func WithLogger(logger *zap.Logger) Option {
	return func(c *Cache) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// New wraps source. model is part of every key so vectors from different models
// never mix.
func New(source Source, model string, opts ...Option) *Cache {
	c := &Cache{
		source:     source,
		model:      model,
		ttl:        DefaultTTL,
		maxEntries: DefaultMaxEntries,
		logger:     zap.NewNop(),
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Key returns the cache key of text under model.
func Key(model, text string) string {
	sum := sha256.Sum256([]byte(model + "\x00" + text))
	return hex.EncodeToString(sum[:])
}

// Embed returns the cached vector for text, consulting L1, then L2, then the source.
// L2 failures are logged and treated as misses.
func (c *Cache) Embed(ctx context.Context, text string) ([]float32, error) {
	key := Key(c.model, text)

	if vector, ok := c.loadL1(key); ok {
		c.hits.Add(1)
		return vector, nil
	}

	if c.store != nil {
		data, ok, err := c.store.Get(ctx, key)
		switch {
		case err != nil:
			c.logger.Warn("embedding cache L2 get failed", zap.Error(err))
		case ok:
			vector, err := decodeVector(data)
			if err == nil {
				c.hits.Add(1)
				c.storeL1(key, vector)
				return vector, nil
			}
			c.logger.Warn("embedding cache L2 entry corrupt", zap.String("key", key), zap.Error(err))
		}
	}

	c.misses.Add(1)
	vector, err := c.source.Embed(ctx, text)
	if err != nil {
		return nil, err
	}

	c.storeL1(key, vector)
	if c.store != nil {
		if err := c.store.Set(ctx, key, encodeVector(vector)); err != nil {
			c.logger.Warn("embedding cache L2 set failed", zap.Error(err))
		}
	}
	return vector, nil
}

// Stats returns hit and miss counters.
func (c *Cache) Stats() (hits, misses int64) {
	return c.hits.Load(), c.misses.Load()
}

// Close closes the persistent tier.
func (c *Cache) Close() error {
	if c.store != nil {
		return c.store.Close()
	}
	return nil
}

func (c *Cache) loadL1(key string) ([]float32, bool) {
	val, ok := c.l1.Load(key)
	if !ok {
		return nil, false
	}
	e := val.(*entry)
	if c.now().Before(e.expiresAt) {
		return e.vector, true
	}
	if c.l1.CompareAndDelete(key, val) {
		c.size.Add(-1)
	}
	return nil, false
}

func (c *Cache) storeL1(key string, vector []float32) {
	c.evictIfNeeded()
	if _, loaded := c.l1.Swap(key, &entry{vector: vector, expiresAt: c.now().Add(c.ttl)}); !loaded {
		c.size.Add(1)
	}
}

// evictIfNeeded drops expired entries, then the entries closest to expiry, until
// there is room for one more.
func (c *Cache) evictIfNeeded() {
	if c.maxEntries <= 0 || c.size.Load() < int64(c.maxEntries) {
		return
	}

	now := c.now()
	c.l1.Range(func(key, val any) bool {
		if now.After(val.(*entry).expiresAt) && c.l1.CompareAndDelete(key, val) {
			c.size.Add(-1)
		}
		return true
	})

	for c.size.Load() >= int64(c.maxEntries) {
		var oldestKey, oldestVal any
		var oldestAt time.Time
		c.l1.Range(func(key, val any) bool {
			e := val.(*entry)
			if oldestKey == nil || e.expiresAt.Before(oldestAt) {
				oldestKey, oldestVal, oldestAt = key, val, e.expiresAt
			}
			return true
		})
		if oldestKey == nil {
			return
		}
		if c.l1.CompareAndDelete(oldestKey, oldestVal) {
			c.size.Add(-1)
		}
	}
}
