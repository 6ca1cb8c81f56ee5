package internal

import (
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"time"

	"github.com/dgraph-io/ristretto"
	"github.com/eko/gocache/lib/v4/cache"
	"github.com/eko/gocache/lib/v4/store"
	ristretto_store "github.com/eko/gocache/store/ristretto/v4"
	"golang.org/x/sync/singleflight"
)

// _memoryTTL bounds how long the memory layer holds an aggregate. Freshness is
// still decided by the caller's TTL.
var _memoryTTL = 24 * time.Hour

// entries is the durable half of the aggregate cache.
type entries interface {
	GetEntry(ctx context.Context, key string) (entry, bool, error)
	PutEntry(ctx context.Context, key string, value []byte, at time.Time) error
}

// aggregateCache holds expensive JSON aggregates (spotlights, recent chapters,
// popular lists). Entries live in memory and in the durable cache table, and
// are recomputed once they are older than the TTL the caller asks for.
//
// Concurrent misses for the same key share a single recompute.
type aggregateCache struct {
	mem     *cache.Cache[[]byte]
	durable entries
	group   singleflight.Group
	metrics *cacheMetrics
	now     func() time.Time
}

// NewMemoryCache returns a ristretto-backed in-memory cache.
func NewMemoryCache() (*cache.Cache[[]byte], error) {
	r, err := ristretto.NewCache(&ristretto.Config{
		NumCounters: 1e5,
		MaxCost:     64 << 20, // 64MB.
		BufferItems: 64,
	})
	if err != nil {
		return nil, fmt.Errorf("creating ristretto cache: %w", err)
	}
	return cache.New[[]byte](ristretto_store.NewRistretto(r)), nil
}

func newAggregateCache(mem *cache.Cache[[]byte], durable entries, metrics *cacheMetrics) *aggregateCache {
	return &aggregateCache{
		mem:     mem,
		durable: durable,
		metrics: metrics,
		now:     time.Now,
	}
}

// Fetch returns the cached blob for key if it was computed less than ttl ago.
// Otherwise recompute is invoked and its result is stored with a fresh
// timestamp. If recompute fails the stale blob is served when there is one;
// otherwise the error is returned. Errors are never cached.
func (c *aggregateCache) Fetch(ctx context.Context, key string, ttl time.Duration, recompute func(context.Context) ([]byte, error)) ([]byte, error) {
	if e, ok := c.get(ctx, key); ok && c.now().Sub(e.UpdatedAt) < ttl {
		c.metrics.cacheHitInc()
		return e.Value, nil
	}

	out, err, _ := c.group.Do(key, func() (any, error) {
		// Someone else may have refreshed while we were waiting.
		stale, ok := c.get(ctx, key)
		if ok && c.now().Sub(stale.UpdatedAt) < ttl {
			c.metrics.cacheHitInc()
			return stale.Value, nil
		}
		c.metrics.cacheMissInc()

		value, err := recompute(ctx)
		if err != nil {
			if !ok {
				return nil, err
			}
			c.metrics.cacheStaleInc()
			Log(ctx).Warn("recompute failed, serving stale entry", "key", key, "age", c.now().Sub(stale.UpdatedAt).String(), "err", err)
			return stale.Value, nil
		}
		c.set(ctx, key, entry{Value: value, UpdatedAt: c.now()})
		return value, nil
	})
	if err != nil {
		return nil, err
	}
	return out.([]byte), nil
}

func (c *aggregateCache) get(ctx context.Context, key string) (entry, bool) {
	if b, err := c.mem.Get(ctx, key); err == nil {
		if e, ok := decodeEntry(b); ok {
			return e, true
		}
	}

	e, ok, err := c.durable.GetEntry(ctx, key)
	if err != nil {
		Log(ctx).Warn("problem reading cache entry", "key", key, "err", err)
		return entry{}, false
	}
	if !ok {
		return entry{}, false
	}
	c.setMemory(ctx, key, e)
	return e, true
}

func (c *aggregateCache) set(ctx context.Context, key string, e entry) {
	c.setMemory(ctx, key, e)
	if err := c.durable.PutEntry(ctx, key, e.Value, e.UpdatedAt); err != nil {
		Log(ctx).Warn("problem persisting cache entry", "key", key, "err", err)
	}
}

func (c *aggregateCache) setMemory(ctx context.Context, key string, e entry) {
	b := encodeEntry(e)
	err := c.mem.Set(ctx, key, b, store.WithExpiration(_memoryTTL), store.WithCost(int64(len(b))))
	if err != nil && !errors.Is(err, context.Canceled) {
		Log(ctx).Debug("problem caching in memory", "key", key, "err", err)
	}
}

// encodeEntry prefixes the value with its timestamp.
func encodeEntry(e entry) []byte {
	b := make([]byte, 8+len(e.Value))
	binary.BigEndian.PutUint64(b, uint64(e.UpdatedAt.UnixNano()))
	copy(b[8:], e.Value)
	return b
}

func decodeEntry(b []byte) (entry, bool) {
	if len(b) < 8 {
		return entry{}, false
	}
	nanos := int64(binary.BigEndian.Uint64(b[:8]))
	return entry{Value: b[8:], UpdatedAt: time.Unix(0, nanos)}, true
}
