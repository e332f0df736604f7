// Package cache provides caching implementations for repository interfaces.
package cache

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/url"
	"time"

	"github.com/redis/go-redis/v9"

	"vinyle_backend/internal/feature/vinyle/domain/entity"
	"vinyle_backend/internal/feature/vinyle/usecase"
)

// CachingVinyleRepository decorates a VinyleRepository with Redis caching.
// Reads are cached per query; any successful mutation drops the whole namespace.
//
// Cache-aside is not atomic with mutations: a read that loaded from the store
// before a concurrent write can Set its result after that write's
// invalidation. Such an entry stays stale until its TTL expires, so the TTL
// bounds staleness.
type CachingVinyleRepository struct {
	inner     usecase.VinyleRepository
	rdb       *redis.Client
	ttl       time.Duration
	namespace string
}

var _ usecase.VinyleRepository = (*CachingVinyleRepository)(nil)

// NewCachingVinyleRepository decorates a VinyleRepository with Redis caching.
// If ttl is 0, it defaults to 5 minutes. If namespace is empty, it uses "vinyles".
// A nil rdb turns the decorator into a passthrough.
func NewCachingVinyleRepository(rdb *redis.Client, ttl time.Duration, inner usecase.VinyleRepository, namespace string) *CachingVinyleRepository {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	if namespace == "" {
		namespace = "vinyles"
	}
	return &CachingVinyleRepository{
		inner:     inner,
		rdb:       rdb,
		ttl:       ttl,
		namespace: namespace,
	}
}

// GetAll returns every vinyle, from cache when possible.
func (c *CachingVinyleRepository) GetAll(ctx context.Context) ([]entity.Vinyle, error) {
	return cachedList(ctx, c, c.namespace+":all", func() ([]entity.Vinyle, error) {
		return c.inner.GetAll(ctx)
	})
}

// GetByArtiste returns the vinyles of an artist, from cache when possible.
func (c *CachingVinyleRepository) GetByArtiste(ctx context.Context, name string) ([]entity.Vinyle, error) {
	return cachedList(ctx, c, c.namespace+":artiste:"+safe(name), func() ([]entity.Vinyle, error) {
		return c.inner.GetByArtiste(ctx, name)
	})
}

// GetByTitre returns the vinyles with a title, from cache when possible.
func (c *CachingVinyleRepository) GetByTitre(ctx context.Context, title string) ([]entity.Vinyle, error) {
	return cachedList(ctx, c, c.namespace+":titre:"+safe(title), func() ([]entity.Vinyle, error) {
		return c.inner.GetByTitre(ctx, title)
	})
}

// GetByID returns one vinyle. Misses of the store are not cached.
func (c *CachingVinyleRepository) GetByID(ctx context.Context, id string) (*entity.Vinyle, error) {
	if c.rdb == nil {
		return c.inner.GetByID(ctx, id)
	}

	key := c.namespace + ":id:" + safe(id)

	// 1) Check cache
	if b, err := c.rdb.Get(ctx, key).Bytes(); err == nil && len(b) > 0 {
		var out entity.Vinyle
		if err := json.Unmarshal(b, &out); err == nil {
			return &out, nil
		}
		// Delete corrupted cache entry
		_ = c.rdb.Del(ctx, key).Err()
	}

	// 2) Fallback to the store
	out, err := c.inner.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	// 3) Store in cache (best effort). May race with invalidate; see the type doc.
	if b, err := json.Marshal(out); err == nil {
		_ = c.rdb.Set(ctx, key, b, c.ttl).Err()
	}
	return out, nil
}

// Add inserts through the inner repository and invalidates the namespace.
func (c *CachingVinyleRepository) Add(ctx context.Context, v *entity.Vinyle) (*entity.Vinyle, error) {
	out, err := c.inner.Add(ctx, v)
	if err != nil {
		return nil, err
	}
	c.invalidate(ctx)
	return out, nil
}

// Update replaces through the inner repository and invalidates the namespace.
func (c *CachingVinyleRepository) Update(ctx context.Context, v *entity.Vinyle) (*entity.Vinyle, error) {
	out, err := c.inner.Update(ctx, v)
	if err != nil {
		return nil, err
	}
	c.invalidate(ctx)
	return out, nil
}

// Delete removes through the inner repository and invalidates the namespace.
func (c *CachingVinyleRepository) Delete(ctx context.Context, id string) (*entity.Vinyle, error) {
	out, err := c.inner.Delete(ctx, id)
	if err != nil {
		return nil, err
	}
	c.invalidate(ctx)
	return out, nil
}

// cachedList runs the cache-aside flow for list queries.
func cachedList(ctx context.Context, c *CachingVinyleRepository, key string, load func() ([]entity.Vinyle, error)) ([]entity.Vinyle, error) {
	// Bypass cache if Redis is not configured
	if c.rdb == nil {
		return load()
	}

	if b, err := c.rdb.Get(ctx, key).Bytes(); err == nil && len(b) > 0 {
		var out []entity.Vinyle
		if err := json.Unmarshal(b, &out); err == nil {
			return out, nil
		}
		_ = c.rdb.Del(ctx, key).Err()
	}

	out, err := load()
	if err != nil {
		return nil, err
	}

	if b, err := json.Marshal(out); err == nil {
		_ = c.rdb.Set(ctx, key, b, c.ttl).Err()
	}
	return out, nil
}

// invalidate drops every cached entry of the namespace. Failures are logged only.
func (c *CachingVinyleRepository) invalidate(ctx context.Context) {
	if c.rdb == nil {
		return
	}
	if err := c.deleteByPattern(ctx, c.namespace+":*"); err != nil {
		slog.Warn("cache invalidation failed", "namespace", c.namespace, "error", err)
	}
}

// deleteByPattern deletes all cache keys matching a given pattern using SCAN.
func (c *CachingVinyleRepository) deleteByPattern(ctx context.Context, pattern string) error {
	var cursor uint64
	for {
		keys, cur, err := c.rdb.Scan(ctx, cursor, pattern, 200).Result()
		if err != nil {
			return err
		}
		if len(keys) > 0 {
			if err := c.rdb.Del(ctx, keys...).Err(); err != nil {
				return err
			}
		}
		cursor = cur
		if cursor == 0 {
			break
		}
	}
	return nil
}

// safe escapes a lookup value for use in a Redis key. The escaping is
// reversible so two different artists never share a key.
func safe(s string) string {
	return url.QueryEscape(s)
}
