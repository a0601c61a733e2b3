// Package cache provides caching implementations for repository interfaces.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"mono_backend/internal/feature/items/domain/entity"
	"mono_backend/internal/feature/items/usecase"
)

// CachingItemRepository decorates an ItemRepository with Redis caching for
// the read paths (front page listing and per-user status listings).
// It implements the decorator pattern, transparently adding caching without
// modifying the underlying repository. Writes invalidate the whole namespace,
// which is cheap at this data size and keeps ordering guarantees exact.
type CachingItemRepository struct {
	inner     usecase.ItemRepository
	rdb       *redis.Client
	ttl       time.Duration
	namespace string
}

// CachingItemRepositoryがItemRepositoryを実装していることをコンパイル時に検証します。
var _ usecase.ItemRepository = (*CachingItemRepository)(nil)

// NewCachingItemRepository decorates an ItemRepository with Redis caching.
// If ttl is 0, it defaults to 5 minutes. If namespace is empty, it uses "items".
func NewCachingItemRepository(rdb *redis.Client, ttl time.Duration, inner usecase.ItemRepository, namespace string) *CachingItemRepository {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	if namespace == "" {
		namespace = "items"
	}
	return &CachingItemRepository{
		inner:     inner,
		rdb:       rdb,
		ttl:       ttl,
		namespace: namespace,
	}
}

func (c *CachingItemRepository) allKey() string {
	return fmt.Sprintf("%s:all", c.namespace)
}

func (c *CachingItemRepository) userStatusKey(userID uint, status string) string {
	return fmt.Sprintf("%s:user:%d:%s", c.namespace, userID, status)
}

// Create inserts an item and invalidates the cached listings.
func (c *CachingItemRepository) Create(ctx context.Context, item *entity.Item) error {
	if err := c.inner.Create(ctx, item); err != nil {
		return err
	}
	c.invalidate(ctx)
	return nil
}

// Update saves an item and invalidates the cached listings.
func (c *CachingItemRepository) Update(ctx context.Context, item *entity.Item) error {
	if err := c.inner.Update(ctx, item); err != nil {
		return err
	}
	c.invalidate(ctx)
	return nil
}

// FindByID always hits the underlying repository; single-row reads are not
// worth caching and must never serve a stale record to an edit form.
func (c *CachingItemRepository) FindByID(ctx context.Context, id uint) (*entity.Item, error) {
	return c.inner.FindByID(ctx, id)
}

// ListAll retrieves all items, checking cache first then falling back to the database.
func (c *CachingItemRepository) ListAll(ctx context.Context) ([]entity.Item, error) {
	return c.cachedList(ctx, c.allKey(), func() ([]entity.Item, error) {
		return c.inner.ListAll(ctx)
	})
}

// ListByUserAndStatus retrieves one user's items for a status, cache first.
func (c *CachingItemRepository) ListByUserAndStatus(ctx context.Context, userID uint, status string) ([]entity.Item, error) {
	return c.cachedList(ctx, c.userStatusKey(userID, status), func() ([]entity.Item, error) {
		return c.inner.ListByUserAndStatus(ctx, userID, status)
	})
}

// cachedList serves a listing from Redis when possible, otherwise loads it
// from the fallback and stores the result. Cache failures degrade to the
// database; they never fail the request.
func (c *CachingItemRepository) cachedList(ctx context.Context, key string, load func() ([]entity.Item, error)) ([]entity.Item, error) {
	// Bypass cache if Redis is not configured
	if c.rdb == nil {
		return load()
	}

	if b, err := c.rdb.Get(ctx, key).Bytes(); err == nil && len(b) > 0 {
		var out []entity.Item
		if err := json.Unmarshal(b, &out); err == nil {
			return out, nil
		}
		// Corrupt cache entry: drop it and fall through to the database
		_ = c.rdb.Del(ctx, key).Err()
	}

	items, err := load()
	if err != nil {
		return nil, err
	}

	if b, err := json.Marshal(items); err == nil {
		_ = c.rdb.Set(ctx, key, b, c.ttl).Err() // Best effort
	}
	return items, nil
}

// invalidate drops every cached listing in the namespace. Best effort.
func (c *CachingItemRepository) invalidate(ctx context.Context) {
	if c.rdb == nil {
		return
	}
	var cursor uint64
	for {
		keys, next, err := c.rdb.Scan(ctx, cursor, c.namespace+":*", 100).Result()
		if err != nil {
			return
		}
		if len(keys) > 0 {
			_ = c.rdb.Del(ctx, keys...).Err()
		}
		if next == 0 {
			return
		}
		cursor = next
	}
}
