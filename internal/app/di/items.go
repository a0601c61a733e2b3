package di

import (
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	itemadapters "mono_backend/internal/feature/items/adapters"
	"mono_backend/internal/feature/items/usecase"
	"mono_backend/internal/platform/cache"
)

// listCacheTTL bounds staleness of the cached listings; writes invalidate
// them anyway, so this only matters for out-of-band database changes.
const listCacheTTL = 5 * time.Minute

// NewItemRepository creates the item repository, wrapped with the Redis
// listing cache. The decorator bypasses itself when rdb is nil.
func NewItemRepository(rdb *redis.Client, db *gorm.DB) usecase.ItemRepository {
	return cache.NewCachingItemRepository(rdb, listCacheTTL, itemadapters.NewItemMySQL(db), "items")
}
