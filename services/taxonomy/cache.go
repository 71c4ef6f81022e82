package taxonomy

import (
	"context"
	"encoding/json"
	"time"

	"marketplace/models"
	"marketplace/utils"

	"go.uber.org/zap"
)

// CachingLoader keeps each fetched level in redis for ttl before asking next.
// Cache failures are logged and fall through to next.
type CachingLoader struct {
	next   Loader
	kv     utils.KVStore
	ttl    time.Duration
	logger *zap.Logger
}

// NewCachingLoader wraps next with a redis-backed level cache.
func NewCachingLoader(next Loader, kv utils.KVStore, ttl time.Duration, logger *zap.Logger) *CachingLoader {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CachingLoader{next: next, kv: kv, ttl: ttl, logger: logger}
}

func sectorsKey() string {
	return utils.TaxonomyCachePrefix + "sectors"
}

func categoriesKey(sectorID string) string {
	return utils.TaxonomyCachePrefix + "categories:" + sectorID
}

func subCategoriesKey(categoryID string) string {
	return utils.TaxonomyCachePrefix + "subcategories:" + categoryID
}

func cached[T any](ctx context.Context, c *CachingLoader, key string, fetch func(context.Context) ([]T, error)) ([]T, error) {
	raw, ok, err := c.kv.Get(ctx, key)
	if err != nil {
		c.logger.Warn("taxonomy cache read failed", zap.String("key", key), zap.Error(err))
	}
	if ok {
		var items []T
		if err := json.Unmarshal(raw, &items); err == nil {
			return items, nil
		}
		c.logger.Warn("dropping corrupt taxonomy cache entry", zap.String("key", key))
	}

	items, err := fetch(ctx)
	if err != nil {
		return nil, err
	}
	if data, err := json.Marshal(items); err == nil {
		if err := c.kv.Set(ctx, key, data, c.ttl); err != nil {
			c.logger.Warn("taxonomy cache write failed", zap.String("key", key), zap.Error(err))
		}
	}
	return items, nil
}

func (c *CachingLoader) Sectors(ctx context.Context) ([]models.Sector, error) {
	return cached(ctx, c, sectorsKey(), c.next.Sectors)
}

func (c *CachingLoader) Categories(ctx context.Context, sectorID string) ([]models.ServiceCategory, error) {
	return cached(ctx, c, categoriesKey(sectorID), func(ctx context.Context) ([]models.ServiceCategory, error) {
		return c.next.Categories(ctx, sectorID)
	})
}

func (c *CachingLoader) SubCategories(ctx context.Context, categoryID string) ([]models.ServiceSubCategory, error) {
	return cached(ctx, c, subCategoriesKey(categoryID), func(ctx context.Context) ([]models.ServiceSubCategory, error) {
		return c.next.SubCategories(ctx, categoryID)
	})
}

// Invalidate removes the sector list, the categories of sectorID and the
// subcategory sets of categoryIDs.
func (c *CachingLoader) Invalidate(ctx context.Context, sectorID string, categoryIDs ...string) error {
	keys := []string{sectorsKey()}
	if sectorID != "" {
		keys = append(keys, categoriesKey(sectorID))
	}
	for _, id := range categoryIDs {
		keys = append(keys, subCategoriesKey(id))
	}
	return c.kv.Del(ctx, keys...)
}

// Flush removes every cached taxonomy level.
func (c *CachingLoader) Flush(ctx context.Context) error {
	return c.kv.DelPrefix(ctx, utils.TaxonomyCachePrefix)
}
