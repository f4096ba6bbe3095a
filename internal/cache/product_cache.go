package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/stockroom/inventory_api/internal/models"
)

const productListKey = "products:active"

// ProductCache caches the active product list under a single key. The list is
// small by design (no pagination in the API), so whole-list caching keeps
// invalidation down to one delete per mutation.
type ProductCache struct {
	redis *RedisClient
	ttl   time.Duration
}

// NewProductCache creates a new ProductCache.
func NewProductCache(redis *RedisClient, ttl time.Duration) *ProductCache {
	return &ProductCache{
		redis: redis,
		ttl:   ttl,
	}
}

// GetList returns the cached product list. The second return value is false
// on a miss; an error means the cache itself failed.
func (c *ProductCache) GetList(ctx context.Context) ([]models.Product, bool, error) {
	raw, err := c.redis.Get(ctx, productListKey)
	if err != nil {
		if IsMiss(err) {
			return nil, false, nil
		}
		return nil, false, err
	}

	var products []models.Product
	if err := json.Unmarshal([]byte(raw), &products); err != nil {
		return nil, false, fmt.Errorf("failed to unmarshal cached products: %w", err)
	}
	return products, true, nil
}

// SetList stores the product list with the configured TTL.
func (c *ProductCache) SetList(ctx context.Context, products []models.Product) error {
	jsonData, err := json.Marshal(products)
	if err != nil {
		return fmt.Errorf("failed to marshal products: %w", err)
	}
	return c.redis.Set(ctx, productListKey, string(jsonData), c.ttl)
}

// Invalidate drops the cached list. Called after every mutation so the next
// read reflects store truth.
func (c *ProductCache) Invalidate(ctx context.Context) error {
	return c.redis.Delete(ctx, productListKey)
}
