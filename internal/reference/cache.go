package reference

import (
	"context"
	"fmt"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/smallbiznis/pawnshop/internal/reference/domain"
)

const (
	defaultCacheSize = 256
	defaultCacheTTL  = 5 * time.Minute
)

// CachedRepository serves reference reads from an expiring LRU. Spot prices move
// during the day, so the TTL should stay short.
type CachedRepository struct {
	next  domain.Repository
	cache *expirable.LRU[string, any]
}

func NewCachedRepository(next domain.Repository, ttl time.Duration) *CachedRepository {
	if ttl <= 0 {
		ttl = defaultCacheTTL
	}
	return &CachedRepository{
		next:  next,
		cache: expirable.NewLRU[string, any](defaultCacheSize, nil, ttl),
	}
}

// Invalidate drops every cached table.
func (c *CachedRepository) Invalidate() {
	c.cache.Purge()
}

func (c *CachedRepository) ListMetalTypes(ctx context.Context) ([]domain.MetalType, error) {
	return cached(c, "metal_types", func() ([]domain.MetalType, error) {
		return c.next.ListMetalTypes(ctx)
	})
}

func (c *CachedRepository) FindMetalTypeByCode(ctx context.Context, code string) (*domain.MetalType, error) {
	return cachedRow(c, "metal_type:"+code, func() (*domain.MetalType, error) {
		return c.next.FindMetalTypeByCode(ctx, code)
	})
}

func (c *CachedRepository) ListPuritiesByMetalType(ctx context.Context, metalTypeID int64) ([]domain.Purity, error) {
	return cached(c, fmt.Sprintf("purities:%d", metalTypeID), func() ([]domain.Purity, error) {
		return c.next.ListPuritiesByMetalType(ctx, metalTypeID)
	})
}

func (c *CachedRepository) FindPurity(ctx context.Context, id int64) (*domain.Purity, error) {
	return cachedRow(c, fmt.Sprintf("purity:%d", id), func() (*domain.Purity, error) {
		return c.next.FindPurity(ctx, id)
	})
}

func (c *CachedRepository) FindSpotPrice(ctx context.Context, metalTypeID int64) (*domain.SpotPrice, error) {
	return cachedRow(c, fmt.Sprintf("spot_price:%d", metalTypeID), func() (*domain.SpotPrice, error) {
		return c.next.FindSpotPrice(ctx, metalTypeID)
	})
}

func (c *CachedRepository) ListPriceEstimates(ctx context.Context) ([]domain.PriceEstimate, error) {
	return cached(c, "price_estimates", func() ([]domain.PriceEstimate, error) {
		return c.next.ListPriceEstimates(ctx)
	})
}

func (c *CachedRepository) ListDiamondEstimates(ctx context.Context) ([]domain.DiamondEstimate, error) {
	return cached(c, "diamond_estimates", func() ([]domain.DiamondEstimate, error) {
		return c.next.ListDiamondEstimates(ctx)
	})
}

func (c *CachedRepository) FindCaratConversion(ctx context.Context) (*domain.CaratConversion, error) {
	return cachedRow(c, "carat_conversion", func() (*domain.CaratConversion, error) {
		return c.next.FindCaratConversion(ctx)
	})
}

func cached[T any](c *CachedRepository, key string, load func() ([]T, error)) ([]T, error) {
	if v, ok := c.cache.Get(key); ok {
		if items, ok := v.([]T); ok {
			return items, nil
		}
	}
	items, err := load()
	if err != nil {
		return nil, err
	}
	c.cache.Add(key, items)
	return items, nil
}

// cachedRow does not remember misses so a freshly inserted row shows up at once.
func cachedRow[T any](c *CachedRepository, key string, load func() (*T, error)) (*T, error) {
	if v, ok := c.cache.Get(key); ok {
		if item, ok := v.(*T); ok {
			return item, nil
		}
	}
	item, err := load()
	if err != nil || item == nil {
		return item, err
	}
	c.cache.Add(key, item)
	return item, nil
}
