package usecases

import (
	"context"
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/cases"

	"github.com/storefront/storefront-backend/models"
	"github.com/storefront/storefront-backend/repositories"
	"github.com/storefront/storefront-backend/utils"
)

const (
	productListCachePrefix   = "products:list:"
	productSearchCachePrefix = "search:products:"
	productViewCachePrefix   = "products:viewed:"

	productListCacheTTL   = 180 * time.Second
	productSearchCacheTTL = 300 * time.Second
	productViewDedupTTL   = 24 * time.Hour
)

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// ProductListCacheKey encodes every filter that changes the listing, optional ones only when set.
func ProductListCacheKey(filters models.ProductFilters) string {
	parts := []string{
		"page", strconv.Itoa(filters.Page),
		"size", strconv.Itoa(filters.Size),
	}
	if filters.CategoryId != nil {
		parts = append(parts, "category", strconv.FormatInt(*filters.CategoryId, 10))
	}
	if filters.MinPrice != nil {
		parts = append(parts, "min_price", formatFloat(*filters.MinPrice))
	}
	if filters.MaxPrice != nil {
		parts = append(parts, "max_price", formatFloat(*filters.MaxPrice))
	}
	if filters.Availability != nil {
		parts = append(parts, "availability", strconv.FormatBool(*filters.Availability))
	}
	return productListCachePrefix + repositories.CacheKey(parts...)
}

// NormalizeSearchQuery case-folds the query so that "Lamp" and "LAMP" share a cache entry.
func NormalizeSearchQuery(query string) string {
	return cases.Fold().String(strings.Join(strings.Fields(query), " "))
}

func ProductSearchCacheKey(search models.ProductSearch) string {
	return productSearchCachePrefix + repositories.CacheKey(
		NormalizeSearchQuery(search.Query),
		"page", strconv.Itoa(search.Page),
		"size", strconv.Itoa(search.Size),
	)
}

type CatalogCache struct {
	cache repositories.Cache
}

func NewCatalogCache(cache repositories.Cache) CatalogCache {
	return CatalogCache{cache: cache}
}

func (c CatalogCache) ProductList(ctx context.Context, filters models.ProductFilters,
	load func(ctx context.Context) (models.Page[models.Product], error),
) (models.Page[models.Product], error) {
	if c.cache == nil {
		return load(ctx)
	}
	return repositories.CachedJSON(ctx, c.cache, "products_list", ProductListCacheKey(filters), productListCacheTTL, load)
}

func (c CatalogCache) ProductSearch(ctx context.Context, search models.ProductSearch,
	load func(ctx context.Context) (models.Page[models.Product], error),
) (models.Page[models.Product], error) {
	if c.cache == nil {
		return load(ctx)
	}
	return repositories.CachedJSON(ctx, c.cache, "products_search", ProductSearchCacheKey(search), productSearchCacheTTL, load)
}

// Invalidate drops every cached listing and search page. Failures are only logged.
func (c CatalogCache) Invalidate(ctx context.Context) {
	if c.cache == nil {
		return
	}
	logger := utils.LoggerFromContext(ctx)
	for _, prefix := range []string{productListCachePrefix, productSearchCachePrefix} {
		if err := c.cache.DeletePrefix(ctx, prefix); err != nil {
			logger.WarnContext(ctx, "could not invalidate product cache", "prefix", prefix, "error", err.Error())
		}
	}
}

// FirstViewOf reports whether this client has not viewed the product in the last 24 hours.
func (c CatalogCache) FirstViewOf(ctx context.Context, productId int64, clientIp string) bool {
	if c.cache == nil || clientIp == "" {
		return false
	}
	key := productViewCachePrefix + repositories.CacheKey(strconv.FormatInt(productId, 10), clientIp)
	created, err := c.cache.SetNX(ctx, key, []byte("1"), productViewDedupTTL)
	if err != nil {
		utils.LoggerFromContext(ctx).WarnContext(ctx, "could not record product view", "error", err.Error())
		return false
	}
	return created
}
