package cache

import (
	"time"
)

// CacheService represents a generic cache service. The scraper uses it
// to hold per-product block entries after a storefront rate-limits us.
type CacheService interface {
	// Get retrieves a value from the cache
	Get(key string) ([]byte, error)

	// Set stores a value in the cache with an expiration time
	Set(key string, value []byte, expiration time.Duration) error

	// Delete removes a value from the cache
	Delete(key string) error
}

// BlockKey returns the cache key under which a product's scrape block
// entry is stored.
func BlockKey(productID string) string {
	return "scrape_block:" + productID
}
