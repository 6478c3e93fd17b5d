package oracle

import (
	"fmt"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// ResponseCache memoizes raw oracle responses keyed by model and framework
// description, so repeated runs over the same frameworks do not re-query.
type ResponseCache struct {
	cache *gocache.Cache
}

// NewResponseCache creates a response cache with the given default TTL.
func NewResponseCache(defaultTTL time.Duration) *ResponseCache {
	cleanup := defaultTTL
	if cleanup < time.Minute {
		cleanup = time.Minute
	}
	return &ResponseCache{
		cache: gocache.New(defaultTTL, cleanup),
	}
}

// Key builds the cache key for a model/description pair.
func Key(model, description string) string {
	return fmt.Sprintf("%s|%s", model, description)
}

// Get retrieves a cached raw response.
func (c *ResponseCache) Get(key string) (string, bool) {
	if val, found := c.cache.Get(key); found {
		return val.(string), true
	}
	return "", false
}

// Set stores a raw response under the given key using the default TTL.
func (c *ResponseCache) Set(key, raw string) {
	c.cache.SetDefault(key, raw)
}

// Clear removes all cached responses.
func (c *ResponseCache) Clear() {
	c.cache.Flush()
}
