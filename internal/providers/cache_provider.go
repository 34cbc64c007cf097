package providers

import (
	"time"
	"unsafe"

	"github.com/coocood/freecache"

	"hnblocks/internal/structures"
)

type CacheProviderInterface interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte, ttl time.Duration) error
	Del(key string)
}

type CacheProvider struct {
	cache *freecache.Cache
}

func NewCacheProvider(conf *structures.Config, logger Logger) CacheProviderInterface {
	if !conf.Cache.Enabled || conf.Cache.Size <= 0 {
		logger.Infof(TypeApp, "Cache disabled")
		return &noopCache{}
	}

	sizeBytes := conf.Cache.Size * 1024 * 1024
	logger.Infof(TypeApp, "Cache initialized: %dMB, TTL=%s, recent TTL=%s", conf.Cache.Size, conf.Cache.TTL, conf.Cache.RecentTTL)

	return &CacheProvider{
		cache: freecache.NewCache(sizeBytes),
	}
}

// unsafeStringToBytes converts string to []byte without allocation.
// Safe when the result is only read (not modified), which is the case
// for freecache since it copies keys internally.
func unsafeStringToBytes(s string) []byte {
	if len(s) == 0 {
		return nil
	}
	return unsafe.Slice(unsafe.StringData(s), len(s))
}

func ttlSeconds(ttl time.Duration) int {
	return max(int(ttl.Seconds()), 1)
}

func (c *CacheProvider) Get(key string) ([]byte, bool) {
	val, err := c.cache.Get(unsafeStringToBytes(key))
	if err != nil {
		return nil, false
	}
	return val, true
}

// Set fails with freecache.ErrLargeEntry when value exceeds 1/1024 of the
// cache size.
func (c *CacheProvider) Set(key string, value []byte, ttl time.Duration) error {
	return c.cache.Set(unsafeStringToBytes(key), value, ttlSeconds(ttl))
}

func (c *CacheProvider) Del(key string) {
	c.cache.Del(unsafeStringToBytes(key))
}

type noopCache struct{}

func (n *noopCache) Get(_ string) ([]byte, bool)                  { return nil, false }
func (n *noopCache) Set(_ string, _ []byte, _ time.Duration) error { return nil }
func (n *noopCache) Del(_ string)                                  {}
