package fetch

import (
	"context"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/yasi76/namesift/internal/entity"
	"github.com/yasi76/namesift/internal/logger"
	"github.com/yasi76/namesift/internal/normalize"
)

// CachingFetcher wraps a Fetcher with a TTL page cache keyed by normalized
// URL, so repeated development runs do not hammer the same sites. The cache
// is an optimization, not a correctness mechanism: concurrent misses for
// one key may both fetch, and the later write wins.
type CachingFetcher struct {
	inner Fetcher
	cache *gocache.Cache
	log   logger.Interface
}

// NewCaching wraps inner with a cache holding pages for ttl.
func NewCaching(inner Fetcher, ttl time.Duration, log logger.Interface) *CachingFetcher {
	return &CachingFetcher{
		inner: inner,
		cache: gocache.New(ttl, ttl),
		log:   log.WithComponent("fetch_cache"),
	}
}

// Fetch implements Fetcher. Only successful fetches are cached; failures
// stay retryable.
func (c *CachingFetcher) Fetch(ctx context.Context, url string) (*entity.PageContent, error) {
	key := normalize.URL(url)

	if hit, ok := c.cache.Get(key); ok {
		if page, ok := hit.(*entity.PageContent); ok {
			c.log.Debug("cache hit", "url", url)
			return page, nil
		}
	}

	page, err := c.inner.Fetch(ctx, url)
	if err != nil {
		return nil, err
	}

	c.cache.SetDefault(key, page)
	return page, nil
}
