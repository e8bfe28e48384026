package cache

import (
	"context"
	"strings"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

type goCache struct {
	prefix   string
	internal *gocache.Cache
}

// NewMemoryCache returns a process-local Cache backed by go-cache.
func NewMemoryCache(prefix string, defaultExpiration, cleanupInterval time.Duration) Cache {
	return &goCache{
		prefix:   prefix,
		internal: gocache.New(defaultExpiration, cleanupInterval),
	}
}

func (c *goCache) Get(_ context.Context, key string) ([]byte, bool, error) {
	val, found := c.internal.Get(prefixed(c.prefix, key))
	if !found {
		return nil, false, nil
	}
	raw, ok := val.([]byte)
	if !ok {
		return nil, false, nil
	}
	return raw, true, nil
}

func (c *goCache) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	if ttl <= 0 {
		ttl = gocache.DefaultExpiration
	}
	c.internal.Set(prefixed(c.prefix, key), value, ttl)
	return nil
}

func (c *goCache) Delete(_ context.Context, key string) error {
	c.internal.Delete(prefixed(c.prefix, key))
	return nil
}

func (c *goCache) Flush(_ context.Context) error {
	if c.prefix == "" {
		c.internal.Flush()
		return nil
	}
	for k := range c.internal.Items() {
		if strings.HasPrefix(k, c.prefix+":") {
			c.internal.Delete(k)
		}
	}
	return nil
}

func (c *goCache) Close() error {
	return nil
}
