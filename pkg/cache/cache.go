package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"hotel-booking/config"
	"hotel-booking/pkg/logger"
	"hotel-booking/pkg/redis"
)

const (
	BackendRedis  = "redis"
	BackendMemory = "memory"
)

// Cache stores raw bytes under keys namespaced by a prefix.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Flush(ctx context.Context) error
	Close() error
}

// Factory opens a Cache backend.
type Factory func(ctx context.Context) (Cache, error)

// Provider owns the process-wide cache. Init runs the factory at most once,
// whichever call site gets there first.
type Provider struct {
	once    sync.Once
	factory Factory
	log     *logger.Logger

	mu    sync.RWMutex
	cache Cache
	err   error
}

func NewProvider(factory Factory, log *logger.Logger) *Provider {
	return &Provider{factory: factory, log: log}
}

// NewProviderFromConfig picks the backend named in cfg.Cache.Backend.
func NewProviderFromConfig(cfg *config.Config, log *logger.Logger) *Provider {
	return NewProvider(FactoryFromConfig(cfg), log)
}

func FactoryFromConfig(cfg *config.Config) Factory {
	return func(ctx context.Context) (Cache, error) {
		switch cfg.Cache.Backend {
		case BackendMemory:
			return NewMemoryCache(cfg.Cache.Prefix, cfg.Cache.DefaultExpiration, cfg.Cache.CleanupInterval), nil
		case BackendRedis, "":
			client, err := redis.NewClient(ctx, cfg.Redis)
			if err != nil {
				return nil, err
			}
			return NewRedisCache(client, cfg.Cache.Prefix), nil
		default:
			return nil, fmt.Errorf("unknown cache backend %q", cfg.Cache.Backend)
		}
	}
}

func (p *Provider) Init(ctx context.Context) error {
	p.once.Do(func() {
		c, err := p.factory(ctx)
		p.mu.Lock()
		p.cache, p.err = c, err
		p.mu.Unlock()
		if err != nil {
			p.log.ErrorContext(ctx, "Failed to initialize cache", logger.ErrorField(err))
			return
		}
		p.log.InfoContext(ctx, "Cache initialized")
	})
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.err
}

// Cache returns the backend once Init succeeded.
func (p *Provider) Cache() (Cache, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.cache, p.cache != nil
}

func (p *Provider) Ready() bool {
	_, ok := p.Cache()
	return ok
}

func (p *Provider) Close() error {
	c, ok := p.Cache()
	if !ok {
		return nil
	}
	return c.Close()
}

// GetJSON decodes a cached JSON value into T.
func GetJSON[T any](ctx context.Context, c Cache, key string) (T, bool, error) {
	var zero T
	raw, found, err := c.Get(ctx, key)
	if err != nil || !found {
		return zero, false, err
	}
	var val T
	if err := json.Unmarshal(raw, &val); err != nil {
		return zero, false, fmt.Errorf("failed to decode cached value %q: %w", key, err)
	}
	return val, true, nil
}

func SetJSON(ctx context.Context, c Cache, key string, value interface{}, ttl time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to encode cache value %q: %w", key, err)
	}
	return c.Set(ctx, key, raw, ttl)
}

func prefixed(prefix, key string) string {
	if prefix == "" {
		return key
	}
	return prefix + ":" + key
}
