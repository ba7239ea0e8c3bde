package cache

import (
	"fmt"
	"io"

	"github.com/neyamat7/pos-inventory-sub000/internal/domain/trade"
	"github.com/neyamat7/pos-inventory-sub000/internal/infrastructure/config"
	"go.uber.org/zap"
)

// ClosableCartStore is a cart store that holds resources
type ClosableCartStore interface {
	trade.CartSessionStore
	io.Closer
}

// CartStoreFactory creates cart session stores based on configuration
type CartStoreFactory struct {
	redisConfig           config.RedisConfig
	logger                *zap.Logger
	allowInMemoryFallback bool
}

// CartStoreFactoryOption is a functional option for configuring the factory
type CartStoreFactoryOption func(*CartStoreFactory)

// WithLogger sets the logger for the factory
func WithLogger(logger *zap.Logger) CartStoreFactoryOption {
	return func(f *CartStoreFactory) {
		f.logger = logger
	}
}

// WithInMemoryFallback controls whether to fall back to the in-memory
// store when Redis is unavailable. Default is true.
func WithInMemoryFallback(allow bool) CartStoreFactoryOption {
	return func(f *CartStoreFactory) {
		f.allowInMemoryFallback = allow
	}
}

// NewCartStoreFactory creates a new factory
func NewCartStoreFactory(cfg config.RedisConfig, opts ...CartStoreFactoryOption) *CartStoreFactory {
	f := &CartStoreFactory{
		redisConfig:           cfg,
		logger:                zap.NewNop(),
		allowInMemoryFallback: true,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// CreateStore returns a Redis store when Redis is enabled and reachable.
// Otherwise it returns an in-memory store, unless fallback is disabled.
func (f *CartStoreFactory) CreateStore() (ClosableCartStore, error) {
	if !f.redisConfig.Enabled {
		f.logger.Info("Redis disabled, using in-memory cart store")
		return NewInMemoryCartStore(f.redisConfig.CartTTL), nil
	}

	store, err := NewRedisCartStore(RedisConfig{
		Addr:     f.redisConfig.Addr(),
		Password: f.redisConfig.Password,
		DB:       f.redisConfig.DB,
		TTL:      f.redisConfig.CartTTL,
	})
	if err == nil {
		f.logger.Info("Using Redis cart store", zap.String("addr", f.redisConfig.Addr()))
		return store, nil
	}

	if !f.allowInMemoryFallback {
		return nil, fmt.Errorf("redis required for cart sessions but unavailable: %w", err)
	}

	f.logger.Warn("Redis unavailable, falling back to in-memory cart store. "+
		"Carts will not be shared between instances.",
		zap.Error(err),
	)
	return NewInMemoryCartStore(f.redisConfig.CartTTL), nil
}
