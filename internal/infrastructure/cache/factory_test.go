package cache

import (
	"testing"
	"time"

	"github.com/neyamat7/pos-inventory-sub000/internal/infrastructure/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

// unreachable points at a port nothing listens on
var unreachable = config.RedisConfig{Enabled: true, Host: "127.0.0.1", Port: 1, CartTTL: time.Hour}

func TestCartStoreFactory_CreateStore(t *testing.T) {
	t.Run("redis disabled uses memory", func(t *testing.T) {
		store, err := NewCartStoreFactory(config.RedisConfig{Enabled: false}).CreateStore()
		require.NoError(t, err)
		defer store.Close()

		assert.IsType(t, &InMemoryCartStore{}, store)
	})

	t.Run("falls back when redis is unreachable", func(t *testing.T) {
		core, logs := observer.New(zapcore.WarnLevel)
		store, err := NewCartStoreFactory(unreachable, WithLogger(zap.New(core))).CreateStore()
		require.NoError(t, err)
		defer store.Close()

		assert.IsType(t, &InMemoryCartStore{}, store)
		assert.Equal(t, 1, logs.FilterMessageSnippet("falling back").Len())
	})

	t.Run("fails without fallback", func(t *testing.T) {
		store, err := NewCartStoreFactory(unreachable, WithInMemoryFallback(false)).CreateStore()
		assert.Error(t, err)
		assert.Nil(t, store)
	})
}
