package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/neyamat7/pos-inventory-sub000/internal/domain/shared"
	"github.com/neyamat7/pos-inventory-sub000/internal/domain/trade"
	"github.com/redis/go-redis/v9"
)

const defaultKeyPrefix = "pos:cart:"

// RedisCartStore implements trade.CartSessionStore using Redis. Sessions
// are stored as json and expire ttl after their last save.
type RedisCartStore struct {
	client    *redis.Client
	keyPrefix string
	ttl       time.Duration
}

// RedisConfig holds Redis connection configuration
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
	TTL      time.Duration
}

// NewRedisCartStore connects to Redis and verifies the connection
func NewRedisCartStore(cfg RedisConfig) (*RedisCartStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return NewRedisCartStoreWithClient(client, "", cfg.TTL), nil
}

// NewRedisCartStoreWithClient creates a store over an existing client
func NewRedisCartStoreWithClient(client *redis.Client, keyPrefix string, ttl time.Duration) *RedisCartStore {
	if keyPrefix == "" {
		keyPrefix = defaultKeyPrefix
	}
	return &RedisCartStore{client: client, keyPrefix: keyPrefix, ttl: ttl}
}

// Load returns the session or shared.ErrNotFound
func (s *RedisCartStore) Load(ctx context.Context, id string) (*trade.CartSession, error) {
	data, err := s.client.Get(ctx, s.keyPrefix+id).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, shared.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load cart session: %w", err)
	}

	var session trade.CartSession
	if err := json.Unmarshal(data, &session); err != nil {
		return nil, fmt.Errorf("failed to decode cart session: %w", err)
	}
	return &session, nil
}

// Save writes the session and refreshes its expiry. The stored version is
// checked under WATCH so a save racing another one fails instead of
// overwriting it.
func (s *RedisCartStore) Save(ctx context.Context, session *trade.CartSession) error {
	key := s.keyPrefix + session.ID
	next := *session
	next.Version++
	data, err := json.Marshal(&next)
	if err != nil {
		return fmt.Errorf("failed to encode cart session: %w", err)
	}

	err = s.client.Watch(ctx, func(tx *redis.Tx) error {
		current, err := storedVersion(ctx, tx, key)
		if err != nil {
			return err
		}
		if current != session.Version {
			return shared.ErrConcurrentModification
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, data, s.ttl)
			return nil
		})
		return err
	}, key)
	if errors.Is(err, redis.TxFailedErr) {
		return shared.ErrConcurrentModification
	}
	if errors.Is(err, shared.ErrConcurrentModification) {
		return err
	}
	if err != nil {
		return fmt.Errorf("failed to save cart session: %w", err)
	}
	session.Version = next.Version
	return nil
}

func storedVersion(ctx context.Context, tx *redis.Tx, key string) (int64, error) {
	data, err := tx.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	var stored struct {
		Version int64 `json:"version"`
	}
	if err := json.Unmarshal(data, &stored); err != nil {
		return 0, fmt.Errorf("failed to decode cart session: %w", err)
	}
	return stored.Version, nil
}

// Delete removes the session. Deleting an unknown session is not an error.
func (s *RedisCartStore) Delete(ctx context.Context, id string) error {
	if err := s.client.Del(ctx, s.keyPrefix+id).Err(); err != nil {
		return fmt.Errorf("failed to delete cart session: %w", err)
	}
	return nil
}

// Ping checks that Redis is reachable
func (s *RedisCartStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

// Close closes the Redis client
func (s *RedisCartStore) Close() error {
	return s.client.Close()
}

var _ trade.CartSessionStore = (*RedisCartStore)(nil)
