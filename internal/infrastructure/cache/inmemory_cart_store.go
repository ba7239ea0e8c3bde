package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/neyamat7/pos-inventory-sub000/internal/domain/shared"
	"github.com/neyamat7/pos-inventory-sub000/internal/domain/trade"
)

type cartEntry struct {
	data      []byte
	version   int64
	expiresAt time.Time
}

// InMemoryCartStore implements trade.CartSessionStore with a map. Sessions
// are copied through json so callers never share state with the store.
// Suitable for single instance deployments and tests.
type InMemoryCartStore struct {
	mu        sync.RWMutex
	entries   map[string]cartEntry
	ttl       time.Duration
	stopChan  chan struct{}
	wg        sync.WaitGroup
	closeOnce sync.Once
}

// NewInMemoryCartStore creates a store whose sessions expire ttl after
// their last save. A zero ttl keeps sessions forever.
func NewInMemoryCartStore(ttl time.Duration) *InMemoryCartStore {
	s := &InMemoryCartStore{
		entries:  make(map[string]cartEntry),
		ttl:      ttl,
		stopChan: make(chan struct{}),
	}
	if ttl > 0 {
		s.wg.Add(1)
		go s.cleanupLoop()
	}
	return s
}

// Load returns the session or shared.ErrNotFound
func (s *InMemoryCartStore) Load(_ context.Context, id string) (*trade.CartSession, error) {
	s.mu.RLock()
	e, ok := s.entries[id]
	s.mu.RUnlock()

	if !ok || s.expired(e, time.Now()) {
		return nil, shared.ErrNotFound
	}

	var session trade.CartSession
	if err := json.Unmarshal(e.data, &session); err != nil {
		return nil, fmt.Errorf("failed to decode cart session: %w", err)
	}
	return &session, nil
}

// Save stores a copy of the session when no other save happened since it
// was loaded
func (s *InMemoryCartStore) Save(_ context.Context, session *trade.CartSession) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	var current int64
	if e, ok := s.entries[session.ID]; ok && !s.expired(e, now) {
		current = e.version
	}
	if current != session.Version {
		return shared.ErrConcurrentModification
	}

	session.Version++
	data, err := json.Marshal(session)
	if err != nil {
		session.Version--
		return fmt.Errorf("failed to encode cart session: %w", err)
	}

	e := cartEntry{data: data, version: session.Version}
	if s.ttl > 0 {
		e.expiresAt = now.Add(s.ttl)
	}
	s.entries[session.ID] = e
	return nil
}

// Delete removes the session
func (s *InMemoryCartStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	delete(s.entries, id)
	s.mu.Unlock()
	return nil
}

// Size returns the number of stored sessions, expired ones included until
// the next cleanup
func (s *InMemoryCartStore) Size() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

// Close stops the cleanup goroutine. Safe to call multiple times.
func (s *InMemoryCartStore) Close() error {
	s.closeOnce.Do(func() {
		close(s.stopChan)
		s.wg.Wait()
	})
	return nil
}

func (s *InMemoryCartStore) expired(e cartEntry, now time.Time) bool {
	return !e.expiresAt.IsZero() && now.After(e.expiresAt)
}

func (s *InMemoryCartStore) cleanupLoop() {
	defer s.wg.Done()

	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-s.stopChan:
			return
		case <-ticker.C:
			s.cleanup()
		}
	}
}

func (s *InMemoryCartStore) cleanup() {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	for id, e := range s.entries {
		if s.expired(e, now) {
			delete(s.entries, id)
		}
	}
}

var _ trade.CartSessionStore = (*InMemoryCartStore)(nil)
