package insightstore

import (
	"context"
	"sync"
	"time"

	"github.com/lunara/astro-api/internal/domain/horoscope"
)

type entry struct {
	payload   []byte
	expiresAt time.Time
}

// MemoryStore is an in-memory implementation of the horoscope store for
// tests/dev. Expiry here is a second line of defense; the cache envelope
// timestamp remains the authoritative freshness check.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string]entry
	now     func() time.Time
}

// NewMemoryStore constructs a store backed by process memory.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		entries: make(map[string]entry),
		now:     time.Now,
	}
}

// Get implements horoscope.Store.
func (s *MemoryStore) Get(_ context.Context, key string) ([]byte, bool, error) {
	s.mu.RLock()
	record, ok := s.entries[key]
	s.mu.RUnlock()
	if !ok {
		return nil, false, nil
	}
	if s.hasExpired(record.expiresAt) {
		s.mu.Lock()
		delete(s.entries, key)
		s.mu.Unlock()
		return nil, false, nil
	}
	payload := make([]byte, len(record.payload))
	copy(payload, record.payload)
	return payload, true, nil
}

// Set caches the payload with optional TTL.
func (s *MemoryStore) Set(_ context.Context, key string, payload []byte, ttl time.Duration) error {
	stored := make([]byte, len(payload))
	copy(stored, payload)
	exp := time.Time{}
	if ttl > 0 {
		exp = s.now().Add(ttl)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[key] = entry{payload: stored, expiresAt: exp}
	return nil
}

func (s *MemoryStore) hasExpired(ts time.Time) bool {
	if ts.IsZero() {
		return false
	}
	return ts.Before(s.now())
}

var _ horoscope.Store = (*MemoryStore)(nil)
