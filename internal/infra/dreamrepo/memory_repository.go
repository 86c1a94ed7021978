package dreamrepo

import (
	"context"
	"sort"
	"sync"

	"github.com/lunara/astro-api/internal/domain/dream"
)

// MemoryRepository provides an in-memory dream store for tests/dev.
type MemoryRepository struct {
	mu     sync.RWMutex
	dreams map[int64][]dream.Dream
}

// NewMemoryRepository constructs a new in-memory repository.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{dreams: make(map[int64][]dream.Dream)}
}

// Save stores the dream entry.
func (r *MemoryRepository) Save(_ context.Context, d dream.Dream) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.dreams[d.UserID] = append(r.dreams[d.UserID], d)
	return nil
}

// ListByUser returns the newest entries for a user.
func (r *MemoryRepository) ListByUser(_ context.Context, userID int64, limit int) ([]dream.Dream, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	entries := r.dreams[userID]
	out := make([]dream.Dream, len(entries))
	copy(out, entries)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

var _ dream.Repository = (*MemoryRepository)(nil)
