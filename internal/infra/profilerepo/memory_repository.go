package profilerepo

import (
	"context"
	"sync"
	"time"

	"github.com/lunara/astro-api/internal/domain/profile"
)

// MemoryRepository provides an in-memory profile store for tests/dev.
type MemoryRepository struct {
	mu       sync.RWMutex
	profiles map[int64]profile.Profile
}

// NewMemoryRepository constructs a new in-memory repository.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{profiles: make(map[int64]profile.Profile)}
}

// GetByUserID fetches the profile for a user.
func (r *MemoryRepository) GetByUserID(_ context.Context, userID int64) (profile.Profile, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.profiles[userID]
	return p, ok, nil
}

// Upsert writes the birth data fields, keeping any stored chart intact.
func (r *MemoryRepository) Upsert(_ context.Context, p profile.Profile) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	existing := r.profiles[p.UserID]
	existing.UserID = p.UserID
	existing.BirthDate = p.BirthDate
	existing.BirthTime = p.BirthTime
	existing.BirthLatitude = p.BirthLatitude
	existing.BirthLongitude = p.BirthLongitude
	existing.UpdatedAt = time.Now().UTC()
	r.profiles[p.UserID] = existing
	return nil
}

// SaveChart overwrites the computed signs and chart payload.
func (r *MemoryRepository) SaveChart(_ context.Context, userID int64, update profile.ChartUpdate) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	existing := r.profiles[userID]
	existing.UserID = userID
	existing.SunSign = update.SunSign
	existing.MoonSign = update.MoonSign
	existing.AscendantSign = update.AscendantSign
	existing.AstroData = update.AstroData
	existing.UpdatedAt = time.Now().UTC()
	r.profiles[userID] = existing
	return nil
}

var _ profile.Repository = (*MemoryRepository)(nil)
