package subscription

import (
	"context"
	"sync"
)

// ProfileStore reads subscription profiles.
type ProfileStore interface {
	// GetProfile returns ErrProfileNotFound when the user has no row.
	GetProfile(ctx context.Context, userID string) (*Profile, error)
}

// MemoryStore is a ProfileStore backed by a map, used in development and tests.
type MemoryStore struct {
	mu       sync.RWMutex
	profiles map[string]Profile
}

// NewMemoryStore returns a store seeded with profiles.
func NewMemoryStore(profiles ...Profile) *MemoryStore {
	s := &MemoryStore{profiles: make(map[string]Profile, len(profiles))}
	for _, p := range profiles {
		s.profiles[p.UserID] = p
	}
	return s
}

func (s *MemoryStore) GetProfile(_ context.Context, userID string) (*Profile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.profiles[userID]
	if !ok {
		return nil, ErrProfileNotFound
	}
	return &p, nil
}

// Put inserts or replaces a profile.
func (s *MemoryStore) Put(p Profile) {
	s.mu.Lock()
	s.profiles[p.UserID] = p
	s.mu.Unlock()
}
