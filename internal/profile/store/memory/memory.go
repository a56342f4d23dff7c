// Package memory provides the in-memory profile store. It keeps the default
// deployment dependency-free and is the fixture store for service and handler
// tests.
package memory

import (
	"context"
	"sync"

	"noesis/internal/profile/models"
	id "noesis/pkg/domain"
	"noesis/pkg/platform/sentinel"
)

type InMemoryStore struct {
	mu       sync.RWMutex
	profiles map[id.UserID]*models.Profile
}

func New() *InMemoryStore {
	return &InMemoryStore{profiles: make(map[id.UserID]*models.Profile)}
}

func (s *InMemoryStore) Create(_ context.Context, profile *models.Profile) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.profiles[profile.ID]; exists {
		return sentinel.ErrConflict
	}
	s.profiles[profile.ID] = profile.Clone()
	return nil
}

func (s *InMemoryStore) FindByID(_ context.Context, userID id.UserID) (*models.Profile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if profile, ok := s.profiles[userID]; ok {
		return profile.Clone(), nil
	}
	return nil, sentinel.ErrNotFound
}

// Update holds the write lock across the apply callback so the read-modify-write
// is atomic with respect to other writers. The callback works on a clone; the
// stored value is only replaced when apply succeeds, keeping failed merges
// all-or-nothing.
func (s *InMemoryStore) Update(_ context.Context, userID id.UserID, apply func(*models.Profile) error) (*models.Profile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, ok := s.profiles[userID]
	if !ok {
		return nil, sentinel.ErrNotFound
	}

	candidate := current.Clone()
	if err := apply(candidate); err != nil {
		return nil, err
	}

	s.profiles[userID] = candidate
	return candidate.Clone(), nil
}

func (s *InMemoryStore) Delete(_ context.Context, userID id.UserID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.profiles, userID)
	return nil
}
