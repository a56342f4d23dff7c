// Package store defines the persistence boundary for profiles. Stores are
// interface-driven so the in-memory and Postgres implementations can be
// swapped without touching merge or scoring logic.
package store

import (
	"context"

	"noesis/internal/profile/models"
	id "noesis/pkg/domain"
)

// Store is pure keyed CRUD; no business logic lives here. Implementations
// return pkg/platform/sentinel errors for infrastructure facts and must hand
// out copies so callers can never mutate stored state in place.
type Store interface {
	// Create persists a new profile. Returns sentinel.ErrConflict when the id
	// is already taken.
	Create(ctx context.Context, profile *models.Profile) error

	// FindByID returns a copy of the stored profile, or sentinel.ErrNotFound.
	FindByID(ctx context.Context, userID id.UserID) (*models.Profile, error)

	// Update runs apply against the current stored value and persists the
	// result, holding the store's lock (mutex or SELECT FOR UPDATE) for the
	// whole read-modify-write so concurrent writers to the same id are
	// serialized. An error from apply aborts the write.
	Update(ctx context.Context, userID id.UserID, apply func(*models.Profile) error) (*models.Profile, error)

	// Delete removes a profile. Deleting an absent id is a silent no-op.
	Delete(ctx context.Context, userID id.UserID) error
}
