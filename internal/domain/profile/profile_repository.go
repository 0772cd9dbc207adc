package profile

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopsight/backend/internal/domain/shared"
)

// ProfileRepository defines the interface for user profile persistence
type ProfileRepository interface {
	// FindByID finds a profile by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*UserProfile, error)

	// FindByOwner finds the profile owned by a user
	FindByOwner(ctx context.Context, ownerID uuid.UUID) (*UserProfile, error)

	// FindByEmail finds a profile by email address
	FindByEmail(ctx context.Context, email string) (*UserProfile, error)

	// FindAll finds all profiles matching the filter
	FindAll(ctx context.Context, filter shared.Filter) ([]UserProfile, error)

	// Save creates or updates a profile and writes its pending
	// domain events to the outbox in the same transaction
	Save(ctx context.Context, p *UserProfile) error

	// Delete removes a profile and writes its pending domain events
	// to the outbox in the same transaction
	Delete(ctx context.Context, p *UserProfile) error

	// Count counts profiles matching the filter
	Count(ctx context.Context, filter shared.Filter) (int64, error)

	// ExistsByOwner checks whether the user already has a profile
	ExistsByOwner(ctx context.Context, ownerID uuid.UUID) (bool, error)
}
