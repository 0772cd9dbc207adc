package review

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopsight/backend/internal/domain/shared"
)

// ReviewRepository defines the interface for review persistence
type ReviewRepository interface {
	// FindByID finds a review by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Review, error)

	// FindAll finds all reviews matching the filter
	FindAll(ctx context.Context, filter shared.Filter) ([]Review, error)

	// FindByProduct finds reviews for a product
	FindByProduct(ctx context.Context, productID uuid.UUID, filter shared.Filter) ([]Review, error)

	// FindByOwner finds reviews written by a user
	FindByOwner(ctx context.Context, ownerID uuid.UUID, filter shared.Filter) ([]Review, error)

	// Save creates or updates a review and writes its pending
	// domain events to the outbox in the same transaction
	Save(ctx context.Context, review *Review) error

	// Delete removes a review and writes its pending domain events
	// to the outbox in the same transaction
	Delete(ctx context.Context, review *Review) error

	// Count counts reviews matching the filter
	Count(ctx context.Context, filter shared.Filter) (int64, error)

	// CountByProduct counts reviews for a product
	CountByProduct(ctx context.Context, productID uuid.UUID) (int64, error)
}
