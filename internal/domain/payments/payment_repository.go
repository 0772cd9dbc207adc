package payments

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopsight/backend/internal/domain/shared"
)

// PaymentRepository defines the interface for payment record persistence
type PaymentRepository interface {
	// FindByID finds a payment record by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*PaymentRecord, error)

	// FindByProviderEventID finds a record by the provider's event ID
	FindByProviderEventID(ctx context.Context, providerEventID string) (*PaymentRecord, error)

	// FindByPaymentIntent finds records belonging to a payment intent
	FindByPaymentIntent(ctx context.Context, intentID string) ([]PaymentRecord, error)

	// FindAll finds all payment records matching the filter
	FindAll(ctx context.Context, filter shared.Filter) ([]PaymentRecord, error)

	// Save creates or updates a payment record and writes its pending
	// domain events to the outbox in the same transaction
	Save(ctx context.Context, record *PaymentRecord) error

	// Count counts payment records matching the filter
	Count(ctx context.Context, filter shared.Filter) (int64, error)
}
