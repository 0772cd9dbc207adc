package event

import (
	"github.com/shopsight/backend/internal/domain/catalog"
	"github.com/shopsight/backend/internal/domain/payments"
	"github.com/shopsight/backend/internal/domain/profile"
	"github.com/shopsight/backend/internal/domain/review"
)

// RegisterAllEvents registers all domain event types with the serializer
// This is required for the OutboxProcessor to deserialize events from the outbox table
func RegisterAllEvents(serializer *EventSerializer) {
	// Catalog domain events
	serializer.Register(catalog.EventTypeProductCreated, &catalog.ProductCreatedEvent{})
	serializer.Register(catalog.EventTypeProductUpdated, &catalog.ProductUpdatedEvent{})
	serializer.Register(catalog.EventTypeProductStatusChanged, &catalog.ProductStatusChangedEvent{})
	serializer.Register(catalog.EventTypeProductPriceChanged, &catalog.ProductPriceChangedEvent{})
	serializer.Register(catalog.EventTypeProductArchived, &catalog.ProductArchivedEvent{})
	serializer.Register(catalog.EventTypeProductDeleted, &catalog.ProductDeletedEvent{})

	// Review domain events
	serializer.Register(review.EventTypeReviewCreated, &review.ReviewCreatedEvent{})
	serializer.Register(review.EventTypeReviewUpdated, &review.ReviewUpdatedEvent{})
	serializer.Register(review.EventTypeReviewDeleted, &review.ReviewDeletedEvent{})

	// Profile domain events
	serializer.Register(profile.EventTypeProfileCreated, &profile.ProfileCreatedEvent{})
	serializer.Register(profile.EventTypeProfileUpdated, &profile.ProfileUpdatedEvent{})
	serializer.Register(profile.EventTypeProfileDeleted, &profile.ProfileDeletedEvent{})

	// Payments domain events
	serializer.Register(payments.EventTypePaymentRecorded, &payments.PaymentRecordedEvent{})
}
