package review

import (
	"github.com/google/uuid"
	"github.com/shopsight/backend/internal/domain/shared"
)

// Aggregate type constant
const AggregateTypeReview = "Review"

// Event type constants
const (
	EventTypeReviewCreated = "ReviewCreated"
	EventTypeReviewUpdated = "ReviewUpdated"
	EventTypeReviewDeleted = "ReviewDeleted"
)

// ReviewCreatedEvent is published when a new review is submitted
type ReviewCreatedEvent struct {
	shared.BaseDomainEvent
	ReviewID  uuid.UUID `json:"review_id"`
	ProductID uuid.UUID `json:"product_id"`
	OwnerID   uuid.UUID `json:"owner_id"`
	Rating    int       `json:"rating"`
	Body      string    `json:"body"`
}

// NewReviewCreatedEvent creates a new ReviewCreatedEvent
func NewReviewCreatedEvent(r *Review) *ReviewCreatedEvent {
	return &ReviewCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeReviewCreated, AggregateTypeReview, r.ID),
		ReviewID:        r.ID,
		ProductID:       r.ProductID,
		OwnerID:         r.OwnerID,
		Rating:          r.Rating,
		Body:            r.Body,
	}
}

// ReviewUpdatedEvent is published when a review's content changes.
// It carries the previous rating and sentiment so downstream counters
// can retire the old values before the new text is re-analyzed.
type ReviewUpdatedEvent struct {
	shared.BaseDomainEvent
	ReviewID     uuid.UUID `json:"review_id"`
	ProductID    uuid.UUID `json:"product_id"`
	OldRating    int       `json:"old_rating"`
	NewRating    int       `json:"new_rating"`
	OldSentiment Sentiment `json:"old_sentiment"`
	Body         string    `json:"body"`
}

// NewReviewUpdatedEvent creates a new ReviewUpdatedEvent
func NewReviewUpdatedEvent(r *Review, oldRating int, oldSentiment Sentiment) *ReviewUpdatedEvent {
	return &ReviewUpdatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeReviewUpdated, AggregateTypeReview, r.ID),
		ReviewID:        r.ID,
		ProductID:       r.ProductID,
		OldRating:       oldRating,
		NewRating:       r.Rating,
		OldSentiment:    oldSentiment,
		Body:            r.Body,
	}
}

// ReviewDeletedEvent is published when a review is removed.
// Rating and sentiment at deletion time let counters decrement correctly.
type ReviewDeletedEvent struct {
	shared.BaseDomainEvent
	ReviewID  uuid.UUID `json:"review_id"`
	ProductID uuid.UUID `json:"product_id"`
	Rating    int       `json:"rating"`
	Sentiment Sentiment `json:"sentiment"`
}

// NewReviewDeletedEvent creates a new ReviewDeletedEvent
func NewReviewDeletedEvent(r *Review) *ReviewDeletedEvent {
	return &ReviewDeletedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeReviewDeleted, AggregateTypeReview, r.ID),
		ReviewID:        r.ID,
		ProductID:       r.ProductID,
		Rating:          r.Rating,
		Sentiment:       r.Sentiment,
	}
}
