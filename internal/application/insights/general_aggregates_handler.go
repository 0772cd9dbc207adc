package insights

import (
	"context"
	"fmt"

	"github.com/shopsight/backend/internal/domain/catalog"
	"github.com/shopsight/backend/internal/domain/insights"
	"github.com/shopsight/backend/internal/domain/payments"
	"github.com/shopsight/backend/internal/domain/profile"
	"github.com/shopsight/backend/internal/domain/review"
	"github.com/shopsight/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// GeneralAggregatesHandler maintains the store-wide totals row: entity
// counts across products, reviews, profiles and payments, plus the
// running rating sum that backs the average rating.
type GeneralAggregatesHandler struct {
	insightsRepo insights.InsightsRepository
	logger       *zap.Logger
}

// NewGeneralAggregatesHandler creates a new handler for the totals row
func NewGeneralAggregatesHandler(insightsRepo insights.InsightsRepository, logger *zap.Logger) *GeneralAggregatesHandler {
	return &GeneralAggregatesHandler{
		insightsRepo: insightsRepo,
		logger:       logger,
	}
}

// EventTypes returns the event types this handler is interested in
func (h *GeneralAggregatesHandler) EventTypes() []string {
	return []string{
		catalog.EventTypeProductCreated,
		catalog.EventTypeProductDeleted,
		review.EventTypeReviewCreated,
		review.EventTypeReviewUpdated,
		review.EventTypeReviewDeleted,
		profile.EventTypeProfileCreated,
		profile.EventTypeProfileDeleted,
		payments.EventTypePaymentRecorded,
	}
}

// Handle translates a change event into a delta on the totals row
func (h *GeneralAggregatesHandler) Handle(ctx context.Context, event shared.DomainEvent) error {
	var delta insights.GeneralDelta

	switch e := event.(type) {
	case *catalog.ProductCreatedEvent:
		delta.Products = 1
	case *catalog.ProductDeletedEvent:
		delta.Products = -1
	case *review.ReviewCreatedEvent:
		delta.Reviews = 1
		delta.RatingSum = int64(e.Rating)
	case *review.ReviewUpdatedEvent:
		delta.RatingSum = int64(e.NewRating - e.OldRating)
	case *review.ReviewDeletedEvent:
		delta.Reviews = -1
		delta.RatingSum = int64(-e.Rating)
	case *profile.ProfileCreatedEvent:
		delta.Profiles = 1
	case *profile.ProfileDeletedEvent:
		delta.Profiles = -1
	case *payments.PaymentRecordedEvent:
		delta.Payments = 1
	default:
		h.logger.Error("unexpected event type",
			zap.String("actual", event.EventType()),
		)
		return fmt.Errorf("unexpected event type: %s", event.EventType())
	}

	if delta == (insights.GeneralDelta{}) {
		return nil
	}

	if err := h.insightsRepo.ApplyGeneralDelta(ctx, delta); err != nil {
		return fmt.Errorf("failed to apply aggregate delta: %w", err)
	}

	h.logger.Debug("general aggregates updated",
		zap.String("event_type", event.EventType()),
		zap.String("aggregate_id", event.AggregateID().String()),
	)

	return nil
}

// Ensure GeneralAggregatesHandler implements shared.EventHandler
var _ shared.EventHandler = (*GeneralAggregatesHandler)(nil)
