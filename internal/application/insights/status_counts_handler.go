package insights

import (
	"context"
	"fmt"

	"github.com/shopsight/backend/internal/domain/catalog"
	"github.com/shopsight/backend/internal/domain/insights"
	"github.com/shopsight/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// StatusCountsHandler maintains the product status distribution row
// from product lifecycle events.
type StatusCountsHandler struct {
	insightsRepo insights.InsightsRepository
	logger       *zap.Logger
}

// NewStatusCountsHandler creates a new handler for the status distribution
func NewStatusCountsHandler(insightsRepo insights.InsightsRepository, logger *zap.Logger) *StatusCountsHandler {
	return &StatusCountsHandler{
		insightsRepo: insightsRepo,
		logger:       logger,
	}
}

// EventTypes returns the event types this handler is interested in
func (h *StatusCountsHandler) EventTypes() []string {
	return []string{
		catalog.EventTypeProductCreated,
		catalog.EventTypeProductStatusChanged,
		catalog.EventTypeProductDeleted,
	}
}

// Handle adjusts the status buckets for a product lifecycle event
func (h *StatusCountsHandler) Handle(ctx context.Context, event shared.DomainEvent) error {
	switch e := event.(type) {
	case *catalog.ProductCreatedEvent:
		if err := h.insightsRepo.AddStatus(ctx, e.Status, 1); err != nil {
			return err
		}
	case *catalog.ProductStatusChangedEvent:
		if err := h.insightsRepo.MoveStatus(ctx, e.OldStatus, e.NewStatus); err != nil {
			return err
		}
	case *catalog.ProductDeletedEvent:
		if err := h.insightsRepo.AddStatus(ctx, e.Status, -1); err != nil {
			return err
		}
	default:
		h.logger.Error("unexpected event type",
			zap.String("actual", event.EventType()),
		)
		return fmt.Errorf("unexpected event type: %s", event.EventType())
	}

	h.logger.Debug("status distribution updated",
		zap.String("event_type", event.EventType()),
		zap.String("aggregate_id", event.AggregateID().String()),
	)

	return nil
}

// Ensure StatusCountsHandler implements shared.EventHandler
var _ shared.EventHandler = (*StatusCountsHandler)(nil)
