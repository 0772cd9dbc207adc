package insights

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopsight/backend/internal/domain/insights"
	"github.com/shopsight/backend/internal/domain/review"
	"github.com/shopsight/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// SentimentHandler reacts to review changes: it runs the analyzer over
// new review text, stores the verdict on the review and keeps the
// sentiment distribution row in step.
type SentimentHandler struct {
	reviewRepo   review.ReviewRepository
	insightsRepo insights.InsightsRepository
	analyzer     Analyzer
	logger       *zap.Logger
}

// NewSentimentHandler creates a new handler for review sentiment analysis
func NewSentimentHandler(
	reviewRepo review.ReviewRepository,
	insightsRepo insights.InsightsRepository,
	analyzer Analyzer,
	logger *zap.Logger,
) *SentimentHandler {
	return &SentimentHandler{
		reviewRepo:   reviewRepo,
		insightsRepo: insightsRepo,
		analyzer:     analyzer,
		logger:       logger,
	}
}

// EventTypes returns the event types this handler is interested in
func (h *SentimentHandler) EventTypes() []string {
	return []string{
		review.EventTypeReviewCreated,
		review.EventTypeReviewUpdated,
		review.EventTypeReviewDeleted,
	}
}

// Handle processes a review change event
func (h *SentimentHandler) Handle(ctx context.Context, event shared.DomainEvent) error {
	switch e := event.(type) {
	case *review.ReviewCreatedEvent:
		return h.analyzeAndCount(ctx, e.ReviewID, e.Body)
	case *review.ReviewUpdatedEvent:
		// Retire the old class before the new text is classified
		if e.OldSentiment.IsAssigned() {
			if err := h.insightsRepo.AddSentiment(ctx, e.OldSentiment, -1); err != nil {
				return err
			}
		}
		return h.analyzeAndCount(ctx, e.ReviewID, e.Body)
	case *review.ReviewDeletedEvent:
		if !e.Sentiment.IsAssigned() {
			return nil
		}
		return h.insightsRepo.AddSentiment(ctx, e.Sentiment, -1)
	default:
		h.logger.Error("unexpected event type",
			zap.String("actual", event.EventType()),
		)
		return fmt.Errorf("unexpected event type: %s", event.EventType())
	}
}

// analyzeAndCount classifies the text, stores the verdict on the review
// and increments the matching distribution bucket
func (h *SentimentHandler) analyzeAndCount(ctx context.Context, reviewID uuid.UUID, body string) error {
	rev, err := h.reviewRepo.FindByID(ctx, reviewID)
	if err != nil {
		// The review may have been deleted before the event was
		// delivered; nothing left to classify.
		if errors.Is(err, shared.ErrNotFound) {
			h.logger.Debug("review gone before analysis", zap.String("review_id", reviewID.String()))
			return nil
		}
		return err
	}

	if !rev.NeedsAnalysis() {
		h.logger.Debug("review already analyzed, skipping",
			zap.String("review_id", rev.ID.String()),
			zap.String("sentiment", string(rev.Sentiment)),
		)
		return nil
	}

	result, err := h.analyzer.Analyze(ctx, body)
	if err != nil {
		return fmt.Errorf("sentiment analysis failed: %w", err)
	}

	scores := ""
	if len(result.Scores) > 0 {
		if b, err := json.Marshal(result.Scores); err == nil {
			scores = string(b)
		}
	}

	if err := rev.AssignSentiment(result.Sentiment, scores); err != nil {
		return err
	}

	if err := h.reviewRepo.Save(ctx, rev); err != nil {
		return err
	}

	if err := h.insightsRepo.AddSentiment(ctx, result.Sentiment, 1); err != nil {
		return err
	}

	h.logger.Info("review sentiment assigned",
		zap.String("review_id", rev.ID.String()),
		zap.String("sentiment", string(result.Sentiment)),
	)

	return nil
}

// Ensure SentimentHandler implements shared.EventHandler
var _ shared.EventHandler = (*SentimentHandler)(nil)
