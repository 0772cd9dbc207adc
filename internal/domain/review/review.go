package review

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopsight/backend/internal/domain/shared"
)

// Sentiment is the classification assigned to a review's text
type Sentiment string

const (
	SentimentPending  Sentiment = "pending"
	SentimentPositive Sentiment = "positive"
	SentimentNegative Sentiment = "negative"
	SentimentNeutral  Sentiment = "neutral"
	SentimentMixed    Sentiment = "mixed"
)

// IsValid returns true for a known sentiment class
func (s Sentiment) IsValid() bool {
	switch s {
	case SentimentPending, SentimentPositive, SentimentNegative, SentimentNeutral, SentimentMixed:
		return true
	}
	return false
}

// IsAssigned returns true once analysis has produced a final class
func (s Sentiment) IsAssigned() bool {
	return s.IsValid() && s != SentimentPending
}

// Rating bounds for reviews
const (
	MinRating = 1
	MaxRating = 5
)

// Review represents a customer review of a product
// It is the aggregate root for review-related operations
type Review struct {
	shared.OwnedAggregateRoot
	ProductID       uuid.UUID `gorm:"type:uuid;not null;index"`
	Rating          int       `gorm:"not null"`
	Title           string    `gorm:"type:varchar(200)"`
	Body            string    `gorm:"type:text;not null"`
	Sentiment       Sentiment `gorm:"type:varchar(20);not null;default:'pending';index"`
	SentimentScores string    `gorm:"type:jsonb"` // analyzer confidence per class
	AnalyzedAt      *time.Time
}

// TableName returns the table name for GORM
func (Review) TableName() string {
	return "reviews"
}

// NewReview creates a new review awaiting sentiment analysis
func NewReview(ownerID, productID uuid.UUID, rating int, title, body string) (*Review, error) {
	if err := validateRating(rating); err != nil {
		return nil, err
	}
	if err := validateTitle(title); err != nil {
		return nil, err
	}
	if err := validateBody(body); err != nil {
		return nil, err
	}

	review := &Review{
		OwnedAggregateRoot: shared.NewOwnedAggregateRoot(ownerID),
		ProductID:          productID,
		Rating:             rating,
		Title:              title,
		Body:               body,
		Sentiment:          SentimentPending,
	}

	review.AddDomainEvent(NewReviewCreatedEvent(review))

	return review, nil
}

// Update replaces the review content. The stored sentiment no longer
// describes the new text, so it is reset to pending for re-analysis.
func (r *Review) Update(rating int, title, body string) error {
	if err := validateRating(rating); err != nil {
		return err
	}
	if err := validateTitle(title); err != nil {
		return err
	}
	if err := validateBody(body); err != nil {
		return err
	}

	oldRating := r.Rating
	oldSentiment := r.Sentiment

	r.Rating = rating
	r.Title = title
	r.Body = body
	r.Sentiment = SentimentPending
	r.SentimentScores = ""
	r.AnalyzedAt = nil
	r.UpdatedAt = time.Now()
	r.IncrementVersion()

	r.AddDomainEvent(NewReviewUpdatedEvent(r, oldRating, oldSentiment))

	return nil
}

// AssignSentiment records the analyzer's verdict for the current text.
// Called by the sentiment trigger, not by API callers.
func (r *Review) AssignSentiment(sentiment Sentiment, scores string) error {
	if !sentiment.IsAssigned() {
		return shared.NewDomainError("INVALID_SENTIMENT", "Sentiment must be an assigned class")
	}

	now := time.Now()
	r.Sentiment = sentiment
	r.SentimentScores = scores
	r.AnalyzedAt = &now
	r.UpdatedAt = now
	r.IncrementVersion()

	return nil
}

// MarkDeleted records the deletion event before the row is removed
func (r *Review) MarkDeleted() {
	r.AddDomainEvent(NewReviewDeletedEvent(r))
}

// NeedsAnalysis returns true while the review awaits sentiment analysis
func (r *Review) NeedsAnalysis() bool {
	return r.Sentiment == SentimentPending
}

// validateRating validates the star rating
func validateRating(rating int) error {
	if rating < MinRating || rating > MaxRating {
		return shared.NewDomainError("INVALID_RATING", "Rating must be between 1 and 5")
	}
	return nil
}

// validateTitle validates the review title
func validateTitle(title string) error {
	if len(title) > 200 {
		return shared.NewDomainError("INVALID_TITLE", "Title cannot exceed 200 characters")
	}
	return nil
}

// validateBody validates the review body
func validateBody(body string) error {
	if body == "" {
		return shared.NewDomainError("INVALID_BODY", "Review body cannot be empty")
	}
	if len(body) > 5000 {
		return shared.NewDomainError("INVALID_BODY", "Review body cannot exceed 5000 characters")
	}
	return nil
}
