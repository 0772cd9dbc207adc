package review

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopsight/backend/internal/domain/review"
)

// CreateReviewRequest represents a request to submit a review
type CreateReviewRequest struct {
	ProductID uuid.UUID `json:"product_id" binding:"required"`
	Rating    int       `json:"rating" binding:"required,min=1,max=5" example:"4"`
	Title     string    `json:"title" binding:"max=200"`
	Body      string    `json:"body" binding:"required,min=1,max=5000"`
}

// UpdateReviewRequest represents a request to edit a review
type UpdateReviewRequest struct {
	Rating *int    `json:"rating" binding:"omitempty,min=1,max=5"`
	Title  *string `json:"title" binding:"omitempty,max=200"`
	Body   *string `json:"body" binding:"omitempty,min=1,max=5000"`
}

// ReviewResponse represents a review in API responses
type ReviewResponse struct {
	ID              uuid.UUID  `json:"id"`
	ProductID       uuid.UUID  `json:"product_id"`
	OwnerID         uuid.UUID  `json:"owner_id"`
	Rating          int        `json:"rating"`
	Title           string     `json:"title"`
	Body            string     `json:"body"`
	Sentiment       string     `json:"sentiment"`
	SentimentScores string     `json:"sentiment_scores,omitempty"`
	AnalyzedAt      *time.Time `json:"analyzed_at,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
	Version         int        `json:"version"`
}

// ReviewListFilter represents filter options for review listings
type ReviewListFilter struct {
	Search    string `form:"search"`
	Sentiment string `form:"sentiment" binding:"omitempty,oneof=pending positive negative neutral mixed"`
	Rating    *int   `form:"rating" binding:"omitempty,min=1,max=5"`
	MinRating *int   `form:"min_rating" binding:"omitempty,min=1,max=5"`
	Page      int    `form:"page" binding:"min=0"`
	PageSize  int    `form:"page_size" binding:"min=0,max=100"`
	OrderBy   string `form:"order_by" binding:"omitempty,oneof=created_at updated_at rating"`
	OrderDir  string `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// ToReviewResponse converts a domain review to a response DTO
func ToReviewResponse(r *review.Review) ReviewResponse {
	return ReviewResponse{
		ID:              r.ID,
		ProductID:       r.ProductID,
		OwnerID:         r.OwnerID,
		Rating:          r.Rating,
		Title:           r.Title,
		Body:            r.Body,
		Sentiment:       string(r.Sentiment),
		SentimentScores: r.SentimentScores,
		AnalyzedAt:      r.AnalyzedAt,
		CreatedAt:       r.CreatedAt,
		UpdatedAt:       r.UpdatedAt,
		Version:         r.Version,
	}
}

// ToReviewResponses converts a slice of domain reviews
func ToReviewResponses(reviews []review.Review) []ReviewResponse {
	responses := make([]ReviewResponse, len(reviews))
	for i := range reviews {
		responses[i] = ToReviewResponse(&reviews[i])
	}
	return responses
}
