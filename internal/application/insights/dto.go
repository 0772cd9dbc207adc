package insights

import (
	"time"

	"github.com/shopsight/backend/internal/domain/insights"
)

// SentimentCountsResponse is the sentiment distribution over all
// classified reviews
type SentimentCountsResponse struct {
	Positive  int64     `json:"positive"`
	Negative  int64     `json:"negative"`
	Neutral   int64     `json:"neutral"`
	Mixed     int64     `json:"mixed"`
	Total     int64     `json:"total"`
	UpdatedAt time.Time `json:"updated_at"`
}

// GeneralAggregatesResponse is the store-wide entity totals
type GeneralAggregatesResponse struct {
	TotalProducts int64     `json:"total_products"`
	TotalReviews  int64     `json:"total_reviews"`
	TotalProfiles int64     `json:"total_profiles"`
	TotalPayments int64     `json:"total_payments"`
	AverageRating float64   `json:"average_rating"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// StatusCountsResponse is the product count per lifecycle status
type StatusCountsResponse struct {
	Draft     int64     `json:"draft"`
	Active    int64     `json:"active"`
	Archived  int64     `json:"archived"`
	Total     int64     `json:"total"`
	UpdatedAt time.Time `json:"updated_at"`
}

// OutboxStatsResponse reports delivery pipeline health by entry status
type OutboxStatsResponse struct {
	Pending    int64 `json:"pending"`
	Processing int64 `json:"processing"`
	Sent       int64 `json:"sent"`
	Failed     int64 `json:"failed"`
	Dead       int64 `json:"dead"`
}

// ToSentimentCountsResponse converts the domain row to a response DTO
func ToSentimentCountsResponse(c *insights.SentimentCounts) SentimentCountsResponse {
	return SentimentCountsResponse{
		Positive:  c.Positive,
		Negative:  c.Negative,
		Neutral:   c.Neutral,
		Mixed:     c.Mixed,
		Total:     c.Total(),
		UpdatedAt: c.UpdatedAt,
	}
}

// ToGeneralAggregatesResponse converts the domain row to a response DTO
func ToGeneralAggregatesResponse(g *insights.GeneralAggregates) GeneralAggregatesResponse {
	return GeneralAggregatesResponse{
		TotalProducts: g.TotalProducts,
		TotalReviews:  g.TotalReviews,
		TotalProfiles: g.TotalProfiles,
		TotalPayments: g.TotalPayments,
		AverageRating: g.AverageRating(),
		UpdatedAt:     g.UpdatedAt,
	}
}

// ToStatusCountsResponse converts the domain row to a response DTO
func ToStatusCountsResponse(c *insights.StatusCounts) StatusCountsResponse {
	return StatusCountsResponse{
		Draft:     c.Draft,
		Active:    c.Active,
		Archived:  c.Archived,
		Total:     c.Total(),
		UpdatedAt: c.UpdatedAt,
	}
}
