package insights

import (
	"time"

	"github.com/shopsight/backend/internal/domain/catalog"
	"github.com/shopsight/backend/internal/domain/review"
)

// Well-known keys of the singleton aggregate rows. Each row is created
// lazily on first write and updated only by event handlers.
const (
	SentimentCountsKey   = "sentiment-counts"
	GeneralAggregatesKey = "general-aggregates"
	StatusCountsKey      = "product-status-counts"
)

// SentimentCounts tracks how many reviews fall into each sentiment class
type SentimentCounts struct {
	Key       string    `gorm:"type:varchar(50);primaryKey"`
	Positive  int64     `gorm:"not null;default:0"`
	Negative  int64     `gorm:"not null;default:0"`
	Neutral   int64     `gorm:"not null;default:0"`
	Mixed     int64     `gorm:"not null;default:0"`
	UpdatedAt time.Time `gorm:"not null"`
}

// TableName returns the table name for GORM
func (SentimentCounts) TableName() string {
	return "sentiment_counts"
}

// NewSentimentCounts returns the zero-valued singleton row
func NewSentimentCounts() *SentimentCounts {
	return &SentimentCounts{Key: SentimentCountsKey, UpdatedAt: time.Now()}
}

// Add adjusts the counter of one sentiment class, flooring at zero.
// Unassigned classes (pending) are ignored.
func (c *SentimentCounts) Add(class review.Sentiment, delta int64) {
	switch class {
	case review.SentimentPositive:
		c.Positive = floorAdd(c.Positive, delta)
	case review.SentimentNegative:
		c.Negative = floorAdd(c.Negative, delta)
	case review.SentimentNeutral:
		c.Neutral = floorAdd(c.Neutral, delta)
	case review.SentimentMixed:
		c.Mixed = floorAdd(c.Mixed, delta)
	}
	c.UpdatedAt = time.Now()
}

// Total returns the number of classified reviews
func (c *SentimentCounts) Total() int64 {
	return c.Positive + c.Negative + c.Neutral + c.Mixed
}

// GeneralAggregates tracks entity totals across the store
type GeneralAggregates struct {
	Key           string    `gorm:"type:varchar(50);primaryKey"`
	TotalProducts int64     `gorm:"not null;default:0"`
	TotalReviews  int64     `gorm:"not null;default:0"`
	TotalProfiles int64     `gorm:"not null;default:0"`
	TotalPayments int64     `gorm:"not null;default:0"`
	RatingSum     int64     `gorm:"not null;default:0"`
	UpdatedAt     time.Time `gorm:"not null"`
}

// TableName returns the table name for GORM
func (GeneralAggregates) TableName() string {
	return "general_aggregates"
}

// NewGeneralAggregates returns the zero-valued singleton row
func NewGeneralAggregates() *GeneralAggregates {
	return &GeneralAggregates{Key: GeneralAggregatesKey, UpdatedAt: time.Now()}
}

// GeneralDelta describes one adjustment to the general aggregates
type GeneralDelta struct {
	Products  int64
	Reviews   int64
	Profiles  int64
	Payments  int64
	RatingSum int64
}

// Apply adjusts the totals, flooring each counter at zero
func (g *GeneralAggregates) Apply(d GeneralDelta) {
	g.TotalProducts = floorAdd(g.TotalProducts, d.Products)
	g.TotalReviews = floorAdd(g.TotalReviews, d.Reviews)
	g.TotalProfiles = floorAdd(g.TotalProfiles, d.Profiles)
	g.TotalPayments = floorAdd(g.TotalPayments, d.Payments)
	g.RatingSum = floorAdd(g.RatingSum, d.RatingSum)
	g.UpdatedAt = time.Now()
}

// AverageRating returns the mean star rating over all reviews,
// or 0 when there are none
func (g *GeneralAggregates) AverageRating() float64 {
	if g.TotalReviews == 0 {
		return 0
	}
	return float64(g.RatingSum) / float64(g.TotalReviews)
}

// StatusCounts tracks the product count per lifecycle status
type StatusCounts struct {
	Key       string    `gorm:"type:varchar(50);primaryKey"`
	Draft     int64     `gorm:"not null;default:0"`
	Active    int64     `gorm:"not null;default:0"`
	Archived  int64     `gorm:"not null;default:0"`
	UpdatedAt time.Time `gorm:"not null"`
}

// TableName returns the table name for GORM
func (StatusCounts) TableName() string {
	return "product_status_counts"
}

// NewStatusCounts returns the zero-valued singleton row
func NewStatusCounts() *StatusCounts {
	return &StatusCounts{Key: StatusCountsKey, UpdatedAt: time.Now()}
}

// Add adjusts the counter of one status bucket, flooring at zero
func (c *StatusCounts) Add(status catalog.ProductStatus, delta int64) {
	switch status {
	case catalog.ProductStatusDraft:
		c.Draft = floorAdd(c.Draft, delta)
	case catalog.ProductStatusActive:
		c.Active = floorAdd(c.Active, delta)
	case catalog.ProductStatusArchived:
		c.Archived = floorAdd(c.Archived, delta)
	}
	c.UpdatedAt = time.Now()
}

// Move shifts one product between status buckets
func (c *StatusCounts) Move(from, to catalog.ProductStatus) {
	c.Add(from, -1)
	c.Add(to, 1)
}

// Total returns the number of counted products
func (c *StatusCounts) Total() int64 {
	return c.Draft + c.Active + c.Archived
}

// floorAdd never lets a counter go below zero; a replayed delete can
// outlive the idempotency window under at-least-once delivery.
func floorAdd(v, delta int64) int64 {
	if v+delta < 0 {
		return 0
	}
	return v + delta
}
