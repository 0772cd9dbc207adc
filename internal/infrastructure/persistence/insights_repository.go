package persistence

import (
	"context"
	"errors"

	"github.com/shopsight/backend/internal/domain/catalog"
	"github.com/shopsight/backend/internal/domain/insights"
	"github.com/shopsight/backend/internal/domain/review"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormInsightsRepository implements InsightsRepository using GORM.
// Mutations lock the singleton row with FOR UPDATE, apply the delta in
// memory and write the row back, creating it on first use.
type GormInsightsRepository struct {
	db *gorm.DB
}

// NewGormInsightsRepository creates a new GormInsightsRepository
func NewGormInsightsRepository(db *gorm.DB) *GormInsightsRepository {
	return &GormInsightsRepository{db: db}
}

// GetSentimentCounts returns the sentiment distribution row
func (r *GormInsightsRepository) GetSentimentCounts(ctx context.Context) (*insights.SentimentCounts, error) {
	var row insights.SentimentCounts
	err := r.db.WithContext(ctx).
		Where("key = ?", insights.SentimentCountsKey).
		First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return insights.NewSentimentCounts(), nil
	}
	if err != nil {
		return nil, err
	}
	return &row, nil
}

// AddSentiment adjusts one sentiment class counter
func (r *GormInsightsRepository) AddSentiment(ctx context.Context, class review.Sentiment, delta int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		row, err := lockSentimentRow(tx)
		if err != nil {
			return err
		}
		row.Add(class, delta)
		return upsertRow(tx, row)
	})
}

// GetGeneralAggregates returns the entity totals row
func (r *GormInsightsRepository) GetGeneralAggregates(ctx context.Context) (*insights.GeneralAggregates, error) {
	var row insights.GeneralAggregates
	err := r.db.WithContext(ctx).
		Where("key = ?", insights.GeneralAggregatesKey).
		First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return insights.NewGeneralAggregates(), nil
	}
	if err != nil {
		return nil, err
	}
	return &row, nil
}

// ApplyGeneralDelta adjusts the entity totals
func (r *GormInsightsRepository) ApplyGeneralDelta(ctx context.Context, delta insights.GeneralDelta) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var row insights.GeneralAggregates
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("key = ?", insights.GeneralAggregatesKey).
			First(&row).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			row = *insights.NewGeneralAggregates()
		} else if err != nil {
			return err
		}
		row.Apply(delta)
		return upsertRow(tx, &row)
	})
}

// GetStatusCounts returns the product status distribution row
func (r *GormInsightsRepository) GetStatusCounts(ctx context.Context) (*insights.StatusCounts, error) {
	var row insights.StatusCounts
	err := r.db.WithContext(ctx).
		Where("key = ?", insights.StatusCountsKey).
		First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return insights.NewStatusCounts(), nil
	}
	if err != nil {
		return nil, err
	}
	return &row, nil
}

// AddStatus adjusts one status bucket counter
func (r *GormInsightsRepository) AddStatus(ctx context.Context, status catalog.ProductStatus, delta int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		row, err := lockStatusRow(tx)
		if err != nil {
			return err
		}
		row.Add(status, delta)
		return upsertRow(tx, row)
	})
}

// MoveStatus shifts one product between status buckets atomically
func (r *GormInsightsRepository) MoveStatus(ctx context.Context, from, to catalog.ProductStatus) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		row, err := lockStatusRow(tx)
		if err != nil {
			return err
		}
		row.Move(from, to)
		return upsertRow(tx, row)
	})
}

// upsertRow writes the aggregate row back, inserting it on first use
func upsertRow(tx *gorm.DB, row interface{}) error {
	return tx.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		UpdateAll: true,
	}).Create(row).Error
}

func lockSentimentRow(tx *gorm.DB) (*insights.SentimentCounts, error) {
	var row insights.SentimentCounts
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("key = ?", insights.SentimentCountsKey).
		First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return insights.NewSentimentCounts(), nil
	}
	if err != nil {
		return nil, err
	}
	return &row, nil
}

func lockStatusRow(tx *gorm.DB) (*insights.StatusCounts, error) {
	var row insights.StatusCounts
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("key = ?", insights.StatusCountsKey).
		First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return insights.NewStatusCounts(), nil
	}
	if err != nil {
		return nil, err
	}
	return &row, nil
}

// Ensure GormInsightsRepository implements InsightsRepository
var _ insights.InsightsRepository = (*GormInsightsRepository)(nil)
