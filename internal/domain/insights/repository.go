package insights

import (
	"context"

	"github.com/shopsight/backend/internal/domain/catalog"
	"github.com/shopsight/backend/internal/domain/review"
)

// InsightsRepository persists the derived aggregate rows. Mutating
// methods lock the row, apply the delta and write it back in one
// transaction, creating the row on first use.
type InsightsRepository interface {
	// GetSentimentCounts returns the sentiment distribution row
	GetSentimentCounts(ctx context.Context) (*SentimentCounts, error)

	// AddSentiment adjusts one sentiment class counter
	AddSentiment(ctx context.Context, class review.Sentiment, delta int64) error

	// GetGeneralAggregates returns the entity totals row
	GetGeneralAggregates(ctx context.Context) (*GeneralAggregates, error)

	// ApplyGeneralDelta adjusts the entity totals
	ApplyGeneralDelta(ctx context.Context, delta GeneralDelta) error

	// GetStatusCounts returns the product status distribution row
	GetStatusCounts(ctx context.Context) (*StatusCounts, error)

	// AddStatus adjusts one status bucket counter
	AddStatus(ctx context.Context, status catalog.ProductStatus, delta int64) error

	// MoveStatus shifts one product between status buckets atomically
	MoveStatus(ctx context.Context, from, to catalog.ProductStatus) error
}
