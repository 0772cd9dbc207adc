package insights

import (
	"context"

	"github.com/shopsight/backend/internal/domain/insights"
	"github.com/shopsight/backend/internal/domain/shared"
)

// InsightsService exposes the derived aggregate rows for reading.
// All writes happen through the event handlers.
type InsightsService struct {
	insightsRepo insights.InsightsRepository
	outboxRepo   shared.OutboxRepository
}

// NewInsightsService creates a new InsightsService
func NewInsightsService(insightsRepo insights.InsightsRepository, outboxRepo shared.OutboxRepository) *InsightsService {
	return &InsightsService{
		insightsRepo: insightsRepo,
		outboxRepo:   outboxRepo,
	}
}

// GetSentimentCounts returns the sentiment distribution
func (s *InsightsService) GetSentimentCounts(ctx context.Context) (*SentimentCountsResponse, error) {
	counts, err := s.insightsRepo.GetSentimentCounts(ctx)
	if err != nil {
		return nil, err
	}

	response := ToSentimentCountsResponse(counts)
	return &response, nil
}

// GetGeneralAggregates returns the entity totals
func (s *InsightsService) GetGeneralAggregates(ctx context.Context) (*GeneralAggregatesResponse, error) {
	aggregates, err := s.insightsRepo.GetGeneralAggregates(ctx)
	if err != nil {
		return nil, err
	}

	response := ToGeneralAggregatesResponse(aggregates)
	return &response, nil
}

// GetStatusCounts returns the product status distribution
func (s *InsightsService) GetStatusCounts(ctx context.Context) (*StatusCountsResponse, error) {
	counts, err := s.insightsRepo.GetStatusCounts(ctx)
	if err != nil {
		return nil, err
	}

	response := ToStatusCountsResponse(counts)
	return &response, nil
}

// GetOutboxStats returns delivery pipeline counters by entry status
func (s *InsightsService) GetOutboxStats(ctx context.Context) (*OutboxStatsResponse, error) {
	counts, err := s.outboxRepo.CountByStatus(ctx)
	if err != nil {
		return nil, err
	}

	return &OutboxStatsResponse{
		Pending:    counts[shared.OutboxStatusPending],
		Processing: counts[shared.OutboxStatusProcessing],
		Sent:       counts[shared.OutboxStatusSent],
		Failed:     counts[shared.OutboxStatusFailed],
		Dead:       counts[shared.OutboxStatusDead],
	}, nil
}
