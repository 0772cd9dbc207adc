package payments

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/shopsight/backend/internal/domain/payments"
	"github.com/shopsight/backend/internal/domain/shared"
)

// PaymentService exposes synchronized payment records for reading.
// All writes come through the webhook service.
type PaymentService struct {
	paymentRepo payments.PaymentRepository
}

// NewPaymentService creates a new PaymentService
func NewPaymentService(paymentRepo payments.PaymentRepository) *PaymentService {
	return &PaymentService{paymentRepo: paymentRepo}
}

// GetByID retrieves a payment record by ID
func (s *PaymentService) GetByID(ctx context.Context, recordID uuid.UUID) (*PaymentRecordResponse, error) {
	record, err := s.paymentRepo.FindByID(ctx, recordID)
	if err != nil {
		return nil, err
	}

	response := ToPaymentRecordResponse(record)
	return &response, nil
}

// List retrieves payment records with pagination. Admin only; enforced
// by the HTTP layer.
func (s *PaymentService) List(ctx context.Context, filter PaymentListFilter) (*shared.Paginated[PaymentRecordResponse], error) {
	f := s.buildFilter(filter)

	records, err := s.paymentRepo.FindAll(ctx, f)
	if err != nil {
		return nil, err
	}

	total, err := s.paymentRepo.Count(ctx, f)
	if err != nil {
		return nil, err
	}

	result := shared.NewPaginated(ToPaymentRecordResponses(records), total, f.Page, f.PageSize)
	return &result, nil
}

// buildFilter converts the API filter into a repository filter
func (s *PaymentService) buildFilter(filter PaymentListFilter) shared.Filter {
	f := shared.DefaultFilter()
	if filter.Page > 0 {
		f.Page = filter.Page
	}
	if filter.PageSize > 0 {
		f.PageSize = filter.PageSize
	}
	f.Search = filter.Search
	if filter.Status != "" {
		f.Filters["status"] = filter.Status
	}
	if filter.ProductSKU != "" {
		f.Filters["product_sku"] = strings.ToUpper(filter.ProductSKU)
	}
	if filter.Currency != "" {
		f.Filters["currency"] = strings.ToLower(filter.Currency)
	}
	return f
}
