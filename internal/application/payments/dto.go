package payments

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopsight/backend/internal/domain/payments"
)

// PaymentRecordResponse represents a synchronized payment record
type PaymentRecordResponse struct {
	ID              uuid.UUID              `json:"id"`
	ProviderEventID string                 `json:"provider_event_id"`
	PaymentIntentID string                 `json:"payment_intent_id,omitempty"`
	SessionID       string                 `json:"session_id,omitempty"`
	ProductSKU      string                 `json:"product_sku,omitempty"`
	Amount          int64                  `json:"amount"`
	Currency        string                 `json:"currency"`
	CustomerEmail   string                 `json:"customer_email,omitempty"`
	Status          payments.PaymentStatus `json:"status"`
	OccurredAt      time.Time              `json:"occurred_at"`
	CreatedAt       time.Time              `json:"created_at"`
}

// PaymentListFilter represents filter options for payment record listings
type PaymentListFilter struct {
	Status     string `form:"status" binding:"omitempty,oneof=succeeded processing failed refunded"`
	ProductSKU string `form:"product_sku"`
	Currency   string `form:"currency" binding:"omitempty,len=3"`
	Search     string `form:"search"`
	Page       int    `form:"page" binding:"min=0"`
	PageSize   int    `form:"page_size" binding:"min=0,max=100"`
}

// WebhookResult contains the outcome of processing one provider webhook
type WebhookResult struct {
	EventID   string `json:"event_id"`
	EventType string `json:"event_type"`
	Processed bool   `json:"processed"`
	Message   string `json:"message,omitempty"`
}

// ToPaymentRecordResponse converts a domain record to a response DTO
func ToPaymentRecordResponse(r *payments.PaymentRecord) PaymentRecordResponse {
	return PaymentRecordResponse{
		ID:              r.ID,
		ProviderEventID: r.ProviderEventID,
		PaymentIntentID: r.PaymentIntentID,
		SessionID:       r.SessionID,
		ProductSKU:      r.ProductSKU,
		Amount:          r.Amount,
		Currency:        r.Currency,
		CustomerEmail:   r.CustomerEmail,
		Status:          r.Status,
		OccurredAt:      r.OccurredAt,
		CreatedAt:       r.CreatedAt,
	}
}

// ToPaymentRecordResponses converts a slice of domain records
func ToPaymentRecordResponses(records []payments.PaymentRecord) []PaymentRecordResponse {
	responses := make([]PaymentRecordResponse, len(records))
	for i := range records {
		responses[i] = ToPaymentRecordResponse(&records[i])
	}
	return responses
}
