package payments

import (
	"github.com/google/uuid"
	"github.com/shopsight/backend/internal/domain/shared"
)

// Aggregate type constant
const AggregateTypePaymentRecord = "PaymentRecord"

// Event type constants
const (
	EventTypePaymentRecorded = "PaymentRecorded"
)

// PaymentRecordedEvent is published when a provider payment event has
// been synchronized into a local record
type PaymentRecordedEvent struct {
	shared.BaseDomainEvent
	RecordID        uuid.UUID     `json:"record_id"`
	ProviderEventID string        `json:"provider_event_id"`
	ProductSKU      string        `json:"product_sku,omitempty"`
	Amount          int64         `json:"amount"`
	Currency        string        `json:"currency"`
	Status          PaymentStatus `json:"status"`
}

// NewPaymentRecordedEvent creates a new PaymentRecordedEvent
func NewPaymentRecordedEvent(r *PaymentRecord) *PaymentRecordedEvent {
	return &PaymentRecordedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypePaymentRecorded, AggregateTypePaymentRecord, r.ID),
		RecordID:        r.ID,
		ProviderEventID: r.ProviderEventID,
		ProductSKU:      r.ProductSKU,
		Amount:          r.Amount,
		Currency:        r.Currency,
		Status:          r.Status,
	}
}
