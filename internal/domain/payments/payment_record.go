package payments

import (
	"strings"
	"time"

	"github.com/shopsight/backend/internal/domain/shared"
)

// PaymentStatus represents the settlement state of a payment
type PaymentStatus string

const (
	PaymentStatusSucceeded  PaymentStatus = "succeeded"
	PaymentStatusProcessing PaymentStatus = "processing"
	PaymentStatusFailed     PaymentStatus = "failed"
	PaymentStatusRefunded   PaymentStatus = "refunded"
)

// IsValid returns true for a known payment status
func (s PaymentStatus) IsValid() bool {
	switch s {
	case PaymentStatusSucceeded, PaymentStatusProcessing, PaymentStatusFailed, PaymentStatusRefunded:
		return true
	}
	return false
}

// PaymentRecord mirrors one payment event received from the payment
// provider. Records are written only by the webhook synchronization
// handler; the provider event ID is the deduplication key.
type PaymentRecord struct {
	shared.BaseAggregateRoot
	ProviderEventID string        `gorm:"type:varchar(255);not null;uniqueIndex"`
	PaymentIntentID string        `gorm:"type:varchar(255);index"`
	SessionID       string        `gorm:"type:varchar(255);index"`
	ProductSKU      string        `gorm:"type:varchar(50);index"`
	Amount          int64         `gorm:"not null"` // minor currency units
	Currency        string        `gorm:"type:varchar(3);not null"`
	CustomerEmail   string        `gorm:"type:varchar(254)"`
	Status          PaymentStatus `gorm:"type:varchar(20);not null;index"`
	OccurredAt      time.Time     `gorm:"not null"`
}

// TableName returns the table name for GORM
func (PaymentRecord) TableName() string {
	return "payment_records"
}

// NewPaymentRecord creates a record for a provider event
func NewPaymentRecord(providerEventID, intentID, sessionID, sku string, amount int64, currency, customerEmail string, status PaymentStatus, occurredAt time.Time) (*PaymentRecord, error) {
	if providerEventID == "" {
		return nil, shared.NewDomainError("INVALID_PROVIDER_EVENT", "Provider event ID cannot be empty")
	}
	if !status.IsValid() {
		return nil, shared.NewDomainError("INVALID_PAYMENT_STATUS", "Unknown payment status")
	}
	if amount < 0 {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Amount cannot be negative")
	}
	currency = strings.ToLower(currency)
	if len(currency) != 3 {
		return nil, shared.NewDomainError("INVALID_CURRENCY", "Currency must be a three-letter ISO code")
	}
	if occurredAt.IsZero() {
		occurredAt = time.Now()
	}

	r := &PaymentRecord{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		ProviderEventID:   providerEventID,
		PaymentIntentID:   intentID,
		SessionID:         sessionID,
		ProductSKU:        strings.ToUpper(sku),
		Amount:            amount,
		Currency:          currency,
		CustomerEmail:     strings.ToLower(customerEmail),
		Status:            status,
		OccurredAt:        occurredAt,
	}

	r.AddDomainEvent(NewPaymentRecordedEvent(r))

	return r, nil
}

// MarkRefunded flips a settled payment to refunded
func (r *PaymentRecord) MarkRefunded() error {
	if r.Status == PaymentStatusRefunded {
		return shared.NewDomainError("ALREADY_REFUNDED", "Payment is already refunded")
	}
	if r.Status != PaymentStatusSucceeded {
		return shared.NewDomainError("CANNOT_REFUND", "Only settled payments can be refunded")
	}

	r.Status = PaymentStatusRefunded
	r.UpdatedAt = time.Now()
	r.IncrementVersion()

	return nil
}

// IsSettled returns true once funds have been captured
func (r *PaymentRecord) IsSettled() bool {
	return r.Status == PaymentStatusSucceeded
}
