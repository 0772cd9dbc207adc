package payments

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/shopsight/backend/internal/domain/payments"
	"github.com/shopsight/backend/internal/domain/shared"
	"github.com/stripe/stripe-go/v81"
	"github.com/stripe/stripe-go/v81/webhook"
	"go.uber.org/zap"
)

// StripeWebhookService synchronizes Stripe payment events into local
// payment records. Each provider event becomes at most one record; the
// provider event ID is the deduplication key, so redelivered webhooks
// are acknowledged without a second write.
type StripeWebhookService struct {
	webhookSecret string
	paymentRepo   payments.PaymentRepository
	logger        *zap.Logger
}

// StripeWebhookServiceConfig contains configuration for StripeWebhookService
type StripeWebhookServiceConfig struct {
	WebhookSecret string
	PaymentRepo   payments.PaymentRepository
	Logger        *zap.Logger
}

// NewStripeWebhookService creates a new StripeWebhookService
func NewStripeWebhookService(cfg StripeWebhookServiceConfig) *StripeWebhookService {
	return &StripeWebhookService{
		webhookSecret: cfg.WebhookSecret,
		paymentRepo:   cfg.PaymentRepo,
		logger:        cfg.Logger,
	}
}

// ProcessWebhook verifies and processes a Stripe webhook event
func (s *StripeWebhookService) ProcessWebhook(ctx context.Context, payload []byte, signature string) (*WebhookResult, error) {
	event, err := webhook.ConstructEvent(payload, signature, s.webhookSecret)
	if err != nil {
		s.logger.Error("Failed to verify webhook signature",
			zap.Error(err))
		return nil, fmt.Errorf("webhook signature verification failed: %w", err)
	}

	s.logger.Info("Processing Stripe webhook event",
		zap.String("event_id", event.ID),
		zap.String("event_type", string(event.Type)))

	result := &WebhookResult{
		EventID:   event.ID,
		EventType: string(event.Type),
		Processed: true,
	}

	duplicate, err := s.alreadyRecorded(ctx, event.ID)
	if err != nil {
		return nil, err
	}
	if duplicate {
		s.logger.Debug("Webhook event already recorded, skipping",
			zap.String("event_id", event.ID))
		result.Message = "Event already recorded"
		return result, nil
	}

	switch event.Type {
	case "checkout.session.completed":
		err = s.handleCheckoutCompleted(ctx, event)
	case "payment_intent.succeeded":
		err = s.handlePaymentIntent(ctx, event, payments.PaymentStatusSucceeded)
	case "payment_intent.payment_failed":
		err = s.handlePaymentIntent(ctx, event, payments.PaymentStatusFailed)
	case "charge.refunded":
		err = s.handleChargeRefunded(ctx, event)
	default:
		s.logger.Debug("Unhandled webhook event type",
			zap.String("event_type", string(event.Type)))
		result.Message = "Event type not handled"
	}

	if err != nil {
		s.logger.Error("Failed to process webhook event",
			zap.String("event_id", event.ID),
			zap.String("event_type", string(event.Type)),
			zap.Error(err))
		result.Processed = false
		result.Message = err.Error()
		return result, err
	}

	return result, nil
}

// handleCheckoutCompleted records a completed checkout session
func (s *StripeWebhookService) handleCheckoutCompleted(ctx context.Context, event stripe.Event) error {
	var session stripe.CheckoutSession
	if err := json.Unmarshal(event.Data.Raw, &session); err != nil {
		return fmt.Errorf("failed to unmarshal checkout session: %w", err)
	}

	intentID := ""
	if session.PaymentIntent != nil {
		intentID = session.PaymentIntent.ID
	}
	email := ""
	if session.CustomerDetails != nil {
		email = session.CustomerDetails.Email
	}

	record, err := payments.NewPaymentRecord(
		event.ID,
		intentID,
		session.ID,
		session.Metadata["product_sku"],
		session.AmountTotal,
		string(session.Currency),
		email,
		payments.PaymentStatusSucceeded,
		time.Unix(event.Created, 0),
	)
	if err != nil {
		return err
	}

	if err := s.paymentRepo.Save(ctx, record); err != nil {
		return fmt.Errorf("failed to save payment record: %w", err)
	}

	s.logger.Info("Checkout session recorded",
		zap.String("session_id", session.ID),
		zap.String("record_id", record.ID.String()))

	return nil
}

// handlePaymentIntent records a payment intent outcome
func (s *StripeWebhookService) handlePaymentIntent(ctx context.Context, event stripe.Event, status payments.PaymentStatus) error {
	var intent stripe.PaymentIntent
	if err := json.Unmarshal(event.Data.Raw, &intent); err != nil {
		return fmt.Errorf("failed to unmarshal payment intent: %w", err)
	}

	record, err := payments.NewPaymentRecord(
		event.ID,
		intent.ID,
		"",
		intent.Metadata["product_sku"],
		intent.Amount,
		string(intent.Currency),
		intent.ReceiptEmail,
		status,
		time.Unix(event.Created, 0),
	)
	if err != nil {
		return err
	}

	if err := s.paymentRepo.Save(ctx, record); err != nil {
		return fmt.Errorf("failed to save payment record: %w", err)
	}

	s.logger.Info("Payment intent recorded",
		zap.String("intent_id", intent.ID),
		zap.String("status", string(status)),
		zap.String("record_id", record.ID.String()))

	return nil
}

// handleChargeRefunded records the refund and flips earlier settled
// records of the same payment intent to refunded
func (s *StripeWebhookService) handleChargeRefunded(ctx context.Context, event stripe.Event) error {
	var charge stripe.Charge
	if err := json.Unmarshal(event.Data.Raw, &charge); err != nil {
		return fmt.Errorf("failed to unmarshal charge: %w", err)
	}

	intentID := ""
	if charge.PaymentIntent != nil {
		intentID = charge.PaymentIntent.ID
	}
	email := ""
	if charge.BillingDetails != nil {
		email = charge.BillingDetails.Email
	}

	record, err := payments.NewPaymentRecord(
		event.ID,
		intentID,
		"",
		charge.Metadata["product_sku"],
		charge.AmountRefunded,
		string(charge.Currency),
		email,
		payments.PaymentStatusRefunded,
		time.Unix(event.Created, 0),
	)
	if err != nil {
		return err
	}

	if err := s.paymentRepo.Save(ctx, record); err != nil {
		return fmt.Errorf("failed to save payment record: %w", err)
	}

	if intentID == "" {
		return nil
	}

	settled, err := s.paymentRepo.FindByPaymentIntent(ctx, intentID)
	if err != nil {
		return fmt.Errorf("failed to look up intent records: %w", err)
	}

	for i := range settled {
		prior := &settled[i]
		if !prior.IsSettled() {
			continue
		}
		if err := prior.MarkRefunded(); err != nil {
			s.logger.Warn("Could not mark prior record refunded",
				zap.String("record_id", prior.ID.String()),
				zap.Error(err))
			continue
		}
		if err := s.paymentRepo.Save(ctx, prior); err != nil {
			return fmt.Errorf("failed to update refunded record: %w", err)
		}
	}

	s.logger.Info("Charge refund recorded",
		zap.String("intent_id", intentID),
		zap.String("record_id", record.ID.String()))

	return nil
}

// alreadyRecorded reports whether the provider event was synchronized before
func (s *StripeWebhookService) alreadyRecorded(ctx context.Context, providerEventID string) (bool, error) {
	_, err := s.paymentRepo.FindByProviderEventID(ctx, providerEventID)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, shared.ErrNotFound) {
		return false, nil
	}
	return false, err
}
