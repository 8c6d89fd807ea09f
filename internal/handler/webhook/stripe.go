package webhook

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/stripe/stripe-go/v82"

	"github.com/tbraaten/idun/internal/billing"
	"github.com/tbraaten/idun/internal/domain"
	"github.com/tbraaten/idun/internal/handler"
	"github.com/tbraaten/idun/internal/telemetry"
)

// StripeHandler handles Stripe webhook events.
type StripeHandler struct {
	provider billing.Provider
	checkout domain.CheckoutService
	secret   string
	logger   *slog.Logger
	metrics  *telemetry.BusinessMetrics
}

// NewStripeHandler creates a new Stripe webhook handler. The secret is
// the webhook signing secret from the Stripe dashboard.
func NewStripeHandler(provider billing.Provider, checkout domain.CheckoutService, secret string, logger *slog.Logger) *StripeHandler {
	return &StripeHandler{
		provider: provider,
		checkout: checkout,
		secret:   secret,
		logger:   logger,
	}
}

// WithMetrics attaches business metrics to the handler.
func (h *StripeHandler) WithMetrics(m *telemetry.BusinessMetrics) *StripeHandler {
	h.metrics = m
	return h
}

// HandleWebhook processes incoming Stripe webhook events.
//
// Stripe CLI testing:
//
//	stripe listen --forward-to localhost:8080/webhooks/stripe
//	stripe trigger payment_intent.succeeded
func (h *StripeHandler) HandleWebhook(w http.ResponseWriter, r *http.Request) {
	payload, err := io.ReadAll(r.Body)
	if err != nil {
		handler.ErrorResponse(w, r, domain.Errorf(domain.EINVALID, "webhook.stripe", "Error reading request body"))
		return
	}

	signature := r.Header.Get("Stripe-Signature")
	if signature == "" {
		handler.ErrorResponse(w, r, domain.Errorf(domain.EUNAUTHORIZED, "webhook.stripe", "Missing signature"))
		return
	}

	if err := h.provider.VerifyWebhookSignature(payload, signature, h.secret); err != nil {
		h.logger.Warn("webhook signature verification failed", "error", err)
		handler.ErrorResponse(w, r, domain.Errorf(domain.EUNAUTHORIZED, "webhook.stripe", "Invalid signature"))
		return
	}

	var event stripe.Event
	if err := json.Unmarshal(payload, &event); err != nil {
		handler.ErrorResponse(w, r, domain.Errorf(domain.EINVALID, "webhook.stripe", "Invalid JSON"))
		return
	}

	h.logger.Info("stripe webhook received", "type", event.Type, "event_id", event.ID)
	h.metrics.RecordWebhookReceived(string(event.Type))

	switch event.Type {
	case "payment_intent.succeeded":
		if !h.handlePaymentIntentSucceeded(w, r, event) {
			return
		}

	case "payment_intent.payment_failed":
		h.handlePaymentIntentFailed(event)

	case "payment_intent.canceled":
		h.logger.Info("payment intent canceled", "event_id", event.ID)

	default:
		h.logger.Debug("unhandled webhook event type", "type", event.Type)
	}

	// Acknowledge receipt. Stripe retries anything that was not a 2xx.
	handler.JSON(w, http.StatusOK, map[string]bool{"received": true})
}

// handlePaymentIntentSucceeded marks the booking paid and tears down its
// cart. Returns false if an error response was already written.
func (h *StripeHandler) handlePaymentIntentSucceeded(w http.ResponseWriter, r *http.Request, event stripe.Event) bool {
	var paymentIntent stripe.PaymentIntent
	if err := json.Unmarshal(event.Data.Raw, &paymentIntent); err != nil {
		handler.ErrorResponse(w, r, domain.Errorf(domain.EINVALID, "webhook.stripe", "Invalid payment intent payload"))
		return false
	}

	b, err := h.checkout.CompleteBooking(r.Context(), paymentIntent.ID)
	if err != nil {
		// Retries and unknown intents are both acknowledged: there is
		// nothing Stripe can do differently on redelivery.
		if errors.Is(err, domain.ErrPaymentAlreadyProcessed) {
			h.logger.Info("payment already processed, acknowledging retry", "payment_intent_id", paymentIntent.ID)
			return true
		}
		if domain.IsCode(err, domain.ENOTFOUND) {
			h.logger.Warn("no booking for payment intent", "payment_intent_id", paymentIntent.ID)
			return true
		}

		// Internal failure: respond non-2xx so Stripe redelivers.
		h.logger.Error("failed to complete booking", "payment_intent_id", paymentIntent.ID, "error", err)
		handler.ErrorResponse(w, r, err)
		return false
	}

	h.logger.Info("booking paid",
		"booking_id", b.ID,
		"payment_intent_id", paymentIntent.ID,
		"amount_cents", b.AmountCents,
		"currency", b.Currency,
	)
	h.metrics.RecordBookingPaid(b.AmountCents)
	return true
}

func (h *StripeHandler) handlePaymentIntentFailed(event stripe.Event) {
	var paymentIntent stripe.PaymentIntent
	if err := json.Unmarshal(event.Data.Raw, &paymentIntent); err != nil {
		h.logger.Error("failed to parse payment intent from webhook", "error", err)
		return
	}

	attrs := []any{"payment_intent_id", paymentIntent.ID}
	var declineCode string
	if paymentIntent.LastPaymentError != nil {
		declineCode = string(paymentIntent.LastPaymentError.DeclineCode)
		attrs = append(attrs,
			"code", paymentIntent.LastPaymentError.Code,
			"decline_code", paymentIntent.LastPaymentError.DeclineCode,
			"message", paymentIntent.LastPaymentError.Msg,
		)
	}
	h.logger.Warn("payment failed", attrs...)
	h.metrics.RecordPaymentFailed(declineCode)
}
