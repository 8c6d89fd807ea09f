package billing

import (
	"context"
	"time"
)

// Provider defines the interface for payment processing.
// Implementations can use Stripe, PayPal, Square, etc.
type Provider interface {
	// CreatePaymentIntent creates a payment intent for a one-time charge.
	// Returns the intent with client_secret for frontend confirmation.
	// Implementations must not retry on ambiguous failure; a retry risks
	// duplicate intent creation.
	CreatePaymentIntent(ctx context.Context, params CreatePaymentIntentParams) (*PaymentIntent, error)

	// GetPaymentIntent retrieves an existing payment intent.
	GetPaymentIntent(ctx context.Context, paymentIntentID string) (*PaymentIntent, error)

	// VerifyWebhookSignature verifies that a webhook request is authentic
	// and returns the raw event payload for dispatch.
	VerifyWebhookSignature(payload []byte, signature string, secret string) error
}

// CreatePaymentIntentParams contains parameters for creating a payment intent.
type CreatePaymentIntentParams struct {
	// AmountCents is the amount in smallest currency unit (cents for USD).
	AmountCents int64

	// Currency code (ISO 4217 lowercase) - e.g., "usd", "eur".
	Currency string

	// CustomerEmail is used to prefill customer email in the payment sheet.
	CustomerEmail string

	// Description appears on the customer's statement and in the dashboard.
	Description string

	// Metadata for filtering and reporting (always include cart_id).
	Metadata map[string]string

	// IdempotencyKey prevents duplicate payment intents.
	// Typically the cart ID or a unique checkout session identifier.
	IdempotencyKey string
}

// PaymentIntent represents a payment processor intent.
type PaymentIntent struct {
	// ID is the processor's intent ID (pi_... for Stripe).
	ID string

	// ClientSecret is consumed by the frontend to confirm payment.
	ClientSecret string

	// AmountCents is the amount in smallest currency unit (cents).
	AmountCents int64

	// Currency code.
	Currency string

	// Status: requires_payment_method, requires_confirmation, succeeded, etc.
	Status string

	// Metadata passed during creation.
	Metadata map[string]string

	// CreatedAt is when the intent was created.
	CreatedAt time.Time

	// LastPaymentError contains details if a payment attempt failed.
	LastPaymentError *PaymentError

	// ReceiptEmail is the email where the processor sends receipts.
	ReceiptEmail string
}

// PaymentError contains details about a failed payment attempt.
type PaymentError struct {
	Code        string // processor error code
	Message     string // human-readable message
	DeclineCode string // reason card was declined (if applicable)
}
