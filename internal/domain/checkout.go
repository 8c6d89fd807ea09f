package domain

import (
	"context"

	"github.com/tbraaten/idun/internal/billing"
)

// Checkout-specific errors.
var (
	ErrInvalidAmount = &Error{Code: EUNPROCESSABLE, Message: "Amount must be a positive integer of minor currency units"}
	ErrCartEmpty     = &Error{Code: EINVALID, Message: "Cart is empty"}
	ErrAmountMismatch = &Error{Code: EUNPROCESSABLE, Message: "Amount does not match the cart total"}
)

// CheckoutService provides business logic for checkout operations.
type CheckoutService interface {
	// CreatePaymentIntent initiates a payment intent with the external
	// processor. Exactly one attempt per call: payment operations are
	// never retried automatically.
	CreatePaymentIntent(ctx context.Context, params CreatePaymentIntentParams) (*billing.PaymentIntent, error)

	// CreateBooking records the session cart's line items, total, and
	// customer metadata as a pending order tied to a payment intent.
	CreateBooking(ctx context.Context, params CreateBookingParams) (*Booking, error)

	// CompleteBooking marks the booking for a payment intent as paid and
	// tears down its cart. Idempotent per payment intent: a second call
	// returns ErrPaymentAlreadyProcessed.
	CompleteBooking(ctx context.Context, paymentIntentID string) (*Booking, error)
}

// CreatePaymentIntentParams contains parameters for creating a payment intent.
type CreatePaymentIntentParams struct {
	// AmountCents is the amount in smallest currency unit (cents for USD).
	AmountCents int64

	// Currency code (ISO 4217 lowercase), e.g. "usd".
	Currency string

	// CartID scopes the intent to the session cart (stored in metadata).
	CartID string

	// CustomerEmail prefills the customer email in the payment sheet.
	CustomerEmail string
}

// CreateBookingParams contains parameters for recording a checkout attempt.
type CreateBookingParams struct {
	CartID          string
	AmountCents     int64
	Currency        string
	Customer        CustomerInfo
	PaymentIntentID string
}
