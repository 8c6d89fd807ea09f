package booking

import (
	"context"

	"github.com/google/uuid"

	"github.com/tbraaten/idun/internal/domain"
)

// CreateBookingInput contains the fields needed to record a booking.
type CreateBookingInput struct {
	CartID          uuid.UUID
	PaymentIntentID string
	AmountCents     int64
	Currency        string
	Customer        domain.CustomerInfo
	Lines           []domain.BookingLine
}

// Repository provides access to booking records.
type Repository interface {
	// Create inserts a pending booking. The payment intent ID is unique:
	// a second booking for the same intent fails.
	Create(ctx context.Context, in CreateBookingInput) (*domain.Booking, error)

	// GetByPaymentIntentID retrieves the booking tied to a payment intent.
	GetByPaymentIntentID(ctx context.Context, paymentIntentID string) (*domain.Booking, error)

	// MarkPaid transitions the booking for a payment intent from pending
	// to paid. The transition happens at most once: a retry returns
	// domain.ErrPaymentAlreadyProcessed, an unknown intent returns
	// domain.ErrBookingNotFound.
	MarkPaid(ctx context.Context, paymentIntentID string) (*domain.Booking, error)
}
