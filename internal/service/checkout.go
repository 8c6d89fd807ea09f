package service

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/tbraaten/idun/internal/billing"
	"github.com/tbraaten/idun/internal/domain"
	"github.com/tbraaten/idun/internal/repository/booking"
	"github.com/tbraaten/idun/internal/repository/cart"
)

type checkoutService struct {
	bookings booking.Repository
	carts    cart.Repository
	billing  billing.Provider
	currency string
}

// Compile-time check that checkoutService implements domain.CheckoutService.
var _ domain.CheckoutService = (*checkoutService)(nil)

// NewCheckoutService creates a new checkout service. The currency is the
// deployment's fixed ISO 4217 code (e.g. "usd") used when a request does
// not specify one.
func NewCheckoutService(bookings booking.Repository, carts cart.Repository, provider billing.Provider, currency string) domain.CheckoutService {
	return &checkoutService{
		bookings: bookings,
		carts:    carts,
		billing:  provider,
		currency: currency,
	}
}

// CreatePaymentIntent initiates a payment intent with the processor.
// The amount must be a positive integer of minor currency units. Exactly
// one attempt is made per call; failures surface to the caller rather
// than triggering a retry.
func (s *checkoutService) CreatePaymentIntent(ctx context.Context, params domain.CreatePaymentIntentParams) (*billing.PaymentIntent, error) {
	if params.AmountCents <= 0 {
		return nil, domain.ErrInvalidAmount
	}

	currency := params.Currency
	if currency == "" {
		currency = s.currency
	}

	metadata := map[string]string{}
	if params.CartID != "" {
		metadata["cart_id"] = params.CartID
	}

	pi, err := s.billing.CreatePaymentIntent(ctx, billing.CreatePaymentIntentParams{
		AmountCents:   params.AmountCents,
		Currency:      currency,
		CustomerEmail: params.CustomerEmail,
		Metadata:      metadata,
	})
	if err != nil {
		return nil, mapBillingError(err)
	}
	return pi, nil
}

// CreateBooking records the cart's current lines, total, and customer
// metadata as a pending booking tied to a payment intent. The submitted
// amount must match the server-computed cart total.
func (s *checkoutService) CreateBooking(ctx context.Context, params domain.CreateBookingParams) (*domain.Booking, error) {
	cartID, err := uuid.Parse(params.CartID)
	if err != nil {
		return nil, domain.ErrCartNotFound
	}
	if params.PaymentIntentID == "" {
		return nil, domain.Invalid("checkout.create_booking", "payment intent ID is required")
	}

	lines, err := s.carts.ListLines(ctx, cartID)
	if err != nil {
		return nil, domain.Internal(err, "checkout.create_booking", "failed to list cart lines")
	}
	if len(lines) == 0 {
		return nil, domain.ErrCartEmpty
	}

	var total int64
	bookingLines := make([]domain.BookingLine, len(lines))
	for i, line := range lines {
		total += line.LineTotalCents
		bookingLines[i] = domain.BookingLine{
			ProductID:      line.Product.ID,
			Name:           line.Product.Name,
			UnitPriceCents: line.Product.PriceCents,
			Quantity:       line.Quantity,
		}
	}
	if params.AmountCents != total {
		return nil, domain.ErrAmountMismatch
	}

	currency := params.Currency
	if currency == "" {
		currency = s.currency
	}

	b, err := s.bookings.Create(ctx, booking.CreateBookingInput{
		CartID:          cartID,
		PaymentIntentID: params.PaymentIntentID,
		AmountCents:     total,
		Currency:        currency,
		Customer:        params.Customer,
		Lines:           bookingLines,
	})
	if err != nil {
		return nil, domain.Internal(err, "checkout.create_booking", "failed to create booking")
	}
	return b, nil
}

// CompleteBooking marks the booking for a payment intent as paid and
// tears down its cart. Idempotent per payment intent: a retry returns
// domain.ErrPaymentAlreadyProcessed without touching anything.
func (s *checkoutService) CompleteBooking(ctx context.Context, paymentIntentID string) (*domain.Booking, error) {
	b, err := s.bookings.MarkPaid(ctx, paymentIntentID)
	if err != nil {
		if domain.IsCode(err, domain.ENOTFOUND) || errors.Is(err, domain.ErrPaymentAlreadyProcessed) {
			return nil, err
		}
		return nil, domain.Internal(err, "checkout.complete_booking", "failed to mark booking paid")
	}

	if err := s.carts.Delete(ctx, b.CartID); err != nil {
		return nil, domain.Internal(err, "checkout.complete_booking", "failed to delete cart")
	}
	return b, nil
}

// mapBillingError translates provider errors into domain errors. Card
// declines and processor rejections are 422-class so clients can show
// the processor's message.
func mapBillingError(err error) error {
	if errors.Is(err, billing.ErrAmountTooSmall) {
		return &domain.Error{
			Code:    domain.EPAYMENT,
			Op:      "checkout.payment_intent",
			Message: "Amount is below the processor minimum",
			Err:     err,
		}
	}

	var stripeErr *billing.StripeError
	if errors.As(err, &stripeErr) {
		return &domain.Error{
			Code:    domain.EPAYMENT,
			Op:      "checkout.payment_intent",
			Message: stripeErr.Message,
			Err:     err,
		}
	}

	return domain.Internal(err, "checkout.payment_intent", "payment processor request failed")
}
