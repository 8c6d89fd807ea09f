package domain

import (
	"time"

	"github.com/google/uuid"
)

var (
	ErrBookingNotFound = &Error{Code: ENOTFOUND, Message: "Booking not found"}

	// ErrPaymentAlreadyProcessed signals an idempotent webhook retry: the
	// booking for this payment intent was already marked paid.
	ErrPaymentAlreadyProcessed = &Error{Code: EINVALID, Message: "Payment already processed"}
)

// Booking statuses. A booking is created pending and transitions to paid
// exactly once, on confirmation from the payment processor.
const (
	BookingStatusPending = "pending"
	BookingStatusPaid    = "paid"
)

// CustomerInfo is the customer-supplied contact and shipping metadata
// captured at checkout time.
type CustomerInfo struct {
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Address   string `json:"address"`
	City      string `json:"city"`
	State     string `json:"state"`
	ZipCode   string `json:"zip_code"`
	Country   string `json:"country"`
	Phone     string `json:"phone"`
}

// BookingLine is a line item snapshotted into a booking at creation time.
// Unlike cart lines, these freeze name and price: the booking is the
// durable record of what the customer agreed to pay.
type BookingLine struct {
	ProductID      uuid.UUID `json:"product_id"`
	Name           string    `json:"name"`
	UnitPriceCents int64     `json:"unit_price_cents"`
	Quantity       int32     `json:"quantity"`
}

// Booking is the durable record of a checkout attempt, keyed by the
// payment intent it was created for. It exists before payment is
// confirmed; the Stripe webhook flips it to paid.
type Booking struct {
	ID              uuid.UUID
	CartID          uuid.UUID
	PaymentIntentID string
	Status          string
	AmountCents     int64
	Currency        string
	Customer        CustomerInfo
	Lines           []BookingLine
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
