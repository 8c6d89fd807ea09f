package api

import (
	"net/http"

	"github.com/tbraaten/idun/internal/cookie"
	"github.com/tbraaten/idun/internal/domain"
	"github.com/tbraaten/idun/internal/handler"
)

// CheckoutHandler serves the checkout endpoints.
type CheckoutHandler struct {
	checkout domain.CheckoutService
	cookies  *cookie.Config
}

// NewCheckoutHandler creates a new checkout handler.
func NewCheckoutHandler(checkout domain.CheckoutService, cookies *cookie.Config) *CheckoutHandler {
	return &CheckoutHandler{
		checkout: checkout,
		cookies:  cookies,
	}
}

type paymentIntentRequest struct {
	AmountCents   int64  `json:"amount_cents"`
	Currency      string `json:"currency"`
	CustomerEmail string `json:"customer_email" validate:"omitempty,email"`
}

type paymentIntentResponse struct {
	ID           string `json:"id"`
	ClientSecret string `json:"client_secret"`
	AmountCents  int64  `json:"amount_cents"`
	Currency     string `json:"currency"`
	Status       string `json:"status"`
}

// CreatePaymentIntent handles POST /checkout/payment-intent. The amount
// is validated server-side; processor rejections come back as 422 with
// the processor's message.
func (h *CheckoutHandler) CreatePaymentIntent(w http.ResponseWriter, r *http.Request) {
	var req paymentIntentRequest
	if err := decodeJSON(r, &req); err != nil {
		handler.ValidationErrorResponse(w, r, err)
		return
	}

	pi, err := h.checkout.CreatePaymentIntent(r.Context(), domain.CreatePaymentIntentParams{
		AmountCents:   req.AmountCents,
		Currency:      req.Currency,
		CartID:        cartIDFromCookie(r),
		CustomerEmail: req.CustomerEmail,
	})
	if err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}

	handler.JSON(w, http.StatusCreated, paymentIntentResponse{
		ID:           pi.ID,
		ClientSecret: pi.ClientSecret,
		AmountCents:  pi.AmountCents,
		Currency:     pi.Currency,
		Status:       pi.Status,
	})
}

type customerInfoRequest struct {
	Email     string `json:"email" validate:"required,email"`
	FirstName string `json:"first_name" validate:"required"`
	LastName  string `json:"last_name" validate:"required"`
	Address   string `json:"address" validate:"required"`
	City      string `json:"city" validate:"required"`
	State     string `json:"state"`
	ZipCode   string `json:"zip_code" validate:"required"`
	Country   string `json:"country" validate:"required"`
	Phone     string `json:"phone"`
}

type bookingRequest struct {
	PaymentIntentID string              `json:"payment_intent_id" validate:"required"`
	AmountCents     int64               `json:"amount_cents"`
	Currency        string              `json:"currency"`
	Customer        customerInfoRequest `json:"customer" validate:"required"`
}

type bookingLineJSON struct {
	ProductID      string `json:"product_id"`
	Name           string `json:"name"`
	UnitPriceCents int64  `json:"unit_price_cents"`
	Quantity       int32  `json:"quantity"`
}

type bookingResponse struct {
	ID              string            `json:"id"`
	PaymentIntentID string            `json:"payment_intent_id"`
	Status          string            `json:"status"`
	AmountCents     int64             `json:"amount_cents"`
	Currency        string            `json:"currency"`
	Lines           []bookingLineJSON `json:"line_items"`
}

func toBookingResponse(b *domain.Booking) bookingResponse {
	out := bookingResponse{
		ID:              b.ID.String(),
		PaymentIntentID: b.PaymentIntentID,
		Status:          b.Status,
		AmountCents:     b.AmountCents,
		Currency:        b.Currency,
		Lines:           make([]bookingLineJSON, len(b.Lines)),
	}
	for i, line := range b.Lines {
		out.Lines[i] = bookingLineJSON{
			ProductID:      line.ProductID.String(),
			Name:           line.Name,
			UnitPriceCents: line.UnitPriceCents,
			Quantity:       line.Quantity,
		}
	}
	return out
}

// CreateBooking handles POST /checkout/bookings. Line items and the
// total come from the server-side cart; the submitted amount is only a
// cross-check.
func (h *CheckoutHandler) CreateBooking(w http.ResponseWriter, r *http.Request) {
	var req bookingRequest
	if err := decodeJSON(r, &req); err != nil {
		handler.ValidationErrorResponse(w, r, err)
		return
	}

	b, err := h.checkout.CreateBooking(r.Context(), domain.CreateBookingParams{
		CartID:      cartIDFromCookie(r),
		AmountCents: req.AmountCents,
		Currency:    req.Currency,
		Customer: domain.CustomerInfo{
			Email:     req.Customer.Email,
			FirstName: req.Customer.FirstName,
			LastName:  req.Customer.LastName,
			Address:   req.Customer.Address,
			City:      req.Customer.City,
			State:     req.Customer.State,
			ZipCode:   req.Customer.ZipCode,
			Country:   req.Customer.Country,
			Phone:     req.Customer.Phone,
		},
		PaymentIntentID: req.PaymentIntentID,
	})
	if err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}

	handler.JSON(w, http.StatusCreated, toBookingResponse(b))
}
