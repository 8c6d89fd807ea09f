package booking

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/tbraaten/idun/internal/domain"
)

// MemoryRepo is an in-memory booking repository for tests.
// Safe for concurrent use.
type MemoryRepo struct {
	mu       sync.Mutex
	byIntent map[string]*domain.Booking
}

var _ Repository = (*MemoryRepo)(nil)

// NewMemory creates an empty in-memory booking repository.
func NewMemory() *MemoryRepo {
	return &MemoryRepo{
		byIntent: make(map[string]*domain.Booking),
	}
}

func (r *MemoryRepo) Create(ctx context.Context, in CreateBookingInput) (*domain.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byIntent[in.PaymentIntentID]; exists {
		return nil, fmt.Errorf("booking already exists for payment intent %s", in.PaymentIntentID)
	}

	now := time.Now()
	b := &domain.Booking{
		ID:              uuid.New(),
		CartID:          in.CartID,
		PaymentIntentID: in.PaymentIntentID,
		Status:          domain.BookingStatusPending,
		AmountCents:     in.AmountCents,
		Currency:        in.Currency,
		Customer:        in.Customer,
		Lines:           in.Lines,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	r.byIntent[in.PaymentIntentID] = b

	out := *b
	return &out, nil
}

func (r *MemoryRepo) GetByPaymentIntentID(ctx context.Context, paymentIntentID string) (*domain.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	b, ok := r.byIntent[paymentIntentID]
	if !ok {
		return nil, domain.ErrBookingNotFound
	}
	out := *b
	return &out, nil
}

func (r *MemoryRepo) MarkPaid(ctx context.Context, paymentIntentID string) (*domain.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	b, ok := r.byIntent[paymentIntentID]
	if !ok {
		return nil, domain.ErrBookingNotFound
	}
	if b.Status != domain.BookingStatusPending {
		return nil, domain.ErrPaymentAlreadyProcessed
	}

	b.Status = domain.BookingStatusPaid
	b.UpdatedAt = time.Now()

	out := *b
	return &out, nil
}
