package booking

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tbraaten/idun/internal/domain"
)

type postgresRepo struct {
	pool *pgxpool.Pool
}

// NewPostgres creates a PostgreSQL-backed booking repository.
func NewPostgres(pool *pgxpool.Pool) Repository {
	return &postgresRepo{pool: pool}
}

const bookingColumns = `id, cart_id, payment_intent_id, status, amount_cents, currency, customer_info, line_items, created_at, updated_at`

func (r *postgresRepo) Create(ctx context.Context, in CreateBookingInput) (*domain.Booking, error) {
	customer, err := json.Marshal(in.Customer)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal customer info: %w", err)
	}
	lines, err := json.Marshal(in.Lines)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal line items: %w", err)
	}

	q := `
INSERT INTO bookings (cart_id, payment_intent_id, status, amount_cents, currency, customer_info, line_items)
VALUES ($1, $2, 'pending', $3, $4, $5, $6)
RETURNING ` + bookingColumns
	return scanBooking(r.pool.QueryRow(ctx, q, in.CartID, in.PaymentIntentID, in.AmountCents, in.Currency, customer, lines))
}

func (r *postgresRepo) GetByPaymentIntentID(ctx context.Context, paymentIntentID string) (*domain.Booking, error) {
	q := `SELECT ` + bookingColumns + ` FROM bookings WHERE payment_intent_id = $1`
	b, err := scanBooking(r.pool.QueryRow(ctx, q, paymentIntentID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrBookingNotFound
		}
		return nil, err
	}
	return b, nil
}

func (r *postgresRepo) MarkPaid(ctx context.Context, paymentIntentID string) (*domain.Booking, error) {
	// Conditional update: the WHERE status = 'pending' clause makes the
	// transition happen at most once even under concurrent webhook
	// deliveries.
	q := `
UPDATE bookings
SET status = 'paid', updated_at = now()
WHERE payment_intent_id = $1 AND status = 'pending'
RETURNING ` + bookingColumns
	b, err := scanBooking(r.pool.QueryRow(ctx, q, paymentIntentID))
	if err == nil {
		return b, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, err
	}

	// No pending row. Distinguish a retry from an unknown intent.
	if _, err := r.GetByPaymentIntentID(ctx, paymentIntentID); err != nil {
		return nil, err
	}
	return nil, domain.ErrPaymentAlreadyProcessed
}

func scanBooking(row pgx.Row) (*domain.Booking, error) {
	var b domain.Booking
	var customer, lines []byte
	if err := row.Scan(
		&b.ID,
		&b.CartID,
		&b.PaymentIntentID,
		&b.Status,
		&b.AmountCents,
		&b.Currency,
		&customer,
		&lines,
		&b.CreatedAt,
		&b.UpdatedAt,
	); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(customer, &b.Customer); err != nil {
		return nil, fmt.Errorf("failed to unmarshal customer info: %w", err)
	}
	if err := json.Unmarshal(lines, &b.Lines); err != nil {
		return nil, fmt.Errorf("failed to unmarshal line items: %w", err)
	}
	return &b, nil
}
