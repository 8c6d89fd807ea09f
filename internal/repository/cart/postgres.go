package cart

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tbraaten/idun/internal/domain"
)

const foreignKeyViolation = "23503"

type postgresRepo struct {
	pool *pgxpool.Pool
}

// NewPostgres creates a PostgreSQL-backed cart repository.
func NewPostgres(pool *pgxpool.Pool) Repository {
	return &postgresRepo{pool: pool}
}

func (r *postgresRepo) Create(ctx context.Context) (*domain.Cart, error) {
	const q = `
INSERT INTO carts DEFAULT VALUES
RETURNING id, created_at, updated_at
`
	var c domain.Cart
	if err := r.pool.QueryRow(ctx, q).Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt); err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *postgresRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Cart, error) {
	const q = `
SELECT id, created_at, updated_at
FROM carts
WHERE id = $1
`
	var c domain.Cart
	err := r.pool.QueryRow(ctx, q, id).Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrCartNotFound
		}
		return nil, err
	}
	return &c, nil
}

func (r *postgresRepo) Delete(ctx context.Context, id uuid.UUID) error {
	// Line items go with the cart via ON DELETE CASCADE.
	_, err := r.pool.Exec(ctx, `DELETE FROM carts WHERE id = $1`, id)
	return err
}

// lineColumns joins each line with its product so callers always see
// the current catalog price.
const lineColumns = `
SELECT l.id, l.cart_id, l.quantity, p.id, p.name, p.price_cents, p.image_url
FROM cart_lines l
JOIN products p ON p.id = l.product_id
`

func (r *postgresRepo) ListLines(ctx context.Context, cartID uuid.UUID) ([]domain.LineItem, error) {
	const q = lineColumns + `
WHERE l.cart_id = $1
ORDER BY l.created_at ASC
`
	rows, err := r.pool.Query(ctx, q, cartID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var lines []domain.LineItem
	for rows.Next() {
		line, err := scanLine(rows)
		if err != nil {
			return nil, err
		}
		lines = append(lines, *line)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return lines, nil
}

func (r *postgresRepo) GetLine(ctx context.Context, cartID, lineID uuid.UUID) (*domain.LineItem, error) {
	const q = lineColumns + `
WHERE l.cart_id = $1 AND l.id = $2
`
	line, err := scanLine(r.pool.QueryRow(ctx, q, cartID, lineID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrLineItemNotFound
		}
		return nil, err
	}
	return line, nil
}

func (r *postgresRepo) UpsertLine(ctx context.Context, cartID, productID uuid.UUID, quantity int32) (*domain.LineItem, error) {
	// Single-statement upsert so concurrent adds for the same product
	// serialize on the (cart_id, product_id) unique index instead of
	// racing a read-modify-write.
	const q = `
WITH upserted AS (
	INSERT INTO cart_lines (cart_id, product_id, quantity)
	VALUES ($1, $2, $3)
	ON CONFLICT (cart_id, product_id)
	DO UPDATE SET quantity = cart_lines.quantity + EXCLUDED.quantity, updated_at = now()
	RETURNING id, cart_id, product_id, quantity
)
SELECT u.id, u.cart_id, u.quantity, p.id, p.name, p.price_cents, p.image_url
FROM upserted u
JOIN products p ON p.id = u.product_id
`
	line, err := scanLine(r.pool.QueryRow(ctx, q, cartID, productID, quantity))
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == foreignKeyViolation {
			if pgErr.ConstraintName == "cart_lines_product_id_fkey" {
				return nil, domain.ErrProductNotFound
			}
			return nil, domain.ErrCartNotFound
		}
		return nil, err
	}
	return line, nil
}

func (r *postgresRepo) SetLineQuantity(ctx context.Context, cartID, lineID uuid.UUID, quantity int32) (*domain.LineItem, error) {
	const q = `
WITH updated AS (
	UPDATE cart_lines
	SET quantity = $3, updated_at = now()
	WHERE cart_id = $1 AND id = $2
	RETURNING id, cart_id, product_id, quantity
)
SELECT u.id, u.cart_id, u.quantity, p.id, p.name, p.price_cents, p.image_url
FROM updated u
JOIN products p ON p.id = u.product_id
`
	line, err := scanLine(r.pool.QueryRow(ctx, q, cartID, lineID, quantity))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrLineItemNotFound
		}
		return nil, err
	}
	return line, nil
}

func (r *postgresRepo) DeleteLine(ctx context.Context, cartID, lineID uuid.UUID) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM cart_lines WHERE cart_id = $1 AND id = $2`, cartID, lineID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrLineItemNotFound
	}
	return nil
}

func (r *postgresRepo) Total(ctx context.Context, cartID uuid.UUID) (int64, error) {
	const q = `
SELECT COALESCE(SUM(l.quantity * p.price_cents), 0)
FROM cart_lines l
JOIN products p ON p.id = l.product_id
WHERE l.cart_id = $1
`
	var total int64
	if err := r.pool.QueryRow(ctx, q, cartID).Scan(&total); err != nil {
		return 0, err
	}
	return total, nil
}

func scanLine(row pgx.Row) (*domain.LineItem, error) {
	var line domain.LineItem
	if err := row.Scan(
		&line.ID,
		&line.CartID,
		&line.Quantity,
		&line.Product.ID,
		&line.Product.Name,
		&line.Product.PriceCents,
		&line.Product.ImageURL,
	); err != nil {
		return nil, err
	}
	line.LineTotalCents = int64(line.Quantity) * line.Product.PriceCents
	return &line, nil
}
