package cart

import (
	"context"

	"github.com/google/uuid"

	"github.com/tbraaten/idun/internal/domain"
)

// Repository provides access to carts and their line items.
//
// Line items carry a live snapshot of their product: prices are read
// from the catalog at query time, never stored on the line.
type Repository interface {
	// Create inserts a new empty cart.
	Create(ctx context.Context) (*domain.Cart, error)

	// GetByID retrieves a cart by ID. Returns domain.ErrCartNotFound if
	// it does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Cart, error)

	// Delete removes a cart and all of its line items.
	Delete(ctx context.Context, id uuid.UUID) error

	// ListLines returns the cart's line items in insertion order.
	ListLines(ctx context.Context, cartID uuid.UUID) ([]domain.LineItem, error)

	// GetLine retrieves a single line item scoped to the cart.
	GetLine(ctx context.Context, cartID, lineID uuid.UUID) (*domain.LineItem, error)

	// UpsertLine adds quantity to the cart's line for the product,
	// creating the line if none exists. The add is atomic: concurrent
	// calls for the same product never lose an increment and never
	// produce a second line.
	UpsertLine(ctx context.Context, cartID, productID uuid.UUID, quantity int32) (*domain.LineItem, error)

	// SetLineQuantity replaces a line item's quantity.
	SetLineQuantity(ctx context.Context, cartID, lineID uuid.UUID, quantity int32) (*domain.LineItem, error)

	// DeleteLine removes a line item. Returns domain.ErrLineItemNotFound
	// if the line does not exist in the cart.
	DeleteLine(ctx context.Context, cartID, lineID uuid.UUID) error

	// Total returns the sum of quantity times current unit price over
	// the cart's lines, in cents. An empty or missing cart totals zero.
	Total(ctx context.Context, cartID uuid.UUID) (int64, error)
}
