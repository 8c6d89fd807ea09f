package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// =============================================================================
// CART DOMAIN ERRORS
// =============================================================================

var (
	ErrCartNotFound     = &Error{Code: ENOTFOUND, Message: "Cart not found"}
	ErrLineItemNotFound = &Error{Code: ENOTFOUND, Message: "Line item not found"}
	ErrInvalidQuantity  = &Error{Code: EINVALID, Message: "Quantity must be at least 1"}
)

// CartService provides business logic for shopping cart operations.
type CartService interface {
	// ResolveCart maps a session-held cart ID to exactly one cart.
	// If the ID is empty or references a cart that no longer exists, a new
	// empty cart is created. Returns the cart and whether it was created;
	// callers are responsible for storing a new ID back into the session.
	ResolveCart(ctx context.Context, cartID string) (*Cart, bool, error)

	// GetCartView produces the read projection of a cart: each line item
	// with a live product snapshot, plus the aggregate total.
	GetCartView(ctx context.Context, cartID string) (*CartView, error)

	// AddItem adds a product to the cart or increments the existing line
	// item's quantity. Quantity below 1 defaults to 1.
	AddItem(ctx context.Context, cartID, productID string, quantity int32) (*LineItem, error)

	// UpdateQuantity replaces a line item's quantity. Values below 1 are
	// rejected; removal requires RemoveItem.
	UpdateQuantity(ctx context.Context, cartID, lineItemID string, quantity int32) (*LineItem, error)

	// RemoveItem deletes a line item. Idempotent: removing an absent item
	// is not an error.
	RemoveItem(ctx context.Context, cartID, lineItemID string) error

	// EmptyCart deletes the cart and all its line items. Callers clear
	// their session reference so the next resolve creates a fresh cart.
	EmptyCart(ctx context.Context, cartID string) error

	// ComputeTotal returns the exact sum of live price x quantity over all
	// line items, in integer cents. Never cached.
	ComputeTotal(ctx context.Context, cartID string) (int64, error)
}

// Cart is a lightweight cart view model.
type Cart struct {
	ID        uuid.UUID
	CreatedAt time.Time
	UpdatedAt time.Time
}

// LineItem is a cart line with its live product snapshot.
type LineItem struct {
	ID             uuid.UUID
	CartID         uuid.UUID
	Quantity       int32
	Product        ProductSnapshot
	LineTotalCents int64
}

// CartView aggregates a cart's line items and computed total.
type CartView struct {
	Cart       Cart
	LineItems  []LineItem
	TotalCents int64
	ItemCount  int
}
