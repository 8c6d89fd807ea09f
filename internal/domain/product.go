package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

var ErrProductNotFound = &Error{Code: ENOTFOUND, Message: "Product not found"}

// ProductService provides read access to the product catalog.
// Product creation and deletion belong to a separate management flow;
// the cart core only ever reads.
type ProductService interface {
	// ListProducts returns all purchasable products.
	ListProducts(ctx context.Context) ([]Product, error)

	// GetProduct retrieves a single product by ID.
	GetProduct(ctx context.Context, productID string) (*Product, error)
}

// Product is a purchasable catalog item. Prices are integer minor
// currency units (cents); the currency is fixed per deployment.
type Product struct {
	ID          uuid.UUID
	Name        string
	Description string
	PriceCents  int64
	ImageURL    string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Snapshot returns the subset of product fields embedded in cart views
// and booking records.
func (p *Product) Snapshot() ProductSnapshot {
	return ProductSnapshot{
		ID:         p.ID,
		Name:       p.Name,
		PriceCents: p.PriceCents,
		ImageURL:   p.ImageURL,
	}
}

// ProductSnapshot is the product projection returned alongside line items.
type ProductSnapshot struct {
	ID         uuid.UUID
	Name       string
	PriceCents int64
	ImageURL   string
}
