package product

import (
	"context"

	"github.com/google/uuid"

	"github.com/tbraaten/idun/internal/domain"
)

// CreateProductInput contains the fields needed to create a product.
type CreateProductInput struct {
	Name        string
	Description string
	PriceCents  int64
	ImageURL    string
}

// Repository provides access to the product catalog.
type Repository interface {
	List(ctx context.Context) ([]domain.Product, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Product, error)
	Create(ctx context.Context, in CreateProductInput) (*domain.Product, error)
}
