package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/tbraaten/idun/internal/domain"
	"github.com/tbraaten/idun/internal/repository/product"
)

type productService struct {
	products product.Repository
}

// Compile-time check that productService implements domain.ProductService.
var _ domain.ProductService = (*productService)(nil)

// NewProductService creates a new product catalog service.
func NewProductService(products product.Repository) domain.ProductService {
	return &productService{products: products}
}

// ListProducts returns all purchasable products.
func (s *productService) ListProducts(ctx context.Context) ([]domain.Product, error) {
	products, err := s.products.List(ctx)
	if err != nil {
		return nil, domain.Internal(err, "product.list", "failed to list products")
	}
	return products, nil
}

// GetProduct retrieves a single product by ID.
func (s *productService) GetProduct(ctx context.Context, productID string) (*domain.Product, error) {
	id, err := uuid.Parse(productID)
	if err != nil {
		return nil, domain.ErrProductNotFound
	}

	p, err := s.products.GetByID(ctx, id)
	if err != nil {
		if domain.IsCode(err, domain.ENOTFOUND) {
			return nil, err
		}
		return nil, domain.Internal(err, "product.get", "failed to get product")
	}
	return p, nil
}
