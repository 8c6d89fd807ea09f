package product

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/tbraaten/idun/internal/domain"
)

// MemoryRepo is an in-memory product repository for tests.
// Safe for concurrent use.
type MemoryRepo struct {
	mu       sync.RWMutex
	products map[uuid.UUID]domain.Product
}

var _ Repository = (*MemoryRepo)(nil)

// NewMemory creates an empty in-memory product repository.
func NewMemory() *MemoryRepo {
	return &MemoryRepo{
		products: make(map[uuid.UUID]domain.Product),
	}
}

func (r *MemoryRepo) List(ctx context.Context) ([]domain.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	products := make([]domain.Product, 0, len(r.products))
	for _, p := range r.products {
		products = append(products, p)
	}
	sort.Slice(products, func(i, j int) bool {
		return products[i].Name < products[j].Name
	})
	return products, nil
}

func (r *MemoryRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.products[id]
	if !ok {
		return nil, domain.ErrProductNotFound
	}
	return &p, nil
}

func (r *MemoryRepo) Create(ctx context.Context, in CreateProductInput) (*domain.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now()
	p := domain.Product{
		ID:          uuid.New(),
		Name:        in.Name,
		Description: in.Description,
		PriceCents:  in.PriceCents,
		ImageURL:    in.ImageURL,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	r.products[p.ID] = p
	return &p, nil
}

// SetPrice changes a product's price in place. Used in tests to verify
// that cart lines reflect the current catalog price.
func (r *MemoryRepo) SetPrice(id uuid.UUID, priceCents int64) {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.products[id]
	if !ok {
		return
	}
	p.PriceCents = priceCents
	p.UpdatedAt = time.Now()
	r.products[id] = p
}
