package cart

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/tbraaten/idun/internal/domain"
)

// ProductSource resolves products for line-item snapshots.
// *product.MemoryRepo and *product.postgresRepo both satisfy it.
type ProductSource interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Product, error)
}

type memoryLine struct {
	id        uuid.UUID
	productID uuid.UUID
	quantity  int32
}

// MemoryRepo is an in-memory cart repository for tests.
// Safe for concurrent use.
type MemoryRepo struct {
	mu       sync.RWMutex
	carts    map[uuid.UUID]domain.Cart
	lines    map[uuid.UUID][]memoryLine // cartID -> lines in insertion order
	products ProductSource
}

var _ Repository = (*MemoryRepo)(nil)

// NewMemory creates an in-memory cart repository backed by the given
// product source.
func NewMemory(products ProductSource) *MemoryRepo {
	return &MemoryRepo{
		carts:    make(map[uuid.UUID]domain.Cart),
		lines:    make(map[uuid.UUID][]memoryLine),
		products: products,
	}
}

func (r *MemoryRepo) Create(ctx context.Context) (*domain.Cart, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now()
	c := domain.Cart{ID: uuid.New(), CreatedAt: now, UpdatedAt: now}
	r.carts[c.ID] = c
	return &c, nil
}

func (r *MemoryRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Cart, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	c, ok := r.carts[id]
	if !ok {
		return nil, domain.ErrCartNotFound
	}
	return &c, nil
}

func (r *MemoryRepo) Delete(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.carts, id)
	delete(r.lines, id)
	return nil
}

func (r *MemoryRepo) ListLines(ctx context.Context, cartID uuid.UUID) ([]domain.LineItem, error) {
	r.mu.RLock()
	stored := make([]memoryLine, len(r.lines[cartID]))
	copy(stored, r.lines[cartID])
	r.mu.RUnlock()

	var lines []domain.LineItem
	for _, ml := range stored {
		line, err := r.buildLine(ctx, cartID, ml)
		if err != nil {
			return nil, err
		}
		lines = append(lines, *line)
	}
	return lines, nil
}

func (r *MemoryRepo) GetLine(ctx context.Context, cartID, lineID uuid.UUID) (*domain.LineItem, error) {
	r.mu.RLock()
	ml, ok := r.findLine(cartID, lineID)
	r.mu.RUnlock()

	if !ok {
		return nil, domain.ErrLineItemNotFound
	}
	return r.buildLine(ctx, cartID, ml)
}

func (r *MemoryRepo) UpsertLine(ctx context.Context, cartID, productID uuid.UUID, quantity int32) (*domain.LineItem, error) {
	if _, err := r.products.GetByID(ctx, productID); err != nil {
		return nil, err
	}

	r.mu.Lock()
	if _, ok := r.carts[cartID]; !ok {
		r.mu.Unlock()
		return nil, domain.ErrCartNotFound
	}

	var ml memoryLine
	found := false
	for i, existing := range r.lines[cartID] {
		if existing.productID == productID {
			r.lines[cartID][i].quantity += quantity
			ml = r.lines[cartID][i]
			found = true
			break
		}
	}
	if !found {
		ml = memoryLine{id: uuid.New(), productID: productID, quantity: quantity}
		r.lines[cartID] = append(r.lines[cartID], ml)
	}
	r.mu.Unlock()

	return r.buildLine(ctx, cartID, ml)
}

func (r *MemoryRepo) SetLineQuantity(ctx context.Context, cartID, lineID uuid.UUID, quantity int32) (*domain.LineItem, error) {
	r.mu.Lock()
	var ml memoryLine
	found := false
	for i, existing := range r.lines[cartID] {
		if existing.id == lineID {
			r.lines[cartID][i].quantity = quantity
			ml = r.lines[cartID][i]
			found = true
			break
		}
	}
	r.mu.Unlock()

	if !found {
		return nil, domain.ErrLineItemNotFound
	}
	return r.buildLine(ctx, cartID, ml)
}

func (r *MemoryRepo) DeleteLine(ctx context.Context, cartID, lineID uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, existing := range r.lines[cartID] {
		if existing.id == lineID {
			r.lines[cartID] = append(r.lines[cartID][:i], r.lines[cartID][i+1:]...)
			return nil
		}
	}
	return domain.ErrLineItemNotFound
}

func (r *MemoryRepo) Total(ctx context.Context, cartID uuid.UUID) (int64, error) {
	r.mu.RLock()
	stored := make([]memoryLine, len(r.lines[cartID]))
	copy(stored, r.lines[cartID])
	r.mu.RUnlock()

	var total int64
	for _, ml := range stored {
		p, err := r.products.GetByID(ctx, ml.productID)
		if err != nil {
			return 0, err
		}
		total += int64(ml.quantity) * p.PriceCents
	}
	return total, nil
}

func (r *MemoryRepo) findLine(cartID, lineID uuid.UUID) (memoryLine, bool) {
	for _, existing := range r.lines[cartID] {
		if existing.id == lineID {
			return existing, true
		}
	}
	return memoryLine{}, false
}

func (r *MemoryRepo) buildLine(ctx context.Context, cartID uuid.UUID, ml memoryLine) (*domain.LineItem, error) {
	p, err := r.products.GetByID(ctx, ml.productID)
	if err != nil {
		return nil, err
	}
	return &domain.LineItem{
		ID:             ml.id,
		CartID:         cartID,
		Quantity:       ml.quantity,
		Product:        p.Snapshot(),
		LineTotalCents: int64(ml.quantity) * p.PriceCents,
	}, nil
}
