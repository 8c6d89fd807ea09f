package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/tbraaten/idun/internal/domain"
	"github.com/tbraaten/idun/internal/repository/cart"
	"github.com/tbraaten/idun/internal/repository/product"
)

type cartService struct {
	carts    cart.Repository
	products product.Repository
}

// Compile-time check that cartService implements domain.CartService.
var _ domain.CartService = (*cartService)(nil)

// NewCartService creates a new cart service.
func NewCartService(carts cart.Repository, products product.Repository) domain.CartService {
	return &cartService{
		carts:    carts,
		products: products,
	}
}

// ResolveCart maps a session-held cart ID to exactly one cart, creating a
// fresh one when the ID is empty, malformed, or stale. The boolean result
// tells the caller whether the session reference needs updating.
func (s *cartService) ResolveCart(ctx context.Context, cartID string) (*domain.Cart, bool, error) {
	if cartID != "" {
		if id, err := uuid.Parse(cartID); err == nil {
			c, err := s.carts.GetByID(ctx, id)
			if err == nil {
				return c, false, nil
			}
			if !domain.IsCode(err, domain.ENOTFOUND) {
				return nil, false, domain.Internal(err, "cart.resolve", "failed to look up cart")
			}
			// Stale reference: the cart was emptied or never existed.
			// Fall through and create a replacement.
		}
	}

	c, err := s.carts.Create(ctx)
	if err != nil {
		return nil, false, domain.Internal(err, "cart.resolve", "failed to create cart")
	}
	return c, true, nil
}

// GetCartView produces the read projection of a cart. Line items carry
// live product snapshots; the total is the sum of those lines.
func (s *cartService) GetCartView(ctx context.Context, cartID string) (*domain.CartView, error) {
	id, err := uuid.Parse(cartID)
	if err != nil {
		return nil, domain.ErrCartNotFound
	}

	c, err := s.carts.GetByID(ctx, id)
	if err != nil {
		if domain.IsCode(err, domain.ENOTFOUND) {
			return nil, err
		}
		return nil, domain.Internal(err, "cart.view", "failed to get cart")
	}

	lines, err := s.carts.ListLines(ctx, id)
	if err != nil {
		return nil, domain.Internal(err, "cart.view", "failed to list line items")
	}

	view := &domain.CartView{
		Cart:      *c,
		LineItems: lines,
	}
	for _, line := range lines {
		view.TotalCents += line.LineTotalCents
		view.ItemCount += int(line.Quantity)
	}
	return view, nil
}

// AddItem adds a product to the cart or increments its existing line.
// Quantity below 1 defaults to 1.
func (s *cartService) AddItem(ctx context.Context, cartID, productID string, quantity int32) (*domain.LineItem, error) {
	id, err := uuid.Parse(cartID)
	if err != nil {
		return nil, domain.ErrCartNotFound
	}
	pid, err := uuid.Parse(productID)
	if err != nil {
		return nil, domain.ErrProductNotFound
	}

	if quantity < 1 {
		quantity = 1
	}

	line, err := s.carts.UpsertLine(ctx, id, pid, quantity)
	if err != nil {
		if domain.IsCode(err, domain.ENOTFOUND) {
			return nil, err
		}
		return nil, domain.Internal(err, "cart.add_item", "failed to add item")
	}
	return line, nil
}

// UpdateQuantity replaces a line item's quantity. Values below 1 are
// rejected without touching the line; removal requires RemoveItem.
func (s *cartService) UpdateQuantity(ctx context.Context, cartID, lineItemID string, quantity int32) (*domain.LineItem, error) {
	id, err := uuid.Parse(cartID)
	if err != nil {
		return nil, domain.ErrCartNotFound
	}
	lineID, err := uuid.Parse(lineItemID)
	if err != nil {
		return nil, domain.ErrLineItemNotFound
	}

	if quantity < 1 {
		return nil, domain.ErrInvalidQuantity
	}

	line, err := s.carts.SetLineQuantity(ctx, id, lineID, quantity)
	if err != nil {
		if domain.IsCode(err, domain.ENOTFOUND) {
			return nil, err
		}
		return nil, domain.Internal(err, "cart.update_quantity", "failed to update quantity")
	}
	return line, nil
}

// RemoveItem deletes a line item. Removing an absent item succeeds.
func (s *cartService) RemoveItem(ctx context.Context, cartID, lineItemID string) error {
	id, err := uuid.Parse(cartID)
	if err != nil {
		return nil
	}
	lineID, err := uuid.Parse(lineItemID)
	if err != nil {
		return nil
	}

	if err := s.carts.DeleteLine(ctx, id, lineID); err != nil {
		if domain.IsCode(err, domain.ENOTFOUND) {
			return nil
		}
		return domain.Internal(err, "cart.remove_item", "failed to remove item")
	}
	return nil
}

// EmptyCart deletes the cart and all its line items.
func (s *cartService) EmptyCart(ctx context.Context, cartID string) error {
	id, err := uuid.Parse(cartID)
	if err != nil {
		return nil
	}

	if err := s.carts.Delete(ctx, id); err != nil {
		return domain.Internal(err, "cart.empty", "failed to delete cart")
	}
	return nil
}

// ComputeTotal returns the exact sum of live price times quantity over
// the cart's lines, in integer cents. A missing cart totals zero.
func (s *cartService) ComputeTotal(ctx context.Context, cartID string) (int64, error) {
	id, err := uuid.Parse(cartID)
	if err != nil {
		return 0, nil
	}

	total, err := s.carts.Total(ctx, id)
	if err != nil {
		return 0, domain.Internal(err, "cart.total", "failed to compute total")
	}
	return total, nil
}
