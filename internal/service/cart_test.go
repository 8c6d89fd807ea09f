package service

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/google/uuid"

	"github.com/tbraaten/idun/internal/domain"
	"github.com/tbraaten/idun/internal/repository/cart"
	"github.com/tbraaten/idun/internal/repository/product"
)

// ============================================================================
// Test Fixtures
// ============================================================================

type cartFixture struct {
	products *product.MemoryRepo
	carts    *cart.MemoryRepo
	svc      domain.CartService

	coffee *domain.Product
	mug    *domain.Product
}

func newCartFixture(t *testing.T) *cartFixture {
	t.Helper()

	products := product.NewMemory()
	coffee, err := products.Create(context.Background(), product.CreateProductInput{
		Name:       "Single Origin Coffee",
		PriceCents: 1850,
	})
	if err != nil {
		t.Fatalf("failed to seed product: %v", err)
	}
	mug, err := products.Create(context.Background(), product.CreateProductInput{
		Name:       "Ceramic Mug",
		PriceCents: 1200,
	})
	if err != nil {
		t.Fatalf("failed to seed product: %v", err)
	}

	carts := cart.NewMemory(products)
	return &cartFixture{
		products: products,
		carts:    carts,
		svc:      NewCartService(carts, products),
		coffee:   coffee,
		mug:      mug,
	}
}

func (f *cartFixture) newCart(t *testing.T) *domain.Cart {
	t.Helper()

	c, created, err := f.svc.ResolveCart(context.Background(), "")
	if err != nil {
		t.Fatalf("failed to create cart: %v", err)
	}
	if !created {
		t.Fatal("expected a new cart to be created")
	}
	return c
}

// ============================================================================
// ResolveCart
// ============================================================================

func TestCartService_ResolveCart_CreatesWhenEmpty(t *testing.T) {
	f := newCartFixture(t)

	c, created, err := f.svc.ResolveCart(context.Background(), "")
	if err != nil {
		t.Fatalf("expected success, got error: %v", err)
	}
	if !created {
		t.Error("expected created=true for empty cart ID")
	}
	if c == nil || c.ID == uuid.Nil {
		t.Error("expected a cart with a non-zero ID")
	}
}

func TestCartService_ResolveCart_ReturnsExisting(t *testing.T) {
	f := newCartFixture(t)
	existing := f.newCart(t)

	c, created, err := f.svc.ResolveCart(context.Background(), existing.ID.String())
	if err != nil {
		t.Fatalf("expected success, got error: %v", err)
	}
	if created {
		t.Error("expected created=false for an existing cart")
	}
	if c.ID != existing.ID {
		t.Errorf("expected cart %s, got %s", existing.ID, c.ID)
	}
}

func TestCartService_ResolveCart_ReplacesStaleID(t *testing.T) {
	f := newCartFixture(t)

	for _, stale := range []string{
		"11111111-2222-3333-4444-555555555555", // well-formed but unknown
		"not-a-uuid",
	} {
		c, created, err := f.svc.ResolveCart(context.Background(), stale)
		if err != nil {
			t.Fatalf("ResolveCart(%q): expected success, got error: %v", stale, err)
		}
		if !created {
			t.Errorf("ResolveCart(%q): expected created=true", stale)
		}
		if c.ID.String() == stale {
			t.Errorf("ResolveCart(%q): expected a fresh cart ID", stale)
		}
	}
}

// ============================================================================
// AddItem
// ============================================================================

func TestCartService_AddItem_CreatesLine(t *testing.T) {
	f := newCartFixture(t)
	c := f.newCart(t)

	line, err := f.svc.AddItem(context.Background(), c.ID.String(), f.coffee.ID.String(), 2)
	if err != nil {
		t.Fatalf("expected success, got error: %v", err)
	}
	if line.Quantity != 2 {
		t.Errorf("expected quantity 2, got %d", line.Quantity)
	}
	if line.Product.ID != f.coffee.ID {
		t.Errorf("expected product %s, got %s", f.coffee.ID, line.Product.ID)
	}
	if line.LineTotalCents != 2*1850 {
		t.Errorf("expected line total 3700, got %d", line.LineTotalCents)
	}
}

func TestCartService_AddItem_IncrementsExistingLine(t *testing.T) {
	f := newCartFixture(t)
	c := f.newCart(t)

	first, err := f.svc.AddItem(context.Background(), c.ID.String(), f.coffee.ID.String(), 2)
	if err != nil {
		t.Fatalf("first add failed: %v", err)
	}
	second, err := f.svc.AddItem(context.Background(), c.ID.String(), f.coffee.ID.String(), 3)
	if err != nil {
		t.Fatalf("second add failed: %v", err)
	}

	if second.ID != first.ID {
		t.Error("expected the same line item to be incremented, got a new line")
	}
	if second.Quantity != 5 {
		t.Errorf("expected quantity 5, got %d", second.Quantity)
	}

	view, err := f.svc.GetCartView(context.Background(), c.ID.String())
	if err != nil {
		t.Fatalf("failed to get cart view: %v", err)
	}
	if len(view.LineItems) != 1 {
		t.Errorf("expected one line item per product, got %d", len(view.LineItems))
	}
}

func TestCartService_AddItem_QuantityBelowOneDefaultsToOne(t *testing.T) {
	f := newCartFixture(t)

	for _, qty := range []int32{0, -1, -100} {
		c := f.newCart(t)
		line, err := f.svc.AddItem(context.Background(), c.ID.String(), f.coffee.ID.String(), qty)
		if err != nil {
			t.Fatalf("AddItem(qty=%d): expected success, got error: %v", qty, err)
		}
		if line.Quantity != 1 {
			t.Errorf("AddItem(qty=%d): expected quantity 1, got %d", qty, line.Quantity)
		}
	}
}

func TestCartService_AddItem_UnknownProduct(t *testing.T) {
	f := newCartFixture(t)
	c := f.newCart(t)

	_, err := f.svc.AddItem(context.Background(), c.ID.String(), "99999999-9999-9999-9999-999999999999", 1)
	if err == nil {
		t.Fatal("expected error for unknown product, got nil")
	}
	if domain.ErrorCode(err) != domain.ENOTFOUND {
		t.Errorf("expected ENOTFOUND, got %s", domain.ErrorCode(err))
	}
}

func TestCartService_AddItem_ConcurrentSameProduct(t *testing.T) {
	f := newCartFixture(t)
	c := f.newCart(t)

	const workers = 20
	var wg sync.WaitGroup
	errs := make(chan error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := f.svc.AddItem(context.Background(), c.ID.String(), f.coffee.ID.String(), 1); err != nil {
				errs <- err
			}
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		t.Fatalf("concurrent add failed: %v", err)
	}

	view, err := f.svc.GetCartView(context.Background(), c.ID.String())
	if err != nil {
		t.Fatalf("failed to get cart view: %v", err)
	}
	if len(view.LineItems) != 1 {
		t.Fatalf("expected one line item, got %d", len(view.LineItems))
	}
	if view.LineItems[0].Quantity != workers {
		t.Errorf("expected quantity %d, no increment may be lost, got %d", workers, view.LineItems[0].Quantity)
	}
}

// ============================================================================
// UpdateQuantity
// ============================================================================

func TestCartService_UpdateQuantity_Success(t *testing.T) {
	f := newCartFixture(t)
	c := f.newCart(t)

	line, err := f.svc.AddItem(context.Background(), c.ID.String(), f.coffee.ID.String(), 1)
	if err != nil {
		t.Fatalf("add failed: %v", err)
	}

	updated, err := f.svc.UpdateQuantity(context.Background(), c.ID.String(), line.ID.String(), 7)
	if err != nil {
		t.Fatalf("expected success, got error: %v", err)
	}
	if updated.Quantity != 7 {
		t.Errorf("expected quantity 7, got %d", updated.Quantity)
	}
	if updated.LineTotalCents != 7*1850 {
		t.Errorf("expected line total %d, got %d", 7*1850, updated.LineTotalCents)
	}
}

func TestCartService_UpdateQuantity_BelowOneRejected(t *testing.T) {
	f := newCartFixture(t)
	c := f.newCart(t)

	line, err := f.svc.AddItem(context.Background(), c.ID.String(), f.coffee.ID.String(), 3)
	if err != nil {
		t.Fatalf("add failed: %v", err)
	}

	for _, qty := range []int32{0, -2} {
		_, err := f.svc.UpdateQuantity(context.Background(), c.ID.String(), line.ID.String(), qty)
		if !errors.Is(err, domain.ErrInvalidQuantity) {
			t.Errorf("UpdateQuantity(qty=%d): expected ErrInvalidQuantity, got %v", qty, err)
		}
	}

	// The rejected update must not have touched the line.
	view, err := f.svc.GetCartView(context.Background(), c.ID.String())
	if err != nil {
		t.Fatalf("failed to get cart view: %v", err)
	}
	if view.LineItems[0].Quantity != 3 {
		t.Errorf("expected quantity to remain 3, got %d", view.LineItems[0].Quantity)
	}
}

func TestCartService_UpdateQuantity_UnknownLine(t *testing.T) {
	f := newCartFixture(t)
	c := f.newCart(t)

	_, err := f.svc.UpdateQuantity(context.Background(), c.ID.String(), "88888888-8888-8888-8888-888888888888", 2)
	if domain.ErrorCode(err) != domain.ENOTFOUND {
		t.Errorf("expected ENOTFOUND, got %v", err)
	}
}

// ============================================================================
// RemoveItem / EmptyCart
// ============================================================================

func TestCartService_RemoveItem_Idempotent(t *testing.T) {
	f := newCartFixture(t)
	c := f.newCart(t)

	line, err := f.svc.AddItem(context.Background(), c.ID.String(), f.coffee.ID.String(), 1)
	if err != nil {
		t.Fatalf("add failed: %v", err)
	}

	if err := f.svc.RemoveItem(context.Background(), c.ID.String(), line.ID.String()); err != nil {
		t.Fatalf("first remove failed: %v", err)
	}
	if err := f.svc.RemoveItem(context.Background(), c.ID.String(), line.ID.String()); err != nil {
		t.Errorf("second remove should succeed, got error: %v", err)
	}

	view, err := f.svc.GetCartView(context.Background(), c.ID.String())
	if err != nil {
		t.Fatalf("failed to get cart view: %v", err)
	}
	if len(view.LineItems) != 0 {
		t.Errorf("expected empty cart, got %d lines", len(view.LineItems))
	}
}

func TestCartService_EmptyCart_DeletesCart(t *testing.T) {
	f := newCartFixture(t)
	c := f.newCart(t)

	if _, err := f.svc.AddItem(context.Background(), c.ID.String(), f.coffee.ID.String(), 2); err != nil {
		t.Fatalf("add failed: %v", err)
	}

	if err := f.svc.EmptyCart(context.Background(), c.ID.String()); err != nil {
		t.Fatalf("expected success, got error: %v", err)
	}

	// The old reference is now stale; resolving it creates a fresh cart.
	fresh, created, err := f.svc.ResolveCart(context.Background(), c.ID.String())
	if err != nil {
		t.Fatalf("resolve after empty failed: %v", err)
	}
	if !created {
		t.Error("expected a new cart after emptying")
	}
	if fresh.ID == c.ID {
		t.Error("expected a different cart ID after emptying")
	}
}

// ============================================================================
// Totals
// ============================================================================

func TestCartService_ComputeTotal_ExactCents(t *testing.T) {
	f := newCartFixture(t)
	c := f.newCart(t)

	if _, err := f.svc.AddItem(context.Background(), c.ID.String(), f.coffee.ID.String(), 3); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	if _, err := f.svc.AddItem(context.Background(), c.ID.String(), f.mug.ID.String(), 2); err != nil {
		t.Fatalf("add failed: %v", err)
	}

	total, err := f.svc.ComputeTotal(context.Background(), c.ID.String())
	if err != nil {
		t.Fatalf("expected success, got error: %v", err)
	}
	want := int64(3*1850 + 2*1200)
	if total != want {
		t.Errorf("expected total %d, got %d", want, total)
	}
}

func TestCartService_ComputeTotal_ReflectsCurrentPrice(t *testing.T) {
	f := newCartFixture(t)
	c := f.newCart(t)

	if _, err := f.svc.AddItem(context.Background(), c.ID.String(), f.coffee.ID.String(), 2); err != nil {
		t.Fatalf("add failed: %v", err)
	}

	f.products.SetPrice(f.coffee.ID, 2000)

	total, err := f.svc.ComputeTotal(context.Background(), c.ID.String())
	if err != nil {
		t.Fatalf("expected success, got error: %v", err)
	}
	if total != 4000 {
		t.Errorf("expected total 4000 at the updated price, got %d", total)
	}

	view, err := f.svc.GetCartView(context.Background(), c.ID.String())
	if err != nil {
		t.Fatalf("failed to get cart view: %v", err)
	}
	if view.LineItems[0].Product.PriceCents != 2000 {
		t.Errorf("expected snapshot price 2000, got %d", view.LineItems[0].Product.PriceCents)
	}
}

func TestCartService_ComputeTotal_EmptyCartIsZero(t *testing.T) {
	f := newCartFixture(t)
	c := f.newCart(t)

	total, err := f.svc.ComputeTotal(context.Background(), c.ID.String())
	if err != nil {
		t.Fatalf("expected success, got error: %v", err)
	}
	if total != 0 {
		t.Errorf("expected 0 for empty cart, got %d", total)
	}
}

func TestCartService_GetCartView_Aggregates(t *testing.T) {
	f := newCartFixture(t)
	c := f.newCart(t)

	if _, err := f.svc.AddItem(context.Background(), c.ID.String(), f.coffee.ID.String(), 1); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	if _, err := f.svc.AddItem(context.Background(), c.ID.String(), f.mug.ID.String(), 4); err != nil {
		t.Fatalf("add failed: %v", err)
	}

	view, err := f.svc.GetCartView(context.Background(), c.ID.String())
	if err != nil {
		t.Fatalf("expected success, got error: %v", err)
	}
	if len(view.LineItems) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(view.LineItems))
	}
	if view.ItemCount != 5 {
		t.Errorf("expected item count 5, got %d", view.ItemCount)
	}
	want := int64(1850 + 4*1200)
	if view.TotalCents != want {
		t.Errorf("expected total %d, got %d", want, view.TotalCents)
	}
}
